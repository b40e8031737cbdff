package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/hamed0406/healthagg/internal/config"
	"github.com/hamed0406/healthagg/internal/health"
	"github.com/hamed0406/healthagg/internal/httpapi"
	"github.com/hamed0406/healthagg/internal/httpapi/middleware"
	"github.com/hamed0406/healthagg/internal/logging"
	"github.com/hamed0406/healthagg/internal/notify"
	"github.com/hamed0406/healthagg/internal/probe"
	"github.com/hamed0406/healthagg/internal/repo"
	"github.com/hamed0406/healthagg/internal/repo/memory"
	"github.com/hamed0406/healthagg/internal/repo/postgres"
	"github.com/hamed0406/healthagg/internal/scheduler"
)

func main() {
	cfg, err := config.FromEnv()
	if err != nil {
		log.Fatal(err)
	}
	logger, err := logging.NewLogger(cfg.LogDir)
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var reports repo.ReportStore
	var alerts repo.AlertStore
	if cfg.DatabaseURL != "" {
		pg, err := postgres.New(ctx, cfg.DatabaseURL, logger)
		if err != nil {
			log.Fatal(err)
		}
		defer pg.Close()
		reports, alerts = pg, pg
		logger.Info("store_postgres")
	} else {
		mem := memory.New()
		reports, alerts = mem, mem
		logger.Info("store_memory")
	}

	agg := health.New(probe.NewHTTPChecker(cfg.HTTPTimeout), cfg.MaxConcurrentChecks)
	runner := scheduler.NewRunner(logger, agg, cfg.Targets, reports, cfg.CheckInterval)
	go runner.Run(ctx)

	if slack := notify.NewSlack(cfg.SlackWebhook); slack != nil {
		alerter := scheduler.NewAlerter(reports, alerts, notify.Multi{slack}, scheduler.AlerterConfig{
			AlertOnRecovery: cfg.AlertOnRecovery,
			Cooldown:        cfg.AlertCooldown,
			PollInterval:    cfg.CheckInterval,
		})
		if cfg.CheckInterval > 0 {
			go func() { _ = alerter.Run(ctx) }()
		}
	}

	api := httpapi.NewServer(logger, reports, runner, cfg.Targets)
	api.Keys = middleware.Keys{Public: cfg.PublicAPIKeys, Admin: cfg.AdminAPIKeys}
	api.PublicRPM, api.PublicBurst = cfg.PublicRPM, cfg.PublicBurst
	api.AdminRPM, api.AdminBurst = cfg.AdminRPM, cfg.AdminBurst

	logger.Info("api_listen", zap.String("addr", cfg.Addr))
	if err := http.ListenAndServe(cfg.Addr, api.Router()); err != nil {
		log.Fatal(err)
	}
}
