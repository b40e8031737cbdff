package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/hamed0406/healthagg/internal/config"
	"github.com/hamed0406/healthagg/internal/health"
	"github.com/hamed0406/healthagg/internal/probe"
)

func main() {
	jsonOut := flag.Bool("json", false, "print the report as JSON instead of text")
	strict := flag.Bool("strict", false, "exit 1 when any service is unhealthy (for CI gating)")
	flag.Parse()

	cfg, err := config.FromEnv()
	if err != nil {
		log.Fatal(err)
	}

	agg := health.New(probe.NewHTTPChecker(cfg.HTTPTimeout), cfg.MaxConcurrentChecks)
	rep := agg.CheckAll(context.Background(), cfg.Targets)

	if *jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(rep)
	} else {
		fmt.Print(health.FormatReport(rep))
	}

	if *strict && !rep.AllHealthy() {
		os.Exit(1)
	}
}
