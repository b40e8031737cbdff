package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/hamed0406/healthagg/internal/config"
)

func main() {
	fail := func(msg string) {
		fmt.Fprintln(os.Stderr, "✖", msg)
		os.Exit(1)
	}
	warn := func(msg string) { fmt.Fprintln(os.Stderr, "⚠", msg) }
	ok := func(msg string) { fmt.Println("✔", msg) }

	services := strings.TrimSpace(os.Getenv("SERVICES"))
	addr := strings.TrimSpace(os.Getenv("ADDR"))
	db := strings.TrimSpace(os.Getenv("DATABASE_URL"))
	slack := strings.TrimSpace(os.Getenv("SLACK_WEBHOOK"))
	admin := strings.TrimSpace(os.Getenv("ADMIN_API_KEYS"))
	pub := strings.TrimSpace(os.Getenv("PUBLIC_API_KEYS"))

	if services == "" {
		warn("SERVICES empty — built-in local defaults will be checked.")
	} else {
		targets, err := config.ParseServices(services)
		if err != nil {
			fail("SERVICES invalid: " + err.Error())
		}
		ok(fmt.Sprintf("SERVICES parses: %d targets", len(targets)))
	}

	for name, v := range map[string]string{"ADMIN_API_KEYS": admin, "PUBLIC_API_KEYS": pub} {
		if strings.Contains(v, " ") {
			warn(name + " contains spaces; use comma-separated with no spaces, e.g. key1,key2")
		}
	}
	if admin == "" {
		warn("ADMIN_API_KEYS empty — POST /api/check will 403.")
	}
	if pub == "" && admin == "" {
		warn("no API keys configured — API is open (fine for local dev).")
	}

	if addr == "" {
		warn("ADDR is empty; the API default bind will be used.")
	} else {
		ok("ADDR=" + addr)
	}

	if db == "" {
		warn("DATABASE_URL empty — reports kept in memory only.")
	} else {
		ok("DATABASE_URL present")
	}

	if slack == "" {
		warn("SLACK_WEBHOOK empty — down/recovery alerts disabled.")
	} else {
		ok("SLACK_WEBHOOK present")
	}

	ok("preflight passed")
}
