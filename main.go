package main

import (
	"flag"
	"log/slog"
	"os"

	"faculty-crm/config"
	"faculty-crm/internal/console"
	"faculty-crm/internal/seed"
)

func main() {
	demo := flag.Bool("demo", false, "load the demo data set on startup")
	flag.Parse()

	config.ConnectDB()

	if err := seed.EnsureDefaultAdmin(config.DB); err != nil {
		slog.Error("failed to seed default admin", "error", err)
		os.Exit(1)
	}

	if *demo {
		if err := seed.LoadDemoData(config.DB); err != nil {
			slog.Error("failed to load demo data", "error", err)
			os.Exit(1)
		}
		slog.Info("demo data loaded")
	}

	console.New(config.DB, config.ExportDir()).Run()
}
