package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/luftviz/luftviz/services/dashboard/catalog"
	"github.com/luftviz/luftviz/services/dashboard/config"
	httpserver "github.com/luftviz/luftviz/services/dashboard/http"
	"github.com/luftviz/luftviz/services/dashboard/sensorscfg"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if cfg.SensorsConfigPath != "" {
		file, err := sensorscfg.Load(cfg.SensorsConfigPath)
		if err != nil {
			log.Fatalf("sensors config error: %v", err)
		}
		log.Printf("sensors config ok (%d sensors)", len(file.Sensors.Luftdaten))
	}

	client := &http.Client{Timeout: cfg.FetchTimeout}
	cat, err := catalog.Load(ctx, client, cfg.CatalogURL)
	if err != nil {
		// No catalog means no usable UI; fail loudly instead of
		// serving a blank page.
		log.Fatalf("catalog load error: %v", err)
	}
	log.Printf("loaded catalog with %d sensors", len(cat.Sensors))

	srv := httpserver.New(cfg, cat)
	log.Printf("dashboard listening on %s", cfg.ListenAddr())

	if err := srv.Run(ctx); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
