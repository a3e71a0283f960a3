// catalogcheck cross-checks the published sensor catalog against the
// curated sensors.yaml and reports drift between the two.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/luftviz/luftviz/services/dashboard/catalog"
	"github.com/luftviz/luftviz/services/dashboard/sensorscfg"
)

const defaultRequestTimeout = 30 * time.Second

type checkConfig struct {
	CatalogURL        string
	SensorsConfigPath string
	RequestTimeout    time.Duration
	ReportOnly        bool
}

func loadConfig() (checkConfig, error) {
	_ = godotenv.Load(".env")

	cfg := checkConfig{RequestTimeout: defaultRequestTimeout}

	cfg.CatalogURL = strings.TrimSpace(os.Getenv("CATALOG_URL"))
	if cfg.CatalogURL == "" {
		return cfg, errors.New("CATALOG_URL is required")
	}

	cfg.SensorsConfigPath = strings.TrimSpace(os.Getenv("SENSORS_CONFIG_PATH"))
	if cfg.SensorsConfigPath == "" {
		return cfg, errors.New("SENSORS_CONFIG_PATH is required")
	}

	if v := strings.TrimSpace(os.Getenv("CHECK_REQUEST_TIMEOUT")); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return cfg, fmt.Errorf("invalid CHECK_REQUEST_TIMEOUT: %w", err)
		}
		cfg.RequestTimeout = d
	}

	reportOnly := strings.TrimSpace(os.Getenv("REPORT_ONLY"))
	cfg.ReportOnly = reportOnly == "1" || strings.EqualFold(reportOnly, "true")

	return cfg, nil
}

func main() {
	if err := run(); err != nil {
		log.Fatalf("catalogcheck failed: %v", err)
	}
}

func run() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.RequestTimeout+10*time.Second)
	defer cancel()

	file, err := sensorscfg.Load(cfg.SensorsConfigPath)
	if err != nil {
		return err
	}
	log.Printf("sensors config has %d sensors", len(file.Sensors.Luftdaten))

	client := &http.Client{Timeout: cfg.RequestTimeout}
	cat, err := catalog.Load(ctx, client, cfg.CatalogURL)
	if err != nil {
		return err
	}
	log.Printf("catalog has %d sensors", len(cat.Sensors))

	drift := diff(file, cat)
	for _, line := range drift {
		log.Print(line)
	}

	if len(drift) == 0 {
		log.Print("catalog and sensors config agree")
		return nil
	}
	if cfg.ReportOnly {
		log.Printf("report-only: ignoring %d finding(s)", len(drift))
		return nil
	}
	return fmt.Errorf("%d finding(s) between catalog and sensors config", len(drift))
}

// diff lists sensors missing from either side and catalog sensors
// that publish no data at all.
func diff(file sensorscfg.File, cat *catalog.Catalog) []string {
	var findings []string

	configured := file.Codes()
	sort.Strings(configured)
	for _, code := range configured {
		if cat.Find(code) == nil {
			findings = append(findings, fmt.Sprintf("sensor %s is configured but missing from the catalog", code))
		}
	}

	for _, sensor := range cat.Sensors {
		if _, ok := file.Sensors.Luftdaten[sensor.Code]; !ok {
			findings = append(findings, fmt.Sprintf("sensor %s is in the catalog but not configured", sensor.Code))
		}
		if len(cat.AvailableDates(sensor.Code, catalog.DataType24HourMeans)) == 0 &&
			len(cat.AvailableDates(sensor.Code, catalog.DataTypeDayOfWeek)) == 0 {
			findings = append(findings, fmt.Sprintf("sensor %s has no available dates", sensor.Code))
		}
	}

	return findings
}
