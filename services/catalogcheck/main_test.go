package main

import (
	"strings"
	"testing"

	"github.com/luftviz/luftviz/services/dashboard/catalog"
	"github.com/luftviz/luftviz/services/dashboard/sensorscfg"
)

func configFile(t *testing.T, codes ...string) sensorscfg.File {
	t.Helper()
	lat, lon := 53.48, -2.24
	var file sensorscfg.File
	file.Sensors.Luftdaten = map[string]sensorscfg.Sensor{}
	for _, code := range codes {
		file.Sensors.Luftdaten[code] = sensorscfg.Sensor{
			Name:      "Sensor " + code,
			StartDate: "2018-06-01",
			Location:  sensorscfg.Location{Latitude: &lat, Longitude: &lon},
		}
	}
	return file
}

func TestDiffAgreement(t *testing.T) {
	cat := &catalog.Catalog{Sensors: []catalog.SensorConfig{
		{
			Code: "7675",
			DayOfWeek: catalog.DataTypeInfo{
				AvailableDates: map[string][]catalog.MonthEntry{"2018": {{Month: 6, Path: "a.csv"}}},
			},
		},
	}}

	if findings := diff(configFile(t, "7675"), cat); len(findings) != 0 {
		t.Fatalf("unexpected findings: %v", findings)
	}
}

func TestDiffReportsDrift(t *testing.T) {
	cat := &catalog.Catalog{Sensors: []catalog.SensorConfig{
		{Code: "113"},
	}}

	findings := diff(configFile(t, "7675"), cat)
	joined := strings.Join(findings, "\n")

	for _, want := range []string{
		"sensor 7675 is configured but missing from the catalog",
		"sensor 113 is in the catalog but not configured",
		"sensor 113 has no available dates",
	} {
		if !strings.Contains(joined, want) {
			t.Fatalf("findings missing %q:\n%s", want, joined)
		}
	}
}
