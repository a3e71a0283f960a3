// Package sensorscfg loads and validates the curated sensors.yaml
// file that drives the aggregation pipeline. The dashboard uses it to
// cross-check the published catalog; it is not required at runtime.
package sensorscfg

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const startDateLayout = "2006-01-02"

// Location is a latitude/longitude point. Pointers distinguish a
// missing coordinate from zero.
type Location struct {
	Latitude  *float64 `yaml:"latitude"`
	Longitude *float64 `yaml:"longitude"`
}

// Sensor is one curated sensor entry.
type Sensor struct {
	Name      string   `yaml:"name"`
	StartDate string   `yaml:"start_date"`
	Location  Location `yaml:"location"`
}

// File is the sensors.yaml document.
type File struct {
	Sensors struct {
		Luftdaten map[string]Sensor `yaml:"luftdaten"`
	} `yaml:"sensors"`
}

// Codes returns the configured sensor codes, unordered.
func (f File) Codes() []string {
	codes := make([]string, 0, len(f.Sensors.Luftdaten))
	for code := range f.Sensors.Luftdaten {
		codes = append(codes, code)
	}
	return codes
}

// Load reads and validates a sensors.yaml file.
func Load(path string) (File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return File{}, err
	}
	return Parse(data)
}

// Parse decodes and validates sensors.yaml content.
func Parse(data []byte) (File, error) {
	var file File
	if err := yaml.Unmarshal(data, &file); err != nil {
		return File{}, fmt.Errorf("parse sensors config: %w", err)
	}
	if err := Validate(file); err != nil {
		return File{}, err
	}
	return file, nil
}

// Validate checks the structural requirements of the config: at least
// one luftdaten sensor, each with a name, a parseable start date and
// a complete location.
func Validate(file File) error {
	if len(file.Sensors.Luftdaten) == 0 {
		return fmt.Errorf("expected some luftdaten sensors to be defined in config")
	}
	for code, sensor := range file.Sensors.Luftdaten {
		if sensor.Name == "" {
			return fmt.Errorf("sensor %s: expected config to have name", code)
		}
		if _, err := time.Parse(startDateLayout, sensor.StartDate); err != nil {
			return fmt.Errorf("sensor %s: expected start_date to be a date: %w", code, err)
		}
		if sensor.Location.Latitude == nil {
			return fmt.Errorf("sensor %s: expected location to have latitude", code)
		}
		if sensor.Location.Longitude == nil {
			return fmt.Errorf("sensor %s: expected location to have longitude", code)
		}
	}
	return nil
}
