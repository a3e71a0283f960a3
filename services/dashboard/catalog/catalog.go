package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strconv"

	"github.com/luftviz/luftviz/services/dashboard/viewstate"
)

// DataType names an aggregated data set published for a sensor.
type DataType string

const (
	DataTypeDayOfWeek   DataType = "day_of_week"
	DataType24HourMeans DataType = "24_hour_means"
)

// MonthEntry is one month of available aggregated data for a sensor.
type MonthEntry struct {
	Month     int    `json:"month"`
	MonthName string `json:"month_name"`
	Path      string `json:"path"`
}

// DataTypeInfo lists available months keyed by stringified year, as
// written by the aggregation pipeline. Month lists may arrive in any
// order.
type DataTypeInfo struct {
	AvailableDates map[string][]MonthEntry `json:"available_dates"`
}

// SensorConfig is one sensor's catalog record.
type SensorConfig struct {
	Code       string       `json:"code"`
	Name       string       `json:"name"`
	TwentyFour DataTypeInfo `json:"24_hour_means"`
	DayOfWeek  DataTypeInfo `json:"day_of_week"`
}

// UnmarshalJSON accepts sensor codes written either as JSON strings
// or as bare numbers; the aggregation pipeline emits the latter.
func (s *SensorConfig) UnmarshalJSON(data []byte) error {
	type alias SensorConfig
	aux := struct {
		Code json.RawMessage `json:"code"`
		*alias
	}{alias: (*alias)(s)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if len(aux.Code) == 0 {
		return nil
	}
	var str string
	if err := json.Unmarshal(aux.Code, &str); err == nil {
		s.Code = str
		return nil
	}
	var num json.Number
	if err := json.Unmarshal(aux.Code, &num); err != nil {
		return fmt.Errorf("sensor code: %s", aux.Code)
	}
	s.Code = num.String()
	return nil
}

func (s *SensorConfig) dataTypeInfo(dataType DataType) DataTypeInfo {
	if dataType == DataTypeDayOfWeek {
		return s.DayOfWeek
	}
	return s.TwentyFour
}

// Catalog is the immutable sensor summary, loaded once at startup.
type Catalog struct {
	Sensors []SensorConfig `json:"luftdaten_sensors"`
}

// Load fetches and parses the sensor summary. Any failure here is
// fatal to the dashboard; without a catalog there is no usable UI.
func Load(ctx context.Context, client *http.Client, url string) (*Catalog, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request sensor summary: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("sensor summary: unexpected status %s", resp.Status)
	}

	var cat Catalog
	if err := json.NewDecoder(resp.Body).Decode(&cat); err != nil {
		return nil, fmt.Errorf("decode sensor summary: %w", err)
	}

	return &cat, nil
}

// Find returns the sensor with the given code, or nil when absent.
// Codes are matched exactly and case sensitively.
func (c *Catalog) Find(code string) *SensorConfig {
	for i := range c.Sensors {
		if c.Sensors[i].Code == code {
			return &c.Sensors[i]
		}
	}
	return nil
}

// ResolveDataURL maps a sensor, data type and month onto the path of
// its aggregated data file. Every lookup miss returns "" rather than
// an error; callers show a placeholder for unresolvable slots.
func (c *Catalog) ResolveDataURL(code string, dataType DataType, year, month int) string {
	sensor := c.Find(code)
	if sensor == nil {
		return ""
	}
	months, ok := sensor.dataTypeInfo(dataType).AvailableDates[strconv.Itoa(year)]
	if !ok {
		return ""
	}
	for _, entry := range months {
		if entry.Month == month {
			return entry.Path
		}
	}
	return ""
}

// AvailableDates lists the months a sensor has data for, sorted by
// year then month ascending. The catalog's own lists are unordered.
// The sort is stable so duplicate months keep their input order.
func (c *Catalog) AvailableDates(code string, dataType DataType) []viewstate.YearMonth {
	sensor := c.Find(code)
	if sensor == nil {
		return nil
	}

	var dates []viewstate.YearMonth
	for yearKey, months := range sensor.dataTypeInfo(dataType).AvailableDates {
		year, err := strconv.Atoi(yearKey)
		if err != nil {
			continue
		}
		for _, entry := range months {
			dates = append(dates, viewstate.YearMonth{Year: year, Month: entry.Month})
		}
	}

	sort.SliceStable(dates, func(i, j int) bool {
		if dates[i].Year != dates[j].Year {
			return dates[i].Year < dates[j].Year
		}
		return dates[i].Month < dates[j].Month
	})
	return dates
}
