package selection

import (
	"testing"

	"github.com/luftviz/luftviz/services/dashboard/catalog"
	"github.com/luftviz/luftviz/services/dashboard/viewstate"
)

func testCatalog() *catalog.Catalog {
	return &catalog.Catalog{
		Sensors: []catalog.SensorConfig{
			{
				Code: "7675",
				Name: "Talbot Road",
				DayOfWeek: catalog.DataTypeInfo{
					AvailableDates: map[string][]catalog.MonthEntry{
						"2019": {{Month: 3, Path: "a.csv"}, {Month: 1, Path: "b.csv"}},
						"2018": {{Month: 12, Path: "c.csv"}},
					},
				},
			},
			{Code: "113", Name: "City Centre"},
		},
	}
}

func TestBuildSlotControlsSensors(t *testing.T) {
	sel := viewstate.Selection{SensorCode: "113"}
	controls := BuildSlotControls(testCatalog(), 1, sel, catalog.DataTypeDayOfWeek)

	if len(controls.SensorOptions) != 3 {
		t.Fatalf("got %d sensor options, want placeholder + 2", len(controls.SensorOptions))
	}
	if controls.SensorOptions[0].Value != "" || controls.SensorOptions[0].Label != "Select sensor..." {
		t.Fatalf("placeholder = %#v", controls.SensorOptions[0])
	}
	if controls.SensorOptions[1].Label != "Talbot Road (7675)" {
		t.Fatalf("label = %q", controls.SensorOptions[1].Label)
	}
	if controls.SensorOptions[1].Selected || !controls.SensorOptions[2].Selected {
		t.Fatalf("selection marks wrong: %#v", controls.SensorOptions)
	}
}

func TestBuildSlotControlsDatesSorted(t *testing.T) {
	sel := viewstate.Selection{
		SensorCode: "7675",
		Date:       &viewstate.YearMonth{Year: 2019, Month: 1},
	}
	controls := BuildSlotControls(testCatalog(), 1, sel, catalog.DataTypeDayOfWeek)

	wantValues := []string{"", "2018-12", "2019-1", "2019-3"}
	wantLabels := []string{"Select date...", "December 2018", "January 2019", "March 2019"}
	if len(controls.DateOptions) != len(wantValues) {
		t.Fatalf("got %d date options, want %d", len(controls.DateOptions), len(wantValues))
	}
	for i, opt := range controls.DateOptions {
		if opt.Value != wantValues[i] || opt.Label != wantLabels[i] {
			t.Fatalf("option %d = %#v, want %q/%q", i, opt, wantValues[i], wantLabels[i])
		}
	}
	if !controls.DateOptions[2].Selected {
		t.Fatalf("January 2019 should be selected: %#v", controls.DateOptions)
	}
}

func TestBuildSlotControlsNoSensor(t *testing.T) {
	controls := BuildSlotControls(testCatalog(), 2, viewstate.Selection{}, catalog.DataTypeDayOfWeek)
	if len(controls.DateOptions) != 0 {
		t.Fatalf("no sensor chosen should leave date options empty: %#v", controls.DateOptions)
	}
	if controls.SlotID != 2 {
		t.Fatalf("slot id = %d, want 2", controls.SlotID)
	}
}

func TestBuildSlotControlsUnknownSensor(t *testing.T) {
	sel := viewstate.Selection{SensorCode: "9999"}
	controls := BuildSlotControls(testCatalog(), 1, sel, catalog.DataTypeDayOfWeek)
	if len(controls.DateOptions) != 0 {
		t.Fatalf("unknown sensor must not be dereferenced for dates: %#v", controls.DateOptions)
	}
}

func TestMonthName(t *testing.T) {
	if got := MonthName(5); got != "May" {
		t.Fatalf("MonthName(5) = %q", got)
	}
	if got := MonthName(0); got != "" {
		t.Fatalf("MonthName(0) = %q, want empty", got)
	}
	if got := MonthName(13); got != "" {
		t.Fatalf("MonthName(13) = %q, want empty", got)
	}
}
