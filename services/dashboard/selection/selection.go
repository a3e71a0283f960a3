// Package selection turns catalog contents and the current view state
// into render instructions for the per-slot dropdown controls. It does
// no I/O and touches no DOM; the http layer applies its output.
package selection

import (
	"strconv"

	"github.com/luftviz/luftviz/services/dashboard/catalog"
	"github.com/luftviz/luftviz/services/dashboard/viewstate"
)

// Option is one entry of a select control.
type Option struct {
	Value    string
	Label    string
	Selected bool
}

// SlotControls carries the fully populated controls for one slot.
// DateOptions is empty until the slot has a sensor chosen.
type SlotControls struct {
	SlotID        int
	SensorOptions []Option
	DateOptions   []Option
}

var monthNames = [...]string{
	"January", "February", "March",
	"April", "May", "June",
	"July", "August", "September",
	"October", "November", "December",
}

// MonthName returns the English name for a one-based month number, or
// "" when the number is out of range.
func MonthName(month int) string {
	if month < 1 || month > 12 {
		return ""
	}
	return monthNames[month-1]
}

// BuildSlotControls populates one slot's sensor and date dropdowns.
// The selected sensor's date list is sorted ascending by year then
// month before display.
func BuildSlotControls(cat *catalog.Catalog, slotID int, sel viewstate.Selection, dataType catalog.DataType) SlotControls {
	controls := SlotControls{SlotID: slotID}

	controls.SensorOptions = append(controls.SensorOptions, Option{Value: "", Label: "Select sensor..."})
	for _, sensor := range cat.Sensors {
		controls.SensorOptions = append(controls.SensorOptions, Option{
			Value:    sensor.Code,
			Label:    sensor.Name + " (" + sensor.Code + ")",
			Selected: sensor.Code == sel.SensorCode,
		})
	}

	if sel.SensorCode == "" || cat.Find(sel.SensorCode) == nil {
		return controls
	}

	controls.DateOptions = append(controls.DateOptions, Option{Value: "", Label: "Select date..."})
	for _, date := range cat.AvailableDates(sel.SensorCode, dataType) {
		controls.DateOptions = append(controls.DateOptions, Option{
			Value:    date.String(),
			Label:    MonthName(date.Month) + " " + strconv.Itoa(date.Year),
			Selected: sel.Date != nil && *sel.Date == date,
		})
	}

	return controls
}

// BuildControls populates controls for every slot of a page.
func BuildControls(cat *catalog.Catalog, slots []viewstate.Selection, dataType catalog.DataType) []SlotControls {
	controls := make([]SlotControls, 0, len(slots))
	for i, sel := range slots {
		controls = append(controls, BuildSlotControls(cat, i+1, sel, dataType))
	}
	return controls
}
