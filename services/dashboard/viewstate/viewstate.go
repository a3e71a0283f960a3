package viewstate

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// NumSlots is the number of sensor comparison slots on each page.
const NumSlots = 2

// DefaultValueField is the measurement column charts use unless the
// fragment says otherwise.
const DefaultValueField = "P1"

// RouteID identifies a dashboard page.
type RouteID int

const (
	RouteHome RouteID = iota
	RouteDayOfWeek
	RouteOverTime
	RouteUnknown
)

var routeKeys = map[RouteID]string{
	RouteHome:      "",
	RouteDayOfWeek: "dayofweek",
	RouteOverTime:  "overtime",
}

func (r RouteID) String() string {
	if key, ok := routeKeys[r]; ok {
		if key == "" {
			return "home"
		}
		return key
	}
	return "unknown"
}

// Key returns the fragment keyword for the route ("" for home).
func (r RouteID) Key() string {
	return routeKeys[r]
}

// ParseRoute splits a fragment into its route and the selection part
// after the first slash. It is total: any string maps to a route.
func ParseRoute(fragment string) (RouteID, string) {
	fragment = strings.TrimPrefix(fragment, "#")
	key, rest, _ := strings.Cut(fragment, "/")
	switch key {
	case "":
		return RouteHome, rest
	case "dayofweek":
		return RouteDayOfWeek, rest
	case "overtime":
		return RouteOverTime, rest
	default:
		return RouteUnknown, rest
	}
}

// YearMonth is a calendar month selection.
type YearMonth struct {
	Year  int
	Month int
}

// String renders the fragment form, e.g. "2018-6". Months are not
// zero padded; bookmarked URLs carry them bare.
func (ym YearMonth) String() string {
	return strconv.Itoa(ym.Year) + "-" + strconv.Itoa(ym.Month)
}

// Selection is one slot's sensor/date choice. A zero SensorCode or a
// nil Date means nothing is chosen for that part.
type Selection struct {
	SensorCode string
	Date       *YearMonth
}

// Active reports whether the slot has both a sensor and a date and so
// is eligible for data loading. A date without a sensor is inactive.
func (s Selection) Active() bool {
	return s.SensorCode != "" && s.Date != nil
}

// ViewState is the application state carried by the URL fragment. It
// is rebuilt from the fragment on every navigation; nothing else holds
// selection state.
type ViewState struct {
	Route      RouteID
	ValueField string
	Slots      []Selection
}

// Fragment serializes the state back to its fragment form.
func (v ViewState) Fragment() string {
	return Encode(v.Route, v.ValueField, v.Slots)
}

// ErrMalformedFragment reports a selection pair that did not split
// into exactly two parts on "=". Decoding aborts rather than guessing.
var ErrMalformedFragment = errors.New("query string key value pair not formatted correctly")

// Encode builds the fragment for a route and slot selections:
//
//	dayofweek/sensor1=7675&date1=2018-6&sensor2=&date2=
//
// Every slot field is present even when empty. The valueField pair is
// appended only when it differs from the default, so canonical
// fragments stay short and Decode(Encode(s)) == s.
func Encode(route RouteID, valueField string, slots []Selection) string {
	var b strings.Builder
	b.WriteString(route.Key())
	b.WriteString("/")
	for i := 0; i < NumSlots; i++ {
		var sel Selection
		if i < len(slots) {
			sel = slots[i]
		}
		if i > 0 {
			b.WriteString("&")
		}
		n := strconv.Itoa(i + 1)
		b.WriteString("sensor" + n + "=" + sel.SensorCode)
		b.WriteString("&date" + n + "=")
		if sel.Date != nil {
			b.WriteString(sel.Date.String())
		}
	}
	if valueField != "" && valueField != DefaultValueField {
		b.WriteString("&valueField=" + valueField)
	}
	return b.String()
}

// Decode parses a fragment into a ViewState. Unknown keys are ignored
// for forward compatibility; the literal value "null" decodes to an
// empty selection, matching fragments produced by older clients.
func Decode(fragment string) (ViewState, error) {
	route, rest := ParseRoute(fragment)

	state := ViewState{
		Route:      route,
		ValueField: DefaultValueField,
		Slots:      make([]Selection, NumSlots),
	}

	if rest == "" {
		return state, nil
	}

	for _, pair := range strings.Split(rest, "&") {
		keyValue := strings.Split(pair, "=")
		if len(keyValue) != 2 {
			return ViewState{}, fmt.Errorf("%w: %q", ErrMalformedFragment, pair)
		}
		key, value := keyValue[0], keyValue[1]
		if value == "null" {
			value = ""
		}

		switch {
		case key == "valueField":
			if value != "" {
				state.ValueField = value
			}
		case strings.HasPrefix(key, "sensor"):
			if i, ok := slotIndex(key, "sensor"); ok {
				state.Slots[i].SensorCode = value
			}
		case strings.HasPrefix(key, "date"):
			i, ok := slotIndex(key, "date")
			if !ok || value == "" {
				break
			}
			date, err := parseHyphenatedDate(value)
			if err != nil {
				return ViewState{}, err
			}
			state.Slots[i].Date = &date
		}
	}

	return state, nil
}

// slotIndex maps e.g. "sensor2" to slot index 1. Out-of-range slot
// numbers are treated like unknown keys.
func slotIndex(key, prefix string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimPrefix(key, prefix))
	if err != nil || n < 1 || n > NumSlots {
		return 0, false
	}
	return n - 1, true
}

func parseHyphenatedDate(value string) (YearMonth, error) {
	yearStr, monthStr, found := strings.Cut(value, "-")
	if !found {
		return YearMonth{}, fmt.Errorf("%w: date %q", ErrMalformedFragment, value)
	}
	year, err := strconv.Atoi(yearStr)
	if err != nil {
		return YearMonth{}, fmt.Errorf("%w: date %q", ErrMalformedFragment, value)
	}
	month, err := strconv.Atoi(monthStr)
	if err != nil {
		return YearMonth{}, fmt.Errorf("%w: date %q", ErrMalformedFragment, value)
	}
	return YearMonth{Year: year, Month: month}, nil
}
