package http

import (
	"encoding/json"
	"errors"
	"html/template"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/luftviz/luftviz/services/dashboard/catalog"
	"github.com/luftviz/luftviz/services/dashboard/dataload"
	"github.com/luftviz/luftviz/services/dashboard/selection"
	"github.com/luftviz/luftviz/services/dashboard/viewstate"
)

// euLimitPM10 is the EU recommended PM10 limit drawn on the
// time-series chart.
const euLimitPM10 = 50

// Chart area statuses for one render cycle. A cycle either commits
// all its areas together or abandons them; no area is ever left
// showing data from an earlier cycle.
const (
	chartAwaiting = "awaiting" // slot inactive, nothing to load
	chartMissing  = "missing"  // sensor or date not found in catalog
	chartLoading  = "loading"  // slot active, load pending
	chartFailed   = "failed"   // batch load failed
	chartStale    = "stale"    // cycle superseded before completion
	chartURL      = "url"      // renderer fetches the data URL itself
	chartRows     = "rows"     // normalized rows embedded in the page
)

// chartArea is the render instruction for one slot's chart.
type chartArea struct {
	SlotID     int
	Status     string
	Message    string
	DataURL    string
	ValueField string
	RowsJSON   template.JS
	DomainJSON template.JS
	Limit      float64
}

// pageData feeds the page templates.
type pageData struct {
	Title    string
	RouteKey string
	Fragment string
	Controls []selection.SlotControls
	Charts   []chartArea
	Message  string
}

// homePage renders the landing page.
type homePage struct{}

func (p *homePage) Render(c *gin.Context, fragment string) {
	c.HTML(http.StatusOK, "home", pageData{Title: "Home"})
}

// errorPage renders the generic unknown-route page.
type errorPage struct{}

func (p *errorPage) Render(c *gin.Context, fragment string) {
	c.HTML(http.StatusNotFound, "error", pageData{
		Title:   "Error",
		Message: "There is no such page. Use the navigation links above.",
	})
}

// comparisonPage is the shared controller behind the day-of-week and
// over-time pages: two selection slots, one chart area each. When
// loadsRows is set the page loads and embeds normalized rows with a
// shared value domain; otherwise the chart renderer is handed the
// resolved data URL and fetches it itself.
type comparisonPage struct {
	server    *Server
	route     viewstate.RouteID
	title     string
	dataType  catalog.DataType
	loads     *dataload.Coordinator
	loadsRows bool
}

func (p *comparisonPage) Render(c *gin.Context, fragment string) {
	state, err := viewstate.Decode(fragment)
	if err != nil {
		// Decoding fails loudly; no partial page is built from a
		// fragment we could not fully parse.
		c.HTML(http.StatusBadRequest, "error", pageData{
			Title:   "Error",
			Message: "The address is not well formed: " + err.Error(),
		})
		return
	}

	data := pageData{
		Title:    p.title,
		RouteKey: p.route.Key(),
		Fragment: state.Fragment(),
		Controls: selection.BuildControls(p.server.cat, state.Slots, p.dataType),
	}

	charts, active := p.buildChartAreas(state)
	if p.loadsRows {
		p.loadChartRows(c, state, charts, active)
	}
	data.Charts = charts

	c.HTML(http.StatusOK, "comparison", data)
}

// buildChartAreas resolves every slot to a chart instruction and
// collects the active slots for loading. Lookup misses degrade to
// placeholder areas, never errors.
func (p *comparisonPage) buildChartAreas(state viewstate.ViewState) ([]chartArea, []dataload.ActiveSlot) {
	areas := make([]chartArea, len(state.Slots))
	var active []dataload.ActiveSlot

	for i, sel := range state.Slots {
		area := chartArea{SlotID: i + 1, ValueField: state.ValueField}
		switch {
		case !sel.Active():
			area.Status = chartAwaiting
			area.Message = "Select sensor and date above"
		default:
			path := p.server.cat.ResolveDataURL(sel.SensorCode, p.dataType, sel.Date.Year, sel.Date.Month)
			if path == "" {
				area.Status = chartMissing
				area.Message = "No data available for this selection"
			} else if p.loadsRows {
				area.Status = chartLoading
				active = append(active, dataload.ActiveSlot{SlotID: i + 1, URL: p.server.cfg.DataURL(path)})
			} else {
				area.Status = chartURL
				area.DataURL = p.server.cfg.DataURL(path)
			}
		}
		areas[i] = area
	}
	return areas, active
}

// loadChartRows runs the coordinated load and commits its outcome to
// every pending area at once.
func (p *comparisonPage) loadChartRows(c *gin.Context, state viewstate.ViewState, areas []chartArea, active []dataload.ActiveSlot) {
	series, err := p.loads.Load(c.Request.Context(), active, state.ValueField)
	switch {
	case errors.Is(err, dataload.ErrStaleCycle):
		markPending(areas, chartStale, "Superseded by a newer selection")
	case err != nil:
		log.Printf("data load failed for %s: %v", p.route, err)
		markPending(areas, chartFailed, "Could not load sensor data. Try again.")
	default:
		for _, s := range series {
			area := &areas[s.SlotID-1]
			rowsJSON, err := json.Marshal(s.Rows)
			if err != nil {
				log.Printf("encode rows for slot %d: %v", s.SlotID, err)
				area.Status = chartFailed
				area.Message = "Could not prepare sensor data."
				continue
			}
			domainJSON, _ := json.Marshal(s.Domain)
			area.Status = chartRows
			area.RowsJSON = template.JS(rowsJSON)
			area.DomainJSON = template.JS(domainJSON)
			area.Limit = euLimitPM10
		}
	}
}

func markPending(areas []chartArea, status, message string) {
	for i := range areas {
		if areas[i].Status == chartLoading {
			areas[i].Status = status
			areas[i].Message = message
		}
	}
}
