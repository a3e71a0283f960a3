// Package router maps a URL fragment to exactly one page controller.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/luftviz/luftviz/services/dashboard/viewstate"
)

// Controller renders one page for the given fragment.
type Controller interface {
	Render(c *gin.Context, fragment string)
}

// Router dispatches fragments to page controllers. Every field must
// be set; there is no nil-checking at dispatch time.
type Router struct {
	Home      Controller
	DayOfWeek Controller
	OverTime  Controller
	Fallback  Controller
}

// Route resolves the fragment's route keyword and invokes exactly one
// controller. It is total over all fragment strings: an empty
// fragment or one without a slash goes to the home page, anything
// unrecognized goes to the fallback.
func (r *Router) Route(c *gin.Context, fragment string) {
	route, _ := viewstate.ParseRoute(fragment)
	switch route {
	case viewstate.RouteHome:
		r.Home.Render(c, fragment)
	case viewstate.RouteDayOfWeek:
		r.DayOfWeek.Render(c, fragment)
	case viewstate.RouteOverTime:
		r.OverTime.Render(c, fragment)
	default:
		r.Fallback.Render(c, fragment)
	}
}
