package router

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

type spyController struct {
	name  string
	calls *[]string
}

func (s spyController) Render(c *gin.Context, fragment string) {
	*s.calls = append(*s.calls, s.name)
}

func newSpyRouter(calls *[]string) *Router {
	return &Router{
		Home:      spyController{"home", calls},
		DayOfWeek: spyController{"dayofweek", calls},
		OverTime:  spyController{"overtime", calls},
		Fallback:  spyController{"fallback", calls},
	}
}

func TestRouteInvokesExactlyOneController(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		fragment string
		want     string
	}{
		{"", "home"},
		{"/", "home"},
		{"/sensor1=&date1=&sensor2=&date2=", "home"},
		{"dayofweek/sensor1=7675&date1=2018-6&sensor2=&date2=", "dayofweek"},
		{"dayofweek", "dayofweek"},
		{"overtime/sensor1=&date1=&sensor2=&date2=", "overtime"},
		{"product/5", "fallback"},
		{"DAYOFWEEK/x=y", "fallback"},
		{"garbage with spaces / and = signs", "fallback"},
	}

	for _, tc := range cases {
		var calls []string
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		newSpyRouter(&calls).Route(c, tc.fragment)
		if len(calls) != 1 {
			t.Fatalf("Route(%q) invoked %d controllers: %v", tc.fragment, len(calls), calls)
		}
		if calls[0] != tc.want {
			t.Fatalf("Route(%q) = %s, want %s", tc.fragment, calls[0], tc.want)
		}
	}
}
