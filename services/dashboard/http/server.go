package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/luftviz/luftviz/services/dashboard/catalog"
	"github.com/luftviz/luftviz/services/dashboard/config"
	"github.com/luftviz/luftviz/services/dashboard/dataload"
	"github.com/luftviz/luftviz/services/dashboard/router"
	"github.com/luftviz/luftviz/services/dashboard/viewstate"
)

// Server bundles the gin engine, the loaded catalog and the fragment
// router for the dashboard.
type Server struct {
	cfg    config.Config
	cat    *catalog.Catalog
	engine *gin.Engine
	router *router.Router
}

// New constructs a server with routes and middleware. The catalog is
// loaded by the caller; a dashboard without one is not usable.
func New(cfg config.Config, cat *catalog.Catalog) *Server {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(gin.Logger())
	engine.Use(corsMiddleware())
	engine.SetHTMLTemplate(pageTemplates)

	server := &Server{cfg: cfg, cat: cat, engine: engine}

	client := &http.Client{Timeout: cfg.FetchTimeout}
	server.router = &router.Router{
		Home: &homePage{},
		DayOfWeek: &comparisonPage{
			server:   server,
			route:    viewstate.RouteDayOfWeek,
			title:    "Best/worst times of the week",
			dataType: catalog.DataTypeDayOfWeek,
		},
		OverTime: &comparisonPage{
			server:    server,
			route:     viewstate.RouteOverTime,
			title:     "Air quality over time",
			dataType:  catalog.DataType24HourMeans,
			loads:     dataload.New(client),
			loadsRows: true,
		},
		Fallback: &errorPage{},
	}

	server.registerRoutes()
	return server
}

// Engine exposes the underlying gin engine (for tests).
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

// Run starts the HTTP server and blocks until shutdown.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.cfg.ListenAddr(),
		Handler: s.engine,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) registerRoutes() {
	s.engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "sensors": len(s.cat.Sensors)})
	})

	s.engine.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusFound, "/view/")
	})
	s.engine.GET("/view/*fragment", s.handleView)

	s.engine.GET("/api/v1/state", s.handleDecodeState)

	if s.cfg.DataDir != "" {
		s.engine.Static("/data", s.cfg.DataDir)
	}
}

// handleView runs one render cycle: the fragment is read fresh from
// the request, decoded and dispatched to exactly one page controller.
func (s *Server) handleView(c *gin.Context) {
	fragment := c.Param("fragment")
	if len(fragment) > 0 && fragment[0] == '/' {
		fragment = fragment[1:]
	}
	s.router.Route(c, fragment)
}

// handleDecodeState exposes the fragment codec: it decodes a fragment
// into view state JSON, or reports a malformed fragment loudly.
func (s *Server) handleDecodeState(c *gin.Context) {
	fragment := c.Query("fragment")
	state, err := viewstate.Decode(fragment)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	slots := make([]gin.H, 0, len(state.Slots))
	for i, sel := range state.Slots {
		slot := gin.H{
			"slot":   i + 1,
			"sensor": sel.SensorCode,
			"active": sel.Active(),
		}
		if sel.Date != nil {
			slot["date"] = sel.Date.String()
		}
		slots = append(slots, slot)
	}

	c.JSON(http.StatusOK, gin.H{
		"route":      state.Route.String(),
		"valueField": state.ValueField,
		"slots":      slots,
	})
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
