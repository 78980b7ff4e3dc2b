// Package api wires the HTTP surface of the simulation server.
package api

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"

	"prediction-maker-go/config"
	"prediction-maker-go/infrastructure/logger"
	"prediction-maker-go/internal/api/handlers"
	"prediction-maker-go/internal/api/middleware"
	"prediction-maker-go/metrics"
)

// ScenarioStore holds the current default scenario, safe for concurrent
// reads while the config watcher replaces it.
type ScenarioStore struct {
	mu  sync.RWMutex
	cfg config.Scenario
}

// NewScenarioStore seeds the store with an initial scenario.
func NewScenarioStore(cfg config.Scenario) *ScenarioStore {
	return &ScenarioStore{cfg: cfg}
}

// Scenario returns the current default scenario.
func (s *ScenarioStore) Scenario() config.Scenario {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg
}

// Update replaces the default scenario.
func (s *ScenarioStore) Update(cfg config.Scenario) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cfg = cfg
}

// NewRouter builds the full HTTP handler: simulation endpoints, health
// check and Prometheus metrics, wrapped with permissive CORS.
func NewRouter(store *ScenarioStore, log *logger.Logger, rec *metrics.Recorder) http.Handler {
	router := gin.New()
	router.Use(middleware.ErrorHandler())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	sim := handlers.NewSimulateHandler(store, log, rec)
	v1 := router.Group("/api/v1")
	{
		v1.POST("/simulate", sim.Run)
		v1.GET("/scenario", sim.Scenario)
		v1.GET("/simulate/stream", sim.Stream)
	}

	return cors.AllowAll().Handler(router)
}
