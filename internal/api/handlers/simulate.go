// Package handlers implements the HTTP endpoints of the simulation server.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"prediction-maker-go/config"
	"prediction-maker-go/infrastructure/logger"
	"prediction-maker-go/internal/api/models"
	"prediction-maker-go/internal/engine"
	"prediction-maker-go/metrics"
	"prediction-maker-go/report"
)

// ScenarioSource provides the current default scenario; the server hot
// reloads it behind this interface.
type ScenarioSource interface {
	Scenario() config.Scenario
}

// SimulateHandler runs simulations on demand.
type SimulateHandler struct {
	defaults ScenarioSource
	logger   *logger.Logger
	metrics  *metrics.Recorder
}

// NewSimulateHandler creates a simulate handler. logger and rec may be nil.
func NewSimulateHandler(defaults ScenarioSource, log *logger.Logger, rec *metrics.Recorder) *SimulateHandler {
	if log == nil {
		log = logger.Nop()
	}
	return &SimulateHandler{defaults: defaults, logger: log, metrics: rec}
}

// Run handles POST /api/v1/simulate.
func (h *SimulateHandler) Run(c *gin.Context) {
	var req models.SimulateRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error: models.ErrorDetail{
					Code:    "INVALID_REQUEST",
					Message: err.Error(),
				},
			})
			return
		}
	}

	cfg := req.Merge(h.defaults.Scenario())
	if err := config.Validate(cfg); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INVALID_SCENARIO",
				Message: err.Error(),
			},
		})
		return
	}

	states := config.BuildMarkets(cfg)
	eng := engine.NewWithMakerConfig(states, cfg.Run.Seed, cfg.Maker)
	eng.Metrics = h.metrics
	trace := eng.Run(cfg.Run.Steps)

	h.logger.Info("simulation finished",
		zap.Int("steps", cfg.Run.Steps),
		zap.Int64("seed", cfg.Run.Seed),
		zap.Int("markets", len(states)),
	)

	resp := models.SimulateResponse{
		Steps:   cfg.Run.Steps,
		Seed:    cfg.Run.Seed,
		Report:  report.Rows(states),
		Summary: report.Summarize(states),
	}
	if req.IncludeTrace {
		resp.Trace = trace
	}
	c.JSON(http.StatusOK, resp)
}

// Scenario handles GET /api/v1/scenario.
func (h *SimulateHandler) Scenario(c *gin.Context) {
	c.JSON(http.StatusOK, h.defaults.Scenario())
}
