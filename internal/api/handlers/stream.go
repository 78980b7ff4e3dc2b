package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"prediction-maker-go/config"
	"prediction-maker-go/internal/api/models"
	"prediction-maker-go/internal/engine"
	"prediction-maker-go/report"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	// The server is typically fronted by its own CORS layer.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Stream handles GET /api/v1/simulate/stream: it upgrades to a websocket,
// runs the default scenario (steps/seed overridable via query parameters)
// and pushes one frame per tick, then a final summary frame.
func (h *SimulateHandler) Stream(c *gin.Context) {
	cfg := h.defaults.Scenario()
	if v := c.Query("steps"); v != "" {
		if steps, err := strconv.Atoi(v); err == nil {
			cfg.Run.Steps = steps
		}
	}
	if v := c.Query("seed"); v != "" {
		if seed, err := strconv.ParseInt(v, 10, 64); err == nil {
			cfg.Run.Seed = seed
		}
	}
	if err := config.Validate(cfg); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{Code: "INVALID_SCENARIO", Message: err.Error()},
		})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade has already written the HTTP error response.
		return
	}
	defer conn.Close()

	states := config.BuildMarkets(cfg)
	eng := engine.NewWithMakerConfig(states, cfg.Run.Seed, cfg.Maker)
	eng.Metrics = h.metrics

	for i := 0; i < cfg.Run.Steps; i++ {
		frame := models.StreamFrame{Step: i, Results: eng.Step()}
		if err := conn.WriteJSON(frame); err != nil {
			h.logger.Warn("stream aborted", zap.Int("step", i), zap.Error(err))
			return
		}
	}

	summary := report.Summarize(states)
	final := models.StreamFrame{Step: cfg.Run.Steps, Summary: &summary}
	if err := conn.WriteJSON(final); err != nil {
		return
	}
	_ = conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, "done"))
}
