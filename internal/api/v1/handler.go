package v1

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"mainport/internal/service/calculator"
	"mainport/internal/service/charts"
	"mainport/internal/service/excel"
	"mainport/internal/service/store"
)

// Handler scenario dashboard API
type Handler struct {
	engine   *calculator.Engine
	sessions *store.MemoryStore
	exporter *excel.Exporter
}

// NewHandler creates the API handler
func NewHandler(engine *calculator.Engine, sessions *store.MemoryStore) *Handler {
	return &Handler{
		engine:   engine,
		sessions: sessions,
		exporter: excel.NewExporter(),
	}
}

// RegisterRoutes registers the API routes
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/status", h.GetStatus)

	// scenario sessions
	router.POST("/sessions", h.CreateSession)
	router.GET("/sessions/:id", h.GetSession)
	router.PATCH("/sessions/:id", h.UpdateSession)
	router.PUT("/sessions/:id/runways", h.SetRunways)
	router.POST("/sessions/:id/reset", h.ResetSession)
	router.DELETE("/sessions/:id", h.DeleteSession)

	// presentation
	router.GET("/sessions/:id/noise", h.GetNoiseMap)
	router.GET("/sessions/:id/cards", h.GetCards)
	router.GET("/sessions/:id/charts/:name", h.GetChart)
	router.GET("/sessions/:id/dashboard", h.GetDashboard)

	// exports
	router.GET("/sessions/:id/export.xlsx", h.ExportXLSX)
	router.GET("/sessions/:id/report.pdf", h.ExportPDF)

	// stateless
	router.POST("/kpis", h.CalculateKPIs)
	router.GET("/governance", h.GetGovernance)
	router.GET("/charts/governance", h.GetGovernanceChart)
	router.GET("/share", h.GetShareLink)
}

// writeError maps domain errors onto HTTP status codes.
func writeError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, calculator.ErrInvalidArgument), errors.Is(err, calculator.ErrUnknownRunway):
		status = http.StatusBadRequest
	case errors.Is(err, calculator.ErrHaulMixLocked):
		status = http.StatusConflict
	case errors.Is(err, store.ErrSessionNotFound), errors.Is(err, charts.ErrUnknownChart):
		status = http.StatusNotFound
	}
	if status == http.StatusInternalServerError {
		log.Error().Err(err).Str("path", c.FullPath()).Msg("request failed")
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
}
