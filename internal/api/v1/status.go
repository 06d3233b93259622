package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"mainport/internal/model"
	"mainport/internal/service/calculator"
)

// StatusResponse reference data and model constants
type StatusResponse struct {
	BaseSlots       int                 `json:"baseSlots"`
	Runways         []calculator.Runway `json:"runways"`
	Scenarios       []model.Archetype   `json:"scenarios"`
	HaulRows        int                 `json:"haulRows"`
	EconomicFactors int                 `json:"economicFactors"`
	Zones           int                 `json:"zones"`
	Governance      int                 `json:"governance"`
	Sessions        int                 `json:"sessions"`
	BaselineHaulMix model.HaulMix       `json:"baselineHaulMix"`
}

// GetStatus service status
// GET /api/status
func (h *Handler) GetStatus(c *gin.Context) {
	t := h.engine.Tables()
	params := h.engine.Params()

	c.JSON(http.StatusOK, StatusResponse{
		BaseSlots:       params.BaseSlots,
		Runways:         params.Runways,
		Scenarios:       model.Archetypes,
		HaulRows:        len(t.HaulRows),
		EconomicFactors: len(t.EconomicFactors),
		Zones:           len(t.Zones),
		Governance:      len(t.Governance),
		Sessions:        h.sessions.Count(),
		BaselineHaulMix: h.engine.BaselineHaulMix(),
	})
}
