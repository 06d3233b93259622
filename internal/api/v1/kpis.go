package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"mainport/internal/util"
)

type kpiRequest struct {
	Slots        int     `json:"slots"`
	FreightShare float64 `json:"freightShare"`
	ShortPct     int     `json:"shortPct"`
	MediumPct    int     `json:"mediumPct"`
	LongPct      int     `json:"longPct"`
}

// CalculateKPIs stateless KPI calculation at the reference runway distribution
// POST /api/kpis
func (h *Handler) CalculateKPIs(c *gin.Context) {
	var req kpiRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	res, err := h.engine.CalculateKPIs(req.Slots, req.FreightShare, req.ShortPct, req.MediumPct, req.LongPct)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"result": res,
		"cards":  util.Cards(res.KPIs),
	})
}
