package v1

import (
	"bytes"
	"net/http"

	"github.com/gin-gonic/gin"

	"mainport/internal/service/charts"
	"mainport/internal/util"
)

// GetNoiseMap zone GeoJSON with scenario levels and the initial map view
// GET /api/sessions/:id/noise
func (h *Handler) GetNoiseMap(c *gin.Context) {
	sess, err := h.sessions.Get(c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, charts.NoiseFeatures(h.engine.Tables().Zones, sess.Result.Zones, h.engine.NormalLevels()))
}

// GetCards formatted KPI cards
// GET /api/sessions/:id/cards
func (h *Handler) GetCards(c *gin.Context) {
	sess, err := h.sessions.Get(c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"cards": util.Cards(sess.Result.KPIs)})
}

// GetChart one session chart as HTML
// GET /api/sessions/:id/charts/:name
func (h *Handler) GetChart(c *gin.Context) {
	sess, err := h.sessions.Get(c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}

	var buf bytes.Buffer
	if err := charts.Render(&buf, c.Param("name"), sess.Result); err != nil {
		writeError(c, err)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}

// GetGovernance governance scores
// GET /api/governance
func (h *Handler) GetGovernance(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"items": h.engine.Tables().Governance})
}

// GetGovernanceChart governance world map as HTML
// GET /api/charts/governance
func (h *Handler) GetGovernanceChart(c *gin.Context) {
	var buf bytes.Buffer
	if err := charts.GovernanceMap(h.engine.Tables().Governance).Render(&buf); err != nil {
		writeError(c, err)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}

// GetShareLink slug and share path for a title
// GET /api/share?title=...
func (h *Handler) GetShareLink(c *gin.Context) {
	title := c.Query("title")
	c.JSON(http.StatusOK, gin.H{
		"slug": util.Slugify(title),
		"path": util.SharePath(title),
	})
}
