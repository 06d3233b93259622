package v1

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"mainport/internal/model"
	"mainport/internal/service/store"
	"mainport/internal/util"
)

// SessionResponse scenario levers with everything derived from them
type SessionResponse struct {
	State  model.ScenarioState  `json:"state"`
	Result *model.DerivedResult `json:"result"`
	Cards  []util.KPICard       `json:"cards"`
	Slug   string               `json:"slug"`
}

func sessionResponse(s store.Session) SessionResponse {
	resp := SessionResponse{
		State:  s.State,
		Result: s.Result,
		Slug:   util.Slugify(s.State.Title),
	}
	if s.Result != nil {
		resp.Cards = util.Cards(s.Result.KPIs)
	}
	return resp
}

// recompute wraps a state transition so the stored result always matches the stored state.
func (h *Handler) recompute(next func(model.ScenarioState) (model.ScenarioState, error)) func(store.Session) (store.Session, error) {
	return func(s store.Session) (store.Session, error) {
		st, err := next(s.State)
		if err != nil {
			return store.Session{}, err
		}
		res, err := h.engine.Recompute(st)
		if err != nil {
			return store.Session{}, err
		}
		return store.Session{State: st, Result: res}, nil
	}
}

type createSessionRequest struct {
	Title *string `json:"title"`
}

// CreateSession starts a scenario session at the default levers
// POST /api/sessions
func (h *Handler) CreateSession(c *gin.Context) {
	var req createSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		badRequest(c, err)
		return
	}

	st := h.engine.DefaultState()
	if req.Title != nil {
		next, err := h.engine.ApplyPatch(st, model.ScenarioPatch{Title: req.Title})
		if err != nil {
			writeError(c, err)
			return
		}
		st = next
	}

	res, err := h.engine.Recompute(st)
	if err != nil {
		writeError(c, err)
		return
	}
	sess := h.sessions.Create(st, res)
	c.JSON(http.StatusCreated, sessionResponse(sess))
}

// GetSession returns the session state and result
// GET /api/sessions/:id
func (h *Handler) GetSession(c *gin.Context) {
	sess, err := h.sessions.Get(c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, sessionResponse(sess))
}

// UpdateSession applies a lever patch
// PATCH /api/sessions/:id
func (h *Handler) UpdateSession(c *gin.Context) {
	var patch model.ScenarioPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		badRequest(c, err)
		return
	}

	sess, err := h.sessions.Update(c.Param("id"), h.recompute(func(st model.ScenarioState) (model.ScenarioState, error) {
		return h.engine.ApplyPatch(st, patch)
	}))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, sessionResponse(sess))
}

type runwaysRequest struct {
	Shares map[string]float64 `json:"shares" binding:"required"`
}

// SetRunways replaces the runway distribution
// PUT /api/sessions/:id/runways
func (h *Handler) SetRunways(c *gin.Context) {
	var req runwaysRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	sess, err := h.sessions.Update(c.Param("id"), h.recompute(func(st model.ScenarioState) (model.ScenarioState, error) {
		return h.engine.SetRunwayShares(st, req.Shares)
	}))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, sessionResponse(sess))
}

// ResetSession restores the default levers
// POST /api/sessions/:id/reset
func (h *Handler) ResetSession(c *gin.Context) {
	sess, err := h.sessions.Update(c.Param("id"), h.recompute(func(st model.ScenarioState) (model.ScenarioState, error) {
		return h.engine.Reset(st), nil
	}))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, sessionResponse(sess))
}

// DeleteSession ends a session
// DELETE /api/sessions/:id
func (h *Handler) DeleteSession(c *gin.Context) {
	if err := h.sessions.Delete(c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Landing creates a session and redirects to its dashboard
// GET /
func (h *Handler) Landing(c *gin.Context) {
	st := h.engine.DefaultState()
	res, err := h.engine.Recompute(st)
	if err != nil {
		writeError(c, err)
		return
	}
	sess := h.sessions.Create(st, res)
	c.Redirect(http.StatusSeeOther, "/api/sessions/"+sess.State.ID+"/dashboard")
}
