package v1

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"mainport/internal/model"
	"mainport/internal/service/store"
	"mainport/internal/testutil"
)

func setupRouter(t *testing.T) (*gin.Engine, *store.MemoryStore) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	engine, err := testutil.Engine()
	require.NoError(t, err)

	sessions := store.NewMemoryStore(time.Hour)
	h := NewHandler(engine, sessions)
	r := gin.New()
	r.GET("/", h.Landing)
	h.RegisterRoutes(r.Group("/api"))
	return r, sessions
}

func doJSON(r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		data, _ := json.Marshal(body)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeSession(t *testing.T, w *httptest.ResponseRecorder) SessionResponse {
	t.Helper()
	var resp SessionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	return resp
}

func createSession(t *testing.T, r http.Handler) SessionResponse {
	t.Helper()
	w := doJSON(r, http.MethodPost, "/api/sessions", nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decodeSession(t, w)
}

func TestGetStatus(t *testing.T) {
	r, _ := setupRouter(t)

	w := doJSON(r, http.MethodGet, "/api/status", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp StatusResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 478000, resp.BaseSlots)
	assert.Len(t, resp.Runways, 6)
	assert.Equal(t, 2, resp.Zones)
	assert.Equal(t, model.HaulMix{ShortPct: 40, MediumPct: 35, LongPct: 25}, resp.BaselineHaulMix)
}

func TestCreateSession(t *testing.T) {
	r, sessions := setupRouter(t)

	resp := createSession(t, r)
	assert.NotEmpty(t, resp.State.ID)
	assert.Equal(t, model.DefaultTitle, resp.State.Title)
	assert.Equal(t, "my-airport-scenario", resp.Slug)
	assert.Equal(t, model.HaulMix{ShortPct: 40, MediumPct: 35, LongPct: 25}, resp.Result.HaulMix)
	assert.Len(t, resp.Cards, 8)
	assert.Len(t, resp.Result.Segments, 6)
	assert.Equal(t, 1, sessions.Count())

	w := doJSON(r, http.MethodPost, "/api/sessions", map[string]any{"title": "Night Curfew"})
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "night-curfew", decodeSession(t, w).Slug)
}

func TestUpdateSession(t *testing.T) {
	r, _ := setupRouter(t)
	id := createSession(t, r).State.ID

	w := doJSON(r, http.MethodPatch, "/api/sessions/"+id, map[string]any{"slots": 578000})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	resp := decodeSession(t, w)
	assert.Equal(t, 578000, resp.State.Slots)
	assert.Equal(t, model.HaulMix{ShortPct: 38, MediumPct: 34, LongPct: 28}, resp.State.HaulMix)

	w = doJSON(r, http.MethodPatch, "/api/sessions/"+id, map[string]any{"scenario": "Custom", "shortPct": 60, "mediumPct": 50})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, model.HaulMix{ShortPct: 60, MediumPct: 40, LongPct: 0}, decodeSession(t, w).Result.HaulMix)
}

func TestUpdateSessionErrors(t *testing.T) {
	r, _ := setupRouter(t)
	id := createSession(t, r).State.ID

	w := doJSON(r, http.MethodPatch, "/api/sessions/"+id, map[string]any{"freightShare": 150})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(r, http.MethodPatch, "/api/sessions/"+id, map[string]any{"shortPct": 80})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = doJSON(r, http.MethodPatch, "/api/sessions/"+id, map[string]any{"slots": "many"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(r, http.MethodPatch, "/api/sessions/unknown", map[string]any{"slots": 1})
	assert.Equal(t, http.StatusNotFound, w.Code)

	// failed updates leave the session untouched
	w = doJSON(r, http.MethodGet, "/api/sessions/"+id, nil)
	require.Equal(t, http.StatusOK, w.Code)
	resp := decodeSession(t, w)
	assert.Equal(t, 5.0, resp.State.FreightSharePct)
	assert.Equal(t, model.ArchetypeHubOptimized, resp.State.Archetype)
}

func TestSetRunways(t *testing.T) {
	r, _ := setupRouter(t)
	id := createSession(t, r).State.ID

	w := doJSON(r, http.MethodPut, "/api/sessions/"+id+"/runways", map[string]any{"shares": map[string]float64{"Oostbaan": 2}})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	resp := decodeSession(t, w)
	assert.Equal(t, 1.0, resp.State.RunwayShares["Oostbaan"])
	assert.Equal(t, 1000, resp.Result.KPIs.HomesAffected)

	w = doJSON(r, http.MethodPut, "/api/sessions/"+id+"/runways", map[string]any{"shares": map[string]float64{"Runway 99": 1}})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(r, http.MethodPut, "/api/sessions/"+id+"/runways", map[string]any{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestResetAndDeleteSession(t *testing.T) {
	r, _ := setupRouter(t)
	id := createSession(t, r).State.ID

	doJSON(r, http.MethodPatch, "/api/sessions/"+id, map[string]any{"slots": 300000, "title": "Shrink"})
	w := doJSON(r, http.MethodPost, "/api/sessions/"+id+"/reset", nil)
	require.Equal(t, http.StatusOK, w.Code)
	resp := decodeSession(t, w)
	assert.Equal(t, id, resp.State.ID)
	assert.Equal(t, 478000, resp.State.Slots)
	assert.Equal(t, model.DefaultTitle, resp.State.Title)

	w = doJSON(r, http.MethodDelete, "/api/sessions/"+id, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	w = doJSON(r, http.MethodGet, "/api/sessions/"+id, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPresentationEndpoints(t *testing.T) {
	r, _ := setupRouter(t)
	id := createSession(t, r).State.ID
	base := "/api/sessions/" + id

	w := doJSON(r, http.MethodGet, base+"/cards", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Lden lowered")

	w = doJSON(r, http.MethodGet, base+"/noise", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "FeatureCollection")
	assert.Contains(t, w.Body.String(), `"view"`)
	assert.Contains(t, w.Body.String(), `"normal"`)

	for _, name := range []string{"pax", "cargo", "value", "employment", "noise"} {
		w = doJSON(r, http.MethodGet, base+"/charts/"+name, nil)
		assert.Equal(t, http.StatusOK, w.Code, name)
		assert.True(t, strings.HasPrefix(w.Header().Get("Content-Type"), "text/html"), name)
	}
	w = doJSON(r, http.MethodGet, base+"/charts/pie", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(r, http.MethodGet, base+"/dashboard", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), model.DefaultTitle)
	assert.Contains(t, w.Body.String(), base+"/charts/noise")

	w = doJSON(r, http.MethodGet, "/api/governance", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "NLD")

	w = doJSON(r, http.MethodGet, "/api/charts/governance", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(r, http.MethodGet, "/api/share?title=Hub+2030", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"slug":"hub-2030","path":"/share/hub-2030"}`, w.Body.String())
}

func TestExports(t *testing.T) {
	r, _ := setupRouter(t)
	id := createSession(t, r).State.ID

	w := doJSON(r, http.MethodGet, "/api/sessions/"+id+"/export.xlsx", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, xlsxContentType, w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "my-airport-scenario.xlsx")

	wb, err := excelize.OpenReader(bytes.NewReader(w.Body.Bytes()))
	require.NoError(t, err)
	assert.Contains(t, wb.GetSheetList(), "Segments")

	w = doJSON(r, http.MethodGet, "/api/sessions/"+id+"/report.pdf", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF-")))
}

func TestCalculateKPIs(t *testing.T) {
	r, _ := setupRouter(t)

	w := doJSON(r, http.MethodPost, "/api/kpis", map[string]any{
		"slots": 478000, "freightShare": 5, "shortPct": 40, "mediumPct": 35, "longPct": 25,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Result model.DerivedResult `json:"result"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.InDelta(t, 7625.1277, resp.Result.KPIs.ValueDirect, 1e-6)
	assert.Equal(t, 0, resp.Result.KPIs.HomesAffected)

	w = doJSON(r, http.MethodPost, "/api/kpis", map[string]any{"slots": -1})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLanding(t *testing.T) {
	r, sessions := setupRouter(t)

	w := doJSON(r, http.MethodGet, "/", nil)
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.True(t, strings.HasSuffix(w.Header().Get("Location"), "/dashboard"))
	assert.Equal(t, 1, sessions.Count())
}

func TestContentDisposition(t *testing.T) {
	got := contentDisposition("Hub groei 2030", "pdf")
	want := "attachment; filename=\"hub-groei-2030.pdf\"; filename*=UTF-8''Hub%20groei%202030.pdf"
	assert.Equal(t, want, got)
}
