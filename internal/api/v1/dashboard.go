package v1

import (
	"bytes"
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"

	"mainport/internal/model"
	"mainport/internal/service/charts"
	"mainport/internal/util"
)

var dashboardTmpl = template.Must(template.New("dashboard").Parse(`<!doctype html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.State.Title}}</title>
<style>
body { font-family: Arial, sans-serif; margin: 1.5rem; color: #1f2937; }
.cards { display: grid; grid-template-columns: repeat(4, 1fr); gap: 0.75rem; }
.card { border: 1px solid #e2e8f0; border-radius: 8px; padding: 0.75rem; }
.card .title { font-size: 0.8rem; color: #64748b; }
.card .value { font-size: 1.4rem; font-weight: bold; }
.charts { display: grid; grid-template-columns: repeat(3, 1fr); gap: 0.75rem; margin-top: 1rem; }
iframe { width: 100%; height: 340px; border: 0; }
</style>
</head>
<body>
<h1>{{.State.Title}}</h1>
<p>
  {{.State.Slots}} slots, {{.State.FreightSharePct}}% freight, {{.State.Archetype}}
  ({{.Mix.ShortPct}}/{{.Mix.MediumPct}}/{{.Mix.LongPct}})
  &middot; <a href="{{.SharePath}}">share</a>
  &middot; <a href="{{.Base}}/export.xlsx">xlsx</a>
  &middot; <a href="{{.Base}}/report.pdf">pdf</a>
</p>
<div class="cards">
{{range .Cards}}  <div class="card"><div class="title">{{.Title}}</div><div class="value">{{.Value}}</div></div>
{{end}}</div>
<div class="charts">
{{range .Charts}}  <iframe src="{{$.Base}}/charts/{{.}}" title="{{.}}"></iframe>
{{end}}</div>
</body>
</html>
`))

type dashboardData struct {
	State     model.ScenarioState
	Mix       model.HaulMix
	Cards     []util.KPICard
	Charts    []string
	Base      string
	SharePath string
}

// GetDashboard KPI cards and chart frames for one session
// GET /api/sessions/:id/dashboard
func (h *Handler) GetDashboard(c *gin.Context) {
	id := c.Param("id")
	sess, err := h.sessions.Get(id)
	if err != nil {
		writeError(c, err)
		return
	}

	data := dashboardData{
		State:     sess.State,
		Mix:       sess.Result.HaulMix,
		Cards:     util.Cards(sess.Result.KPIs),
		Charts:    charts.Names,
		Base:      "/api/sessions/" + id,
		SharePath: util.SharePath(sess.State.Title),
	}

	var buf bytes.Buffer
	if err := dashboardTmpl.Execute(&buf, data); err != nil {
		writeError(c, err)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}
