package v1

import (
	"bytes"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/gin-gonic/gin"

	"mainport/internal/service/report"
	"mainport/internal/util"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// contentDisposition attachment header with an ASCII fallback and the UTF-8 name.
func contentDisposition(title, ext string) string {
	slug := util.Slugify(title)
	return fmt.Sprintf("attachment; filename=\"%s.%s\"; filename*=UTF-8''%s.%s",
		slug, ext, url.PathEscape(title), ext)
}

// ExportXLSX scenario workbook download
// GET /api/sessions/:id/export.xlsx
func (h *Handler) ExportXLSX(c *gin.Context) {
	sess, err := h.sessions.Get(c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}

	file, err := h.exporter.Export(sess.State, sess.Result)
	if err != nil {
		writeError(c, err)
		return
	}
	defer file.Close()

	buf, err := file.WriteToBuffer()
	if err != nil {
		writeError(c, err)
		return
	}

	c.Header("Content-Disposition", contentDisposition(sess.State.Title, "xlsx"))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

// ExportPDF scenario report download
// GET /api/sessions/:id/report.pdf
func (h *Handler) ExportPDF(c *gin.Context) {
	sess, err := h.sessions.Get(c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}

	var buf bytes.Buffer
	if err := report.Write(&buf, report.Input{State: sess.State, Result: sess.Result, Generated: time.Now()}); err != nil {
		writeError(c, err)
		return
	}

	c.Header("Content-Disposition", contentDisposition(sess.State.Title, "pdf"))
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}
