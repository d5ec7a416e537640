package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
)

const summarySVG = `<svg xmlns="http://www.w3.org/2000/svg" width="420" height="160" viewBox="0 0 420 160">
  <rect width="420" height="160" rx="12" fill="#1e293b"/>
  <text x="24" y="44" font-family="monospace" font-size="20" fill="#f8fafc">countryfx</text>
  <text x="24" y="88" font-family="monospace" font-size="16" fill="#94a3b8">countries stored: %d</text>
  <text x="24" y="120" font-family="monospace" font-size="14" fill="#64748b">rendered %s</text>
</svg>
`

// Image godoc
// @Summary      Fixed-layout SVG summary of the stored data
// @Tags         status
// @Produce      image/svg+xml
// @Success      200 {string} string "SVG document"
// @Failure      500 {object} errorResponse
// @Router       /countries/image [get]
func (h *Handler) Image(w http.ResponseWriter, r *http.Request) {
	status, err := h.service.Status(r.Context())
	if err != nil {
		msg := "ups, couldn't render summary image this time"
		logrus.WithError(err).WithFields(logrus.Fields{"handler": "Image"}).Error(msg)
		writeError(w, http.StatusInternalServerError, msg)
		return
	}

	renderedAt := time.Now().UTC().Format("2006-01-02 15:04 MST")
	w.Header().Set("Content-Type", "image/svg+xml")
	w.WriteHeader(http.StatusOK)
	_, _ = fmt.Fprintf(w, summarySVG, status.TotalCountries, renderedAt)
}
