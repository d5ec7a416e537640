package handler

import (
	"errors"
	"net/http"
	"time"

	"countryfx/internal/domain"

	"github.com/sirupsen/logrus"
)

type RefreshResponse struct {
	Message        string    `json:"message"`
	TotalProcessed int       `json:"total_processed"`
	Successful     int       `json:"successful"`
	LastRefreshed  time.Time `json:"last_refreshed_at"`
}

// Refresh godoc
// @Summary      Refresh stored countries from the upstream providers
// @Tags         countries
// @Produce      json
// @Success      200 {object} RefreshResponse
// @Failure      503 {object} errorResponse
// @Failure      500 {object} errorResponse
// @Router       /countries/refresh [post]
func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	report, err := h.refresher.Refresh(r.Context())
	if err != nil {
		if errors.Is(err, domain.ErrUpstreamUnavailable) {
			logrus.WithError(err).Warn("Refresh rejected, upstream unavailable")
			writeError(w, http.StatusServiceUnavailable, "could not fetch data from upstream providers")
			return
		}
		msg := "ups, couldn't refresh countries this time"
		logrus.WithError(err).WithFields(logrus.Fields{"handler": "Refresh"}).Error(msg)
		writeError(w, http.StatusInternalServerError, msg)
		return
	}

	writeJSON(w, http.StatusOK, RefreshResponse{
		Message:        "countries refreshed",
		TotalProcessed: report.TotalProcessed,
		Successful:     report.Successful,
		LastRefreshed:  report.CompletedAt,
	})
}
