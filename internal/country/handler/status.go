package handler

import (
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
)

type StatusResponse struct {
	TotalCountries  int64      `json:"total_countries"`
	LastRefreshedAt *time.Time `json:"last_refreshed_at"`
}

// Status godoc
// @Summary      Aggregate view over stored countries
// @Tags         status
// @Produce      json
// @Success      200 {object} StatusResponse
// @Failure      500 {object} errorResponse
// @Router       /status [get]
func (h *Handler) Status(w http.ResponseWriter, r *http.Request) {
	status, err := h.service.Status(r.Context())
	if err != nil {
		msg := "ups, couldn't compute status this time"
		logrus.WithError(err).WithFields(logrus.Fields{"handler": "Status"}).Error(msg)
		writeError(w, http.StatusInternalServerError, msg)
		return
	}

	writeJSON(w, http.StatusOK, StatusResponse{
		TotalCountries:  status.TotalCountries,
		LastRefreshedAt: status.LastRefreshedAt,
	})
}
