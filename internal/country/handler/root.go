package handler

import (
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
)

type RootResponse struct {
	Service         string     `json:"service"`
	Status          string     `json:"status"`
	TotalCountries  int64      `json:"total_countries"`
	LastRefreshedAt *time.Time `json:"last_refreshed_at"`
}

// Root godoc
// @Summary      Liveness and service info
// @Tags         status
// @Produce      json
// @Success      200 {object} RootResponse
// @Router       / [get]
func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	status, err := h.service.Status(r.Context())
	if err != nil {
		// Liveness must not depend on the database being reachable.
		logrus.WithError(err).Warn("Root status lookup failed")
		writeJSON(w, http.StatusOK, RootResponse{Service: "countryfx", Status: "ok"})
		return
	}

	writeJSON(w, http.StatusOK, RootResponse{
		Service:         "countryfx",
		Status:          "ok",
		TotalCountries:  status.TotalCountries,
		LastRefreshedAt: status.LastRefreshedAt,
	})
}
