package handler

import (
	"errors"
	"net/http"
	"net/url"
	"strings"

	"countryfx/internal/domain"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"
)

// pathName extracts and normalizes the {name} path parameter.
func pathName(r *http.Request) string {
	raw := chi.URLParam(r, "name")
	if unescaped, err := url.PathUnescape(raw); err == nil {
		raw = unescaped
	}
	return strings.TrimSpace(raw)
}

// GetByName godoc
// @Summary      Fetch one stored country by name
// @Tags         countries
// @Produce      json
// @Param        name path string true "country name, case-insensitive"
// @Success      200 {object} CountryResponse
// @Failure      400 {object} errorResponse
// @Failure      404 {object} errorResponse
// @Failure      500 {object} errorResponse
// @Router       /countries/{name} [get]
func (h *Handler) GetByName(w http.ResponseWriter, r *http.Request) {
	name := pathName(r)
	if name == "" {
		writeError(w, http.StatusBadRequest, "country name is required")
		return
	}

	country, err := h.service.GetByName(r.Context(), name)
	if err != nil {
		if errors.Is(err, domain.ErrCountryNotFound) {
			writeError(w, http.StatusNotFound, "country not found")
			return
		}
		msg := "ups, couldn't get country this time"
		logrus.WithError(err).WithFields(logrus.Fields{"handler": "GetByName", "name": name}).Error(msg)
		writeError(w, http.StatusInternalServerError, msg)
		return
	}

	writeJSON(w, http.StatusOK, toCountryResponse(country))
}
