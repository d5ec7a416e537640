package handler

import (
	"errors"
	"net/http"

	"countryfx/internal/domain"

	"github.com/sirupsen/logrus"
)

// DeleteByName godoc
// @Summary      Delete one stored country by name
// @Tags         countries
// @Param        name path string true "country name, case-insensitive"
// @Success      204 "deleted"
// @Failure      400 {object} errorResponse
// @Failure      404 {object} errorResponse
// @Failure      500 {object} errorResponse
// @Router       /countries/{name} [delete]
func (h *Handler) DeleteByName(w http.ResponseWriter, r *http.Request) {
	name := pathName(r)
	if name == "" {
		writeError(w, http.StatusBadRequest, "country name is required")
		return
	}

	if err := h.service.DeleteByName(r.Context(), name); err != nil {
		if errors.Is(err, domain.ErrCountryNotFound) {
			writeError(w, http.StatusNotFound, "country not found")
			return
		}
		msg := "ups, couldn't delete country this time"
		logrus.WithError(err).WithFields(logrus.Fields{"handler": "DeleteByName", "name": name}).Error(msg)
		writeError(w, http.StatusInternalServerError, msg)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
