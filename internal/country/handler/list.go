package handler

import (
	"net/http"
	"strings"

	"countryfx/internal/domain"

	"github.com/sirupsen/logrus"
)

// List godoc
// @Summary      List stored countries with optional filters and sorting
// @Tags         countries
// @Produce      json
// @Param        region   query string false "equality filter on region"
// @Param        currency query string false "equality filter on currency code"
// @Param        sort     query string false "name | gdp_desc | gdp_asc | population_desc"
// @Success      200 {array} CountryResponse
// @Failure      500 {object} errorResponse
// @Router       /countries [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	filter := domain.CountryFilter{
		Region:       strings.TrimSpace(r.URL.Query().Get("region")),
		CurrencyCode: strings.ToUpper(strings.TrimSpace(r.URL.Query().Get("currency"))),
		Sort:         strings.TrimSpace(r.URL.Query().Get("sort")),
	}

	countries, err := h.service.List(r.Context(), filter)
	if err != nil {
		msg := "ups, couldn't list countries this time"
		logrus.WithError(err).WithFields(logrus.Fields{"handler": "List", "sort": filter.Sort}).Error(msg)
		writeError(w, http.StatusInternalServerError, msg)
		return
	}

	res := make([]CountryResponse, 0, len(countries))
	for _, c := range countries {
		res = append(res, toCountryResponse(c))
	}
	writeJSON(w, http.StatusOK, res)
}
