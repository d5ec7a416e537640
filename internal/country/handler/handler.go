package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"countryfx/internal/domain"
)

// CountryService is the read/delete surface the handlers consume.
type CountryService interface {
	List(ctx context.Context, filter domain.CountryFilter) ([]domain.Country, error)
	GetByName(ctx context.Context, name string) (domain.Country, error)
	DeleteByName(ctx context.Context, name string) error
	Status(ctx context.Context) (domain.Status, error)
}

// CountryRefresher runs one refresh cycle against the upstream providers.
type CountryRefresher interface {
	Refresh(ctx context.Context) (domain.RefreshReport, error)
}

type Handler struct {
	service   CountryService
	refresher CountryRefresher
}

func NewCountryHandler(service CountryService, refresher CountryRefresher) *Handler {
	return &Handler{service: service, refresher: refresher}
}

// CountryResponse is the wire form of one stored country. Optional columns
// render as explicit nulls.
type CountryResponse struct {
	Name            string    `json:"name"`
	Capital         *string   `json:"capital"`
	Region          *string   `json:"region"`
	Population      int64     `json:"population"`
	CurrencyCode    *string   `json:"currency_code"`
	ExchangeRate    *float64  `json:"exchange_rate"`
	EstimatedGDP    *float64  `json:"estimated_gdp"`
	FlagURL         *string   `json:"flag_url"`
	LastRefreshedAt time.Time `json:"last_refreshed_at"`
}

func toCountryResponse(c domain.Country) CountryResponse {
	return CountryResponse{
		Name:            c.Name,
		Capital:         c.Capital,
		Region:          c.Region,
		Population:      c.Population,
		CurrencyCode:    c.CurrencyCode,
		ExchangeRate:    c.ExchangeRate,
		EstimatedGDP:    c.EstimatedGDP,
		FlagURL:         c.FlagURL,
		LastRefreshedAt: c.LastRefreshedAt,
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, statusCode int, errorMsg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(errorResponse{
		Error: errorMsg,
	})
}

func writeJSON(w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(payload)
}
