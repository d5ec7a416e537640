package domain

import (
	"time"
)

// Country is the merged view of one upstream country record and the
// exchange-rate table from the same refresh cycle. Optional columns are
// pointers so absent values survive the round trip to JSON as null.
type Country struct {
	ID              int64
	Name            string
	Capital         *string
	Region          *string
	Population      int64
	CurrencyCode    *string
	ExchangeRate    *float64
	EstimatedGDP    *float64
	FlagURL         *string
	LastRefreshedAt time.Time
}

// CountryFilter narrows and orders a countries listing. Zero values mean
// "no filter"; an unknown Sort falls back to name ascending.
type CountryFilter struct {
	Region       string
	CurrencyCode string
	Sort         string
}

// Status is the aggregate served by GET /status. LastRefreshedAt is nil
// while the table is empty.
type Status struct {
	TotalCountries  int64
	LastRefreshedAt *time.Time
}
