package adapters

import (
	"context"
	"time"

	"countryfx/internal/adapters/httpclient"
	"countryfx/internal/domain"
)

type CountriesClient interface {
	GetCountries(ctx context.Context) ([]httpclient.CountryRecord, error)
}

type RateClient interface {
	GetExchangeRates(ctx context.Context, base string) (map[string]float64, error)
}

type CountryRepository interface {
	DeleteAll(ctx context.Context) error
	Insert(ctx context.Context, country domain.Country) error
	FindByName(ctx context.Context, name string) (domain.Country, error)
	Update(ctx context.Context, name string, country domain.Country) error
	DeleteByName(ctx context.Context, name string) error
	SelectFiltered(ctx context.Context, filter domain.CountryFilter) ([]domain.Country, error)
	CountAll(ctx context.Context) (int64, error)
	MaxLastRefreshedAt(ctx context.Context) (*time.Time, error)
}

type CountryCache interface {
	Get(name string) (domain.Country, bool)
	Set(name string, country domain.Country)
	Del(name string)
	Clear()
	Close()
}
