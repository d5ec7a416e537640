package country

import (
	"context"

	"countryfx/internal/adapters"
	"countryfx/internal/domain"
)

// Service exposes read and delete operations over stored countries. Reads by
// name go through the cache first; writes happen only in the refresh job.
type Service struct {
	repo  adapters.CountryRepository
	cache adapters.CountryCache
}

func NewService(repo adapters.CountryRepository, cache adapters.CountryCache) *Service {
	return &Service{repo: repo, cache: cache}
}

func (s *Service) List(ctx context.Context, filter domain.CountryFilter) ([]domain.Country, error) {
	return s.repo.SelectFiltered(ctx, filter)
}

func (s *Service) GetByName(ctx context.Context, name string) (domain.Country, error) {
	if cached, ok := s.cache.Get(name); ok {
		return cached, nil
	}

	country, err := s.repo.FindByName(ctx, name)
	if err != nil {
		return domain.Country{}, err
	}
	s.cache.Set(name, country)
	return country, nil
}

func (s *Service) DeleteByName(ctx context.Context, name string) error {
	if err := s.repo.DeleteByName(ctx, name); err != nil {
		return err
	}
	s.cache.Del(name)
	return nil
}

// Status derives the aggregate view from stored rows; the last-refresh
// timestamp is never tracked separately from the data itself.
func (s *Service) Status(ctx context.Context) (domain.Status, error) {
	total, err := s.repo.CountAll(ctx)
	if err != nil {
		return domain.Status{}, err
	}
	lastRefreshed, err := s.repo.MaxLastRefreshedAt(ctx)
	if err != nil {
		return domain.Status{}, err
	}
	return domain.Status{TotalCountries: total, LastRefreshedAt: lastRefreshed}, nil
}
