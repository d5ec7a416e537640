package country

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"countryfx/internal/adapters"
	"countryfx/internal/adapters/httpclient"
	"countryfx/internal/domain"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Refresher runs one fetch → map → persist cycle. Not safe against
// concurrent invocations of itself: two overlapping full-replace cycles can
// interleave deletes and inserts.
type Refresher struct {
	countries adapters.CountriesClient
	rates     adapters.RateClient
	repo      adapters.CountryRepository
	cache     adapters.CountryCache
	// -----
	strategy   domain.RefreshStrategy
	batchLimit int
	baseCode   string
}

func NewRefresher(
	countries adapters.CountriesClient,
	rates adapters.RateClient,
	repo adapters.CountryRepository,
	cache adapters.CountryCache,
	strategy domain.RefreshStrategy,
	batchLimit int,
	baseCode string,
) *Refresher {
	return &Refresher{
		countries:  countries,
		rates:      rates,
		repo:       repo,
		cache:      cache,
		strategy:   strategy,
		batchLimit: batchLimit,
		baseCode:   baseCode,
	}
}

// Refresh fetches both upstream payloads, maps the bounded prefix of the
// country list and persists it with the configured strategy. Nothing is
// written until both fetches have succeeded; after that, a failure on one
// record is logged and skipped rather than failing the batch.
func (rf *Refresher) Refresh(ctx context.Context) (domain.RefreshReport, error) {
	execID := uuid.NewString()

	// STEP 1: both upstreams are independent, fetch them concurrently
	records, rates, err := rf.fetchBoth(ctx)
	if err != nil {
		return domain.RefreshReport{}, err
	}

	// STEP 2: bounded prefix; the full corpus is never processed
	if len(records) > rf.batchLimit {
		records = records[:rf.batchLimit]
	}

	if len(records) == 0 {
		logrus.Infof("Upstream returned no countries, nothing to refresh; execID: %s", execID)
		return domain.RefreshReport{CompletedAt: time.Now().UTC()}, nil
	}

	logrus.Infof("Refreshing %d countries with strategy '%s'; execID: %s", len(records), rf.strategy, execID)

	// STEP 3: full replace clears the table exactly once, after the fetches
	if rf.strategy == domain.StrategyFullReplace {
		if err = rf.repo.DeleteAll(ctx); err != nil {
			return domain.RefreshReport{}, fmt.Errorf("failed to clear countries before refresh: %w", err)
		}
	}

	// STEP 4: map and persist record by record, tracking per-record success
	successful := 0
	for _, rec := range records {
		country := mapRecord(rec, rates)
		if persistErr := rf.persist(ctx, country); persistErr != nil {
			logrus.WithError(persistErr).WithFields(logrus.Fields{
				"country": country.Name,
				"execID":  execID,
			}).Warn("Skipping country record")
			continue
		}
		successful++
	}

	if successful > 0 {
		rf.cache.Clear()
	}

	logrus.Infof("Refresh finished: %d/%d persisted; execID: %s", successful, len(records), execID)
	return domain.RefreshReport{
		TotalProcessed: len(records),
		Successful:     successful,
		CompletedAt:    time.Now().UTC(),
	}, nil
}

// fetchBoth issues the two upstream GETs in parallel. Either failure aborts
// the whole refresh before any write happens.
func (rf *Refresher) fetchBoth(ctx context.Context) ([]httpclient.CountryRecord, map[string]float64, error) {
	var (
		wg      sync.WaitGroup
		records []httpclient.CountryRecord
		rates   map[string]float64

		countriesErr error
		ratesErr     error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		records, countriesErr = rf.countries.GetCountries(ctx)
	}()
	go func() {
		defer wg.Done()
		rates, ratesErr = rf.rates.GetExchangeRates(ctx, rf.baseCode)
	}()
	wg.Wait()

	if err := errors.Join(countriesErr, ratesErr); err != nil {
		return nil, nil, fmt.Errorf("refresh aborted: %w", err)
	}
	return records, rates, nil
}

// persist writes one mapped record using the configured strategy. In upsert
// mode a duplicate name inside the batch degrades to update-after-insert, so
// the last occurrence wins.
func (rf *Refresher) persist(ctx context.Context, country domain.Country) error {
	if rf.strategy == domain.StrategyFullReplace {
		return rf.repo.Insert(ctx, country)
	}

	_, err := rf.repo.FindByName(ctx, country.Name)
	switch {
	case err == nil:
		return rf.repo.Update(ctx, country.Name, country)
	case errors.Is(err, domain.ErrCountryNotFound):
		return rf.repo.Insert(ctx, country)
	default:
		return err
	}
}
