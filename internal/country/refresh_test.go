package country

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"countryfx/internal/adapters/httpclient"
	"countryfx/internal/domain"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- Testify mocks ---

type MockCountriesClient struct{ mock.Mock }

func (m *MockCountriesClient) GetCountries(ctx context.Context) ([]httpclient.CountryRecord, error) {
	args := m.Called(ctx)
	records, _ := args.Get(0).([]httpclient.CountryRecord)
	return records, args.Error(1)
}

type MockRateClient struct{ mock.Mock }

func (m *MockRateClient) GetExchangeRates(ctx context.Context, base string) (map[string]float64, error) {
	args := m.Called(ctx, base)
	rates, _ := args.Get(0).(map[string]float64)
	return rates, args.Error(1)
}

type MockCountryRepository struct{ mock.Mock }

func (m *MockCountryRepository) DeleteAll(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockCountryRepository) Insert(ctx context.Context, country domain.Country) error {
	return m.Called(ctx, country).Error(0)
}

func (m *MockCountryRepository) FindByName(ctx context.Context, name string) (domain.Country, error) {
	args := m.Called(ctx, name)
	c, _ := args.Get(0).(domain.Country)
	return c, args.Error(1)
}

func (m *MockCountryRepository) Update(ctx context.Context, name string, country domain.Country) error {
	return m.Called(ctx, name, country).Error(0)
}

func (m *MockCountryRepository) DeleteByName(ctx context.Context, name string) error {
	return m.Called(ctx, name).Error(0)
}

func (m *MockCountryRepository) SelectFiltered(ctx context.Context, filter domain.CountryFilter) ([]domain.Country, error) {
	args := m.Called(ctx, filter)
	countries, _ := args.Get(0).([]domain.Country)
	return countries, args.Error(1)
}

func (m *MockCountryRepository) CountAll(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	count, _ := args.Get(0).(int64)
	return count, args.Error(1)
}

func (m *MockCountryRepository) MaxLastRefreshedAt(ctx context.Context) (*time.Time, error) {
	args := m.Called(ctx)
	ts, _ := args.Get(0).(*time.Time)
	return ts, args.Error(1)
}

type MockCountryCache struct{ mock.Mock }

func (m *MockCountryCache) Get(name string) (domain.Country, bool) {
	args := m.Called(name)
	c, _ := args.Get(0).(domain.Country)
	return c, args.Bool(1)
}

func (m *MockCountryCache) Set(name string, country domain.Country) { m.Called(name, country) }
func (m *MockCountryCache) Del(name string)                         { m.Called(name) }
func (m *MockCountryCache) Clear()                                  { m.Called() }
func (m *MockCountryCache) Close()                                  { m.Called() }

func testRecord(name string, population int64) httpclient.CountryRecord {
	return httpclient.CountryRecord{
		Name:       httpclient.CountryName{Common: name},
		Population: population,
		Currencies: map[string]httpclient.CurrencyInfo{"USD": {}},
	}
}

func newTestRefresher(
	countries *MockCountriesClient,
	rates *MockRateClient,
	repo *MockCountryRepository,
	cache *MockCountryCache,
	strategy domain.RefreshStrategy,
	batchLimit int,
) *Refresher {
	return NewRefresher(countries, rates, repo, cache, strategy, batchLimit, "USD")
}

func TestRefresh_CountriesFetchFails_NothingWritten(t *testing.T) {
	countries := new(MockCountriesClient)
	rates := new(MockRateClient)
	repo := new(MockCountryRepository)
	cache := new(MockCountryCache)
	rf := newTestRefresher(countries, rates, repo, cache, domain.StrategyFullReplace, 50)

	fetchErr := fmt.Errorf("countries api: %w: connection refused", domain.ErrUpstreamUnavailable)
	countries.On("GetCountries", mock.Anything).Return(nil, fetchErr).Once()
	rates.On("GetExchangeRates", mock.Anything, "USD").Return(map[string]float64{"USD": 1.0}, nil).Once()

	_, err := rf.Refresh(context.Background())

	require.ErrorIs(t, err, domain.ErrUpstreamUnavailable)
	repo.AssertNotCalled(t, "DeleteAll", mock.Anything)
	repo.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
	cache.AssertNotCalled(t, "Clear")
}

func TestRefresh_RatesFetchFails_NothingWritten(t *testing.T) {
	countries := new(MockCountriesClient)
	rates := new(MockRateClient)
	repo := new(MockCountryRepository)
	cache := new(MockCountryCache)
	rf := newTestRefresher(countries, rates, repo, cache, domain.StrategyUpsert, 50)

	countries.On("GetCountries", mock.Anything).Return([]httpclient.CountryRecord{testRecord("Testland", 1000)}, nil).Once()
	rates.On("GetExchangeRates", mock.Anything, "USD").
		Return(nil, fmt.Errorf("rates api: %w: timeout", domain.ErrUpstreamUnavailable)).Once()

	_, err := rf.Refresh(context.Background())

	require.ErrorIs(t, err, domain.ErrUpstreamUnavailable)
	repo.AssertNotCalled(t, "FindByName", mock.Anything, mock.Anything)
	repo.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
}

func TestRefresh_EmptyUpstreamList_ZeroCountsNoError(t *testing.T) {
	countries := new(MockCountriesClient)
	rates := new(MockRateClient)
	repo := new(MockCountryRepository)
	cache := new(MockCountryCache)
	rf := newTestRefresher(countries, rates, repo, cache, domain.StrategyFullReplace, 50)

	countries.On("GetCountries", mock.Anything).Return([]httpclient.CountryRecord{}, nil).Once()
	rates.On("GetExchangeRates", mock.Anything, "USD").Return(map[string]float64{}, nil).Once()

	report, err := rf.Refresh(context.Background())

	require.NoError(t, err)
	require.Zero(t, report.TotalProcessed)
	require.Zero(t, report.Successful)
	require.False(t, report.CompletedAt.IsZero())
	repo.AssertNotCalled(t, "DeleteAll", mock.Anything)
	cache.AssertNotCalled(t, "Clear")
}

func TestRefresh_FullReplace_ClearsOnceAndInserts(t *testing.T) {
	countries := new(MockCountriesClient)
	rates := new(MockRateClient)
	repo := new(MockCountryRepository)
	cache := new(MockCountryCache)
	rf := newTestRefresher(countries, rates, repo, cache, domain.StrategyFullReplace, 50)

	payload := []httpclient.CountryRecord{testRecord("Aland", 10), testRecord("Bland", 20)}
	countries.On("GetCountries", mock.Anything).Return(payload, nil).Once()
	rates.On("GetExchangeRates", mock.Anything, "USD").Return(map[string]float64{"USD": 2.0}, nil).Once()
	repo.On("DeleteAll", mock.Anything).Return(nil).Once()
	repo.On("Insert", mock.Anything, mock.Anything).Return(nil).Times(2)
	cache.On("Clear").Once()

	report, err := rf.Refresh(context.Background())

	require.NoError(t, err)
	require.Equal(t, 2, report.TotalProcessed)
	require.Equal(t, 2, report.Successful)
	repo.AssertExpectations(t)
	repo.AssertNotCalled(t, "FindByName", mock.Anything, mock.Anything)
	cache.AssertExpectations(t)
}

func TestRefresh_FullReplace_SingleInsertFailureIsSkipped(t *testing.T) {
	countries := new(MockCountriesClient)
	rates := new(MockRateClient)
	repo := new(MockCountryRepository)
	cache := new(MockCountryCache)
	rf := newTestRefresher(countries, rates, repo, cache, domain.StrategyFullReplace, 50)

	payload := []httpclient.CountryRecord{testRecord("Aland", 10), testRecord("Bland", 20), testRecord("Cland", 30)}
	countries.On("GetCountries", mock.Anything).Return(payload, nil).Once()
	rates.On("GetExchangeRates", mock.Anything, "USD").Return(map[string]float64{"USD": 2.0}, nil).Once()
	repo.On("DeleteAll", mock.Anything).Return(nil).Once()
	repo.On("Insert", mock.Anything, mock.MatchedBy(func(c domain.Country) bool { return c.Name == "Bland" })).
		Return(errors.New("duplicate key value violates unique constraint")).Once()
	repo.On("Insert", mock.Anything, mock.Anything).Return(nil).Times(2)
	cache.On("Clear").Once()

	report, err := rf.Refresh(context.Background())

	require.NoError(t, err)
	require.Equal(t, 3, report.TotalProcessed)
	require.Equal(t, 2, report.Successful)
	require.LessOrEqual(t, report.Successful, report.TotalProcessed)
}

func TestRefresh_FullReplace_DeleteAllFailureAborts(t *testing.T) {
	countries := new(MockCountriesClient)
	rates := new(MockRateClient)
	repo := new(MockCountryRepository)
	cache := new(MockCountryCache)
	rf := newTestRefresher(countries, rates, repo, cache, domain.StrategyFullReplace, 50)

	countries.On("GetCountries", mock.Anything).Return([]httpclient.CountryRecord{testRecord("Aland", 10)}, nil).Once()
	rates.On("GetExchangeRates", mock.Anything, "USD").Return(map[string]float64{"USD": 2.0}, nil).Once()
	repo.On("DeleteAll", mock.Anything).Return(errors.New("db down")).Once()

	_, err := rf.Refresh(context.Background())

	require.Error(t, err)
	repo.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
}

func TestRefresh_Upsert_UpdatesExistingInsertsMissing(t *testing.T) {
	countries := new(MockCountriesClient)
	rates := new(MockRateClient)
	repo := new(MockCountryRepository)
	cache := new(MockCountryCache)
	rf := newTestRefresher(countries, rates, repo, cache, domain.StrategyUpsert, 50)

	payload := []httpclient.CountryRecord{testRecord("Existing", 10), testRecord("Fresh", 20)}
	countries.On("GetCountries", mock.Anything).Return(payload, nil).Once()
	rates.On("GetExchangeRates", mock.Anything, "USD").Return(map[string]float64{"USD": 2.0}, nil).Once()

	repo.On("FindByName", mock.Anything, "Existing").Return(domain.Country{Name: "Existing"}, nil).Once()
	repo.On("Update", mock.Anything, "Existing", mock.Anything).Return(nil).Once()
	repo.On("FindByName", mock.Anything, "Fresh").Return(domain.Country{}, domain.ErrCountryNotFound).Once()
	repo.On("Insert", mock.Anything, mock.MatchedBy(func(c domain.Country) bool { return c.Name == "Fresh" })).
		Return(nil).Once()
	cache.On("Clear").Once()

	report, err := rf.Refresh(context.Background())

	require.NoError(t, err)
	require.Equal(t, 2, report.TotalProcessed)
	require.Equal(t, 2, report.Successful)
	repo.AssertExpectations(t)
	repo.AssertNotCalled(t, "DeleteAll", mock.Anything)
}

func TestRefresh_Upsert_LookupFailureSkipsRecordOnly(t *testing.T) {
	countries := new(MockCountriesClient)
	rates := new(MockRateClient)
	repo := new(MockCountryRepository)
	cache := new(MockCountryCache)
	rf := newTestRefresher(countries, rates, repo, cache, domain.StrategyUpsert, 50)

	payload := []httpclient.CountryRecord{testRecord("Broken", 10), testRecord("Fine", 20)}
	countries.On("GetCountries", mock.Anything).Return(payload, nil).Once()
	rates.On("GetExchangeRates", mock.Anything, "USD").Return(map[string]float64{"USD": 2.0}, nil).Once()

	repo.On("FindByName", mock.Anything, "Broken").Return(domain.Country{}, errors.New("connection reset")).Once()
	repo.On("FindByName", mock.Anything, "Fine").Return(domain.Country{}, domain.ErrCountryNotFound).Once()
	repo.On("Insert", mock.Anything, mock.Anything).Return(nil).Once()
	cache.On("Clear").Once()

	report, err := rf.Refresh(context.Background())

	require.NoError(t, err)
	require.Equal(t, 2, report.TotalProcessed)
	require.Equal(t, 1, report.Successful)
}

func TestRefresh_BatchLimitBoundsProcessing(t *testing.T) {
	countries := new(MockCountriesClient)
	rates := new(MockRateClient)
	repo := new(MockCountryRepository)
	cache := new(MockCountryCache)
	rf := newTestRefresher(countries, rates, repo, cache, domain.StrategyFullReplace, 2)

	payload := []httpclient.CountryRecord{
		testRecord("Aland", 10),
		testRecord("Bland", 20),
		testRecord("Cland", 30),
		testRecord("Dland", 40),
	}
	countries.On("GetCountries", mock.Anything).Return(payload, nil).Once()
	rates.On("GetExchangeRates", mock.Anything, "USD").Return(map[string]float64{"USD": 2.0}, nil).Once()
	repo.On("DeleteAll", mock.Anything).Return(nil).Once()
	repo.On("Insert", mock.Anything, mock.Anything).Return(nil).Times(2)
	cache.On("Clear").Once()

	report, err := rf.Refresh(context.Background())

	require.NoError(t, err)
	require.Equal(t, 2, report.TotalProcessed)
	require.Equal(t, 2, report.Successful)
	repo.AssertExpectations(t)
}
