package country

import (
	"testing"

	"countryfx/internal/adapters/httpclient"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/require"
)

func TestMapRecord_FullPayload(t *testing.T) {
	rec := httpclient.CountryRecord{
		Name:       httpclient.CountryName{Common: "Testland", Official: "Republic of Testland"},
		Capital:    []string{"Test City"},
		Region:     "Oceania",
		Population: 1000,
		Currencies: map[string]httpclient.CurrencyInfo{"USD": {Name: "US Dollar", Symbol: "$"}},
		Flags:      httpclient.CountryFlags{PNG: "https://flags.example/testland.png"},
	}

	c := mapRecord(rec, map[string]float64{"USD": 2.0})

	require.Equal(t, "Testland", c.Name)
	require.NotNil(t, c.Capital)
	require.Equal(t, "Test City", *c.Capital)
	require.NotNil(t, c.Region)
	require.Equal(t, "Oceania", *c.Region)
	require.Equal(t, int64(1000), c.Population)
	require.NotNil(t, c.CurrencyCode)
	require.Equal(t, "USD", *c.CurrencyCode)
	require.NotNil(t, c.ExchangeRate)
	require.InDelta(t, 2.0, *c.ExchangeRate, 1e-9)
	require.NotNil(t, c.FlagURL)
	require.Equal(t, "https://flags.example/testland.png", *c.FlagURL)

	// pop * [1000, 2000) / rate
	require.NotNil(t, c.EstimatedGDP)
	require.GreaterOrEqual(t, *c.EstimatedGDP, 500_000.0)
	require.Less(t, *c.EstimatedGDP, 1_000_000.0)
}

func TestMapRecord_MissingFieldsBecomeDefaults(t *testing.T) {
	cases := []struct {
		name string
		rec  httpclient.CountryRecord
	}{
		{name: "empty record", rec: httpclient.CountryRecord{}},
		{name: "blank capital entry", rec: httpclient.CountryRecord{Capital: []string{""}}},
		{name: "negative population", rec: httpclient.CountryRecord{Population: -5}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := mapRecord(tc.rec, map[string]float64{"USD": 1.0})

			require.Equal(t, "Unknown", c.Name)
			require.Nil(t, c.Capital)
			require.Nil(t, c.Region)
			require.GreaterOrEqual(t, c.Population, int64(0))
			require.Nil(t, c.CurrencyCode)
			require.Nil(t, c.ExchangeRate)
			require.Nil(t, c.EstimatedGDP)
			require.Nil(t, c.FlagURL)
		})
	}
}

func TestMapRecord_CurrencyWithoutRate(t *testing.T) {
	rec := httpclient.CountryRecord{
		Name:       httpclient.CountryName{Common: "Norate"},
		Population: 500,
		Currencies: map[string]httpclient.CurrencyInfo{"XXX": {}},
	}

	c := mapRecord(rec, map[string]float64{"USD": 1.0})

	require.NotNil(t, c.CurrencyCode)
	require.Equal(t, "XXX", *c.CurrencyCode)
	require.Nil(t, c.ExchangeRate)
	require.Nil(t, c.EstimatedGDP)
}

func TestMapRecord_ZeroRateLeavesGDPNull(t *testing.T) {
	rec := httpclient.CountryRecord{
		Name:       httpclient.CountryName{Common: "Zeroland"},
		Population: 500,
		Currencies: map[string]httpclient.CurrencyInfo{"ZRL": {}},
	}

	c := mapRecord(rec, map[string]float64{"ZRL": 0})

	require.NotNil(t, c.ExchangeRate)
	require.Nil(t, c.EstimatedGDP)
}

func TestMapRecord_FirstCurrencyIsSmallestCode(t *testing.T) {
	rec := httpclient.CountryRecord{
		Name: httpclient.CountryName{Common: "Multi"},
		Currencies: map[string]httpclient.CurrencyInfo{
			"ZAR": {},
			"EUR": {},
			"USD": {},
		},
	}

	c := mapRecord(rec, nil)

	require.NotNil(t, c.CurrencyCode)
	require.Equal(t, "EUR", *c.CurrencyCode)
}

func TestMapRecord_FlagFallsBackToSVG(t *testing.T) {
	rec := httpclient.CountryRecord{
		Name:  httpclient.CountryName{Common: "Svgland"},
		Flags: httpclient.CountryFlags{SVG: "https://flags.example/svgland.svg"},
	}

	c := mapRecord(rec, nil)

	require.NotNil(t, c.FlagURL)
	require.Equal(t, "https://flags.example/svgland.svg", *c.FlagURL)
}

// The GDP multiplier is intentionally redrawn per record per refresh, so
// the only checkable property is the range it pins the result into.
func TestProperty_EstimatedGDPRange(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("GDP lies in [pop*1000/rate, pop*2000/rate)", prop.ForAll(
		func(population int64, rate float64) bool {
			rec := httpclient.CountryRecord{
				Name:       httpclient.CountryName{Common: "Propland"},
				Population: population,
				Currencies: map[string]httpclient.CurrencyInfo{"PRP": {}},
			}

			c := mapRecord(rec, map[string]float64{"PRP": rate})
			if c.EstimatedGDP == nil {
				return false
			}

			lower := float64(population) * 1000 / rate
			upper := float64(population) * 2000 / rate
			return *c.EstimatedGDP >= lower && *c.EstimatedGDP < upper || population == 0 && *c.EstimatedGDP == 0
		},
		gen.Int64Range(0, 2_000_000_000),
		gen.Float64Range(0.001, 10_000),
	))

	properties.Property("unknown currency code means no rate and no GDP", prop.ForAll(
		func(population int64) bool {
			rec := httpclient.CountryRecord{
				Name:       httpclient.CountryName{Common: "Propland"},
				Population: population,
				Currencies: map[string]httpclient.CurrencyInfo{"PRP": {}},
			}

			c := mapRecord(rec, map[string]float64{"OTH": 1.5})
			return c.ExchangeRate == nil && c.EstimatedGDP == nil
		},
		gen.Int64Range(0, 2_000_000_000),
	))

	properties.TestingRun(t)
}
