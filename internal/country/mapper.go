package country

import (
	"maps"
	"math/rand/v2"
	"slices"

	"countryfx/internal/adapters/httpclient"
	"countryfx/internal/domain"
)

const (
	// unknownName substitutes for records whose payload carries no usable name.
	unknownName = "Unknown"

	gdpMultiplierMin = 1000.0
	gdpMultiplierMax = 2000.0
)

// mapRecord merges one raw country record with the exchange-rate table into a
// normalized Country. Missing nested fields become nil columns rather than
// errors. The GDP multiplier is drawn fresh per record per refresh, so stored
// GDP values are range-checkable but not reproducible across runs.
func mapRecord(rec httpclient.CountryRecord, rates map[string]float64) domain.Country {
	country := domain.Country{
		Name:       unknownName,
		Population: rec.Population,
	}
	if rec.Name.Common != "" {
		country.Name = rec.Name.Common
	}
	if country.Population < 0 {
		country.Population = 0
	}
	if len(rec.Capital) > 0 && rec.Capital[0] != "" {
		capital := rec.Capital[0]
		country.Capital = &capital
	}
	if rec.Region != "" {
		region := rec.Region
		country.Region = &region
	}
	if flag := flagURL(rec.Flags); flag != "" {
		country.FlagURL = &flag
	}

	code := firstCurrencyCode(rec.Currencies)
	if code == "" {
		return country
	}
	country.CurrencyCode = &code

	rate, ok := rates[code]
	if !ok {
		return country
	}
	country.ExchangeRate = &rate

	// Guard against a zero rate; GDP stays null rather than going infinite.
	if rate != 0 {
		gdp := float64(country.Population) * gdpMultiplier() / rate
		country.EstimatedGDP = &gdp
	}
	return country
}

// firstCurrencyCode picks the lexicographically smallest code. The payload is
// a JSON object and Go map iteration would otherwise make the pick random.
func firstCurrencyCode(currencies map[string]httpclient.CurrencyInfo) string {
	if len(currencies) == 0 {
		return ""
	}
	return slices.Min(slices.Collect(maps.Keys(currencies)))
}

func flagURL(flags httpclient.CountryFlags) string {
	if flags.PNG != "" {
		return flags.PNG
	}
	return flags.SVG
}

// gdpMultiplier draws uniformly from [1000, 2000).
func gdpMultiplier() float64 {
	return gdpMultiplierMin + rand.Float64()*(gdpMultiplierMax-gdpMultiplierMin)
}
