package httpclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"countryfx/internal/domain"
)

// countryFields keeps the upstream response to the columns we actually store.
const countryFields = "name,capital,region,population,currencies,flags"

type CountryName struct {
	Common   string `json:"common"`
	Official string `json:"official"`
}

type CurrencyInfo struct {
	Name   string `json:"name"`
	Symbol string `json:"symbol"`
}

type CountryFlags struct {
	PNG string `json:"png"`
	SVG string `json:"svg"`
}

// CountryRecord is one raw country object as served by the metadata provider.
// Every field may be absent; the mapper substitutes defaults rather than fail.
type CountryRecord struct {
	Name       CountryName             `json:"name"`
	Capital    []string                `json:"capital"`
	Region     string                  `json:"region"`
	Population int64                   `json:"population"`
	Currencies map[string]CurrencyInfo `json:"currencies"`
	Flags      CountryFlags            `json:"flags"`
}

type CountriesClient struct {
	http    *http.Client
	baseURL string
}

func NewCountriesClient(httpClient *http.Client, baseURL string) *CountriesClient {
	return &CountriesClient{http: httpClient, baseURL: strings.TrimSuffix(baseURL, "/")}
}

// GetCountries fetches the full country list in a single attempt. Any
// transport, status or decode failure is reported as upstream unavailability.
func (c *CountriesClient) GetCountries(ctx context.Context) ([]CountryRecord, error) {
	u, err := url.Parse(c.baseURL + "/all")
	if err != nil {
		return nil, fmt.Errorf("failed to parse countries base URL: %w", err)
	}
	q := u.Query()
	q.Set("fields", countryFields)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create countries request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("countries api: %w: %w", domain.ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("countries api: %w: unexpected status %s", domain.ErrUpstreamUnavailable, resp.Status)
	}

	var records []CountryRecord
	if err = json.NewDecoder(resp.Body).Decode(&records); err != nil {
		return nil, fmt.Errorf("countries api: %w: failed to decode response: %w", domain.ErrUpstreamUnavailable, err)
	}
	return records, nil
}
