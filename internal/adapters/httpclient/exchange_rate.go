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

type ExchangeRateClient struct {
	http    *http.Client
	baseURL string
}

func NewExchangeRateClient(httpClient *http.Client, baseURL string) *ExchangeRateClient {
	return &ExchangeRateClient{http: httpClient, baseURL: strings.TrimSuffix(baseURL, "/")}
}

type ratesResponse struct {
	Result   string             `json:"result"`
	BaseCode string             `json:"base_code"`
	Rates    map[string]float64 `json:"rates"`
}

// GetExchangeRates fetches the conversion table for the given base currency.
// Single attempt; every failure mode is reported as upstream unavailability.
func (c *ExchangeRateClient) GetExchangeRates(ctx context.Context, base string) (map[string]float64, error) {
	u, err := url.Parse(c.baseURL + "/latest/" + base)
	if err != nil {
		return nil, fmt.Errorf("failed to parse rates base URL: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create rates request for base %q: %w", base, err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("rates api: %w: %w", domain.ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("rates api: %w: unexpected status %s for base %q", domain.ErrUpstreamUnavailable, resp.Status, base)
	}

	var rr ratesResponse
	if err = json.NewDecoder(resp.Body).Decode(&rr); err != nil {
		return nil, fmt.Errorf("rates api: %w: failed to decode response for base %q: %w", domain.ErrUpstreamUnavailable, base, err)
	}

	if rr.Result != "success" {
		return nil, fmt.Errorf("rates api: %w: non-success result %q for base %q", domain.ErrUpstreamUnavailable, rr.Result, base)
	}

	if rr.Rates == nil {
		rr.Rates = map[string]float64{}
	}
	return rr.Rates, nil
}
