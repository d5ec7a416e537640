package domain

import "errors"

var (
	ErrCountryNotFound     = errors.New("country not found")
	ErrUpstreamUnavailable = errors.New("upstream provider unavailable")
)
