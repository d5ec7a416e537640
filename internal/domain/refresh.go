package domain

import (
	"fmt"
	"time"
)

// RefreshStrategy selects how a refresh cycle writes the mapped batch.
type RefreshStrategy string

const (
	// StrategyFullReplace clears the table once, then inserts every mapped record.
	StrategyFullReplace RefreshStrategy = "full_replace"
	// StrategyUpsert updates same-named rows in place and inserts the rest.
	StrategyUpsert RefreshStrategy = "upsert"
)

func ParseRefreshStrategy(s string) (RefreshStrategy, error) {
	switch RefreshStrategy(s) {
	case StrategyFullReplace, StrategyUpsert:
		return RefreshStrategy(s), nil
	}
	return "", fmt.Errorf("unknown refresh strategy %q", s)
}

// RefreshReport aggregates one refresh cycle. Successful never exceeds
// TotalProcessed, which never exceeds the configured batch limit.
type RefreshReport struct {
	TotalProcessed int
	Successful     int
	CompletedAt    time.Time
}
