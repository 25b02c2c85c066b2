package domain

import (
	"errors"
	"fmt"
)

var (
	ErrEmptySeries   = errors.New("empty series: no data points available")
	ErrNotComputable = errors.New("not computable: elapsed time is zero")
	ErrInvalidSeries = errors.New("invalid series")
	ErrInvalidInput  = errors.New("invalid input")
)

// UpstreamFetchError wraps whatever the market data provider
// returned. the underlying error is kept as-is
type UpstreamFetchError struct {
	Provider string
	Symbol   string
	Err      error
}

func (e *UpstreamFetchError) Error() string {
	return fmt.Sprintf("failed to fetch %s bars from %s: %v", e.Symbol, e.Provider, e.Err)
}

func (e *UpstreamFetchError) Unwrap() error {
	return e.Err
}
