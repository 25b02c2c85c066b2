package integration_tests

import (
	"context"
	"etfsim/internal/domain"
	"etfsim/internal/util"
	"sync"
	"time"
)

// mockPriceProvider serves a fixed week of VT closes and records every
// range it was asked for
type mockPriceProvider struct {
	mu    sync.Mutex
	calls []requestedRange
}

type requestedRange struct {
	Symbol string
	Start  time.Time
	End    time.Time
}

func NewMockPriceProviderForTests() *mockPriceProvider {
	return &mockPriceProvider{}
}

var vtCloses = []domain.PricePoint{
	{Date: util.NewDate(2025, 1, 2), Close: 100},
	{Date: util.NewDate(2025, 1, 3), Close: 103},
	{Date: util.NewDate(2025, 1, 6), Close: 101},
	{Date: util.NewDate(2025, 1, 7), Close: 107},
	{Date: util.NewDate(2025, 1, 8), Close: 99},
	{Date: util.NewDate(2025, 1, 9), Close: 104},
}

func (m *mockPriceProvider) Name() string {
	return "mock"
}

func (m *mockPriceProvider) List(ctx context.Context, symbol string, start, end time.Time) ([]domain.PricePoint, error) {
	m.mu.Lock()
	m.calls = append(m.calls, requestedRange{Symbol: symbol, Start: start, End: end})
	m.mu.Unlock()

	out := []domain.PricePoint{}
	if symbol != "VT" {
		return out, nil
	}
	for _, p := range vtCloses {
		if !p.Date.Before(start) && !p.Date.After(end) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *mockPriceProvider) Calls() []requestedRange {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]requestedRange, len(m.calls))
	copy(out, m.calls)
	return out
}
