package repository

import (
	"context"
	"etfsim/internal/domain"
	"time"
)

// PriceHistoryRepository is a market data provider returning daily
// closes for one symbol between start and end, inclusive
type PriceHistoryRepository interface {
	Name() string
	List(ctx context.Context, symbol string, start, end time.Time) ([]domain.PricePoint, error)
}

// the market data SDKs don't take a context, so the call runs on its
// own goroutine and we stop waiting once ctx is done
func callWithContext(ctx context.Context, fn func() ([]domain.PricePoint, error)) ([]domain.PricePoint, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	type result struct {
		points []domain.PricePoint
		err    error
	}
	ch := make(chan result, 1)
	go func() {
		points, err := fn()
		ch <- result{points, err}
	}()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case r := <-ch:
		return r.points, r.err
	}
}
