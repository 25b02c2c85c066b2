package repository

import (
	"context"
	"etfsim/internal/domain"
	"etfsim/internal/util"
	"fmt"
	"time"

	"github.com/piquette/finance-go"
	"github.com/piquette/finance-go/chart"
	"github.com/piquette/finance-go/datetime"
)

type chartIterator interface {
	Next() bool
	Bar() *finance.ChartBar
	Err() error
}

// NewYahooRepository reads daily bars from the public Yahoo chart
// endpoint. no credentials, used when alpaca is unavailable
func NewYahooRepository() PriceHistoryRepository {
	return yahooRepositoryHandler{
		getChart: func(p *chart.Params) chartIterator {
			return chart.Get(p)
		},
	}
}

type yahooRepositoryHandler struct {
	getChart func(*chart.Params) chartIterator
}

func (h yahooRepositoryHandler) Name() string {
	return util.ProviderYahoo
}

func (h yahooRepositoryHandler) List(ctx context.Context, symbol string, start, end time.Time) ([]domain.PricePoint, error) {
	return callWithContext(ctx, func() ([]domain.PricePoint, error) {
		params := &chart.Params{
			Start:    datetime.New(&start),
			End:      datetime.New(&end),
			Symbol:   symbol,
			Interval: datetime.OneDay,
		}
		iter := h.getChart(params)

		out := []domain.PricePoint{}
		for iter.Next() {
			bar := iter.Bar()
			out = append(out, domain.PricePoint{
				Date:  domain.NewCalendarDate(time.Unix(int64(bar.Timestamp), 0).UTC()),
				Close: bar.Close.InexactFloat64(),
			})
		}
		if err := iter.Err(); err != nil {
			return nil, fmt.Errorf("failed to get prices for %s: %w", symbol, err)
		}

		return out, nil
	})
}
