package repository

import (
	"context"
	"errors"
	"etfsim/internal/domain"
	"etfsim/internal/util"
	"testing"
	"time"

	"github.com/piquette/finance-go"
	"github.com/piquette/finance-go/chart"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

type fakeChartIterator struct {
	bars []*finance.ChartBar
	i    int
	err  error
}

func (f *fakeChartIterator) Next() bool {
	if f.i >= len(f.bars) {
		return false
	}
	f.i++
	return true
}

func (f *fakeChartIterator) Bar() *finance.ChartBar {
	return f.bars[f.i-1]
}

func (f *fakeChartIterator) Err() error {
	return f.err
}

func Test_yahooRepositoryHandler_List(t *testing.T) {
	t.Run("reads closes", func(t *testing.T) {
		var gotParams *chart.Params
		handler := yahooRepositoryHandler{
			getChart: func(p *chart.Params) chartIterator {
				gotParams = p
				return &fakeChartIterator{
					bars: []*finance.ChartBar{
						{Timestamp: int(time.Date(2025, 1, 2, 14, 30, 0, 0, time.UTC).Unix()), Close: decimal.NewFromFloat(116.5)},
						{Timestamp: int(time.Date(2025, 1, 3, 14, 30, 0, 0, time.UTC).Unix()), Close: decimal.NewFromFloat(118)},
					},
				}
			},
		}

		out, err := handler.List(context.Background(), "ACWI", util.NewDate(2025, 1, 1), util.NewDate(2025, 1, 5))
		require.NoError(t, err)
		require.Equal(t, []domain.PricePoint{
			{Date: util.NewDate(2025, 1, 2), Close: 116.5},
			{Date: util.NewDate(2025, 1, 3), Close: 118},
		}, out)
		require.Equal(t, "ACWI", gotParams.Symbol)
	})

	t.Run("iterator error", func(t *testing.T) {
		handler := yahooRepositoryHandler{
			getChart: func(p *chart.Params) chartIterator {
				return &fakeChartIterator{err: errors.New("remote-error")}
			},
		}

		_, err := handler.List(context.Background(), "ACWI", util.NewDate(2025, 1, 1), util.NewDate(2025, 1, 5))
		require.ErrorContains(t, err, "remote-error")
	})
}
