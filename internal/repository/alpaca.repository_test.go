package repository

import (
	"context"
	"errors"
	"etfsim/internal/domain"
	"etfsim/internal/util"
	"testing"
	"time"

	"github.com/alpacahq/alpaca-trade-api-go/v3/marketdata"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

type fakeBarClient struct {
	bars []marketdata.Bar
	err  error
	req  marketdata.GetBarsRequest
}

func (f *fakeBarClient) GetBars(symbol string, req marketdata.GetBarsRequest) ([]marketdata.Bar, error) {
	f.req = req
	return f.bars, f.err
}

func Test_alpacaRepositoryHandler_List(t *testing.T) {
	start := util.NewDate(2025, 1, 1)
	end := util.NewDate(2025, 1, 10)

	t.Run("converts daily bars", func(t *testing.T) {
		client := &fakeBarClient{
			bars: []marketdata.Bar{
				{Timestamp: time.Date(2025, 1, 2, 5, 0, 0, 0, time.UTC), Close: 116.42},
				{Timestamp: time.Date(2025, 1, 3, 5, 0, 0, 0, time.UTC), Close: 117.1},
			},
		}
		handler := alpacaRepositoryHandler{
			MdClient: client,
			Feed:     marketdata.Feed("iex"),
		}

		out, err := handler.List(context.Background(), "VT", start, end)
		require.NoError(t, err)
		require.Equal(
			t,
			"",
			cmp.Diff(
				[]domain.PricePoint{
					{Date: util.NewDate(2025, 1, 2), Close: 116.42},
					{Date: util.NewDate(2025, 1, 3), Close: 117.1},
				},
				out,
			),
		)

		require.Equal(t, marketdata.OneDay, client.req.TimeFrame)
		require.Equal(t, start, client.req.Start)
		require.Equal(t, end, client.req.End)
		require.Equal(t, marketdata.Feed("iex"), client.req.Feed)
	})

	t.Run("wraps client errors", func(t *testing.T) {
		upstreamErr := errors.New("forbidden")
		handler := alpacaRepositoryHandler{
			MdClient: &fakeBarClient{err: upstreamErr},
		}

		_, err := handler.List(context.Background(), "VT", start, end)
		require.ErrorIs(t, err, upstreamErr)
	})

	t.Run("cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		handler := alpacaRepositoryHandler{
			MdClient: &fakeBarClient{},
		}
		_, err := handler.List(ctx, "VT", start, end)
		require.ErrorIs(t, err, context.Canceled)
	})
}
