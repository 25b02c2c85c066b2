package repository

import (
	"context"
	"etfsim/internal/domain"
	"etfsim/internal/logger"
	"etfsim/internal/util"
	"fmt"
	"time"

	"github.com/alpacahq/alpaca-trade-api-go/v3/marketdata"
)

type alpacaBarClient interface {
	GetBars(symbol string, req marketdata.GetBarsRequest) ([]marketdata.Bar, error)
}

func NewAlpacaRepository(cfg util.AlpacaConfig) PriceHistoryRepository {
	mdClient := marketdata.NewClient(marketdata.ClientOpts{
		APIKey:     cfg.ApiKey,
		APISecret:  cfg.ApiSecret,
		BaseURL:    cfg.DataUrl,
		RetryLimit: 3,
	})

	feed := cfg.Feed
	if feed == "" {
		feed = "iex"
	}

	return &alpacaRepositoryHandler{
		MdClient: mdClient,
		Feed:     marketdata.Feed(feed),
	}
}

type alpacaRepositoryHandler struct {
	MdClient alpacaBarClient
	Feed     marketdata.Feed
}

func (h alpacaRepositoryHandler) Name() string {
	return util.ProviderAlpaca
}

func (h alpacaRepositoryHandler) List(ctx context.Context, symbol string, start, end time.Time) ([]domain.PricePoint, error) {
	log := logger.FromContext(ctx)

	bars, err := callWithContext(ctx, func() ([]domain.PricePoint, error) {
		bars, err := h.MdClient.GetBars(symbol, marketdata.GetBarsRequest{
			TimeFrame: marketdata.OneDay,
			Start:     start,
			End:       end,
			Feed:      h.Feed,
		})
		if err != nil {
			return nil, err
		}
		return barsToPricePoints(bars), nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get %s bars from alpaca: %w", symbol, err)
	}

	log.Debugw("fetched alpaca bars", "symbol", symbol, "count", len(bars))
	return bars, nil
}

func barsToPricePoints(bars []marketdata.Bar) []domain.PricePoint {
	out := make([]domain.PricePoint, 0, len(bars))
	for _, b := range bars {
		out = append(out, domain.PricePoint{
			Date:  domain.NewCalendarDate(b.Timestamp.UTC()),
			Close: b.Close,
		})
	}
	return out
}
