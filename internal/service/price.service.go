package service

import (
	"context"
	"errors"
	"etfsim/internal/domain"
	"etfsim/internal/logger"
	"etfsim/internal/repository"
	"etfsim/internal/util"
	"fmt"
	"time"
)

/**

behavior - when i ask for a price series, serve what we already have from the
bar cache and only go upstream for the days after the cached range.

the cache is trusted by coverage, not by the bars it holds. a provider's
coverage row says which days were fetched in full, so a start date outside it
always goes upstream even when a nearby bar is cached

*/

type PriceService interface {
	GetPriceSeries(ctx context.Context, symbol string, start, end time.Time) (domain.PriceSeries, error)
}

func NewPriceService(
	providers []repository.PriceHistoryRepository,
	barCacheRepository repository.BarCacheRepository,
) PriceService {
	return priceServiceHandler{
		Providers:          providers,
		BarCacheRepository: barCacheRepository,
		Now:                time.Now,
	}
}

type priceServiceHandler struct {
	Providers []repository.PriceHistoryRepository
	// optional
	BarCacheRepository repository.BarCacheRepository
	Now                func() time.Time
}

// GetPriceSeries tries each provider in order and returns the first
// successful answer. an empty answer is still an answer
func (h priceServiceHandler) GetPriceSeries(ctx context.Context, symbol string, start, end time.Time) (domain.PriceSeries, error) {
	log := logger.FromContext(ctx)

	if len(h.Providers) == 0 {
		return nil, &domain.UpstreamFetchError{
			Symbol: symbol,
			Err:    errors.New("no market data provider configured"),
		}
	}

	var lastErr error
	for _, provider := range h.Providers {
		points, err := h.loadFromProvider(ctx, provider, symbol, start, end)
		if err == nil {
			return toPriceSeries(symbol, start, end, points)
		}
		lastErr = &domain.UpstreamFetchError{
			Provider: provider.Name(),
			Symbol:   symbol,
			Err:      err,
		}
		if ctx.Err() != nil {
			break
		}
		log.Warnw("market data provider failed", "provider", provider.Name(), "symbol", symbol, "error", err)
	}

	return nil, lastErr
}

func toPriceSeries(symbol string, start, end time.Time, points []domain.PricePoint) (domain.PriceSeries, error) {
	series := domain.NormalizePriceSeries(points)
	if len(series) == 0 {
		return nil, fmt.Errorf("no prices found for %s between %s and %s: %w", symbol, util.FormatDate(start), util.FormatDate(end), domain.ErrEmptySeries)
	}
	if err := series.Validate(); err != nil {
		return nil, err
	}
	return series, nil
}

// loadFromProvider merges the provider's cached bars with whatever is
// missing upstream. only an upstream failure is an error; the cache
// is best effort
func (h priceServiceHandler) loadFromProvider(
	ctx context.Context,
	provider repository.PriceHistoryRepository,
	symbol string,
	start, end time.Time,
) ([]domain.PricePoint, error) {
	log := logger.FromContext(ctx)
	name := provider.Name()

	startDate := domain.NewCalendarDate(start)
	endDate := domain.NewCalendarDate(end)
	// today's bar is still moving until the close, never cache it
	settledEnd := util.Today(h.Now()).AddDate(0, 0, -1)
	if endDate.Before(settledEnd) {
		settledEnd = endDate
	}

	cached := []domain.PricePoint{}
	fetchStart := start
	var existing *repository.BarCoverage

	if h.BarCacheRepository != nil {
		var err error
		existing, err = h.BarCacheRepository.GetCoverage(ctx, name, symbol)
		if err != nil {
			log.Warnw("bar cache coverage read failed, going upstream", "provider", name, "symbol", symbol, "error", err)
			existing = nil
		}
		if existing != nil && existing.Contains(startDate) {
			listEnd := existing.End
			if endDate.Before(listEnd) {
				listEnd = endDate
			}
			fromCache, err := h.BarCacheRepository.List(ctx, name, symbol, start, listEnd)
			if err != nil {
				log.Warnw("bar cache read failed, going upstream", "provider", name, "symbol", symbol, "error", err)
			} else {
				cached = fromCache
				fetchStart = existing.End.AddDate(0, 0, 1)
			}
		}
	}

	if fetchStart.After(end) {
		log.Debugw("loaded price series from cache", "provider", name, "symbol", symbol, "cached", len(cached))
		return cached, nil
	}

	fetched, err := provider.List(ctx, symbol, fetchStart, end)
	if err != nil {
		return nil, err
	}
	log.Debugw("loaded price series", "provider", name, "symbol", symbol, "cached", len(cached), "fetched", len(fetched))

	h.addToCache(ctx, name, symbol, mergeCoverage(existing, fetchStart, settledEnd), fetched)

	return append(cached, fetched...), nil
}

// mergeCoverage extends the stored coverage by the fetched range when
// the two touch. a disjoint fetch replaces it
func mergeCoverage(existing *repository.BarCoverage, fetchStart, settledEnd time.Time) repository.BarCoverage {
	out := repository.BarCoverage{
		Start: domain.NewCalendarDate(fetchStart),
		End:   settledEnd,
	}
	if existing == nil {
		return out
	}
	touches := !existing.Start.After(out.End.AddDate(0, 0, 1)) && !existing.End.Before(out.Start.AddDate(0, 0, -1))
	if !touches {
		return out
	}
	if existing.Start.Before(out.Start) {
		out.Start = existing.Start
	}
	if existing.End.After(out.End) {
		out.End = existing.End
	}
	return out
}

// addToCache stores the settled part of a fetch under the provider's
// name together with the range it now covers
func (h priceServiceHandler) addToCache(ctx context.Context, provider, symbol string, coverage repository.BarCoverage, points []domain.PricePoint) {
	if h.BarCacheRepository == nil || coverage.End.Before(coverage.Start) {
		return
	}

	settled := []domain.PricePoint{}
	for _, p := range points {
		if coverage.Contains(p.Date) {
			settled = append(settled, p)
		}
	}

	if err := h.BarCacheRepository.Add(ctx, provider, symbol, coverage, settled); err != nil {
		logger.FromContext(ctx).Warnw("failed to add bars to cache", "provider", provider, "symbol", symbol, "error", err)
	}
}
