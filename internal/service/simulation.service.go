package service

import (
	"context"
	"etfsim/internal/calculator"
	"etfsim/internal/domain"
	"etfsim/internal/logger"
	"etfsim/internal/util"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type SimulationService interface {
	Simulate(ctx context.Context, in SimulationInput) (*SimulationResult, error)
}

type SimulationInput struct {
	Symbol     string
	StartDate  string
	Investment decimal.Decimal
}

type SimulationResult struct {
	RunID      uuid.UUID
	Etf        domain.Etf
	Start      time.Time
	Investment decimal.Decimal
	Prices     domain.PriceSeries
	Values     domain.ValueSeries
	Metrics    domain.MetricsReport
}

func NewSimulationService(priceService PriceService) SimulationService {
	return simulationServiceHandler{
		PriceService: priceService,
		Now:          time.Now,
	}
}

type simulationServiceHandler struct {
	PriceService PriceService
	Now          func() time.Time
}

type validatedInput struct {
	etf        domain.Etf
	start      time.Time
	investment decimal.Decimal
}

func (h simulationServiceHandler) validate(in SimulationInput) (*validatedInput, error) {
	etf, err := domain.LookupEtf(strings.ToUpper(strings.TrimSpace(in.Symbol)))
	if err != nil {
		return nil, err
	}

	start, err := util.ParseDate(strings.TrimSpace(in.StartDate))
	if err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, err.Error())
	}
	if start.After(util.Today(h.Now())) {
		return nil, fmt.Errorf("%w: start date %s is in the future", domain.ErrInvalidInput, in.StartDate)
	}

	if !in.Investment.IsPositive() {
		return nil, fmt.Errorf("%w: investment must be positive, got %s", domain.ErrInvalidInput, in.Investment.String())
	}

	return &validatedInput{
		etf:        etf,
		start:      start,
		investment: in.Investment,
	}, nil
}

// Simulate fetches daily closes from start until now and projects a
// buy-and-hold position of the given size. nothing is returned unless
// every step succeeds
func (h simulationServiceHandler) Simulate(ctx context.Context, in SimulationInput) (*SimulationResult, error) {
	log := logger.FromContext(ctx)
	profile := domain.GetPerformanceProfile(ctx)

	input, err := h.validate(in)
	if err != nil {
		return nil, err
	}

	prices, err := h.PriceService.GetPriceSeries(ctx, input.etf.Symbol, input.start, h.Now())
	if err != nil {
		return nil, err
	}
	profile.Add("fetch prices")

	values, err := calculator.ProjectGrowth(prices, input.investment.InexactFloat64())
	if err != nil {
		return nil, fmt.Errorf("failed to project growth: %w", err)
	}
	profile.Add("project growth")

	metrics, err := calculator.CalculateMetrics(values, prices)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate metrics: %w", err)
	}
	profile.Add("calculate metrics")

	result := &SimulationResult{
		RunID:      uuid.New(),
		Etf:        input.etf,
		Start:      input.start,
		Investment: input.investment,
		Prices:     prices,
		Values:     values,
		Metrics:    *metrics,
	}

	log.Infow(
		"simulation complete",
		"runID", result.RunID.String(),
		"symbol", input.etf.Symbol,
		"start", util.FormatDate(input.start),
		"points", len(values),
		"totalReturn", metrics.TotalReturn,
	)

	return result, nil
}
