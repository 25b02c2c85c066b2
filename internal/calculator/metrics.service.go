package calculator

import (
	"etfsim/internal/domain"
	"fmt"
	"math"
	"time"

	"github.com/montanaflynn/stats"
	"github.com/shopspring/decimal"
)

const (
	tradingDaysPerYear = 252
	daysPerYear        = 365
)

// CalculateMetrics derives the summary report for a projected series.
// prices must be the series the values were projected from; volatility
// and drawdown are measured on day-over-day price changes
func CalculateMetrics(values domain.ValueSeries, prices domain.PriceSeries) (*domain.MetricsReport, error) {
	if len(values) == 0 || len(prices) == 0 {
		return nil, domain.ErrEmptySeries
	}
	if len(values) != len(prices) {
		return nil, fmt.Errorf("%w: %d values but %d prices", domain.ErrInvalidSeries, len(values), len(prices))
	}

	totalReturn, err := TotalReturn(values)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate total return: %w", err)
	}
	cagr, err := CAGR(values)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate cagr: %w", err)
	}
	volatility, err := Volatility(prices)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate volatility: %w", err)
	}
	maxDrawdown, err := MaxDrawdown(prices)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate max drawdown: %w", err)
	}

	report := domain.MetricsReport{}
	for _, m := range []struct {
		dst *float64
		v   float64
	}{
		{&report.TotalReturn, totalReturn},
		{&report.Cagr, cagr},
		{&report.Volatility, volatility},
		{&report.MaxDrawdown, maxDrawdown},
	} {
		rounded, err := roundPercent(m.v)
		if err != nil {
			return nil, err
		}
		*m.dst = rounded
	}

	return &report, nil
}

// TotalReturn is the percent change between the first and last value
func TotalReturn(values domain.ValueSeries) (float64, error) {
	if len(values) == 0 {
		return 0, domain.ErrEmptySeries
	}
	return (values.Last().Value/values.First().Value - 1) * 100, nil
}

// CAGR annualizes growth over the calendar days between the first
// and last value
func CAGR(values domain.ValueSeries) (float64, error) {
	if len(values) == 0 {
		return 0, domain.ErrEmptySeries
	}
	days := elapsedDays(values.First().Date, values.Last().Date)
	if days <= 0 {
		return 0, domain.ErrNotComputable
	}
	ratio := values.Last().Value / values.First().Value
	return (math.Pow(ratio, float64(daysPerYear)/float64(days)) - 1) * 100, nil
}

// Volatility is the sample stdev of daily returns annualized over
// 252 trading days. a single daily return has stdev 0
func Volatility(prices domain.PriceSeries) (float64, error) {
	if len(prices) == 0 {
		return 0, domain.ErrEmptySeries
	}
	returns := dailyReturns(prices)
	if len(returns) == 0 {
		return 0, domain.ErrNotComputable
	}
	if len(returns) == 1 {
		return 0, nil
	}

	stdev, err := stats.StandardDeviationSample(returns)
	if err != nil {
		return 0, fmt.Errorf("failed to compute stdev of %d returns: %w", len(returns), err)
	}

	return stdev * math.Sqrt(tradingDaysPerYear) * 100, nil
}

// MaxDrawdown is the worst peak-to-trough decline of the running
// product of (1 + daily return). the running product starts at the
// first return, so the purchase price itself is not a peak
func MaxDrawdown(prices domain.PriceSeries) (float64, error) {
	if len(prices) == 0 {
		return 0, domain.ErrEmptySeries
	}
	returns := dailyReturns(prices)
	if len(returns) == 0 {
		return 0, nil
	}

	cumulative := 1.0
	peak := math.Inf(-1)
	drawdowns := make([]float64, 0, len(returns))
	for _, r := range returns {
		cumulative *= 1 + r
		peak = math.Max(peak, cumulative)
		drawdowns = append(drawdowns, cumulative/peak-1)
	}

	worst, err := stats.Min(drawdowns)
	if err != nil {
		return 0, err
	}

	return worst * 100, nil
}

func dailyReturns(prices domain.PriceSeries) []float64 {
	if len(prices) < 2 {
		return []float64{}
	}
	returns := make([]float64, 0, len(prices)-1)
	for i := 1; i < len(prices); i++ {
		returns = append(returns, prices[i].Close/prices[i-1].Close-1)
	}
	return returns
}

// elapsedDays counts calendar days; rounding absorbs DST shifts when
// the dates still carry a market-local time of day
func elapsedDays(start, end time.Time) int {
	return int(math.Round(end.Sub(start).Hours() / 24))
}

func roundPercent(v float64) (float64, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%w: metric evaluated to %f", domain.ErrNotComputable, v)
	}
	return decimal.NewFromFloat(v).Round(2).InexactFloat64(), nil
}
