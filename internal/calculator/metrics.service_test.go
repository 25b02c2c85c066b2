package calculator

import (
	"etfsim/internal/domain"
	"etfsim/internal/util"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func mustProject(t *testing.T, prices domain.PriceSeries, investment float64) domain.ValueSeries {
	t.Helper()
	values, err := ProjectGrowth(prices, investment)
	require.NoError(t, err)
	return values
}

func TestCalculateMetrics(t *testing.T) {
	t.Run("two points, ten percent", func(t *testing.T) {
		prices := newPriceSeries(100, 110)
		report, err := CalculateMetrics(mustProject(t, prices, 1000), prices)
		require.NoError(t, err)

		require.Equal(t, 10.0, report.TotalReturn)
		require.Equal(t, 0.0, report.Volatility)
		require.Equal(t, 0.0, report.MaxDrawdown)
	})

	t.Run("doubling over a year", func(t *testing.T) {
		prices := domain.PriceSeries{
			{Date: util.NewDate(2024, 1, 1), Close: 50},
			{Date: util.NewDate(2024, 12, 31), Close: 100},
		}
		report, err := CalculateMetrics(mustProject(t, prices, 585), prices)
		require.NoError(t, err)
		require.Equal(t, 100.0, report.Cagr)
		require.Equal(t, 100.0, report.TotalReturn)
	})

	t.Run("constant prices", func(t *testing.T) {
		prices := newPriceSeries(80, 80, 80, 80, 80)
		report, err := CalculateMetrics(mustProject(t, prices, 585), prices)
		require.NoError(t, err)

		require.Equal(
			t,
			"",
			cmp.Diff(
				domain.MetricsReport{
					TotalReturn: 0,
					Cagr:        0,
					Volatility:  0,
					MaxDrawdown: 0,
				},
				*report,
			),
		)
	})

	t.Run("rounds to two decimals", func(t *testing.T) {
		prices := newPriceSeries(100, 103, 101, 107, 99, 104)
		report, err := CalculateMetrics(mustProject(t, prices, 1000), prices)
		require.NoError(t, err)

		require.Equal(t, 4.0, report.TotalReturn)
		require.Equal(t, -7.48, report.MaxDrawdown)
	})

	t.Run("single point is not computable", func(t *testing.T) {
		prices := newPriceSeries(100)
		_, err := CalculateMetrics(mustProject(t, prices, 1000), prices)
		require.ErrorIs(t, err, domain.ErrNotComputable)
	})

	t.Run("empty series", func(t *testing.T) {
		_, err := CalculateMetrics(domain.ValueSeries{}, domain.PriceSeries{})
		require.ErrorIs(t, err, domain.ErrEmptySeries)
	})

	t.Run("misaligned inputs", func(t *testing.T) {
		prices := newPriceSeries(100, 101, 102)
		_, err := CalculateMetrics(mustProject(t, prices[:2], 1000), prices)
		require.ErrorIs(t, err, domain.ErrInvalidSeries)
	})
}

func TestCAGR(t *testing.T) {
	t.Run("zero elapsed days", func(t *testing.T) {
		_, err := CAGR(domain.ValueSeries{{Date: util.NewDate(2025, 1, 1), Value: 1}})
		require.ErrorIs(t, err, domain.ErrNotComputable)
	})

	t.Run("half year", func(t *testing.T) {
		cagr, err := CAGR(domain.ValueSeries{
			{Date: util.NewDate(2025, 1, 1), Value: 100},
			{Date: util.NewDate(2025, 1, 1).AddDate(0, 0, 73), Value: 101},
		})
		require.NoError(t, err)
		// 1.01^5 - 1
		require.InDelta(t, 5.101005, cagr, 1e-6)
	})
}

func TestVolatility(t *testing.T) {
	t.Run("known returns", func(t *testing.T) {
		// returns of +10% and -10%, sample stdev = 0.1414...
		prices := newPriceSeries(100, 110, 99)
		vol, err := Volatility(prices)
		require.NoError(t, err)
		require.InDelta(t, 0.14142135623730953*15.874507866387544*100, vol, 1e-6)
	})

	t.Run("single price", func(t *testing.T) {
		_, err := Volatility(newPriceSeries(100))
		require.ErrorIs(t, err, domain.ErrNotComputable)
	})
}

func TestMaxDrawdown(t *testing.T) {
	t.Run("strictly increasing", func(t *testing.T) {
		dd, err := MaxDrawdown(newPriceSeries(100, 101, 102.5, 110))
		require.NoError(t, err)
		require.Equal(t, 0.0, dd)
	})

	t.Run("worst peak to trough", func(t *testing.T) {
		dd, err := MaxDrawdown(newPriceSeries(100, 120, 90, 130, 117))
		require.NoError(t, err)
		require.InDelta(t, -25.0, dd, 1e-9)
	})

	t.Run("peak starts at the first compounded return", func(t *testing.T) {
		// cumulative 0.9 then 0.95, never below its running max
		dd, err := MaxDrawdown(newPriceSeries(100, 90, 95))
		require.NoError(t, err)
		require.Equal(t, 0.0, dd)

		dd, err = MaxDrawdown(newPriceSeries(100, 90, 95, 85.5))
		require.NoError(t, err)
		require.InDelta(t, -10.0, dd, 1e-9)
	})

	t.Run("single return", func(t *testing.T) {
		dd, err := MaxDrawdown(newPriceSeries(100, 80))
		require.NoError(t, err)
		require.Equal(t, 0.0, dd)
	})

	t.Run("never positive", func(t *testing.T) {
		for _, prices := range []domain.PriceSeries{
			newPriceSeries(100),
			newPriceSeries(5, 4, 3, 2, 1),
			newPriceSeries(1, 2, 1, 2, 1, 2),
		} {
			dd, err := MaxDrawdown(prices)
			require.NoError(t, err)
			require.LessOrEqual(t, dd, 0.0)
		}
	})
}
