package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFormatPercent(t *testing.T) {
	for _, tc := range []struct {
		in  float64
		out string
	}{
		{10, "10.0%"},
		{-7.48, "-7.48%"},
		{0, "0.0%"},
		{3.5, "3.5%"},
		{-100, "-100.0%"},
	} {
		require.Equal(t, tc.out, FormatPercent(tc.in))
	}
}

func TestMetricsReport_RowsLabels(t *testing.T) {
	report := MetricsReport{TotalReturn: 10, Cagr: 3.5, Volatility: 12.25, MaxDrawdown: -7.48}
	require.Equal(
		t,
		[]MetricRow{
			{Label: TotalReturnLabel, Value: 10},
			{Label: CagrLabel, Value: 3.5},
			{Label: VolatilityLabel, Value: 12.25},
			{Label: MaxDrawdownLabel, Value: -7.48},
		},
		report.Rows(),
	)
}
