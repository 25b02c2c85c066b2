package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

const (
	TotalReturnLabel = "Total Return (%)"
	CagrLabel        = "CAGR (%)"
	VolatilityLabel  = "Volatility (%)"
	MaxDrawdownLabel = "Max Drawdown (%)"
)

// MetricsReport holds the four summary metrics of one simulation.
// all values are percentages rounded to 2 decimal places
type MetricsReport struct {
	TotalReturn float64 `json:"totalReturn"`
	Cagr        float64 `json:"cagr"`
	Volatility  float64 `json:"volatility"`
	MaxDrawdown float64 `json:"maxDrawdown"`
}

type MetricRow struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// Rows returns the report in display order
func (m MetricsReport) Rows() []MetricRow {
	return []MetricRow{
		{Label: TotalReturnLabel, Value: m.TotalReturn},
		{Label: CagrLabel, Value: m.Cagr},
		{Label: VolatilityLabel, Value: m.Volatility},
		{Label: MaxDrawdownLabel, Value: m.MaxDrawdown},
	}
}

func (m MetricsReport) ToMap() map[string]float64 {
	out := map[string]float64{}
	for _, r := range m.Rows() {
		out[r.Label] = r.Value
	}
	return out
}

// FormatPercent renders a metric in its shortest form with at least
// one decimal place, e.g. 10 -> "10.0%" and -7.48 -> "-7.48%"
func FormatPercent(v float64) string {
	out := decimal.NewFromFloat(v).String()
	if !strings.Contains(out, ".") {
		out += ".0"
	}
	return out + "%"
}
