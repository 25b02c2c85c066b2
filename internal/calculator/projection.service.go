package calculator

import (
	"etfsim/internal/domain"
	"fmt"
)

// ProjectGrowth converts a price series into the value of a single
// buy-and-hold position opened with `investment` on the first date.
// no dividends, fees or rebalancing
func ProjectGrowth(prices domain.PriceSeries, investment float64) (domain.ValueSeries, error) {
	if len(prices) == 0 {
		return nil, domain.ErrEmptySeries
	}
	startPrice := prices.First().Close
	if startPrice <= 0 {
		return nil, fmt.Errorf("%w: first close is %f", domain.ErrInvalidSeries, startPrice)
	}

	out := make(domain.ValueSeries, len(prices))
	for i, p := range prices {
		out[i] = domain.ValuePoint{
			Date:  p.Date,
			Value: investment * (p.Close / startPrice),
		}
	}
	// guard against float drift, the first point is the investment
	out[0].Value = investment

	return out, nil
}
