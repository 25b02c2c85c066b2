package service

import (
	"etfsim/internal/domain"
	"fmt"
	"math"

	"github.com/vicanso/go-charts/v2"
)

const (
	chartWidth  = 1000
	chartHeight = 560
)

// RenderValueChart draws the portfolio value series as a PNG line chart
func RenderValueChart(title string, values domain.ValueSeries) ([]byte, error) {
	if len(values) == 0 {
		return nil, domain.ErrEmptySeries
	}

	xLabels := make([]string, len(values))
	yMin, yMax := math.Inf(1), math.Inf(-1)
	for i, v := range values {
		xLabels[i] = v.Date.Format("Jan 02 2006")
		yMin = math.Min(yMin, v.Value)
		yMax = math.Max(yMax, v.Value)
	}

	pad := (yMax - yMin) * 0.05
	if pad < yMax*0.002 {
		pad = yMax * 0.002
	}
	yMin -= pad
	if yMin < 0 {
		yMin = 0
	}
	yMax += pad

	splitNum := len(values) / 8
	if splitNum < 1 {
		splitNum = 1
	}

	p, err := charts.LineRender(
		[][]float64{values.Values()},
		charts.TitleTextOptionFunc(title),
		charts.XAxisOptionFunc(charts.XAxisOption{
			Data:        xLabels,
			SplitNumber: splitNum,
			BoundaryGap: charts.FalseFlag(),
		}),
		charts.YAxisOptionFunc(charts.YAxisOption{
			Min:         &yMin,
			Max:         &yMax,
			DivideCount: 5,
		}),
		charts.LegendOptionFunc(charts.LegendOption{
			Data: []string{"Portfolio Value ($)"},
			Top:  charts.PositionTop,
		}),
		charts.ThemeOptionFunc(charts.ThemeLight),
		charts.WidthOptionFunc(chartWidth),
		charts.HeightOptionFunc(chartHeight),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to render chart: %w", err)
	}

	buf, err := p.Bytes()
	if err != nil {
		return nil, fmt.Errorf("failed to generate chart bytes: %w", err)
	}
	return buf, nil
}
