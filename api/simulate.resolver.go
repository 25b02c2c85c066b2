package api

import (
	"context"
	"etfsim/internal/domain"
	"etfsim/internal/service"
	"etfsim/internal/util"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type simulateRequest struct {
	Symbol     string           `json:"symbol"`
	Start      string           `json:"start"`
	Investment *decimal.Decimal `json:"investment"`
}

type seriesPointResponse struct {
	Date  string  `json:"date"`
	Close float64 `json:"close"`
	Value float64 `json:"value"`
}

type metricRowResponse struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

type simulateResponse struct {
	RunID      string                `json:"runID"`
	Symbol     string                `json:"symbol"`
	Name       string                `json:"name"`
	Title      string                `json:"title"`
	Start      string                `json:"start"`
	Investment float64               `json:"investment"`
	Series     []seriesPointResponse `json:"series"`
	Metrics    domain.MetricsReport  `json:"metrics"`
	Rows       []metricRowResponse   `json:"rows"`
}

func (r simulateRequest) toInput() service.SimulationInput {
	in := service.SimulationInput{
		Symbol:     r.Symbol,
		StartDate:  r.Start,
		Investment: decimal.NewFromFloat(domain.DefaultInvestment),
	}
	if strings.TrimSpace(in.Symbol) == "" {
		in.Symbol = domain.DefaultSymbol
	}
	if strings.TrimSpace(in.StartDate) == "" {
		in.StartDate = domain.DefaultStartDate
	}
	if r.Investment != nil {
		in.Investment = *r.Investment
	}
	return in
}

// inputFromQuery reads the same fields as simulateRequest from the
// query string, used by the page, chart and csv routes
func inputFromQuery(c *gin.Context) (service.SimulationInput, error) {
	req := simulateRequest{
		Symbol: c.Query("symbol"),
		Start:  c.Query("start"),
	}
	if raw := strings.TrimSpace(c.Query("investment")); raw != "" {
		investment, err := decimal.NewFromString(raw)
		if err != nil {
			return service.SimulationInput{}, fmt.Errorf("%w: investment %q is not a number", domain.ErrInvalidInput, raw)
		}
		req.Investment = &investment
	}
	return req.toInput(), nil
}

func (m ApiHandler) runSimulation(c *gin.Context, in service.SimulationInput) (*service.SimulationResult, error) {
	ctx := c.Request.Context()
	if m.UpstreamTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, m.UpstreamTimeout)
		defer cancel()
	}
	return m.SimulationService.Simulate(ctx, in)
}

func metricRows(report domain.MetricsReport) []metricRowResponse {
	out := []metricRowResponse{}
	for _, row := range report.Rows() {
		out = append(out, metricRowResponse{
			Label: row.Label,
			Value: domain.FormatPercent(row.Value),
		})
	}
	return out
}

func newSimulateResponse(result *service.SimulationResult) simulateResponse {
	series := make([]seriesPointResponse, 0, len(result.Values))
	for i, v := range result.Values {
		series = append(series, seriesPointResponse{
			Date:  util.FormatDate(v.Date),
			Close: result.Prices[i].Close,
			Value: v.Value,
		})
	}

	return simulateResponse{
		RunID:      result.RunID.String(),
		Symbol:     result.Etf.Symbol,
		Name:       result.Etf.Name,
		Title:      result.Etf.ChartTitle(),
		Start:      util.FormatDate(result.Start),
		Investment: result.Investment.InexactFloat64(),
		Series:     series,
		Metrics:    result.Metrics,
		Rows:       metricRows(result.Metrics),
	}
}

func (m ApiHandler) simulate(c *gin.Context) {
	var requestBody simulateRequest
	if err := c.ShouldBindJSON(&requestBody); err != nil {
		returnErrorJson(fmt.Errorf("%w: failed to read request body: %s", domain.ErrInvalidInput, err.Error()), c)
		return
	}

	result, err := m.runSimulation(c, requestBody.toInput())
	if err != nil {
		returnErrorJson(err, c)
		return
	}

	c.JSON(200, newSimulateResponse(result))
}
