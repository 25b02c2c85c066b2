package service

import (
	"etfsim/internal/util"
	"fmt"

	"github.com/gocarina/gocsv"
)

type simulationCsvRow struct {
	Date  string  `csv:"date"`
	Close float64 `csv:"close"`
	Value float64 `csv:"value"`
}

// ExportCsv writes one row per trading day with the close and the
// projected portfolio value
func ExportCsv(result *SimulationResult) ([]byte, error) {
	if len(result.Prices) != len(result.Values) {
		return nil, fmt.Errorf("cannot export: %d prices but %d values", len(result.Prices), len(result.Values))
	}

	rows := make([]simulationCsvRow, 0, len(result.Values))
	for i, v := range result.Values {
		rows = append(rows, simulationCsvRow{
			Date:  util.FormatDate(v.Date),
			Close: result.Prices[i].Close,
			Value: v.Value,
		})
	}

	out, err := gocsv.MarshalBytes(&rows)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal csv: %w", err)
	}
	return out, nil
}
