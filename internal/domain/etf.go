package domain

import "fmt"

const (
	DefaultSymbol     = "VT"
	DefaultInvestment = 585.0
	DefaultStartDate  = "2025-01-01"
)

type Etf struct {
	Symbol string `json:"symbol"`
	Name   string `json:"name"`
}

// ordered the way the dropdown shows them
var etfCatalogue = []Etf{
	{Symbol: "VT", Name: "Vanguard Total World Stock ETF"},
	{Symbol: "ACWI", Name: "iShares MSCI ACWI ETF"},
	{Symbol: "URTH", Name: "iShares MSCI World ETF"},
	{Symbol: "SPGM", Name: "SPDR Portfolio MSCI Global Stock Market ETF"},
}

func ListEtfs() []Etf {
	out := make([]Etf, len(etfCatalogue))
	copy(out, etfCatalogue)
	return out
}

func LookupEtf(symbol string) (Etf, error) {
	for _, e := range etfCatalogue {
		if e.Symbol == symbol {
			return e, nil
		}
	}
	return Etf{}, fmt.Errorf("%w: unsupported symbol %q", ErrInvalidInput, symbol)
}

func (e Etf) ChartTitle() string {
	return fmt.Sprintf("%s Simulation (USD)", e.Name)
}
