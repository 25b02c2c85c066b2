package domain

import "time"

type ValuePoint struct {
	Date  time.Time `json:"date"`
	Value float64   `json:"value"`
}

// ValueSeries is aligned 1:1 with the PriceSeries it was
// projected from
type ValueSeries []ValuePoint

func (s ValueSeries) First() ValuePoint {
	return s[0]
}

func (s ValueSeries) Last() ValuePoint {
	return s[len(s)-1]
}

func (s ValueSeries) Values() []float64 {
	out := make([]float64, len(s))
	for i, v := range s {
		out[i] = v.Value
	}
	return out
}
