package domain

import (
	"fmt"
	"sort"
	"time"
)

// PricePoint is one daily bar reduced to what the simulator
// consumes. Date is always a calendar date at midnight UTC
type PricePoint struct {
	Date  time.Time `json:"date"`
	Close float64   `json:"close"`
}

// PriceSeries is ordered by date, strictly increasing
type PriceSeries []PricePoint

func (s PriceSeries) First() PricePoint {
	return s[0]
}

func (s PriceSeries) Last() PricePoint {
	return s[len(s)-1]
}

// Validate checks the invariants every calculator relies on
func (s PriceSeries) Validate() error {
	if len(s) == 0 {
		return ErrEmptySeries
	}
	for i, p := range s {
		if p.Close <= 0 {
			return fmt.Errorf("%w: non-positive close %f on %s", ErrInvalidSeries, p.Close, p.Date.Format(time.DateOnly))
		}
		if i > 0 && !p.Date.After(s[i-1].Date) {
			return fmt.Errorf("%w: dates not strictly increasing at %s", ErrInvalidSeries, p.Date.Format(time.DateOnly))
		}
	}
	return nil
}

// NormalizePriceSeries sorts points by date and keeps the last
// point seen for any duplicated date. upstream providers and the
// cache can overlap on the boundary day
func NormalizePriceSeries(points []PricePoint) PriceSeries {
	byDate := map[time.Time]PricePoint{}
	for _, p := range points {
		p.Date = NewCalendarDate(p.Date)
		byDate[p.Date] = p
	}

	out := make(PriceSeries, 0, len(byDate))
	for _, p := range byDate {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Date.Before(out[j].Date)
	})

	return out
}

// NewCalendarDate drops the time of day, keeping the date as
// observed in t's own location
func NewCalendarDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
