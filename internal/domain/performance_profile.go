package domain

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

type profileContextKey string

const ContextProfileKey profileContextKey = "PERFORMANCE_PROFILE"

func NewPerformanceProfile() *PerformanceProfile {
	return &PerformanceProfile{
		StartTime: time.Now(),
	}
}

type PerformanceProfileEvent struct {
	Name      string    `json:"name"`
	ElapsedMs int64     `json:"elapsedMs"`
	Time      time.Time `json:"time"`
}

// PerformanceProfile records how long each stage of a simulation
// took (fetch, projection, metrics) so slow upstreams show up in logs
type PerformanceProfile struct {
	StartTime time.Time                 `json:"-"`
	Events    []PerformanceProfileEvent `json:"events"`
	TotalMs   int64                     `json:"totalMs"`
}

func WithPerformanceProfile(ctx context.Context, p *PerformanceProfile) context.Context {
	return context.WithValue(ctx, ContextProfileKey, p)
}

// GetPerformanceProfile returns the profile on ctx, or a detached
// one when the caller never attached a profile
func GetPerformanceProfile(ctx context.Context) *PerformanceProfile {
	p, ok := ctx.Value(ContextProfileKey).(*PerformanceProfile)
	if !ok {
		return NewPerformanceProfile()
	}
	return p
}

func (p *PerformanceProfile) End() {
	p.TotalMs = time.Since(p.StartTime).Milliseconds()
}

func (p *PerformanceProfile) Add(name string) {
	last := p.StartTime
	if len(p.Events) > 0 {
		last = p.Events[len(p.Events)-1].Time
	}
	now := time.Now()
	p.Events = append(p.Events, PerformanceProfileEvent{
		Name:      name,
		ElapsedMs: now.Sub(last).Milliseconds(),
		Time:      now,
	})
}

func (p PerformanceProfile) ToJsonBytes() ([]byte, error) {
	// i dont think this should ever err
	bytes, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal performance profile: %w", err)
	}
	return bytes, nil
}
