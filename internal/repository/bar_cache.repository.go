package repository

import (
	"context"
	"database/sql"
	"errors"
	"etfsim/internal/domain"
	"fmt"
	"time"
)

// BarCacheRepository stores daily closes fetched from upstream so a
// repeat simulation only has to ask the provider for the newest bars.
// bars are keyed by provider so feeds never mix in one series. it
// never stores simulation output
type BarCacheRepository interface {
	EnsureSchema(ctx context.Context) error
	GetCoverage(ctx context.Context, provider, symbol string) (*BarCoverage, error)
	List(ctx context.Context, provider, symbol string, start, end time.Time) ([]domain.PricePoint, error)
	Add(ctx context.Context, provider, symbol string, coverage BarCoverage, points []domain.PricePoint) error
}

// BarCoverage is the inclusive date range that was fetched from a
// provider and stored in full. every bar the provider has inside it
// is in the cache
type BarCoverage struct {
	Start time.Time
	End   time.Time
}

func (c BarCoverage) Contains(t time.Time) bool {
	d := domain.NewCalendarDate(t)
	return !d.Before(c.Start) && !d.After(c.End)
}

func NewBarCacheRepository(db *sql.DB) BarCacheRepository {
	return barCacheRepositoryHandler{Db: db}
}

type barCacheRepositoryHandler struct {
	Db *sql.DB
}

// portable between postgres and sqlite3; placeholders are numbered
// and used in order so both drivers bind them positionally
var createBarTables = []string{
	`CREATE TABLE IF NOT EXISTS price_bar (
		provider   TEXT NOT NULL,
		symbol     TEXT NOT NULL,
		date       DATE NOT NULL,
		close      DOUBLE PRECISION NOT NULL,
		created_at TIMESTAMP NOT NULL,
		PRIMARY KEY (provider, symbol, date)
	)`,
	`CREATE TABLE IF NOT EXISTS price_bar_coverage (
		provider   TEXT NOT NULL,
		symbol     TEXT NOT NULL,
		start_date DATE NOT NULL,
		end_date   DATE NOT NULL,
		updated_at TIMESTAMP NOT NULL,
		PRIMARY KEY (provider, symbol)
	)`,
}

func (h barCacheRepositoryHandler) EnsureSchema(ctx context.Context) error {
	for _, stmt := range createBarTables {
		if _, err := h.Db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to create bar cache tables: %w", err)
		}
	}
	return nil
}

func (h barCacheRepositoryHandler) GetCoverage(ctx context.Context, provider, symbol string) (*BarCoverage, error) {
	var start, end time.Time
	err := h.Db.QueryRowContext(
		ctx,
		`SELECT start_date, end_date FROM price_bar_coverage WHERE provider = $1 AND symbol = $2`,
		provider,
		symbol,
	).Scan(&start, &end)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get %s coverage for %s: %w", provider, symbol, err)
	}

	return &BarCoverage{
		Start: domain.NewCalendarDate(start),
		End:   domain.NewCalendarDate(end),
	}, nil
}

func (h barCacheRepositoryHandler) List(ctx context.Context, provider, symbol string, start, end time.Time) ([]domain.PricePoint, error) {
	rows, err := h.Db.QueryContext(
		ctx,
		`SELECT date, close FROM price_bar WHERE provider = $1 AND symbol = $2 AND date >= $3 AND date <= $4 ORDER BY date`,
		provider,
		symbol,
		domain.NewCalendarDate(start),
		domain.NewCalendarDate(end),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query cached %s bars for %s: %w", provider, symbol, err)
	}
	defer rows.Close()

	out := []domain.PricePoint{}
	for rows.Next() {
		var (
			date       time.Time
			closePrice float64
		)
		if err := rows.Scan(&date, &closePrice); err != nil {
			return nil, fmt.Errorf("failed to scan cached bar for %s: %w", symbol, err)
		}
		out = append(out, domain.PricePoint{
			Date:  domain.NewCalendarDate(date),
			Close: closePrice,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read cached bars for %s: %w", symbol, err)
	}

	return out, nil
}

// Add stores the bars and replaces the coverage row in one tx, so the
// coverage never claims bars that failed to land
func (h barCacheRepositoryHandler) Add(ctx context.Context, provider, symbol string, coverage BarCoverage, points []domain.PricePoint) error {
	if coverage.End.Before(coverage.Start) {
		return fmt.Errorf("invalid coverage %s..%s for %s", coverage.Start.Format(time.DateOnly), coverage.End.Format(time.DateOnly), symbol)
	}

	tx, err := h.Db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin tx: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().UTC()
	if len(points) > 0 {
		stmt, err := tx.PrepareContext(
			ctx,
			`INSERT INTO price_bar (provider, symbol, date, close, created_at) VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (provider, symbol, date) DO UPDATE SET close = excluded.close`,
		)
		if err != nil {
			return fmt.Errorf("failed to prepare bar insert: %w", err)
		}
		defer stmt.Close()

		for _, p := range points {
			if !coverage.Contains(p.Date) {
				return fmt.Errorf("bar for %s on %s is outside its coverage", symbol, p.Date.Format(time.DateOnly))
			}
			if _, err := stmt.ExecContext(ctx, provider, symbol, domain.NewCalendarDate(p.Date), p.Close, now); err != nil {
				return fmt.Errorf("failed to add cached bar for %s on %s: %w", symbol, p.Date.Format(time.DateOnly), err)
			}
		}
	}

	_, err = tx.ExecContext(
		ctx,
		`INSERT INTO price_bar_coverage (provider, symbol, start_date, end_date, updated_at) VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (provider, symbol) DO UPDATE SET start_date = excluded.start_date, end_date = excluded.end_date, updated_at = excluded.updated_at`,
		provider,
		symbol,
		domain.NewCalendarDate(coverage.Start),
		domain.NewCalendarDate(coverage.End),
		now,
	)
	if err != nil {
		return fmt.Errorf("failed to update %s coverage for %s: %w", provider, symbol, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit cached bars for %s: %w", symbol, err)
	}
	return nil
}
