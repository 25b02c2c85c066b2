package repository

import (
	"context"
	"database/sql"
	"etfsim/internal/domain"
	"etfsim/internal/util"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func newTestBarCache(t *testing.T) (*sql.DB, BarCacheRepository) {
	t.Helper()
	db, repo, err := OpenBarCache(context.Background(), util.CacheConfig{
		Driver: "sqlite3",
		Dsn:    filepath.Join(t.TempDir(), "bars.db"),
	})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, repo
}

func Test_barCacheRepositoryHandler(t *testing.T) {
	ctx := context.Background()
	january := BarCoverage{Start: util.NewDate(2025, 1, 1), End: util.NewDate(2025, 1, 31)}

	t.Run("round trip within range", func(t *testing.T) {
		_, repo := newTestBarCache(t)

		err := repo.Add(ctx, "alpaca", "VT", january, []domain.PricePoint{
			{Date: util.NewDate(2025, 1, 2), Close: 116.42},
			{Date: util.NewDate(2025, 1, 3), Close: 117.1},
			{Date: util.NewDate(2025, 1, 6), Close: 117.8},
		})
		require.NoError(t, err)
		err = repo.Add(ctx, "alpaca", "ACWI", january, []domain.PricePoint{
			{Date: util.NewDate(2025, 1, 2), Close: 112},
		})
		require.NoError(t, err)

		out, err := repo.List(ctx, "alpaca", "VT", util.NewDate(2025, 1, 3), util.NewDate(2025, 1, 6))
		require.NoError(t, err)
		require.Equal(t, []domain.PricePoint{
			{Date: util.NewDate(2025, 1, 3), Close: 117.1},
			{Date: util.NewDate(2025, 1, 6), Close: 117.8},
		}, out)

		coverage, err := repo.GetCoverage(ctx, "alpaca", "VT")
		require.NoError(t, err)
		require.Equal(t, &january, coverage)
	})

	t.Run("providers are kept apart", func(t *testing.T) {
		_, repo := newTestBarCache(t)

		require.NoError(t, repo.Add(ctx, "alpaca", "VT", january, []domain.PricePoint{{Date: util.NewDate(2025, 1, 2), Close: 116.4}}))
		require.NoError(t, repo.Add(ctx, "yahoo", "VT", january, []domain.PricePoint{{Date: util.NewDate(2025, 1, 2), Close: 116.5}}))

		out, err := repo.List(ctx, "yahoo", "VT", january.Start, january.End)
		require.NoError(t, err)
		require.Equal(t, []domain.PricePoint{{Date: util.NewDate(2025, 1, 2), Close: 116.5}}, out)

		coverage, err := repo.GetCoverage(ctx, "polygon", "VT")
		require.NoError(t, err)
		require.Nil(t, coverage)
	})

	t.Run("upsert replaces close and coverage", func(t *testing.T) {
		_, repo := newTestBarCache(t)

		first := BarCoverage{Start: util.NewDate(2025, 1, 2), End: util.NewDate(2025, 1, 2)}
		require.NoError(t, repo.Add(ctx, "alpaca", "VT", first, []domain.PricePoint{{Date: util.NewDate(2025, 1, 2), Close: 1}}))
		require.NoError(t, repo.Add(ctx, "alpaca", "VT", january, []domain.PricePoint{{Date: util.NewDate(2025, 1, 2), Close: 2}}))

		out, err := repo.List(ctx, "alpaca", "VT", january.Start, january.End)
		require.NoError(t, err)
		require.Len(t, out, 1)
		require.Equal(t, 2.0, out[0].Close)

		coverage, err := repo.GetCoverage(ctx, "alpaca", "VT")
		require.NoError(t, err)
		require.Equal(t, &january, coverage)
	})

	t.Run("empty fetch still records coverage", func(t *testing.T) {
		_, repo := newTestBarCache(t)

		out, err := repo.List(ctx, "alpaca", "SPGM", january.Start, january.End)
		require.NoError(t, err)
		require.Empty(t, out)

		require.NoError(t, repo.Add(ctx, "alpaca", "SPGM", january, nil))
		coverage, err := repo.GetCoverage(ctx, "alpaca", "SPGM")
		require.NoError(t, err)
		require.Equal(t, &january, coverage)
	})

	t.Run("bars outside the coverage are rejected", func(t *testing.T) {
		_, repo := newTestBarCache(t)

		err := repo.Add(ctx, "alpaca", "VT", january, []domain.PricePoint{{Date: util.NewDate(2025, 2, 3), Close: 1}})
		require.Error(t, err)

		coverage, err := repo.GetCoverage(ctx, "alpaca", "VT")
		require.NoError(t, err)
		require.Nil(t, coverage)
	})
}

func TestBarCoverage_Contains(t *testing.T) {
	c := BarCoverage{Start: util.NewDate(2025, 1, 2), End: util.NewDate(2025, 1, 9)}
	require.True(t, c.Contains(util.NewDate(2025, 1, 2)))
	require.True(t, c.Contains(util.NewDate(2025, 1, 9).Add(15*time.Hour)))
	require.False(t, c.Contains(util.NewDate(2025, 1, 1)))
	require.False(t, c.Contains(util.NewDate(2025, 1, 10)))
}
