package services

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/bitelog/bitelog/internal/localstate"
	"github.com/bitelog/bitelog/internal/store"
	"github.com/bitelog/bitelog/internal/store/sqlite"
)

func newTestStore(t *testing.T) store.Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "bitelog.db")
	db, err := sqlite.Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, localstate.EnsureSchema(db))
	return sqlite.NewWithDB(db)
}

func TestUpsertOnLogCreatesProfile(t *testing.T) {
	ctx := context.Background()
	mem := NewFoodMemory(newTestStore(t))
	now := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)

	p, err := mem.UpsertOnLog(ctx, "Pizza", 285, "1 slice", now)
	require.NoError(t, err)
	require.Equal(t, 1, p.Frequency)
	require.Equal(t, 285, p.BaseCalories)
	require.Equal(t, "1 slice", p.DefaultVolume)
	require.NotNil(t, p.LastUsed)
	require.True(t, p.LastUsed.Equal(now))
}

func TestUpsertOnLogFallbackVolume(t *testing.T) {
	ctx := context.Background()
	mem := NewFoodMemory(newTestStore(t))

	p, err := mem.UpsertOnLog(ctx, "Tea", 5, "", time.Now())
	require.NoError(t, err)
	require.Equal(t, "1 serving", p.DefaultVolume)
}

func TestUpsertOnLogReuse(t *testing.T) {
	ctx := context.Background()
	mem := NewFoodMemory(newTestStore(t))
	t0 := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)

	_, err := mem.UpsertOnLog(ctx, "Pizza", 285, "1 slice", t0)
	require.NoError(t, err)

	// latest calorie value wins even when the user changed it
	p, err := mem.UpsertOnLog(ctx, "Pizza", 570, "2 slices", t0.Add(time.Hour))
	require.NoError(t, err)
	require.Equal(t, 2, p.Frequency)
	require.Equal(t, 570, p.BaseCalories)
	require.Equal(t, "2 slices", p.DefaultVolume)

	// an empty volume on reuse keeps the remembered default
	p, err = mem.UpsertOnLog(ctx, "Pizza", 285, "", t0.Add(2*time.Hour))
	require.NoError(t, err)
	require.Equal(t, 3, p.Frequency)
	require.Equal(t, "2 slices", p.DefaultVolume)
	require.Equal(t, 285, p.BaseCalories)
}

func TestRankedByFrequency(t *testing.T) {
	ctx := context.Background()
	mem := NewFoodMemory(newTestStore(t))
	now := time.Now().UTC()

	for i := 0; i < 3; i++ {
		_, err := mem.UpsertOnLog(ctx, "Coffee", 30, "1 cup", now)
		require.NoError(t, err)
	}
	_, err := mem.UpsertOnLog(ctx, "Apple", 95, "1 medium", now)
	require.NoError(t, err)

	ranked, err := mem.RankedByFrequency(ctx)
	require.NoError(t, err)
	require.Len(t, ranked, 2)
	require.Equal(t, "Coffee", ranked[0].FoodName)
	require.Equal(t, 3, ranked[0].Frequency)
	require.Equal(t, "Apple", ranked[1].FoodName)
}
