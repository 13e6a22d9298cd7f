package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitelog/bitelog/internal/interchange"
	"github.com/bitelog/bitelog/internal/model"
)

func newTestJournal(t *testing.T) *Journal {
	t.Helper()
	st := newTestStore(t)
	return NewJournal(st, NewFoodMemory(st), zerolog.Nop())
}

func TestSubmitValidation(t *testing.T) {
	ctx := context.Background()
	j := newTestJournal(t)

	_, err := j.Submit(ctx, model.SubmitEntryRequest{FoodName: "", Calories: 100})
	assert.ErrorIs(t, err, model.ErrValidation)

	_, err = j.Submit(ctx, model.SubmitEntryRequest{FoodName: "Apple", Calories: -1})
	assert.ErrorIs(t, err, model.ErrValidation)

	// nothing was written
	entries, err := j.Entries(ctx)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestSubmitAppearsInDayAndTotal(t *testing.T) {
	ctx := context.Background()
	j := newTestJournal(t)
	ts := time.Date(2026, 3, 14, 12, 30, 0, 0, time.UTC)
	j.now = func() time.Time { return ts }

	e, err := j.Submit(ctx, model.SubmitEntryRequest{FoodName: "Apple", Calories: 95})
	require.NoError(t, err)
	require.NotEmpty(t, e.ID)
	assert.True(t, e.Timestamp.Equal(ts), "timestamp defaults to now")
	assert.True(t, e.DateAdded.Equal(ts))

	day := model.LocalDateKey(ts, time.UTC)
	entries, err := j.EntriesForDate(ctx, day, time.UTC)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, e.ID, entries[0].ID)

	total, err := j.DailyTotal(ctx, day, time.UTC)
	require.NoError(t, err)
	assert.Equal(t, 95, total)

	// profile was upserted alongside the entry
	p, err := j.store.Profiles().Get(ctx, "Apple")
	require.NoError(t, err)
	assert.Equal(t, 1, p.Frequency)
}

func TestLogSameFoodTwiceSameDay(t *testing.T) {
	ctx := context.Background()
	j := newTestJournal(t)
	ts := time.Date(2026, 3, 14, 19, 0, 0, 0, time.UTC)
	j.now = func() time.Time { return ts }

	for i := 0; i < 2; i++ {
		_, err := j.Submit(ctx, model.SubmitEntryRequest{FoodName: "Pizza", Calories: 285, Volume: "1 slice"})
		require.NoError(t, err)
	}

	total, err := j.DailyTotal(ctx, "2026-03-14", time.UTC)
	require.NoError(t, err)
	assert.Equal(t, 570, total)

	p, err := j.store.Profiles().Get(ctx, "Pizza")
	require.NoError(t, err)
	assert.Equal(t, 2, p.Frequency)
	assert.Equal(t, 285, p.BaseCalories)
}

func TestDailyTotalEmptyDay(t *testing.T) {
	j := newTestJournal(t)
	total, err := j.DailyTotal(context.Background(), "2026-01-01", time.UTC)
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestDayBucketingFollowsViewerZone(t *testing.T) {
	ctx := context.Background()
	j := newTestJournal(t)

	// 23:30 on the 14th in UTC is already the 15th in UTC+2
	ts := time.Date(2026, 3, 14, 23, 30, 0, 0, time.UTC)
	_, err := j.Submit(ctx, model.SubmitEntryRequest{FoodName: "Midnight snack", Calories: 200, Timestamp: ts})
	require.NoError(t, err)

	east := time.FixedZone("UTC+2", 2*60*60)
	utcTotal, err := j.DailyTotal(ctx, "2026-03-14", time.UTC)
	require.NoError(t, err)
	eastTotal, err := j.DailyTotal(ctx, "2026-03-15", east)
	require.NoError(t, err)
	assert.Equal(t, 200, utcTotal)
	assert.Equal(t, 200, eastTotal, "same entry buckets to a different day in another zone")
}

func TestDeleteRemovesEverywhere(t *testing.T) {
	ctx := context.Background()
	j := newTestJournal(t)

	e, err := j.Submit(ctx, model.SubmitEntryRequest{FoodName: "Apple", Calories: 95})
	require.NoError(t, err)
	require.NoError(t, j.Delete(ctx, e.ID))

	entries, err := j.Entries(ctx)
	require.NoError(t, err)
	assert.Empty(t, entries)

	_, err = j.store.Entries().Get(ctx, e.ID)
	assert.ErrorIs(t, err, model.ErrNotFound)

	assert.ErrorIs(t, j.Delete(ctx, e.ID), model.ErrNotFound)
}

func TestExportImportRoundTrip(t *testing.T) {
	ctx := context.Background()
	j := newTestJournal(t)
	base := time.Date(2026, 3, 14, 8, 0, 0, 0, time.UTC)

	seed := []model.SubmitEntryRequest{
		{FoodName: "Apple", Calories: 95, Volume: "1 medium", Timestamp: base},
		{FoodName: "Soup, tomato", Calories: 180, Volume: "1 bowl", Notes: "lunch, at desk", Timestamp: base.Add(4 * time.Hour)},
		{FoodName: "Pizza", Calories: 285, Volume: "1 slice", Timestamp: base.Add(11 * time.Hour)},
	}
	for _, req := range seed {
		_, err := j.Submit(ctx, req)
		require.NoError(t, err)
	}

	text, filename, err := j.Export(ctx, time.UTC)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(filename, "food-log-"))
	assert.True(t, strings.HasSuffix(filename, ".csv"))

	// import into a fresh journal
	j2 := newTestJournal(t)
	n, err := j2.Import(ctx, text)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	orig, err := j.Entries(ctx)
	require.NoError(t, err)
	imported, err := j2.Entries(ctx)
	require.NoError(t, err)
	require.Len(t, imported, len(orig))

	for i := range orig {
		assert.Equal(t, orig[i].FoodName, imported[i].FoodName)
		assert.Equal(t, orig[i].Calories, imported[i].Calories)
		assert.Equal(t, orig[i].Volume, imported[i].Volume)
		assert.Equal(t, orig[i].Notes, imported[i].Notes)
		assert.True(t, orig[i].Timestamp.Equal(imported[i].Timestamp))
		// IDs are freshly assigned
		assert.NotEqual(t, orig[i].ID, imported[i].ID)
	}
}

func TestImportSkipsBadRowsAndKeepsGoing(t *testing.T) {
	ctx := context.Background()
	j := newTestJournal(t)

	text := strings.Join([]string{
		interchange.Header,
		`2026-03-14,08:00,"Apple",95,"1 medium","",2026-03-14T08:00:00Z`,
		`2026-03-14,09:00,"Mystery",abc,"","",2026-03-14T09:00:00Z`,
		`2026-03-14,10:00,"",120,"","",2026-03-14T10:00:00Z`,
		`2026-03-14,12:00,"Banana",105,"1 medium","",2026-03-14T12:00:00Z`,
	}, "\n")

	n, err := j.Import(ctx, text)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	entries, err := j.Entries(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 2)
}

func TestImportHeaderOnly(t *testing.T) {
	j := newTestJournal(t)
	n, err := j.Import(context.Background(), interchange.Header+"\n")
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestImportDoesNotTouchProfiles(t *testing.T) {
	ctx := context.Background()
	j := newTestJournal(t)

	text := strings.Join([]string{
		interchange.Header,
		`2026-03-14,08:00,"Apple",95,"1 medium","",2026-03-14T08:00:00Z`,
	}, "\n")
	_, err := j.Import(ctx, text)
	require.NoError(t, err)

	_, err = j.store.Profiles().Get(ctx, "Apple")
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestImportAssignsNowForMissingTimestamp(t *testing.T) {
	ctx := context.Background()
	j := newTestJournal(t)
	now := time.Date(2026, 3, 14, 20, 0, 0, 0, time.UTC)
	j.now = func() time.Time { return now }

	text := "Food Name,Calories\n\"Apple\",95\n"
	n, err := j.Import(ctx, text)
	require.NoError(t, err)
	require.Equal(t, 1, n)

	entries, err := j.Entries(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.True(t, entries[0].Timestamp.Equal(now))
	assert.True(t, entries[0].DateAdded.Equal(now))
}
