package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/bitelog/bitelog/internal/interchange"
	"github.com/bitelog/bitelog/internal/model"
	"github.com/bitelog/bitelog/internal/store"
)

// Journal orchestrates the entry log: submission, deletion, daily
// aggregation and interchange import/export. It is the surface the
// presentation shell talks to.
type Journal struct {
	store  store.Store
	memory *FoodMemory
	log    zerolog.Logger
	now    func() time.Time
}

func NewJournal(s store.Store, m *FoodMemory, log zerolog.Logger) *Journal {
	return &Journal{store: s, memory: m, log: log, now: time.Now}
}

// Submit validates and stores a new entry, then records the use in the
// food memory. Validation failures are reported before any write.
func (j *Journal) Submit(ctx context.Context, req model.SubmitEntryRequest) (*model.LogEntry, error) {
	if req.FoodName == "" {
		return nil, fmt.Errorf("%w: food name is required", model.ErrValidation)
	}
	if req.Calories < 0 {
		return nil, fmt.Errorf("%w: calories must not be negative", model.ErrValidation)
	}

	now := j.now()
	ts := req.Timestamp
	if ts.IsZero() {
		ts = now
	}
	e := &model.LogEntry{
		ID:        uuid.New().String(),
		FoodName:  req.FoodName,
		Calories:  req.Calories,
		Volume:    req.Volume,
		Notes:     req.Notes,
		Timestamp: ts,
		DateAdded: now,
	}
	if err := j.store.Entries().Put(ctx, e); err != nil {
		return nil, err
	}
	if _, err := j.memory.UpsertOnLog(ctx, e.FoodName, e.Calories, e.Volume, now); err != nil {
		return nil, err
	}
	j.log.Debug().Str("entry_id", e.ID).Str("food", e.FoodName).Int("calories", e.Calories).Msg("entry logged")
	return e, nil
}

// Delete removes an entry by ID from the store.
func (j *Journal) Delete(ctx context.Context, id string) error {
	return j.store.Entries().Delete(ctx, id)
}

// Entries returns the full log, newest timestamp first.
func (j *Journal) Entries(ctx context.Context) ([]*model.LogEntry, error) {
	return j.store.Entries().List(ctx)
}

// EntriesForDate returns entries whose timestamp falls on dateKey
// (YYYY-MM-DD) when rendered in loc. Bucketing uses the viewer's zone
// at filter time, so an entry near midnight can move buckets when the
// viewer's zone changes.
func (j *Journal) EntriesForDate(ctx context.Context, dateKey string, loc *time.Location) ([]*model.LogEntry, error) {
	all, err := j.store.Entries().List(ctx)
	if err != nil {
		return nil, err
	}
	var out []*model.LogEntry
	for _, e := range all {
		if model.LocalDateKey(e.Timestamp, loc) == dateKey {
			out = append(out, e)
		}
	}
	return out, nil
}

// DailyTotal sums calories over the entries for dateKey; zero when the
// day has no entries.
func (j *Journal) DailyTotal(ctx context.Context, dateKey string, loc *time.Location) (int, error) {
	entries, err := j.EntriesForDate(ctx, dateKey, loc)
	if err != nil {
		return 0, err
	}
	total := 0
	for _, e := range entries {
		total += e.Calories
	}
	return total, nil
}

// Export renders the full log as interchange text and returns it with
// the suggested filename for the current local date.
func (j *Journal) Export(ctx context.Context, loc *time.Location) (text, filename string, err error) {
	entries, err := j.store.Entries().List(ctx)
	if err != nil {
		return "", "", err
	}
	text = interchange.Export(entries, loc)
	filename = interchange.Filename(model.LocalDateKey(j.now(), loc))
	return text, filename, nil
}

// Import parses interchange text and appends the accepted rows to the
// log, one awaited write per row in input order. There is no rollback:
// rows written before a failing write stay written, and the count of
// rows stored so far is returned alongside the error. Imported rows
// get fresh IDs and a DateAdded of now; food profiles are not touched.
func (j *Journal) Import(ctx context.Context, text string) (int, error) {
	rows, err := interchange.Parse(text)
	if err != nil {
		return 0, err
	}
	now := j.now()
	imported := 0
	for _, r := range rows {
		ts := r.Timestamp
		if ts.IsZero() {
			ts = now
		}
		e := &model.LogEntry{
			ID:        uuid.New().String(),
			FoodName:  r.FoodName,
			Calories:  r.Calories,
			Volume:    r.Volume,
			Notes:     r.Notes,
			Timestamp: ts,
			DateAdded: now,
		}
		if err := j.store.Entries().Put(ctx, e); err != nil {
			return imported, err
		}
		imported++
	}
	j.log.Info().Int("imported", imported).Msg("import complete")
	return imported, nil
}
