package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/bitelog/bitelog/internal/localstate"
	"github.com/bitelog/bitelog/internal/model"
	"github.com/bitelog/bitelog/internal/store"
)

// New opens (or creates) a SQLite database file, ensures the schema and
// seeds the default food profiles on first run, and returns a store
// backed by it.
func New(path string) (store.Store, error) {
	db, err := Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: open sqlite at %s: %v", model.ErrStoreUnavailable, path, err)
	}
	if err := localstate.EnsureSchema(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: ensure schema: %v", model.ErrStoreUnavailable, err)
	}
	if err := localstate.SeedDefaultProfiles(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: seed profiles: %v", model.ErrStoreUnavailable, err)
	}
	return NewWithDB(db), nil
}

// NewWithDB constructs a SQLite store backed by an existing connection
// (used by tests and by callers that manage the schema themselves).
func NewWithDB(db *sql.DB) store.Store { return &sqliteStore{db: db} }

type sqliteStore struct{ db *sql.DB }

func (s *sqliteStore) Entries() store.Entries   { return &entries{db: s.db} }
func (s *sqliteStore) Profiles() store.Profiles { return &profiles{db: s.db} }

func (s *sqliteStore) HealthCheck(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *sqliteStore) Close() error { return s.db.Close() }

// --- Entries ---

type entries struct{ db *sql.DB }

func (e *entries) Put(ctx context.Context, m *model.LogEntry) error {
	_, err := e.db.ExecContext(ctx, `INSERT OR REPLACE INTO Entries
        (EntryId, FoodName, Calories, Volume, Notes, Timestamp, DateAdded)
        VALUES (?,?,?,?,?,?,?)`,
		m.ID, m.FoodName, m.Calories, m.Volume, m.Notes, m.Timestamp.UTC(), m.DateAdded.UTC())
	if err != nil {
		return fmt.Errorf("put entry: %w", err)
	}
	return nil
}

func (e *entries) Get(ctx context.Context, id string) (*model.LogEntry, error) {
	row := e.db.QueryRowContext(ctx, `SELECT EntryId, FoodName, Calories, Volume, Notes, Timestamp, DateAdded
        FROM Entries WHERE EntryId = ?`, id)
	var m model.LogEntry
	err := row.Scan(&m.ID, &m.FoodName, &m.Calories, &m.Volume, &m.Notes, &m.Timestamp, &m.DateAdded)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, model.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get entry: %w", err)
	}
	return &m, nil
}

func (e *entries) List(ctx context.Context) ([]*model.LogEntry, error) {
	rows, err := e.db.QueryContext(ctx, `SELECT EntryId, FoodName, Calories, Volume, Notes, Timestamp, DateAdded
        FROM Entries ORDER BY Timestamp DESC`)
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	defer rows.Close()
	var out []*model.LogEntry
	for rows.Next() {
		var m model.LogEntry
		if err := rows.Scan(&m.ID, &m.FoodName, &m.Calories, &m.Volume, &m.Notes, &m.Timestamp, &m.DateAdded); err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}
		out = append(out, &m)
	}
	return out, rows.Err()
}

func (e *entries) Delete(ctx context.Context, id string) error {
	res, err := e.db.ExecContext(ctx, `DELETE FROM Entries WHERE EntryId = ?`, id)
	if err != nil {
		return fmt.Errorf("delete entry: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return model.ErrNotFound
	}
	return nil
}

// --- Food profiles ---

type profiles struct{ db *sql.DB }

func (p *profiles) Upsert(ctx context.Context, m *model.FoodProfile) error {
	var lastUsed interface{}
	if m.LastUsed != nil {
		lastUsed = m.LastUsed.UTC()
	}
	_, err := p.db.ExecContext(ctx, `INSERT INTO FoodProfiles
        (FoodName, BaseCalories, DefaultVolume, Frequency, LastUsed)
        VALUES (?,?,?,?,?)
        ON CONFLICT(FoodName) DO UPDATE SET
            BaseCalories = excluded.BaseCalories,
            DefaultVolume = excluded.DefaultVolume,
            Frequency = excluded.Frequency,
            LastUsed = excluded.LastUsed`,
		m.FoodName, m.BaseCalories, m.DefaultVolume, m.Frequency, lastUsed)
	if err != nil {
		return fmt.Errorf("upsert profile: %w", err)
	}
	return nil
}

func (p *profiles) Get(ctx context.Context, foodName string) (*model.FoodProfile, error) {
	row := p.db.QueryRowContext(ctx, `SELECT FoodName, BaseCalories, DefaultVolume, Frequency, LastUsed
        FROM FoodProfiles WHERE FoodName = ?`, foodName)
	var m model.FoodProfile
	var last *time.Time
	err := row.Scan(&m.FoodName, &m.BaseCalories, &m.DefaultVolume, &m.Frequency, &last)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, model.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}
	m.LastUsed = last
	return &m, nil
}

func (p *profiles) List(ctx context.Context) ([]*model.FoodProfile, error) {
	rows, err := p.db.QueryContext(ctx, `SELECT FoodName, BaseCalories, DefaultVolume, Frequency, LastUsed
        FROM FoodProfiles ORDER BY Frequency DESC, FoodName ASC`)
	if err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}
	defer rows.Close()
	var out []*model.FoodProfile
	for rows.Next() {
		var m model.FoodProfile
		var last *time.Time
		if err := rows.Scan(&m.FoodName, &m.BaseCalories, &m.DefaultVolume, &m.Frequency, &last); err != nil {
			return nil, fmt.Errorf("scan profile: %w", err)
		}
		m.LastUsed = last
		out = append(out, &m)
	}
	return out, rows.Err()
}

func (p *profiles) Count(ctx context.Context) (int, error) {
	var n int
	if err := p.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM FoodProfiles`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count profiles: %w", err)
	}
	return n, nil
}
