package store

import (
	"context"

	"github.com/bitelog/bitelog/internal/model"
)

// Store exposes persistence operations required by services.
// Implementations live under internal/store/<driver>/ (e.g., sqlite).
type Store interface {
	Entries() Entries
	Profiles() Profiles
	HealthCheck(ctx context.Context) error
	Close() error
}

// Entries is the log-entry collection, keyed by entry ID with ordered
// retrieval by timestamp.
type Entries interface {
	Put(ctx context.Context, e *model.LogEntry) error
	Get(ctx context.Context, id string) (*model.LogEntry, error)
	// List returns all entries ordered by Timestamp descending.
	List(ctx context.Context) ([]*model.LogEntry, error)
	Delete(ctx context.Context, id string) error
}

// Profiles is the food-profile collection, keyed by exact food name.
type Profiles interface {
	Upsert(ctx context.Context, p *model.FoodProfile) error
	Get(ctx context.Context, foodName string) (*model.FoodProfile, error)
	// List returns all profiles ordered by Frequency descending,
	// ties broken by FoodName ascending.
	List(ctx context.Context) ([]*model.FoodProfile, error)
	Count(ctx context.Context) (int, error)
}
