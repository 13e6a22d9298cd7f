package storetest

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/bitelog/bitelog/internal/model"
	"github.com/bitelog/bitelog/internal/store"
)

// Run exercises a minimal compliance suite against a store.Store
// implementation. Implementations should provide a clean, isolated
// store and return it from makeStore.
func Run(t *testing.T, makeStore func(t *testing.T) store.Store) {
	t.Helper()

	s := makeStore(t)
	ctx := context.Background()

	base := time.Date(2026, 3, 14, 8, 0, 0, 0, time.UTC)

	// Entries: put + get
	e1 := &model.LogEntry{
		ID:        uuid.New().String(),
		FoodName:  "Apple",
		Calories:  95,
		Volume:    "1 medium",
		Timestamp: base.Add(2 * time.Hour),
		DateAdded: base.Add(2 * time.Hour),
	}
	if err := s.Entries().Put(ctx, e1); err != nil {
		t.Fatalf("PutEntry: %v", err)
	}
	if got, err := s.Entries().Get(ctx, e1.ID); err != nil || got == nil || got.FoodName != "Apple" {
		t.Fatalf("GetEntry: got=%v err=%v", got, err)
	}

	// Ordered listing, newest timestamp first
	e2 := &model.LogEntry{
		ID:        uuid.New().String(),
		FoodName:  "Banana",
		Calories:  105,
		Timestamp: base.Add(5 * time.Hour),
		DateAdded: base.Add(5 * time.Hour),
	}
	if err := s.Entries().Put(ctx, e2); err != nil {
		t.Fatalf("PutEntry e2: %v", err)
	}
	lst, err := s.Entries().List(ctx)
	if err != nil || len(lst) != 2 {
		t.Fatalf("ListEntries: n=%d err=%v", len(lst), err)
	}
	if lst[0].ID != e2.ID || lst[1].ID != e1.ID {
		t.Fatalf("ListEntries order: got %s,%s", lst[0].FoodName, lst[1].FoodName)
	}

	// Delete entry, then not-found on lookup and delete
	if err := s.Entries().Delete(ctx, e1.ID); err != nil {
		t.Fatalf("DeleteEntry: %v", err)
	}
	if _, err := s.Entries().Get(ctx, e1.ID); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("GetEntry after delete: err=%v", err)
	}
	if err := s.Entries().Delete(ctx, e1.ID); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("DeleteEntry twice: err=%v", err)
	}

	// Profiles: upsert + get + ranking + count
	now := base
	for _, p := range []*model.FoodProfile{
		{FoodName: "Coffee", BaseCalories: 30, DefaultVolume: "1 cup", Frequency: 3, LastUsed: &now},
		{FoodName: "Apple", BaseCalories: 95, DefaultVolume: "1 medium", Frequency: 1, LastUsed: &now},
		{FoodName: "Salad", BaseCalories: 150, DefaultVolume: "1 bowl"},
	} {
		if err := s.Profiles().Upsert(ctx, p); err != nil {
			t.Fatalf("UpsertProfile %s: %v", p.FoodName, err)
		}
	}
	if got, err := s.Profiles().Get(ctx, "Coffee"); err != nil || got == nil || got.Frequency != 3 {
		t.Fatalf("GetProfile: got=%v err=%v", got, err)
	}
	if _, err := s.Profiles().Get(ctx, "nope"); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("GetProfile missing: err=%v", err)
	}
	ranked, err := s.Profiles().List(ctx)
	if err != nil || len(ranked) != 3 {
		t.Fatalf("ListProfiles: n=%d err=%v", len(ranked), err)
	}
	if ranked[0].FoodName != "Coffee" {
		t.Fatalf("ListProfiles ranking: first=%s", ranked[0].FoodName)
	}
	if ranked[2].FoodName != "Salad" || ranked[2].LastUsed != nil {
		t.Fatalf("ListProfiles seed row: %+v", ranked[2])
	}

	// Upsert replaces rather than duplicating
	bump := &model.FoodProfile{FoodName: "Apple", BaseCalories: 100, DefaultVolume: "1 large", Frequency: 2, LastUsed: &now}
	if err := s.Profiles().Upsert(ctx, bump); err != nil {
		t.Fatalf("UpsertProfile bump: %v", err)
	}
	if n, err := s.Profiles().Count(ctx); err != nil || n != 3 {
		t.Fatalf("CountProfiles: n=%d err=%v", n, err)
	}

	if err := s.HealthCheck(ctx); err != nil {
		t.Fatalf("HealthCheck: %v", err)
	}
}
