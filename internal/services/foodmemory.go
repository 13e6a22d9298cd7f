package services

import (
	"context"
	"errors"
	"time"

	"github.com/bitelog/bitelog/internal/model"
	"github.com/bitelog/bitelog/internal/store"
)

// fallbackVolume is remembered when a food is first logged with no
// portion descriptor.
const fallbackVolume = "1 serving"

// FoodMemory maintains the rolling per-food profiles that power
// suggestions and rescaling. Every mutation writes through the store.
type FoodMemory struct {
	store store.Store
}

func NewFoodMemory(s store.Store) *FoodMemory {
	return &FoodMemory{store: s}
}

// UpsertOnLog records one use of a food. An existing profile gets its
// frequency bumped and its base calories overwritten with the latest
// value; an empty volume on reuse keeps the remembered default rather
// than erasing it.
func (m *FoodMemory) UpsertOnLog(ctx context.Context, name string, calories int, volume string, now time.Time) (*model.FoodProfile, error) {
	p, err := m.store.Profiles().Get(ctx, name)
	switch {
	case errors.Is(err, model.ErrNotFound):
		v := volume
		if v == "" {
			v = fallbackVolume
		}
		p = &model.FoodProfile{
			FoodName:      name,
			BaseCalories:  calories,
			DefaultVolume: v,
			Frequency:     1,
			LastUsed:      &now,
		}
	case err != nil:
		return nil, err
	default:
		p.Frequency++
		p.BaseCalories = calories
		p.LastUsed = &now
		if volume != "" {
			p.DefaultVolume = volume
		}
	}

	if err := m.store.Profiles().Upsert(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// RankedByFrequency returns all profiles, most frequently logged first.
func (m *FoodMemory) RankedByFrequency(ctx context.Context) ([]*model.FoodProfile, error) {
	return m.store.Profiles().List(ctx)
}
