// Package suggest implements the suggestion filter and the
// portion-based calorie rescaling rule. Everything here is pure: the
// currently visible suggestion list is passed in by the caller rather
// than read from ambient UI state.
package suggest

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/bitelog/bitelog/internal/model"
)

// numberRx matches the first integer or decimal token in a portion
// descriptor, e.g. "2" in "2 medium" or "0.5" in "0.5 cup".
var numberRx = regexp.MustCompile(`\d+(\.\d+)?`)

// Draft is the working entry being edited before submission. It is
// owned by the presentation layer and mutated in place.
type Draft struct {
	FoodName string
	Calories int
	Volume   string
	Notes    string
}

// Filter returns the profiles whose name contains partial,
// case-insensitively, preserving the input order. An empty query
// yields no suggestions.
func Filter(profiles []*model.FoodProfile, partial string) []*model.FoodProfile {
	q := strings.ToLower(strings.TrimSpace(partial))
	if q == "" {
		return nil
	}
	var out []*model.FoodProfile
	for _, p := range profiles {
		if strings.Contains(strings.ToLower(p.FoodName), q) {
			out = append(out, p)
		}
	}
	return out
}

// ApplyProfile transcribes a chosen profile into the draft. This is a
// plain copy, not a scaling operation.
func ApplyProfile(d *Draft, p *model.FoodProfile) {
	d.FoodName = p.FoodName
	d.Calories = p.BaseCalories
	d.Volume = p.DefaultVolume
}

// RescaleOnVolumeEdit recomputes a calorie estimate after the user
// edits the volume field. It returns the scaled calories and true when
// rescaling applies; otherwise ok is false and the caller leaves the
// calories field untouched.
//
// The rule only consults the currently visible suggestion list: once
// suggestions have cleared, editing the volume no longer rescales.
// That matches the historical behavior and is asserted as such in
// tests.
func RescaleOnVolumeEdit(newVolume, foodName string, visible []*model.FoodProfile) (int, bool) {
	newNum, ok := firstNumber(newVolume)
	if !ok {
		return 0, false
	}
	for _, p := range visible {
		if p.FoodName != foodName {
			continue
		}
		defNum, ok := firstNumber(p.DefaultVolume)
		if !ok || defNum == 0 {
			return 0, false
		}
		scaled := math.Round(float64(p.BaseCalories) * newNum / defNum)
		return int(scaled), true
	}
	return 0, false
}

func firstNumber(s string) (float64, bool) {
	tok := numberRx.FindString(s)
	if tok == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(tok, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}
