package model

import "time"

// LogEntry is one recorded intake event. Entries are immutable after
// creation; the only mutation is hard deletion by ID.
type LogEntry struct {
	ID        string    `json:"id"`
	FoodName  string    `json:"foodName"`
	Calories  int       `json:"calories"`
	Volume    string    `json:"volume,omitempty"`
	Notes     string    `json:"notes,omitempty"`
	Timestamp time.Time `json:"timestamp"`
	DateAdded time.Time `json:"dateAdded"`
}

// FoodProfile is the rolling summary remembered for a food name.
// BaseCalories and DefaultVolume always reflect the most recent use;
// profiles never reference entries and are never edited retroactively.
type FoodProfile struct {
	FoodName      string     `json:"foodName"`
	BaseCalories  int        `json:"baseCalories"`
	DefaultVolume string     `json:"defaultVolume"`
	Frequency     int        `json:"frequency"`
	LastUsed      *time.Time `json:"lastUsed,omitempty"`
}

// SubmitEntryRequest captures the fields accepted on entry submission.
// Timestamp may be zero, in which case the journal assigns "now".
type SubmitEntryRequest struct {
	FoodName  string
	Calories  int
	Volume    string
	Notes     string
	Timestamp time.Time
}

// LocalDateKey reduces a timestamp to its calendar date in loc,
// formatted YYYY-MM-DD. Day bucketing follows the viewer's zone at
// filter time, not the zone at write time.
func LocalDateKey(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	return t.In(loc).Format("2006-01-02")
}
