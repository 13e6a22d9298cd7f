package localstate

import (
	"database/sql"
)

// defaultProfiles is the fixed set inserted on first run so suggestions
// work before anything has been logged. Frequency starts at 0 and
// LastUsed stays NULL until a food is actually logged.
var defaultProfiles = []struct {
	name   string
	cal    int
	volume string
}{
	{"Apple", 95, "1 medium"},
	{"Banana", 105, "1 medium"},
	{"Coffee with milk", 30, "1 cup"},
	{"Sandwich", 350, "1 whole"},
	{"Salad", 150, "1 bowl"},
}

// SeedDefaultProfiles inserts the default food profiles if the
// FoodProfiles table is empty. No-op if any profile already exists.
func SeedDefaultProfiles(db *sql.DB) error {
	var cnt int
	if err := db.QueryRow(`SELECT COUNT(1) FROM FoodProfiles`).Scan(&cnt); err != nil {
		return err
	}
	if cnt > 0 {
		return nil
	}
	for _, p := range defaultProfiles {
		_, err := db.Exec(`INSERT INTO FoodProfiles (FoodName, BaseCalories, DefaultVolume, Frequency, LastUsed) VALUES (?,?,?,0,NULL)`,
			p.name, p.cal, p.volume)
		if err != nil {
			return err
		}
	}
	return nil
}
