package localstate

import (
	"database/sql"
)

// EnsureSchema creates the core tables if they do not exist.
func EnsureSchema(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS Entries (
            EntryId TEXT PRIMARY KEY,
            FoodName TEXT NOT NULL,
            Calories INTEGER NOT NULL,
            Volume TEXT NOT NULL DEFAULT '',
            Notes TEXT NOT NULL DEFAULT '',
            Timestamp TIMESTAMP NOT NULL,
            DateAdded TIMESTAMP NOT NULL
        );`,
		`CREATE INDEX IF NOT EXISTS Entries_Timestamp_Idx ON Entries(Timestamp);`,
		`CREATE TABLE IF NOT EXISTS FoodProfiles (
            FoodName TEXT PRIMARY KEY,
            BaseCalories INTEGER NOT NULL,
            DefaultVolume TEXT NOT NULL,
            Frequency INTEGER NOT NULL DEFAULT 0,
            LastUsed TIMESTAMP
        );`,
	}

	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}
