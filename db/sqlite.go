package db

import (
	"database/sql"
	"errors"

	"empowerher/tracker"
	_ "github.com/mattn/go-sqlite3"
)

var database *sql.DB

// InitDB initializes the SQLite database
func InitDB(path string) error {
	var err error
	database, err = sql.Open("sqlite3", path)
	if err != nil {
		return err
	}

	query := `
    CREATE TABLE IF NOT EXISTS wellness_entries (
        id INTEGER PRIMARY KEY AUTOINCREMENT,
        date TEXT NOT NULL UNIQUE,
        meditation_minutes INTEGER DEFAULT 0,
        exercise_minutes INTEGER DEFAULT 0,
        water_glasses INTEGER DEFAULT 0,
        diet_log TEXT DEFAULT '',
        created_at DATETIME DEFAULT CURRENT_TIMESTAMP
    );
    `

	_, err = database.Exec(query)
	return err
}

// SaveWellnessEntry upserts the entry for its date; logging the same day
// twice replaces the earlier entry.
func SaveWellnessEntry(entry tracker.Entry) error {
	if database == nil {
		return errors.New("database not initialized")
	}
	_, err := database.Exec(`
        INSERT OR REPLACE INTO wellness_entries (
            date, meditation_minutes, exercise_minutes, water_glasses, diet_log
        ) VALUES (?, ?, ?, ?, ?)`,
		entry.Date, entry.Meditation, entry.Exercise, entry.Water, entry.Diet)
	return err
}

// QueryWellnessEntries returns the most recent entries, newest first.
func QueryWellnessEntries(limit int) ([]tracker.Entry, error) {
	if database == nil {
		return nil, errors.New("database not initialized")
	}
	rows, err := database.Query(`
        SELECT date, meditation_minutes, exercise_minutes, water_glasses, diet_log
        FROM wellness_entries
        ORDER BY date DESC
        LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]tracker.Entry, 0)
	for rows.Next() {
		var e tracker.Entry
		if err := rows.Scan(&e.Date, &e.Meditation, &e.Exercise, &e.Water, &e.Diet); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// GetWellnessEntry returns the entry for one date, or sql.ErrNoRows.
func GetWellnessEntry(date string) (tracker.Entry, error) {
	if database == nil {
		return tracker.Entry{}, errors.New("database not initialized")
	}
	var e tracker.Entry
	err := database.QueryRow(`
        SELECT date, meditation_minutes, exercise_minutes, water_glasses, diet_log
        FROM wellness_entries
        WHERE date = ?`, date).Scan(&e.Date, &e.Meditation, &e.Exercise, &e.Water, &e.Diet)
	if err != nil {
		return tracker.Entry{}, err
	}
	return e, nil
}
