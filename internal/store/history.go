package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// UserInput is one advisory request a farmer submitted: where they
// farm and under what conditions.
type UserInput struct {
	ID            int64     `json:"id"`
	UserID        string    `json:"userId"`
	Location      string    `json:"location"`
	LandSize      string    `json:"landSize"`
	LandType      string    `json:"landType"`
	LandHealth    string    `json:"landHealth"`
	Season        string    `json:"season"`
	WaterFacility string    `json:"waterFacility"`
	Duration      string    `json:"duration"`
	CreatedAt     time.Time `json:"createdAt"`
}

// History records user inputs in SQLite so past advisory requests can
// be replayed and audited.
type History struct {
	db *sql.DB
}

const historySchema = `
CREATE TABLE IF NOT EXISTS user_inputs (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    user_id TEXT,
    location TEXT,
    land_size TEXT,
    land_type TEXT,
    land_health TEXT,
    season TEXT,
    water_facility TEXT,
    duration TEXT,
    created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);
CREATE TABLE IF NOT EXISTS discoveries (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    location TEXT,
    radius_meters INTEGER,
    max_results INTEGER,
    vendor_count INTEGER,
    created_at DATETIME DEFAULT CURRENT_TIMESTAMP
)`

// OpenHistory opens (and if needed initializes) the history database
// at path.
func OpenHistory(path string) (*History, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open history db: %w", err)
	}
	if _, err := db.Exec(historySchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init history schema: %w", err)
	}
	return &History{db: db}, nil
}

// Close releases the database handle.
func (h *History) Close() error {
	return h.db.Close()
}

// SaveInput stores one user input and returns its row id. An empty
// user id is recorded as anonymous.
func (h *History) SaveInput(ctx context.Context, in UserInput) (int64, error) {
	userID := in.UserID
	if userID == "" {
		userID = "anonymous"
	}

	res, err := h.db.ExecContext(ctx,
		`INSERT INTO user_inputs (user_id, location, land_size, land_type, land_health, season, water_facility, duration)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		userID, in.Location, in.LandSize, in.LandType, in.LandHealth, in.Season, in.WaterFacility, in.Duration)
	if err != nil {
		return 0, fmt.Errorf("save user input: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("save user input: %w", err)
	}
	return id, nil
}

// InputsForUser returns a user's inputs, newest first.
func (h *History) InputsForUser(ctx context.Context, userID string) ([]UserInput, error) {
	rows, err := h.db.QueryContext(ctx,
		`SELECT id, user_id, location, land_size, land_type, land_health, season, water_facility, duration, created_at
		 FROM user_inputs WHERE user_id = ? ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("query user inputs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var inputs []UserInput
	for rows.Next() {
		var in UserInput
		var createdAt string
		if err := rows.Scan(&in.ID, &in.UserID, &in.Location, &in.LandSize, &in.LandType,
			&in.LandHealth, &in.Season, &in.WaterFacility, &in.Duration, &createdAt); err != nil {
			return nil, fmt.Errorf("scan user input: %w", err)
		}
		in.CreatedAt = parseSQLiteTime(createdAt)
		inputs = append(inputs, in)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate user inputs: %w", err)
	}
	return inputs, nil
}

// Discovery is one completed vendor discovery run.
type Discovery struct {
	ID           int64     `json:"id"`
	Location     string    `json:"location"`
	RadiusMeters int       `json:"radiusMeters"`
	MaxResults   int       `json:"maxResults"`
	VendorCount  int       `json:"vendorCount"`
	CreatedAt    time.Time `json:"createdAt"`
}

// RecordDiscovery stores one completed discovery run.
func (h *History) RecordDiscovery(ctx context.Context, d Discovery) (int64, error) {
	res, err := h.db.ExecContext(ctx,
		`INSERT INTO discoveries (location, radius_meters, max_results, vendor_count)
		 VALUES (?, ?, ?, ?)`,
		d.Location, d.RadiusMeters, d.MaxResults, d.VendorCount)
	if err != nil {
		return 0, fmt.Errorf("record discovery: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("record discovery: %w", err)
	}
	return id, nil
}

// RecentDiscoveries returns the latest discovery runs, newest first.
func (h *History) RecentDiscoveries(ctx context.Context, limit int) ([]Discovery, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := h.db.QueryContext(ctx,
		`SELECT id, location, radius_meters, max_results, vendor_count, created_at
		 FROM discoveries ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query discoveries: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var discoveries []Discovery
	for rows.Next() {
		var d Discovery
		var createdAt string
		if err := rows.Scan(&d.ID, &d.Location, &d.RadiusMeters, &d.MaxResults, &d.VendorCount, &createdAt); err != nil {
			return nil, fmt.Errorf("scan discovery: %w", err)
		}
		d.CreatedAt = parseSQLiteTime(createdAt)
		discoveries = append(discoveries, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate discoveries: %w", err)
	}
	return discoveries, nil
}

// parseSQLiteTime handles the two timestamp shapes SQLite emits for
// CURRENT_TIMESTAMP defaults.
func parseSQLiteTime(s string) time.Time {
	for _, layout := range []string{"2006-01-02 15:04:05", time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
