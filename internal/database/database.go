package database

import (
	"database/sql"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

// Initialize creates a SQLite database connection and ensures the
// schema exists.
func Initialize(dbPath string) (*sql.DB, error) {
	// Ensure directory exists
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}

	if err := createTables(db); err != nil {
		return nil, err
	}

	return db, nil
}

func createTables(db *sql.DB) error {
	schema := `
	-- Global and per-year settings
	CREATE TABLE IF NOT EXISTS settings (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		key TEXT NOT NULL UNIQUE,
		value TEXT NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	-- Consultant roster
	CREATE TABLE IF NOT EXISTS consultants (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL UNIQUE,
		wte REAL NOT NULL DEFAULT 1.0,
		cardiac BOOLEAN DEFAULT FALSE,
		eligible_a BOOLEAN DEFAULT TRUE,
		eligible_d BOOLEAN DEFAULT TRUE,
		active BOOLEAN DEFAULT TRUE,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	-- Leave requests, with the JSON-per-request store's fields; the
	-- leave handlers read and write that store, not this table
	CREATE TABLE IF NOT EXISTS leave_requests (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		request_id TEXT NOT NULL UNIQUE,
		name TEXT NOT NULL,
		start_date TEXT NOT NULL,
		end_date TEXT NOT NULL,
		leave_type TEXT NOT NULL DEFAULT 'Annual',
		approved BOOLEAN DEFAULT TRUE,
		notes TEXT DEFAULT '',
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	-- Bank holidays, one row per (year, date)
	CREATE TABLE IF NOT EXISTS bank_holidays (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		year INTEGER NOT NULL,
		holiday_date TEXT NOT NULL,
		name TEXT NOT NULL DEFAULT '',
		UNIQUE(year, holiday_date)
	);

	-- One row per solve attempt, for audit and re-export
	CREATE TABLE IF NOT EXISTS solve_runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		cycle_start TEXT NOT NULL,
		cycle_end TEXT NOT NULL,
		status TEXT NOT NULL,
		objective INTEGER,
		time_limit_seconds INTEGER NOT NULL DEFAULT 60,
		hard_week_gap BOOLEAN DEFAULT TRUE,
		hard_no_consec_weekends BOOLEAN DEFAULT TRUE,
		days_json TEXT NOT NULL DEFAULT '[]',
		consultants_json TEXT NOT NULL DEFAULT '[]',
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	-- Insert default settings if not exist
	INSERT OR IGNORE INTO settings (key, value) VALUES
		('backend_port', '8080'),
		('default_time_limit_seconds', '60'),
		('default_worker_count', '8'),
		('bank_holiday_country', 'PT'),
		('leave_requests_dir', './data/leave-requests');
	`

	_, err := db.Exec(schema)
	if err != nil {
		return err
	}

	// Run migrations for existing databases
	migrations := []string{
		// Add eligibility columns if they don't exist
		`ALTER TABLE consultants ADD COLUMN eligible_a BOOLEAN DEFAULT TRUE;`,
		`ALTER TABLE consultants ADD COLUMN eligible_d BOOLEAN DEFAULT TRUE;`,
		// Add hard-constraint toggle columns if they don't exist
		`ALTER TABLE solve_runs ADD COLUMN hard_week_gap BOOLEAN DEFAULT TRUE;`,
		`ALTER TABLE solve_runs ADD COLUMN hard_no_consec_weekends BOOLEAN DEFAULT TRUE;`,
		// Add persisted result columns so GET /api/rota/:year can replay
		// the last solve without re-running it
		`ALTER TABLE solve_runs ADD COLUMN days_json TEXT NOT NULL DEFAULT '[]';`,
		`ALTER TABLE solve_runs ADD COLUMN consultants_json TEXT NOT NULL DEFAULT '[]';`,
	}

	for _, migration := range migrations {
		// Ignore errors (column may already exist)
		db.Exec(migration)
	}

	return nil
}
