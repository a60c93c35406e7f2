package sqlite

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

// Open connects to the SQLite database at path and returns a database handle.
// Use ":memory:" for a throwaway in-process database.
func Open(path string) (*sqlx.DB, error) {
	db, err := sqlx.Connect("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("connecting to sqlite: %v", err)
	}

	// a :memory: database exists per connection, so the pool must stay at one
	if path == ":memory:" {
		db.SetMaxOpenConns(1)
	}

	err = setup(db)
	if err != nil {
		return nil, err
	}

	return db, nil
}

// configures the database settings
func setup(db *sqlx.DB) error {
	// writes must reach disk before a call returns
	_, err := db.Exec("PRAGMA synchronous = FULL")
	if err != nil {
		return fmt.Errorf("configuring sqlite: %v", err)
	}

	err = createTables(db)
	if err != nil {
		return fmt.Errorf("creating db tables: %v", err)
	}

	return nil
}
