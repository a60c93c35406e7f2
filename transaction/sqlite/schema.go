package sqlite

import "github.com/jmoiron/sqlx"

func createTables(db *sqlx.DB) error {
	var schema = `
	CREATE TABLE IF NOT EXISTS transactions (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	occurred_at TIMESTAMP NOT NULL,
	currency TEXT NOT NULL CHECK(currency IN ('GBP','EUR')),
	client TEXT NOT NULL,
	recipient TEXT NOT NULL,
	bank TEXT NOT NULL DEFAULT '',
	amount_kz NUMERIC NOT NULL DEFAULT 0,
	created_by TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS backups (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	payload TEXT NOT NULL,
	created_at TIMESTAMP NOT NULL
	);

	CREATE TABLE IF NOT EXISTS users (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	username TEXT UNIQUE NOT NULL,
	password_hash TEXT NOT NULL,
	role TEXT NOT NULL CHECK(role IN ('admin','employee'))
	);
	`
	_, err := db.Exec(schema)
	if err != nil {
		return err
	}
	return nil
}
