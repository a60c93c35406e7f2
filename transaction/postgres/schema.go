package postgres

import "github.com/jmoiron/sqlx"

func createTables(db *sqlx.DB) error {
	var schema = `
	CREATE TABLE IF NOT EXISTS transactions (
	id BIGSERIAL PRIMARY KEY,
	occurred_at timestamptz NOT NULL DEFAULT now(),
	currency text NOT NULL CHECK(currency IN ('GBP','EUR')),
	client text NOT NULL,
	recipient text NOT NULL,
	bank text NOT NULL DEFAULT '',
	amount_kz NUMERIC(18, 2) DEFAULT 0 NOT NULL,
	created_by text NOT NULL
	);

	CREATE TABLE IF NOT EXISTS backups (
	id text PRIMARY KEY,
	name text NOT NULL,
	payload text NOT NULL,
	created_at timestamptz NOT NULL DEFAULT now()
	);

	CREATE TABLE IF NOT EXISTS users (
	id BIGSERIAL PRIMARY KEY,
	username text UNIQUE NOT NULL,
	password_hash text NOT NULL,
	role text NOT NULL CHECK(role IN ('admin','employee'))
	);
	`
	_, err := db.Exec(schema)
	if err != nil {
		return err
	}
	return nil
}
