package db

import (
	"fmt"

	"gorm.io/gorm"
)

var postgresStatements = []string{
	`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`,
	`DO $$
	BEGIN
		IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'profile_type') THEN
			CREATE TYPE profile_type AS ENUM ('client', 'contractor');
		END IF;
		IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'contract_status') THEN
			CREATE TYPE contract_status AS ENUM ('new', 'in_progress', 'terminated');
		END IF;
	END
	$$;`,
	`CREATE TABLE IF NOT EXISTS profiles (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		first_name VARCHAR(128) NOT NULL,
		last_name VARCHAR(128) NOT NULL,
		profession VARCHAR(128) NOT NULL DEFAULT '',
		balance NUMERIC(18,2) NOT NULL DEFAULT 0 CHECK (balance >= 0),
		type profile_type NOT NULL
	);`,
	`CREATE TABLE IF NOT EXISTS contracts (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		client_id UUID NOT NULL REFERENCES profiles(id),
		contractor_id UUID NOT NULL REFERENCES profiles(id),
		terms TEXT NOT NULL DEFAULT '',
		status contract_status NOT NULL DEFAULT 'new'
	);`,
	`CREATE TABLE IF NOT EXISTS jobs (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		contract_id UUID NOT NULL REFERENCES contracts(id),
		description TEXT NOT NULL DEFAULT '',
		price NUMERIC(18,2) NOT NULL CHECK (price > 0),
		paid BOOLEAN,
		payment_date TIMESTAMPTZ
	);`,
	`CREATE INDEX IF NOT EXISTS idx_contracts_client_id ON contracts (client_id);`,
	`CREATE INDEX IF NOT EXISTS idx_contracts_contractor_id ON contracts (contractor_id);`,
	`CREATE INDEX IF NOT EXISTS idx_jobs_contract_id ON jobs (contract_id);`,
	`CREATE INDEX IF NOT EXISTS idx_jobs_payment_date ON jobs (payment_date) WHERE payment_date IS NOT NULL;`,
}

var sqliteStatements = []string{
	`CREATE TABLE IF NOT EXISTS profiles (
		id TEXT PRIMARY KEY,
		first_name TEXT NOT NULL,
		last_name TEXT NOT NULL,
		profession TEXT NOT NULL DEFAULT '',
		balance REAL NOT NULL DEFAULT 0 CHECK (balance >= 0),
		type TEXT NOT NULL CHECK (type IN ('client', 'contractor'))
	);`,
	`CREATE TABLE IF NOT EXISTS contracts (
		id TEXT PRIMARY KEY,
		client_id TEXT NOT NULL REFERENCES profiles(id),
		contractor_id TEXT NOT NULL REFERENCES profiles(id),
		terms TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL DEFAULT 'new' CHECK (status IN ('new', 'in_progress', 'terminated'))
	);`,
	`CREATE TABLE IF NOT EXISTS jobs (
		id TEXT PRIMARY KEY,
		contract_id TEXT NOT NULL REFERENCES contracts(id),
		description TEXT NOT NULL DEFAULT '',
		price REAL NOT NULL CHECK (price > 0),
		paid BOOLEAN,
		payment_date DATETIME
	);`,
	`CREATE INDEX IF NOT EXISTS idx_contracts_client_id ON contracts (client_id);`,
	`CREATE INDEX IF NOT EXISTS idx_contracts_contractor_id ON contracts (contractor_id);`,
	`CREATE INDEX IF NOT EXISTS idx_jobs_contract_id ON jobs (contract_id);`,
	`CREATE INDEX IF NOT EXISTS idx_jobs_payment_date ON jobs (payment_date);`,
}

func runMigrations(db *gorm.DB, driver string) error {
	statements := postgresStatements
	if driver == "sqlite" {
		statements = sqliteStatements
	}
	for i, stmt := range statements {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}
	return nil
}
