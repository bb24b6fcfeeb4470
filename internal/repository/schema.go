package repository

import "fmt"

// InitSchema creates the schema and tables if they do not exist
func (r *Repository) InitSchema() error {
	const schema = `
	CREATE SCHEMA IF NOT EXISTS cartera;

	CREATE TABLE IF NOT EXISTS cartera.users (
		id UUID PRIMARY KEY,
		name TEXT NOT NULL,
		email TEXT NOT NULL UNIQUE,
		cedula TEXT NOT NULL,
		role TEXT NOT NULL,
		password_hash TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	);

	CREATE TABLE IF NOT EXISTS cartera.products (
		id UUID PRIMARY KEY,
		name TEXT NOT NULL,
		value NUMERIC(18,2) NOT NULL,
		category TEXT NOT NULL DEFAULT '',
		description TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	);

	CREATE TABLE IF NOT EXISTS cartera.credits (
		id UUID PRIMARY KEY,
		client_id UUID NOT NULL REFERENCES cartera.users(id),
		product_id UUID NOT NULL REFERENCES cartera.products(id),
		amount NUMERIC(18,2) NOT NULL,
		payment_plan JSONB NOT NULL,
		status TEXT NOT NULL,
		created_date TIMESTAMPTZ NOT NULL
	);

	CREATE TABLE IF NOT EXISTS cartera.payments (
		id UUID PRIMARY KEY,
		credit_id UUID NOT NULL REFERENCES cartera.credits(id),
		installment_number INTEGER NOT NULL,
		amount NUMERIC(18,2) NOT NULL,
		payment_type TEXT NOT NULL,
		date TIMESTAMPTZ NOT NULL,
		receipt_number TEXT NOT NULL,
		signature TEXT NOT NULL
	);`
	if _, err := r.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to initialize schema: %w", err)
	}
	return nil
}
