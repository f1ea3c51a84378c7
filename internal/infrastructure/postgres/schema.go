package postgres

import (
	"context"
	"fmt"
)

// Sentencias idempotentes: se pueden correr en cada arranque.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS clients (
		client_id      BIGSERIAL PRIMARY KEY,
		first_name     TEXT NOT NULL,
		last_name      TEXT NOT NULL,
		corporate_name TEXT NOT NULL,
		cuit           TEXT NOT NULL,
		email          TEXT NOT NULL,
		cell_phone     TEXT NOT NULL,
		birthdate      DATE NOT NULL,
		CONSTRAINT clients_email_key UNIQUE (email)
	)`,
	// CUIT es opcional: la unicidad aplica solo a valores no vacíos, así
	// pueden coexistir varios clientes sin CUIT.
	`CREATE UNIQUE INDEX IF NOT EXISTS clients_cuit_key ON clients (cuit) WHERE cuit <> ''`,
	// Búsqueda por substring sin distinguir mayúsculas sobre los campos de nombre.
	`CREATE OR REPLACE FUNCTION search_clients(p_name TEXT)
	RETURNS SETOF clients AS $$
		SELECT * FROM clients
		WHERE first_name ILIKE '%' || p_name || '%'
		   OR last_name ILIKE '%' || p_name || '%'
		   OR corporate_name ILIKE '%' || p_name || '%'
	$$ LANGUAGE sql STABLE`,
}

// EnsureSchema crea la tabla clients y la función search_clients si no existen.
func EnsureSchema(ctx context.Context, q Querier) error {
	for _, stmt := range schemaStatements {
		if _, err := q.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}
