// Copyright 2024 The astra-go Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/lib/pq" // PostgreSQL driver
)

// DefaultPostgresTimeout bounds individual backend queries.
const DefaultPostgresTimeout = 30 * time.Second

// PostgresBackend persists the value as a single row in a PostgreSQL table,
// keyed by a fixed identifier. Writes upsert the row; reads select it back.
type PostgresBackend struct {
	db      *sql.DB
	table   string
	key     string
	timeout time.Duration
}

// NewPostgresBackend opens a connection pool for dsn and returns a backend
// storing its value under key in table. The table must have columns
// (id TEXT PRIMARY KEY, data TEXT).
func NewPostgresBackend(dsn, table, key string) (*PostgresBackend, error) {
	if table == "" || key == "" {
		return nil, errors.New("postgres backend requires a table and a key")
	}
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres connection: %w", err)
	}
	return &PostgresBackend{
		db:      db,
		table:   table,
		key:     key,
		timeout: DefaultPostgresTimeout,
	}, nil
}

// SetTimeout overrides the per-query timeout.
func (b *PostgresBackend) SetTimeout(d time.Duration) {
	if d > 0 {
		b.timeout = d
	}
}

// Write upserts the value row.
func (b *PostgresBackend) Write(data string) error {
	ctx, cancel := context.WithTimeout(context.Background(), b.timeout)
	defer cancel()

	query := fmt.Sprintf(
		"INSERT INTO %s (id, data) VALUES ($1, $2) ON CONFLICT (id) DO UPDATE SET data = EXCLUDED.data",
		b.table)
	if _, err := b.db.ExecContext(ctx, query, b.key, data); err != nil {
		return fmt.Errorf("failed to write to postgres backend: %w", err)
	}
	return nil
}

// Read selects the value row. It returns ErrNoData when the row does not
// exist yet.
func (b *PostgresBackend) Read() (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), b.timeout)
	defer cancel()

	query := fmt.Sprintf("SELECT data FROM %s WHERE id = $1", b.table)
	var data string
	err := b.db.QueryRowContext(ctx, query, b.key).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNoData
	}
	if err != nil {
		return "", fmt.Errorf("failed to read from postgres backend: %w", err)
	}
	return data, nil
}

// Cleanup closes the connection pool.
func (b *PostgresBackend) Cleanup() error {
	if err := b.db.Close(); err != nil {
		return fmt.Errorf("failed to close postgres connection: %w", err)
	}
	return nil
}
