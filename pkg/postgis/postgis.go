// Package postgis stores decoded geohash cells in PostgreSQL with their PostGIS
// envelopes so that point and box lookups run against a GIST index
package postgis

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/kass/go-geohash/pkg/config"
	"github.com/kass/go-geohash/pkg/geohash"
	"github.com/kass/go-geohash/pkg/models"
	_ "github.com/lib/pq"
)

const batchSize = 10000

// Store is a PostGIS backed set of geohash cells
type Store struct {
	db *sql.DB
}

// Open connects to PostgreSQL and verifies the connection
func Open(ctx context.Context, cfg config.PostGIS) (*Store, error) {
	db, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	maxConns := cfg.MaxConnections
	if maxConns <= 0 {
		maxConns = 25
	}
	db.SetMaxOpenConns(maxConns)
	db.SetMaxIdleConns(maxConns)
	db.SetConnMaxLifetime(5 * time.Minute)

	return &Store{db: db}, nil
}

// InitSchema recreates the cell table and its spatial index
func (s *Store) InitSchema(ctx context.Context) error {
	queries := []string{
		`CREATE EXTENSION IF NOT EXISTS postgis;`,
		`DROP TABLE IF EXISTS geohash_cells;`,
		`CREATE TABLE geohash_cells (
			hash TEXT PRIMARY KEY,
			precision SMALLINT NOT NULL,
			cell GEOMETRY(POLYGON, 4326) NOT NULL
		);`,
		`CREATE INDEX idx_geohash_cells_cell ON geohash_cells USING GIST(cell);`,
	}

	for _, query := range queries {
		if _, err := s.db.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("failed to execute query '%s': %w", query, err)
		}
	}

	return nil
}

// BulkInsert decodes and inserts hashes in batched transactions. Hashes that are
// already stored are ignored.
func (s *Store) BulkInsert(ctx context.Context, hashes []string) error {
	regions := make([]geohash.Region, len(hashes))
	for i, h := range hashes {
		r, err := geohash.Decode(h)
		if err != nil {
			return fmt.Errorf("failed to insert cells: %w", err)
		}
		regions[i] = r
	}

	for start := 0; start < len(hashes); start += batchSize {
		end := min(start+batchSize, len(hashes))
		if err := s.insertBatch(ctx, hashes[start:end], regions[start:end]); err != nil {
			return err
		}
	}

	if _, err := s.db.ExecContext(ctx, "ANALYZE geohash_cells;"); err != nil {
		return fmt.Errorf("failed to analyze table: %w", err)
	}
	return nil
}

func (s *Store) insertBatch(ctx context.Context, hashes []string, regions []geohash.Region) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO geohash_cells (hash, precision, cell)
		VALUES ($1, $2, ST_MakeEnvelope($3, $4, $5, $6, 4326))
		ON CONFLICT (hash) DO NOTHING
	`)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for i, h := range hashes {
		r := regions[i]
		if _, err := stmt.ExecContext(ctx, strings.ToLower(h), len(h),
			r.West(), r.South(), r.East(), r.North()); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to insert cell %s: %w", h, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit batch: %w", err)
	}
	return nil
}

// Containing returns the stored cells covering c, sorted by hash
func (s *Store) Containing(ctx context.Context, c models.Coordinate) ([]string, error) {
	return s.queryHashes(ctx, `
		SELECT hash FROM geohash_cells
		WHERE ST_Covers(cell, ST_SetSRID(ST_MakePoint($1, $2), 4326))
		ORDER BY hash
	`, c.Lng, c.Lat)
}

// Intersecting returns the stored cells overlapping r, sorted by hash
func (s *Store) Intersecting(ctx context.Context, r geohash.Region) ([]string, error) {
	r, err := geohash.NewRegion(r.TopLeft, r.BottomRight)
	if err != nil {
		return nil, fmt.Errorf("failed to query region: %w", err)
	}
	return s.queryHashes(ctx, `
		SELECT hash FROM geohash_cells
		WHERE ST_Intersects(cell, ST_MakeEnvelope($1, $2, $3, $4, 4326))
		ORDER BY hash
	`, r.West(), r.South(), r.East(), r.North())
}

func (s *Store) queryHashes(ctx context.Context, query string, args ...any) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to execute query: %w", err)
	}
	defer rows.Close()

	var hashes []string
	for rows.Next() {
		var h string
		if err := rows.Scan(&h); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		hashes = append(hashes, h)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return hashes, nil
}

// Count returns the number of stored cells
func (s *Store) Count(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM geohash_cells").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count cells: %w", err)
	}
	return count, nil
}

// Stats returns table and index sizes as reported by PostgreSQL
func (s *Store) Stats(ctx context.Context) (map[string]any, error) {
	stats := make(map[string]any)

	var tableSize, indexSize string
	err := s.db.QueryRowContext(ctx, `
		SELECT
			pg_size_pretty(pg_total_relation_size('geohash_cells')),
			pg_size_pretty(pg_indexes_size('geohash_cells'))
	`).Scan(&tableSize, &indexSize)
	if err != nil {
		return nil, fmt.Errorf("failed to get table size: %w", err)
	}
	stats["table_size"] = tableSize
	stats["index_size"] = indexSize

	count, err := s.Count(ctx)
	if err != nil {
		return nil, err
	}
	stats["row_count"] = count

	return stats, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.db.Close()
}
