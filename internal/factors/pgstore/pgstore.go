// Package pgstore implements the emission factor store against
// Postgres. Reference factor data is read-only for the engine; rows are
// maintained by the marketplace's data-ingestion jobs.
package pgstore

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/cenkalti/backoff/v4"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/carbonex/footprint/internal/factors"
)

const (
	tableFactors = "emission_factors"

	maxConns           = 10
	healthCheckPeriod  = 30 * time.Second
	connectMaxInterval = 5 * time.Second
	connectMaxElapsed  = 30 * time.Second
)

// builder returns a squirrel statement builder with Postgres
// placeholders.
func builder() sq.StatementBuilderType {
	return sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
}

// Store is a factors.Store backed by a pgx connection pool.
type Store struct {
	pool *pgxpool.Pool
}

// Connect opens a pooled connection to url and verifies it with a ping.
// The initial connect is retried with exponential backoff; once the
// store is up, individual factor queries are never retried — retry
// policy stops at the store boundary.
func Connect(ctx context.Context, url string) (*Store, error) {
	cfg, err := pgxpool.ParseConfig(url)
	if err != nil {
		return nil, fmt.Errorf("parsing database url: %w", err)
	}
	cfg.MaxConns = maxConns
	cfg.HealthCheckPeriod = healthCheckPeriod

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("creating connection pool: %w", err)
	}

	bo := backoff.NewExponentialBackOff()
	bo.MaxInterval = connectMaxInterval
	bo.MaxElapsedTime = connectMaxElapsed

	ping := func() error { return pool.Ping(ctx) }
	if err := backoff.Retry(ping, backoff.WithContext(bo, ctx)); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging factor store: %w", err)
	}

	return &Store{pool: pool}, nil
}

// NewWithPool wraps an existing pool, used when the factor store and
// the assessment store share one database.
func NewWithPool(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// Close releases the connection pool.
func (s *Store) Close() {
	s.pool.Close()
}

// Pool exposes the underlying pool for adapters sharing the database.
func (s *Store) Pool() *pgxpool.Pool {
	return s.pool
}

// QueryFactors implements factors.Store. Connectivity errors propagate
// unchanged to the caller; the resolver decides what to do with them.
func (s *Store) QueryFactors(ctx context.Context, category, subcategory string, scope int, regions []string) ([]factors.EmissionFactor, error) {
	query := builder().
		Select("category", "subcategory", "scope", "factor", "unit", "source", "provenance", "region", "year").
		From(tableFactors).
		Where(sq.Eq{
			"category":    category,
			"subcategory": subcategory,
			"scope":       scope,
			"region":      regions,
		})

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("building factor query: %w", err)
	}

	rows, err := s.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("querying emission factors: %w", err)
	}
	defer rows.Close()

	var out []factors.EmissionFactor
	for rows.Next() {
		var f factors.EmissionFactor
		var provenance string
		if err := rows.Scan(&f.Category, &f.Subcategory, &f.Scope, &f.Factor, &f.Unit, &f.Source, &provenance, &f.Region, &f.Year); err != nil {
			return nil, fmt.Errorf("scanning emission factor: %w", err)
		}
		f.Provenance = factors.Provenance(provenance)
		if !f.Provenance.Valid() {
			f.Provenance = factors.ClassifyProvenance(f.Source)
		}
		out = append(out, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading emission factors: %w", err)
	}

	return out, nil
}
