package archive

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const postgresSchema = `CREATE TABLE IF NOT EXISTS analyses (
	id         UUID PRIMARY KEY,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	job_role   TEXT NOT NULL,
	company    TEXT NOT NULL,
	ats_score  INTEGER NOT NULL,
	file_name  TEXT NOT NULL,
	job_hash   TEXT,
	fallback   BOOLEAN NOT NULL DEFAULT FALSE,
	response   JSONB NOT NULL
)`

// PostgresStore archives analyses in PostgreSQL.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// OpenPostgres connects a pool, pings it and ensures the table exists.
func OpenPostgres(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	if _, err := pool.Exec(ctx, postgresSchema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to create analyses table: %w", err)
	}
	return &PostgresStore{pool: pool}, nil
}

// Save implements Store.
func (s *PostgresStore) Save(ctx context.Context, rec Record) error {
	if err := validate(rec); err != nil {
		return err
	}
	_, err := s.pool.Exec(ctx,
		`INSERT INTO analyses (id, created_at, job_role, company, ats_score, file_name, job_hash, fallback, response)
		 VALUES ($1, $2, $3, $4, $5, $6, NULLIF($7, ''), $8, $9)`,
		rec.ID, rec.CreatedAt, rec.JobRole, rec.Company, rec.ATSScore, rec.FileName, rec.JobHash, rec.Fallback, []byte(rec.Response),
	)
	if err != nil {
		return fmt.Errorf("failed to save analysis %s: %w", rec.ID, err)
	}
	return nil
}

// Get implements Store.
func (s *PostgresStore) Get(ctx context.Context, id string) (*Record, error) {
	var (
		rec     Record
		jobHash *string
		body    []byte
	)
	err := s.pool.QueryRow(ctx,
		`SELECT id::text, created_at, job_role, company, ats_score, file_name, job_hash, fallback, response
		 FROM analyses WHERE id = $1`,
		id,
	).Scan(&rec.ID, &rec.CreatedAt, &rec.JobRole, &rec.Company, &rec.ATSScore, &rec.FileName, &jobHash, &rec.Fallback, &body)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get analysis %s: %w", id, err)
	}
	if jobHash != nil {
		rec.JobHash = *jobHash
	}
	rec.Response = body
	return &rec, nil
}

// Close implements Store.
func (s *PostgresStore) Close() error {
	if s.pool != nil {
		s.pool.Close()
	}
	return nil
}
