package archive

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql" // registers "mysql"
	_ "modernc.org/sqlite"             // registers "sqlite"
)

var sqlSchemas = map[string]string{
	DriverMySQL: `CREATE TABLE IF NOT EXISTS analyses (
		id         CHAR(36) PRIMARY KEY,
		created_at DATETIME(6) NOT NULL,
		job_role   VARCHAR(255) NOT NULL,
		company    VARCHAR(255) NOT NULL,
		ats_score  INT NOT NULL,
		file_name  VARCHAR(255) NOT NULL,
		job_hash   CHAR(64) NULL,
		fallback   BOOLEAN NOT NULL DEFAULT FALSE,
		response   JSON NOT NULL
	)`,
	DriverSQLite: `CREATE TABLE IF NOT EXISTS analyses (
		id         TEXT PRIMARY KEY,
		created_at TEXT NOT NULL,
		job_role   TEXT NOT NULL,
		company    TEXT NOT NULL,
		ats_score  INTEGER NOT NULL,
		file_name  TEXT NOT NULL,
		job_hash   TEXT,
		fallback   INTEGER NOT NULL DEFAULT 0,
		response   TEXT NOT NULL
	)`,
}

// SQLStore archives analyses through database/sql (MySQL or SQLite).
type SQLStore struct {
	db     *sql.DB
	driver string
}

// OpenSQL opens a MySQL or SQLite archive. For MySQL the DSN should set
// parseTime=true.
func OpenSQL(ctx context.Context, driver, dsn string) (*SQLStore, error) {
	schema, ok := sqlSchemas[driver]
	if !ok {
		return nil, fmt.Errorf("unsupported archive driver %q", driver)
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s archive: %w", driver, err)
	}
	if driver == DriverSQLite {
		db.SetMaxOpenConns(1) // single writer
	} else {
		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(10)
		db.SetConnMaxLifetime(30 * time.Minute)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping %s archive: %w", driver, err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create analyses table: %w", err)
	}
	return &SQLStore{db: db, driver: driver}, nil
}

// Save implements Store.
func (s *SQLStore) Save(ctx context.Context, rec Record) error {
	if err := validate(rec); err != nil {
		return err
	}
	var jobHash sql.NullString
	if rec.JobHash != "" {
		jobHash = sql.NullString{String: rec.JobHash, Valid: true}
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO analyses (id, created_at, job_role, company, ats_score, file_name, job_hash, fallback, response)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, s.timeValue(rec.CreatedAt), rec.JobRole, rec.Company, rec.ATSScore, rec.FileName, jobHash, rec.Fallback, string(rec.Response),
	)
	if err != nil {
		return fmt.Errorf("failed to save analysis %s: %w", rec.ID, err)
	}
	return nil
}

// Get implements Store.
func (s *SQLStore) Get(ctx context.Context, id string) (*Record, error) {
	var (
		rec       Record
		createdAt any
		jobHash   sql.NullString
		body      string
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT id, created_at, job_role, company, ats_score, file_name, job_hash, fallback, response
		 FROM analyses WHERE id = ?`,
		id,
	).Scan(&rec.ID, &createdAt, &rec.JobRole, &rec.Company, &rec.ATSScore, &rec.FileName, &jobHash, &rec.Fallback, &body)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get analysis %s: %w", id, err)
	}
	rec.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, fmt.Errorf("analysis %s: %w", id, err)
	}
	rec.JobHash = jobHash.String
	rec.Response = []byte(body)
	return &rec, nil
}

// Close implements Store.
func (s *SQLStore) Close() error {
	return s.db.Close()
}

// SQLite has no time type, so timestamps are stored as RFC 3339 text.
func (s *SQLStore) timeValue(t time.Time) any {
	if s.driver == DriverSQLite {
		return t.UTC().Format(time.RFC3339Nano)
	}
	return t.UTC()
}

func parseTime(v any) (time.Time, error) {
	switch t := v.(type) {
	case time.Time:
		return t, nil
	case string:
		return time.Parse(time.RFC3339Nano, t)
	case []byte:
		return time.Parse(time.RFC3339Nano, string(t))
	default:
		return time.Time{}, fmt.Errorf("unexpected created_at type %T", v)
	}
}
