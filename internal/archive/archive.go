// Package archive persists completed analyses so they can be fetched again
// by id. PostgreSQL goes through pgx; MySQL and SQLite go through
// database/sql.
package archive

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrNotFound is returned by Get for unknown ids.
var ErrNotFound = errors.New("analysis not found")

// Record is one archived analysis.
type Record struct {
	ID        string          `json:"id"`
	CreatedAt time.Time       `json:"createdAt"`
	JobRole   string          `json:"jobRole"`
	Company   string          `json:"company"`
	ATSScore  int             `json:"atsScore"`
	FileName  string          `json:"fileName"`
	JobHash   string          `json:"jobHash,omitempty"`
	Fallback  bool            `json:"advisorFallback"`
	Response  json.RawMessage `json:"response"`
}

// Store saves and loads records.
type Store interface {
	Save(ctx context.Context, rec Record) error
	Get(ctx context.Context, id string) (*Record, error)
	Close() error
}

// Driver names accepted by Open.
const (
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
	DriverSQLite   = "sqlite"
)

// Open connects to the archive named by driver and creates its table.
func Open(ctx context.Context, driver, dsn string) (Store, error) {
	var (
		store Store
		err   error
	)
	switch strings.ToLower(driver) {
	case DriverPostgres, "postgresql", "pgx":
		store, err = OpenPostgres(ctx, dsn)
	case DriverMySQL:
		store, err = OpenSQL(ctx, DriverMySQL, dsn)
	case DriverSQLite, "sqlite3":
		store, err = OpenSQL(ctx, DriverSQLite, dsn)
	default:
		return nil, fmt.Errorf("unsupported archive driver %q", driver)
	}
	if err != nil {
		return nil, err
	}
	return store, nil
}

func validate(rec Record) error {
	if rec.ID == "" {
		return errors.New("archive record requires an id")
	}
	if !json.Valid(rec.Response) {
		return errors.New("archive record response is not valid JSON")
	}
	return nil
}
