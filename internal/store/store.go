// Package store persists records in named tables. Every table is an id
// column followed by the columns listed in model.Columns.
package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/ppiankov/sstrack/internal/model"
)

var (
	// ErrNotFound is returned when no row has the requested id
	ErrNotFound = errors.New("row not found")

	// ErrUnknownTable is returned for table names outside model.Tables
	ErrUnknownTable = errors.New("unknown table")
)

// Store is the tabular backing store
type Store interface {
	// Append writes a new row and returns its id
	Append(ctx context.Context, table string, values []string) (string, error)

	// Rows returns every row of a table in insertion order
	Rows(ctx context.Context, table string) ([]model.Row, error)

	// Update replaces the values of the row with the given id
	Update(ctx context.Context, table, id string, values []string) error

	// Delete removes the row with the given id
	Delete(ctx context.Context, table, id string) error

	Close() error
}

// Open opens the backend named by cfg.Driver
func Open(cfg model.StoreConfig) (Store, error) {
	switch strings.ToLower(cfg.Driver) {
	case "xlsx", "excel", "":
		return OpenXLSX(cfg.Path)
	case "sqlite", "sqlite3":
		return OpenSQLite(cfg.Path)
	default:
		return nil, fmt.Errorf("unknown store driver: %s (supported: xlsx, sqlite)", cfg.Driver)
	}
}

// header returns the full column list of a table, id first
func header(table string) ([]string, error) {
	cols, ok := model.Columns[table]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTable, table)
	}
	return append([]string{"id"}, cols...), nil
}

// checkValues rejects rows whose width does not match the table
func checkValues(table string, values []string) error {
	cols, ok := model.Columns[table]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownTable, table)
	}
	if len(values) != len(cols) {
		return fmt.Errorf("table %s expects %d values, got %d", table, len(cols), len(values))
	}
	return nil
}

func newID() string {
	return uuid.NewString()
}
