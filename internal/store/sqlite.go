package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/mattn/go-sqlite3"
	"github.com/ppiankov/sstrack/internal/model"
)

// SQLiteStore keeps every table as TEXT columns in a sqlite database
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens the database at path and creates missing tables
func OpenSQLite(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// a single connection serializes writers and keeps :memory: databases shared
	db.SetMaxOpenConns(1)

	s := &SQLiteStore{db: db}
	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func (s *SQLiteStore) migrate() error {
	for _, table := range model.Tables() {
		cols := make([]string, 0, len(model.Columns[table])+1)
		cols = append(cols, `"id" TEXT PRIMARY KEY`)
		for _, c := range model.Columns[table] {
			cols = append(cols, fmt.Sprintf(`%q TEXT NOT NULL DEFAULT ''`, c))
		}
		stmt := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %q (%s)`, table, strings.Join(cols, ", "))
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("create table %s: %w", table, err)
		}
	}
	return nil
}

// Append writes a new row and returns its id
func (s *SQLiteStore) Append(ctx context.Context, table string, values []string) (string, error) {
	if err := checkValues(table, values); err != nil {
		return "", err
	}
	cols, _ := header(table)

	id := newID()
	args := make([]interface{}, 0, len(cols))
	args = append(args, id)
	for _, v := range values {
		args = append(args, v)
	}

	stmt := fmt.Sprintf(`INSERT INTO %q (%s) VALUES (%s)`,
		table, quoteAll(cols), strings.TrimSuffix(strings.Repeat("?, ", len(cols)), ", "))
	if _, err := s.db.ExecContext(ctx, stmt, args...); err != nil {
		return "", fmt.Errorf("insert into %s: %w", table, err)
	}
	return id, nil
}

// Rows returns every row of a table in insertion order
func (s *SQLiteStore) Rows(ctx context.Context, table string) ([]model.Row, error) {
	cols, err := header(table)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, fmt.Sprintf(`SELECT %s FROM %q ORDER BY rowid`, quoteAll(cols), table))
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", table, err)
	}
	defer func() { _ = rows.Close() }()

	var out []model.Row
	for rows.Next() {
		values := make([]string, len(cols))
		ptrs := make([]interface{}, len(cols))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("scan %s: %w", table, err)
		}
		out = append(out, model.Row{ID: values[0], Values: values[1:]})
	}
	return out, rows.Err()
}

// Update replaces the values of the row with the given id
func (s *SQLiteStore) Update(ctx context.Context, table, id string, values []string) error {
	if err := checkValues(table, values); err != nil {
		return err
	}

	sets := make([]string, len(values))
	args := make([]interface{}, 0, len(values)+1)
	for i, c := range model.Columns[table] {
		sets[i] = fmt.Sprintf(`%q = ?`, c)
		args = append(args, values[i])
	}
	args = append(args, id)

	res, err := s.db.ExecContext(ctx, fmt.Sprintf(`UPDATE %q SET %s WHERE "id" = ?`, table, strings.Join(sets, ", ")), args...)
	if err != nil {
		return fmt.Errorf("update %s: %w", table, err)
	}
	return affected(res, table, id)
}

// Delete removes the row with the given id
func (s *SQLiteStore) Delete(ctx context.Context, table, id string) error {
	if _, err := header(table); err != nil {
		return err
	}
	res, err := s.db.ExecContext(ctx, fmt.Sprintf(`DELETE FROM %q WHERE "id" = ?`, table), id)
	if err != nil {
		return fmt.Errorf("delete from %s: %w", table, err)
	}
	return affected(res, table, id)
}

// Close closes the database
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func affected(res sql.Result, table, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%s %s: %w", table, id, ErrNotFound)
	}
	return nil
}

func quoteAll(cols []string) string {
	quoted := make([]string, len(cols))
	for i, c := range cols {
		quoted[i] = fmt.Sprintf("%q", c)
	}
	return strings.Join(quoted, ", ")
}
