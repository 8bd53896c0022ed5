package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/ppiankov/sstrack/internal/model"
	"github.com/xuri/excelize/v2"
)

// XLSXStore keeps one sheet per table in a single workbook. The workbook
// is saved after every write.
type XLSXStore struct {
	mu   sync.Mutex
	path string
	file *excelize.File
}

// OpenXLSX opens or creates the workbook at path and makes sure every
// table sheet exists with its header row.
func OpenXLSX(path string) (*XLSXStore, error) {
	var (
		f       *excelize.File
		err     error
		created bool
	)
	if _, statErr := os.Stat(path); statErr == nil {
		f, err = excelize.OpenFile(path)
		if err != nil {
			return nil, fmt.Errorf("open workbook: %w", err)
		}
	} else if errors.Is(statErr, os.ErrNotExist) {
		f = excelize.NewFile()
		created = true
	} else {
		return nil, fmt.Errorf("stat workbook: %w", statErr)
	}

	s := &XLSXStore{path: path, file: f}
	if err := s.ensureSheets(created); err != nil {
		_ = f.Close()
		return nil, err
	}
	return s, nil
}

func (s *XLSXStore) ensureSheets(created bool) error {
	changed := created
	for _, table := range model.Tables() {
		idx, err := s.file.GetSheetIndex(table)
		if err != nil {
			return fmt.Errorf("sheet %s: %w", table, err)
		}
		if idx >= 0 {
			continue
		}
		if _, err := s.file.NewSheet(table); err != nil {
			return fmt.Errorf("create sheet %s: %w", table, err)
		}
		cols, _ := header(table)
		if err := s.setRow(table, 1, cols); err != nil {
			return err
		}
		changed = true
	}

	if created {
		// NewFile starts with a default sheet nobody uses
		if err := s.file.DeleteSheet("Sheet1"); err != nil {
			return fmt.Errorf("drop default sheet: %w", err)
		}
	}

	if !changed {
		return nil
	}
	return s.save()
}

// Append writes a new row and returns its id
func (s *XLSXStore) Append(ctx context.Context, table string, values []string) (string, error) {
	if err := checkValues(table, values); err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.file.GetRows(table)
	if err != nil {
		return "", fmt.Errorf("read sheet %s: %w", table, err)
	}

	id := newID()
	if err := s.setRow(table, len(rows)+1, append([]string{id}, values...)); err != nil {
		return "", err
	}
	if err := s.save(); err != nil {
		return "", err
	}
	return id, nil
}

// Rows returns every data row of a table
func (s *XLSXStore) Rows(ctx context.Context, table string) ([]model.Row, error) {
	cols, err := header(table)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := s.file.GetRows(table)
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", table, err)
	}

	out := make([]model.Row, 0, len(raw))
	for i, r := range raw {
		if i == 0 || len(r) == 0 || r[0] == "" {
			continue
		}
		// GetRows drops trailing empty cells
		padded := make([]string, len(cols))
		copy(padded, r)
		out = append(out, model.Row{ID: padded[0], Values: padded[1:]})
	}
	return out, nil
}

// Update replaces the values of the row with the given id
func (s *XLSXStore) Update(ctx context.Context, table, id string, values []string) error {
	if err := checkValues(table, values); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	n, err := s.find(table, id)
	if err != nil {
		return err
	}
	if err := s.setRow(table, n, append([]string{id}, values...)); err != nil {
		return err
	}
	return s.save()
}

// Delete removes the row with the given id
func (s *XLSXStore) Delete(ctx context.Context, table, id string) error {
	if _, err := header(table); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	n, err := s.find(table, id)
	if err != nil {
		return err
	}
	if err := s.file.RemoveRow(table, n); err != nil {
		return fmt.Errorf("remove row: %w", err)
	}
	return s.save()
}

// Close releases the workbook
func (s *XLSXStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.file.Close()
}

// find returns the 1-based sheet row holding id
func (s *XLSXStore) find(table, id string) (int, error) {
	rows, err := s.file.GetRows(table)
	if err != nil {
		return 0, fmt.Errorf("read sheet %s: %w", table, err)
	}
	for i, r := range rows {
		if i > 0 && len(r) > 0 && r[0] == id {
			return i + 1, nil
		}
	}
	return 0, fmt.Errorf("%s %s: %w", table, id, ErrNotFound)
}

func (s *XLSXStore) setRow(table string, n int, values []string) error {
	cell, err := excelize.CoordinatesToCellName(1, n)
	if err != nil {
		return err
	}
	row := make([]interface{}, len(values))
	for i, v := range values {
		row[i] = v
	}
	if err := s.file.SetSheetRow(table, cell, &row); err != nil {
		return fmt.Errorf("write row %d of %s: %w", n, table, err)
	}
	return nil
}

func (s *XLSXStore) save() error {
	if err := s.file.SaveAs(s.path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}
