package store

import (
	"context"
	"errors"
	"strconv"
	"testing"

	"github.com/ppiankov/sstrack/internal/model"
)

// MockStore is an in-memory Store for testing
type MockStore struct {
	tables map[string][]model.Row
	failOn string
	nextID int
}

func NewMockStore() *MockStore {
	return &MockStore{tables: make(map[string][]model.Row)}
}

func (m *MockStore) Append(ctx context.Context, table string, values []string) (string, error) {
	m.nextID++
	id := strconv.Itoa(m.nextID)
	m.tables[table] = append(m.tables[table], model.Row{ID: id, Values: values})
	return id, nil
}

func (m *MockStore) Rows(ctx context.Context, table string) ([]model.Row, error) {
	if table == m.failOn {
		return nil, errors.New("read failed")
	}
	return m.tables[table], nil
}

func (m *MockStore) Update(ctx context.Context, table, id string, values []string) error {
	return nil
}

func (m *MockStore) Delete(ctx context.Context, table, id string) error {
	return nil
}

func (m *MockStore) Close() error { return nil }

func TestView_Reload(t *testing.T) {
	ctx := context.Background()
	s := NewMockStore()
	v := NewView(s)

	if snap := v.Snapshot(); snap == nil || len(snap.Tables) != 0 {
		t.Fatalf("expected empty initial snapshot, got %+v", snap)
	}

	id, _ := s.Append(ctx, model.TableASOs, []string{"f1"})
	if len(v.Rows(model.TableASOs)) != 0 {
		t.Error("view must not change before reload")
	}

	if err := v.Reload(ctx); err != nil {
		t.Fatalf("Reload: %v", err)
	}
	if rows := v.Rows(model.TableASOs); len(rows) != 1 || rows[0].ID != id {
		t.Errorf("expected reloaded row, got %+v", rows)
	}
	if _, ok := v.Find(model.TableASOs, id); !ok {
		t.Error("expected Find to locate the row")
	}
	if v.Snapshot().LoadedAt.IsZero() {
		t.Error("expected LoadedAt to be set")
	}
}

func TestView_FailedReloadKeepsSnapshot(t *testing.T) {
	ctx := context.Background()
	s := NewMockStore()
	v := NewView(s)

	_, _ = s.Append(ctx, model.TableASOs, []string{"f1"})
	_ = v.Reload(ctx)
	before := v.Snapshot()

	_, _ = s.Append(ctx, model.TableASOs, []string{"f2"})
	s.failOn = model.TableTrainings
	if err := v.Reload(ctx); err == nil {
		t.Fatal("expected reload error")
	}
	if v.Snapshot() != before {
		t.Error("a failed reload must not publish a partial snapshot")
	}
}

func TestView_ConcurrentReaders(t *testing.T) {
	ctx := context.Background()
	s := NewMockStore()
	v := NewView(s)
	for i := 0; i < 5; i++ {
		_, _ = s.Append(ctx, model.TableTrainings, []string{"f"})
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 100; i++ {
			_ = v.Reload(ctx)
		}
	}()

	for i := 0; i < 100; i++ {
		if n := len(v.Rows(model.TableTrainings)); n != 0 && n != 5 {
			t.Fatalf("reader saw a partial table with %d rows", n)
		}
	}
	<-done
}
