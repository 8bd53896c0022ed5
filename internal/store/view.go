package store

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/ppiankov/sstrack/internal/model"
)

// Snapshot is a complete copy of every table. Snapshots are never mutated
// after they are published.
type Snapshot struct {
	Tables   map[string][]model.Row
	LoadedAt time.Time
}

// View is an in-memory cached view over a store. Reload swaps in a whole
// new snapshot, so readers see either the previous or the next state.
type View struct {
	store Store
	snap  atomic.Pointer[Snapshot]
	now   func() time.Time
}

// NewView creates a view with an empty snapshot
func NewView(s Store) *View {
	v := &View{store: s, now: time.Now}
	v.snap.Store(&Snapshot{Tables: map[string][]model.Row{}})
	return v
}

// Reload reads every table and publishes the result. On error the previous
// snapshot stays in place.
func (v *View) Reload(ctx context.Context) error {
	next := &Snapshot{Tables: make(map[string][]model.Row, len(model.Tables()))}
	for _, table := range model.Tables() {
		rows, err := v.store.Rows(ctx, table)
		if err != nil {
			return fmt.Errorf("reload %s: %w", table, err)
		}
		next.Tables[table] = rows
	}
	next.LoadedAt = v.now()
	v.snap.Store(next)
	return nil
}

// Snapshot returns the current snapshot
func (v *View) Snapshot() *Snapshot {
	return v.snap.Load()
}

// Rows returns the cached rows of a table
func (v *View) Rows(table string) []model.Row {
	return v.snap.Load().Tables[table]
}

// Find returns the cached row with the given id
func (v *View) Find(table, id string) (model.Row, bool) {
	for _, r := range v.Rows(table) {
		if r.ID == id {
			return r, true
		}
	}
	return model.Row{}, false
}
