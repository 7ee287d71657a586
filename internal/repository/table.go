package repository

import (
	"errors"
	"sync"
)

// Sentinel errors shared by all repositories. Services translate these into
// typed API errors; a plain "not found" is an expected outcome, not a failure.
var (
	ErrNotFound  = errors.New("row not found")
	ErrDuplicate = errors.New("duplicate key")
)

// Table is an in-memory keyed collection with monotonically increasing
// identity assignment. IDs start at 1, are never reused and are not recycled
// after deletes; the counter lives for the process lifetime only.
//
// Every exported method takes the table lock, so each single-table operation
// is atomic. Multi-table flows get no atomicity here; callers compensate.
type Table[T any] struct {
	mu     sync.RWMutex
	rows   map[int64]T
	order  []int64
	nextID int64
}

// NewTable constructs an empty table.
func NewTable[T any]() *Table[T] {
	return &Table[T]{rows: make(map[int64]T), nextID: 1}
}

// Insert stores the row produced by build under a freshly assigned id.
// When conflicts is non-nil and reports true for any existing row, nothing is
// stored and ErrDuplicate is returned.
func (t *Table[T]) Insert(build func(id int64) T, conflicts func(existing T) bool) (T, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	var zero T
	if conflicts != nil {
		for _, id := range t.order {
			if conflicts(t.rows[id]) {
				return zero, ErrDuplicate
			}
		}
	}

	id := t.nextID
	t.nextID++
	row := build(id)
	t.rows[id] = row
	t.order = append(t.order, id)
	return row, nil
}

// Get returns the row stored under id.
func (t *Table[T]) Get(id int64) (T, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	row, ok := t.rows[id]
	if !ok {
		var zero T
		return zero, ErrNotFound
	}
	return row, nil
}

// Update applies fn to the stored row and keeps the result. When conflicts is
// non-nil it is checked against every other row before the write lands, so a
// patch cannot steal another row's unique key.
func (t *Table[T]) Update(id int64, fn func(T) T, conflicts func(other T) bool) (T, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	var zero T
	current, ok := t.rows[id]
	if !ok {
		return zero, ErrNotFound
	}

	updated := fn(current)
	if conflicts != nil {
		for _, otherID := range t.order {
			if otherID == id {
				continue
			}
			if conflicts(t.rows[otherID]) {
				return zero, ErrDuplicate
			}
		}
	}

	t.rows[id] = updated
	return updated, nil
}

// Delete removes the row and reports whether it existed. No cascade: rows in
// other tables referencing the id are left dangling on purpose.
func (t *Table[T]) Delete(id int64) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, ok := t.rows[id]; !ok {
		return false
	}
	delete(t.rows, id)
	for i, stored := range t.order {
		if stored == id {
			t.order = append(t.order[:i], t.order[i+1:]...)
			break
		}
	}
	return true
}

// List returns a snapshot of all rows in insertion order.
func (t *Table[T]) List() []T {
	t.mu.RLock()
	defer t.mu.RUnlock()

	out := make([]T, 0, len(t.order))
	for _, id := range t.order {
		out = append(out, t.rows[id])
	}
	return out
}

// Find returns the first row matching pred in insertion order.
func (t *Table[T]) Find(pred func(T) bool) (T, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	for _, id := range t.order {
		if pred(t.rows[id]) {
			return t.rows[id], nil
		}
	}
	var zero T
	return zero, ErrNotFound
}

// Filter returns every row matching pred in insertion order.
func (t *Table[T]) Filter(pred func(T) bool) []T {
	t.mu.RLock()
	defer t.mu.RUnlock()

	var out []T
	for _, id := range t.order {
		if pred(t.rows[id]) {
			out = append(out, t.rows[id])
		}
	}
	return out
}

// Len reports the number of stored rows.
func (t *Table[T]) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.rows)
}
