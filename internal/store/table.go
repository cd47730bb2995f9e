package store

import (
	"sync"
)

// Table is an in-memory keyed collection for one entity kind. Ids are
// monotonically increasing positive integers, unique for the lifetime of
// the table and never reused. Scans iterate in insertion order (ascending
// id), which makes unique-field lookups deterministic if duplicates ever
// slip in: the first inserted row wins.
//
// Every method takes the table lock, so individual operations are safe
// under concurrent request handling. Multi-step sequences (check-then-act,
// cart to order conversion) need an outer KeyedMutex scope on top.
type Table[T any] struct {
	mu     sync.RWMutex
	rows   map[uint]T
	order  []uint
	nextID uint
}

func NewTable[T any]() *Table[T] {
	return &Table[T]{
		rows: make(map[uint]T),
	}
}

// Insert allocates the next id, builds the row with it and stores it.
func (t *Table[T]) Insert(build func(id uint) T) T {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.nextID++
	id := t.nextID
	row := build(id)
	t.rows[id] = row
	t.order = append(t.order, id)
	return row
}

// Get returns the row for id. Absence is reported through the ok flag,
// not an error.
func (t *Table[T]) Get(id uint) (T, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	row, ok := t.rows[id]
	return row, ok
}

// All returns every row in insertion order.
func (t *Table[T]) All() []T {
	return t.Find(func(T) bool { return true })
}

// Find returns all rows matching the predicate, in insertion order.
func (t *Table[T]) Find(pred func(T) bool) []T {
	t.mu.RLock()
	defer t.mu.RUnlock()

	var result []T
	for _, id := range t.order {
		if row := t.rows[id]; pred(row) {
			result = append(result, row)
		}
	}
	return result
}

// First returns the first row in insertion order matching the predicate.
func (t *Table[T]) First(pred func(T) bool) (T, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	for _, id := range t.order {
		if row := t.rows[id]; pred(row) {
			return row, true
		}
	}
	var zero T
	return zero, false
}

// Update replaces the row for id with the result of mutate. The merge is
// all-or-nothing: mutate receives a copy and its return value replaces the
// stored row only when the id exists.
func (t *Table[T]) Update(id uint, mutate func(T) T) (T, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	row, ok := t.rows[id]
	if !ok {
		var zero T
		return zero, false
	}
	updated := mutate(row)
	t.rows[id] = updated
	return updated, true
}

// Delete removes the row for id and reports whether one existed.
func (t *Table[T]) Delete(id uint) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, ok := t.rows[id]; !ok {
		return false
	}
	delete(t.rows, id)
	for i, oid := range t.order {
		if oid == id {
			t.order = append(t.order[:i], t.order[i+1:]...)
			break
		}
	}
	return true
}

// Len returns the number of stored rows.
func (t *Table[T]) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()

	return len(t.rows)
}
