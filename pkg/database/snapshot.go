package database

import (
	"strings"
	"sync"
)

type (
	// Snapshot is read-only schema state captured by an external
	// introspection step. Lookups never fail for missing objects; they
	// return found == false instead.
	Snapshot interface {
		Column(table TableRef, column string) (ColumnState, bool)
	}

	// ColumnState is the observed state of a single column.
	ColumnState struct {
		DataType      string
		AutoIncrement bool
		StartWith     *int64
		IncrementBy   *int64

		// Default is the column default as the database reports it, or nil
		// when the column has none.
		Default *string
	}

	// MemorySnapshot is a Snapshot backed by a map. It is safe for
	// concurrent use.
	MemorySnapshot struct {
		mu      sync.RWMutex
		columns map[string]ColumnState
	}
)

// NewMemorySnapshot returns an empty MemorySnapshot.
func NewMemorySnapshot() *MemorySnapshot {
	return &MemorySnapshot{columns: make(map[string]ColumnState)}
}

// SetColumn records the state of a column, replacing any previous state.
func (s *MemorySnapshot) SetColumn(table TableRef, column string, state ColumnState) *MemorySnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.columns[columnKey(table, column)] = state
	return s
}

// Column implements Snapshot. Names are matched case-insensitively.
func (s *MemorySnapshot) Column(table TableRef, column string) (ColumnState, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	state, ok := s.columns[columnKey(table, column)]
	return state, ok
}

func columnKey(table TableRef, column string) string {
	return strings.ToLower(strings.Join([]string{table.Catalog, table.Schema, table.Name, column}, "\x00"))
}
