package table

import (
	"sync"

	"github.com/google/uuid"

	"invaderdeck/internal/engine"
)

// Manager manages multiple tables.
type Manager struct {
	mu     sync.Mutex
	tables map[string]*Table
	// NewRand supplies the random source for each new table. Nil means
	// runtime seeded.
	NewRand func() engine.Randomizer
}

func NewManager() *Manager {
	return &Manager{tables: make(map[string]*Table)}
}

// Create deals a new table and registers it under a fresh ID.
func (m *Manager) Create(cfg engine.NationConfig) (*Table, error) {
	var rnd engine.Randomizer
	if m.NewRand != nil {
		rnd = m.NewRand()
	}
	t, err := New(uuid.NewString(), cfg, rnd)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.tables[t.ID] = t
	return t, nil
}

// Get returns a table by ID, or nil.
func (m *Manager) Get(id string) *Table {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.tables[id]
}

func (m *Manager) Remove(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.tables, id)
}

func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.tables)
}
