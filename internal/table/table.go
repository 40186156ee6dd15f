package table

import (
	"fmt"
	"sync"
	"time"

	"invaderdeck/internal/engine"
	"invaderdeck/internal/engine/eventcards"
)

// Table is one shared invader deck that several devices look at.
// All engine calls go through its mutex.
type Table struct {
	mu      sync.Mutex
	ID      string
	Created time.Time
	game    *engine.Game
	clients []string
}

// New deals a deck for cfg. A nil rnd uses a runtime seeded source.
func New(id string, cfg engine.NationConfig, rnd engine.Randomizer) (*Table, error) {
	g, err := engine.NewGame(cfg, rnd, eventcards.NewRegistry())
	if err != nil {
		return nil, fmt.Errorf("table %s: %w", id, err)
	}
	return &Table{ID: id, Created: time.Now().UTC(), game: g}, nil
}

// Apply runs one action against the deck and returns the resulting view.
// On error the deck is unchanged and the view reflects the current state.
func (t *Table) Apply(action engine.Action) (events []engine.Event, view engine.View, err error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	events, err = t.game.Apply(action)
	return events, t.game.View(), err
}

// View returns a snapshot of the deck.
func (t *Table) View() engine.View {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.game.View()
}

func (t *Table) Config() engine.NationConfig {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.game.Config
}

// Join records a connected client. Joining twice is a reconnect.
func (t *Table) Join(clientID string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	for _, id := range t.clients {
		if id == clientID {
			return
		}
	}
	t.clients = append(t.clients, clientID)
}

// Leave forgets a client.
func (t *Table) Leave(clientID string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	for i, id := range t.clients {
		if id == clientID {
			t.clients = append(t.clients[:i], t.clients[i+1:]...)
			return
		}
	}
}

// Clients returns a copy of the connected client IDs.
func (t *Table) Clients() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]string(nil), t.clients...)
}
