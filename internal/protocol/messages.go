package protocol

import "invaderdeck/internal/engine"

// Message types: Server → Client
const (
	MsgTableState = "table_state"
	MsgEvent      = "event"
	MsgError      = "error"
)

// Message types: Client → Server
const (
	// These use the same names as engine ActionType
	MsgExplore    = "explore"
	MsgRelocate   = "relocate"
	MsgFlipRussia = "flip_russia"
	MsgNewGame    = "new_game"
	MsgEventCard  = "event"
)

// TableState is sent to every client after each change.
type TableState struct {
	TableID string      `json:"table_id"`
	View    engine.View `json:"view"`
}

// TableCreated answers a create request.
type TableCreated struct {
	TableID string `json:"table_id"`
	JoinURL string `json:"join_url"`
}

// RelocateMsg moves a card onto the top of a pile.
type RelocateMsg struct {
	Card engine.Card     `json:"card"`
	Pile engine.PileName `json:"pile"`
}

// NewGameMsg deals a new deck. An empty payload redeals the current
// adversary.
type NewGameMsg struct {
	Nation engine.Nation `json:"nation"`
	Level  int           `json:"level"`
}

// EventCardMsg plays an event card. Card names the discarded card for
// fractured_days.
type EventCardMsg struct {
	Event engine.EventKind `json:"event"`
	Card  engine.Card      `json:"card"`
}

// ErrorMsg is sent to a client on error.
type ErrorMsg struct {
	Message string `json:"message"`
}
