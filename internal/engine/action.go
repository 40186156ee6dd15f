package engine

import "fmt"

// ActionType identifies inputs sent to Game.Apply.
type ActionType string

const (
	ActionExplore    ActionType = "explore"
	ActionRelocate   ActionType = "relocate"
	ActionFlipRussia ActionType = "flip_russia"
	ActionNewGame    ActionType = "new_game"
	ActionEvent      ActionType = "event" // play an event card
)

// EventKind identifies the event cards that reshape the explore pile.
type EventKind string

const (
	EventFracturedDays       EventKind = "fractured_days"
	EventHardWorkingSettlers EventKind = "hard_working_settlers"
	EventRisingInterest      EventKind = "rising_interest"
	EventVisions             EventKind = "visions"
)

// Action is one input to the engine.
type Action struct {
	Type ActionType `json:"type"`
	// Params depend on Type:
	// relocate: Card, Pile
	// new_game: Config
	// event: Event, plus Card for fractured_days
	Card   Card          `json:"card,omitempty"`
	Pile   PileName      `json:"pile"`
	Config *NationConfig `json:"config,omitempty"`
	Event  EventKind     `json:"event,omitempty"`
}

// EventType identifies notifications emitted by the engine.
type EventType string

const (
	EventExploreRevealed    EventType = "explore_revealed"
	EventCardsAdvanced      EventType = "cards_advanced"
	EventCardMoved          EventType = "card_moved"
	EventImmigrationFlushed EventType = "immigration_flushed"
	EventRussiaFlipped      EventType = "russia_flipped"
	EventNewGame            EventType = "new_game"
	EventCardPlayed         EventType = "event_played"
)

// Event is emitted by the engine after state changes.
type Event struct {
	Type EventType   `json:"type"`
	Data interface{} `json:"data,omitempty"`
}

// EventCard is one of the event cards that act on the invader deck.
type EventCard interface {
	Kind() EventKind
	// Apply checks the card's preconditions and plays it.
	Apply(g *Game, action Action) ([]Event, error)
}

// EventRegistry maps kinds to their event cards.
type EventRegistry struct {
	cards map[EventKind]EventCard
}

func NewEventRegistry() *EventRegistry {
	return &EventRegistry{cards: make(map[EventKind]EventCard)}
}

func (r *EventRegistry) Register(c EventCard) {
	r.cards[c.Kind()] = c
}

func (r *EventRegistry) Get(kind EventKind) (EventCard, error) {
	c, ok := r.cards[kind]
	if !ok {
		return nil, fmt.Errorf("%q: %w", kind, ErrUnknownEvent)
	}
	return c, nil
}

// Apply is the single validated entry point for table actions. Stale or
// malformed input is reported as an error instead of a panic.
func (g *Game) Apply(action Action) (events []Event, err error) {
	defer Recover(&err)

	switch action.Type {
	case ActionExplore:
		return g.applyExplore(), nil
	case ActionRelocate:
		return g.applyRelocate(action)
	case ActionFlipRussia:
		return g.applyFlipRussia(), nil
	case ActionNewGame:
		return g.applyNewGame(action)
	case ActionEvent:
		card, err := g.Events.Get(action.Event)
		if err != nil {
			return nil, err
		}
		return card.Apply(g, action)
	default:
		return nil, fmt.Errorf("action %q: %w", action.Type, ErrInvalidAction)
	}
}

func (g *Game) applyExplore() []Event {
	moved, _ := g.Top(PileExplore)

	step, flushed := g.explore()
	switch step {
	case ExploreRevealed:
		top, ok := g.Top(PileExplore)
		data := map[string]interface{}{"empty": !ok}
		if ok {
			data["card"] = top
		}
		return []Event{{Type: EventExploreRevealed, Data: data}}
	case ExploreAdvanced:
		events := []Event{{Type: EventCardsAdvanced, Data: map[string]interface{}{
			"card":    moved,
			"explore": g.Len(PileExplore),
		}}}
		if len(flushed) > 0 {
			events = append(events, Event{Type: EventImmigrationFlushed, Data: map[string]interface{}{
				"cards": flushed,
			}})
		}
		return events
	default:
		return nil
	}
}

func (g *Game) applyRelocate(action Action) ([]Event, error) {
	if !action.Card.Valid() {
		return nil, fmt.Errorf("card %d: %w", int(action.Card), ErrInvalidAction)
	}
	if !action.Pile.Valid() {
		return nil, fmt.Errorf("pile %d: %w", int(action.Pile), ErrInvalidAction)
	}
	if _, _, ok := g.Locate(action.Card); !ok {
		return nil, fmt.Errorf("%s: %w", action.Card, ErrCardNotFound)
	}

	from, flushed := g.Relocate(action.Card, action.Pile)
	events := []Event{
		{Type: EventCardMoved, Data: map[string]interface{}{
			"card": action.Card, "from": from, "to": action.Pile,
		}},
	}
	if len(flushed) > 0 {
		events = append(events, Event{Type: EventImmigrationFlushed, Data: map[string]interface{}{
			"cards": flushed,
		}})
	}
	return events, nil
}

func (g *Game) applyFlipRussia() []Event {
	if !g.FlipRussia() {
		return nil
	}
	return []Event{
		{Type: EventRussiaFlipped, Data: map[string]interface{}{"revealed": g.RussiaRevealed}},
	}
}

func (g *Game) applyNewGame(action Action) ([]Event, error) {
	cfg := g.Config
	if action.Config != nil {
		cfg = *action.Config
	}
	if err := g.Reset(cfg); err != nil {
		return nil, err
	}
	return []Event{
		{Type: EventNewGame, Data: map[string]interface{}{
			"nation": cfg.Nation, "level": cfg.Level, "explore": g.Len(PileExplore),
		}},
	}, nil
}
