// Package eventcards implements the event cards that rearrange the invader
// deck during play.
package eventcards

import "invaderdeck/internal/engine"

// Register installs every event card into reg.
func Register(reg *engine.EventRegistry) {
	reg.Register(FracturedDays{})
	reg.Register(Settlers{})
	reg.Register(RisingInterest{})
	reg.Register(Visions{})
}

// NewRegistry returns a registry holding every event card.
func NewRegistry() *engine.EventRegistry {
	reg := engine.NewEventRegistry()
	Register(reg)
	return reg
}
