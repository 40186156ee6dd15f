package eventcards

import (
	"fmt"

	"invaderdeck/internal/engine"
)

// RisingInterest (Rising Interest in the Island) removes a card from the top
// of the explore pile. Some adversaries protect their top card, in which case
// a card further down goes instead.
type RisingInterest struct{}

func (RisingInterest) Kind() engine.EventKind { return engine.EventRisingInterest }

func (RisingInterest) Apply(g *engine.Game, _ engine.Action) ([]engine.Event, error) {
	if g.Len(engine.PileExplore) == 0 {
		return nil, fmt.Errorf("rising interest: explore %w", engine.ErrEmptyPile)
	}
	removed := RisingInterestInTheIsland(g)
	return []engine.Event{
		{Type: engine.EventCardPlayed, Data: map[string]interface{}{
			"event": engine.EventRisingInterest, "removed": removed,
		}},
	}, nil
}

// RisingInterestInTheIsland removes and returns one explore card. When the
// pile is shallower than the protection needs, the bottom card goes.
func RisingInterestInTheIsland(g *engine.Game) engine.Card {
	explore := g.Pile(engine.PileExplore)
	n := len(explore)
	if n == 0 {
		panic(&engine.InvariantError{Op: "RisingInterestInTheIsland", Detail: "explore pile is empty"})
	}
	idx := n - 1 - protectedDepth(g.Config, explore)
	if idx < 0 {
		idx = 0
	}
	return g.TakeAt(engine.PileExplore, idx)
}

// protectedDepth is how many cards below the top the removal skips.
func protectedDepth(cfg engine.NationConfig, explore []engine.Card) int {
	top := explore[len(explore)-1]
	stageTwoLeft := hasGen(explore, 2)

	switch {
	case cfg.Is(engine.NationSchottland, 2):
		switch {
		case top == engine.CardCoast:
			return 1
		case top.Gen() == 1:
			return 2
		case top.Gen() == 3 && stageTwoLeft:
			return 2
		}
	case cfg.Nation == engine.NationHabsburgMining:
		if top == engine.CardHabsburgMining {
			return 1
		}
	case cfg.Nation == engine.NationBrandenburg:
		if top.Gen() == 3 && stageTwoLeft {
			return 1
		}
	}
	return 0
}

func hasGen(cards []engine.Card, gen int) bool {
	for _, c := range cards {
		if c.Gen() == gen {
			return true
		}
	}
	return false
}
