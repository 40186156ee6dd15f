package eventcards

import (
	"fmt"

	"invaderdeck/internal/engine"
)

// FracturedDays (Fractured Days Split the Sky): a discarded card goes back
// on top of the explore pile, the current top goes under the discard pile.
type FracturedDays struct{}

func (FracturedDays) Kind() engine.EventKind { return engine.EventFracturedDays }

func (FracturedDays) Apply(g *engine.Game, action engine.Action) ([]engine.Event, error) {
	if g.Len(engine.PileExplore) == 0 {
		return nil, fmt.Errorf("fractured days: explore %w", engine.ErrEmptyPile)
	}
	if p, _, ok := g.Locate(action.Card); !ok || p != engine.PileDiscard {
		return nil, fmt.Errorf("fractured days: %s not in discard: %w", action.Card, engine.ErrCardNotFound)
	}
	demoted, _ := g.Top(engine.PileExplore)
	FracturedDaysSplitTheSky(g, action.Card)
	return []engine.Event{
		{Type: engine.EventCardPlayed, Data: map[string]interface{}{
			"event": engine.EventFracturedDays, "returned": action.Card, "discarded": demoted,
		}},
	}, nil
}

// FracturedDaysSplitTheSky swaps chosen, which must be in the discard pile,
// with the top explore card.
func FracturedDaysSplitTheSky(g *engine.Game, chosen engine.Card) {
	p, i, ok := g.Locate(chosen)
	if !ok || p != engine.PileDiscard {
		panic(&engine.InvariantError{Op: "FracturedDaysSplitTheSky", Detail: fmt.Sprintf("%s not in discard", chosen)})
	}
	g.TakeAt(engine.PileDiscard, i)
	top := g.TakeAt(engine.PileExplore, g.Len(engine.PileExplore)-1)
	g.InsertAt(engine.PileDiscard, 0, top)
	g.InsertAt(engine.PileExplore, g.Len(engine.PileExplore), chosen)
}
