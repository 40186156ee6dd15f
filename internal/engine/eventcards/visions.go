package eventcards

import "invaderdeck/internal/engine"

// Visions (Visions of a Shifting Future) may swap the top two explore cards.
type Visions struct{}

func (Visions) Kind() engine.EventKind { return engine.EventVisions }

func (Visions) Apply(g *engine.Game, _ engine.Action) ([]engine.Event, error) {
	swapped := VisionsOfAShiftingFuture(g)
	return []engine.Event{
		{Type: engine.EventCardPlayed, Data: map[string]interface{}{
			"event": engine.EventVisions, "swapped": swapped,
		}},
	}, nil
}

// VisionsOfAShiftingFuture swaps the two top explore cards with
// probability one half. It reports whether a swap happened.
func VisionsOfAShiftingFuture(g *engine.Game) bool {
	n := g.Len(engine.PileExplore)
	if n < 2 {
		return false
	}
	if g.Rand().IntN(2) != 0 {
		return false
	}
	g.Swap(engine.PileExplore, n-1, n-2)
	return true
}
