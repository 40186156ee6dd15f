package eventcards

import "invaderdeck/internal/engine"

// Settlers (Hard-Working Settlers) removes one stage II and one stage III
// card from the explore pile.
type Settlers struct{}

func (Settlers) Kind() engine.EventKind { return engine.EventHardWorkingSettlers }

func (Settlers) Apply(g *engine.Game, _ engine.Action) ([]engine.Event, error) {
	removed := HardWorkingSettlers(g)
	return []engine.Event{
		{Type: engine.EventCardPlayed, Data: map[string]interface{}{
			"event": engine.EventHardWorkingSettlers, "removed": removed,
		}},
	}, nil
}

// HardWorkingSettlers removes the lowest stage II card, then the lowest
// stage III card, of the explore pile. Missing stages are skipped.
func HardWorkingSettlers(g *engine.Game) []engine.Card {
	var removed []engine.Card
	for _, gen := range []int{2, 3} {
		for i, c := range g.Pile(engine.PileExplore) {
			if c.Gen() == gen {
				removed = append(removed, g.TakeAt(engine.PileExplore, i))
				break
			}
		}
	}
	return removed
}
