package engine_test

import (
	"errors"
	"math/rand/v2"
	"slices"
	"testing"

	"invaderdeck/internal/engine"
)

func newTestGame(t *testing.T, n engine.Nation, level int) *engine.Game {
	t.Helper()
	g, err := engine.NewGame(cfg(n, level), fixedRand{}, nil)
	if err != nil {
		t.Fatalf("NewGame(%s/%d): %v", n, level, err)
	}
	return g
}

// advance reveals and then moves the piles along once.
func advance(t *testing.T, g *engine.Game) {
	t.Helper()
	if !g.ExploreRevealed {
		if step := g.Explore(); step != engine.ExploreRevealed {
			t.Fatalf("reveal: got %s", step)
		}
	}
	if step := g.Explore(); step != engine.ExploreAdvanced {
		t.Fatalf("advance: got %s", step)
	}
}

func assertPile(t *testing.T, g *engine.Game, p engine.PileName, want ...engine.Card) {
	t.Helper()
	if got := g.Pile(p); !slices.Equal(got, want) && !(len(got) == 0 && len(want) == 0) {
		t.Fatalf("%s: got %v, want %v", p, got, want)
	}
}

func expectInvariant(t *testing.T, fn func()) {
	t.Helper()
	defer func() {
		t.Helper()
		r := recover()
		if _, ok := r.(*engine.InvariantError); !ok {
			t.Fatalf("expected *InvariantError panic, got %v", r)
		}
	}()
	fn()
}

func TestExploreRevealThenAdvance(t *testing.T) {
	g := newTestGame(t, engine.NationBrandenburg, 1)
	before := g.Pile(engine.PileExplore)

	if step := g.Explore(); step != engine.ExploreRevealed {
		t.Fatalf("first click: got %s", step)
	}
	if !g.ExploreRevealed {
		t.Fatal("top should be revealed")
	}
	assertPile(t, g, engine.PileExplore, before...)

	if step := g.Explore(); step != engine.ExploreAdvanced {
		t.Fatalf("second click: got %s", step)
	}
	if g.ExploreRevealed {
		t.Fatal("new top should be face down")
	}
	assertPile(t, g, engine.PileBuilding, before[len(before)-1])
	assertPile(t, g, engine.PileExplore, before[:len(before)-1]...)
	assertPile(t, g, engine.PileRavage)
	assertPile(t, g, engine.PileDiscard)
}

func TestExploreCascadeOrder(t *testing.T) {
	g := newTestGame(t, engine.NationNone, 1)

	advance(t, g)
	assertPile(t, g, engine.PileBuilding, engine.CardJungle)

	advance(t, g)
	assertPile(t, g, engine.PileRavage, engine.CardJungle)
	assertPile(t, g, engine.PileBuilding, engine.CardMountain)

	advance(t, g)
	assertPile(t, g, engine.PileDiscard, engine.CardJungle)
	assertPile(t, g, engine.PileRavage, engine.CardMountain)
	assertPile(t, g, engine.PileBuilding, engine.CardDesert)

	advance(t, g)
	assertPile(t, g, engine.PileDiscard, engine.CardJungle, engine.CardMountain)
	assertPile(t, g, engine.PileRavage, engine.CardDesert)
	assertPile(t, g, engine.PileBuilding, engine.CardJungleEscalation)
	if g.Total() != 12 {
		t.Fatalf("total: got %d, want 12", g.Total())
	}
}

func TestExploreEmptyPile(t *testing.T) {
	g := newTestGame(t, engine.NationNone, 1)
	for _, c := range g.Pile(engine.PileExplore) {
		g.Relocate(c, engine.PileDiscard)
	}

	if step := g.Explore(); step != engine.ExploreRevealed {
		t.Fatalf("first click on empty pile: got %s", step)
	}
	if step := g.Explore(); step != engine.ExploreNoop {
		t.Fatalf("second click on empty pile: got %s", step)
	}
	if g.Len(engine.PileDiscard) != 12 || g.Len(engine.PileBuilding) != 0 {
		t.Fatal("nothing should move once explore is empty")
	}
	if !g.View().Finished {
		t.Fatal("view should report the deck finished")
	}
}

func TestEnglandImmigrationDetour(t *testing.T) {
	g := newTestGame(t, engine.NationEngland, 4)
	g.Relocate(engine.CardMountain, engine.PileImmigration)
	g.Relocate(engine.CardJungle, engine.PileRavage)

	advance(t, g)
	assertPile(t, g, engine.PileDiscard, engine.CardMountain)
	assertPile(t, g, engine.PileImmigration, engine.CardJungle)
	assertPile(t, g, engine.PileRavage)
	assertPile(t, g, engine.PileBuilding, engine.CardDesert)

	if !g.ImmigrationActive() {
		t.Fatal("level 4 always routes through immigration")
	}
}

func TestEnglandLevelThreeEndsDetour(t *testing.T) {
	g := newTestGame(t, engine.NationEngland, 3)
	if !g.ImmigrationActive() {
		t.Fatal("detour should start active")
	}
	for i := 0; i < 5; i++ {
		advance(t, g)
	}
	assertPile(t, g, engine.PileImmigration, engine.CardDesert)
	assertPile(t, g, engine.PileRavage, engine.CardJungleEscalation)

	events, err := g.Apply(engine.Action{Type: engine.ActionExplore})
	if err != nil || len(events) != 1 || events[0].Type != engine.EventExploreRevealed {
		t.Fatalf("reveal: got %v, %v", events, err)
	}
	events, err = g.Apply(engine.Action{Type: engine.ActionExplore})
	if err != nil {
		t.Fatalf("advance: %v", err)
	}
	if len(events) != 2 || events[1].Type != engine.EventImmigrationFlushed {
		t.Fatalf("expected a flush event, got %v", events)
	}
	assertPile(t, g, engine.PileImmigration)
	assertPile(t, g, engine.PileDiscard,
		engine.CardJungle, engine.CardMountain, engine.CardDesert, engine.CardJungleEscalation)
	if g.ImmigrationActive() {
		t.Fatal("detour should end once a stage II card is discarded")
	}

	advance(t, g)
	assertPile(t, g, engine.PileImmigration)
	assertPile(t, g, engine.PileRavage, engine.CardCoast)
}

func TestEnglandLevelThreeRelocateFlush(t *testing.T) {
	g := newTestGame(t, engine.NationEngland, 3)
	g.Relocate(engine.CardJungle, engine.PileImmigration)
	assertPile(t, g, engine.PileImmigration, engine.CardJungle)

	_, flushed := g.Relocate(engine.CardCoast, engine.PileImmigration)
	if !slices.Equal(flushed, []engine.Card{engine.CardJungle, engine.CardCoast}) {
		t.Fatalf("flushed: got %v", flushed)
	}
	assertPile(t, g, engine.PileImmigration)
	assertPile(t, g, engine.PileDiscard, engine.CardJungle, engine.CardCoast)

	// Level 4 keeps stage II cards in immigration.
	g4 := newTestGame(t, engine.NationEngland, 4)
	g4.Relocate(engine.CardCoast, engine.PileImmigration)
	assertPile(t, g4, engine.PileImmigration, engine.CardCoast)
}

func TestHabsburgMiningStaysInRavage(t *testing.T) {
	g := newTestGame(t, engine.NationHabsburgMining, 4)
	g.Relocate(engine.CardHabsburgMining, engine.PileRavage)

	advance(t, g)
	advance(t, g)
	assertPile(t, g, engine.PileRavage, engine.CardHabsburgMining, engine.CardJungle)

	advance(t, g)
	assertPile(t, g, engine.PileDiscard, engine.CardJungle)
	assertPile(t, g, engine.PileRavage, engine.CardHabsburgMining, engine.CardMountain)

	// Moving it by hand is still allowed.
	g.Relocate(engine.CardHabsburgMining, engine.PileDiscard)
	if top, _ := g.Top(engine.PileDiscard); top != engine.CardHabsburgMining {
		t.Fatalf("discard top: got %s", top)
	}
}

func TestRelocateClearsRevealFlag(t *testing.T) {
	g := newTestGame(t, engine.NationNone, 1)
	g.Explore()

	from, _ := g.Relocate(engine.CardCoast, engine.PileDiscard)
	if from != engine.PileExplore {
		t.Fatalf("from: got %s", from)
	}
	if g.ExploreRevealed {
		t.Fatal("moving an explore card hides the top")
	}

	advance(t, g)
	g.Explore()
	g.Relocate(engine.CardJungle, engine.PileRavage)
	if !g.ExploreRevealed {
		t.Fatal("moving a building card keeps the explore top revealed")
	}
	if top, _ := g.Top(engine.PileRavage); top != engine.CardJungle {
		t.Fatalf("ravage top: got %s", top)
	}
}

func TestRelocateUnknownCardPanics(t *testing.T) {
	g := newTestGame(t, engine.NationNone, 1)
	expectInvariant(t, func() { g.Relocate(engine.CardSwamp, engine.PileDiscard) })
	expectInvariant(t, func() { g.Relocate(engine.CardJungle, engine.PileName(9)) })
	expectInvariant(t, func() { g.TakeAt(engine.PileBuilding, 0) })
	expectInvariant(t, func() { g.InsertAt(engine.PileExplore, 0, engine.CardJungle) })
	expectInvariant(t, func() { g.Swap(engine.PileExplore, 0, 40) })
}

func TestFlipRussia(t *testing.T) {
	g := newTestGame(t, engine.NationRussland, 5)
	assertPile(t, g, engine.PileRussiaHidden, engine.CardMountainDesert, engine.CardSwampEscalation)

	if v := g.View(); v.RussiaTop.FaceUp || v.RussiaTop.Card != engine.CardEmpty || v.RussiaTop.Gen != 2 {
		t.Fatalf("hidden top view: got %+v", v.RussiaTop)
	}
	if !g.FlipRussia() || !g.RussiaRevealed {
		t.Fatal("flip should reveal")
	}
	if v := g.View(); v.RussiaTop.Card != engine.CardSwampEscalation {
		t.Fatalf("revealed top: got %+v", v.RussiaTop)
	}
	if !g.FlipRussia() || g.RussiaRevealed {
		t.Fatal("second flip should hide again")
	}

	g.FlipRussia()
	g.Relocate(engine.CardSwampEscalation, engine.PileExplore)
	if g.RussiaRevealed {
		t.Fatal("taking the Russia top hides the next card")
	}
	if top, _ := g.Top(engine.PileExplore); top != engine.CardSwampEscalation {
		t.Fatalf("explore top: got %s", top)
	}

	plain := newTestGame(t, engine.NationNone, 1)
	if plain.FlipRussia() {
		t.Fatal("nothing to flip without a Russia pile")
	}
	if v := plain.View(); !v.RussiaTop.Empty || v.RussiaActive {
		t.Fatalf("inactive Russia view: got %+v", v.RussiaTop)
	}
}

func TestViewHidesExploreTop(t *testing.T) {
	g := newTestGame(t, engine.NationNone, 1)
	v := g.View()
	if v.ExploreTop.FaceUp || v.ExploreTop.Card != engine.CardEmpty || v.ExploreTop.Gen != 1 {
		t.Fatalf("face-down top: got %+v", v.ExploreTop)
	}
	if len(v.Piles) != 6 || len(v.Piles[engine.PileExplore]) != 12 {
		t.Fatalf("piles: got %v", v.Piles)
	}

	g.Explore()
	v = g.View()
	if !v.ExploreTop.FaceUp || v.ExploreTop.Card != engine.CardJungle {
		t.Fatalf("face-up top: got %+v", v.ExploreTop)
	}
}

func TestApplyErrors(t *testing.T) {
	g := newTestGame(t, engine.NationNone, 1)

	tests := []struct {
		name   string
		action engine.Action
		want   error
	}{
		{"unknown type", engine.Action{Type: "shuffle"}, engine.ErrInvalidAction},
		{"bad card", engine.Action{Type: engine.ActionRelocate, Card: engine.Card(99)}, engine.ErrInvalidAction},
		{"finish marker", engine.Action{Type: engine.ActionRelocate, Card: engine.CardFinish}, engine.ErrCardNotFound},
		{"bad pile", engine.Action{Type: engine.ActionRelocate, Card: engine.CardJungle, Pile: 8}, engine.ErrInvalidAction},
		{"absent card", engine.Action{Type: engine.ActionRelocate, Card: engine.CardSwamp}, engine.ErrCardNotFound},
		{"bad level", engine.Action{Type: engine.ActionNewGame, Config: &engine.NationConfig{Nation: engine.NationEngland, Level: 9}}, engine.ErrInvalidConfig},
		{"no event cards", engine.Action{Type: engine.ActionEvent, Event: engine.EventVisions}, engine.ErrUnknownEvent},
	}
	for _, tt := range tests {
		before := g.View()
		_, err := g.Apply(tt.action)
		if !errors.Is(err, tt.want) {
			t.Errorf("%s: got %v, want %v", tt.name, err, tt.want)
		}
		if after := g.View(); after.Total != before.Total || after.Config != before.Config {
			t.Errorf("%s: state changed on error", tt.name)
		}
	}
}

func TestApplyNewGame(t *testing.T) {
	g := newTestGame(t, engine.NationNone, 1)
	advance(t, g)

	events, err := g.Apply(engine.Action{
		Type:   engine.ActionNewGame,
		Config: &engine.NationConfig{Nation: engine.NationRussland, Level: 6},
	})
	if err != nil {
		t.Fatalf("new game: %v", err)
	}
	if len(events) != 1 || events[0].Type != engine.EventNewGame {
		t.Fatalf("events: got %v", events)
	}
	if g.Total() != 14 || g.Len(engine.PileBuilding) != 0 || g.ExploreRevealed {
		t.Fatalf("new game should deal fresh piles, got %+v", g.View())
	}

	// A nil config redeals the current adversary.
	if _, err := g.Apply(engine.Action{Type: engine.ActionNewGame}); err != nil {
		t.Fatalf("redeal: %v", err)
	}
	if g.Config != cfg(engine.NationRussland, 6) {
		t.Fatalf("config: got %s", g.Config)
	}
}

func TestApplyRelocateEvents(t *testing.T) {
	g := newTestGame(t, engine.NationNone, 1)
	events, err := g.Apply(engine.Action{Type: engine.ActionRelocate, Card: engine.CardCoast, Pile: engine.PileRavage})
	if err != nil {
		t.Fatalf("relocate: %v", err)
	}
	if len(events) != 1 || events[0].Type != engine.EventCardMoved {
		t.Fatalf("events: got %v", events)
	}
	data := events[0].Data.(map[string]interface{})
	if data["from"] != engine.PileExplore || data["to"] != engine.PileRavage {
		t.Fatalf("event data: got %v", data)
	}
}

func TestRandomActionsKeepCardsExclusive(t *testing.T) {
	rnd := rand.New(rand.NewPCG(3, 5))
	for _, c := range []engine.NationConfig{
		cfg(engine.NationEngland, 3), cfg(engine.NationRussland, 6), cfg(engine.NationHabsburgMining, 5),
	} {
		g, err := engine.NewGame(c, rnd, nil)
		if err != nil {
			t.Fatal(err)
		}
		conserved := g.Total() + len(g.Removed())
		all := engine.AllPiles()

		for step := 0; step < 500; step++ {
			var a engine.Action
			switch rnd.IntN(3) {
			case 0:
				a = engine.Action{Type: engine.ActionExplore}
			case 1:
				a = engine.Action{Type: engine.ActionFlipRussia}
			default:
				a = engine.Action{
					Type: engine.ActionRelocate,
					Card: engine.Card(1 + rnd.IntN(int(engine.CardMountainSwamp))),
					Pile: all[rnd.IntN(len(all))],
				}
			}
			_, err := g.Apply(a)
			if err != nil && !errors.Is(err, engine.ErrCardNotFound) {
				t.Fatalf("%s step %d: %v", c, step, err)
			}

			seen := map[engine.Card]engine.PileName{}
			for _, p := range all {
				for _, card := range g.Pile(p) {
					if prev, dup := seen[card]; dup {
						t.Fatalf("%s step %d: %s in both %s and %s", c, step, card, prev, p)
					}
					seen[card] = p
				}
			}
			if got := g.Total() + len(g.Removed()); got != conserved {
				t.Fatalf("%s step %d: %d cards, want %d", c, step, got, conserved)
			}
		}
	}
}

func TestRecover(t *testing.T) {
	run := func(fn func()) (err error) {
		defer engine.Recover(&err)
		fn()
		return nil
	}

	g := newTestGame(t, engine.NationNone, 1)
	err := run(func() { g.TakeAt(engine.PileDiscard, 3) })
	if !errors.Is(err, engine.ErrInvalidAction) {
		t.Fatalf("got %v, want ErrInvalidAction", err)
	}

	defer func() {
		if r := recover(); r != "boom" {
			t.Fatalf("foreign panic should be re-raised, got %v", r)
		}
	}()
	_ = run(func() { panic("boom") })
}
