package engine

import "math/rand/v2"

// Randomizer is the source of every random decision the engine makes.
// *rand.Rand from math/rand/v2 satisfies it.
type Randomizer interface {
	Shuffle(n int, swap func(i, j int))
	IntN(n int) int
}

// NewRandomizer returns a randomizer seeded from the runtime source.
func NewRandomizer() Randomizer {
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}

// Deck is the result of building an invader deck for one game.
type Deck struct {
	Explore      []Card  `json:"explore"`       // bottom first, top last
	SetAside     [2]Card `json:"set_aside"`     // removed from stage II and stage III
	PreDiscarded []Card  `json:"pre_discarded"` // dealt straight to the discard pile
	Hidden       []Card  `json:"hidden"`        // dealt to the Russia pile
	Removed      []Card  `json:"removed"`       // out of the game
}

// Total returns the number of cards dealt into piles.
func (d Deck) Total() int {
	return len(d.Explore) + len(d.PreDiscarded) + len(d.Hidden)
}

type tiers struct {
	first, second, third []Card
	// index 0 of each tier after shuffling
	firstRemoved, secondRemoved, thirdRemoved Card
}

func newTiers(rnd Randomizer) *tiers {
	t := &tiers{first: tier1(), second: tier2(), third: tier3()}
	for _, pool := range [][]Card{t.first, t.second, t.third} {
		rnd.Shuffle(len(pool), func(i, j int) {
			pool[i], pool[j] = pool[j], pool[i]
		})
	}
	t.firstRemoved, t.first = t.first[0], t.first[1:]
	t.secondRemoved, t.second = t.second[0], t.second[1:]
	t.thirdRemoved, t.third = t.third[0], t.third[1:]
	return t
}

func dropFirst(pool *[]Card) {
	*pool = (*pool)[1:]
}

func (t *tiers) concat() []Card {
	out := make([]Card, 0, len(t.first)+len(t.second)+len(t.third))
	out = append(out, t.first...)
	out = append(out, t.second...)
	return append(out, t.third...)
}

// BuildDeck shuffles the three stages and assembles the explore pile for
// the given adversary.
func BuildDeck(cfg NationConfig, rnd Randomizer) Deck {
	t := newTiers(rnd)

	var pool []Card
	switch {
	case cfg.Nation == NationBrandenburg && cfg.Level > 1:
		pool = t.brandenburg(cfg.Level)
	case cfg.Is(NationRussland, 4):
		pool = t.russland()
	case cfg.Is(NationHabsburg, 3):
		pool = t.habsburg(cfg.Level)
	case cfg.Is(NationHabsburgMining, 4):
		pool = t.habsburgMining()
	default:
		pool = t.concat()
	}

	d := Deck{
		Explore:  reversed(pool),
		SetAside: [2]Card{t.secondRemoved, t.thirdRemoved},
	}

	if cfg.Is(NationSchweden, 4) && len(d.Explore) > 0 {
		top := d.Explore[len(d.Explore)-1]
		d.Explore = d.Explore[:len(d.Explore)-1]
		d.PreDiscarded = []Card{top}
	}

	if cfg.UsesRussiaPile() {
		d.Hidden = []Card{t.thirdRemoved, t.secondRemoved}
	}
	d.Removed = d.unused()
	return d
}

// unused lists the stage cards that were not dealt into any pile.
func (d Deck) unused() []Card {
	dealt := make(map[Card]bool, d.Total())
	for _, pile := range [][]Card{d.Explore, d.PreDiscarded, d.Hidden} {
		for _, c := range pile {
			dealt[c] = true
		}
	}
	var out []Card
	for _, pool := range [][]Card{tier1(), tier2(), tier3()} {
		for _, c := range pool {
			if !dealt[c] {
				out = append(out, c)
			}
		}
	}
	return out
}

// A second stage III card moves into stage I; higher levels thin out the
// early stages.
func (t *tiers) brandenburg(level int) []Card {
	moved := t.third[0]
	t.third = t.third[1:]
	t.first = append(t.first, moved)
	if level >= 3 {
		dropFirst(&t.first)
	}
	if level >= 4 {
		dropFirst(&t.second)
	}
	if level >= 5 {
		dropFirst(&t.first)
	}
	if level >= 6 {
		dropFirst(&t.first)
	}
	return t.concat()
}

func (t *tiers) russland() []Card {
	out := make([]Card, 0, len(t.first)+len(t.second)+len(t.third))
	out = append(out, t.first...)
	for i, c := range t.second {
		out = append(out, c, t.third[i])
	}
	return append(out, t.third[len(t.third)-1])
}

func (t *tiers) habsburg(level int) []Card {
	dropFirst(&t.first)
	out := t.concat()
	if level >= 5 {
		out = insertAt(out, 4, CardHabsburg)
	}
	return out
}

func (t *tiers) habsburgMining() []Card {
	for i, c := range t.second {
		if c == CardCoast {
			t.second[i] = t.secondRemoved
		}
	}
	t.second[1] = CardHabsburgMining
	return t.concat()
}

func reversed(cards []Card) []Card {
	out := make([]Card, len(cards))
	for i, c := range cards {
		out[len(cards)-1-i] = c
	}
	return out
}

func insertAt(cards []Card, i int, c Card) []Card {
	cards = append(cards, CardEmpty)
	copy(cards[i+1:], cards[i:])
	cards[i] = c
	return cards
}
