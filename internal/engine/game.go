package engine

// ExploreStep reports what a click on the explore pile did.
type ExploreStep int

const (
	ExploreNoop     ExploreStep = iota // explore pile already empty
	ExploreRevealed                    // top card turned face up
	ExploreAdvanced                    // cards moved one pile along
)

var exploreStepNames = map[ExploreStep]string{
	ExploreNoop:     "Noop",
	ExploreRevealed: "Revealed",
	ExploreAdvanced: "Advanced",
}

func (s ExploreStep) String() string {
	if n, ok := exploreStepNames[s]; ok {
		return n
	}
	return "Unknown"
}

// Game holds the piles and reveal flags of one invader deck.
// It is not safe for concurrent use.
type Game struct {
	Config          NationConfig   `json:"config"`
	ExploreRevealed bool           `json:"explore_revealed"`
	RussiaRevealed  bool           `json:"russia_revealed"`
	Events          *EventRegistry `json:"-"`

	piles    [pileCount][]Card
	setAside [2]Card
	removed  []Card // out of the game, by construction or by an event card
	rnd      Randomizer
}

// NewGame builds a deck for cfg and deals it. A nil rnd uses a runtime
// seeded source; a nil registry accepts no event cards.
func NewGame(cfg NationConfig, rnd Randomizer, events *EventRegistry) (*Game, error) {
	if rnd == nil {
		rnd = NewRandomizer()
	}
	if events == nil {
		events = NewEventRegistry()
	}
	g := &Game{Events: events, rnd: rnd}
	if err := g.Reset(cfg); err != nil {
		return nil, err
	}
	return g, nil
}

// Reset discards all piles and deals a fresh deck for cfg.
func (g *Game) Reset(cfg NationConfig) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	d := BuildDeck(cfg, g.rnd)

	g.Config = cfg
	g.piles = [pileCount][]Card{}
	g.piles[PileExplore] = d.Explore
	g.piles[PileDiscard] = append([]Card(nil), d.PreDiscarded...)
	g.piles[PileRussiaHidden] = append([]Card(nil), d.Hidden...)
	g.setAside = d.SetAside
	g.removed = append([]Card(nil), d.Removed...)
	g.ExploreRevealed = false
	g.RussiaRevealed = false
	return nil
}

// Rand exposes the game's random source to event cards.
func (g *Game) Rand() Randomizer {
	return g.rnd
}

// SetAside returns the stage II and stage III cards removed while building.
func (g *Game) SetAside() [2]Card {
	return g.setAside
}

// Pile returns a copy of the pile, bottom card first.
func (g *Game) Pile(p PileName) []Card {
	g.checkPile("Pile", p)
	out := make([]Card, len(g.piles[p]))
	copy(out, g.piles[p])
	return out
}

func (g *Game) Len(p PileName) int {
	g.checkPile("Len", p)
	return len(g.piles[p])
}

// Top returns the top card of a pile.
func (g *Game) Top(p PileName) (Card, bool) {
	g.checkPile("Top", p)
	cards := g.piles[p]
	if len(cards) == 0 {
		return CardEmpty, false
	}
	return cards[len(cards)-1], true
}

// Total counts the cards across all piles.
func (g *Game) Total() int {
	n := 0
	for _, cards := range g.piles {
		n += len(cards)
	}
	return n
}

// Removed returns the cards that left the game.
func (g *Game) Removed() []Card {
	return append([]Card(nil), g.removed...)
}

// Locate finds the pile holding c.
func (g *Game) Locate(c Card) (PileName, int, bool) {
	for _, p := range searchOrder {
		if i := indexOf(g.piles[p], c); i >= 0 {
			return p, i, true
		}
	}
	return 0, -1, false
}

// TakeAt removes the card at index i of pile p from the game.
func (g *Game) TakeAt(p PileName, i int) Card {
	g.checkPile("TakeAt", p)
	if i < 0 || i >= len(g.piles[p]) {
		invariant("TakeAt", "index %d out of range for %s (len %d)", i, p, len(g.piles[p]))
	}
	c := g.piles[p][i]
	g.piles[p] = removeAt(g.piles[p], i)
	g.removed = append(g.removed, c)
	return c
}

// InsertAt puts a card that is in no pile at index i of pile p.
// Index len(pile) places it on top.
func (g *Game) InsertAt(p PileName, i int, c Card) {
	g.checkPile("InsertAt", p)
	if i < 0 || i > len(g.piles[p]) {
		invariant("InsertAt", "index %d out of range for %s (len %d)", i, p, len(g.piles[p]))
	}
	if from, _, ok := g.Locate(c); ok {
		invariant("InsertAt", "%s already in %s", c, from)
	}
	ri := indexOf(g.removed, c)
	if ri < 0 {
		invariant("InsertAt", "%s was never dealt", c)
	}
	g.removed = removeAt(g.removed, ri)
	g.piles[p] = insertAt(g.piles[p], i, c)
}

// Swap exchanges two cards inside one pile.
func (g *Game) Swap(p PileName, i, j int) {
	g.checkPile("Swap", p)
	n := len(g.piles[p])
	if i < 0 || i >= n || j < 0 || j >= n {
		invariant("Swap", "indexes %d,%d out of range for %s (len %d)", i, j, p, n)
	}
	g.piles[p][i], g.piles[p][j] = g.piles[p][j], g.piles[p][i]
}

// ImmigrationActive reports whether explore clicks route through the
// immigration pile. At England level 3 the detour ends once a stage II card
// has been discarded from it.
func (g *Game) ImmigrationActive() bool {
	switch {
	case g.Config.Is(NationEngland, 4):
		return true
	case g.Config.Nation == NationEngland && g.Config.Level == 3:
		top, ok := g.Top(PileDiscard)
		return !ok || top.Gen() <= 1
	default:
		return false
	}
}

// Explore handles a click on the explore pile. The first click reveals the
// top card, the second advances every pile by one step.
func (g *Game) Explore() ExploreStep {
	step, _ := g.explore()
	return step
}

func (g *Game) explore() (ExploreStep, []Card) {
	if !g.ExploreRevealed {
		g.ExploreRevealed = true
		return ExploreRevealed, nil
	}
	if len(g.piles[PileExplore]) == 0 {
		return ExploreNoop, nil
	}

	target := PileRavage
	if g.ImmigrationActive() {
		target = PileImmigration
	}

	// Oldest cards leave first so nothing skips a pile.
	g.moveAll(target, PileDiscard)
	if target != PileRavage {
		g.moveAll(PileRavage, target)
	}
	g.moveAll(PileBuilding, PileRavage)

	explore := g.piles[PileExplore]
	top := explore[len(explore)-1]
	g.piles[PileExplore] = explore[:len(explore)-1]
	g.piles[PileBuilding] = append(g.piles[PileBuilding], top)

	g.ExploreRevealed = false
	return ExploreAdvanced, g.flushImmigration()
}

// moveAll appends every card of from onto to. The mining marker never
// leaves the ravage pile this way.
func (g *Game) moveAll(from, to PileName) {
	var keep, moved []Card
	for _, c := range g.piles[from] {
		if from == PileRavage && c == CardHabsburgMining {
			keep = append(keep, c)
			continue
		}
		moved = append(moved, c)
	}
	g.piles[from] = keep
	g.piles[to] = append(g.piles[to], moved...)
}

// Relocate moves a card from wherever it lies onto the top of dest and
// returns the pile it came from plus any cards the immigration rule flushed.
func (g *Game) Relocate(c Card, dest PileName) (PileName, []Card) {
	g.checkPile("Relocate", dest)
	from, i, ok := g.Locate(c)
	if !ok {
		invariant("Relocate", "%s is not in any pile", c)
	}
	g.piles[from] = removeAt(g.piles[from], i)
	switch from {
	case PileExplore:
		g.ExploreRevealed = false
	case PileRussiaHidden:
		g.RussiaRevealed = false
	}
	g.piles[dest] = append(g.piles[dest], c)
	return from, g.flushImmigration()
}

// flushImmigration discards the immigration pile at England level 3 once it
// holds a stage II card.
func (g *Game) flushImmigration() []Card {
	if !(g.Config.Nation == NationEngland && g.Config.Level == 3) {
		return nil
	}
	for _, c := range g.piles[PileImmigration] {
		if c.Gen() == 2 {
			flushed := g.Pile(PileImmigration)
			g.moveAll(PileImmigration, PileDiscard)
			return flushed
		}
	}
	return nil
}

// FlipRussia turns the top of the Russia pile face up or back down.
func (g *Game) FlipRussia() bool {
	if len(g.piles[PileRussiaHidden]) == 0 {
		return false
	}
	g.RussiaRevealed = !g.RussiaRevealed
	return true
}

func (g *Game) checkPile(op string, p PileName) {
	if !p.Valid() {
		invariant(op, "unknown pile %d", int(p))
	}
}
