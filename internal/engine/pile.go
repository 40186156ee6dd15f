package engine

import (
	"fmt"
	"strings"
)

// PileName identifies one of the piles on the invader board.
type PileName int

const (
	PileExplore      PileName = 0
	PileBuilding     PileName = 1
	PileRavage       PileName = 2
	PileDiscard      PileName = 3
	PileImmigration  PileName = 4
	PileRussiaHidden PileName = 5

	pileCount = 6
)

var pileNames = map[PileName]string{
	PileExplore:      "explore",
	PileBuilding:     "building",
	PileRavage:       "ravage",
	PileDiscard:      "discard",
	PileImmigration:  "immigration",
	PileRussiaHidden: "russia_hidden",
}

// searchOrder is the order Relocate looks for a card's current pile.
var searchOrder = [pileCount]PileName{
	PileRavage, PileExplore, PileImmigration, PileDiscard, PileBuilding, PileRussiaHidden,
}

func (p PileName) String() string {
	if s, ok := pileNames[p]; ok {
		return s
	}
	return "unknown"
}

func (p PileName) Valid() bool {
	return p >= 0 && p < pileCount
}

// AllPiles returns the piles in board order.
func AllPiles() []PileName {
	return []PileName{PileExplore, PileBuilding, PileRavage, PileDiscard, PileImmigration, PileRussiaHidden}
}

func ParsePile(s string) (PileName, error) {
	for p, name := range pileNames {
		if strings.EqualFold(name, s) {
			return p, nil
		}
	}
	return 0, fmt.Errorf("unknown pile %q: %w", s, ErrInvalidAction)
}

func (p PileName) MarshalText() ([]byte, error) {
	if !p.Valid() {
		return nil, fmt.Errorf("invalid pile %d", int(p))
	}
	return []byte(p.String()), nil
}

func (p *PileName) UnmarshalText(b []byte) error {
	parsed, err := ParsePile(string(b))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// indexOf returns the position of c in cards, or -1.
func indexOf(cards []Card, c Card) int {
	for i, x := range cards {
		if x == c {
			return i
		}
	}
	return -1
}

func removeAt(cards []Card, i int) []Card {
	return append(cards[:i], cards[i+1:]...)
}
