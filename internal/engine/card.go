package engine

import "fmt"

// Terrain is one of the five land types printed on invader cards.
type Terrain int

const (
	TerrainSwamp    Terrain = 1
	TerrainJungle   Terrain = 2
	TerrainMountain Terrain = 3
	TerrainDesert   Terrain = 4
	TerrainCoast    Terrain = 5
)

var terrainNames = map[Terrain]string{
	TerrainSwamp:    "Swamp",
	TerrainJungle:   "Jungle",
	TerrainMountain: "Mountain",
	TerrainDesert:   "Desert",
	TerrainCoast:    "Coast",
}

func (t Terrain) String() string {
	if s, ok := terrainNames[t]; ok {
		return s
	}
	return "Unknown"
}

// Card identifies one invader card. Every value exists at most once per deck.
type Card int

const (
	CardEmpty Card = iota
	CardSwamp
	CardJungle
	CardMountain
	CardDesert
	CardCoast
	CardSwampEscalation
	CardJungleEscalation
	CardMountainEscalation
	CardDesertEscalation
	CardMountainDesert
	CardSwampJungle
	CardDesertJungle
	CardMountainJungle
	CardDesertSwamp
	CardMountainSwamp
	CardFinish
	CardHabsburg
	CardHabsburgMining
)

type cardInfo struct {
	name     string
	gen      int
	terrains []Terrain
}

var cardTable = map[Card]cardInfo{
	CardEmpty:              {"empty", 0, nil},
	CardSwamp:              {"swamp", 1, []Terrain{TerrainSwamp}},
	CardJungle:             {"jungle", 1, []Terrain{TerrainJungle}},
	CardMountain:           {"mountain", 1, []Terrain{TerrainMountain}},
	CardDesert:             {"desert", 1, []Terrain{TerrainDesert}},
	CardCoast:              {"coast", 2, []Terrain{TerrainCoast}},
	CardSwampEscalation:    {"swamp_escalation", 2, []Terrain{TerrainSwamp}},
	CardJungleEscalation:   {"jungle_escalation", 2, []Terrain{TerrainJungle}},
	CardMountainEscalation: {"mountain_escalation", 2, []Terrain{TerrainMountain}},
	CardDesertEscalation:   {"desert_escalation", 2, []Terrain{TerrainDesert}},
	CardMountainDesert:     {"mountain_desert", 3, []Terrain{TerrainMountain, TerrainDesert}},
	CardSwampJungle:        {"swamp_jungle", 3, []Terrain{TerrainSwamp, TerrainJungle}},
	CardDesertJungle:       {"desert_jungle", 3, []Terrain{TerrainDesert, TerrainJungle}},
	CardMountainJungle:     {"mountain_jungle", 3, []Terrain{TerrainMountain, TerrainJungle}},
	CardDesertSwamp:        {"desert_swamp", 3, []Terrain{TerrainDesert, TerrainSwamp}},
	CardMountainSwamp:      {"mountain_swamp", 3, []Terrain{TerrainMountain, TerrainSwamp}},
	CardFinish:             {"finish", 0, nil},
	CardHabsburg:           {"habsburg", 0, nil},
	CardHabsburgMining:     {"habsburg_mining", 0, nil},
}

var cardsByName = func() map[string]Card {
	m := make(map[string]Card, len(cardTable))
	for c, info := range cardTable {
		m[info.name] = c
	}
	return m
}()

func (c Card) String() string {
	if info, ok := cardTable[c]; ok {
		return info.name
	}
	return "unknown"
}

// Gen returns the invader stage of the card. Sentinels are generation 0.
func (c Card) Gen() int {
	return cardTable[c].gen
}

// Terrains returns the lands named by the card, nil for sentinels.
func (c Card) Terrains() []Terrain {
	t := cardTable[c].terrains
	if t == nil {
		return nil
	}
	out := make([]Terrain, len(t))
	copy(out, t)
	return out
}

// IsSentinel reports whether the card is a marker rather than a terrain card.
func (c Card) IsSentinel() bool {
	return c.Gen() == 0
}

func (c Card) Valid() bool {
	_, ok := cardTable[c]
	return ok
}

// ParseCard resolves a wire name such as "mountain_desert".
func ParseCard(name string) (Card, error) {
	c, ok := cardsByName[name]
	if !ok {
		return CardEmpty, fmt.Errorf("unknown card %q: %w", name, ErrInvalidAction)
	}
	return c, nil
}

func (c Card) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("invalid card %d", int(c))
	}
	return []byte(c.String()), nil
}

func (c *Card) UnmarshalText(b []byte) error {
	parsed, err := ParseCard(string(b))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

func tier1() []Card {
	return []Card{CardSwamp, CardJungle, CardMountain, CardDesert}
}

func tier2() []Card {
	return []Card{CardSwampEscalation, CardJungleEscalation, CardDesertEscalation, CardCoast, CardMountainEscalation}
}

func tier3() []Card {
	return []Card{CardMountainDesert, CardSwampJungle, CardDesertJungle, CardMountainJungle, CardDesertSwamp, CardMountainSwamp}
}

// AllCards returns every card that can lie in a pile, in declaration order.
func AllCards() []Card {
	out := make([]Card, 0, len(cardTable))
	for c := CardSwamp; c <= CardHabsburgMining; c++ {
		if c != CardFinish {
			out = append(out, c)
		}
	}
	return out
}
