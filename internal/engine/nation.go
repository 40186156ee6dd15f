package engine

import (
	"fmt"
	"strings"
)

// Nation identifies the adversary the invaders play as.
type Nation int

const (
	NationNone           Nation = 0
	NationBrandenburg    Nation = 1
	NationEngland        Nation = 2
	NationSchweden       Nation = 3
	NationRussland       Nation = 4
	NationFrance         Nation = 5
	NationHabsburg       Nation = 6
	NationSchottland     Nation = 7
	NationHabsburgMining Nation = 8
)

const (
	MinLevel = 1
	MaxLevel = 6
)

var nationNames = map[Nation]string{
	NationNone:           "None",
	NationBrandenburg:    "Brandenburg",
	NationEngland:        "England",
	NationSchweden:       "Schweden",
	NationRussland:       "Russland",
	NationFrance:         "France",
	NationHabsburg:       "Habsburg",
	NationSchottland:     "Schottland",
	NationHabsburgMining: "HabsburgMining",
}

func (n Nation) String() string {
	if s, ok := nationNames[n]; ok {
		return s
	}
	return "Unknown"
}

// AllNations returns every nation in declaration order.
func AllNations() []Nation {
	return []Nation{
		NationNone, NationBrandenburg, NationEngland, NationSchweden, NationRussland,
		NationFrance, NationHabsburg, NationSchottland, NationHabsburgMining,
	}
}

// ParseNation accepts a nation name, case-insensitively.
func ParseNation(s string) (Nation, error) {
	for n, name := range nationNames {
		if strings.EqualFold(name, s) {
			return n, nil
		}
	}
	return NationNone, fmt.Errorf("unknown nation %q: %w", s, ErrInvalidConfig)
}

func (n Nation) MarshalText() ([]byte, error) {
	if _, ok := nationNames[n]; !ok {
		return nil, fmt.Errorf("invalid nation %d", int(n))
	}
	return []byte(n.String()), nil
}

func (n *Nation) UnmarshalText(b []byte) error {
	parsed, err := ParseNation(string(b))
	if err != nil {
		return err
	}
	*n = parsed
	return nil
}

// NationConfig is the adversary selection a deck is built for.
type NationConfig struct {
	Nation Nation `json:"nation" yaml:"nation"`
	Level  int    `json:"level" yaml:"level"`
}

func DefaultNationConfig() NationConfig {
	return NationConfig{Nation: NationNone, Level: 1}
}

func (c NationConfig) Validate() error {
	if _, ok := nationNames[c.Nation]; !ok {
		return fmt.Errorf("nation %d: %w", int(c.Nation), ErrInvalidConfig)
	}
	if c.Level < MinLevel || c.Level > MaxLevel {
		return fmt.Errorf("level %d outside %d..%d: %w", c.Level, MinLevel, MaxLevel, ErrInvalidConfig)
	}
	return nil
}

func (c NationConfig) String() string {
	return fmt.Sprintf("%s/%d", c.Nation, c.Level)
}

// Is reports whether the config is nation n at level minLevel or above.
func (c NationConfig) Is(n Nation, minLevel int) bool {
	return c.Nation == n && c.Level >= minLevel
}

// UsesImmigration reports whether the immigration pile exists at all.
func (c NationConfig) UsesImmigration() bool {
	return c.Is(NationEngland, 3)
}

// UsesRussiaPile reports whether the hidden Russia pile is dealt.
func (c NationConfig) UsesRussiaPile() bool {
	return c.Is(NationRussland, 5)
}
