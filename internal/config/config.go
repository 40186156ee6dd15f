package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"invaderdeck/internal/engine"
)

// Config is the server configuration read from a YAML file.
type Config struct {
	ListenAddr string `yaml:"listen_addr"`
	// PublicURL is the base of join links; empty means the request host.
	PublicURL  string `yaml:"public_url"`
	JournalDir string `yaml:"journal_dir"` // empty disables the journal
	QRSize     int    `yaml:"qr_size"`

	DefaultNation engine.Nation `yaml:"default_nation"`
	DefaultLevel  int           `yaml:"default_level"`

	MaxMessageBytes int64 `yaml:"max_message_bytes"`
}

func Default() Config {
	return Config{
		ListenAddr:      ":8080",
		QRSize:          256,
		DefaultNation:   engine.NationNone,
		DefaultLevel:    1,
		MaxMessageBytes: 4096,
	}
}

// Load overlays the file at path on Default and validates the result.
func Load(path string) (Config, error) {
	c := Default()
	raw, err := os.ReadFile(path)
	if err != nil {
		return c, err
	}
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return c, fmt.Errorf("%s: %w", path, err)
	}
	if err := c.Validate(); err != nil {
		return c, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// DefaultGame is the adversary new tables start with.
func (c Config) DefaultGame() engine.NationConfig {
	return engine.NationConfig{Nation: c.DefaultNation, Level: c.DefaultLevel}
}

func (c Config) Validate() error {
	if c.ListenAddr == "" {
		return errors.New("listen_addr is required")
	}
	if c.QRSize < 64 || c.QRSize > 2048 {
		return fmt.Errorf("qr_size %d outside 64..2048", c.QRSize)
	}
	if c.MaxMessageBytes < 256 {
		return fmt.Errorf("max_message_bytes %d below 256", c.MaxMessageBytes)
	}
	return c.DefaultGame().Validate()
}
