package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// DefaultConfigFile is read from the working directory when --config is not
// given. a missing default file is not an error.
const DefaultConfigFile = "sheetcalc.toml"

// What to print once a script finishes.
const (
	PrintNone   = "none"
	PrintValues = "values"
	PrintTexts  = "texts"
	PrintBoth   = "both"
)

// Config holds CLI settings. flags override file values.
type Config struct {
	// KeepGoing continues past failing script lines instead of stopping.
	KeepGoing bool `toml:"keep_going"`

	// Print selects the final dump: "values", "texts", "both" or "none".
	Print string `toml:"print"`

	// Prompt is shown before each line when stdin is a terminal.
	Prompt string `toml:"prompt"`
}

// DefaultConfig returns the settings used when no file is present.
func DefaultConfig() *Config {
	return &Config{
		Print:  PrintNone,
		Prompt: "> ",
	}
}

// LoadConfig reads path over the defaults. an empty path falls back to
// DefaultConfigFile.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		path = DefaultConfigFile
		if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	md, err := toml.Decode(string(data), cfg)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("parsing %s: unknown key %q", path, undecoded[0].String())
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks enumerated fields.
func (c *Config) Validate() error {
	switch c.Print {
	case PrintNone, PrintValues, PrintTexts, PrintBoth:
		return nil
	}
	return fmt.Errorf("invalid print mode %q (want values, texts, both or none)", c.Print)
}
