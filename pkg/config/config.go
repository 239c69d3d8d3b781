// Package config loads photowall settings from TOML.
//
// A config file only needs the keys it changes; everything else keeps the
// values of [Default]:
//
//	selector = "img"
//	overflow = "skip"   # or "error"
//	seed = 0            # 0 draws a fresh layout every run
//
//	[rotation]
//	min = -10
//	max = 10
//
//	[jitter.x]
//	min = -30
//	max = 30
//
//	[jitter.y]
//	min = -20
//	max = 50
//
//	[grid]
//	columns = [50, 380, 730, 1080, 1430, 1780, 2130]
//	rows = [50, 360, 700, 1040]
//
// An explicit [[slots]] list takes precedence over the grid. Unknown keys are
// rejected so typos do not silently fall back to defaults.
package config

import (
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"

	"github.com/matzehuels/photowall/pkg/errors"
	"github.com/matzehuels/photowall/pkg/wall"
)

// DefaultSelector is the tag name of layout targets.
const DefaultSelector = "img"

// Jitter holds the per-axis offset ranges.
type Jitter struct {
	X wall.Range `toml:"x"`
	Y wall.Range `toml:"y"`
}

// Config is the decoded configuration file.
type Config struct {
	Selector string      `toml:"selector"`
	Overflow string      `toml:"overflow"`
	Seed     uint64      `toml:"seed"`
	Rotation wall.Range  `toml:"rotation"`
	Jitter   Jitter      `toml:"jitter"`
	Grid     wall.Grid   `toml:"grid"`
	Slots    []wall.Slot `toml:"slots"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Selector: DefaultSelector,
		Overflow: wall.OverflowSkip.String(),
		Rotation: wall.DefaultRotation,
		Jitter:   Jitter{X: wall.DefaultJitterX, Y: wall.DefaultJitterY},
		Grid:     wall.DefaultGrid(),
	}
}

// Load reads and validates the config file at path.
func Load(path string) (Config, error) {
	if err := errors.ValidatePath(path); err != nil {
		return Config{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Config{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "config %s", path)
		}
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config %s", path)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "config %s", path)
	}
	return cfg, nil
}

// Parse decodes TOML on top of [Default] and validates the result.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return Config{}, err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, errors.New(errors.ErrCodeInvalidConfig, "unknown keys: %s", strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks every field.
func (c Config) Validate() error {
	if err := errors.ValidateSelector(c.Selector); err != nil {
		return err
	}
	if _, err := wall.ParseOverflowPolicy(c.Overflow); err != nil {
		return err
	}
	if err := errors.ValidateRange("rotation", c.Rotation.Min, c.Rotation.Max); err != nil {
		return err
	}
	if err := errors.ValidateRange("jitter.x", c.Jitter.X.Min, c.Jitter.X.Max); err != nil {
		return err
	}
	if err := errors.ValidateRange("jitter.y", c.Jitter.Y.Min, c.Jitter.Y.Max); err != nil {
		return err
	}
	slots := c.SlotList()
	if len(slots) == 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "no slots: set [grid] columns and rows or list [[slots]]")
	}
	return wall.ValidateSlots(slots)
}

// SlotList returns the explicit slots if any, else the grid expansion.
func (c Config) SlotList() []wall.Slot {
	if len(c.Slots) > 0 {
		return append([]wall.Slot(nil), c.Slots...)
	}
	return c.Grid.Slots()
}

// OverflowPolicy returns the parsed overflow policy, defaulting to skip.
func (c Config) OverflowPolicy() wall.OverflowPolicy {
	p, err := wall.ParseOverflowPolicy(c.Overflow)
	if err != nil {
		return wall.OverflowSkip
	}
	return p
}

// Options converts the config to randomizer options. A zero seed leaves
// the randomizer on its runtime-seeded source.
func (c Config) Options(logger *log.Logger) []wall.Option {
	opts := []wall.Option{
		wall.WithSlots(c.SlotList()),
		wall.WithRotation(c.Rotation),
		wall.WithJitter(c.Jitter.X, c.Jitter.Y),
		wall.WithOverflow(c.OverflowPolicy()),
	}
	if c.Seed != 0 {
		opts = append(opts, wall.WithSource(wall.NewSource(c.Seed)))
	}
	if logger != nil {
		opts = append(opts, wall.WithLogger(logger))
	}
	return opts
}

// Randomizer builds a randomizer from the config.
func (c Config) Randomizer(logger *log.Logger) *wall.Randomizer {
	return wall.New(c.Options(logger)...)
}
