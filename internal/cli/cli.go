// Package cli implements the photowall command-line interface.
package cli

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/photowall/pkg/buildinfo"
	"github.com/matzehuels/photowall/pkg/config"
	"github.com/matzehuels/photowall/pkg/errors"
	"github.com/matzehuels/photowall/pkg/wall"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "photowall"

	// configFile is the config file looked up in the user config directory.
	configFile = "config.toml"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Photowall scatters page images into a wall of photos",
		Long:         `Photowall lays out the images of an HTML page over a grid of slots, each with a shuffled slot, a little jitter and a random tilt.`,
		Version:      buildinfo.Get().Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.applyCommand())
	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.previewCommand())
	root.AddCommand(c.slotsCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Layout Flags
// =============================================================================

// layoutFlags are the flags shared by every command that builds a layout.
type layoutFlags struct {
	configPath string // explicit config file
	seed       uint64 // overrides the config seed when non-zero
	strict     bool   // fail instead of skipping targets beyond the last slot
	selector   string // overrides the config selector when set
}

func (f *layoutFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.configPath, "config", "c", "", "config file (default: $XDG_CONFIG_HOME/photowall/config.toml if present)")
	cmd.Flags().Uint64Var(&f.seed, "seed", 0, "random seed for a reproducible layout (0 = random)")
	cmd.Flags().BoolVar(&f.strict, "strict", false, "fail when there are more images than slots")
	cmd.Flags().StringVar(&f.selector, "selector", "", "tag name of the elements to lay out")
}

// resolve loads the config and applies flag overrides.
func (c *CLI) resolve(f *layoutFlags) (config.Config, error) {
	cfg, err := c.loadConfig(f.configPath)
	if err != nil {
		return config.Config{}, err
	}
	if f.seed != 0 {
		cfg.Seed = f.seed
	}
	if f.strict {
		cfg.Overflow = wall.OverflowError.String()
	}
	if f.selector != "" {
		cfg.Selector = f.selector
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// loadConfig reads path, or the user config file when path is empty and
// that file exists, or falls back to the defaults.
func (c *CLI) loadConfig(path string) (config.Config, error) {
	if path != "" {
		c.Logger.Debugf("Loading config %s", path)
		return config.Load(path)
	}
	dir, err := configDir()
	if err != nil {
		return config.Default(), nil
	}
	userPath := filepath.Join(dir, configFile)
	cfg, err := config.Load(userPath)
	if errors.Is(err, errors.ErrCodeFileNotFound) {
		return config.Default(), nil
	}
	if err != nil {
		return config.Config{}, err
	}
	c.Logger.Debugf("Loaded config %s", userPath)
	return cfg, nil
}

// =============================================================================
// Paths
// =============================================================================

// configDir returns the config directory using XDG standard (~/.config/photowall/).
func configDir() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName), nil
}
