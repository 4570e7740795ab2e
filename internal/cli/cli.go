// Package cli implements the barbell command-line interface.
//
// The commands share one pipeline with the HTTP server: calc prints the
// plates for a target, render draws the loaded bar, trace draws how the
// plates were picked, and tui is an interactive version of the web form.
// stock and state manage what is remembered between runs, in the storage
// backend named by the config file.
//
// # Commands
//
//   - calc: plates per side for a target weight
//   - render: SVG, PNG, PDF or JSON drawing of the loaded bar
//   - trace: Graphviz diagram of the greedy walk
//   - stock, state: quick-stock preset and saved form
//   - tui: interactive calculator
//   - serve: web page and JSON API
//   - config, cache, completion: housekeeping
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context.
package cli

import (
	"context"
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/barbell/pkg/buildinfo"
	"github.com/matzehuels/barbell/pkg/cache"
	"github.com/matzehuels/barbell/pkg/config"
	"github.com/matzehuels/barbell/pkg/pipeline"
	"github.com/matzehuels/barbell/pkg/prefs"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = config.AppName

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
	Config config.Config

	configPath string
	loaded     bool
}

// New creates a new CLI instance with a default logger and the built-in
// configuration. The config file is read when a command runs.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: config.Default(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Barbell works out which plates to load for a target weight",
		Long: `Barbell is a plate calculator. Give it a target weight, the bar weight and
the plate pairs you own, and it picks plates for each side (heaviest first)
and draws the loaded bar as SVG, PNG, or PDF.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := c.loadConfig(); err != nil {
				return err
			}
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default: $XDG_CONFIG_HOME/barbell/config.toml)")

	// Register all subcommands
	root.AddCommand(c.calcCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.traceCommand())
	root.AddCommand(c.stockCommand())
	root.AddCommand(c.stateCommand())
	root.AddCommand(c.tuiCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	registerFlagCompletions(root)
	return root
}

// loadConfig reads the config file once per process.
func (c *CLI) loadConfig() error {
	if c.loaded {
		return nil
	}
	path := c.configPath
	if path == "" {
		if p, err := config.Path(); err == nil {
			path = p
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	c.Config = cfg
	c.loaded = true
	c.Logger.Debug("config loaded", "path", path, "storage", cfg.Storage.Backend)
	return nil
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(noCache bool) (*pipeline.Runner, error) {
	cc, err := c.newCache(noCache)
	if err != nil {
		return nil, err
	}
	r := pipeline.NewRunner(cc, nil, c.Logger)
	r.TTL = c.Config.Cache.TTL
	return r, nil
}

func (c *CLI) newCache(noCache bool) (cache.Cache, error) {
	if noCache || c.Config.Cache.Disabled {
		return cache.NewNullCache(), nil
	}
	dir, err := c.cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// openPrefs opens the configured preference storage. The returned close
// function is always safe to call.
func (c *CLI) openPrefs(ctx context.Context) (*prefs.Prefs, func(), error) {
	s, err := prefs.Open(ctx, c.Config.Storage)
	if err != nil {
		return prefs.New(nil, c.Logger), func() {}, err
	}
	closeFn := func() {
		if s != nil {
			if err := s.Close(); err != nil {
				c.Logger.Debug("close storage", "err", err)
			}
		}
	}
	return prefs.New(s, c.Logger), closeFn, nil
}

// bestEffortPrefs is openPrefs for commands that work without persistence.
// A storage failure is logged and persistence is disabled.
func (c *CLI) bestEffortPrefs(ctx context.Context) (*prefs.Prefs, func()) {
	p, closeFn, err := c.openPrefs(ctx)
	if err != nil {
		c.Logger.Warn("preferences unavailable", "err", err)
	}
	return p, closeFn
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/barbell/).
func cacheDir() (string, error) {
	return config.CacheDir()
}

// =============================================================================
// Options Helpers
// =============================================================================

// setCLIDefaults applies config-file defaults on top of pipeline defaults.
func (c *CLI) setCLIDefaults(opts *pipeline.Options) {
	if opts.Style == "" {
		opts.Style = c.Config.Style
	}
	if opts.Unit == "" {
		opts.Unit = c.Config.Unit
	}
	if opts.Scale == 0 {
		opts.Scale = c.Config.Scale
	}
	opts.Logger = c.Logger
}

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatSVG}
	}
	var out []string
	for f := range strings.SplitSeq(s, ",") {
		if f = strings.ToLower(strings.TrimSpace(f)); f != "" {
			out = append(out, f)
		}
	}
	return out
}
