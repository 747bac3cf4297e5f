package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/heaviest/pkg/buildinfo"
	"github.com/matzehuels/heaviest/pkg/cache"
	"github.com/matzehuels/heaviest/pkg/config"
	"github.com/matzehuels/heaviest/pkg/core/graph"
	"github.com/matzehuels/heaviest/pkg/graphio"
	"github.com/matzehuels/heaviest/pkg/render/nodelink"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "heaviest"

	// redisPrefix namespaces keys in a shared Redis database.
	redisPrefix = "heaviest:"
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
	Config *config.Config

	configPath string
	verbose    bool
}

// New creates a new CLI instance with a default logger and configuration.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: config.Default(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
	c.verbose = level == log.DebugLevel
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           appName,
		Short:         "Track the heaviest neighborhood of a weighted graph",
		Long:          `heaviest maintains a vertex-weighted undirected graph under edge insertions and vertex deletions and answers "which vertex has the heaviest neighborhood?" in constant time.`,
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := c.loadConfig(); err != nil {
				return err
			}
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/heaviest/config.toml, or $"+config.EnvPath+")")

	root.AddCommand(c.runCommand())
	root.AddCommand(c.checkCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.stressCommand())
	root.AddCommand(c.replCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())
	root.AddCommand(c.versionCommand())

	return root
}

// loadConfig reads the config file and applies its log level unless
// --verbose already raised it.
func (c *CLI) loadConfig() error {
	cfg, path, err := config.LoadOrDefault(c.configPath)
	if err != nil {
		return err
	}
	c.Config = cfg
	if !c.verbose {
		level, _ := cfg.LogLevel()
		c.Logger.SetLevel(level)
	}
	if path != "" {
		c.Logger.Debug("loaded config", "path", path)
	}
	return nil
}

// =============================================================================
// Graph Loading
// =============================================================================

// graphFlags are the flags shared by commands that load a vertex file.
type graphFlags struct {
	format string
}

func (f *graphFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.format, "format", "", "vertex file format: json, toml or text (default from extension)")
}

// loadGraph reads a vertex file and builds the graph with the configured
// options. Graphs built from files always reject repeated edges.
func (c *CLI) loadGraph(path string, f graphFlags) (*graph.Graph, error) {
	file, err := graphio.Import(path, f.format)
	if err != nil {
		return nil, err
	}
	g, err := file.Build(c.Config.Graph.Options()...)
	if err != nil {
		return nil, err
	}
	c.Logger.Debug("loaded graph", "path", path, "nodes", g.NumNodes(), "edges", g.NumEdges())
	return g, nil
}

// =============================================================================
// Cache & Renderer Factory
// =============================================================================

// newCache opens the configured render cache: Redis when an address is set,
// the file cache otherwise, or nothing when disabled.
func (c *CLI) newCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	cc := c.Config.Cache
	if noCache || cc.Disabled {
		return cache.NewNullCache(), nil
	}
	if cc.RedisAddr != "" {
		rc, err := cache.NewRedisCache(ctx, cc.RedisAddr)
		if err != nil {
			return nil, err
		}
		return cache.Instrument(cache.Scoped(rc, redisPrefix), "render"), nil
	}
	dir, err := c.cacheDir()
	if err != nil {
		c.Logger.Warn("no cache directory, caching disabled", "err", err)
		return cache.NewNullCache(), nil
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		return nil, err
	}
	return cache.Instrument(fc, "render"), nil
}

func (c *CLI) newRenderer(ctx context.Context, noCache bool) (*nodelink.Renderer, error) {
	cc, err := c.newCache(ctx, noCache)
	if err != nil {
		return nil, err
	}
	return nodelink.NewRenderer(cc, c.Config.Cache.TTL.Duration, c.Logger), nil
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the configured cache directory, or the XDG default
// (~/.cache/heaviest/).
func (c *CLI) cacheDir() (string, error) {
	if c.Config != nil && c.Config.Cache.Dir != "" {
		return c.Config.Cache.Dir, nil
	}
	return defaultCacheDir()
}

func defaultCacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}
