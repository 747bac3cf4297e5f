// Package config loads the optional TOML configuration file.
//
// A file looks like:
//
//	[graph]
//	strict_edges = true
//	seed = 42
//
//	[log]
//	level = "debug"
//
//	[cache]
//	dir = "/var/cache/heaviest"
//	redis_addr = "localhost:6379"
//	ttl = "24h"
//
//	[server]
//	addr = ":8080"
//	engine = "neato"
//
// Every key is optional; missing keys keep their [Default] values. Command
// line flags override file values.
package config

import (
	"errors"
	"io/fs"
	"math/rand/v2"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"

	"github.com/matzehuels/heaviest/pkg/core/graph"
	errs "github.com/matzehuels/heaviest/pkg/errors"
)

// EnvPath names the environment variable consulted when no --config flag is
// given.
const EnvPath = "HEAVIEST_CONFIG"

// Config is the decoded configuration file.
type Config struct {
	Graph  Graph  `toml:"graph"`
	Log    Log    `toml:"log"`
	Cache  Cache  `toml:"cache"`
	Server Server `toml:"server"`
}

// Graph configures graph construction.
type Graph struct {
	// StrictEdges rejects repeated edges.
	StrictEdges bool `toml:"strict_edges"`

	// Seed fixes the vertex index hash coefficients; 0 draws fresh ones.
	Seed uint64 `toml:"seed"`
}

// Log configures the CLI logger.
type Log struct {
	Level string `toml:"level"`
}

// Cache configures the render cache. RedisAddr takes precedence over Dir.
type Cache struct {
	Dir       string   `toml:"dir"`
	RedisAddr string   `toml:"redis_addr"`
	TTL       Duration `toml:"ttl"`
	Disabled  bool     `toml:"disabled"`
}

// Server configures the HTTP server.
type Server struct {
	Addr   string `toml:"addr"`
	Engine string `toml:"engine"`
}

// Duration is a time.Duration written as a string such as "90m".
type Duration struct{ time.Duration }

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Log:    Log{Level: "info"},
		Cache:  Cache{TTL: Duration{24 * time.Hour}},
		Server: Server{Addr: ":8080", Engine: "neato"},
	}
}

// Load decodes the file at path over [Default]. Unknown keys are rejected so
// typos do not pass silently.
func Load(path string) (*Config, error) {
	cfg := Default()
	md, err := toml.DecodeFile(path, cfg)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, errs.Wrap(errs.ErrCodeFileNotFound, err, "config %s", path)
	}
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidFormat, err, "decode config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, errs.New(errs.ErrCodeInvalidFormat, "config %s: unknown key %q", path, undecoded[0].String())
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Resolve picks the config path: the flag value, then $HEAVIEST_CONFIG, then
// the default location. explicit reports whether the user named the file, in
// which case it must exist.
func Resolve(flag string) (path string, explicit bool) {
	if flag != "" {
		return flag, true
	}
	if env := os.Getenv(EnvPath); env != "" {
		return env, true
	}
	dir, err := DefaultDir()
	if err != nil {
		return "", false
	}
	return filepath.Join(dir, "config.toml"), false
}

// LoadOrDefault resolves the path from flag and loads it. A missing file at
// the default location yields [Default].
func LoadOrDefault(flag string) (*Config, string, error) {
	path, explicit := Resolve(flag)
	if path == "" {
		return Default(), "", nil
	}
	cfg, err := Load(path)
	if !explicit && errs.Is(err, errs.ErrCodeFileNotFound) {
		return Default(), "", nil
	}
	if err != nil {
		return nil, path, err
	}
	return cfg, path, nil
}

// DefaultDir returns $XDG_CONFIG_HOME/heaviest, falling back to
// ~/.config/heaviest.
func DefaultDir() (string, error) {
	if home := os.Getenv("XDG_CONFIG_HOME"); home != "" {
		return filepath.Join(home, "heaviest"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "heaviest"), nil
}

// Validate checks values that decode fine but cannot be used.
func (c *Config) Validate() error {
	if _, err := c.LogLevel(); err != nil {
		return err
	}
	if c.Cache.TTL.Duration < 0 {
		return errs.New(errs.ErrCodeInvalidInput, "cache ttl cannot be negative: %s", c.Cache.TTL)
	}
	return nil
}

// LogLevel parses Log.Level.
func (c *Config) LogLevel() (log.Level, error) {
	lvl, err := log.ParseLevel(c.Log.Level)
	if err != nil {
		return log.InfoLevel, errs.Wrap(errs.ErrCodeInvalidInput, err, "log level %q", c.Log.Level)
	}
	return lvl, nil
}

// Options returns the graph options the [graph] section asks for.
func (g Graph) Options() []graph.Option {
	var opts []graph.Option
	if g.StrictEdges {
		opts = append(opts, graph.WithStrictEdges())
	}
	if g.Seed != 0 {
		opts = append(opts, graph.WithRand(rand.New(rand.NewPCG(g.Seed, g.Seed^0x9e3779b97f4a7c15))))
	}
	return opts
}
