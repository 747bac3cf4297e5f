package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	errs "github.com/matzehuels/heaviest/pkg/errors"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
[graph]
strict_edges = true
seed = 42

[log]
level = "debug"

[cache]
redis_addr = "localhost:6379"
ttl = "90m"

[server]
addr = "127.0.0.1:9000"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !cfg.Graph.StrictEdges || cfg.Graph.Seed != 42 {
		t.Errorf("Graph = %+v", cfg.Graph)
	}
	if lvl, _ := cfg.LogLevel(); lvl != log.DebugLevel {
		t.Errorf("LogLevel = %v, want debug", lvl)
	}
	if cfg.Cache.RedisAddr != "localhost:6379" || cfg.Cache.TTL.Duration != 90*time.Minute {
		t.Errorf("Cache = %+v", cfg.Cache)
	}
	if cfg.Server.Addr != "127.0.0.1:9000" {
		t.Errorf("Server.Addr = %q", cfg.Server.Addr)
	}
	if cfg.Server.Engine != "neato" {
		t.Errorf("Server.Engine = %q, want default neato", cfg.Server.Engine)
	}
	if n := len(cfg.Graph.Options()); n != 2 {
		t.Errorf("Graph.Options() has %d options, want 2", n)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		code    errs.Code
	}{
		{"unknown key", "[graph]\nstrict = true\n", errs.ErrCodeInvalidFormat},
		{"bad syntax", "[graph\n", errs.ErrCodeInvalidFormat},
		{"bad duration", "[cache]\nttl = \"soon\"\n", errs.ErrCodeInvalidFormat},
		{"negative ttl", "[cache]\nttl = \"-1h\"\n", errs.ErrCodeInvalidInput},
		{"bad level", "[log]\nlevel = \"loud\"\n", errs.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			if !errs.Is(err, tt.code) {
				t.Errorf("err = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestLoadOrDefault(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv(EnvPath, "")

	cfg, path, err := LoadOrDefault("")
	if err != nil {
		t.Fatalf("missing default file should not fail: %v", err)
	}
	if path != "" || cfg.Server.Addr != ":8080" {
		t.Errorf("got path %q, cfg %+v", path, cfg)
	}

	if _, _, err := LoadOrDefault(filepath.Join(t.TempDir(), "nope.toml")); !errs.Is(err, errs.ErrCodeFileNotFound) {
		t.Errorf("explicit missing file: %v, want FILE_NOT_FOUND", err)
	}

	envPath := writeConfig(t, "[graph]\nseed = 7\n")
	t.Setenv(EnvPath, envPath)
	cfg, path, err = LoadOrDefault("")
	if err != nil || path != envPath || cfg.Graph.Seed != 7 {
		t.Errorf("env config: path %q seed %d err %v", path, cfg.Graph.Seed, err)
	}
}

func TestResolvePrecedence(t *testing.T) {
	t.Setenv(EnvPath, "/from/env.toml")
	if p, explicit := Resolve("/from/flag.toml"); p != "/from/flag.toml" || !explicit {
		t.Errorf("flag: %q %v", p, explicit)
	}
	if p, explicit := Resolve(""); p != "/from/env.toml" || !explicit {
		t.Errorf("env: %q %v", p, explicit)
	}

	t.Setenv(EnvPath, "")
	t.Setenv("XDG_CONFIG_HOME", "/xdg")
	if p, explicit := Resolve(""); p != filepath.Join("/xdg", "heaviest", "config.toml") || explicit {
		t.Errorf("default: %q %v", p, explicit)
	}
}
