// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package config reads and writes rhi host configuration files.
//
// Files are YAML (.yaml, .yml) or TOML (.toml):
//
//	log_level: info
//	debug: false
//	backends: [WebGPU, Software]
//	max_samples: 16
//	modules:
//	  - name: Direct3D12
//	    path: ./modules/librhi_d3d12.so
//	    priority: 60
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"golang.org/x/text/cases"
	"gopkg.in/yaml.v3"

	"github.com/gogpu/rhi"
	"github.com/gogpu/rhi/backend"
	"github.com/gogpu/rhi/layout"
)

// DefaultModulePriority is the priority of native modules that do not set
// one.
const DefaultModulePriority = 50

// ErrUnknownExtension is returned for files that are neither YAML nor TOML.
var ErrUnknownExtension = errors.New("config: unknown file extension")

// Config is the host configuration.
type Config struct {
	// LogLevel is one of debug, info, warn, error. Empty means warn.
	LogLevel string `yaml:"log_level,omitempty" toml:"log_level,omitempty"`

	// Debug requests debug render systems.
	Debug bool `yaml:"debug,omitempty" toml:"debug,omitempty"`

	// Backends lists module names in order of preference. Modules not
	// listed keep their registered priority.
	Backends []string `yaml:"backends,omitempty" toml:"backends,omitempty"`

	// Modules are native modules loaded from shared libraries.
	Modules []Module `yaml:"modules,omitempty" toml:"modules,omitempty"`

	// MaxSamples bounds multi-sampled textures. Zero means layout.MaxSamples.
	MaxSamples uint32 `yaml:"max_samples,omitempty" toml:"max_samples,omitempty"`
}

// Module is a native module entry.
type Module struct {
	Name     string `yaml:"name" toml:"name"`
	Path     string `yaml:"path" toml:"path"`
	Priority int    `yaml:"priority,omitempty" toml:"priority,omitempty"`
}

type codec int

const (
	codecYAML codec = iota
	codecTOML
)

func codecFor(path string) (codec, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return codecYAML, nil
	case ".toml":
		return codecTOML, nil
	}
	return 0, fmt.Errorf("%w: %s", ErrUnknownExtension, path)
}

// Load reads and normalizes the config file at path. Relative module paths
// are resolved against the directory of the file.
func Load(path string) (*Config, error) {
	c, err := codecFor(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	var cfg Config
	switch c {
	case codecYAML:
		err = yaml.Unmarshal(data, &cfg)
	case codecTOML:
		_, err = toml.Decode(string(data), &cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}

	dir := filepath.Dir(path)
	for i := range cfg.Modules {
		if p := cfg.Modules[i].Path; p != "" && !filepath.IsAbs(p) {
			cfg.Modules[i].Path = filepath.Join(dir, p)
		}
	}
	if err := cfg.Normalize(); err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	rhi.Logger().Debug("config: loaded", "path", path, "modules", len(cfg.Modules))
	return &cfg, nil
}

// Save writes cfg to path in the format selected by its extension.
func Save(path string, cfg *Config) error {
	c, err := codecFor(path)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	switch c {
	case codecYAML:
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		err = enc.Encode(cfg)
		if err == nil {
			err = enc.Close()
		}
	case codecTOML:
		err = toml.NewEncoder(&buf).Encode(cfg)
	}
	if err != nil {
		return fmt.Errorf("config: encode %s: %w", path, err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// Normalize applies defaults and validates the config.
func (c *Config) Normalize() error {
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	if c.LogLevel == "" {
		c.LogLevel = "warn"
	}
	if _, err := parseLevel(c.LogLevel); err != nil {
		return err
	}
	if c.MaxSamples == 0 {
		c.MaxSamples = layout.MaxSamples
	}

	fold := cases.Fold()
	seen := make(map[string]bool)
	backends := c.Backends[:0]
	for _, name := range c.Backends {
		name = strings.TrimSpace(name)
		k := fold.String(name)
		if name == "" || seen[k] {
			continue
		}
		seen[k] = true
		backends = append(backends, name)
	}
	c.Backends = backends

	clear(seen)
	for i := range c.Modules {
		m := &c.Modules[i]
		if m.Name == "" || m.Path == "" {
			return fmt.Errorf("%w: module %d needs a name and a path", rhi.ErrInvalidArgument, i)
		}
		k := fold.String(m.Name)
		if seen[k] {
			return fmt.Errorf("%w: duplicate module %q", rhi.ErrInvalidArgument, m.Name)
		}
		seen[k] = true
		if m.Priority == 0 {
			m.Priority = DefaultModulePriority
		}
	}
	return nil
}

func parseLevel(s string) (slog.Level, error) {
	switch s {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return 0, fmt.Errorf("%w: log level %q", rhi.ErrInvalidArgument, s)
}

// Level returns the configured log level. Invalid levels report warn.
func (c *Config) Level() slog.Level {
	l, err := parseLevel(strings.ToLower(c.LogLevel))
	if err != nil {
		return slog.LevelWarn
	}
	return l
}

// Logger returns a text logger writing to w at the configured level.
func (c *Config) Logger(w io.Writer) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: c.Level()}))
}

// ApplyBackendOrder raises the modules listed in Backends above all other
// registered modules, keeping their listed order. Unknown names are
// skipped with a warning.
func (c *Config) ApplyBackendOrder(reg *backend.Registry) {
	top := 0
	for _, name := range reg.List() {
		if e, ok := reg.Get(name); ok && e.Priority > top {
			top = e.Priority
		}
	}
	for i, name := range c.Backends {
		if err := reg.SetPriority(name, top+len(c.Backends)-i); err != nil {
			rhi.Logger().Warn("config: unknown backend in preference list", "name", name)
		}
	}
}
