// Package config handles cnstr.toml run configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/ezrec/cnstr/lexer"
)

// FILENAME is the name of the configuration file.
const FILENAME = "cnstr.toml"

// Config is a cnstr.toml run configuration.
type Config struct {
	CommentPrefix string            `toml:"comment_prefix"` // Full-line comment marker.
	Dump          bool              `toml:"dump"`           // Print the final registers and jump points.
	Banner        bool              `toml:"banner"`         // Print rulers around the program output.
	Verbose       bool              `toml:"verbose"`        // Trace tokenizing and execution.
	Registers     map[string]string `toml:"registers"`      // Register presets, as expressions.

	// Path is the file the configuration was loaded from, if any.
	Path string `toml:"-"`
}

// Default returns the configuration used when there is no cnstr.toml.
func Default() *Config {
	return &Config{
		CommentPrefix: lexer.COMMENT_PREFIX,
		Dump:          true,
		Banner:        true,
		Registers:     map[string]string{},
	}
}

// Load parses a configuration file. Keys missing from the file keep their
// default values; unknown keys are an error.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", path, err)
	}

	cfg, err := Parse(string(data))
	if err != nil {
		return nil, fmt.Errorf("parse error in %s: %w", path, err)
	}
	cfg.Path = path

	return cfg, nil
}

// Parse decodes a configuration from TOML text.
func Parse(text string) (*Config, error) {
	cfg := Default()

	md, err := toml.Decode(text, cfg)
	if err != nil {
		return nil, err
	}

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, key := range undecoded {
			keys = append(keys, key.String())
		}
		slices.Sort(keys)
		return nil, fmt.Errorf("unknown keys: %s", strings.Join(keys, ", "))
	}

	// Defaults
	if len(cfg.CommentPrefix) == 0 {
		cfg.CommentPrefix = lexer.COMMENT_PREFIX
	}
	if cfg.Registers == nil {
		cfg.Registers = map[string]string{}
	}

	for name := range cfg.Registers {
		if err := lexer.CheckRegister(name); err != nil {
			return nil, fmt.Errorf("registers: %w", err)
		}
	}

	return cfg, nil
}

// FindAndLoad walks up from startDir to find a cnstr.toml file, and loads
// it. If none is found, the default configuration is returned.
func FindAndLoad(startDir string) (*Config, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return nil, fmt.Errorf("cannot resolve path %s: %w", startDir, err)
	}

	for {
		path := filepath.Join(dir, FILENAME)
		_, err := os.Stat(path)
		if err == nil {
			return Load(path)
		}
		if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("cannot stat %s: %w", path, err)
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return Default(), nil
		}
		dir = parent
	}
}
