// Package project reads the zenc.toml project configuration: the policy
// knobs the semantic analysis core and CLI need that aren't carried on the
// AST document itself.
package project

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Config is the decoded form of zenc.toml.
type Config struct {
	Analysis AnalysisConfig `toml:"analysis"`
	Output   OutputConfig   `toml:"output"`
}

// AnalysisConfig carries the semantic analysis core's configurable policy.
type AnalysisConfig struct {
	// StrictUnknownCopy, when true, treats a struct type with no known
	// definition and no Drop impl as Move rather than the permissive
	// default of Copy.
	StrictUnknownCopy bool `toml:"strict_unknown_copy"`
}

// OutputConfig carries the CLI's rendering defaults.
type OutputConfig struct {
	Color          string `toml:"color"`
	MaxDiagnostics int    `toml:"max_diagnostics"`
}

// Default returns the configuration used when no zenc.toml is present.
func Default() Config {
	return Config{
		Analysis: AnalysisConfig{StrictUnknownCopy: false},
		Output:   OutputConfig{Color: "auto", MaxDiagnostics: 100},
	}
}

// Load reads and decodes the zenc.toml at path. A missing file is not an
// error: Default() is returned instead, matching the convention that
// project configuration is optional.
func Load(path string) (Config, error) {
	cfg := Default()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("decode %s: %w", path, err)
	}
	return cfg, nil
}
