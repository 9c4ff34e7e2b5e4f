// Package meta orchestrates the execution engines behind a single
// search API.
//
// The meta engine compiles a pattern once into an instruction program,
// extracts literal prefixes, builds a prefilter when the literals merit
// one, and then routes every search to the cheapest engine that can
// answer it correctly:
//
//   - complete literal sets answer directly from the literal scan
//   - small program/input products run the bounded backtracker
//   - everything else runs the Pike VM
//
// The routing is invisible to callers: every engine implements the same
// leftmost match semantics, so results are identical whichever one runs.
package meta

import (
	"github.com/coregx/regexvm/program"
	"github.com/coregx/regexvm/vm"
)

// Config controls compilation and engine routing.
//
// Example:
//
//	config := meta.DefaultConfig()
//	config.Longest = true
//	engine, err := meta.CompileWithConfig(`a|ab`, config)
type Config struct {
	// Longest selects leftmost-longest match semantics, like POSIX
	// tools, instead of the default leftmost-first semantics. Under
	// longest semantics the greediness of operators has no effect on
	// the overall match.
	// Default: false
	Longest bool

	// CaseInsensitive makes the whole pattern case-insensitive, as if
	// it began with (?i).
	// Default: false
	CaseInsensitive bool

	// SizeLimit caps the compiled program's instruction count.
	// Compilation fails once the limit is crossed, so pathological
	// repetition counts are rejected without unbounded allocation.
	// Default: program.DefaultSizeLimit
	SizeLimit int

	// EnablePrefilter enables literal-based candidate scanning. When
	// false the engines scan unaided even when good literals exist.
	// Results are identical either way.
	// Default: true
	EnablePrefilter bool

	// MaxBacktrackBits caps the bounded backtracker's visited bitmap,
	// in bits. Searches whose program-size × input-length product
	// exceeds the cap run on the Pike VM instead.
	// Default: vm.DefaultVisitedBudget
	MaxBacktrackBits int
}

// DefaultConfig returns a configuration with sensible defaults:
// leftmost-first semantics, prefilter enabled, and limits that keep
// per-pattern memory in the low hundreds of kilobytes.
func DefaultConfig() Config {
	return Config{
		SizeLimit:        program.DefaultSizeLimit,
		EnablePrefilter:  true,
		MaxBacktrackBits: vm.DefaultVisitedBudget,
	}
}

// Validate checks that every parameter is in range.
//
// Valid ranges:
//   - SizeLimit: 1 to 10,000,000 instructions
//   - MaxBacktrackBits: 64 to 1<<31 bits
func (c Config) Validate() error {
	if c.SizeLimit < 1 || c.SizeLimit > 10_000_000 {
		return &ConfigError{
			Field:   "SizeLimit",
			Message: "must be between 1 and 10,000,000",
		}
	}
	if c.MaxBacktrackBits < 64 || c.MaxBacktrackBits > 1<<31 {
		return &ConfigError{
			Field:   "MaxBacktrackBits",
			Message: "must be between 64 and 1<<31",
		}
	}
	return nil
}

// ConfigError represents an invalid configuration parameter.
type ConfigError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	return "regexvm: invalid config: " + e.Field + ": " + e.Message
}
