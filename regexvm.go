// Package regexvm is a regular expression engine built on an explicit
// instruction program and multiple interchangeable execution engines.
//
// Patterns use the same syntax as the standard library's regexp package
// and match with the same leftmost-first semantics by default; an
// engine can be compiled for leftmost-longest semantics instead. Under
// the hood each search routes to the cheapest engine that can answer
// it: a literal scanner, a bounded backtracker, or a Pike VM with
// guaranteed linear-time matching.
//
// A compiled Regex is safe for concurrent use by multiple goroutines.
//
// Example:
//
//	re := regexvm.MustCompile(`(\w+)@(\w+)`)
//	re.FindStringSubmatch("mail admin@example today")
//	// ["admin@example", "admin", "example"]
package regexvm

import (
	"strconv"

	"github.com/coregx/regexvm/meta"
)

// Config controls compilation; see meta.Config for the fields.
type Config = meta.Config

// DefaultConfig returns the default compilation configuration.
func DefaultConfig() Config {
	return meta.DefaultConfig()
}

// Regex is a compiled regular expression.
type Regex struct {
	engine *meta.Engine
}

// Compile parses a pattern and compiles it for searching with the
// default configuration.
func Compile(pattern string) (*Regex, error) {
	return CompileWithConfig(pattern, DefaultConfig())
}

// CompileWithConfig compiles a pattern with an explicit configuration.
func CompileWithConfig(pattern string, config Config) (*Regex, error) {
	engine, err := meta.CompileWithConfig(pattern, config)
	if err != nil {
		return nil, err
	}
	return &Regex{engine: engine}, nil
}

// MustCompile is Compile but panics on error, for initializing package
// level variables from patterns known to be valid.
func MustCompile(pattern string) *Regex {
	re, err := Compile(pattern)
	if err != nil {
		panic("regexvm: Compile(" + strconv.Quote(pattern) + "): " + err.Error())
	}
	return re
}

// String returns the source pattern.
func (re *Regex) String() string {
	return re.engine.Pattern()
}

// NumSubexp returns the number of capture groups, not counting the
// whole-match group 0.
func (re *Regex) NumSubexp() int {
	return re.engine.Program().NumCaptures() - 1
}

// SubexpNames returns the names of the capture groups, indexed by group
// number. Entry 0 and unnamed groups are empty strings.
func (re *Regex) SubexpNames() []string {
	return re.engine.Program().SubexpNames()
}

// Engine exposes the underlying meta engine, for inspecting routing
// decisions and search statistics.
func (re *Regex) Engine() *meta.Engine {
	return re.engine
}

// Match reports whether the pattern matches anywhere in b.
func (re *Regex) Match(b []byte) bool {
	return re.engine.IsMatch(b)
}

// MatchString reports whether the pattern matches anywhere in s.
func (re *Regex) MatchString(s string) bool {
	return re.engine.IsMatch([]byte(s))
}

// Find returns the leftmost match in b, or nil if there is none. The
// returned slice aliases b.
func (re *Regex) Find(b []byte) []byte {
	loc := re.engine.FindIndex(b)
	if loc == nil {
		return nil
	}
	return b[loc[0]:loc[1]:loc[1]]
}

// FindString returns the leftmost match in s, or "" if there is none.
// A match that is itself empty is indistinguishable from no match; use
// FindStringIndex to tell them apart.
func (re *Regex) FindString(s string) string {
	loc := re.engine.FindIndex([]byte(s))
	if loc == nil {
		return ""
	}
	return s[loc[0]:loc[1]]
}

// FindIndex returns the [start, end) byte offsets of the leftmost
// match in b, or nil.
func (re *Regex) FindIndex(b []byte) []int {
	return re.engine.FindIndex(b)
}

// FindStringIndex returns the [start, end) byte offsets of the
// leftmost match in s, or nil.
func (re *Regex) FindStringIndex(s string) []int {
	return re.engine.FindIndex([]byte(s))
}

// FindIndexAt returns the [start, end) byte offsets of the leftmost
// match beginning at or after byte offset at, or nil.
func (re *Regex) FindIndexAt(b []byte, at int) []int {
	return re.engine.FindIndexAt(b, at)
}

// FindSubmatch returns the leftmost match and its capture groups, or
// nil if there is no match. Entry 0 is the whole match; entry k is
// group k, nil when the group did not participate. Returned slices
// alias b.
func (re *Regex) FindSubmatch(b []byte) [][]byte {
	slots := re.engine.FindSubmatchIndex(b)
	if slots == nil {
		return nil
	}
	out := make([][]byte, len(slots)/2)
	for i := range out {
		if start := slots[2*i]; start >= 0 {
			end := slots[2*i+1]
			out[i] = b[start:end:end]
		}
	}
	return out
}

// FindStringSubmatch is FindSubmatch over a string; non-participating
// groups are empty strings.
func (re *Regex) FindStringSubmatch(s string) []string {
	slots := re.engine.FindSubmatchIndex([]byte(s))
	if slots == nil {
		return nil
	}
	out := make([]string, len(slots)/2)
	for i := range out {
		if start := slots[2*i]; start >= 0 {
			out[i] = s[start:slots[2*i+1]]
		}
	}
	return out
}

// FindSubmatchIndex returns the capture slots of the leftmost match:
// pairs of [start, end) offsets, one per group, -1/-1 for groups that
// did not participate. Returns nil on no match.
func (re *Regex) FindSubmatchIndex(b []byte) []int {
	return re.engine.FindSubmatchIndex(b)
}

// FindStringSubmatchIndex is FindSubmatchIndex over a string.
func (re *Regex) FindStringSubmatchIndex(s string) []int {
	return re.engine.FindSubmatchIndex([]byte(s))
}

// FindAll returns up to n successive non-overlapping matches, or nil
// if there are none. n < 0 means all matches.
func (re *Regex) FindAll(b []byte, n int) [][]byte {
	locs := re.engine.FindAllIndex(b, n)
	if locs == nil {
		return nil
	}
	out := make([][]byte, len(locs))
	for i, loc := range locs {
		out[i] = b[loc[0]:loc[1]:loc[1]]
	}
	return out
}

// FindAllString returns up to n successive non-overlapping matches of
// the pattern in s, or nil if there are none.
func (re *Regex) FindAllString(s string, n int) []string {
	locs := re.engine.FindAllIndex([]byte(s), n)
	if locs == nil {
		return nil
	}
	out := make([]string, len(locs))
	for i, loc := range locs {
		out[i] = s[loc[0]:loc[1]]
	}
	return out
}

// FindAllIndex returns the bounds of up to n successive
// non-overlapping matches, or nil if there are none.
func (re *Regex) FindAllIndex(b []byte, n int) [][]int {
	return re.engine.FindAllIndex(b, n)
}

// FindAllStringIndex returns the bounds of up to n successive
// non-overlapping matches in s, or nil if there are none.
func (re *Regex) FindAllStringIndex(s string, n int) [][]int {
	return re.engine.FindAllIndex([]byte(s), n)
}

// FindAllSubmatchIndex returns the capture slots of up to n successive
// non-overlapping matches, or nil if there are none.
func (re *Regex) FindAllSubmatchIndex(b []byte, n int) [][]int {
	return re.engine.FindAllSubmatchIndex(b, n)
}
