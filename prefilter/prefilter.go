// Package prefilter turns extracted literal prefixes into fast
// candidate scanners.
//
// A prefilter finds positions where a match could start, so the engine
// only has to verify at those positions instead of simulating from
// every byte. Candidates are a superset of real match starts: every
// match start is reported, and each report may still fail verification.
//
// The builder picks a strategy from the shape of the literal sequence:
//
//   - one single-byte literal: byte scan
//   - one longer literal: substring scan
//   - several literals with a common prefix: substring scan on the prefix
//   - several same-length literals: Aho-Corasick automaton
//
// Prefilters are immutable after construction and safe for concurrent
// use.
package prefilter

import (
	"bytes"

	"github.com/coregx/ahocorasick"

	"github.com/coregx/regexvm/literal"
)

// Prefilter reports candidate match-start positions.
type Prefilter interface {
	// Find returns the first candidate position at or after start, or
	// -1 when no candidate remains. Every true match start at or after
	// start is at or after the returned position; in particular the
	// scan never skips over one.
	Find(haystack []byte, start int) int

	// IsComplete reports whether a candidate is a guaranteed match:
	// the literal set is the program's entire match language, so the
	// engine verification step can be skipped.
	IsComplete() bool
}

// MatchFinder is implemented by prefilters that know where their
// candidate ends, not just where it starts. For complete prefilters
// this yields the full match span without running an engine.
type MatchFinder interface {
	FindMatch(haystack []byte, start int) (int, int)
}

// Build selects and constructs a prefilter for the literal sequence,
// or nil when no strategy applies. A nil prefilter means the engine
// scans unaided.
func Build(seq *literal.Seq) Prefilter {
	if seq == nil || seq.IsEmpty() || seq.MinLen() == 0 {
		return nil
	}

	complete := seq.AllComplete()
	lits := seq.Literals()

	if len(lits) == 1 {
		return newSubstring(lits[0].Bytes(), complete)
	}

	// Several literals of one length preserve start order in an
	// Aho-Corasick scan: the leftmost occurrence end is the leftmost
	// occurrence start.
	if seq.SameLength() {
		if pf, err := newAhoCorasick(lits, complete); err == nil {
			return pf
		}
	}

	// Fall back to the longest common prefix. Incomplete by
	// construction: the prefix alone proves nothing about the rest.
	if lcp := seq.LongestCommonPrefix(); len(lcp) > 0 {
		return newSubstring(lcp, false)
	}
	return nil
}

// substring scans for one literal. Single-byte needles take the
// dedicated byte-scan path inside the bytes package.
type substring struct {
	needle   []byte
	complete bool
}

func newSubstring(needle []byte, complete bool) *substring {
	return &substring{needle: needle, complete: complete}
}

func (s *substring) Find(haystack []byte, start int) int {
	if start > len(haystack) {
		return -1
	}
	var i int
	if len(s.needle) == 1 {
		i = bytes.IndexByte(haystack[start:], s.needle[0])
	} else {
		i = bytes.Index(haystack[start:], s.needle)
	}
	if i < 0 {
		return -1
	}
	return start + i
}

func (s *substring) IsComplete() bool { return s.complete }

func (s *substring) FindMatch(haystack []byte, start int) (int, int) {
	pos := s.Find(haystack, start)
	if pos < 0 {
		return -1, -1
	}
	return pos, pos + len(s.needle)
}

// ahoCorasick scans for many literals at once with an automaton. Only
// built for same-length literal sets, where the automaton's
// leftmost-match guarantee transfers to match starts.
type ahoCorasickPrefilter struct {
	auto     *ahocorasick.Automaton
	complete bool
}

func newAhoCorasick(lits []literal.Literal, complete bool) (*ahoCorasickPrefilter, error) {
	builder := ahocorasick.NewBuilder()
	for _, l := range lits {
		builder.AddPattern(l.Bytes())
	}
	auto, err := builder.Build()
	if err != nil {
		return nil, err
	}
	return &ahoCorasickPrefilter{auto: auto, complete: complete}, nil
}

func (a *ahoCorasickPrefilter) Find(haystack []byte, start int) int {
	if start > len(haystack) {
		return -1
	}
	m := a.auto.Find(haystack, start)
	if m == nil {
		return -1
	}
	return m.Start
}

func (a *ahoCorasickPrefilter) IsComplete() bool { return a.complete }

func (a *ahoCorasickPrefilter) FindMatch(haystack []byte, start int) (int, int) {
	if start > len(haystack) {
		return -1, -1
	}
	m := a.auto.Find(haystack, start)
	if m == nil {
		return -1, -1
	}
	return m.Start, m.End
}
