// Package literal extracts literal prefixes from compiled programs.
//
// A prefix sequence over-approximates the set of match starts: every
// match of the program begins with one of the extracted literals. The
// prefilter layer turns such sequences into fast candidate scanners,
// and when every literal is complete (reaches the match instruction on
// its own) the sequence can answer searches outright with no engine
// verification at all.
package literal

import (
	"bytes"
	"fmt"
	"strings"
)

// Literal is a single extracted byte string.
type Literal struct {
	bytes    []byte
	complete bool
}

// NewLiteral creates a literal. complete marks a literal that is an
// entire match by itself rather than a proper prefix of one.
func NewLiteral(b []byte, complete bool) Literal {
	return Literal{bytes: b, complete: complete}
}

// Bytes returns the literal's byte string. Callers must not modify it.
func (l Literal) Bytes() []byte { return l.bytes }

// Len returns the literal's length in bytes.
func (l Literal) Len() int { return len(l.bytes) }

// IsComplete reports whether the literal is an entire match on its own.
func (l Literal) IsComplete() bool { return l.complete }

// String returns the literal with a "!" suffix when incomplete,
// for debugging.
func (l Literal) String() string {
	if l.complete {
		return fmt.Sprintf("%q", l.bytes)
	}
	return fmt.Sprintf("%q!", l.bytes)
}

// Seq is an ordered sequence of literals. Order follows the program's
// alternation priority, so under leftmost-first semantics an earlier
// literal beats a later one at the same position.
type Seq struct {
	lits []Literal
}

// NewSeq creates a sequence from the given literals.
func NewSeq(lits ...Literal) *Seq {
	return &Seq{lits: lits}
}

// Len returns the number of literals.
func (s *Seq) Len() int { return len(s.lits) }

// IsEmpty reports whether the sequence has no literals. An empty
// sequence carries no information: matches may start anywhere.
func (s *Seq) IsEmpty() bool { return len(s.lits) == 0 }

// Literals returns the underlying literals. Callers must not modify
// the returned slice.
func (s *Seq) Literals() []Literal { return s.lits }

// AllComplete reports whether every literal in the sequence is
// complete, meaning the sequence is the exact match language of the
// program rather than a prefix over-approximation.
func (s *Seq) AllComplete() bool {
	if len(s.lits) == 0 {
		return false
	}
	for _, l := range s.lits {
		if !l.complete {
			return false
		}
	}
	return true
}

// MinLen returns the length of the shortest literal, or 0 for an empty
// sequence.
func (s *Seq) MinLen() int {
	if len(s.lits) == 0 {
		return 0
	}
	min := s.lits[0].Len()
	for _, l := range s.lits[1:] {
		if l.Len() < min {
			min = l.Len()
		}
	}
	return min
}

// SameLength reports whether all literals share one length.
func (s *Seq) SameLength() bool {
	if len(s.lits) == 0 {
		return false
	}
	n := s.lits[0].Len()
	for _, l := range s.lits[1:] {
		if l.Len() != n {
			return false
		}
	}
	return true
}

// LongestCommonPrefix returns the longest byte prefix shared by every
// literal in the sequence, or nil for an empty sequence.
func (s *Seq) LongestCommonPrefix() []byte {
	if len(s.lits) == 0 {
		return nil
	}
	prefix := s.lits[0].bytes
	for _, l := range s.lits[1:] {
		prefix = commonPrefix(prefix, l.bytes)
		if len(prefix) == 0 {
			return nil
		}
	}
	return prefix
}

func commonPrefix(a, b []byte) []byte {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	i := 0
	for i < n && a[i] == b[i] {
		i++
	}
	return a[:i]
}

// Dedup removes duplicate literals, keeping the first (highest
// priority) occurrence of each. A duplicate that is complete in one
// occurrence and incomplete in another stays incomplete: completeness
// only holds if every path agrees.
func (s *Seq) Dedup() {
	out := s.lits[:0]
	for _, l := range s.lits {
		dup := false
		for i := range out {
			if bytes.Equal(out[i].bytes, l.bytes) {
				if !l.complete {
					out[i].complete = false
				}
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, l)
		}
	}
	s.lits = out
}

// String returns the sequence in debug form.
func (s *Seq) String() string {
	if s.IsEmpty() {
		return "Seq[]"
	}
	var sb strings.Builder
	sb.WriteString("Seq[")
	for i, l := range s.lits {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(l.String())
	}
	sb.WriteString("]")
	return sb.String()
}
