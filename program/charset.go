package program

import (
	"fmt"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

// RuneRange is an inclusive range of Unicode code points.
type RuneRange struct {
	Lo, Hi rune
}

// CharSet is a compact set of code points stored as sorted,
// non-overlapping, non-adjacent ranges.
//
// A CharSet is immutable after construction and shared read-only by the
// instructions that reference it. Membership tests check the first few
// ranges linearly before falling back to binary search, which keeps
// predominantly-ASCII input fast even for large Unicode classes.
type CharSet struct {
	ranges []RuneRange
}

// NewCharSet builds a CharSet from the given ranges. Ranges are sorted,
// merged and empty ranges dropped, so callers may pass them in any order.
func NewCharSet(ranges ...RuneRange) *CharSet {
	rs := make([]RuneRange, 0, len(ranges))
	for _, r := range ranges {
		if r.Lo <= r.Hi {
			rs = append(rs, r)
		}
	}
	sort.Slice(rs, func(i, j int) bool { return rs[i].Lo < rs[j].Lo })

	merged := rs[:0]
	for _, r := range rs {
		if n := len(merged); n > 0 && r.Lo <= merged[n-1].Hi+1 {
			if r.Hi > merged[n-1].Hi {
				merged[n-1].Hi = r.Hi
			}
			continue
		}
		merged = append(merged, r)
	}
	return &CharSet{ranges: merged}
}

// SingleRune returns a set containing exactly r.
func SingleRune(r rune) *CharSet {
	return &CharSet{ranges: []RuneRange{{Lo: r, Hi: r}}}
}

// FoldedRune returns a set containing r and every code point in its
// simple case-folding orbit. This is how case-insensitive matching is
// realized: classes are expanded once at compile time, matching stays
// case-exact at run time.
func FoldedRune(r rune) *CharSet {
	ranges := []RuneRange{{Lo: r, Hi: r}}
	for f := unicode.SimpleFold(r); f != r; f = unicode.SimpleFold(f) {
		ranges = append(ranges, RuneRange{Lo: f, Hi: f})
	}
	return NewCharSet(ranges...)
}

// FromSyntaxClass builds a set from a regexp/syntax character class,
// which stores ranges as a flat [lo1, hi1, lo2, hi2, ...] rune slice.
func FromSyntaxClass(pairs []rune) *CharSet {
	ranges := make([]RuneRange, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		ranges = append(ranges, RuneRange{Lo: pairs[i], Hi: pairs[i+1]})
	}
	return NewCharSet(ranges...)
}

// AnyChar returns the set of all valid code points.
func AnyChar() *CharSet {
	return &CharSet{ranges: []RuneRange{{Lo: 0, Hi: utf8.MaxRune}}}
}

// AnyCharNotNL returns the set of all code points except '\n'.
func AnyCharNotNL() *CharSet {
	return &CharSet{ranges: []RuneRange{
		{Lo: 0, Hi: '\n' - 1},
		{Lo: '\n' + 1, Hi: utf8.MaxRune},
	}}
}

// Contains reports whether r is a member of the set.
func (s *CharSet) Contains(r rune) bool {
	rs := s.ranges
	// Short classes dominate in practice; scan the first few ranges
	// before binary searching.
	n := len(rs)
	if n > 4 {
		n = 4
	}
	for i := 0; i < n; i++ {
		if r < rs[i].Lo {
			return false
		}
		if r <= rs[i].Hi {
			return true
		}
	}
	if len(rs) <= 4 {
		return false
	}
	lo, hi := 4, len(rs)
	for lo < hi {
		mid := (lo + hi) / 2
		switch {
		case r > rs[mid].Hi:
			lo = mid + 1
		case r < rs[mid].Lo:
			hi = mid
		default:
			return true
		}
	}
	return false
}

// IsEmpty reports whether the set matches no code point.
func (s *CharSet) IsEmpty() bool {
	return len(s.ranges) == 0
}

// Ranges returns the underlying sorted ranges. The slice must not be
// modified.
func (s *CharSet) Ranges() []RuneRange {
	return s.ranges
}

// NumRunes returns the total number of code points in the set.
func (s *CharSet) NumRunes() int64 {
	var n int64
	for _, r := range s.ranges {
		n += int64(r.Hi) - int64(r.Lo) + 1
	}
	return n
}

// Single returns the sole member of the set, if the set holds exactly
// one code point.
func (s *CharSet) Single() (rune, bool) {
	if len(s.ranges) == 1 && s.ranges[0].Lo == s.ranges[0].Hi {
		return s.ranges[0].Lo, true
	}
	return 0, false
}

// AppendRunes appends every member of the set to dst, stopping once the
// result would exceed maxRunes. It reports whether the full set fit.
func (s *CharSet) AppendRunes(dst []rune, maxRunes int) ([]rune, bool) {
	for _, rr := range s.ranges {
		for r := rr.Lo; r <= rr.Hi; r++ {
			if len(dst) >= maxRunes {
				return dst, false
			}
			dst = append(dst, r)
		}
	}
	return dst, true
}

// String returns a compact class-like representation for debugging.
func (s *CharSet) String() string {
	var b strings.Builder
	b.WriteByte('[')
	for _, r := range s.ranges {
		if r.Lo == r.Hi {
			fmt.Fprintf(&b, "%q", r.Lo)
		} else {
			fmt.Fprintf(&b, "%q-%q", r.Lo, r.Hi)
		}
	}
	b.WriteByte(']')
	return b.String()
}
