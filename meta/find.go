package meta

import (
	"sync/atomic"

	"github.com/coregx/regexvm/prefilter"
)

// IsMatch reports whether the pattern matches anywhere in haystack.
func (e *Engine) IsMatch(haystack []byte) bool {
	return e.searchSlots(haystack, 0, false) != nil
}

// FindIndex returns the leftmost match as [start, end) byte offsets,
// or nil if there is no match.
func (e *Engine) FindIndex(haystack []byte) []int {
	return e.FindIndexAt(haystack, 0)
}

// FindIndexAt returns the leftmost match beginning at or after byte
// offset at, or nil.
func (e *Engine) FindIndexAt(haystack []byte, at int) []int {
	slots := e.searchSlots(haystack, at, false)
	if slots == nil {
		return nil
	}
	return slots[:2]
}

// FindSubmatchIndex returns the leftmost match with one [start, end)
// pair per capture group: pair 0 is the whole match, pair k is group k,
// -1/-1 for groups that did not participate. Returns nil on no match.
func (e *Engine) FindSubmatchIndex(haystack []byte) []int {
	return e.FindSubmatchIndexAt(haystack, 0)
}

// FindSubmatchIndexAt is FindSubmatchIndex starting at byte offset at.
func (e *Engine) FindSubmatchIndexAt(haystack []byte, at int) []int {
	return e.searchSlots(haystack, at, true)
}

// searchSlots is the routing core behind every search entry point. It
// picks the cheapest applicable engine and returns capture slots (just
// the bounds pair when needCaps is false and the literal path answers),
// or nil on no match.
func (e *Engine) searchSlots(haystack []byte, at int, needCaps bool) []int {
	if at < 0 || at > len(haystack) {
		return nil
	}

	if e.canUseLiteral(needCaps) {
		atomic.AddUint64(&e.stats.LiteralSearches, 1)
		start, end := e.pf.(prefilter.MatchFinder).FindMatch(haystack, at)
		if start < 0 {
			return nil
		}
		return []int{start, end}
	}

	st := e.getState()
	defer e.putState(st)

	if e.pf != nil {
		return e.searchWithPrefilter(haystack, at, st)
	}
	return e.run(haystack, at, false, st)
}

// searchWithPrefilter alternates literal scanning and anchored engine
// verification. Every match starts with one of the extracted literals,
// so verifying exactly at each candidate preserves leftmost semantics:
// candidates arrive in position order and the first to verify is the
// leftmost match.
func (e *Engine) searchWithPrefilter(haystack []byte, at int, st *searchState) []int {
	pos := at
	for {
		cand := e.pf.Find(haystack, pos)
		if cand < 0 {
			atomic.AddUint64(&e.stats.PrefilterMisses, 1)
			return nil
		}
		if slots := e.run(haystack, cand, true, st); slots != nil {
			atomic.AddUint64(&e.stats.PrefilterHits, 1)
			return slots
		}
		if cand >= len(haystack) {
			return nil
		}
		pos = cand + 1
	}
}

// run executes one engine search, routing by input size and semantics.
func (e *Engine) run(haystack []byte, at int, anchored bool, st *searchState) []int {
	if e.canUseBacktrack(len(haystack)) {
		atomic.AddUint64(&e.stats.BacktrackSearches, 1)
		return st.back.Search(haystack, at, anchored)
	}
	atomic.AddUint64(&e.stats.PikeVMSearches, 1)
	return e.pike.Search(haystack, at, anchored, e.config.Longest, &st.pike)
}
