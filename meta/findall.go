package meta

import "unicode/utf8"

// FindAllIndex returns the bounds of up to n successive non-overlapping
// matches, or nil if there are none. n < 0 means all matches.
//
// Iteration follows the standard library's convention: after each match
// the scan resumes at its end, an empty match immediately after a
// previous match is skipped, and an empty match otherwise advances the
// scan by one rune.
func (e *Engine) FindAllIndex(haystack []byte, n int) [][]int {
	var out [][]int
	e.allMatches(haystack, n, false, func(slots []int) {
		out = append(out, []int{slots[0], slots[1]})
	})
	return out
}

// FindAllSubmatchIndex returns the capture slots of up to n successive
// non-overlapping matches, or nil if there are none. n < 0 means all
// matches.
func (e *Engine) FindAllSubmatchIndex(haystack []byte, n int) [][]int {
	var out [][]int
	e.allMatches(haystack, n, true, func(slots []int) {
		cp := make([]int, len(slots))
		copy(cp, slots)
		out = append(out, cp)
	})
	return out
}

func (e *Engine) allMatches(haystack []byte, n int, needCaps bool, deliver func([]int)) {
	if n < 0 {
		n = len(haystack) + 1
	}
	pos, prevMatchEnd := 0, -1
	for i := 0; i < n && pos <= len(haystack); {
		slots := e.searchSlots(haystack, pos, needCaps)
		if slots == nil {
			break
		}

		accept := true
		if slots[0] == slots[1] {
			// Empty match: skip it when it sits exactly where the
			// previous match ended, and advance by one rune either way.
			if slots[0] == prevMatchEnd {
				accept = false
			}
			if slots[1] < len(haystack) {
				_, width := utf8.DecodeRune(haystack[slots[1]:])
				pos = slots[1] + width
			} else {
				pos = slots[1] + 1
			}
		} else {
			pos = slots[1]
		}
		prevMatchEnd = slots[1]

		if accept {
			deliver(slots)
			i++
		}
	}
}
