package vm

import (
	"strings"
	"testing"
)

func backtrackSearch(t *testing.T, pattern, haystack string) []int {
	t.Helper()
	b := NewBoundedBacktracker(compile(t, pattern), 0)
	if !b.CanSearch(len(haystack)) {
		t.Fatalf("CanSearch(%d) = false for %q", len(haystack), pattern)
	}
	return b.Search([]byte(haystack), 0, false)
}

func TestBacktrackerFind(t *testing.T) {
	tests := []struct {
		pattern  string
		haystack string
		want     []int
	}{
		{`a*`, "aaab", []int{0, 3}},
		{`a+`, "bbaaab", []int{2, 5}},
		{`[0-9]+`, "x123y", []int{1, 4}},
		{`a|ab`, "ab", []int{0, 1}},
		{`ab|a`, "ab", []int{0, 2}},
		{`a*?`, "aaa", []int{0, 0}},
		{`^abc$`, "abc", []int{0, 3}},
		{`^abc$`, "xabc", nil},
		{`\bfoo\b`, "a foo b", []int{2, 5}},
		{`世界`, "你好世界", []int{6, 12}},
		{`abc`, "ab", nil},
	}
	for _, tt := range tests {
		got := backtrackSearch(t, tt.pattern, tt.haystack)
		if !equalSlots2(got, tt.want) {
			t.Errorf("Search(%q, %q) = %v, want %v", tt.pattern, tt.haystack, got, tt.want)
		}
	}
}

func TestBacktrackerCaptures(t *testing.T) {
	got := backtrackSearch(t, `(a)(b)?`, "a")
	want := []int{0, 1, 0, 1, -1, -1}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Search = %v, want %v", got, want)
		}
	}
}

func TestBacktrackerAnchored(t *testing.T) {
	b := NewBoundedBacktracker(compile(t, `[0-9]+`), 0)
	h := []byte("x123y")
	if got := b.Search(h, 0, true); got != nil {
		t.Errorf("anchored at 0 = %v, want nil", got)
	}
	if got := b.Search(h, 1, true); !equalSlots2(got, []int{1, 4}) {
		t.Errorf("anchored at 1 = %v, want [1 4]", got)
	}
}

func TestBacktrackerBudget(t *testing.T) {
	p := compile(t, `a{10}`)
	b := NewBoundedBacktracker(p, p.Len()*101)
	if !b.CanSearch(100) {
		t.Error("CanSearch(100) = false within budget")
	}
	if b.CanSearch(101) {
		t.Error("CanSearch(101) = true beyond budget")
	}
}

func TestBacktrackerMemoization(t *testing.T) {
	// a?^n a^n against a^n is exponential for a naive backtracker; the
	// visited bitmap reduces it to one visit per (inst, position) pair.
	const n = 20
	pattern := strings.Repeat("a?", n) + strings.Repeat("a", n)
	haystack := strings.Repeat("a", n)

	got := backtrackSearch(t, pattern, haystack)
	if !equalSlots2(got, []int{0, n}) {
		t.Errorf("Search = %v, want [0 %d]", got, n)
	}
}

func TestBacktrackerEmptyLoop(t *testing.T) {
	// The visited set also breaks zero-width loops.
	if got := backtrackSearch(t, `(?:a*)*`, "b"); !equalSlots2(got, []int{0, 0}) {
		t.Errorf("Search((?:a*)*, b) = %v, want [0 0]", got)
	}
}

func TestBacktrackerReuse(t *testing.T) {
	b := NewBoundedBacktracker(compile(t, `a+b`), 0)
	for i := 0; i < 10; i++ {
		if got := b.Search([]byte("xxaab"), 0, false); !equalSlots2(got, []int{2, 5}) {
			t.Fatalf("iteration %d: Search = %v, want [2 5]", i, got)
		}
		if b.Search([]byte("xxx"), 0, false) != nil {
			t.Fatalf("iteration %d: match on non-matching input", i)
		}
	}
}
