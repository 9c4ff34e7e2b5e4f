package program

import (
	"errors"
	"regexp/syntax"
	"strings"
	"testing"
)

func mustCompile(t *testing.T, pattern string) *Program {
	t.Helper()
	re, err := syntax.Parse(pattern, syntax.Perl)
	if err != nil {
		t.Fatalf("syntax.Parse(%q): %v", pattern, err)
	}
	p, err := NewCompiler(DefaultConfig()).Compile(re)
	if err != nil {
		t.Fatalf("Compile(%q): %v", pattern, err)
	}
	return p
}

// ops extracts the op sequence of a program for structural assertions.
func ops(p *Program) []Op {
	out := make([]Op, p.Len())
	for i, inst := range p.Insts() {
		out[i] = inst.Op
	}
	return out
}

func TestCompileLayout(t *testing.T) {
	// Every program is save 0 ... save 1, match.
	for _, pattern := range []string{"", "a", "abc", "a|b", "a*", "(a)(b)?"} {
		p := mustCompile(t, pattern)
		insts := p.Insts()
		if insts[0].Op != OpSave || insts[0].Arg != 0 {
			t.Errorf("%q: first inst = %v, want save 0", pattern, insts[0])
		}
		if insts[p.Len()-2].Op != OpSave || insts[p.Len()-2].Arg != 1 {
			t.Errorf("%q: penultimate inst = %v, want save 1", pattern, insts[p.Len()-2])
		}
		if insts[p.Len()-1].Op != OpMatch {
			t.Errorf("%q: last inst = %v, want match", pattern, insts[p.Len()-1])
		}

		matches := 0
		for _, inst := range insts {
			if inst.Op == OpMatch {
				matches++
			}
		}
		if matches != 1 {
			t.Errorf("%q: %d match instructions, want exactly 1", pattern, matches)
		}
	}
}

func TestCompileTargetsValid(t *testing.T) {
	patterns := []string{
		"a", "a|b|c", "a*", "a+?", "a{2,5}", "(a(b)*)+", "[a-z0-9]*", `\bfoo\b`,
		"x{3,}", "(?:ab|cd)+ef",
	}
	for _, pattern := range patterns {
		p := mustCompile(t, pattern)
		n := uint32(p.Len())
		for pc, inst := range p.Insts() {
			switch inst.Op {
			case OpJump, OpChar, OpSave, OpAssert:
				if inst.Out >= n {
					t.Errorf("%q: inst %d (%v) target out of range", pattern, pc, inst)
				}
			case OpSplit:
				if inst.Out >= n || inst.Arg >= n {
					t.Errorf("%q: inst %d (%v) target out of range", pattern, pc, inst)
				}
			}
		}
	}
}

func TestCompileAlternatePriority(t *testing.T) {
	// split's first operand must lead to the first alternative.
	p := mustCompile(t, "a|b")
	insts := p.Insts()
	if insts[1].Op != OpSplit {
		t.Fatalf("inst 1 = %v, want split", insts[1])
	}
	first := insts[insts[1].Out]
	if first.Op != OpChar || !first.Set.Contains('a') {
		t.Errorf("high-priority branch is %v, want char [a]", first)
	}
	second := insts[insts[1].Arg]
	if second.Op != OpChar || !second.Set.Contains('b') {
		t.Errorf("low-priority branch is %v, want char [b]", second)
	}
}

func TestCompileStarGreediness(t *testing.T) {
	greedy := mustCompile(t, "a*")
	lazy := mustCompile(t, "a*?")

	g := greedy.Insts()[1]
	l := lazy.Insts()[1]
	if g.Op != OpSplit || l.Op != OpSplit {
		t.Fatalf("inst 1 ops = %v, %v, want split", g.Op, l.Op)
	}
	// Greedy prefers the body; non-greedy prefers the exit.
	if greedy.Insts()[g.Out].Op != OpChar {
		t.Errorf("greedy star: high-priority branch = %v, want char", greedy.Insts()[g.Out])
	}
	if lazy.Insts()[l.Out].Op == OpChar {
		t.Errorf("lazy star: high-priority branch enters the body")
	}
}

func TestCompileRepeatUnrolls(t *testing.T) {
	p := mustCompile(t, "a{3}")
	chars := 0
	for _, inst := range p.Insts() {
		if inst.Op == OpChar {
			chars++
		}
	}
	if chars != 3 {
		t.Errorf("a{3} compiled to %d char instructions, want 3", chars)
	}

	// a{2,4}: two mandatory plus two optional copies.
	p = mustCompile(t, "a{2,4}")
	chars, splits := 0, 0
	for _, inst := range p.Insts() {
		switch inst.Op {
		case OpChar:
			chars++
		case OpSplit:
			splits++
		}
	}
	if chars != 4 || splits != 2 {
		t.Errorf("a{2,4} compiled to %d chars, %d splits, want 4 and 2", chars, splits)
	}
}

func TestCompileCaptures(t *testing.T) {
	p := mustCompile(t, `(a)(?P<word>b)?`)
	if p.NumCaptures() != 3 {
		t.Fatalf("NumCaptures = %d, want 3", p.NumCaptures())
	}
	if p.SlotCount() != 6 {
		t.Fatalf("SlotCount = %d, want 6", p.SlotCount())
	}
	names := p.SubexpNames()
	want := []string{"", "", "word"}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("SubexpNames[%d] = %q, want %q", i, names[i], want[i])
		}
	}
}

func TestCompileSizeLimit(t *testing.T) {
	// A pathological bound like a{1000000000} must fail with
	// ErrSizeLimit instead of allocating a billion instructions. The
	// parser rejects such counts, so build the tree directly.
	re := &syntax.Regexp{
		Op:  syntax.OpRepeat,
		Min: 1000000000,
		Max: 1000000000,
		Sub: []*syntax.Regexp{{Op: syntax.OpLiteral, Rune: []rune{'a'}}},
	}

	_, err := NewCompiler(DefaultConfig()).Compile(re)
	if !errors.Is(err, ErrSizeLimit) {
		t.Fatalf("Compile(a{1e9}) error = %v, want ErrSizeLimit", err)
	}
}

func TestCompileSizeLimitNested(t *testing.T) {
	// Multiplicative blow-up through nesting: (a{100}){100} with a tiny
	// limit.
	inner := &syntax.Regexp{
		Op:  syntax.OpRepeat,
		Min: 100, Max: 100,
		Sub: []*syntax.Regexp{{Op: syntax.OpLiteral, Rune: []rune{'a'}}},
	}
	outer := &syntax.Regexp{
		Op:  syntax.OpRepeat,
		Min: 100, Max: 100,
		Sub: []*syntax.Regexp{inner},
	}

	_, err := NewCompiler(Config{SizeLimit: 500}).Compile(outer)
	if !errors.Is(err, ErrSizeLimit) {
		t.Fatalf("error = %v, want ErrSizeLimit", err)
	}
}

func TestCompileInvalidCapture(t *testing.T) {
	re := &syntax.Regexp{
		Op:  syntax.OpCapture,
		Cap: 0, // never assigned by a parser
		Sub: []*syntax.Regexp{{Op: syntax.OpLiteral, Rune: []rune{'a'}}},
	}
	_, err := NewCompiler(DefaultConfig()).Compile(re)
	if !errors.Is(err, ErrInvalidCapture) {
		t.Fatalf("error = %v, want ErrInvalidCapture", err)
	}
}

func TestCompileFoldCase(t *testing.T) {
	re, err := syntax.Parse("(?i)abc", syntax.Perl)
	if err != nil {
		t.Fatal(err)
	}
	p, err := NewCompiler(DefaultConfig()).Compile(re)
	if err != nil {
		t.Fatal(err)
	}
	// Every char instruction must accept both cases.
	for _, inst := range p.Insts() {
		if inst.Op != OpChar {
			continue
		}
		var lower, upper bool
		for _, rr := range inst.Set.Ranges() {
			for r := rr.Lo; r <= rr.Hi; r++ {
				if r >= 'a' && r <= 'z' {
					lower = true
				}
				if r >= 'A' && r <= 'Z' {
					upper = true
				}
			}
		}
		if !lower || !upper {
			t.Errorf("case-insensitive char set %v misses a case", inst.Set)
		}
	}
}

func TestDetectAnchors(t *testing.T) {
	tests := []struct {
		pattern    string
		start, end bool
	}{
		{"abc", false, false},
		{"^abc", true, false},
		{"abc$", false, true},
		{"^abc$", true, true},
		{"a^b", false, false},
	}
	for _, tt := range tests {
		p := mustCompile(t, tt.pattern)
		if p.AnchoredStart() != tt.start || p.AnchoredEnd() != tt.end {
			t.Errorf("%q: anchors = (%v, %v), want (%v, %v)",
				tt.pattern, p.AnchoredStart(), p.AnchoredEnd(), tt.start, tt.end)
		}
	}
}

func TestProgramDump(t *testing.T) {
	p := mustCompile(t, "a|b")
	dump := p.Dump()
	for _, want := range []string{"save 0", "split", "match"} {
		if !strings.Contains(dump, want) {
			t.Errorf("Dump missing %q:\n%s", want, dump)
		}
	}
	if got := len(strings.Split(strings.TrimSpace(dump), "\n")); got != p.Len() {
		t.Errorf("Dump has %d lines, want %d", got, p.Len())
	}
}
