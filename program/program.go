// Package program defines the compiled form of a regular expression: a
// flat sequence of NFA instructions plus the character-class tables they
// reference, and the compiler that lowers regexp/syntax trees into it.
//
// A Program is immutable once built and safe for concurrent read-only
// use; the matching engines in package vm keep all mutable search state
// per call. Instruction addresses are plain indices into the sequence,
// so cyclic constructs (unbounded repetition) are back-edges in index
// space rather than linked nodes.
package program

import (
	"fmt"
	"strings"
)

// Program is a compiled regular expression.
//
// The instruction layout is always:
//
//	0:        save 0            ; start of group 0
//	1..n-3:   compiled pattern
//	n-2:      save 1            ; end of group 0
//	n-1:      match
//
// Execution starts at address 0. Exactly one OpMatch instruction exists.
type Program struct {
	insts         []Inst
	numCap        int
	names         []string
	anchoredStart bool
	anchoredEnd   bool
}

// Len returns the number of instructions.
func (p *Program) Len() int {
	return len(p.insts)
}

// Inst returns the instruction at address pc.
func (p *Program) Inst(pc uint32) *Inst {
	return &p.insts[pc]
}

// Insts returns the full instruction sequence. The slice must not be
// modified.
func (p *Program) Insts() []Inst {
	return p.insts
}

// NumCaptures returns the number of capture groups, including group 0
// (the whole match). A program has 2*NumCaptures capture slots.
func (p *Program) NumCaptures() int {
	return p.numCap
}

// SlotCount returns the number of capture slots (two per group).
func (p *Program) SlotCount() int {
	return 2 * p.numCap
}

// SubexpNames returns the names of the capture groups. Index 0 is always
// the empty string; unnamed groups are empty strings. The result is a
// copy.
func (p *Program) SubexpNames() []string {
	names := make([]string, len(p.names))
	copy(names, p.names)
	return names
}

// AnchoredStart reports whether every match must begin at offset 0
// (the pattern starts with \A).
func (p *Program) AnchoredStart() bool {
	return p.anchoredStart
}

// AnchoredEnd reports whether every match must end at the end of input
// (the pattern ends with \z).
func (p *Program) AnchoredEnd() bool {
	return p.anchoredEnd
}

// Dump returns a multi-line disassembly of the program. This is the
// inspection surface for tooling that generates specialized matchers
// from a compiled program.
func (p *Program) Dump() string {
	var b strings.Builder
	for pc, inst := range p.insts {
		fmt.Fprintf(&b, "%04d %s\n", pc, inst.String())
	}
	return b.String()
}

// String returns a one-line summary.
func (p *Program) String() string {
	return fmt.Sprintf("program{insts: %d, captures: %d, anchoredStart: %v, anchoredEnd: %v}",
		len(p.insts), p.numCap, p.anchoredStart, p.anchoredEnd)
}

// detectAnchors records whether the program is anchored at either end.
// The compiler emits save 0 first and "save 1; match" last, so the
// instruction after the leading save and the instruction before the
// trailing save are inspected.
func (p *Program) detectAnchors() {
	if len(p.insts) >= 3 {
		if i := p.insts[1]; i.Op == OpAssert && AssertKind(i.Arg) == AssertBeginText {
			p.anchoredStart = true
		}
		if i := p.insts[len(p.insts)-3]; i.Op == OpAssert && AssertKind(i.Arg) == AssertEndText {
			p.anchoredEnd = true
		}
	}
}
