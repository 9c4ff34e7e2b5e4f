package vm

import (
	"unicode/utf8"

	"github.com/coregx/regexvm/program"
)

// DefaultVisitedBudget is the default cap, in bits, on the backtracker's
// visited bitmap. 256 KB of bitmap covers program-size × input-length
// products up to about two million states.
const DefaultVisitedBudget = 256 * 1024 * 8

// BoundedBacktracker runs a program by explicit depth-first
// backtracking, memoizing every (instruction, position) pair it has
// already explored in a bit vector. The memoization caps total work at
// one visit per pair, so the engine stays linear in program-size ×
// input-length even on patterns that send a naive backtracker
// exponential, at the price of a bitmap allocation proportional to that
// product.
//
// The backtracker implements leftmost-first semantics only. It refuses
// inputs whose bitmap would exceed its budget; callers check CanSearch
// and fall back to the Pike VM.
//
// A BoundedBacktracker carries its mutable bitmap, so unlike PikeVM it
// must not be shared by concurrent searches.
type BoundedBacktracker struct {
	prog    *program.Program
	maxBits int

	visited []uint64
	input   []byte
	caps    []int
	out     []int
}

// NewBoundedBacktracker creates a backtracker for the given program.
// maxBits caps the visited bitmap size in bits; values <= 0 select
// DefaultVisitedBudget.
func NewBoundedBacktracker(p *program.Program, maxBits int) *BoundedBacktracker {
	if maxBits <= 0 {
		maxBits = DefaultVisitedBudget
	}
	return &BoundedBacktracker{
		prog:    p,
		maxBits: maxBits,
		caps:    make([]int, p.SlotCount()),
		out:     make([]int, p.SlotCount()),
	}
}

// CanSearch reports whether an input of the given length fits the
// visited-bitmap budget.
func (b *BoundedBacktracker) CanSearch(inputLen int) bool {
	return b.bits(inputLen) <= b.maxBits
}

// bits returns the bitmap size needed for an input of the given length:
// one bit per (instruction, position) pair, positions 0..inputLen
// inclusive.
func (b *BoundedBacktracker) bits(inputLen int) int {
	return b.prog.Len() * (inputLen + 1)
}

// Search runs the program over haystack beginning at byte offset at,
// with leftmost-first semantics. When anchored is true the match must
// start exactly at the offset. It returns the capture slots on success
// and nil on no match, like PikeVM.Search.
//
// Callers must ensure CanSearch(len(haystack)) holds.
func (b *BoundedBacktracker) Search(haystack []byte, at int, anchored bool) []int {
	if at < 0 || at > len(haystack) {
		return nil
	}

	words := (b.bits(len(haystack)) + 63) / 64
	if cap(b.visited) < words {
		b.visited = make([]uint64, words)
	} else {
		b.visited = b.visited[:words]
		clear(b.visited)
	}
	b.input = haystack
	for i := range b.caps {
		b.caps[i] = -1
	}

	// The bitmap persists across start offsets: whether a match exists
	// from (pc, pos) does not depend on how the position was reached.
	pos := at
	for {
		if b.try(0, pos) {
			out := make([]int, len(b.out))
			copy(out, b.out)
			return out
		}
		if anchored || pos >= len(haystack) {
			return nil
		}
		_, width := utf8.DecodeRune(haystack[pos:])
		pos += width
	}
}

// IsMatch reports whether the program matches anywhere in haystack at
// or after the given offset.
func (b *BoundedBacktracker) IsMatch(haystack []byte, at int) bool {
	return b.Search(haystack, at, false) != nil
}

// try explores the program depth-first from (pc, pos). Alternation
// order follows split operand order, so the first success is the
// leftmost-first match.
func (b *BoundedBacktracker) try(pc uint32, pos int) bool {
	if !b.visit(pc, pos) {
		return false
	}
	inst := b.prog.Inst(pc)
	switch inst.Op {
	case program.OpMatch:
		copy(b.out, b.caps)
		return true

	case program.OpChar:
		if pos >= len(b.input) {
			return false
		}
		r, width := utf8.DecodeRune(b.input[pos:])
		if !inst.Set.Contains(r) {
			return false
		}
		return b.try(inst.Out, pos+width)

	case program.OpJump:
		return b.try(inst.Out, pos)

	case program.OpSplit:
		if b.try(inst.Out, pos) {
			return true
		}
		return b.try(inst.Arg, pos)

	case program.OpSave:
		slot := int(inst.Arg)
		if slot >= len(b.caps) {
			return b.try(inst.Out, pos)
		}
		old := b.caps[slot]
		b.caps[slot] = pos
		if b.try(inst.Out, pos) {
			return true
		}
		b.caps[slot] = old
		return false

	case program.OpAssert:
		if !program.AssertKind(inst.Arg).Holds(b.input, pos) {
			return false
		}
		return b.try(inst.Out, pos)
	}
	return false
}

// visit marks (pc, pos) in the bitmap, reporting false if it was
// already explored. A previously explored pair cannot match: match
// existence from a state depends only on the state, never on the
// capture path that reached it.
func (b *BoundedBacktracker) visit(pc uint32, pos int) bool {
	idx := int(pc)*(len(b.input)+1) + pos
	word, bit := idx/64, uint(idx%64)
	if b.visited[word]&(1<<bit) != 0 {
		return false
	}
	b.visited[word] |= 1 << bit
	return true
}
