// Package vm provides the matching engines that execute compiled
// instruction programs: a thread-list engine (Pike VM) that guarantees
// linear-time matching, and a bounded backtracker that is faster on
// small program/input combinations.
//
// Both engines implement the same match contract and are interchangeable
// strategies; selection between them is a policy decision made by the
// meta engine, not a type hierarchy. Engines never mutate the shared
// Program; all mutable search state lives in per-call state values.
package vm

import (
	"unicode/utf8"

	"github.com/coregx/regexvm/internal/sparse"
	"github.com/coregx/regexvm/program"
)

// endOfText is the sentinel code point used one past the end of input.
// No OpChar instruction matches it.
const endOfText rune = -1

// PikeVM executes a program by simulating all live NFA threads in
// lockstep, one input position at a time. Work per position is bounded
// by the program length because each instruction address holds at most
// one thread per step, so total running time is O(program size × input
// length) regardless of pattern structure.
//
// A PikeVM is immutable and safe for concurrent use; each concurrent
// search needs its own PikeVMState.
type PikeVM struct {
	prog *program.Program
}

// NewPikeVM creates a PikeVM for the given program.
func NewPikeVM(p *program.Program) *PikeVM {
	return &PikeVM{prog: p}
}

// Program returns the program this VM executes.
func (v *PikeVM) Program() *program.Program {
	return v.prog
}

// PikeVMState holds the mutable per-search state: the current and
// next-step thread lists plus scratch capture slots. States are meant
// to be pooled and reused across searches; a state must not be shared
// by concurrent searches.
type PikeVMState struct {
	clist, nlist *threadList
	seed         []int
	best         []int
	free         [][]int
}

// InitState prepares a state for use with this VM. It must be called
// once before the first search and again if the state is moved to a VM
// with a different program.
func (v *PikeVM) InitState(st *PikeVMState) {
	n := v.prog.Len()
	st.clist = newThreadList(n)
	st.nlist = newThreadList(n)
	st.seed = make([]int, v.prog.SlotCount())
	st.best = make([]int, v.prog.SlotCount())
	st.free = st.free[:0]
}

// thread is one live simulation thread: an instruction address plus its
// capture-slot snapshot.
type thread struct {
	pc   uint32
	caps []int
}

// threadList is one step's set of live threads. The sparse set enforces
// the at-most-one-thread-per-address invariant; the dense slice
// preserves insertion order, which encodes match priority.
type threadList struct {
	seen  *sparse.Set
	dense []thread
}

func newThreadList(n int) *threadList {
	return &threadList{
		seen:  sparse.New(n),
		dense: make([]thread, 0, n),
	}
}

// clear empties the list, returning thread capture slices to the free
// pool.
func (l *threadList) clear(st *PikeVMState) {
	for i := range l.dense {
		if c := l.dense[i].caps; c != nil {
			st.free = append(st.free, c)
		}
		l.dense[i].caps = nil
	}
	l.dense = l.dense[:0]
	l.seen.Clear()
}

func (st *PikeVMState) copyCaps(src []int) []int {
	var dst []int
	if n := len(st.free); n > 0 {
		dst = st.free[n-1]
		st.free = st.free[:n-1]
	} else {
		dst = make([]int, len(src))
	}
	copy(dst, src)
	return dst
}

// Search runs the program over haystack beginning the scan at byte
// offset at. When anchored is true the match must start exactly at the
// offset; otherwise every later offset is a candidate start. When
// longest is true leftmost-longest semantics apply instead of
// leftmost-first.
//
// On success it returns the capture slots (two per group, byte offsets,
// -1 for slots the winning path never saved); slots[0] and slots[1] are
// the overall match bounds. It returns nil if there is no match.
func (v *PikeVM) Search(haystack []byte, at int, anchored, longest bool, st *PikeVMState) []int {
	if at < 0 || at > len(haystack) {
		return nil
	}

	prog := v.prog
	clist, nlist := st.clist, st.nlist
	clist.clear(st)
	nlist.clear(st)

	matched := false
	pos := at
	for {
		if !matched && (pos == at || !anchored) {
			for i := range st.seed {
				st.seed[i] = -1
			}
			v.add(clist, 0, pos, st.seed, haystack, st)
		}

		r, width := endOfText, 0
		if pos < len(haystack) {
			r, width = utf8.DecodeRune(haystack[pos:])
		}

		for i := 0; i < len(clist.dense); i++ {
			t := clist.dense[i]
			inst := prog.Inst(t.pc)
			switch inst.Op {
			case program.OpMatch:
				if longest {
					if !matched || betterLongest(st.best, t.caps) {
						copy(st.best, t.caps)
					}
					matched = true
				} else {
					// Threads after i are lower priority and can no
					// longer win; threads already in nlist are higher
					// priority and may still overwrite this result.
					copy(st.best, t.caps)
					matched = true
					i = len(clist.dense)
				}
			case program.OpChar:
				if r != endOfText && inst.Set.Contains(r) {
					v.add(nlist, inst.Out, pos+width, t.caps, haystack, st)
				}
			}
		}

		if pos >= len(haystack) {
			break
		}
		pos += width
		clist, nlist = nlist, clist
		nlist.clear(st)
		if len(clist.dense) == 0 && (matched || anchored) {
			break
		}
	}

	clist.clear(st)
	nlist.clear(st)
	if !matched {
		return nil
	}
	out := make([]int, len(st.best))
	copy(out, st.best)
	return out
}

// IsMatch reports whether the program matches anywhere in haystack at
// or after the given offset.
func (v *PikeVM) IsMatch(haystack []byte, at int, st *PikeVMState) bool {
	return v.Search(haystack, at, false, false, st) != nil
}

// add inserts the thread at pc into list l, resolving all
// non-consuming instructions (jump, split, save, assert) immediately.
// Split branches are followed first-operand-first so insertion order
// encodes priority. Capture slots are mutated in place and restored on
// the way back out; only threads parked at a consuming instruction (or
// match) snapshot them.
func (v *PikeVM) add(l *threadList, pc uint32, pos int, caps []int, haystack []byte, st *PikeVMState) {
	if !l.seen.Insert(pc) {
		return
	}
	inst := v.prog.Inst(pc)
	switch inst.Op {
	case program.OpJump:
		v.add(l, inst.Out, pos, caps, haystack, st)
	case program.OpSplit:
		v.add(l, inst.Out, pos, caps, haystack, st)
		v.add(l, inst.Arg, pos, caps, haystack, st)
	case program.OpSave:
		if slot := int(inst.Arg); slot < len(caps) {
			old := caps[slot]
			caps[slot] = pos
			v.add(l, inst.Out, pos, caps, haystack, st)
			caps[slot] = old
		} else {
			v.add(l, inst.Out, pos, caps, haystack, st)
		}
	case program.OpAssert:
		if program.AssertKind(inst.Arg).Holds(haystack, pos) {
			v.add(l, inst.Out, pos, caps, haystack, st)
		}
	case program.OpChar, program.OpMatch:
		l.dense = append(l.dense, thread{pc: pc, caps: st.copyCaps(caps)})
	}
}

// betterLongest reports whether cand beats best under leftmost-longest
// semantics: an earlier start always wins, a longer match wins ties.
func betterLongest(best, cand []int) bool {
	if cand[0] != best[0] {
		return cand[0] < best[0]
	}
	return cand[1] > best[1]
}
