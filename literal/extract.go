package literal

import (
	"unicode/utf8"

	"github.com/coregx/regexvm/program"
)

// Extraction limits. Beyond these the literal set stops paying for
// itself: too many literals slow the candidate scan below the engine's
// own speed, and long prefixes rarely improve selectivity over their
// first dozen bytes.
const (
	// MaxLiterals caps the number of extracted literals.
	MaxLiterals = 32

	// MaxLiteralLen caps each literal's length in bytes.
	MaxLiteralLen = 16

	// maxClassRunes caps the size of a character class that extraction
	// is willing to expand into alternatives.
	maxClassRunes = 10
)

// Prefixes walks the program from its entry point and collects the
// literal prefixes of its match language.
//
// Every match of the program is guaranteed to start with one of the
// returned literals, and the literals appear in alternation-priority
// order. The empty sequence is returned when no useful prefix exists:
// when a literal would be empty (the program can match starting with
// anything) or when the program exceeds the extraction limits.
func Prefixes(p *program.Program) *Seq {
	e := &extractor{
		prog:   p,
		onPath: make([]bool, p.Len()),
		budget: 4*p.Len() + 64,
	}
	e.walk(0, nil, true, false)
	if e.failed {
		return NewSeq()
	}
	seq := NewSeq(e.lits...)
	seq.Dedup()
	return seq
}

type extractor struct {
	prog   *program.Program
	lits   []Literal
	onPath []bool
	budget int
	failed bool
}

// walk explores from pc carrying the prefix accumulated so far. exact
// is true while the path from the program entry has crossed nothing
// but the prefix's own characters; only exact paths that reach the
// match instruction yield complete literals. branched records whether
// the path has already fanned out over a character class: a second
// class would multiply the literal count, so the path stops there
// instead.
func (e *extractor) walk(pc uint32, prefix []byte, exact, branched bool) {
	for !e.failed {
		e.budget--
		if e.budget <= 0 {
			e.cut(prefix)
			return
		}
		inst := e.prog.Inst(pc)
		switch inst.Op {
		case program.OpSave, program.OpJump:
			pc = inst.Out

		case program.OpAssert:
			// A zero-width assertion only restricts matches, so
			// skipping it keeps the prefix sound. It can reject at
			// match time, so the path is no longer exact.
			exact = false
			pc = inst.Out

		case program.OpSplit:
			// Re-entering a split on the same path means a repetition
			// loop: stop here with what was gathered.
			if e.onPath[pc] {
				e.cut(prefix)
				return
			}
			e.onPath[pc] = true
			e.walk(inst.Out, prefix, exact, branched)
			e.walk(inst.Arg, prefix, exact, branched)
			e.onPath[pc] = false
			return

		case program.OpMatch:
			if len(prefix) == 0 {
				e.failed = true
				return
			}
			e.push(prefix, exact)
			return

		case program.OpChar:
			if len(prefix) >= MaxLiteralLen {
				e.push(prefix, false)
				return
			}
			if inst.Set.IsEmpty() {
				return
			}
			if r, ok := inst.Set.Single(); ok {
				prefix = utf8.AppendRune(cloneBytes(prefix), r)
				pc = inst.Out
				continue
			}
			if branched {
				e.cut(prefix)
				return
			}
			runes, ok := inst.Set.AppendRunes(nil, maxClassRunes)
			if !ok {
				e.cut(prefix)
				return
			}
			for _, r := range runes {
				e.walk(inst.Out, utf8.AppendRune(cloneBytes(prefix), r), exact, true)
			}
			return

		default:
			e.cut(prefix)
			return
		}
	}
}

// cut ends a path early, keeping the prefix gathered so far as an
// incomplete literal. An empty prefix poisons the whole extraction:
// some match could then start with anything.
func (e *extractor) cut(prefix []byte) {
	if len(prefix) == 0 {
		e.failed = true
		return
	}
	e.push(prefix, false)
}

func (e *extractor) push(prefix []byte, complete bool) {
	if len(e.lits) >= MaxLiterals {
		e.failed = true
		return
	}
	e.lits = append(e.lits, NewLiteral(cloneBytes(prefix), complete))
}

func cloneBytes(b []byte) []byte {
	out := make([]byte, len(b), len(b)+utf8.UTFMax)
	copy(out, b)
	return out
}
