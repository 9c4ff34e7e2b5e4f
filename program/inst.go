package program

import "fmt"

// Op identifies an instruction kind.
type Op uint8

const (
	// OpChar consumes one code point if it is a member of Inst.Set,
	// then continues at Inst.Out. Threads whose current code point is
	// outside the set die.
	OpChar Op = iota

	// OpJump continues at Inst.Out without consuming input.
	OpJump

	// OpSplit forks the thread: Inst.Out is tried with higher priority,
	// Inst.Arg with lower. Thread insertion order encodes match
	// priority, so operand order decides greediness.
	OpSplit

	// OpSave stores the current input offset into capture slot Inst.Arg
	// and continues at Inst.Out. Slot 2k is the start of group k,
	// slot 2k+1 its end.
	OpSave

	// OpAssert is a zero-width check of AssertKind(Inst.Arg). The thread
	// continues at Inst.Out only if the assertion holds at the current
	// offset.
	OpAssert

	// OpMatch accepts. It is the last instruction of every program and
	// appears exactly once.
	OpMatch
)

// String returns the mnemonic for the op.
func (op Op) String() string {
	switch op {
	case OpChar:
		return "char"
	case OpJump:
		return "jmp"
	case OpSplit:
		return "split"
	case OpSave:
		return "save"
	case OpAssert:
		return "assert"
	case OpMatch:
		return "match"
	default:
		return fmt.Sprintf("op(%d)", uint8(op))
	}
}

// AssertKind identifies a zero-width assertion.
type AssertKind uint32

const (
	// AssertBeginText holds only at offset 0 (\A).
	AssertBeginText AssertKind = iota

	// AssertEndText holds only at the end of input (\z).
	AssertEndText

	// AssertBeginLine holds at offset 0 or after '\n' (multiline ^).
	AssertBeginLine

	// AssertEndLine holds at end of input or before '\n' (multiline $).
	AssertEndLine

	// AssertWordBoundary holds where exactly one side is a word byte (\b).
	AssertWordBoundary

	// AssertNoWordBoundary holds where both or neither side is a word byte (\B).
	AssertNoWordBoundary
)

// String returns the mnemonic for the assertion kind.
func (k AssertKind) String() string {
	switch k {
	case AssertBeginText:
		return `\A`
	case AssertEndText:
		return `\z`
	case AssertBeginLine:
		return "^"
	case AssertEndLine:
		return "$"
	case AssertWordBoundary:
		return `\b`
	case AssertNoWordBoundary:
		return `\B`
	default:
		return fmt.Sprintf("assert(%d)", uint32(k))
	}
}

// Holds reports whether the assertion is satisfied at byte offset pos in
// haystack. Word boundaries use the ASCII word-byte definition, matching
// regexp/syntax's \b.
func (k AssertKind) Holds(haystack []byte, pos int) bool {
	switch k {
	case AssertBeginText:
		return pos == 0
	case AssertEndText:
		return pos == len(haystack)
	case AssertBeginLine:
		return pos == 0 || haystack[pos-1] == '\n'
	case AssertEndLine:
		return pos == len(haystack) || haystack[pos] == '\n'
	case AssertWordBoundary:
		return wordByteBefore(haystack, pos) != wordByteAt(haystack, pos)
	case AssertNoWordBoundary:
		return wordByteBefore(haystack, pos) == wordByteAt(haystack, pos)
	}
	return false
}

func wordByteBefore(haystack []byte, pos int) bool {
	return pos > 0 && isWordByte(haystack[pos-1])
}

func wordByteAt(haystack []byte, pos int) bool {
	return pos < len(haystack) && isWordByte(haystack[pos])
}

func isWordByte(b byte) bool {
	return b == '_' ||
		('0' <= b && b <= '9') ||
		('a' <= b && b <= 'z') ||
		('A' <= b && b <= 'Z')
}

// Inst is a single instruction. Addresses (Out, Arg for OpSplit) are
// indices into the program's flat instruction sequence; loops are
// represented as back-edges in this index space, so the instruction
// graph needs no linked nodes.
type Inst struct {
	// Op selects the instruction kind and which fields below are valid.
	Op Op

	// Out is the primary successor address. Unused by OpMatch.
	Out uint32

	// Arg is the secondary operand: second branch for OpSplit, capture
	// slot for OpSave, AssertKind for OpAssert.
	Arg uint32

	// Set is the code-point set tested by OpChar; nil for other ops.
	Set *CharSet
}

// String returns a single-line disassembly of the instruction.
func (i Inst) String() string {
	switch i.Op {
	case OpChar:
		return fmt.Sprintf("char %s -> %d", i.Set, i.Out)
	case OpJump:
		return fmt.Sprintf("jmp %d", i.Out)
	case OpSplit:
		return fmt.Sprintf("split %d, %d", i.Out, i.Arg)
	case OpSave:
		return fmt.Sprintf("save %d -> %d", i.Arg, i.Out)
	case OpAssert:
		return fmt.Sprintf("assert %s -> %d", AssertKind(i.Arg), i.Out)
	case OpMatch:
		return "match"
	default:
		return i.Op.String()
	}
}
