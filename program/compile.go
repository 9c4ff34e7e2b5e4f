package program

import (
	"fmt"
	"regexp/syntax"

	"github.com/coregx/regexvm/internal/conv"
)

// DefaultSizeLimit is the default maximum instruction count for a
// compiled program. It bounds the memory of the program itself and,
// transitively, of every per-search thread list and visited set.
const DefaultSizeLimit = 100000

// Config configures program compilation.
type Config struct {
	// SizeLimit is the maximum number of instructions a compiled
	// program may contain. Compilation fails with ErrSizeLimit once the
	// limit is crossed, so pathological repetition counts are rejected
	// before they can allocate unbounded memory.
	// Default: DefaultSizeLimit.
	SizeLimit int
}

// DefaultConfig returns a compiler configuration with sensible defaults.
func DefaultConfig() Config {
	return Config{
		SizeLimit: DefaultSizeLimit,
	}
}

// Compiler lowers regexp/syntax trees into instruction programs.
//
// The compiler borrows the syntax tree and never mutates it. A Compiler
// may be reused for multiple Compile calls, but not concurrently.
type Compiler struct {
	sizeLimit int
	insts     []Inst
	names     []string
	numCap    int
}

// NewCompiler creates a compiler with the given configuration.
func NewCompiler(cfg Config) *Compiler {
	if cfg.SizeLimit <= 0 {
		cfg.SizeLimit = DefaultSizeLimit
	}
	return &Compiler{sizeLimit: cfg.SizeLimit}
}

// Compile lowers a parsed syntax tree into a Program.
//
// The emitted program wraps the pattern in the group-0 capture pair and
// a single trailing OpMatch. Compilation is pure: on error no partial
// program is returned and the compiler can be reused.
func (c *Compiler) Compile(re *syntax.Regexp) (*Program, error) {
	c.insts = c.insts[:0]
	c.names = []string{""}
	c.numCap = 1

	c.pushStep(OpSave, 0, nil)
	if err := c.c(re); err != nil {
		return nil, err
	}
	c.pushStep(OpSave, 1, nil)
	c.push(Inst{Op: OpMatch})
	if err := c.checkSize(); err != nil {
		return nil, err
	}

	names := make([]string, c.numCap)
	copy(names, c.names)
	insts := make([]Inst, len(c.insts))
	copy(insts, c.insts)

	p := &Program{
		insts:  insts,
		numCap: c.numCap,
		names:  names,
	}
	p.detectAnchors()
	return p, nil
}

// c compiles a single syntax node. Every path ends in a size check so
// runaway expansion (huge counted repetition) aborts at the limit
// instead of growing without bound.
func (c *Compiler) c(re *syntax.Regexp) error {
	switch re.Op {
	case syntax.OpEmptyMatch:
		// Matches the empty string; nothing to emit.

	case syntax.OpLiteral:
		fold := re.Flags&syntax.FoldCase != 0
		for _, r := range re.Rune {
			set := SingleRune(r)
			if fold {
				set = FoldedRune(r)
			}
			c.pushStep(OpChar, 0, set)
		}

	case syntax.OpCharClass:
		c.pushStep(OpChar, 0, FromSyntaxClass(re.Rune))

	case syntax.OpAnyChar:
		c.pushStep(OpChar, 0, AnyChar())

	case syntax.OpAnyCharNotNL:
		c.pushStep(OpChar, 0, AnyCharNotNL())

	case syntax.OpNoMatch:
		// A class that matches nothing kills every thread reaching it.
		c.pushStep(OpChar, 0, NewCharSet())

	case syntax.OpBeginText:
		c.pushStep(OpAssert, uint32(AssertBeginText), nil)
	case syntax.OpEndText:
		c.pushStep(OpAssert, uint32(AssertEndText), nil)
	case syntax.OpBeginLine:
		c.pushStep(OpAssert, uint32(AssertBeginLine), nil)
	case syntax.OpEndLine:
		c.pushStep(OpAssert, uint32(AssertEndLine), nil)
	case syntax.OpWordBoundary:
		c.pushStep(OpAssert, uint32(AssertWordBoundary), nil)
	case syntax.OpNoWordBoundary:
		c.pushStep(OpAssert, uint32(AssertNoWordBoundary), nil)

	case syntax.OpCapture:
		if err := c.compileCapture(re); err != nil {
			return err
		}

	case syntax.OpConcat:
		for _, sub := range re.Sub {
			if err := c.c(sub); err != nil {
				return err
			}
		}

	case syntax.OpAlternate:
		if err := c.compileAlternate(re.Sub); err != nil {
			return err
		}

	case syntax.OpQuest:
		if err := c.compileQuest(re.Sub[0], re.Flags&syntax.NonGreedy == 0); err != nil {
			return err
		}

	case syntax.OpStar:
		if err := c.compileStar(re.Sub[0], re.Flags&syntax.NonGreedy == 0); err != nil {
			return err
		}

	case syntax.OpPlus:
		if err := c.compilePlus(re.Sub[0], re.Flags&syntax.NonGreedy == 0); err != nil {
			return err
		}

	case syntax.OpRepeat:
		if err := c.compileRepeat(re.Sub[0], re.Min, re.Max, re.Flags&syntax.NonGreedy == 0); err != nil {
			return err
		}

	default:
		return &CompileError{
			Err: fmt.Errorf("%w: %v", ErrUnsupported, re.Op),
		}
	}
	return c.checkSize()
}

// compileCapture emits save instructions around the group body.
func (c *Compiler) compileCapture(re *syntax.Regexp) error {
	if re.Cap < 1 {
		return &CompileError{
			Err: fmt.Errorf("%w: group index %d", ErrInvalidCapture, re.Cap),
		}
	}
	if re.Cap >= c.numCap {
		c.numCap = re.Cap + 1
	}
	for len(c.names) < c.numCap {
		c.names = append(c.names, "")
	}
	c.names[re.Cap] = re.Name

	slot := conv.IntToUint32(2 * re.Cap)
	c.pushStep(OpSave, slot, nil)
	if err := c.c(re.Sub[0]); err != nil {
		return err
	}
	c.pushStep(OpSave, slot+1, nil)
	return nil
}

// compileAlternate emits
//
//	split L1, L2
//	L1: first alternative
//	    jmp end
//	L2: remaining alternatives
//	end:
//
// with remaining alternatives compiled by recursion, so earlier
// alternatives always sit on the higher-priority split branch.
func (c *Compiler) compileAlternate(subs []*syntax.Regexp) error {
	if len(subs) == 0 {
		return nil
	}
	if len(subs) == 1 {
		return c.c(subs[0])
	}

	split := c.emptySplit()
	j1 := c.pc()
	if err := c.c(subs[0]); err != nil {
		return err
	}
	jmp := c.emptyJump()
	j2 := c.pc()
	if err := c.compileAlternate(subs[1:]); err != nil {
		return err
	}
	c.setSplit(split, j1, j2)
	c.setJump(jmp, c.pc())
	return nil
}

// compileQuest emits split(body, skip) for greedy e?, with the operands
// reversed for non-greedy.
func (c *Compiler) compileQuest(sub *syntax.Regexp, greedy bool) error {
	split := c.emptySplit()
	j1 := c.pc()
	if err := c.c(sub); err != nil {
		return err
	}
	j2 := c.pc()
	if greedy {
		c.setSplit(split, j1, j2)
	} else {
		c.setSplit(split, j2, j1)
	}
	return nil
}

// compileStar emits
//
//	loop: split body, end
//	body: e
//	      jmp loop
//	end:
//
// Non-greedy reverses the split operands so leaving the loop has
// priority over re-entering it.
func (c *Compiler) compileStar(sub *syntax.Regexp, greedy bool) error {
	j1 := c.pc()
	split := c.emptySplit()
	j2 := c.pc()
	if err := c.c(sub); err != nil {
		return err
	}
	jmp := c.emptyJump()
	j3 := c.pc()

	c.setJump(jmp, j1)
	if greedy {
		c.setSplit(split, j2, j3)
	} else {
		c.setSplit(split, j3, j2)
	}
	return nil
}

// compilePlus emits the body once followed by a split back to it.
func (c *Compiler) compilePlus(sub *syntax.Regexp, greedy bool) error {
	j1 := c.pc()
	if err := c.c(sub); err != nil {
		return err
	}
	split := c.emptySplit()
	j2 := c.pc()

	if greedy {
		c.setSplit(split, j1, j2)
	} else {
		c.setSplit(split, j2, j1)
	}
	return nil
}

// compileRepeat unrolls e{min,max} into min mandatory copies followed by
// (max-min) optional copies, or min copies plus a star when max is
// unbounded. Each copy re-checks the size limit, so a pathological bound
// aborts with ErrSizeLimit after at most one copy past the limit.
func (c *Compiler) compileRepeat(sub *syntax.Regexp, min, max int, greedy bool) error {
	for i := 0; i < min; i++ {
		if err := c.c(sub); err != nil {
			return err
		}
	}
	if max == -1 {
		return c.compileStar(sub, greedy)
	}
	for i := min; i < max; i++ {
		if err := c.compileQuest(sub, greedy); err != nil {
			return err
		}
		if err := c.checkSize(); err != nil {
			return err
		}
	}
	return nil
}

// pc returns the address the next pushed instruction will occupy.
func (c *Compiler) pc() uint32 {
	return conv.IntToUint32(len(c.insts))
}

func (c *Compiler) push(inst Inst) uint32 {
	pc := c.pc()
	c.insts = append(c.insts, inst)
	return pc
}

// pushStep appends an instruction whose successor is the following
// address (the fall-through ops: char, save, assert).
func (c *Compiler) pushStep(op Op, arg uint32, set *CharSet) uint32 {
	pc := c.pc()
	c.insts = append(c.insts, Inst{Op: op, Out: pc + 1, Arg: arg, Set: set})
	return pc
}

// emptySplit appends a split with unset targets and returns its address
// for later patching.
func (c *Compiler) emptySplit() uint32 {
	return c.push(Inst{Op: OpSplit})
}

func (c *Compiler) setSplit(pc, out, arg uint32) {
	inst := &c.insts[pc]
	if inst.Op != OpSplit {
		panic("program: patching non-split instruction")
	}
	inst.Out, inst.Arg = out, arg
}

// emptyJump appends a jump with an unset target and returns its address
// for later patching.
func (c *Compiler) emptyJump() uint32 {
	return c.push(Inst{Op: OpJump})
}

func (c *Compiler) setJump(pc, out uint32) {
	inst := &c.insts[pc]
	if inst.Op != OpJump {
		panic("program: patching non-jump instruction")
	}
	inst.Out = out
}

func (c *Compiler) checkSize() error {
	if len(c.insts) > c.sizeLimit {
		return &CompileError{
			Err: fmt.Errorf("%w: limit %d instructions", ErrSizeLimit, c.sizeLimit),
		}
	}
	return nil
}
