package meta

import (
	"regexp/syntax"
	"sync"
	"sync/atomic"

	"github.com/coregx/regexvm/literal"
	"github.com/coregx/regexvm/prefilter"
	"github.com/coregx/regexvm/program"
	"github.com/coregx/regexvm/vm"
)

// Engine is a compiled pattern plus everything needed to search with
// it: the instruction program, the Pike VM, the extracted literal
// prefixes, and an optional prefilter.
//
// An Engine is immutable after compilation and safe for concurrent
// use. Mutable per-search state is pooled internally.
type Engine struct {
	pattern  string
	config   Config
	prog     *program.Program
	pike     *vm.PikeVM
	prefixes *literal.Seq
	pf       prefilter.Prefilter

	pool  sync.Pool
	stats Stats
}

// searchState bundles the mutable state of both fallible engines so a
// single pool checkout covers whichever one the search routes to.
type searchState struct {
	pike vm.PikeVMState
	back *vm.BoundedBacktracker
}

// Compile compiles a pattern with the default configuration.
func Compile(pattern string) (*Engine, error) {
	return CompileWithConfig(pattern, DefaultConfig())
}

// CompileWithConfig compiles a pattern with an explicit configuration.
// Zero values for SizeLimit and MaxBacktrackBits select their defaults;
// anything else out of range fails with a ConfigError.
func CompileWithConfig(pattern string, config Config) (*Engine, error) {
	if config.SizeLimit == 0 {
		config.SizeLimit = program.DefaultSizeLimit
	}
	if config.MaxBacktrackBits == 0 {
		config.MaxBacktrackBits = vm.DefaultVisitedBudget
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	flags := syntax.Perl
	if config.CaseInsensitive {
		flags |= syntax.FoldCase
	}
	re, err := syntax.Parse(pattern, flags)
	if err != nil {
		return nil, &program.CompileError{Pattern: pattern, Err: err}
	}

	prog, err := program.NewCompiler(program.Config{SizeLimit: config.SizeLimit}).Compile(re)
	if err != nil {
		if ce, ok := err.(*program.CompileError); ok {
			ce.Pattern = pattern
		}
		return nil, err
	}

	e := &Engine{
		pattern:  pattern,
		config:   config,
		prog:     prog,
		pike:     vm.NewPikeVM(prog),
		prefixes: literal.Prefixes(prog),
	}
	// A start-anchored pattern has exactly one candidate position per
	// search, so scanning ahead for literals buys nothing.
	if config.EnablePrefilter && !prog.AnchoredStart() {
		e.pf = prefilter.Build(e.prefixes)
	}
	e.pool.New = func() interface{} {
		st := &searchState{
			back: vm.NewBoundedBacktracker(prog, config.MaxBacktrackBits),
		}
		e.pike.InitState(&st.pike)
		return st
	}
	return e, nil
}

func (e *Engine) getState() *searchState {
	return e.pool.Get().(*searchState)
}

func (e *Engine) putState(st *searchState) {
	e.pool.Put(st)
}

// Pattern returns the source pattern.
func (e *Engine) Pattern() string { return e.pattern }

// Config returns the configuration the engine was compiled with.
func (e *Engine) Config() Config { return e.config }

// Program returns the compiled instruction program.
func (e *Engine) Program() *program.Program { return e.prog }

// Prefixes returns the literal prefixes extracted from the program.
func (e *Engine) Prefixes() *literal.Seq { return e.prefixes }

// HasPrefilter reports whether searches use a literal prefilter.
func (e *Engine) HasPrefilter() bool { return e.pf != nil }

// Strategy reports which engine a group-0 search over an input of the
// given length would route to.
func (e *Engine) Strategy(inputLen int) Strategy {
	return e.strategy(inputLen, false)
}

func (e *Engine) strategy(inputLen int, needCaps bool) Strategy {
	if e.canUseLiteral(needCaps) {
		return UseLiteral
	}
	if e.canUseBacktrack(inputLen) {
		return UseBacktrack
	}
	return UsePikeVM
}

// canUseLiteral reports whether the literal scan alone answers
// searches. It requires a complete prefilter, and capture groups rule
// it out when the caller wants submatches: the scan knows match bounds
// but not group bounds.
func (e *Engine) canUseLiteral(needCaps bool) bool {
	if e.pf == nil || !e.pf.IsComplete() {
		return false
	}
	if _, ok := e.pf.(prefilter.MatchFinder); !ok {
		return false
	}
	return !needCaps || e.prog.NumCaptures() == 1
}

func (e *Engine) canUseBacktrack(inputLen int) bool {
	if e.config.Longest {
		return false
	}
	return e.prog.Len()*(inputLen+1) <= e.config.MaxBacktrackBits
}

// Stats counts searches by the engine that served them. Counters are
// updated atomically and never reset by searches.
type Stats struct {
	LiteralSearches   uint64
	BacktrackSearches uint64
	PikeVMSearches    uint64
	PrefilterHits     uint64
	PrefilterMisses   uint64
}

// Stats returns a snapshot of the engine's search counters.
func (e *Engine) Stats() Stats {
	return Stats{
		LiteralSearches:   atomic.LoadUint64(&e.stats.LiteralSearches),
		BacktrackSearches: atomic.LoadUint64(&e.stats.BacktrackSearches),
		PikeVMSearches:    atomic.LoadUint64(&e.stats.PikeVMSearches),
		PrefilterHits:     atomic.LoadUint64(&e.stats.PrefilterHits),
		PrefilterMisses:   atomic.LoadUint64(&e.stats.PrefilterMisses),
	}
}

// ResetStats zeroes the search counters.
func (e *Engine) ResetStats() {
	atomic.StoreUint64(&e.stats.LiteralSearches, 0)
	atomic.StoreUint64(&e.stats.BacktrackSearches, 0)
	atomic.StoreUint64(&e.stats.PikeVMSearches, 0)
	atomic.StoreUint64(&e.stats.PrefilterHits, 0)
	atomic.StoreUint64(&e.stats.PrefilterMisses, 0)
}
