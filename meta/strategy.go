package meta

// Strategy identifies which engine answers a search. Selection happens
// per search because it depends on the input length, not just the
// pattern.
type Strategy int

const (
	// UsePikeVM runs the thread-list engine. Always applicable; the
	// only engine with guaranteed linear time on every input, and the
	// only one implementing longest semantics.
	UsePikeVM Strategy = iota

	// UseBacktrack runs the bounded backtracker. Chosen when the
	// program-size × input-length product fits the visited-bitmap
	// budget and leftmost-first semantics are in effect.
	UseBacktrack

	// UseLiteral answers from the literal scan alone. Chosen when the
	// extracted literals are the pattern's entire match language, so a
	// literal occurrence is a match with no verification step.
	UseLiteral
)

// String returns the strategy name.
func (s Strategy) String() string {
	switch s {
	case UsePikeVM:
		return "PikeVM"
	case UseBacktrack:
		return "Backtrack"
	case UseLiteral:
		return "Literal"
	default:
		return "Unknown"
	}
}
