// Package sparse provides a generation-stamped membership set for NFA
// thread deduplication.
//
// During lockstep simulation the engine must guarantee that each
// instruction address holds at most one live thread per input position.
// A Set answers "seen this address in the current step?" in O(1) and is
// cleared in O(1) by bumping a generation counter instead of zeroing the
// backing array, so per-step overhead stays constant regardless of
// program size.
package sparse

// Set is a set of uint32 values bounded by a fixed capacity.
//
// Membership is recorded by stamping the value's slot with the current
// generation. Clear advances the generation, invalidating all stamps at
// once. The zero generation is never used as a stamp, so a freshly
// allocated Set is empty.
type Set struct {
	stamps []uint32
	gen    uint32
}

// New creates a Set able to hold values in [0, capacity).
func New(capacity int) *Set {
	return &Set{
		stamps: make([]uint32, capacity),
		gen:    1,
	}
}

// Insert adds value to the set. It reports whether the value was newly
// inserted (false means it was already present this generation).
// Values >= capacity are rejected.
func (s *Set) Insert(value uint32) bool {
	if int(value) >= len(s.stamps) {
		return false
	}
	if s.stamps[value] == s.gen {
		return false
	}
	s.stamps[value] = s.gen
	return true
}

// Contains reports whether value is present in the current generation.
func (s *Set) Contains(value uint32) bool {
	return int(value) < len(s.stamps) && s.stamps[value] == s.gen
}

// Clear empties the set in O(1).
func (s *Set) Clear() {
	s.gen++
	if s.gen == 0 {
		// Generation wrapped; stamps from 2^32 clears ago could alias.
		for i := range s.stamps {
			s.stamps[i] = 0
		}
		s.gen = 1
	}
}

// Capacity returns the exclusive upper bound on storable values.
func (s *Set) Capacity() int {
	return len(s.stamps)
}
