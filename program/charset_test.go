package program

import "testing"

func TestCharSetContains(t *testing.T) {
	tests := []struct {
		name   string
		set    *CharSet
		hits   []rune
		misses []rune
	}{
		{
			name:   "single rune",
			set:    SingleRune('a'),
			hits:   []rune{'a'},
			misses: []rune{'b', 'A', 0},
		},
		{
			name:   "digit range",
			set:    NewCharSet(RuneRange{'0', '9'}),
			hits:   []rune{'0', '5', '9'},
			misses: []rune{'/', ':', 'a'},
		},
		{
			name:   "merged adjacent ranges",
			set:    NewCharSet(RuneRange{'a', 'm'}, RuneRange{'n', 'z'}),
			hits:   []rune{'a', 'm', 'n', 'z'},
			misses: []rune{'A', '{'},
		},
		{
			name: "many ranges exercises binary search",
			set: NewCharSet(
				RuneRange{'0', '1'}, RuneRange{'4', '5'}, RuneRange{'8', '9'},
				RuneRange{'a', 'b'}, RuneRange{'e', 'f'}, RuneRange{'i', 'j'},
				RuneRange{'α', 'ω'},
			),
			hits:   []rune{'0', '5', '9', 'a', 'f', 'j', 'β'},
			misses: []rune{'2', '7', 'c', 'h', 'z', 'Ω'},
		},
		{
			name:   "empty set",
			set:    NewCharSet(),
			misses: []rune{'a', 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, r := range tt.hits {
				if !tt.set.Contains(r) {
					t.Errorf("Contains(%q) = false, want true", r)
				}
			}
			for _, r := range tt.misses {
				if tt.set.Contains(r) {
					t.Errorf("Contains(%q) = true, want false", r)
				}
			}
		})
	}
}

func TestCharSetNormalization(t *testing.T) {
	// Overlapping and out-of-order ranges collapse into sorted,
	// non-overlapping ones.
	set := NewCharSet(RuneRange{'f', 'k'}, RuneRange{'a', 'h'}, RuneRange{'z', 'z'})
	rs := set.Ranges()
	if len(rs) != 2 {
		t.Fatalf("got %d ranges %v, want 2", len(rs), rs)
	}
	if rs[0] != (RuneRange{'a', 'k'}) || rs[1] != (RuneRange{'z', 'z'}) {
		t.Fatalf("normalized ranges = %v", rs)
	}
}

func TestFoldedRune(t *testing.T) {
	set := FoldedRune('k')
	// 'k' folds to 'K' and the Kelvin sign.
	for _, r := range []rune{'k', 'K', 'K'} {
		if !set.Contains(r) {
			t.Errorf("FoldedRune('k').Contains(%q) = false, want true", r)
		}
	}
	if set.Contains('l') {
		t.Error("FoldedRune('k').Contains('l') = true, want false")
	}
}

func TestAnyCharNotNL(t *testing.T) {
	set := AnyCharNotNL()
	if set.Contains('\n') {
		t.Error("AnyCharNotNL contains newline")
	}
	for _, r := range []rune{0, 'a', '\t', '世'} {
		if !set.Contains(r) {
			t.Errorf("AnyCharNotNL missing %q", r)
		}
	}
}

func TestCharSetSingle(t *testing.T) {
	if r, ok := SingleRune('x').Single(); !ok || r != 'x' {
		t.Errorf("Single() = (%q, %v), want ('x', true)", r, ok)
	}
	if _, ok := NewCharSet(RuneRange{'a', 'b'}).Single(); ok {
		t.Error("Single() on two-rune set reported ok")
	}
}

func TestCharSetAppendRunes(t *testing.T) {
	set := NewCharSet(RuneRange{'a', 'c'})
	runes, complete := set.AppendRunes(nil, 10)
	if !complete || string(runes) != "abc" {
		t.Fatalf("AppendRunes = (%q, %v), want (abc, true)", string(runes), complete)
	}

	_, complete = set.AppendRunes(nil, 2)
	if complete {
		t.Fatal("AppendRunes with tight limit reported complete")
	}

	if n := set.NumRunes(); n != 3 {
		t.Fatalf("NumRunes = %d, want 3", n)
	}
}
