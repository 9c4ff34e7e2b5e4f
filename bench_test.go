package regexvm

import (
	"strings"
	"testing"
)

var benchHaystack = []byte(strings.Repeat("lorem ipsum dolor sit amet ", 400) + "needle in the haystack")

func BenchmarkLiteral(b *testing.B) {
	re := MustCompile(`needle`)
	b.SetBytes(int64(len(benchHaystack)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if !re.Match(benchHaystack) {
			b.Fatal("no match")
		}
	}
}

func BenchmarkAlternation(b *testing.B) {
	re := MustCompile(`needle|thread|cotton`)
	b.SetBytes(int64(len(benchHaystack)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if !re.Match(benchHaystack) {
			b.Fatal("no match")
		}
	}
}

func BenchmarkCharClass(b *testing.B) {
	re := MustCompile(`[0-9]+`)
	h := []byte(strings.Repeat("abcdefgh ", 1000) + "1234")
	b.SetBytes(int64(len(h)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if !re.Match(h) {
			b.Fatal("no match")
		}
	}
}

func BenchmarkSubmatch(b *testing.B) {
	re := MustCompile(`(\w+)@(\w+)\.(\w+)`)
	h := []byte("please contact someone@example.com about this")
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if re.FindSubmatchIndex(h) == nil {
			b.Fatal("no match")
		}
	}
}

func BenchmarkPathological(b *testing.B) {
	// Exponential for naive backtrackers, linear here.
	re := MustCompile(strings.Repeat("a?", 25) + strings.Repeat("a", 25))
	h := []byte(strings.Repeat("a", 25))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if !re.Match(h) {
			b.Fatal("no match")
		}
	}
}
