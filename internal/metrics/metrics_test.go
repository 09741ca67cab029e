package metrics

import (
	"math"
	"testing"
)

func TestSyllables(t *testing.T) {
	tests := []struct {
		word string
		want int
	}{
		{"cat", 1},
		{"table", 2},
		{"banana", 3},
		{"the", 1},
		{"make", 1},
		{"rhythm", 1},
		{"readable", 3},
	}
	for _, tt := range tests {
		if got := Syllables(tt.word); got != tt.want {
			t.Errorf("Syllables(%q) = %d, want %d", tt.word, got, tt.want)
		}
	}
}

func TestTypeTokenRatio(t *testing.T) {
	if got := TypeTokenRatio([]string{"the", "cat", "the", "dog"}); math.Abs(got-0.75) > 1e-9 {
		t.Errorf("TTR = %v, want 0.75", got)
	}
	if got := TypeTokenRatio(nil); got != 0 {
		t.Errorf("TTR(nil) = %v, want 0", got)
	}
	if got := TypeTokenRatio([]string{"unique"}); got != 1 {
		t.Errorf("TTR of one word = %v, want 1", got)
	}
}

func TestExtract(t *testing.T) {
	f := Extract("The cat sat. The dog ran.")
	if f.WordCount != 6 {
		t.Errorf("WordCount = %d, want 6", f.WordCount)
	}
	if f.SentenceCount != 2 {
		t.Errorf("SentenceCount = %d, want 2", f.SentenceCount)
	}
	if f.AvgSentenceLength != 3 {
		t.Errorf("AvgSentenceLength = %v, want 3", f.AvgSentenceLength)
	}
	if f.FleschReadingEase <= 80 {
		t.Errorf("short simple sentences should read very easy, got %v", f.FleschReadingEase)
	}
}

func TestExtractEmpty(t *testing.T) {
	f := Extract("   ")
	if f.WordCount != 0 || f.FleschReadingEase != 0 {
		t.Errorf("empty input should yield zero features, got %+v", f)
	}
}

func TestFleschClamped(t *testing.T) {
	// A long dense sentence drives the raw formula negative; it must clamp.
	f := Extract("Incomprehensibility characterizes multisyllabic terminological obfuscation representations")
	if f.FleschReadingEase < 0 || f.FleschReadingEase > 100 {
		t.Errorf("Flesch %v outside [0,100]", f.FleschReadingEase)
	}
}

func TestFleschMonotonicInComplexity(t *testing.T) {
	simple := Extract("I run. I eat. I sleep. We go.")
	dense := Extract("Notwithstanding considerable deliberation, the committee ultimately repudiated the comprehensive reorganization proposal.")
	if simple.FleschReadingEase <= dense.FleschReadingEase {
		t.Errorf("simple text (%v) should read easier than dense text (%v)",
			simple.FleschReadingEase, dense.FleschReadingEase)
	}
}
