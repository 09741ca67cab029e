package scorer

import (
	"strings"
	"testing"
)

func TestCleanTextScoresA(t *testing.T) {
	res := Score(Input{
		Text:              "A well written passage about everyday life with no register problems.",
		ErrorCount:        0,
		WordCount:         100,
		FleschReadingEase: 60,
		LexicalDiversity:  0.6,
		Coherence:         1.0,
	})
	if res.OverallScore < 90 {
		t.Errorf("clean text scored %v, want >= 90", res.OverallScore)
	}
	if res.Grade != "A" {
		t.Errorf("grade = %q, want A", res.Grade)
	}
}

func TestErrorDensityLowersGrammar(t *testing.T) {
	few := Score(Input{ErrorCount: 1, WordCount: 100, FleschReadingEase: 60, LexicalDiversity: 0.5, Coherence: 1})
	many := Score(Input{ErrorCount: 10, WordCount: 100, FleschReadingEase: 60, LexicalDiversity: 0.5, Coherence: 1})
	if few.Components.Grammar <= many.Components.Grammar {
		t.Errorf("1 error grammar %v should beat 10 errors %v",
			few.Components.Grammar, many.Components.Grammar)
	}
	if many.Components.Grammar != 50 {
		t.Errorf("10 errors per 100 words = %v, want 50", many.Components.Grammar)
	}
}

func TestGrammarFloorsAtZero(t *testing.T) {
	res := Score(Input{ErrorCount: 50, WordCount: 100, FleschReadingEase: 60, Coherence: 1})
	if res.Components.Grammar != 0 {
		t.Errorf("grammar = %v, want 0", res.Components.Grammar)
	}
	if res.OverallScore < 0 {
		t.Errorf("overall = %v, must not go negative", res.OverallScore)
	}
}

func TestEmptySubmission(t *testing.T) {
	res := Score(Input{})
	if res.OverallScore != 0 {
		t.Errorf("score = %v, want 0", res.OverallScore)
	}
	if res.Grade != "F" {
		t.Errorf("grade = %q, want F", res.Grade)
	}
}

func TestGradeLadder(t *testing.T) {
	tests := []struct {
		score float64
		want  string
	}{
		{95, "A"}, {90, "A"}, {89.9, "B"}, {80, "B"},
		{79, "C"}, {70, "C"}, {65, "D"}, {60, "D"}, {59.9, "F"}, {0, "F"},
	}
	for _, tt := range tests {
		if got := GradeFor(tt.score); got != tt.want {
			t.Errorf("GradeFor(%v) = %q, want %q", tt.score, got, tt.want)
		}
	}
}

func TestReadabilityBand(t *testing.T) {
	if got := readabilityScore(60); got != 100 {
		t.Errorf("readability(60) = %v, want 100", got)
	}
	if got := readabilityScore(20); got != 40 {
		t.Errorf("readability(20) = %v, want 40", got)
	}
	if lo, hi := readabilityScore(95), readabilityScore(75); lo >= hi {
		t.Errorf("readability(95)=%v should be below readability(75)=%v", lo, hi)
	}
}

func TestToneConsistency(t *testing.T) {
	if got := toneConsistency("The results were positive and the plan worked."); got != 100 {
		t.Errorf("unmarked text = %v, want 100", got)
	}
	if got := toneConsistency("Furthermore, the stuff was gonna be awesome."); got != 60 {
		t.Errorf("mixed register = %v, want 60", got)
	}
	if got := toneConsistency("It was gonna be awesome, yeah totally cool stuff."); got != 80 {
		t.Errorf("heavily informal = %v, want 80", got)
	}
}

func TestScoreEssayBlendsStructure(t *testing.T) {
	body := "Firstly, school matters because learning builds skills. " +
		"However, not everyone agrees with this view. " +
		"Therefore we should invest in education."
	threePara := strings.Join([]string{body, body, body}, "\n\n")

	essay := ScoreEssay(Input{
		Text:              threePara,
		ErrorCount:        0,
		WordCount:         72,
		FleschReadingEase: 60,
		LexicalDiversity:  0.6,
		Coherence:         1.0,
	})
	if essay.Structure != 100 {
		t.Errorf("three paragraphs structure = %v, want 100", essay.Structure)
	}
	if essay.Argument != 100 {
		t.Errorf("four distinct markers argument = %v, want 100", essay.Argument)
	}

	wall := ScoreEssay(Input{
		Text:              "Plain text with no markers at all in one block.",
		ErrorCount:        0,
		WordCount:         10,
		FleschReadingEase: 60,
		LexicalDiversity:  0.6,
		Coherence:         1.0,
	})
	if wall.Structure != 50 {
		t.Errorf("single paragraph structure = %v, want 50", wall.Structure)
	}
	if essay.OverallScore <= wall.OverallScore {
		t.Errorf("structured essay %v should outscore wall of text %v",
			essay.OverallScore, wall.OverallScore)
	}
}
