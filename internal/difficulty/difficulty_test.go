package difficulty

import (
	"context"
	"strings"
	"testing"

	"github.com/edulingua/backend/internal/metrics"
)

func TestScoreOrdersByComplexity(t *testing.T) {
	simple := Score("I run. I eat. The cat sat. We go home.")
	dense := Score("Notwithstanding considerable deliberation regarding multifaceted organizational restructuring, stakeholders ultimately repudiated the comprehensive transformation proposal notwithstanding sustained advocacy.")
	if simple >= dense {
		t.Errorf("simple text score %v should be below dense text score %v", simple, dense)
	}
}

func TestScoreFeaturesBounds(t *testing.T) {
	extremes := []metrics.Features{
		{},
		{AvgSentenceLength: 100, AvgWordLength: 15, TypeTokenRatio: 1, FleschReadingEase: 0},
	}
	for _, f := range extremes {
		if s := ScoreFeatures(f); s < 0 || s > 1 {
			t.Errorf("ScoreFeatures(%+v) = %v, outside [0,1]", f, s)
		}
	}
}

func TestLevelFor(t *testing.T) {
	if got := LevelFor(0.2); got != "A1" {
		t.Errorf("LevelFor(0.2) = %q, want A1", got)
	}
	if got := LevelFor(0.95); got != "C2" {
		t.Errorf("LevelFor(0.95) = %q, want C2", got)
	}
	if got := LevelFor(0.5); got != "B1" {
		t.Errorf("LevelFor(0.5) = %q, want B1", got)
	}
}

func TestBandForUnknownLevel(t *testing.T) {
	if got := BandFor("Z9"); got.Level != "B1" {
		t.Errorf("unknown level band = %q, want B1 fallback", got.Level)
	}
	if got := BandFor("C1"); got.Level != "C1" {
		t.Errorf("BandFor(C1) = %q", got.Level)
	}
}

func TestRecommendedBand(t *testing.T) {
	tests := []struct {
		errRate, readability float64
		want                 string
	}{
		{0.1, 80, "C1"},
		{0.25, 65, "B2"},
		{0.35, 55, "B1"},
		{0.45, 45, "A2"},
		{0.6, 30, "A1"},
	}
	for _, tt := range tests {
		if got := RecommendedBand(tt.errRate, tt.readability); got != tt.want {
			t.Errorf("RecommendedBand(%v, %v) = %q, want %q", tt.errRate, tt.readability, got, tt.want)
		}
	}
}

func TestAdjustSimplifiesVocabulary(t *testing.T) {
	e := NewEstimator(nil, 0)
	res := e.Adjust(context.Background(), "We utilize approximately ten sophisticated instruments.", "A1")

	if !strings.Contains(res.AdjustedText, "use") {
		t.Errorf("adjusted text should contain 'use': %q", res.AdjustedText)
	}
	if !strings.Contains(res.AdjustedText, "about") {
		t.Errorf("adjusted text should contain 'about': %q", res.AdjustedText)
	}
	if strings.Contains(res.AdjustedText, "utilize") {
		t.Errorf("complex word survived: %q", res.AdjustedText)
	}
	if len(res.Adjustments) == 0 {
		t.Error("adjustments list should record what was done")
	}
}

func TestAdjustSplitsLongSentences(t *testing.T) {
	long := "The children played in the park all afternoon and they were very tired when they finally came home for dinner."
	out, changed := splitLongSentences(long, 8)
	if !changed {
		t.Fatal("long sentence was not split")
	}
	if strings.Count(out, ".") < 2 {
		t.Errorf("expected two sentences after split, got %q", out)
	}
}

func TestAdjustLeavesOnTargetText(t *testing.T) {
	e := NewEstimator(nil, 0)
	text := "I am happy. We play games. The sun is out."
	res := e.Adjust(context.Background(), text, "A1")
	if res.AdjustedText != text {
		t.Errorf("on-level text was altered: %q -> %q", text, res.AdjustedText)
	}
}

func TestAdjustReportsMissedTarget(t *testing.T) {
	e := NewEstimator(nil, 0)
	// A single plain sentence cannot be enriched to C2 without a rewriter.
	res := e.Adjust(context.Background(), "I like my dog.", "C2")
	if res.OnTarget {
		t.Error("plain text should not reach C2")
	}
	if len(res.Adjustments) == 0 {
		t.Error("missed target must be reported in adjustments")
	}
}
