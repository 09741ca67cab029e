// Package scorer turns extracted features and error counts into the
// composite writing-quality score and letter grade.
package scorer

import "math"

// Component weights. They sum to 1.0.
const (
	weightGrammar     = 0.30
	weightReadability = 0.25
	weightCoherence   = 0.20
	weightVocabulary  = 0.15
	weightTone        = 0.10
)

// Input carries everything the scorer needs. All values describe the
// original submission, not the corrected text.
type Input struct {
	Text              string
	ErrorCount        int
	WordCount         int
	FleschReadingEase float64
	LexicalDiversity  float64 // type-token ratio in [0,1]
	Coherence         float64 // in [0,1]
}

// Breakdown is the per-component score set, each in [0,100].
type Breakdown struct {
	Grammar     float64 `json:"grammar"`
	Readability float64 `json:"readability"`
	Coherence   float64 `json:"coherence"`
	Vocabulary  float64 `json:"vocabulary"`
	Tone        float64 `json:"tone"`
}

// Result is the composite quality assessment.
type Result struct {
	OverallScore float64   `json:"overall_score"`
	Grade        string    `json:"grade"`
	Components   Breakdown `json:"components"`
}

// Score computes the weighted composite. An empty submission gets the
// minimum score and grade F rather than an error.
func Score(in Input) Result {
	if in.WordCount == 0 {
		return Result{OverallScore: 0, Grade: "F"}
	}

	b := Breakdown{
		Grammar:     grammarScore(in.ErrorCount, in.WordCount),
		Readability: readabilityScore(in.FleschReadingEase),
		Coherence:   clamp(in.Coherence*100, 0, 100),
		Vocabulary:  clamp(in.LexicalDiversity*100, 0, 100),
		Tone:        toneConsistency(in.Text),
	}

	overall := weightGrammar*b.Grammar +
		weightReadability*b.Readability +
		weightCoherence*b.Coherence +
		weightVocabulary*b.Vocabulary +
		weightTone*b.Tone

	overall = clamp(round1(overall), 0, 100)
	return Result{
		OverallScore: overall,
		Grade:        GradeFor(overall),
		Components:   b,
	}
}

// GradeFor maps a composite score to its letter grade.
func GradeFor(score float64) string {
	switch {
	case score >= 90:
		return "A"
	case score >= 80:
		return "B"
	case score >= 70:
		return "C"
	case score >= 60:
		return "D"
	default:
		return "F"
	}
}

// grammarScore penalizes error density: 5 points per error per 100 words,
// floored at 0.
func grammarScore(errorCount, wordCount int) float64 {
	perHundred := float64(errorCount) / float64(wordCount) * 100
	penalty := math.Min(100, perHundred*5)
	return 100 - penalty
}

// readabilityScore rewards the 50-70 Flesch band (plain English for a
// general audience) and tapers off on both sides.
func readabilityScore(flesch float64) float64 {
	switch {
	case flesch >= 50 && flesch <= 70:
		return 100
	case flesch > 70:
		// Very easy text is fine, just slightly less ideal for assessment.
		return clamp(100-(flesch-70), 70, 100)
	default:
		// Below 50 the text is getting dense; scale down toward 0.
		return clamp(flesch*2, 0, 100)
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
