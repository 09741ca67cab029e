// Package difficulty estimates how hard a text is to read, maps texts and
// learners onto CEFR bands, and adjusts texts toward a target band.
package difficulty

import (
	"github.com/edulingua/backend/internal/metrics"
)

// Component weights for the difficulty score.
const (
	weightSentenceLength = 0.3
	weightWordLength     = 0.2
	weightDiversity      = 0.2
	weightReadability    = 0.3
)

// Band describes the text characteristics expected at one CEFR level.
type Band struct {
	Level                string
	MinSentenceLen       float64
	MaxSentenceLen       float64
	MinFlesch            float64
	MaxWordLen           float64
	VocabularyComplexity string
}

// Levels in ascending order of difficulty.
var Levels = []string{"A1", "A2", "B1", "B2", "C1", "C2"}

var bands = map[string]Band{
	"A1": {Level: "A1", MinSentenceLen: 3, MaxSentenceLen: 8, MinFlesch: 90, MaxWordLen: 4.5, VocabularyComplexity: "basic"},
	"A2": {Level: "A2", MinSentenceLen: 5, MaxSentenceLen: 12, MinFlesch: 80, MaxWordLen: 5.0, VocabularyComplexity: "elementary"},
	"B1": {Level: "B1", MinSentenceLen: 8, MaxSentenceLen: 18, MinFlesch: 65, MaxWordLen: 5.5, VocabularyComplexity: "intermediate"},
	"B2": {Level: "B2", MinSentenceLen: 12, MaxSentenceLen: 25, MinFlesch: 50, MaxWordLen: 6.0, VocabularyComplexity: "upper-intermediate"},
	"C1": {Level: "C1", MinSentenceLen: 15, MaxSentenceLen: 35, MinFlesch: 30, MaxWordLen: 6.5, VocabularyComplexity: "advanced"},
	"C2": {Level: "C2", MinSentenceLen: 18, MaxSentenceLen: 45, MinFlesch: 0, MaxWordLen: 7.0, VocabularyComplexity: "native-like"},
}

// targetScores are the difficulty scores the adjuster aims for per band.
var targetScores = map[string]float64{
	"A1": 0.2, "A2": 0.35, "B1": 0.5, "B2": 0.65, "C1": 0.8, "C2": 0.95,
}

// BandFor returns the band table entry for a CEFR level. Unknown levels
// fall back to B1.
func BandFor(level string) Band {
	if b, ok := bands[level]; ok {
		return b
	}
	return bands["B1"]
}

// TargetScore returns the difficulty score the adjuster aims for at the
// given level. Unknown levels fall back to B1.
func TargetScore(level string) float64 {
	if s, ok := targetScores[level]; ok {
		return s
	}
	return targetScores["B1"]
}

// Score computes a normalized difficulty in [0,1] from sentence length,
// word length, lexical diversity, and inverted readability.
func Score(text string) float64 {
	return ScoreFeatures(metrics.Extract(text))
}

// ScoreFeatures computes the difficulty score from already-extracted
// features.
func ScoreFeatures(f metrics.Features) float64 {
	sentComponent := clamp01(f.AvgSentenceLength / 25)
	wordComponent := clamp01((f.AvgWordLength - 4) / 6)
	diversityComponent := clamp01(f.TypeTokenRatio)
	readComponent := clamp01(1 - f.FleschReadingEase/100)

	score := weightSentenceLength*sentComponent +
		weightWordLength*wordComponent +
		weightDiversity*diversityComponent +
		weightReadability*readComponent
	return clamp01(score)
}

// LevelFor maps a difficulty score to the nearest CEFR level by target
// score distance.
func LevelFor(score float64) string {
	best := Levels[0]
	bestDist := distance(score, targetScores[best])
	for _, lvl := range Levels[1:] {
		if d := distance(score, targetScores[lvl]); d < bestDist {
			best, bestDist = lvl, d
		}
	}
	return best
}

// RecommendedBand picks the band a learner should practice at from their
// recent average error rate and average readability of their writing.
func RecommendedBand(avgErrorRate, avgReadability float64) string {
	switch {
	case avgErrorRate < 0.2 && avgReadability > 70:
		return "C1"
	case avgErrorRate < 0.3 && avgReadability > 60:
		return "B2"
	case avgErrorRate < 0.4 && avgReadability > 50:
		return "B1"
	case avgErrorRate < 0.5 && avgReadability > 40:
		return "A2"
	default:
		return "A1"
	}
}

// Profile summarizes a learner's recent writing for band placement.
type Profile struct {
	UserRef         string  `json:"user_ref"`
	Submissions     int     `json:"submissions"`
	AvgErrorRate    float64 `json:"avg_error_rate"`
	AvgReadability  float64 `json:"avg_readability"`
	AvgQualityScore float64 `json:"avg_quality_score"`
	Consistency     float64 `json:"consistency"`
	RecommendedBand string  `json:"recommended_band"`
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func distance(a, b float64) float64 {
	if a > b {
		return a - b
	}
	return b - a
}
