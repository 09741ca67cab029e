// Package proficiency places learner writing on the CEFR scale by letting
// three independent signals vote.
package proficiency

import "github.com/edulingua/backend/internal/domain/analysis"

// levelRank orders CEFR levels ascending. Used to resolve three-way ties
// toward the lower (safer) placement.
var levelRank = map[string]int{
	"A1": 0, "A2": 1, "B1": 2, "B2": 3, "C1": 4, "C2": 5,
}

// Classify votes three single-signal classifiers and returns the majority
// level. When all three disagree, the lowest level wins. Confidence is
// the share of agreeing classifiers.
func Classify(errorRate, flesch, ttr float64) analysis.ProficiencyEstimate {
	votes := []string{
		levelFromErrorRate(errorRate),
		levelFromReadability(flesch),
		levelFromDiversity(ttr),
	}

	counts := map[string]int{}
	for _, v := range votes {
		counts[v]++
	}

	best := votes[0]
	for _, v := range votes[1:] {
		switch {
		case counts[v] > counts[best]:
			best = v
		case counts[v] == counts[best] && levelRank[v] < levelRank[best]:
			best = v
		}
	}

	return analysis.ProficiencyEstimate{
		CEFRLevel:  best,
		Confidence: float64(counts[best]) / float64(len(votes)),
	}
}

// levelFromErrorRate reads proficiency off error density (errors per
// word). More errors means a lower band.
func levelFromErrorRate(rate float64) string {
	switch {
	case rate >= 0.5:
		return "A1"
	case rate >= 0.4:
		return "A2"
	case rate >= 0.3:
		return "B1"
	case rate >= 0.2:
		return "B2"
	case rate >= 0.1:
		return "C1"
	default:
		return "C2"
	}
}

// levelFromReadability reads proficiency off the Flesch score of the
// learner's own writing. Simpler prose suggests an earlier band.
func levelFromReadability(flesch float64) string {
	switch {
	case flesch >= 80:
		return "A1"
	case flesch >= 70:
		return "A2"
	case flesch >= 60:
		return "B1"
	case flesch >= 50:
		return "B2"
	case flesch >= 30:
		return "C1"
	default:
		return "C2"
	}
}

// levelFromDiversity reads proficiency off the type-token ratio.
func levelFromDiversity(ttr float64) string {
	switch {
	case ttr < 0.3:
		return "A1"
	case ttr < 0.4:
		return "A2"
	case ttr < 0.5:
		return "B1"
	case ttr < 0.6:
		return "B2"
	case ttr < 0.7:
		return "C1"
	default:
		return "C2"
	}
}
