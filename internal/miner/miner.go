// Package miner aggregates a learner's historical errors into recurring
// patterns and practice recommendations.
package miner

import (
	"sort"
	"time"

	"github.com/edulingua/backend/internal/domain/analysis"
)

// Aggregation thresholds.
const (
	patternMinFrequency = 3 // below this a type is noise, not a pattern
	highSeverityAt      = 5
	maxExamples         = 3
	maxRecommendations  = 5
)

// Entry is one historical error occurrence.
type Entry struct {
	Type    analysis.ErrorType
	Surface string
	At      time.Time
}

// Pattern is one recurring error type inside the window.
type Pattern struct {
	ErrorType analysis.ErrorType `json:"error_type"`
	Frequency int                `json:"frequency"`
	Severity  string             `json:"severity"`
	Examples  []string           `json:"examples"`
}

// Recommendation is a practice suggestion for one pattern.
type Recommendation struct {
	ErrorType       analysis.ErrorType `json:"error_type"`
	Frequency       int                `json:"frequency"`
	Priority        int                `json:"priority"`
	Topic           string             `json:"topic"`
	PracticePrompts []string           `json:"practice_prompts"`
}

// TypeCount pairs an error type with its count, for the frequency ranking.
type TypeCount struct {
	ErrorType analysis.ErrorType `json:"error_type"`
	Count     int                `json:"count"`
}

// Report is the full mining output for one learner and window.
type Report struct {
	WindowDays       int              `json:"window_days"`
	TotalErrors      int              `json:"total_errors"`
	MostCommonErrors []TypeCount      `json:"most_common_errors"`
	ErrorPatterns    []Pattern        `json:"error_patterns"`
	Recommendations  []Recommendation `json:"recommendations"`
}

// Mine aggregates entries inside the last windowDays before now. An empty
// window yields a zero-valued report, not an error.
func Mine(entries []Entry, windowDays int, now time.Time) Report {
	report := Report{WindowDays: windowDays}
	cutoff := now.AddDate(0, 0, -windowDays)

	counts := map[analysis.ErrorType]int{}
	examples := map[analysis.ErrorType][]string{}
	for _, e := range entries {
		if e.At.Before(cutoff) || e.At.After(now) {
			continue
		}
		report.TotalErrors++
		counts[e.Type]++
		if len(examples[e.Type]) < maxExamples && e.Surface != "" {
			examples[e.Type] = append(examples[e.Type], e.Surface)
		}
	}
	if report.TotalErrors == 0 {
		return report
	}

	for t, n := range counts {
		report.MostCommonErrors = append(report.MostCommonErrors, TypeCount{ErrorType: t, Count: n})
	}
	sortByFrequency(report.MostCommonErrors)

	for _, tc := range report.MostCommonErrors {
		if tc.Count < patternMinFrequency {
			continue
		}
		severity := "medium"
		if tc.Count >= highSeverityAt {
			severity = "high"
		}
		report.ErrorPatterns = append(report.ErrorPatterns, Pattern{
			ErrorType: tc.ErrorType,
			Frequency: tc.Count,
			Severity:  severity,
			Examples:  examples[tc.ErrorType],
		})
	}

	for i, p := range report.ErrorPatterns {
		if i == maxRecommendations {
			break
		}
		rem := remediationFor(p.ErrorType)
		report.Recommendations = append(report.Recommendations, Recommendation{
			ErrorType:       p.ErrorType,
			Frequency:       p.Frequency,
			Priority:        i + 1,
			Topic:           rem.Topic,
			PracticePrompts: rem.Prompts,
		})
	}
	return report
}

// sortByFrequency orders by count descending, then error type ascending
// so equal counts are deterministic.
func sortByFrequency(tcs []TypeCount) {
	sort.Slice(tcs, func(i, j int) bool {
		if tcs[i].Count != tcs[j].Count {
			return tcs[i].Count > tcs[j].Count
		}
		return tcs[i].ErrorType < tcs[j].ErrorType
	})
}
