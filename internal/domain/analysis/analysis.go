// Package analysis holds the shared data model of the assessment engine:
// error records, spans, and the per-submission AnalysisResult that every
// other component produces or consumes.
package analysis

import (
	"fmt"
	"sort"
	"time"
)

// ErrorType is the closed set of grammatical defect categories.
type ErrorType string

const (
	ErrorWordOrder            ErrorType = "word_order"
	ErrorMissingArticle       ErrorType = "missing_article"
	ErrorMissingInfinitive    ErrorType = "missing_infinitive"
	ErrorSubjectVerbAgreement ErrorType = "subject_verb_agreement"
	ErrorPunctuation          ErrorType = "punctuation"
	ErrorCapitalization       ErrorType = "capitalization"
	ErrorSpelling             ErrorType = "spelling"
)

// Status records whether the optional rephrasing collaborator contributed
// to a result. Degraded means it was configured but unreachable; the
// rule-based output is still complete.
type Status string

const (
	StatusOK       Status = "ok"
	StatusDegraded Status = "degraded"
)

// Span is a half-open byte range [Start,End) into the original text.
type Span struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// ErrorRecord describes one detected grammatical defect. Records are
// created by the detector and never mutated afterwards.
type ErrorRecord struct {
	Type                ErrorType `json:"type"`
	Span                Span      `json:"span"`
	SurfaceText         string    `json:"surface_text"`
	SuggestedCorrection string    `json:"suggested_correction"`
	Explanation         string    `json:"explanation"`
	RuleID              string    `json:"rule_id"`
}

// ProficiencyEstimate is a pure function of one submission's signals.
type ProficiencyEstimate struct {
	CEFRLevel  string  `json:"cefr_level"`
	Confidence float64 `json:"confidence"`
}

// AnalysisResult is the unit of output for one submission. It is created
// once per request, validated, persisted append-only, and never updated.
type AnalysisResult struct {
	ID               string              `json:"id"`
	UserRef          string              `json:"user_ref"`
	OriginalText     string              `json:"original_text"`
	CorrectedText    string              `json:"corrected_text"`
	Errors           []ErrorRecord       `json:"errors"`
	ReadabilityScore float64             `json:"readability_score"`
	LexicalDiversity float64             `json:"lexical_diversity"`
	CoherenceScore   float64             `json:"coherence_score"`
	QualityScore     float64             `json:"quality_score"`
	Grade            string              `json:"grade"`
	Proficiency      ProficiencyEstimate `json:"proficiency_estimate"`
	Status           Status              `json:"status"`
	AISuggestion     string              `json:"ai_suggestion,omitempty"`
	CreatedAt        time.Time           `json:"created_at"`
}

// FaultError is a rule-engine invariant violation: a programming defect,
// not a user error. It aborts the single request that hit it.
type FaultError struct {
	Op     string
	Detail string
}

func (e *FaultError) Error() string {
	return fmt.Sprintf("rule engine fault in %s: %s", e.Op, e.Detail)
}

// SortAndMerge orders records by span start and drops any record whose span
// overlaps an earlier one. The survivors satisfy the non-overlap invariant.
func SortAndMerge(records []ErrorRecord) []ErrorRecord {
	if len(records) < 2 {
		return records
	}
	sorted := make([]ErrorRecord, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Span.Start < sorted[j].Span.Start
	})

	merged := sorted[:1]
	for _, r := range sorted[1:] {
		if r.Span.Start < merged[len(merged)-1].Span.End {
			continue
		}
		merged = append(merged, r)
	}
	return merged
}

// Validate checks the cross-field invariants of a finished result. A
// failure here is a FaultError: the pipeline produced corrupt output and
// the request must abort rather than persist it.
func (r *AnalysisResult) Validate() error {
	prevEnd := -1
	for i, rec := range r.Errors {
		if rec.Span.Start < 0 || rec.Span.End <= rec.Span.Start {
			return &FaultError{
				Op:     "validate",
				Detail: fmt.Sprintf("error %d (%s): malformed span [%d,%d)", i, rec.RuleID, rec.Span.Start, rec.Span.End),
			}
		}
		if rec.Span.End > len(r.OriginalText) {
			return &FaultError{
				Op:     "validate",
				Detail: fmt.Sprintf("error %d (%s): span end %d exceeds text length %d", i, rec.RuleID, rec.Span.End, len(r.OriginalText)),
			}
		}
		if rec.Span.Start < prevEnd {
			return &FaultError{
				Op:     "validate",
				Detail: fmt.Sprintf("error %d (%s): span [%d,%d) overlaps previous record", i, rec.RuleID, rec.Span.Start, rec.Span.End),
			}
		}
		prevEnd = rec.Span.End
	}
	if r.QualityScore < 0 || r.QualityScore > 100 {
		return &FaultError{Op: "validate", Detail: fmt.Sprintf("quality score %.2f outside [0,100]", r.QualityScore)}
	}
	if r.Proficiency.Confidence < 0 || r.Proficiency.Confidence > 1 {
		return &FaultError{Op: "validate", Detail: fmt.Sprintf("confidence %.3f outside [0,1]", r.Proficiency.Confidence)}
	}
	return nil
}
