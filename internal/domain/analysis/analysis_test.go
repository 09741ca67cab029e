package analysis

import (
	"testing"
	"time"
)

func rec(start, end int) ErrorRecord {
	return ErrorRecord{
		Type:   ErrorSpelling,
		Span:   Span{Start: start, End: end},
		RuleID: "spelling.common_misspellings",
	}
}

func TestSortAndMergeSorts(t *testing.T) {
	out := SortAndMerge([]ErrorRecord{rec(10, 12), rec(0, 3)})
	if len(out) != 2 {
		t.Fatalf("got %d records, want 2", len(out))
	}
	if out[0].Span.Start != 0 || out[1].Span.Start != 10 {
		t.Errorf("records not sorted: %+v", out)
	}
}

func TestSortAndMergeDropsOverlaps(t *testing.T) {
	out := SortAndMerge([]ErrorRecord{rec(0, 5), rec(3, 8), rec(5, 9)})
	if len(out) != 2 {
		t.Fatalf("got %d records, want 2: %+v", len(out), out)
	}
	if out[0].Span != (Span{0, 5}) || out[1].Span != (Span{5, 9}) {
		t.Errorf("wrong survivors: %+v", out)
	}
}

func validResult() *AnalysisResult {
	return &AnalysisResult{
		ID:           "abc123",
		UserRef:      "u1",
		OriginalText: "i am student",
		Errors:       []ErrorRecord{rec(5, 12)},
		QualityScore: 75,
		Grade:        "C",
		Proficiency:  ProficiencyEstimate{CEFRLevel: "A2", Confidence: 0.66},
		Status:       StatusOK,
		CreatedAt:    time.Now(),
	}
}

func TestValidateAccepts(t *testing.T) {
	if err := validResult().Validate(); err != nil {
		t.Errorf("valid result rejected: %v", err)
	}
}

func TestValidateRejectsOverlap(t *testing.T) {
	r := validResult()
	r.Errors = []ErrorRecord{rec(0, 6), rec(4, 10)}
	if err := r.Validate(); err == nil {
		t.Error("overlapping spans not rejected")
	}
}

func TestValidateRejectsOutOfBoundsSpan(t *testing.T) {
	r := validResult()
	r.Errors = []ErrorRecord{rec(5, 100)}
	if err := r.Validate(); err == nil {
		t.Error("span past end of text not rejected")
	}
}

func TestValidateRejectsBadScores(t *testing.T) {
	r := validResult()
	r.QualityScore = 101
	if err := r.Validate(); err == nil {
		t.Error("quality score above 100 not rejected")
	}

	r = validResult()
	r.Proficiency.Confidence = 1.5
	if err := r.Validate(); err == nil {
		t.Error("confidence above 1 not rejected")
	}
}

func TestFaultErrorMessage(t *testing.T) {
	err := &FaultError{Op: "detect", Detail: "bad span"}
	if err.Error() != "rule engine fault in detect: bad span" {
		t.Errorf("message = %q", err.Error())
	}
}
