package miner

import (
	"testing"
	"time"

	"github.com/edulingua/backend/internal/domain/analysis"
)

func entryAt(t analysis.ErrorType, surface string, daysAgo int, now time.Time) Entry {
	return Entry{Type: t, Surface: surface, At: now.AddDate(0, 0, -daysAgo)}
}

func TestMineRecurringPattern(t *testing.T) {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	var entries []Entry
	for i := 0; i < 5; i++ {
		entries = append(entries, entryAt(analysis.ErrorMissingArticle, "student", i, now))
	}
	entries = append(entries, entryAt(analysis.ErrorPunctuation, "d", 2, now))

	report := Mine(entries, 7, now)

	if report.TotalErrors != 6 {
		t.Errorf("TotalErrors = %d, want 6", report.TotalErrors)
	}
	if len(report.MostCommonErrors) == 0 || report.MostCommonErrors[0].ErrorType != analysis.ErrorMissingArticle {
		t.Fatalf("most common = %+v, want missing_article first", report.MostCommonErrors)
	}
	if len(report.ErrorPatterns) != 1 {
		t.Fatalf("got %d patterns, want 1 (punctuation is below threshold): %+v",
			len(report.ErrorPatterns), report.ErrorPatterns)
	}
	p := report.ErrorPatterns[0]
	if p.ErrorType != analysis.ErrorMissingArticle || p.Frequency != 5 {
		t.Errorf("pattern = %+v", p)
	}
	if p.Severity != "high" {
		t.Errorf("severity = %q, want high at frequency 5", p.Severity)
	}
	if len(p.Examples) > 3 {
		t.Errorf("examples capped at 3, got %d", len(p.Examples))
	}
}

func TestMineSeverityMedium(t *testing.T) {
	now := time.Now().UTC()
	var entries []Entry
	for i := 0; i < 3; i++ {
		entries = append(entries, entryAt(analysis.ErrorSpelling, "teh", i, now))
	}
	report := Mine(entries, 30, now)
	if len(report.ErrorPatterns) != 1 || report.ErrorPatterns[0].Severity != "medium" {
		t.Errorf("patterns = %+v, want one medium pattern", report.ErrorPatterns)
	}
}

func TestMineWindowFilter(t *testing.T) {
	now := time.Now().UTC()
	entries := []Entry{
		entryAt(analysis.ErrorSpelling, "teh", 2, now),
		entryAt(analysis.ErrorSpelling, "wich", 40, now), // outside a 30 day window
	}
	report := Mine(entries, 30, now)
	if report.TotalErrors != 1 {
		t.Errorf("TotalErrors = %d, want 1 (old entry excluded)", report.TotalErrors)
	}
}

func TestMineEmptyWindow(t *testing.T) {
	report := Mine(nil, 30, time.Now().UTC())
	if report.TotalErrors != 0 {
		t.Errorf("TotalErrors = %d, want 0", report.TotalErrors)
	}
	if report.WindowDays != 30 {
		t.Errorf("WindowDays = %d, want 30", report.WindowDays)
	}
	if len(report.ErrorPatterns) != 0 || len(report.Recommendations) != 0 {
		t.Errorf("empty window produced patterns or recommendations: %+v", report)
	}
}

func TestRecommendationsComeFromCatalog(t *testing.T) {
	now := time.Now().UTC()
	var entries []Entry
	for i := 0; i < 4; i++ {
		entries = append(entries, entryAt(analysis.ErrorMissingInfinitive, "play", 0, now))
	}
	report := Mine(entries, 7, now)
	if len(report.Recommendations) != 1 {
		t.Fatalf("got %d recommendations, want 1", len(report.Recommendations))
	}
	rec := report.Recommendations[0]
	if rec.Priority != 1 {
		t.Errorf("priority = %d, want 1", rec.Priority)
	}
	if rec.Topic == "" || len(rec.PracticePrompts) == 0 {
		t.Errorf("recommendation missing catalog material: %+v", rec)
	}
}

func TestCatalogCoversEveryErrorType(t *testing.T) {
	types := []analysis.ErrorType{
		analysis.ErrorWordOrder,
		analysis.ErrorMissingArticle,
		analysis.ErrorMissingInfinitive,
		analysis.ErrorSubjectVerbAgreement,
		analysis.ErrorPunctuation,
		analysis.ErrorCapitalization,
		analysis.ErrorSpelling,
	}
	for _, typ := range types {
		if _, ok := catalog[typ]; !ok {
			t.Errorf("catalog has no entry for %q", typ)
		}
	}
}
