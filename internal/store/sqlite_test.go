package store

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/edulingua/backend/internal/domain/analysis"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLite(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("NewSQLite: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func sampleResult(id, userRef string, at time.Time) *analysis.AnalysisResult {
	return &analysis.AnalysisResult{
		ID:            id,
		UserRef:       userRef,
		OriginalText:  "i am student",
		CorrectedText: "I am a student.",
		Errors: []analysis.ErrorRecord{{
			Type:                analysis.ErrorMissingArticle,
			Span:                analysis.Span{Start: 5, End: 12},
			SurfaceText:         "student",
			SuggestedCorrection: "a student",
			RuleID:              "article.pronoun_be_noun",
		}},
		ReadabilityScore: 85.5,
		LexicalDiversity: 1.0,
		CoherenceScore:   1.0,
		QualityScore:     82.3,
		Grade:            "B",
		Proficiency:      analysis.ProficiencyEstimate{CEFRLevel: "A2", Confidence: 0.66},
		Status:           analysis.StatusOK,
		CreatedAt:        at,
	}
}

func TestAppendAndQuery(t *testing.T) {
	s := newTestStore(t)
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	if err := s.Append(sampleResult("r1", "u1", now)); err != nil {
		t.Fatalf("Append: %v", err)
	}

	results, err := s.Query("u1", now.AddDate(0, 0, -7))
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("got %d results, want 1", len(results))
	}

	got := results[0]
	if got.ID != "r1" || got.CorrectedText != "I am a student." {
		t.Errorf("round trip mismatch: %+v", got)
	}
	if len(got.Errors) != 1 || got.Errors[0].Type != analysis.ErrorMissingArticle {
		t.Errorf("errors did not round trip: %+v", got.Errors)
	}
	if !got.CreatedAt.Equal(now) {
		t.Errorf("CreatedAt = %v, want %v", got.CreatedAt, now)
	}
	if got.Proficiency.CEFRLevel != "A2" {
		t.Errorf("proficiency did not round trip: %+v", got.Proficiency)
	}
}

func TestGetByID(t *testing.T) {
	s := newTestStore(t)
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	if err := s.Append(sampleResult("r1", "u1", now)); err != nil {
		t.Fatalf("Append: %v", err)
	}

	got, err := s.Get("r1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.ID != "r1" || got.UserRef != "u1" {
		t.Errorf("wrong analysis: %+v", got)
	}

	if _, err := s.Get("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("unknown ID error = %v, want ErrNotFound", err)
	}
}

func TestQueryWindowAndOrder(t *testing.T) {
	s := newTestStore(t)
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	for i, id := range []string{"old", "mid", "new"} {
		r := sampleResult(id, "u1", now.AddDate(0, 0, -20+i*10)) // -20, -10, 0 days
		if err := s.Append(r); err != nil {
			t.Fatalf("Append(%s): %v", id, err)
		}
	}

	results, err := s.Query("u1", now.AddDate(0, 0, -15))
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2 (window excludes the oldest)", len(results))
	}
	if results[0].ID != "mid" || results[1].ID != "new" {
		t.Errorf("wrong order: %s, %s", results[0].ID, results[1].ID)
	}
}

func TestQueryIsolatesUsers(t *testing.T) {
	s := newTestStore(t)
	now := time.Now().UTC()

	s.Append(sampleResult("a", "u1", now))
	s.Append(sampleResult("b", "u2", now))

	results, err := s.Query("u1", now.AddDate(0, 0, -1))
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(results) != 1 || results[0].UserRef != "u1" {
		t.Errorf("query leaked across users: %+v", results)
	}
}

func TestQueryEmptyIsNotAnError(t *testing.T) {
	s := newTestStore(t)
	results, err := s.Query("nobody", time.Now().AddDate(0, 0, -30))
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("got %d results, want 0", len(results))
	}
}

func TestRecent(t *testing.T) {
	s := newTestStore(t)
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	for i := 0; i < 5; i++ {
		r := sampleResult(string(rune('a'+i)), "u1", now.Add(time.Duration(i)*time.Hour))
		if err := s.Append(r); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}

	results, err := s.Recent("u1", 3)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("got %d results, want 3", len(results))
	}
	if results[0].ID != "e" || results[2].ID != "c" {
		t.Errorf("wrong recency order: %s, %s, %s", results[0].ID, results[1].ID, results[2].ID)
	}
}
