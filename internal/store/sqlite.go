// internal/store/sqlite.go
package store

import (
	"database/sql"
	"encoding/json"
	"time"

	_ "modernc.org/sqlite"

	"github.com/edulingua/backend/internal/domain/analysis"
)

const schema = `
CREATE TABLE IF NOT EXISTS analyses (
    id TEXT PRIMARY KEY,
    user_ref TEXT NOT NULL,
    created_at INTEGER NOT NULL,
    original_text TEXT NOT NULL,
    corrected_text TEXT NOT NULL,
    errors TEXT NOT NULL,
    readability REAL NOT NULL,
    lexical_diversity REAL NOT NULL,
    coherence REAL NOT NULL,
    quality_score REAL NOT NULL,
    grade TEXT NOT NULL,
    cefr_level TEXT NOT NULL,
    confidence REAL NOT NULL,
    status TEXT NOT NULL,
    ai_suggestion TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_analyses_user_created ON analyses (user_ref, created_at);
`

type SQLiteStore struct {
	db *sql.DB
}

var _ Store = (*SQLiteStore)(nil)

func NewSQLite(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(schema); err != nil {
		return nil, err
	}

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) Append(result *analysis.AnalysisResult) error {
	errorsJSON, err := json.Marshal(result.Errors)
	if err != nil {
		return err
	}

	_, err = s.db.Exec(
		`INSERT INTO analyses (
			id, user_ref, created_at, original_text, corrected_text, errors,
			readability, lexical_diversity, coherence, quality_score, grade,
			cefr_level, confidence, status, ai_suggestion
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		result.ID,
		result.UserRef,
		result.CreatedAt.UnixNano(),
		result.OriginalText,
		result.CorrectedText,
		string(errorsJSON),
		result.ReadabilityScore,
		result.LexicalDiversity,
		result.CoherenceScore,
		result.QualityScore,
		result.Grade,
		result.Proficiency.CEFRLevel,
		result.Proficiency.Confidence,
		string(result.Status),
		result.AISuggestion,
	)
	return err
}

const selectColumns = `
	id, user_ref, created_at, original_text, corrected_text, errors,
	readability, lexical_diversity, coherence, quality_score, grade,
	cefr_level, confidence, status, ai_suggestion`

func (s *SQLiteStore) Get(id string) (*analysis.AnalysisResult, error) {
	rows, err := s.db.Query("SELECT"+selectColumns+" FROM analyses WHERE id = ?", id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	results, err := scanResults(rows)
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, ErrNotFound
	}
	return results[0], nil
}

func (s *SQLiteStore) Query(userRef string, since time.Time) ([]*analysis.AnalysisResult, error) {
	rows, err := s.db.Query(
		"SELECT"+selectColumns+" FROM analyses WHERE user_ref = ? AND created_at >= ? ORDER BY created_at, id",
		userRef, since.UnixNano(),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanResults(rows)
}

func (s *SQLiteStore) Recent(userRef string, n int) ([]*analysis.AnalysisResult, error) {
	rows, err := s.db.Query(
		"SELECT"+selectColumns+" FROM analyses WHERE user_ref = ? ORDER BY created_at DESC, id DESC LIMIT ?",
		userRef, n,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanResults(rows)
}

func scanResults(rows *sql.Rows) ([]*analysis.AnalysisResult, error) {
	var results []*analysis.AnalysisResult
	for rows.Next() {
		var r analysis.AnalysisResult
		var createdAt int64
		var errorsJSON, status string
		if err := rows.Scan(
			&r.ID,
			&r.UserRef,
			&createdAt,
			&r.OriginalText,
			&r.CorrectedText,
			&errorsJSON,
			&r.ReadabilityScore,
			&r.LexicalDiversity,
			&r.CoherenceScore,
			&r.QualityScore,
			&r.Grade,
			&r.Proficiency.CEFRLevel,
			&r.Proficiency.Confidence,
			&status,
			&r.AISuggestion,
		); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(errorsJSON), &r.Errors); err != nil {
			return nil, err
		}
		r.CreatedAt = time.Unix(0, createdAt).UTC()
		r.Status = analysis.Status(status)
		results = append(results, &r)
	}
	return results, rows.Err()
}
