package store

import (
	"errors"
	"time"

	"github.com/edulingua/backend/internal/domain/analysis"
)

// ErrNotFound is returned by Get for an unknown analysis ID.
var ErrNotFound = errors.New("not found")

// Store persists completed analyses for progress tracking.
type Store interface {
	// Append saves one finished analysis.
	Append(result *analysis.AnalysisResult) error

	// Get returns one analysis by ID, or ErrNotFound.
	Get(id string) (*analysis.AnalysisResult, error)

	// Query returns a learner's analyses from since onward, oldest first.
	// A learner with no analyses yields an empty slice, not ErrNotFound.
	Query(userRef string, since time.Time) ([]*analysis.AnalysisResult, error)

	// Recent returns a learner's newest n analyses, newest first.
	Recent(userRef string, n int) ([]*analysis.AnalysisResult, error)
}
