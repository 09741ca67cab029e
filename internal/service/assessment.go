// internal/service/assessment.go
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"time"

	"github.com/edulingua/backend/internal/corrector"
	"github.com/edulingua/backend/internal/difficulty"
	"github.com/edulingua/backend/internal/domain/analysis"
	"github.com/edulingua/backend/internal/id"
	"github.com/edulingua/backend/internal/metrics"
	"github.com/edulingua/backend/internal/miner"
	"github.com/edulingua/backend/internal/proficiency"
	"github.com/edulingua/backend/internal/rewriter"
	"github.com/edulingua/backend/internal/scorer"
	"github.com/edulingua/backend/internal/store"
	"github.com/edulingua/backend/internal/textproc"
	"github.com/edulingua/backend/internal/worker"
)

// profileWindow is how many recent submissions feed the learner profile.
const profileWindow = 10

// batchWorkers bounds concurrent analyses for one batch request.
const batchWorkers = 4

// ValidationError reports rejected input. Handlers map it to 400.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// SubmitRequest is one text submission for analysis.
type SubmitRequest struct {
	UserRef    string
	Text       string
	TargetTone string // optional: also rephrase the corrected text to this tone
}

// AssessmentService runs the full analysis pipeline and persists results.
type AssessmentService struct {
	store     store.Store
	corrector *corrector.Corrector
	estimator *difficulty.Estimator
	rewriter  rewriter.Rewriter // nil when no collaborator configured
	timeout   time.Duration
	logger    *slog.Logger
}

// NewAssessmentService creates an AssessmentService. rw may be nil.
func NewAssessmentService(
	s store.Store,
	c *corrector.Corrector,
	e *difficulty.Estimator,
	rw rewriter.Rewriter,
	timeout time.Duration,
	logger *slog.Logger,
) *AssessmentService {
	return &AssessmentService{
		store:     s,
		corrector: c,
		estimator: e,
		rewriter:  rw,
		timeout:   timeout,
		logger:    logger,
	}
}

// Assess analyzes one submission end to end: correction, feature
// extraction, quality scoring, proficiency estimation, persistence.
func (as *AssessmentService) Assess(ctx context.Context, req SubmitRequest) (*analysis.AnalysisResult, error) {
	if req.UserRef == "" {
		return nil, &ValidationError{Field: "user_ref", Reason: "must not be empty"}
	}

	corrected, err := as.corrector.CorrectParagraph(ctx, req.Text)
	if err != nil {
		if errors.Is(err, textproc.ErrEmptyInput) {
			return nil, &ValidationError{Field: "text", Reason: "must not be empty"}
		}
		return nil, err
	}

	feats := metrics.Extract(req.Text)
	if feats.WordCount == 0 {
		return nil, &ValidationError{Field: "text", Reason: "must contain words"}
	}

	errorRate := 0.0
	if feats.WordCount > 0 {
		errorRate = float64(len(corrected.Records)) / float64(feats.WordCount)
	}

	quality := scorer.Score(scorer.Input{
		Text:              req.Text,
		ErrorCount:        len(corrected.Records),
		WordCount:         feats.WordCount,
		FleschReadingEase: feats.FleschReadingEase,
		LexicalDiversity:  feats.TypeTokenRatio,
		Coherence:         corrected.CoherenceScore,
	})

	result := &analysis.AnalysisResult{
		ID:               id.GenerateID(),
		UserRef:          req.UserRef,
		OriginalText:     req.Text,
		CorrectedText:    corrected.Corrected,
		Errors:           corrected.Records,
		ReadabilityScore: feats.FleschReadingEase,
		LexicalDiversity: feats.TypeTokenRatio,
		CoherenceScore:   corrected.CoherenceScore,
		QualityScore:     quality.OverallScore,
		Grade:            quality.Grade,
		Proficiency:      proficiency.Classify(errorRate, feats.FleschReadingEase, feats.TypeTokenRatio),
		Status:           analysis.StatusOK,
		AISuggestion:     corrected.AISuggestion,
		CreatedAt:        time.Now().UTC(),
	}
	if corrected.Degraded {
		result.Status = analysis.StatusDegraded
	}

	if req.TargetTone != "" {
		as.rephrase(ctx, result, req.TargetTone)
	}

	if err := result.Validate(); err != nil {
		return nil, err
	}
	if err := as.store.Append(result); err != nil {
		return nil, fmt.Errorf("persist analysis: %w", err)
	}
	return result, nil
}

// rephrase asks the collaborator to restate the corrected text in the
// requested tone. Failure degrades the result instead of failing it.
func (as *AssessmentService) rephrase(ctx context.Context, result *analysis.AnalysisResult, tone string) {
	if as.rewriter == nil {
		return
	}
	rctx, cancel := context.WithTimeout(ctx, as.timeout)
	defer cancel()

	out, err := as.rewriter.Rewrite(rctx, result.CorrectedText, rewriter.RephraseTo(tone))
	if err != nil {
		as.logger.Warn("tone rephrase unavailable",
			"user_ref", result.UserRef,
			"error", err,
		)
		result.Status = analysis.StatusDegraded
		return
	}
	if out != "" && out != result.CorrectedText {
		result.AISuggestion = out
	}
}

// AssessBatch analyzes several submissions concurrently and returns the
// results in input order. Per-item failures become per-item errors.
type BatchItem struct {
	Result *analysis.AnalysisResult
	Err    error
}

func (as *AssessmentService) AssessBatch(ctx context.Context, reqs []SubmitRequest) []BatchItem {
	items := make([]BatchItem, len(reqs))
	if len(reqs) == 0 {
		return items
	}

	pool := worker.NewPool[BatchItem](batchWorkers, len(reqs))
	for i, req := range reqs {
		i, req := i, req
		pool.Submit(strconv.Itoa(i), func() BatchItem {
			res, err := as.Assess(ctx, req)
			return BatchItem{Result: res, Err: err}
		})
	}
	pool.Close()

	for range reqs {
		r := <-pool.Results()
		idx, _ := strconv.Atoi(r.JobID)
		items[idx] = r.Output
	}
	return items
}

// Analysis returns one stored analysis by ID. An unknown ID yields
// store.ErrNotFound.
func (as *AssessmentService) Analysis(analysisID string) (*analysis.AnalysisResult, error) {
	if analysisID == "" {
		return nil, &ValidationError{Field: "analysis_id", Reason: "must not be empty"}
	}
	result, err := as.store.Get(analysisID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("load analysis: %w", err)
	}
	return result, nil
}

// Patterns mines a learner's stored errors inside the window.
func (as *AssessmentService) Patterns(userRef string, windowDays int) (miner.Report, error) {
	if windowDays <= 0 {
		return miner.Report{}, &ValidationError{Field: "days", Reason: "must be positive"}
	}
	now := time.Now().UTC()
	results, err := as.store.Query(userRef, now.AddDate(0, 0, -windowDays))
	if err != nil {
		return miner.Report{}, fmt.Errorf("query analyses: %w", err)
	}

	var entries []miner.Entry
	for _, r := range results {
		for _, rec := range r.Errors {
			entries = append(entries, miner.Entry{
				Type:    rec.Type,
				Surface: rec.SurfaceText,
				At:      r.CreatedAt,
			})
		}
	}
	return miner.Mine(entries, windowDays, now), nil
}

// Profile summarizes the learner's recent submissions and recommends a
// practice band. A learner with no history gets the A1 defaults.
func (as *AssessmentService) Profile(userRef string) (difficulty.Profile, error) {
	results, err := as.store.Recent(userRef, profileWindow)
	if err != nil {
		return difficulty.Profile{}, fmt.Errorf("query analyses: %w", err)
	}
	if len(results) == 0 {
		return difficulty.Profile{
			UserRef:         userRef,
			RecommendedBand: "A1",
		}, nil
	}

	var sumErrRate, sumRead, sumQuality float64
	errCounts := make([]float64, len(results))
	for i, r := range results {
		words := len(textproc.Words(r.OriginalText))
		if words > 0 {
			sumErrRate += float64(len(r.Errors)) / float64(words)
		}
		sumRead += r.ReadabilityScore
		sumQuality += r.QualityScore
		errCounts[i] = float64(len(r.Errors))
	}

	n := float64(len(results))
	p := difficulty.Profile{
		UserRef:         userRef,
		Submissions:     len(results),
		AvgErrorRate:    sumErrRate / n,
		AvgReadability:  sumRead / n,
		AvgQualityScore: sumQuality / n,
		Consistency:     consistency(errCounts),
	}
	p.RecommendedBand = difficulty.RecommendedBand(p.AvgErrorRate, p.AvgReadability)
	return p, nil
}

// History returns the learner's analyses from the last windowDays,
// oldest first.
func (as *AssessmentService) History(userRef string, windowDays int) ([]*analysis.AnalysisResult, error) {
	if windowDays <= 0 {
		return nil, &ValidationError{Field: "days", Reason: "must be positive"}
	}
	results, err := as.store.Query(userRef, time.Now().UTC().AddDate(0, 0, -windowDays))
	if err != nil {
		return nil, fmt.Errorf("query analyses: %w", err)
	}
	return results, nil
}

// AdjustDifficulty moves a text toward a target CEFR band.
func (as *AssessmentService) AdjustDifficulty(ctx context.Context, text, targetLevel string) (difficulty.AdjustResult, error) {
	if text == "" {
		return difficulty.AdjustResult{}, &ValidationError{Field: "text", Reason: "must not be empty"}
	}
	valid := false
	for _, lvl := range difficulty.Levels {
		if lvl == targetLevel {
			valid = true
			break
		}
	}
	if !valid {
		return difficulty.AdjustResult{}, &ValidationError{Field: "target_level", Reason: "must be one of A1, A2, B1, B2, C1, C2"}
	}
	return as.estimator.Adjust(ctx, text, targetLevel), nil
}

// ScoreEssay runs the essay scorer over one submission without persisting.
func (as *AssessmentService) ScoreEssay(ctx context.Context, text string) (scorer.EssayResult, *corrector.Result, error) {
	corrected, err := as.corrector.CorrectParagraph(ctx, text)
	if err != nil {
		if errors.Is(err, textproc.ErrEmptyInput) {
			return scorer.EssayResult{}, nil, &ValidationError{Field: "text", Reason: "must not be empty"}
		}
		return scorer.EssayResult{}, nil, err
	}
	feats := metrics.Extract(text)
	if feats.WordCount == 0 {
		return scorer.EssayResult{}, nil, &ValidationError{Field: "text", Reason: "must contain words"}
	}

	res := scorer.ScoreEssay(scorer.Input{
		Text:              text,
		ErrorCount:        len(corrected.Records),
		WordCount:         feats.WordCount,
		FleschReadingEase: feats.FleschReadingEase,
		LexicalDiversity:  feats.TypeTokenRatio,
		Coherence:         corrected.CoherenceScore,
	})
	return res, &corrected, nil
}

// consistency is 1 minus the coefficient of variation of per-submission
// error counts, clamped to [0,1]. Steady writers score high.
func consistency(counts []float64) float64 {
	if len(counts) < 2 {
		return 1
	}
	var sum float64
	for _, c := range counts {
		sum += c
	}
	mean := sum / float64(len(counts))
	if mean == 0 {
		return 1
	}
	var variance float64
	for _, c := range counts {
		variance += (c - mean) * (c - mean)
	}
	variance /= float64(len(counts))
	cv := math.Sqrt(variance) / mean
	if cv > 1 {
		return 0
	}
	return 1 - cv
}
