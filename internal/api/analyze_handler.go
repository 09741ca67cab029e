package api

import (
	"errors"
	"net/http"

	"github.com/edulingua/backend/internal/domain/analysis"
	"github.com/edulingua/backend/internal/service"
)

// Submission length floors. Shorter texts carry too little signal to
// assess meaningfully.
const (
	minAnalyzeLen = 10
	minEssayLen   = 50
	maxBatchSize  = 20
)

// ── Request / Response types ────────────────────────────────────────────────

type AnalyzeRequest struct {
	UserRef    string `json:"user_ref" example:"learner-42"`
	Text       string `json:"text" example:"i am student. i like play football."`
	TargetTone string `json:"target_tone,omitempty" example:"formal"`
}

func (r *AnalyzeRequest) Validate() error {
	if r.UserRef == "" {
		return errors.New("user_ref is required")
	}
	if len(r.Text) < minAnalyzeLen {
		return errors.New("text must be at least 10 characters")
	}
	return nil
}

type BatchAnalyzeRequest struct {
	Items []AnalyzeRequest `json:"items"`
}

func (r *BatchAnalyzeRequest) Validate() error {
	if len(r.Items) == 0 {
		return errors.New("items must not be empty")
	}
	if len(r.Items) > maxBatchSize {
		return errors.New("at most 20 items per batch")
	}
	for i := range r.Items {
		if err := r.Items[i].Validate(); err != nil {
			return err
		}
	}
	return nil
}

type BatchAnalyzeItem struct {
	Result *analysis.AnalysisResult `json:"result,omitempty"`
	Error  string                   `json:"error,omitempty"`
}

type BatchAnalyzeResponse struct {
	Items []BatchAnalyzeItem `json:"items"`
}

type ScoreEssayRequest struct {
	Text string `json:"text"`
}

func (r *ScoreEssayRequest) Validate() error {
	if len(r.Text) < minEssayLen {
		return errors.New("text must be at least 50 characters")
	}
	return nil
}

type AdjustDifficultyRequest struct {
	Text        string `json:"text"`
	TargetLevel string `json:"target_level" example:"A2"`
}

func (r *AdjustDifficultyRequest) Validate() error {
	if r.Text == "" {
		return errors.New("text is required")
	}
	if r.TargetLevel == "" {
		return errors.New("target_level is required")
	}
	return nil
}

// ── Handlers ────────────────────────────────────────────────────────────────

// analyze runs the full pipeline over one submission.
// @Summary      Analyze a text submission
// @Description  Detect and correct grammar errors, score writing quality, and estimate CEFR proficiency.
// @Tags         Analysis
// @Accept       json
// @Produce      json
// @Param        body  body      AnalyzeRequest  true  "Submission to analyze"
// @Success      200   {object}  analysis.AnalysisResult
// @Failure      400   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /analyze [post]
func (h *Handler) analyze(w http.ResponseWriter, r *http.Request) {
	var req AnalyzeRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	result, err := h.svc.Assess(r.Context(), service.SubmitRequest{
		UserRef:    req.UserRef,
		Text:       req.Text,
		TargetTone: req.TargetTone,
	})
	if h.handleServiceError(w, err) {
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// analyzeBatch analyzes several submissions concurrently.
// @Summary      Analyze a batch of submissions
// @Description  Run the analysis pipeline over up to 20 submissions. Items fail independently.
// @Tags         Analysis
// @Accept       json
// @Produce      json
// @Param        body  body      BatchAnalyzeRequest  true  "Submissions to analyze"
// @Success      200   {object}  BatchAnalyzeResponse
// @Failure      400   {object}  map[string]string
// @Router       /analyze/batch [post]
func (h *Handler) analyzeBatch(w http.ResponseWriter, r *http.Request) {
	var req BatchAnalyzeRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	submits := make([]service.SubmitRequest, len(req.Items))
	for i, item := range req.Items {
		submits[i] = service.SubmitRequest{
			UserRef:    item.UserRef,
			Text:       item.Text,
			TargetTone: item.TargetTone,
		}
	}

	items := h.svc.AssessBatch(r.Context(), submits)
	resp := BatchAnalyzeResponse{Items: make([]BatchAnalyzeItem, len(items))}
	for i, item := range items {
		if item.Err != nil {
			resp.Items[i] = BatchAnalyzeItem{Error: item.Err.Error()}
			continue
		}
		resp.Items[i] = BatchAnalyzeItem{Result: item.Result}
	}

	respondJSON(w, http.StatusOK, resp)
}

// getAnalysis returns one stored analysis.
// @Summary      Get an analysis by ID
// @Tags         Analysis
// @Produce      json
// @Param        analysisID  path      string  true  "Analysis ID"
// @Success      200         {object}  analysis.AnalysisResult
// @Failure      404         {object}  map[string]string
// @Router       /analyses/{analysisID} [get]
func (h *Handler) getAnalysis(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.Analysis(r.PathValue("analysisID"))
	if h.handleServiceError(w, err) {
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// scoreEssay scores longer-form writing without persisting a result.
// @Summary      Score an essay
// @Description  Composite quality score plus structure and argumentation components.
// @Tags         Analysis
// @Accept       json
// @Produce      json
// @Param        body  body      ScoreEssayRequest  true  "Essay text"
// @Success      200   {object}  scorer.EssayResult
// @Failure      400   {object}  map[string]string
// @Router       /essays/score [post]
func (h *Handler) scoreEssay(w http.ResponseWriter, r *http.Request) {
	var req ScoreEssayRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	result, _, err := h.svc.ScoreEssay(r.Context(), req.Text)
	if h.handleServiceError(w, err) {
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// adjustDifficulty rewrites a text toward a target CEFR band.
// @Summary      Adjust text difficulty
// @Description  Move a text toward a target CEFR band with deterministic transforms, optionally refined by the AI collaborator.
// @Tags         Difficulty
// @Accept       json
// @Produce      json
// @Param        body  body      AdjustDifficultyRequest  true  "Text and target band"
// @Success      200   {object}  difficulty.AdjustResult
// @Failure      400   {object}  map[string]string
// @Router       /difficulty/adjust [post]
func (h *Handler) adjustDifficulty(w http.ResponseWriter, r *http.Request) {
	var req AdjustDifficultyRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	result, err := h.svc.AdjustDifficulty(r.Context(), req.Text, req.TargetLevel)
	if h.handleServiceError(w, err) {
		return
	}

	respondJSON(w, http.StatusOK, result)
}
