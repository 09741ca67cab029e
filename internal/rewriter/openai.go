package rewriter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// OpenAIRewriter rewrites text by calling an OpenAI-compatible LLM
// endpoint (Ollama, LM Studio, vLLM, OpenRouter, etc.).
type OpenAIRewriter struct {
	url    string       // e.g. "http://localhost:1234"
	model  string       // e.g. "qwen3-8b"
	client *http.Client // reused across calls
}

// Compile-time check: *OpenAIRewriter satisfies the Rewriter interface.
var _ Rewriter = (*OpenAIRewriter)(nil)

// RewriteError is returned when a rewrite fails so the caller can
// distinguish "LLM returned something unusable" from "LLM was unreachable."
type RewriteError struct {
	Reason  string
	Wrapped error
}

func (e *RewriteError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("rewrite failed: %s: %v", e.Reason, e.Wrapped)
	}
	return fmt.Sprintf("rewrite failed: %s", e.Reason)
}

func (e *RewriteError) Unwrap() error {
	return e.Wrapped
}

// NewOpenAIRewriter creates a rewriter that calls the given LLM endpoint.
func NewOpenAIRewriter(url, model string) *OpenAIRewriter {
	return &OpenAIRewriter{
		url:   url,
		model: model,
		client: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

const maxAttempts = 2

// Rewrite sends the text and instruction to the LLM and returns the
// rewritten text. It retries once on an empty or echoed response (small
// models sometimes need a second try).
func (r *OpenAIRewriter) Rewrite(ctx context.Context, text string, instruction Instruction) (string, error) {
	prompt := BuildPrompt(text, instruction)

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		raw, err := r.callLLM(ctx, prompt)
		if err != nil {
			lastErr = err
			continue
		}
		out := SanitizeResponse(raw)
		if out == "" {
			lastErr = &RewriteError{Reason: "empty response from LLM"}
			continue
		}
		return out, nil
	}
	return "", &RewriteError{
		Reason:  fmt.Sprintf("failed after %d attempts", maxAttempts),
		Wrapped: lastErr,
	}
}

// ============================================================================
// LLM communication
// ============================================================================

type llmRequest struct {
	Model       string       `json:"model"`
	Messages    []llmMessage `json:"messages"`
	Temperature float64      `json:"temperature"`
}

type llmMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type llmResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// callLLM sends a single request to the LLM and returns the raw text response.
func (r *OpenAIRewriter) callLLM(ctx context.Context, prompt string) (string, error) {
	reqBody := llmRequest{
		Model: r.model,
		Messages: []llmMessage{
			{Role: "user", Content: prompt},
		},
		Temperature: 0,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.url+"/v1/chat/completions", bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("LLM request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("LLM returned status %d", resp.StatusCode)
	}

	var llmResp llmResponse
	if err := json.NewDecoder(resp.Body).Decode(&llmResp); err != nil {
		return "", fmt.Errorf("failed to decode LLM response: %w", err)
	}

	if len(llmResp.Choices) == 0 {
		return "", fmt.Errorf("LLM returned no choices")
	}

	content := llmResp.Choices[0].Message.Content
	if content == "" {
		return "", fmt.Errorf("LLM returned empty content")
	}

	return content, nil
}

// ============================================================================
// Prompt building — kept short and directive for small (4-8B) models.
// The instruction is always restated last so it's the final thing the
// model sees before the text.
// ============================================================================

// BuildPrompt renders a rewrite instruction into a prompt. Shared by both
// providers so they are interchangeable behind the Rewriter interface.
func BuildPrompt(text string, instruction Instruction) string {
	task := "Correct all grammar, spelling, punctuation, capitalization and word-order errors. Preserve the meaning."
	switch {
	case strings.HasPrefix(string(instruction), "rephrase to "):
		tone := strings.TrimPrefix(string(instruction), "rephrase to ")
		task = fmt.Sprintf("Rephrase the text in a %s tone. Preserve the meaning.", tone)
	case strings.HasPrefix(string(instruction), "simplify to "):
		band := strings.TrimPrefix(string(instruction), "simplify to ")
		task = fmt.Sprintf("Rewrite the text so a CEFR %s learner can read it: shorter sentences, simpler words. Preserve the meaning.", band)
	}

	return fmt.Sprintf(`/no_think
You are an English writing assistant for language learners.

TASK: %s

TEXT:
%s

Respond with ONLY the rewritten text — no explanation, no quotes, no markdown.`, task, text)
}

// SanitizeResponse strips markdown fences, surrounding quotes, and label
// prefixes that models sometimes add despite instructions.
func SanitizeResponse(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```text")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	s = strings.TrimSpace(s)
	for _, label := range []string{"Corrected:", "Rewritten:", "Output:"} {
		s = strings.TrimSpace(strings.TrimPrefix(s, label))
	}
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	return strings.TrimSpace(s)
}
