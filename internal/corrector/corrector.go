// Package corrector applies the sentence-level detector across a whole
// paragraph and adds a cross-sentence coherence pass.
package corrector

import (
	"context"
	"strings"

	"github.com/edulingua/backend/internal/detector"
	"github.com/edulingua/backend/internal/domain/analysis"
	"github.com/edulingua/backend/internal/textproc"
)

// Fixed coherence penalties. The score starts at 1.0 and is floored at 0.
const (
	penaltyRepeatedOpeners  = 0.2  // three or more consecutive sentences opening with the same word
	penaltyDanglingPronoun  = 0.15 // a leading pronoun with no prior noun to refer to
	repeatedOpenerRunLength = 3
	minEntityLength         = 3
)

// Change describes one corrected sentence.
type Change struct {
	SentenceIndex int    `json:"sentence_index"`
	Original      string `json:"original"`
	Corrected     string `json:"corrected"`
	Message       string `json:"message"`
}

// Result is the paragraph-level correction output.
type Result struct {
	Original         string
	Corrected        string
	Changes          []Change
	Records          []analysis.ErrorRecord
	CoherenceScore   float64
	ContextPreserved bool
	AISuggestion     string
	Degraded         bool
}

// Corrector corrects paragraphs sentence by sentence. Sentences are
// independent: one sentence producing no correction never affects the
// others.
type Corrector struct {
	det *detector.Detector
}

func New(det *detector.Detector) *Corrector {
	return &Corrector{det: det}
}

// CorrectParagraph corrects every sentence of text and scores the
// coherence of the corrected sequence. The only error it returns is a
// *analysis.FaultError (rule engine defect) or textproc.ErrEmptyInput.
func (c *Corrector) CorrectParagraph(ctx context.Context, text string) (Result, error) {
	sentences, err := textproc.Segment(text)
	if err != nil {
		return Result{}, err
	}

	res := Result{Original: text, ContextPreserved: true}
	corrected := make([]string, 0, len(sentences))

	for i, seg := range sentences {
		trimmed := strings.TrimSpace(seg.Text)
		if trimmed == "" {
			continue
		}
		offset := seg.Start + strings.Index(seg.Text, trimmed)

		det, err := c.det.Detect(ctx, trimmed, offset)
		if err != nil {
			return Result{}, err
		}
		if det.Degraded {
			res.Degraded = true
		}
		if det.AISuggestion != "" && res.AISuggestion == "" {
			res.AISuggestion = det.AISuggestion
		}

		corrected = append(corrected, det.Corrected)
		res.Records = append(res.Records, det.Records...)

		if det.Corrected != trimmed {
			res.Changes = append(res.Changes, Change{
				SentenceIndex: i,
				Original:      trimmed,
				Corrected:     det.Corrected,
				Message:       changeMessage(det.Records),
			})
			if !entitiesPreserved(trimmed, det.Corrected) {
				res.ContextPreserved = false
			}
		}
	}

	res.Corrected = strings.Join(corrected, " ")
	res.CoherenceScore = coherenceScore(corrected)
	return res, nil
}

func changeMessage(records []analysis.ErrorRecord) string {
	if len(records) == 0 {
		return "corrected"
	}
	parts := make([]string, len(records))
	for i, r := range records {
		parts[i] = string(r.Type)
	}
	return "fixed: " + strings.Join(parts, ", ")
}

// leadingPronouns are the referring words that need a prior antecedent.
var leadingPronouns = map[string]bool{
	"he": true, "she": true, "it": true, "they": true,
	"this": true, "that": true, "these": true, "those": true,
}

// functionWords never count as topic entities or antecedent candidates.
var functionWords = map[string]bool{
	"the": true, "a": true, "an": true, "is": true, "am": true, "are": true,
	"was": true, "were": true, "be": true, "to": true, "of": true, "in": true,
	"on": true, "at": true, "and": true, "but": true, "or": true, "my": true,
	"your": true, "his": true, "her": true, "its": true, "our": true,
	"their": true, "i": true, "you": true, "he": true, "she": true,
	"it": true, "we": true, "they": true, "this": true, "that": true,
	"these": true, "those": true, "not": true, "very": true, "with": true,
	"for": true, "have": true, "has": true, "had": true, "do": true,
	"does": true, "did": true, "will": true, "would": true, "can": true,
	"could": true, "so": true, "as": true, "like": true,
}

// coherenceScore runs the two checks over the corrected sentence sequence.
func coherenceScore(sentences []string) float64 {
	score := 1.0

	// Repeated openers: each run of >= 3 sentences starting with the same
	// word is one deduction.
	run := 1
	var prevOpener string
	for _, s := range sentences {
		w := textproc.Words(s)
		opener := ""
		if len(w) > 0 {
			opener = w[0]
		}
		if opener != "" && opener == prevOpener {
			run++
			if run == repeatedOpenerRunLength {
				score -= penaltyRepeatedOpeners
			}
		} else {
			run = 1
		}
		prevOpener = opener
	}

	// Dangling pronouns: a sentence after the first that opens with a
	// referring pronoun needs some prior noun-like word.
	seenNoun := false
	for i, s := range sentences {
		w := textproc.Words(s)
		if i > 0 && len(w) > 0 && leadingPronouns[w[0]] && !seenNoun {
			score -= penaltyDanglingPronoun
		}
		for _, word := range w {
			if len(word) >= minEntityLength && !functionWords[word] {
				seenNoun = true
			}
		}
	}

	if score < 0 {
		return 0
	}
	return score
}

// entitiesPreserved reports whether every topic entity of the original
// sentence survived into the corrected one.
func entitiesPreserved(original, corrected string) bool {
	after := make(map[string]bool)
	for _, w := range textproc.Words(corrected) {
		after[w] = true
	}
	for _, w := range textproc.Words(original) {
		if len(w) >= minEntityLength && !functionWords[w] && !after[w] {
			return false
		}
	}
	return true
}
