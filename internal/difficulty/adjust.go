package difficulty

import (
	"context"
	"strings"
	"time"

	"github.com/edulingua/backend/internal/rewriter"
	"github.com/edulingua/backend/internal/textproc"
)

// tolerance is how close to the target score an adjusted text must land
// to count as on-level.
const tolerance = 0.15

// simplerSynonyms downshifts common academic words. Applied only when
// simplifying (target below current level).
var simplerSynonyms = map[string]string{
	"utilize":       "use",
	"approximately": "about",
	"demonstrate":   "show",
	"facilitate":    "help",
	"consequently":  "so",
	"furthermore":   "also",
	"nevertheless":  "but",
	"commence":      "start",
	"numerous":      "many",
	"sufficient":    "enough",
	"purchase":      "buy",
	"assistance":    "help",
	"endeavor":      "try",
	"inquire":       "ask",
}

// AdjustResult reports an attempt to move a text to a target band.
type AdjustResult struct {
	OriginalText   string   `json:"original_text"`
	AdjustedText   string   `json:"adjusted_text"`
	OriginalScore  float64  `json:"original_score"`
	AdjustedScore  float64  `json:"adjusted_score"`
	OriginalLevel  string   `json:"original_level"`
	TargetLevel    string   `json:"target_level"`
	OnTarget       bool     `json:"on_target"`
	Adjustments    []string `json:"adjustments"`
	UsedAISimplify bool     `json:"used_ai_simplify"`
}

// Estimator adjusts texts toward a target band, optionally using the
// rewriting collaborator for a full simplification pass.
type Estimator struct {
	rewriter rewriter.Rewriter // nil for rule-only adjustment
	timeout  time.Duration
}

func NewEstimator(rw rewriter.Rewriter, timeout time.Duration) *Estimator {
	return &Estimator{rewriter: rw, timeout: timeout}
}

// Adjust rewrites text toward targetLevel. Deterministic transforms run
// first; when they miss the target score and a collaborator is available,
// a simplification rewrite is tried. A still-missed target is reported in
// Adjustments, never as an error.
func (e *Estimator) Adjust(ctx context.Context, text, targetLevel string) AdjustResult {
	res := AdjustResult{
		OriginalText:  text,
		TargetLevel:   targetLevel,
		OriginalScore: Score(text),
	}
	res.OriginalLevel = LevelFor(res.OriginalScore)

	target := TargetScore(targetLevel)
	adjusted := text

	if target < res.OriginalScore {
		if out, changed := substituteSynonyms(adjusted); changed {
			adjusted = out
			res.Adjustments = append(res.Adjustments, "replaced complex words with simpler synonyms")
		}
		if out, changed := splitLongSentences(adjusted, BandFor(targetLevel).MaxSentenceLen); changed {
			adjusted = out
			res.Adjustments = append(res.Adjustments, "split long sentences")
		}
	}

	score := Score(adjusted)
	if distance(score, target) > tolerance && e.rewriter != nil {
		rctx, cancel := context.WithTimeout(ctx, e.timeout)
		out, err := e.rewriter.Rewrite(rctx, adjusted, rewriter.SimplifyTo(targetLevel))
		cancel()
		if err == nil && out != "" {
			if s := Score(out); distance(s, target) < distance(score, target) {
				adjusted, score = out, s
				res.UsedAISimplify = true
				res.Adjustments = append(res.Adjustments, "rewrote text for the target band")
			}
		}
	}

	res.AdjustedText = adjusted
	res.AdjustedScore = score
	res.OnTarget = distance(score, target) <= tolerance
	if !res.OnTarget {
		if score > target {
			res.Adjustments = append(res.Adjustments, "text is still above the target band; consider shorter sentences and simpler vocabulary")
		} else {
			res.Adjustments = append(res.Adjustments, "text is below the target band; consider richer vocabulary and longer sentences")
		}
	}
	return res
}

// substituteSynonyms swaps known complex words for simpler ones,
// preserving initial capitalization.
func substituteSynonyms(text string) (string, bool) {
	var b strings.Builder
	changed := false
	last := 0
	for _, tok := range textproc.Tokenize(text) {
		lower := strings.ToLower(tok.Text)
		simple, ok := simplerSynonyms[lower]
		if !ok {
			continue
		}
		if tok.Text[0] >= 'A' && tok.Text[0] <= 'Z' {
			simple = strings.ToUpper(simple[:1]) + simple[1:]
		}
		b.WriteString(text[last:tok.Start])
		b.WriteString(simple)
		last = tok.End
		changed = true
	}
	if !changed {
		return text, false
	}
	b.WriteString(text[last:])
	return b.String(), true
}

// splitLongSentences breaks sentences over maxLen words at a
// coordinating conjunction near the middle.
func splitLongSentences(text string, maxLen float64) (string, bool) {
	sentences, err := textproc.Segment(text)
	if err != nil {
		return text, false
	}

	var out []string
	changed := false
	for _, seg := range sentences {
		s := strings.TrimSpace(seg.Text)
		if s == "" {
			continue
		}
		if float64(len(textproc.Words(s))) <= maxLen {
			out = append(out, s)
			continue
		}
		first, second, ok := splitAtConjunction(s)
		if !ok {
			out = append(out, s)
			continue
		}
		out = append(out, first, second)
		changed = true
	}
	if !changed {
		return text, false
	}
	return strings.Join(out, " "), true
}

var splitConjunctions = map[string]bool{"and": true, "but": true, "so": true, "because": true}

// splitAtConjunction splits one sentence at the conjunction closest to
// its middle, producing two complete sentences.
func splitAtConjunction(s string) (string, string, bool) {
	tokens := textproc.Tokenize(s)
	mid := len(tokens) / 2

	best := -1
	bestDist := len(tokens)
	for i, tok := range tokens {
		if i == 0 || i == len(tokens)-1 {
			continue
		}
		if !splitConjunctions[strings.ToLower(tok.Text)] {
			continue
		}
		if d := abs(i - mid); d < bestDist {
			best, bestDist = i, d
		}
	}
	if best < 0 {
		return "", "", false
	}

	first := strings.TrimSpace(s[:tokens[best].Start])
	first = strings.TrimRight(first, ",;")
	if !strings.HasSuffix(first, ".") {
		first += "."
	}

	second := strings.TrimSpace(s[tokens[best].End:])
	second = strings.TrimLeft(second, ", ")
	if second == "" {
		return "", "", false
	}
	second = strings.ToUpper(second[:1]) + second[1:]
	return first, second, true
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
