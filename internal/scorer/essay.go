package scorer

import (
	"strings"

	"github.com/edulingua/backend/internal/textproc"
)

// Essay blending weights: the base composite dominates, structure and
// argumentation refine it.
const (
	weightEssayBase      = 0.70
	weightEssayStructure = 0.15
	weightEssayArgument  = 0.15
)

// EssayResult extends the composite score with essay-specific components.
type EssayResult struct {
	OverallScore float64   `json:"overall_score"`
	Grade        string    `json:"grade"`
	Components   Breakdown `json:"components"`
	Structure    float64   `json:"structure"`
	Argument     float64   `json:"argument"`
}

// ScoreEssay scores longer-form writing: the regular composite blended
// with paragraph structure and argumentation signals.
func ScoreEssay(in Input) EssayResult {
	base := Score(in)

	structure := structureScore(in.Text)
	argument := argumentScore(in.Text)

	overall := weightEssayBase*base.OverallScore +
		weightEssayStructure*structure +
		weightEssayArgument*argument
	overall = clamp(round1(overall), 0, 100)

	return EssayResult{
		OverallScore: overall,
		Grade:        GradeFor(overall),
		Components:   base.Components,
		Structure:    structure,
		Argument:     argument,
	}
}

// structureScore rewards multi-paragraph organization. One paragraph is a
// wall of text; three or more with substantive openers is full credit.
func structureScore(text string) float64 {
	paragraphs := splitParagraphs(text)
	switch {
	case len(paragraphs) >= 3:
		return 100
	case len(paragraphs) == 2:
		return 80
	default:
		return 50
	}
}

// discourseMarkers signal explicit argumentation links between ideas.
var discourseMarkers = map[string]bool{
	"because": true, "therefore": true, "however": true, "although": true,
	"moreover": true, "furthermore": true, "consequently": true,
	"firstly": true, "secondly": true, "finally": true, "thus": true,
	"nevertheless": true, "whereas": true, "hence": true,
}

// argumentScore counts distinct discourse markers: three or more distinct
// markers is full credit.
func argumentScore(text string) float64 {
	distinct := map[string]bool{}
	for _, w := range textproc.Words(text) {
		if discourseMarkers[w] {
			distinct[w] = true
		}
	}
	switch {
	case len(distinct) >= 3:
		return 100
	case len(distinct) == 2:
		return 85
	case len(distinct) == 1:
		return 70
	default:
		return 50
	}
}

func splitParagraphs(text string) []string {
	var out []string
	for _, p := range strings.Split(text, "\n\n") {
		if strings.TrimSpace(p) != "" {
			out = append(out, p)
		}
	}
	return out
}
