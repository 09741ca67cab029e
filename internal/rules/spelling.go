package rules

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/edulingua/backend/internal/domain/analysis"
)

// Spelling corrects a closed table of high-frequency learner misspellings.
// It flags the first hit in the sentence; the table is deliberately small
// so the rule never rewrites a word it is not sure about.
type Spelling struct{}

func (Spelling) ID() string { return "spelling.common_misspellings" }

var misspellings = map[string]string{
	"teh":        "the",
	"recieve":    "receive",
	"definately": "definitely",
	"freind":     "friend",
	"becuase":    "because",
	"wich":       "which",
	"alot":       "a lot",
	"untill":     "until",
	"tommorow":   "tomorrow",
	"wierd":      "weird",
	"occured":    "occurred",
	"seperate":   "separate",
	"goverment":  "government",
	"beleive":    "believe",
	"gramer":     "grammar",
	"thier":      "their",
}

func (r Spelling) Detect(s Sentence) *Finding {
	for _, tok := range s.Tokens {
		fixed, ok := misspellings[strings.ToLower(tok.Text)]
		if !ok {
			continue
		}
		// Preserve sentence-initial capitalization.
		if unicode.IsUpper([]rune(tok.Text)[0]) {
			fixed = capitalize(fixed)
		}

		corrected := s.Text[:tok.Start] + fixed + s.Text[tok.End:]
		return &Finding{
			Record: analysis.ErrorRecord{
				Type:                analysis.ErrorSpelling,
				Span:                s.span(tok),
				SurfaceText:         tok.Text,
				SuggestedCorrection: fixed,
				Explanation:         fmt.Sprintf("Possible spelling error: '%s' should be '%s'", tok.Text, fixed),
				RuleID:              r.ID(),
			},
			Corrected: corrected,
		}
	}
	return nil
}
