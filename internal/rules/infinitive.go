package rules

import (
	"fmt"
	"strings"

	"github.com/edulingua/backend/internal/domain/analysis"
)

// Infinitive inserts the missing "to" after catenative verbs that take an
// infinitive complement ("i like play football" -> "I like to play
// football."). Both verb lists are closed; anything outside them passes
// through.
type Infinitive struct{}

func (Infinitive) ID() string { return "infinitive.missing_to" }

// catenatives take "to" + verb as their complement.
var catenatives = map[string]bool{
	"like": true, "want": true, "need": true, "love": true, "hate": true,
	"prefer": true, "plan": true, "hope": true, "decide": true, "try": true,
	"start": true, "begin": true, "expect": true, "learn": true, "wish": true,
}

// bareVerbs are common verbs seen as bare complements in learner text.
var bareVerbs = map[string]bool{
	"play": true, "read": true, "write": true, "go": true, "come": true,
	"see": true, "watch": true, "eat": true, "drink": true, "buy": true,
	"sell": true, "make": true, "do": true, "take": true, "give": true,
	"get": true, "study": true, "work": true, "swim": true, "run": true,
	"sing": true, "dance": true, "cook": true, "travel": true, "draw": true,
	"paint": true, "speak": true, "listen": true, "visit": true, "help": true,
}

func (r Infinitive) Detect(s Sentence) *Finding {
	w := s.words()
	if len(w) < 3 {
		return nil
	}
	if !subjectPronouns[w[0]] || !catenatives[w[1]] {
		return nil
	}
	if w[2] == "to" || !bareVerbs[w[2]] {
		return nil
	}

	// Rebuild the sentence with "to" inserted before the bare verb.
	parts := make([]string, 0, len(w)+1)
	parts = append(parts, capitalizeSubject(w[0]), w[1], "to")
	parts = append(parts, w[2:]...)
	corrected := strings.Join(parts, " ") + "."

	verbTok := s.Tokens[2]
	return &Finding{
		Record: analysis.ErrorRecord{
			Type:                analysis.ErrorMissingInfinitive,
			Span:                s.span(verbTok),
			SurfaceText:         verbTok.Text,
			SuggestedCorrection: "to " + w[2],
			Explanation:         fmt.Sprintf("Use 'to' before '%s' after '%s'", w[2], w[1]),
			RuleID:              r.ID(),
		},
		Corrected:    corrected,
		Restructured: true,
	}
}
