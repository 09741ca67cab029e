package rules

import (
	"fmt"
	"strings"

	"github.com/edulingua/backend/internal/domain/analysis"
)

// Agreement fixes two narrow subject–verb agreement patterns: "there is"
// followed by a plural noun, and a subject pronoun paired with the wrong
// form of "be" ("i is", "he are").
type Agreement struct{}

func (Agreement) ID() string { return "agreement.subject_verb" }

// correctBe maps a subject pronoun to its present-tense "be" form.
var correctBe = map[string]string{
	"i": "am", "he": "is", "she": "is", "it": "is",
	"we": "are", "they": "are", "you": "are",
}

func looksPlural(word string) bool {
	return len(word) > 3 && strings.HasSuffix(word, "s") && !strings.HasSuffix(word, "ss")
}

func (r Agreement) Detect(s Sentence) *Finding {
	w := s.words()

	// "there is" + plural noun later in the sentence.
	for i := 0; i+1 < len(w); i++ {
		if w[i] != "there" || w[i+1] != "is" {
			continue
		}
		for j := i + 2; j < len(w); j++ {
			if !looksPlural(w[j]) {
				continue
			}
			isTok := s.Tokens[i+1]
			corrected := s.Text[:isTok.Start] + "are" + s.Text[isTok.End:]
			return &Finding{
				Record: analysis.ErrorRecord{
					Type:                analysis.ErrorSubjectVerbAgreement,
					Span:                analysis.Span{Start: s.Offset + s.Tokens[i].Start, End: s.Offset + isTok.End},
					SurfaceText:         s.Text[s.Tokens[i].Start:isTok.End],
					SuggestedCorrection: "there are",
					Explanation:         "Use 'there are' with a plural noun",
					RuleID:              r.ID(),
				},
				Corrected: corrected,
			}
		}
	}

	// Subject pronoun with the wrong present-tense "be" form.
	for i := 0; i+1 < len(w); i++ {
		want, ok := correctBe[w[i]]
		if !ok {
			continue
		}
		got := w[i+1]
		if got == want || !beForms[got] || got == "was" || got == "were" {
			continue
		}
		beTok := s.Tokens[i+1]
		corrected := s.Text[:beTok.Start] + want + s.Text[beTok.End:]
		return &Finding{
			Record: analysis.ErrorRecord{
				Type:                analysis.ErrorSubjectVerbAgreement,
				Span:                s.span(beTok),
				SurfaceText:         beTok.Text,
				SuggestedCorrection: want,
				Explanation:         fmt.Sprintf("Use '%s' with '%s'", want, w[i]),
				RuleID:              r.ID(),
			},
			Corrected: corrected,
		}
	}

	return nil
}
