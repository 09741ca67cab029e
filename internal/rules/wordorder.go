package rules

import (
	"fmt"

	"github.com/edulingua/backend/internal/domain/analysis"
)

// WordOrder restructures a closed set of malformed first-person
// introductions ("name Nishanth I", "i Nishanth name", "Nishanth am i")
// into the canonical "My name is X." / "I am X." templates. This is
// template matching, not parsing: any sentence outside the set passes
// through untouched and unflagged.
type WordOrder struct{}

func (WordOrder) ID() string { return "word_order.name_template" }

// reserved words can never be the name slot of a template.
var reservedNameWords = map[string]bool{
	"name": true, "i": true, "am": true, "is": true, "are": true,
	"my": true, "your": true, "his": true, "her": true, "their": true,
	"our": true, "the": true, "a": true, "an": true, "to": true,
}

func isNameSlot(word string) bool {
	return isAlphabetic(word) && !reservedNameWords[word]
}

func (r WordOrder) Detect(s Sentence) *Finding {
	w := s.words()

	var corrected string
	switch len(w) {
	case 3:
		switch {
		// "name Nishanth I" / "Nishanth name I"
		case w[2] == "i" && w[0] == "name" && isNameSlot(w[1]):
			corrected = "My name is " + capitalize(w[1]) + "."
		case w[2] == "i" && w[1] == "name" && isNameSlot(w[0]):
			corrected = "My name is " + capitalize(w[0]) + "."
		// "i Nishanth name"
		case w[0] == "i" && w[2] == "name" && isNameSlot(w[1]):
			corrected = "My name is " + capitalize(w[1]) + "."
		// "Nishanth am i"
		case w[1] == "am" && w[2] == "i" && isNameSlot(w[0]):
			corrected = "I am " + capitalize(w[0]) + "."
		}
	case 2:
		switch {
		// "name Nishanth"
		case w[0] == "name" && isNameSlot(w[1]):
			corrected = "My name is " + capitalize(w[1]) + "."
		// "Nishanth name"
		case w[1] == "name" && isNameSlot(w[0]):
			corrected = "My name is " + capitalize(w[0]) + "."
		}
	}
	if corrected == "" || corrected == s.Text {
		return nil
	}

	return &Finding{
		Record: analysis.ErrorRecord{
			Type:                analysis.ErrorWordOrder,
			Span:                s.wholeSpan(),
			SurfaceText:         s.Text,
			SuggestedCorrection: corrected,
			Explanation:         fmt.Sprintf("Incorrect word order: use the '%s' form to introduce yourself", corrected),
			RuleID:              r.ID(),
		},
		Corrected:    corrected,
		Restructured: true,
	}
}
