package rules

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/edulingua/backend/internal/domain/analysis"
)

// Article inserts a missing indefinite article in the "pronoun + be +
// bare noun" pattern ("i am student" -> "I am a student."). Predicate
// adjectives and proper nouns are excluded so the rule under-detects
// rather than inserting articles where none belong.
type Article struct{}

func (Article) ID() string { return "article.pronoun_be_noun" }

// predicateAdjectives are common "be + X" completions that are not nouns.
var predicateAdjectives = map[string]bool{
	"happy": true, "sad": true, "tired": true, "hungry": true, "fine": true,
	"good": true, "ok": true, "okay": true, "sorry": true, "sure": true,
	"ready": true, "busy": true, "late": true, "early": true, "old": true,
	"young": true, "tall": true, "short": true, "smart": true, "angry": true,
	"excited": true, "bored": true, "cold": true, "hot": true, "well": true,
	"here": true, "there": true, "away": true, "back": true, "home": true,
}

func (r Article) Detect(s Sentence) *Finding {
	w := s.words()
	if len(w) != 3 {
		return nil
	}
	pron, be, noun := w[0], w[1], w[2]
	if !subjectPronouns[pron] || !beForms[be] || !isAlphabetic(noun) {
		return nil
	}
	if predicateAdjectives[noun] || subjectPronouns[noun] {
		return nil
	}
	if strings.HasSuffix(noun, "ing") || strings.HasSuffix(noun, "ed") {
		return nil
	}
	// A capitalized completion is treated as a proper noun.
	raw := []rune(s.Tokens[2].Text)
	if unicode.IsUpper(raw[0]) {
		return nil
	}

	art := indefiniteArticle(noun)
	corrected := fmt.Sprintf("%s %s %s %s.", capitalizeSubject(pron), be, art, noun)

	return &Finding{
		Record: analysis.ErrorRecord{
			Type:                analysis.ErrorMissingArticle,
			Span:                s.span(s.Tokens[2]),
			SurfaceText:         s.Tokens[2].Text,
			SuggestedCorrection: art + " " + noun,
			Explanation:         fmt.Sprintf("Missing article: use '%s' or 'the' before '%s'", art, noun),
			RuleID:              r.ID(),
		},
		Corrected:    corrected,
		Restructured: true,
	}
}
