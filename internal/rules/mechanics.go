package rules

import (
	"unicode"
	"unicode/utf8"

	"github.com/edulingua/backend/internal/domain/analysis"
)

// Capitalization flags a sentence that starts with a lower-case letter.
type Capitalization struct{}

func (Capitalization) ID() string { return "mechanics.capitalization" }

func (r Capitalization) Detect(s Sentence) *Finding {
	first, size := utf8.DecodeRuneInString(s.Text)
	if first == utf8.RuneError || !unicode.IsLetter(first) || !unicode.IsLower(first) {
		return nil
	}

	corrected := string(unicode.ToUpper(first)) + s.Text[size:]
	return &Finding{
		Record: analysis.ErrorRecord{
			Type:                analysis.ErrorCapitalization,
			Span:                analysis.Span{Start: s.Offset, End: s.Offset + size},
			SurfaceText:         s.Text[:size],
			SuggestedCorrection: string(unicode.ToUpper(first)),
			Explanation:         "Sentence should start with a capital letter",
			RuleID:              r.ID(),
		},
		Corrected: corrected,
	}
}

// Punctuation flags a sentence with no terminal punctuation and appends a
// period.
type Punctuation struct{}

func (Punctuation) ID() string { return "mechanics.terminal_punctuation" }

func (r Punctuation) Detect(s Sentence) *Finding {
	last, size := utf8.DecodeLastRuneInString(s.Text)
	if last == utf8.RuneError || last == '.' || last == '!' || last == '?' {
		return nil
	}

	return &Finding{
		Record: analysis.ErrorRecord{
			Type:                analysis.ErrorPunctuation,
			Span:                analysis.Span{Start: s.Offset + len(s.Text) - size, End: s.Offset + len(s.Text)},
			SurfaceText:         s.Text[len(s.Text)-size:],
			SuggestedCorrection: s.Text[len(s.Text)-size:] + ".",
			Explanation:         "Sentence should end with '.', '!' or '?'",
			RuleID:              r.ID(),
		},
		Corrected: s.Text + ".",
	}
}
