// Package rules implements the grammar rule battery. Each rule is an
// independent object that inspects one sentence and reports at most one
// finding, so rules can be unit-tested in isolation; ordering is owned by
// Battery and must not be changed ad hoc, because the insertion rules
// assume clause order has already been fixed by the restructuring rules.
package rules

import (
	"strings"
	"unicode"

	"github.com/edulingua/backend/internal/domain/analysis"
	"github.com/edulingua/backend/internal/textproc"
)

// Sentence is the unit a rule inspects: one trimmed sentence plus its byte
// offset in the full submission, pre-tokenized once for the whole battery.
type Sentence struct {
	Text   string
	Offset int
	Tokens []textproc.Token
}

// NewSentence tokenizes text and records its offset in the submission.
func NewSentence(text string, offset int) Sentence {
	return Sentence{Text: text, Offset: offset, Tokens: textproc.Tokenize(text)}
}

// Finding is a rule's output: the error record (with an absolute span into
// the submission) and the corrected sentence. Restructured findings replace
// the whole sentence; the battery stops after one, since the remaining
// rules would inspect a sentence that no longer exists.
type Finding struct {
	Record       analysis.ErrorRecord
	Corrected    string
	Restructured bool
}

// Rule detects one class of grammatical defect in a sentence.
type Rule interface {
	ID() string
	Detect(s Sentence) *Finding
}

// Battery returns the rules in their fixed execution order: word-order
// restructuring, then article and infinitive insertion, then agreement,
// mechanics, and spelling.
func Battery() []Rule {
	return []Rule{
		WordOrder{},
		Article{},
		Infinitive{},
		Agreement{},
		Capitalization{},
		Punctuation{},
		Spelling{},
	}
}

// words returns the lower-cased token texts of s.
func (s Sentence) words() []string {
	out := make([]string, len(s.Tokens))
	for i, t := range s.Tokens {
		out[i] = strings.ToLower(t.Text)
	}
	return out
}

// span converts a token position to an absolute span in the submission.
func (s Sentence) span(t textproc.Token) analysis.Span {
	return analysis.Span{Start: s.Offset + t.Start, End: s.Offset + t.End}
}

// wholeSpan covers the entire sentence.
func (s Sentence) wholeSpan() analysis.Span {
	return analysis.Span{Start: s.Offset, End: s.Offset + len(s.Text)}
}

var subjectPronouns = map[string]bool{
	"i": true, "you": true, "he": true, "she": true,
	"it": true, "we": true, "they": true,
}

var beForms = map[string]bool{
	"am": true, "is": true, "are": true, "was": true, "were": true,
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

// capitalizeSubject renders a subject pronoun for sentence-initial
// position ("i" always becomes "I").
func capitalizeSubject(pron string) string {
	if pron == "i" {
		return "I"
	}
	return capitalize(pron)
}

func startsWithVowel(word string) bool {
	if word == "" {
		return false
	}
	switch unicode.ToLower([]rune(word)[0]) {
	case 'a', 'e', 'i', 'o', 'u':
		return true
	}
	return false
}

// indefiniteArticle picks "a" or "an" for a noun.
func indefiniteArticle(noun string) string {
	if startsWithVowel(noun) {
		return "an"
	}
	return "a"
}

func isAlphabetic(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}
