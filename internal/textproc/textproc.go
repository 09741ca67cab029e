// Package textproc splits raw submissions into sentences and word tokens.
// All offsets are byte offsets into the string that was passed in, so spans
// can be mapped back onto the original text without re-scanning.
package textproc

import (
	"errors"
	"strings"
	"unicode"
)

// ErrEmptyInput is returned when the trimmed input has zero length.
var ErrEmptyInput = errors.New("input text is empty")

// Sentence is one segment of the input. Text is the raw slice including any
// whitespace that follows the terminal punctuation, so concatenating the
// Text of all sentences reproduces the input exactly.
type Sentence struct {
	Text  string
	Start int
	End   int
}

// Token is a single word with its position inside the string it was
// tokenized from.
type Token struct {
	Text  string
	Start int
	End   int
}

// Segment splits text into sentences on terminal punctuation followed by
// whitespace and an upper-case letter or digit. The final fragment is always
// a sentence even without terminal punctuation.
func Segment(text string) ([]Sentence, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyInput
	}

	var sentences []Sentence
	runes := []rune(text)
	start := 0
	pos := 0 // byte position matching runes[i]

	for i := 0; i < len(runes); i++ {
		r := runes[i]
		size := len(string(r))

		if r == '.' || r == '!' || r == '?' {
			// Consume closing quotes attached to the terminator.
			j := i + 1
			end := pos + size
			for j < len(runes) && (runes[j] == '"' || runes[j] == '\'' || runes[j] == ')') {
				end += len(string(runes[j]))
				j++
			}
			// Consume the whitespace run; it belongs to this sentence.
			k := j
			for k < len(runes) && unicode.IsSpace(runes[k]) {
				end += len(string(runes[k]))
				k++
			}
			// Only break if something sentence-like follows, or input ends.
			if k == len(runes) || unicode.IsUpper(runes[k]) || unicode.IsDigit(runes[k]) || runes[k] == '"' {
				sentences = append(sentences, Sentence{
					Text:  text[start:end],
					Start: start,
					End:   end,
				})
				start = end
				pos = end
				i = k - 1
				continue
			}
		}
		pos += size
	}

	if start < len(text) {
		sentences = append(sentences, Sentence{
			Text:  text[start:],
			Start: start,
			End:   len(text),
		})
	}
	return sentences, nil
}

// Tokenize returns the word tokens of s in order. A token is a maximal run
// of letters, digits and internal apostrophes; punctuation is skipped.
func Tokenize(s string) []Token {
	var tokens []Token
	start := -1
	for i, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || (r == '\'' && start != -1) {
			if start == -1 {
				start = i
			}
			continue
		}
		if start != -1 {
			tokens = append(tokens, newToken(s[start:i], start))
			start = -1
		}
	}
	if start != -1 {
		tokens = append(tokens, newToken(s[start:], start))
	}
	return tokens
}

// newToken trims trailing apostrophes and shrinks the span with the text,
// so s[Start:End] always equals Text.
func newToken(raw string, start int) Token {
	text := strings.TrimRight(raw, "'")
	return Token{Text: text, Start: start, End: start + len(text)}
}

// Words returns just the lower-cased token texts of s.
func Words(s string) []string {
	tokens := Tokenize(s)
	words := make([]string, len(tokens))
	for i, t := range tokens {
		words[i] = strings.ToLower(t.Text)
	}
	return words
}
