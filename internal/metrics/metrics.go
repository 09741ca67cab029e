// Package metrics extracts surface features from learner text: readability,
// lexical diversity, and length statistics. Everything is deterministic and
// computed from counts, so the same text always yields the same features.
package metrics

import (
	"strings"
	"unicode"

	"github.com/edulingua/backend/internal/textproc"
)

// Features are the per-text signals shared by the scorer, the difficulty
// estimator, and the proficiency classifier.
type Features struct {
	WordCount         int
	SentenceCount     int
	SyllableCount     int
	AvgSentenceLength float64 // words per sentence
	AvgWordLength     float64 // letters per word
	FleschReadingEase float64
	TypeTokenRatio    float64
}

// Extract computes all features in one pass. Empty or whitespace-only text
// yields the zero value rather than dividing by zero.
func Extract(text string) Features {
	sentences, err := textproc.Segment(text)
	if err != nil {
		return Features{}
	}
	words := textproc.Words(text)
	if len(words) == 0 {
		return Features{}
	}

	var letters, syllables int
	for _, w := range words {
		letters += len([]rune(w))
		syllables += Syllables(w)
	}

	f := Features{
		WordCount:         len(words),
		SentenceCount:     len(sentences),
		SyllableCount:     syllables,
		AvgSentenceLength: float64(len(words)) / float64(len(sentences)),
		AvgWordLength:     float64(letters) / float64(len(words)),
		TypeTokenRatio:    TypeTokenRatio(words),
	}
	f.FleschReadingEase = fleschReadingEase(len(words), len(sentences), syllables)
	return f
}

// fleschReadingEase is the standard Flesch formula. Scores land roughly in
// [0,100] for natural text; degenerate input is clamped to that range so
// downstream band tables stay total.
func fleschReadingEase(words, sentences, syllables int) float64 {
	if words == 0 || sentences == 0 {
		return 0
	}
	score := 206.835 - 1.015*(float64(words)/float64(sentences)) - 84.6*(float64(syllables)/float64(words))
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

// TypeTokenRatio is unique words over total words, the TTR lexical
// diversity measure. Tokens are expected lower-cased.
func TypeTokenRatio(words []string) float64 {
	if len(words) == 0 {
		return 0
	}
	seen := make(map[string]struct{}, len(words))
	for _, w := range words {
		seen[w] = struct{}{}
	}
	return float64(len(seen)) / float64(len(words))
}

// Syllables estimates the syllable count of a single word by counting
// vowel groups, with the usual silent-e adjustment. Every word counts as
// at least one syllable.
func Syllables(word string) int {
	word = strings.ToLower(word)
	count := 0
	prevVowel := false
	for _, r := range word {
		v := isVowel(r)
		if v && !prevVowel {
			count++
		}
		prevVowel = v
	}
	if strings.HasSuffix(word, "e") && !strings.HasSuffix(word, "le") && count > 1 {
		count--
	}
	if count == 0 {
		count = 1
	}
	return count
}

func isVowel(r rune) bool {
	switch unicode.ToLower(r) {
	case 'a', 'e', 'i', 'o', 'u', 'y':
		return true
	}
	return false
}
