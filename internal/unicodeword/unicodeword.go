// Package unicodeword provides the Unicode word-boundary primitives
// that back Backend.WordIter/Lower, plus IsWordChar (spec.md §6): splitting
// free text into index terms the same way across every text field,
// independent of any particular Western-language tokenization.
package unicodeword

import (
	"strings"
	"unicode"

	"github.com/clipperhouse/uax29/v2/words"
)

// Split segments text on UAX #29 word boundaries and returns only the
// segments that contain at least one letter or digit, discarding
// whitespace and punctuation runs. This is the Go-native equivalent of
// notmuch's unicode_word_iter: a caller that needs "the words in this
// phrase" gets back exactly those, in order.
func Split(text string) []string {
	var out []string
	seg := words.NewSegmenter([]byte(text))
	for seg.Next() {
		word := seg.Value()
		if isWord(word) {
			out = append(out, string(word))
		}
	}
	return out
}

// IsSingleWord reports whether text is, in its entirety, a single
// Unicode word: exactly one UAX #29 word segment whose bounds match
// the whole string. Used to decide term vs. phrase indexing (§4.3.b).
func IsSingleWord(text string) bool {
	words := Split(text)
	return len(words) == 1 && words[0] == text
}

// IsWordChar reports whether r can appear inside a Unicode word
// segment (letters, digits, and the connector punctuation UAX #29
// treats as mid-word, e.g. the apostrophe in "don't").
func IsWordChar(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '\'' || r == '_'
}

// Lower case-folds text the Unicode-aware way.
func Lower(text string) string {
	return strings.ToLower(text)
}

func isWord(segment []byte) bool {
	for _, r := range string(segment) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return true
		}
	}
	return false
}
