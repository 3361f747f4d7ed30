// Package stem reduces a word to its morphological root for index
// lookup, backing Backend.Stem (spec.md §4.3.b: single-term queries
// are stored and looked up stemmed, prefixed with "Z").
package stem

import "github.com/kljensen/snowball"

// Language is the snowball algorithm used for every field. notmuch
// picks this from the database's configured stemmer; this port fixes
// it to English, the only language wired end to end.
const Language = "english"

// Word stems word using the Porter2 (Snowball) algorithm. snowball.Stem
// fails only for an unsupported language; in that case the original
// word is returned unchanged.
func Word(word string) string {
	stemmed, err := snowball.Stem(word, Language, true)
	if err != nil {
		return word
	}
	return stemmed
}
