package morph

import (
	"strings"

	"github.com/kljensen/snowball/russian"
)

// Snowball is the analyzer-backed Lemmatizer variant: when an authoritative
// normal-form source is configured the lookup path delegates to it entirely
// and gets a single candidate back, bypassing the rule cascade.
//
// Snowball stems are truncations rather than true dictionary forms, so this
// variant trades recall for speed; it is selected once at startup, never per
// call.
type Snowball struct{}

// Lemmas returns the stem as the only candidate, or nothing when stemming
// does not change the word.
func (Snowball) Lemmas(word string) []string {
	w := strings.ToLower(strings.TrimSpace(word))
	if rlen(w) < 3 || !hasCyrillic.MatchString(w) {
		return nil
	}
	stem := russian.Stem(w, false)
	if stem == "" || stem == w {
		return nil
	}
	return []string{stem}
}
