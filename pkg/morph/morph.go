// Package morph reduces inflected Russian word forms to dictionary base-form
// candidates.
//
// The corpus index stores only canonical forms, so a query like "брендинговом"
// has to be folded back to "брендинг" before it can hit the index. When no
// authoritative analyzer is configured the package falls back to an ordered
// cascade of suffix-substitution rules. Candidates from different rule classes
// are never mixed: without an Oracle the first class whose suffix matches
// decides, with one a class only claims the word when it can produce an
// attested candidate, and the cascade moves on otherwise.
//
// The Oracle promotes and gates candidates that already exist in the index; it
// never invents new ones.
package morph

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// Oracle reports whether a base-form candidate is present in the corpus index.
// A nil Oracle disables index-aware tie-breaking.
type Oracle func(string) bool

// Lemmatizer produces dictionary base-form candidates for one inflected word,
// most likely first. An empty result is a normal outcome: the word is either
// already a base form or outside rule coverage.
type Lemmatizer interface {
	Lemmas(word string) []string
}

// Reducer is the heuristic Lemmatizer built on the suffix-rule cascade.
type Reducer struct {
	oracle Oracle
}

// NewReducer returns a Reducer. oracle may be nil.
func NewReducer(oracle Oracle) *Reducer {
	return &Reducer{oracle: oracle}
}

var hasCyrillic = regexp.MustCompile(`[а-яё]`)

// wordOK guards residual stems: letters plus hyphen for compounds. A stem that
// fails this check means the rule over-stripped and must not fire.
var wordOK = regexp.MustCompile(`^[а-яё-]+$`)

// Lemmas applies the rule cascade. Words shorter than three runes, or without
// any Cyrillic letters, are not reduced: short stems produce too many false
// positives.
func (r *Reducer) Lemmas(word string) []string {
	w := strings.ToLower(strings.TrimSpace(word))
	if utf8.RuneCountInString(w) < 3 || !hasCyrillic.MatchString(w) {
		return nil
	}

	// Reflexive verbs drop -ся/-сь before any other suffix matching; every
	// verb rule reattaches the suffix to its candidate infinitives.
	tail := ""
	if strings.HasSuffix(w, "ся") || strings.HasSuffix(w, "сь") {
		tail = "ся"
		w = trimLastRunes(w, 2)
	}

	red := &reduction{word: w, tail: tail, oracle: r.oracle}
	for _, rule := range ruleChain {
		cands := dedupStrings(rule(red))
		if len(cands) == 0 {
			continue
		}
		// Without an oracle the first matching rule class decides, in its
		// fixed preference order. With one, a rule class only claims the word
		// when a candidate is attested; otherwise the cascade moves on.
		if r.oracle == nil {
			return cands
		}
		if hit := red.promote(cands); hit != nil {
			return hit
		}
	}
	return nil
}

// reduction carries the state shared by all rule classes for one word.
type reduction struct {
	word   string // lowercased, reflexive suffix stripped
	tail   string // "ся" when the input was reflexive, else ""
	oracle Oracle
}

// promote returns cands with the first attested candidate moved to the front,
// or nil when none is attested.
func (d *reduction) promote(cands []string) []string {
	for i, c := range cands {
		if d.oracle(c) {
			copy(cands[1:i+1], cands[:i])
			cands[0] = c
			return cands
		}
	}
	return nil
}

func rlen(s string) int { return utf8.RuneCountInString(s) }

func trimLastRunes(s string, n int) string {
	r := []rune(s)
	if len(r) < n {
		return ""
	}
	return string(r[:len(r)-n])
}

func lastRune(s string) rune {
	var last rune
	for _, c := range s {
		last = c
	}
	return last
}

func isVowel(c rune) bool {
	return strings.ContainsRune("аеёиоуыэюя", c)
}
