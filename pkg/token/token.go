// Package token turns raw extracted dictionary text into canonical lowercase
// word tokens suitable as index keys.
//
// Two input flavours are supported: Page for plain per-page text coming out of
// a document extractor, and Markup for HTML where structural identifiers must
// be filtered out on top of the page rules.
package token

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
)

// Token is one canonical word occurrence.
type Token struct {
	Text    string // lowercase, letters plus internal hyphen/apostrophe
	Context string // surrounding snippet, markup mode only
	Page    int    // 1-based page number, page mode only
}

// The combining acute accent marks stress in dictionary typography.
// It is removed as a single code point: a full NFD decomposition would also
// split й into и + breve and corrupt words like дизайн.
var stressMark = runes.Remove(runes.In(&unicode.RangeTable{
	R16: []unicode.Range16{{Lo: 0x0301, Hi: 0x0301, Stride: 1}},
}))

var (
	// A stress mark on a line-wrap boundary leaves a one-to-two letter
	// fragment after a space (нейросе́ ть). Glue it back on. The trailing
	// group stands in for \b, which only knows ASCII word characters here.
	splitFragment = regexp.MustCompile(`([а-яёА-ЯЁ]) ([ть]{1,2})([^а-яёА-ЯЁa-zA-Z]|$)`)

	// Pronunciation annotations keep their inner letters: ме[н']тор → мен'тор.
	bracketSpan = regexp.MustCompile(`\[([^\]]*)\]`)

	wordPattern = regexp.MustCompile(`(?i)[а-яёa-z][а-яёa-z0-9'-]*`)
)

var deaccent = strings.NewReplacer("ё", "е", "'", "")

// Page extracts tokens from one page of plain dictionary text. Every token is
// emitted lowercase; tokens carrying ё or an apostrophe additionally emit their
// folded variant as a separate token. Duplicates are preserved, the caller
// deduplicates as needed. Malformed input degrades to fewer tokens, never to
// an error.
func Page(raw string, page int) []Token {
	clean := Clean(raw)
	if clean == "" {
		return nil
	}

	var out []Token
	for _, w := range wordPattern.FindAllString(clean, -1) {
		w = strings.ToLower(w)
		if utf8.RuneCountInString(w) < 2 {
			continue
		}
		out = append(out, Token{Text: w, Page: page})
		if v := deaccent.Replace(w); v != w && utf8.RuneCountInString(v) >= 2 {
			out = append(out, Token{Text: v, Page: page})
		}
	}
	return out
}

// Clean applies the page text repairs without tokenizing: stress-mark removal,
// line-wrap re-joining, bracket unwrapping. Cleaning already-clean text is a
// no-op, so tokenization is idempotent.
func Clean(raw string) string {
	s, _, _ := transform.String(stressMark, raw)
	s = splitFragment.ReplaceAllString(s, "$1$2$3")
	return bracketSpan.ReplaceAllString(s, "$1")
}
