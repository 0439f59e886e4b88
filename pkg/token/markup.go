package token

import (
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/html"
)

// CSS vocabulary that survives attribute stripping (property values, pseudo
// classes) but is never page content.
var cssArtifacts = map[string]struct{}{
	"absolute": {}, "active": {}, "after": {}, "all": {}, "alt": {}, "alpha": {}, "auto": {},
	"before": {}, "block": {}, "bold": {}, "both": {}, "bottom": {}, "capitalize": {}, "center": {},
	"circle": {}, "column": {}, "columns": {}, "content": {}, "cover": {}, "dashed": {}, "dotted": {},
	"embed": {}, "end": {}, "even": {}, "fixed": {}, "flex": {}, "focus": {}, "full": {}, "grid": {},
	"hidden": {}, "hover": {}, "inherit": {}, "initial": {}, "inline": {}, "inset": {}, "italic": {},
	"justify": {}, "left": {}, "length": {}, "line": {}, "list": {}, "lowercase": {}, "medium": {},
	"middle": {}, "none": {}, "normal": {}, "nowrap": {}, "odd": {}, "overflow": {}, "pointer": {},
	"relative": {}, "repeat": {}, "right": {}, "rotate": {}, "row": {}, "rows": {}, "scale": {},
	"scroll": {}, "self": {}, "solid": {}, "space": {}, "start": {}, "static": {}, "stretch": {},
	"sticky": {}, "thin": {}, "top": {}, "transparent": {}, "underline": {}, "unset": {}, "uppercase": {},
	"visible": {}, "wrapper": {}, "wrap": {},
}

// DOM and JavaScript identifiers left over from inline scripts.
var scriptArtifacts = map[string]struct{}{
	"const": {}, "let": {}, "var": {}, "function": {}, "return": {}, "typeof": {}, "undefined": {}, "null": {},
	"document": {}, "window": {}, "create": {}, "createelement": {}, "appendchild": {}, "queryselector": {},
	"getelementbyid": {}, "addeventlistener": {}, "dataset": {}, "innerhtml": {}, "outerhtml": {},
	"textcontent": {}, "navigator": {}, "localstorage": {}, "sessionstorage": {},
	"context": {}, "counter": {}, "display": {},
}

var (
	cssPrefix = regexp.MustCompile(`(?i)^(align|flex|grid|justify|place|gap|padding|margin|object|overflow|position|` +
		`text|font|border|outline|background|color|width|height|min|max|inset|` +
		`order|grow|shrink|basis|aspect|transition|transform|animation|` +
		`advance|address|has|is|wrapper)-`)
	cssSuffix = regexp.MustCompile(`(?i)-(content|items|self|wrapper|visible|hidden|desktop|mobile|height|width|` +
		`gap|padding|margin|background|radius|color|size|top|bottom|left|right|row|col)s?$`)

	// \b only knows ASCII word characters, so the Cyrillic pattern relies on
	// its character class alone for boundaries.
	cyrillicWord = regexp.MustCompile(`(?i)[а-яё][а-яё-]{2,}`)
	latinWord    = regexp.MustCompile(`(?i)\b[a-z][a-z_-]{2,}\b`)
)

// Markup extracts candidate tokens from an HTML page. Script, style and
// noscript contents, comments and attribute values never contribute tokens,
// and identifiers recognized as CSS/JS residue are dropped. Tokens come out
// deduplicated in sorted order with a short context snippet around their first
// occurrence.
func Markup(doc string) []Token {
	text := flattenHTML(doc)

	seen := make(map[string]string)
	collect := func(re *regexp.Regexp) {
		for _, loc := range re.FindAllStringIndex(text, -1) {
			w := strings.ToLower(text[loc[0]:loc[1]])
			if isArtifact(w) {
				continue
			}
			if _, ok := seen[w]; !ok {
				seen[w] = snippet(text, loc[0], loc[1])
			}
		}
	}
	collect(cyrillicWord)
	collect(latinWord)

	words := make([]string, 0, len(seen))
	for w := range seen {
		words = append(words, w)
	}
	sort.Strings(words)

	out := make([]Token, 0, len(words))
	for _, w := range words {
		out = append(out, Token{Text: w, Context: seen[w]})
	}
	return out
}

// flattenHTML lexes the document and concatenates text nodes, skipping
// script/style/noscript subtrees. A broken document yields whatever text was
// lexed before the error.
func flattenHTML(doc string) string {
	l := html.NewLexer(parse.NewInputString(doc))
	var sb strings.Builder
	skip := ""
	for {
		tt, data := l.Next()
		switch tt {
		case html.ErrorToken:
			return Clean(sb.String())
		case html.StartTagToken:
			name := strings.ToLower(string(l.Text()))
			if name == "script" || name == "style" || name == "noscript" {
				skip = name
			}
		case html.EndTagToken:
			if skip != "" && strings.ToLower(string(l.Text())) == skip {
				skip = ""
			}
		case html.TextToken:
			if skip == "" {
				sb.Write(data)
				sb.WriteByte(' ')
			}
		}
	}
}

// isArtifact reports whether a token is markup residue rather than content.
func isArtifact(w string) bool {
	if _, ok := cssArtifacts[w]; ok {
		return true
	}
	if _, ok := scriptArtifacts[w]; ok {
		return true
	}
	if strings.Contains(w, "-") && (cssPrefix.MatchString(w) || cssSuffix.MatchString(w)) {
		return true
	}
	// Short vowel-starved Latin tokens (aaa, afadac) are class/id fragments.
	if len(w) <= 6 && isLatinAlpha(w) {
		vowels := 0
		for _, c := range w {
			if strings.ContainsRune("aeiouy", c) {
				vowels++
			}
		}
		if vowels == 0 || (len(w) >= 4 && vowels <= 1) {
			return true
		}
	}
	return false
}

func isLatinAlpha(w string) bool {
	for _, c := range w {
		if c < 'a' || c > 'z' {
			return false
		}
	}
	return len(w) > 0
}

// snippet returns a trimmed context window around [start,end).
func snippet(text string, start, end int) string {
	const margin = 40
	lo := start - margin
	if lo < 0 {
		lo = 0
	}
	for lo > 0 && !utf8.RuneStart(text[lo]) {
		lo--
	}
	hi := end + margin
	if hi > len(text) {
		hi = len(text)
	}
	for hi < len(text) && !utf8.RuneStart(text[hi]) {
		hi++
	}
	return strings.Join(strings.Fields(text[lo:hi]), " ")
}
