package token

import (
	"reflect"
	"strings"
	"testing"
)

func texts(toks []Token) []string {
	if len(toks) == 0 {
		return nil
	}
	out := make([]string, len(toks))
	for i, t := range toks {
		out[i] = t.Text
	}
	return out
}

func TestPage(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{
			name: "stress mark removed",
			raw:  "нейросе́ть",
			want: []string{"нейросеть"},
		},
		{
			name: "wrapped word rejoined",
			raw:  "нейросе́ ть",
			want: []string{"нейросеть"},
		},
		{
			name: "bracket annotation unwrapped",
			raw:  "ме[н']тор",
			want: []string{"мен'тор", "ментор"},
		},
		{
			name: "yo emits folded variant",
			raw:  "ёлка",
			want: []string{"ёлка", "елка"},
		},
		{
			name: "single letters dropped",
			raw:  "я и он",
			want: []string{"он"},
		},
		{
			name: "mixed scripts and digits",
			raw:  "Веб-2 сайт but1",
			want: []string{"веб-2", "сайт", "but1"},
		},
		{
			name: "duplicates preserved",
			raw:  "слово слово",
			want: []string{"слово", "слово"},
		},
		{
			name: "empty input",
			raw:  "   ",
			want: nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := texts(Page(tt.raw, 1))
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Page(%q) = %v, want %v", tt.raw, got, tt.want)
			}
		})
	}
}

func TestPageNumberCarried(t *testing.T) {
	toks := Page("ментор", 42)
	if len(toks) != 1 || toks[0].Page != 42 {
		t.Fatalf("expected one token on page 42, got %+v", toks)
	}
}

func TestCleanIdempotent(t *testing.T) {
	inputs := []string{
		"нейросе́ ть и ме[н']тор",
		"обычный текст без пометок",
		"",
	}
	for _, in := range inputs {
		once := Clean(in)
		twice := Clean(once)
		if once != twice {
			t.Errorf("Clean not idempotent on %q: %q != %q", in, once, twice)
		}
	}
}

func TestMarkup(t *testing.T) {
	doc := `<html><head>
<style>.card { color: red; position: absolute; }</style>
<script>const el = document.querySelector(".card");</script>
</head><body>
<p>Менторы и коучинг</p>
<div class="flex-items">Management bgft</div>
<noscript>запасной</noscript>
</body></html>`

	got := texts(Markup(doc))
	want := []string{"management", "коучинг", "менторы"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Markup tokens = %v, want %v", got, want)
	}
}

func TestMarkupContextSnippet(t *testing.T) {
	toks := Markup("<p>до того как ментор пришёл на встречу</p>")
	var ctx string
	for _, tok := range toks {
		if tok.Text == "ментор" {
			ctx = tok.Context
		}
	}
	if ctx == "" {
		t.Fatal("ментор not extracted")
	}
	if !strings.Contains(ctx, "ментор") {
		t.Errorf("context %q does not contain the word", ctx)
	}
}
