// Package check answers the end-user question for one word: is it attested in
// the normative corpus, and if not, what should replace it. It merges the
// lookup engine's provenance with the static substitution table.
package check

import (
	"strings"

	"github.com/hazyhaar/normative-lexicon/pkg/index"
)

// Statuses mirror the published report wording.
const (
	StatusAttested    = "можно использовать"
	StatusNotAttested = "нет в словаре"
)

// Occurrence is where a checked word was seen in the caller's input (page for
// PDFs, context snippet for web pages). The checker passes it through.
type Occurrence struct {
	Page    int    `json:"page,omitempty"`
	Context string `json:"context,omitempty"`
}

// Report is the analysis result for one word.
type Report struct {
	Word              string             `json:"word"`
	Attested          bool               `json:"in_dict"`
	Status            string             `json:"status"`
	Sources           []index.Provenance `json:"in_official_dicts"`
	Equivalent        string             `json:"russian_equivalent,omitempty"`
	EquivalentSources []string           `json:"equivalent_in_dicts,omitempty"`
	Occurrences       []Occurrence       `json:"occurrences,omitempty"`
}

// Checker analyzes words against a corpus index manager.
type Checker struct {
	mgr *index.Manager
}

func New(mgr *index.Manager) *Checker {
	return &Checker{mgr: mgr}
}

// Analyze checks one word. An unready index degrades to the known-words seed
// list; it never errors.
func (c *Checker) Analyze(word string, occurrences ...Occurrence) Report {
	word = strings.TrimSpace(word)
	if word == "" {
		return Report{}
	}
	lower := strings.ToLower(word)

	recs := c.mgr.Lookup(word)
	if len(recs) == 0 {
		if name, ok := knownAttested[lower]; ok {
			recs = []index.Provenance{{Source: name}}
		}
	}

	if len(recs) > 0 {
		return Report{
			Word:        word,
			Attested:    true,
			Status:      StatusAttested,
			Sources:     recs,
			Occurrences: occurrences,
		}
	}

	r := Report{
		Word:        word,
		Attested:    false,
		Status:      StatusNotAttested,
		Sources:     []index.Provenance{},
		Equivalent:  equivalents[lower],
		Occurrences: occurrences,
	}
	// A substitute is only worth recommending with the sources attesting it.
	if r.Equivalent != "" {
		if first := firstWord(r.Equivalent); first != "" {
			r.EquivalentSources = c.mgr.Attested(first)
		}
	}
	return r
}

// AnalyzeAll checks a list of words, skipping blanks.
func (c *Checker) AnalyzeAll(words []string) []Report {
	out := make([]Report, 0, len(words))
	for _, w := range words {
		if strings.TrimSpace(w) == "" {
			continue
		}
		out = append(out, c.Analyze(w))
	}
	return out
}

// firstWord extracts the head of a multi-variant equivalent
// ("площадка, сервис" → "площадка", "выставочный зал" → "выставочный").
func firstWord(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexAny(s, ",;( "); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSpace(s)
}
