// Package fetch maintains the corpus source files: the official normative
// dictionaries published as PDFs, their download state, and their
// availability. It never parses the files; that is pkg/extract's job.
package fetch

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Source describes one normative dictionary.
type Source struct {
	ID       string `yaml:"id"`
	Name     string `yaml:"name"`
	URL      string `yaml:"url"`
	Encoding string `yaml:"encoding,omitempty"` // for plain-text sources only
}

// Official is the fixed corpus: the dictionaries named by government decree
// № 1102-р of 2025-04-30, published on ruslang.ru.
var Official = []Source{
	{
		ID:   "orfograficheskij",
		Name: "Орфографический словарь (ИРЯ РАН)",
		URL:  "https://ruslang.ru/sites/default/files/doc/normativnyje_slovari/orfograficheskij_slovar.pdf",
	},
	{
		ID:   "orfoepicheskij",
		Name: "Орфоэпический словарь (ИРЯ РАН)",
		URL:  "https://ruslang.ru/sites/default/files/doc/normativnyje_slovari/orfoepicheskij_slovar.pdf",
	},
	{
		ID:   "inostr_slov",
		Name: "Словарь иностранных слов (ИЛИ РАН)",
		URL:  "https://ruslang.ru/sites/default/files/doc/normativnyje_slovari/slovar_inostr_slov.pdf",
	},
	{
		ID:   "tolkovyj_1",
		Name: "Толковый словарь гос. языка РФ, ч. 1 А–Н (СПбГУ)",
		URL:  "https://ruslang.ru/sites/default/files/doc/normativnyje_slovari/tolkovyj_slovar_chast1_A-N.pdf",
	},
	{
		ID:   "tolkovyj_2",
		Name: "Толковый словарь гос. языка РФ, ч. 2 О–Я (СПбГУ)",
		URL:  "https://ruslang.ru/sites/default/files/doc/normativnyje_slovari/tolkovyj_slovar_chast2_O-Ja.pdf",
	},
}

// LoadSources reads a YAML source list, falling back to Official when the
// file does not exist. Overrides are for mirrors and test corpora.
func LoadSources(path string) ([]Source, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Official, nil
		}
		return nil, fmt.Errorf("read sources %s: %w", path, err)
	}
	var sources []Source
	if err := yaml.Unmarshal(data, &sources); err != nil {
		return nil, fmt.Errorf("parse sources %s: %w", path, err)
	}
	for i, s := range sources {
		if s.ID == "" || s.Name == "" {
			return nil, fmt.Errorf("sources %s: entry %d: missing id or name", path, i)
		}
	}
	return sources, nil
}
