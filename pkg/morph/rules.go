package morph

import "strings"

// ruleChain is the priority cascade. Rules are tried in order; the first one
// returning a non-empty candidate set wins and the rest are skipped. Order
// matters in both directions: compounds must be resolved before generic stem
// rules see the hyphen, and instrumental-plural nouns are checked before the
// adjective table to avoid colliding with -ами/-ями adjective endings.
var ruleChain = []func(*reduction) []string{
	(*reduction).dativeYu,
	(*reduction).compound,
	(*reduction).pastTense,
	(*reduction).participle,
	(*reduction).personalEnding,
	(*reduction).gerund,
	(*reduction).instrumentalPlural,
	(*reduction).abstractNoun,
	(*reduction).caseEnding,
	(*reduction).shortAdjective,
}

// dativeYu restores -ей/-ея nouns from the -ею dative (музею → музей). The
// restoration is ambiguous, so it only fires on an index hit.
func (d *reduction) dativeYu() []string {
	if d.oracle == nil || rlen(d.word) <= 3 || !strings.HasSuffix(d.word, "ею") {
		return nil
	}
	base := trimLastRunes(d.word, 1) // drop only the ю
	for _, c := range []string{base + "й", base + "я"} {
		if d.oracle(c) {
			return []string{c}
		}
	}
	return nil
}

var compoundSuffixes = []string{
	"ами", "ями", "ому", "ему", "ов", "ев", "ах", "ях", "а", "я", "у", "ю",
}

// compound strips a case/number suffix from the tail segment of a hyphenated
// word (арт-директорами → арт-директор). The first segment is not a valid stem
// for the generic rules, so this class runs before them and offers the
// stripped form plus its ё variant.
func (d *reduction) compound() []string {
	if !strings.Contains(d.word, "-") {
		return nil
	}
	for _, suf := range compoundSuffixes {
		if rlen(d.word) <= rlen(suf)+2 || !strings.HasSuffix(d.word, suf) {
			continue
		}
		cand := strings.TrimSuffix(d.word, suf)
		if cand == "" || !wordOK.MatchString(cand) {
			continue
		}
		if yo := strings.ReplaceAll(cand, "е", "ё"); yo != cand {
			return []string{cand, yo}
		}
		return []string{cand}
	}
	return nil
}

// pastTense maps -л/-ла/-ло/-ли to the two infinitive markers.
func (d *reduction) pastTense() []string {
	for _, suf := range []string{"л", "ла", "ло", "ли"} {
		if rlen(d.word) <= rlen(suf)+2 || !strings.HasSuffix(d.word, suf) {
			continue
		}
		stem := strings.TrimSuffix(d.word, suf)
		if stem == "" || !wordOK.MatchString(stem) {
			continue
		}
		return []string{stem + "ть" + d.tail, stem + "ти" + d.tail}
	}
	return nil
}

var participleEndings = []string{"ть", "ти", "ить", "ать", "ять", "еть"}

type participleRule struct {
	suf     string
	endings []string
}

// Participles resolve before personal endings so that -вший/-щий are not
// misread as a bare -й personal form.
var participleRules = []participleRule{
	{"ующий", participleEndings}, {"ующая", participleEndings}, {"ующее", participleEndings}, {"ующие", participleEndings},
	{"ющий", participleEndings}, {"ющая", participleEndings}, {"ющее", participleEndings}, {"ющие", participleEndings},
	{"ящий", participleEndings}, {"ящая", participleEndings}, {"ящее", participleEndings}, {"ящие", participleEndings},
	{"вший", participleEndings}, {"вшая", participleEndings}, {"вшее", participleEndings}, {"вшие", participleEndings},
	{"емый", participleEndings}, {"емая", participleEndings}, {"емое", participleEndings}, {"емые", participleEndings},
	{"омый", participleEndings}, {"омая", participleEndings}, {"омое", participleEndings}, {"омые", participleEndings},
	{"енный", append(participleEndings, "ить", "еть")}, {"енная", append(participleEndings, "ить", "еть")},
	{"енное", append(participleEndings, "ить", "еть")}, {"енные", append(participleEndings, "ить", "еть")},
	{"ённый", append(participleEndings, "ить", "еть")}, {"ённая", append(participleEndings, "ить", "еть")},
	{"ённое", append(participleEndings, "ить", "еть")}, {"ённые", append(participleEndings, "ить", "еть")},
	{"нный", participleEndings}, {"нная", participleEndings}, {"нное", participleEndings}, {"нные", participleEndings},
	{"тый", append(participleEndings, "ь")}, {"тая", append(participleEndings, "ь")},
	{"тое", append(participleEndings, "ь")}, {"тые", append(participleEndings, "ь")},
}

func (d *reduction) participle() []string {
	for _, rule := range participleRules {
		if rlen(d.word) <= rlen(rule.suf)+1 || !strings.HasSuffix(d.word, rule.suf) {
			continue
		}
		stem := strings.TrimSuffix(d.word, rule.suf)
		if stem == "" || !wordOK.MatchString(stem) {
			continue
		}

		ends := dedupStrings(rule.endings)
		var cands []string
		for _, e := range ends {
			cands = append(cands, stem+e+d.tail)
		}
		// -тый class: the alternate trim covers verbs like закрыть (закры-тый).
		if containsString(ends, "ь") && rlen(stem) > 1 {
			cands = append(cands, trimLastRunes(stem, 1)+"ть"+d.tail)
		}
		if rlen(stem) > 2 {
			trimmed := trimLastRunes(stem, 1)
			for _, e := range ends {
				if e == "ь" {
					continue
				}
				cands = append(cands, trimmed+e+d.tail)
			}
			if containsString(ends, "ь") {
				cands = append(cands, trimmed+"ть"+d.tail)
			}
		}
		return cands
	}
	return nil
}

// Personal endings, longest first within each person so -ете wins over -ет.
var personalSuffixes = []string{
	"ете", "ёте", "ите",
	"ем", "ём", "им",
	"ут", "ют", "ат", "ят",
	"ешь", "ёшь", "ишь",
	"ет", "ёт", "ит",
	"у", "ю",
	"й", "йте", "ьте", "и", "ь",
}

func (d *reduction) personalEnding() []string {
	for _, suf := range personalSuffixes {
		if rlen(d.word) <= rlen(suf)+1 || !strings.HasSuffix(d.word, suf) {
			continue
		}
		// -ную is an adjective ending, not a 1sg verb.
		if (suf == "ю" || suf == "у") && strings.HasSuffix(d.word, "ную") {
			continue
		}
		stem := strings.TrimSuffix(d.word, suf)
		if stem == "" || !wordOK.MatchString(stem) {
			continue
		}

		endings := []string{"ть", "ти", "ить", "ать", "ять", "еть"}
		if strings.HasSuffix(stem, "ч") || strings.HasSuffix(stem, "щ") {
			endings = append(endings, "ь")
		}
		if strings.HasSuffix(stem, "г") || strings.HasSuffix(stem, "ж") {
			endings = append(endings, "чь")
		}

		var cands []string
		for _, e := range endings {
			cands = append(cands, stem+e+d.tail)
		}
		if rlen(stem) > 2 {
			trimmed := trimLastRunes(stem, 1)
			for _, e := range endings {
				cands = append(cands, trimmed+e+d.tail)
			}
		}
		// Consonant mutations: пишут → писать, скажут → сказать, могут → мочь.
		if strings.HasSuffix(stem, "ш") {
			alt := trimLastRunes(stem, 1) + "с"
			cands = append(cands, alt+"ать"+d.tail, alt+"ить"+d.tail)
		}
		if strings.HasSuffix(stem, "ж") {
			base := trimLastRunes(stem, 1)
			cands = append(cands, base+"зать"+d.tail, base+"зить"+d.tail, base+"гчь"+d.tail)
		}
		// Third-person future of -ыть verbs: откроет → открыть.
		if strings.HasSuffix(stem, "о") && rlen(stem) > 2 &&
			(suf == "ет" || suf == "ют" || suf == "ут" || suf == "ат" || suf == "ят") {
			cands = append(cands, trimLastRunes(stem, 1)+"ыть"+d.tail)
		}
		// Imperatives of -овать/-евать verbs: используйте → использовать.
		if (suf == "й" || suf == "йте" || suf == "ьте") && rlen(stem) > 2 &&
			(strings.HasSuffix(stem, "у") || strings.HasSuffix(stem, "ю")) {
			base := trimLastRunes(stem, 1)
			cands = append(cands,
				base+"ать"+d.tail, base+"ять"+d.tail,
				base+"овать"+d.tail, base+"евать"+d.tail)
		}
		// Imperative -ите with ови→ва stem alternation: назовите → назвать.
		if suf == "ите" && rlen(stem) > 4 && strings.HasSuffix(stem, "ови") {
			cands = append(cands, trimLastRunes(stem, 2)+"вать"+d.tail)
		}
		return cands
	}
	return nil
}

type gerundRule struct {
	suf     string
	endings []string
}

var gerundRules = []gerundRule{
	{"вши", []string{"ть", "ти"}},
	{"ши", []string{"ть", "ти"}},
	{"в", []string{"ть", "ти"}},
	{"я", []string{"ть", "ти"}},
	{"ючи", []string{"ть", "ти"}},
	{"учи", []string{"ть", "ти"}},
}

func (d *reduction) gerund() []string {
	for _, rule := range gerundRules {
		if rlen(d.word) <= rlen(rule.suf)+1 || !strings.HasSuffix(d.word, rule.suf) {
			continue
		}
		// -ия is a noun genitive, not a gerund in -я; leave it for the
		// abstract-noun rule further down the chain.
		if rule.suf == "я" && strings.HasSuffix(d.word, "ия") {
			continue
		}
		stem := strings.TrimSuffix(d.word, rule.suf)
		if stem == "" || !wordOK.MatchString(stem) {
			continue
		}
		var cands []string
		for _, e := range rule.endings {
			cands = append(cands, stem+e+d.tail)
		}
		return cands
	}
	return nil
}

// instrumentalPlural catches -ами/-ями nouns (маркетологами → маркетолог)
// ahead of the adjective table. The direct stem gets no suffix reattached.
func (d *reduction) instrumentalPlural() []string {
	for _, suf := range []string{"ами", "ями"} {
		if rlen(d.word) <= rlen(suf)+3 || !strings.HasSuffix(d.word, suf) {
			continue
		}
		stem := strings.TrimSuffix(d.word, suf)
		if stem == "" || isVowel(lastRune(stem)) || !wordOK.MatchString(stem) {
			continue
		}
		return []string{stem}
	}
	return nil
}

// abstractNoun reconstructs -ие/-ние nominatives from the genitive
// (структурирования → структурирование).
func (d *reduction) abstractNoun() []string {
	if rlen(d.word) <= 5 || !strings.HasSuffix(d.word, "ия") {
		return nil
	}
	// Only the final я is replaced; the и stays (структурировани-я → -е).
	stem := trimLastRunes(d.word, 1)
	if !wordOK.MatchString(stem) {
		return nil
	}
	pre := trimLastRunes(d.word, 2)
	if rlen(pre) < 4 || (!strings.HasSuffix(pre, "и") && !strings.HasSuffix(pre, "н")) {
		return nil
	}
	return []string{stem + "е"}
}

// The general case/number table, multi-rune suffixes before single vowels.
var (
	caseSuffixes = []string{
		"ового", "его", "ому", "ему", "ого", "ами", "ями", "ах", "ях", "ов", "ев",
		"ам", "ям", "ом", "ем", "ой", "ей", "ую", "ые", "ых", "ыми", "ими", "ою", "ею",
		"а", "я", "у", "ю", "о", "е", "ы", "и",
	}
	// Suffixes that can only be adjectival; they trigger full-ending
	// reconstruction when the stem ends in н.
	adjectiveSuffixes = map[string]struct{}{
		"ого": {}, "ему": {}, "его": {}, "ом": {}, "ем": {}, "ой": {}, "ою": {},
		"ею": {}, "ую": {}, "ые": {}, "ых": {}, "ыми": {}, "ими": {},
	}
)

func (d *reduction) caseEnding() []string {
	for _, suf := range caseSuffixes {
		if rlen(d.word) <= rlen(suf)+2 || !strings.HasSuffix(d.word, suf) {
			continue
		}
		cand := strings.TrimSuffix(d.word, suf)
		if cand == "" || !wordOK.MatchString(cand) {
			continue
		}
		// -овый/-евый adjectives reduce past the intermediate step to the
		// base noun: брендинговом → брендингов → брендинг.
		if rlen(cand) > 3 && (strings.HasSuffix(cand, "ов") || strings.HasSuffix(cand, "ев")) {
			base := trimLastRunes(cand, 2)
			if base != "" && wordOK.MatchString(base) {
				return []string{base, cand}
			}
		}
		// -ный/-ной/-ний adjectives: востребованн- → востребованный.
		if _, adj := adjectiveSuffixes[suf]; adj && rlen(cand) > 2 && strings.HasSuffix(cand, "н") {
			return []string{cand + "ый", cand + "ой", cand + "ий", cand + "ный"}
		}
		// Imperative -и that the personal-ending class did not resolve.
		if suf == "и" && !isVowel(lastRune(cand)) {
			return []string{cand + "ить", cand + "еть", cand + "ать", cand + "ять"}
		}
		return []string{
			cand,
			cand + "й",
			cand + "я",
			cand + "а", // формулировками → формулировка
			cand + "ый",
			cand + "ий",
			cand + "ой",
		}
	}
	return nil
}

// shortAdjective restores full forms from predicate short forms
// (востребована → востребованный, важны → важный).
func (d *reduction) shortAdjective() []string {
	for _, suf := range []string{"на", "но", "ны", "ен", "ено", "ены", "ён", "ёно", "ёны"} {
		if rlen(d.word) <= rlen(suf)+1 || !strings.HasSuffix(d.word, suf) {
			continue
		}
		var stem string
		if suf == "на" || suf == "но" || suf == "ны" {
			stem = trimLastRunes(d.word, 1) // keep the н of the stem
		} else {
			stem = strings.TrimSuffix(d.word, suf)
		}
		if stem == "" || !wordOK.MatchString(stem) {
			continue
		}
		return []string{stem + "ый", stem + "ий", stem + "ой"}
	}
	return nil
}

func dedupStrings(in []string) []string {
	out := in[:0:0]
	seen := make(map[string]struct{}, len(in))
	for _, s := range in {
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

func containsString(in []string, s string) bool {
	for _, v := range in {
		if v == s {
			return true
		}
	}
	return false
}
