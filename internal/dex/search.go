package dex

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// SearchKind identifies which catalog a search entry came from; it also
// fixes the tie-break priority between kinds.
type SearchKind string

const (
	KindMon      SearchKind = "mon"
	KindMove     SearchKind = "move"
	KindAbility  SearchKind = "ability"
	KindType     SearchKind = "type"
	KindLocation SearchKind = "loc"
)

var kindPriority = map[SearchKind]int{
	KindMon:      0,
	KindMove:     1,
	KindAbility:  2,
	KindType:     3,
	KindLocation: 4,
}

// SearchEntry is one indexed label.
type SearchEntry struct {
	Kind  SearchKind `json:"kind"`
	ID    string     `json:"id"`
	Label string     `json:"label"`
	Sub   string     `json:"sub,omitempty"`

	key string
}

// SearchResult is a scored entry returned by Suggest.
type SearchResult struct {
	SearchEntry
	Score int `json:"score"`
}

// stripMarks removes diacritics: decompose, drop combining marks,
// recompose.
var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

var (
	hyphenRe = regexp.MustCompile(`[-–—]`)
	romanRe  = regexp.MustCompile(`\b[mcdlxvi]+\b`)
)

// MakeSearchKey folds display text into the canonical search form:
// diacritics stripped, hyphen variants to spaces, lowercased, standalone
// roman numerals and English number words (zero through ninety-nine) to
// digits, whitespace collapsed. Queries and indexed labels must both go
// through this function for matching to be symmetric; applying it twice
// is a no-op.
func MakeSearchKey(s string) string {
	if s == "" {
		return ""
	}
	if folded, _, err := transform.String(stripMarks, s); err == nil {
		s = folded
	}
	s = hyphenRe.ReplaceAllString(s, " ")
	s = strings.ToLower(s)
	s = romanRe.ReplaceAllStringFunc(s, func(tok string) string {
		if n := romanToInt(tok); n > 0 {
			return strconv.Itoa(n)
		}
		return tok
	})
	return wsRe.ReplaceAllString(strings.TrimSpace(wordsToDigits(s)), " ")
}

func romanToInt(s string) int {
	values := map[byte]int{'i': 1, 'v': 5, 'x': 10, 'l': 50, 'c': 100, 'd': 500, 'm': 1000}
	n, prev := 0, 0
	for i := len(s) - 1; i >= 0; i-- {
		v := values[s[i]]
		if v < prev {
			n -= v
		} else {
			n += v
		}
		prev = v
	}
	return n
}

var numberOnes = map[string]int{
	"zero": 0, "one": 1, "two": 2, "three": 3, "four": 4,
	"five": 5, "six": 6, "seven": 7, "eight": 8, "nine": 9,
	"ten": 10, "eleven": 11, "twelve": 12, "thirteen": 13, "fourteen": 14,
	"fifteen": 15, "sixteen": 16, "seventeen": 17, "eighteen": 18, "nineteen": 19,
}

var numberTens = map[string]int{
	"twenty": 20, "thirty": 30, "forty": 40, "fifty": 50,
	"sixty": 60, "seventy": 70, "eighty": 80, "ninety": 90,
}

// wordsToDigits rewrites English number words up to ninety-nine into
// digit strings. Hyphenated compounds arrive as two tokens because
// hyphens were already folded to spaces.
func wordsToDigits(s string) string {
	tokens := strings.Fields(s)
	out := make([]string, 0, len(tokens))
	for i := 0; i < len(tokens); i++ {
		t := tokens[i]
		if n, ok := numberOnes[t]; ok {
			out = append(out, strconv.Itoa(n))
			continue
		}
		if n, ok := numberTens[t]; ok {
			if i+1 < len(tokens) {
				if ones, ok := numberOnes[tokens[i+1]]; ok {
					n += ones
					i++
				}
			}
			out = append(out, strconv.Itoa(n))
			continue
		}
		out = append(out, t)
	}
	return strings.Join(out, " ")
}

// ScoreMatch scores a normalized query against a normalized haystack: -1
// when the query is not a substring, otherwise higher for earlier match
// positions and shorter haystacks, so prefix matches on short labels rank
// first.
func ScoreMatch(haystack, query string) int {
	i := strings.Index(haystack, query)
	if i < 0 {
		return -1
	}
	lenPenalty := len(haystack) - len(query)
	if lenPenalty < 0 {
		lenPenalty = 0
	}
	return 1000 - 2*i - lenPenalty
}

// buildSearchIndex flattens every catalog into scored-searchable entries.
// Map-backed catalogs are walked in sorted key order so the index is
// identical across runs.
func (d *Dataset) buildSearchIndex() {
	var out []SearchEntry

	for _, p := range d.All {
		out = append(out, SearchEntry{
			Kind:  KindMon,
			ID:    p.ID,
			Label: p.Name,
			Sub:   strings.Join(p.Types, " / "),
			key:   MakeSearchKey(p.Name),
		})
	}

	for _, id := range sortedKeys(d.Moves) {
		mv := d.Moves[id]
		label := mv.Name
		if label == "" {
			label = id
		}
		sub := mv.Type
		if mv.Category != "" {
			if sub != "" {
				sub += " / "
			}
			sub += mv.Category
		}
		out = append(out, SearchEntry{Kind: KindMove, ID: id, Label: label, Sub: sub, key: MakeSearchKey(label)})
	}

	for _, id := range sortedKeys(d.Abilities) {
		a := d.Abilities[id]
		label := a.Name
		if label == "" {
			label = id
		}
		out = append(out, SearchEntry{Kind: KindAbility, ID: id, Label: label, Sub: a.Description, key: MakeSearchKey(label)})
	}

	for _, id := range d.typeOrder {
		label := d.Types[id].Name
		if label == "" {
			label = id
		}
		out = append(out, SearchEntry{Kind: KindType, ID: id, Label: label, key: MakeSearchKey(label)})
	}

	for _, id := range sortedKeys(d.Locations) {
		loc := d.Locations[id]
		name := strings.TrimSpace(loc.Name)
		if name == "" {
			name = "#" + id
		}
		methods := sortedKeys(loc.Encounters)
		out = append(out, SearchEntry{
			Kind:  KindLocation,
			ID:    id,
			Label: name,
			Sub:   strings.Join(methods, ", "),
			key:   MakeSearchKey(name),
		})
	}

	d.searchIndex = out
}

// Suggest scores the live query against the search index and returns the
// best matches: score descending, then kind priority (creatures first),
// then label.
func (d *Dataset) Suggest(query string, limit int) []SearchResult {
	nq := MakeSearchKey(query)
	if nq == "" {
		return nil
	}

	var scored []SearchResult
	for _, e := range d.searchIndex {
		if s := ScoreMatch(e.key, nq); s >= 0 {
			scored = append(scored, SearchResult{SearchEntry: e, Score: s})
		}
	}
	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].Score != scored[j].Score {
			return scored[i].Score > scored[j].Score
		}
		if pi, pj := kindPriority[scored[i].Kind], kindPriority[scored[j].Kind]; pi != pj {
			return pi < pj
		}
		return scored[i].Label < scored[j].Label
	})
	if limit > 0 && len(scored) > limit {
		scored = scored[:limit]
	}
	return scored
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
