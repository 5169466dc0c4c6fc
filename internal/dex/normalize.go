package dex

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

var (
	slugRe  = regexp.MustCompile(`[^a-z0-9]+`)
	camelRe = regexp.MustCompile(`([a-z])([A-Z])`)
	wsRe    = regexp.MustCompile(`\s+`)
)

// Slugify lowercases, collapses runs of non-alphanumeric characters into
// single hyphens, and trims leading/trailing hyphens.
func Slugify(s string) string {
	s = slugRe.ReplaceAllString(strings.ToLower(s), "-")
	return strings.Trim(s, "-")
}

// normKey folds a raw keyword for forgiving lookups: whitespace,
// underscores and hyphens removed, lowercased.
func normKey(s string) string {
	return strings.ToLower(strings.NewReplacer(" ", "", "\t", "", "_", "", "-", "").Replace(s))
}

// Humanize turns a raw keyword into a display fallback: underscores and
// hyphens to spaces, camelCase split, title-cased words.
func Humanize(s string) string {
	s = strings.NewReplacer("_", " ", "-", " ").Replace(s)
	s = camelRe.ReplaceAllString(s, "$1 $2")
	s = wsRe.ReplaceAllString(strings.TrimSpace(s), " ")
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// asInt coerces an arbitrary JSON scalar to an int, with a default for
// anything that does not parse.
func asInt(v any, def int) int {
	switch n := v.(type) {
	case float64:
		return int(n)
	case int:
		return n
	case string:
		// tolerate "12" and "12abc" the way parseInt does
		n = strings.TrimSpace(n)
		i := 0
		if i < len(n) && (n[i] == '-' || n[i] == '+') {
			i++
		}
		for i < len(n) && n[i] >= '0' && n[i] <= '9' {
			i++
		}
		if parsed, err := strconv.Atoi(n[:i]); err == nil {
			return parsed
		}
	}
	return def
}

// asString coerces an arbitrary JSON scalar to a string; non-scalars
// degrade to "".
func asString(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case float64:
		if s == float64(int64(s)) {
			return strconv.FormatInt(int64(s), 10)
		}
		return strconv.FormatFloat(s, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(s)
	}
	return ""
}

// toArray coerces scalars, arrays and maps into a string slice: arrays
// keep their order with empties dropped, strings split on commas, maps
// contribute their values in sorted key order.
func toArray(v any) []string {
	switch x := v.(type) {
	case []any:
		out := make([]string, 0, len(x))
		for _, e := range x {
			if s := asString(e); s != "" {
				out = append(out, s)
			}
		}
		return out
	case []string:
		out := make([]string, 0, len(x))
		for _, s := range x {
			if s != "" {
				out = append(out, s)
			}
		}
		return out
	case string:
		parts := strings.Split(x, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
		return out
	case map[string]any:
		keys := make([]string, 0, len(x))
		for k := range x {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		out := make([]string, 0, len(keys))
		for _, k := range keys {
			if s := asString(x[k]); s != "" {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

// pick returns the first present, non-nil value among the candidate
// field names. The ordered alias list is the whole point: historical
// exports disagree on casing and naming per field.
func pick(m map[string]any, keys ...string) any {
	for _, k := range keys {
		if v, ok := m[k]; ok && v != nil {
			return v
		}
	}
	return nil
}

func pickString(m map[string]any, keys ...string) string {
	return asString(pick(m, keys...))
}

func pickInt(m map[string]any, def int, keys ...string) int {
	return asInt(pick(m, keys...), def)
}

func pickBool(m map[string]any, keys ...string) bool {
	switch v := pick(m, keys...).(type) {
	case bool:
		return v
	case string:
		return v == "true" || v == "1"
	case float64:
		return v != 0
	}
	return false
}

// statAt resolves one stat from either a named object ({hp: 45} or
// {HP: 45}) or a positional array ([45, 49, ...]).
func statAt(stats any, idx int, keys ...string) int {
	switch s := stats.(type) {
	case map[string]any:
		return pickInt(s, 0, keys...)
	case []any:
		if idx < len(s) {
			return asInt(s[idx], 0)
		}
	}
	return 0
}

// NormalizeEntry maps one raw creature record into the canonical Mon
// shape. It is total: any JSON shape degrades to defaults field by field
// rather than failing. idx is the record's position in the payload and
// seeds the last-resort fallback id.
func NormalizeEntry(raw map[string]any, idx int) *Mon {
	if raw == nil {
		raw = map[string]any{}
	}

	name := pickString(raw, "name", "Name", "internalName", "InternalName")
	if name == "" {
		name = fmt.Sprintf("Pokemon %d", idx+1)
	}

	id := pickString(raw, "id")
	if id == "" {
		if internal := pickString(raw, "internalName", "InternalName"); internal != "" {
			id = Slugify(internal)
		} else {
			id = Slugify(name)
		}
		if id == "" {
			id = fmt.Sprintf("pokemon-%d", idx+1)
		}
	}

	internal := pickString(raw, "internalName", "InternalName")
	if internal == "" {
		internal = id
	}

	types := toArray(pick(raw, "types", "type", "Type"))

	stats := pick(raw, "stats", "BaseStats", "baseStats")
	mon := &Mon{
		ID:           id,
		InternalName: internal,
		Name:         name,
		Types:        types,
		Stats: Stats{
			HP:  statAt(stats, 0, "hp", "HP"),
			Atk: statAt(stats, 1, "atk", "Atk"),
			Def: statAt(stats, 2, "def", "Def"),
			SpA: statAt(stats, 3, "spa", "SpA"),
			SpD: statAt(stats, 4, "spd", "SpD"),
			Spe: statAt(stats, 5, "spe", "Spe"),
		},
		Abilities:     toArray(pick(raw, "abilities", "Abilities")),
		HiddenAbility: pickString(raw, "hiddenAbility", "HiddenAbility"),
		Summary:       pickString(raw, "summary", "pokedex", "Pokedex", "kind"),
		Moves:         normalizeLevelMoves(pick(raw, "moves")),
		TutorMoves:    toArray(pick(raw, "tutorMoves")),
		EggMoves:      toArray(pick(raw, "eggMoves")),
		MachineMoves:  toArray(pick(raw, "machineMoves")),
		Evolutions:    normalizeEvolutions(pick(raw, "evolutions")),
		IsForm:        pickBool(raw, "isForm"),
		BaseInternal:  pickString(raw, "baseInternal"),
		Num:           pickInt(raw, 0, "num", "Num"),
	}
	// level-up rows come back in display order
	sort.SliceStable(mon.Moves, func(i, j int) bool {
		if mon.Moves[i].Level != mon.Moves[j].Level {
			return mon.Moves[i].Level < mon.Moves[j].Level
		}
		return mon.Moves[i].Move < mon.Moves[j].Move
	})
	return mon
}

func normalizeLevelMoves(v any) []LevelMove {
	arr, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]LevelMove, 0, len(arr))
	for _, e := range arr {
		m, ok := e.(map[string]any)
		if !ok {
			continue
		}
		move := pickString(m, "move", "Move")
		if move == "" {
			continue
		}
		out = append(out, LevelMove{
			Level: pickInt(m, 0, "level", "Level"),
			Move:  move,
		})
	}
	return out
}

func normalizeEvolutions(v any) []Evolution {
	arr, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]Evolution, 0, len(arr))
	for _, e := range arr {
		m, ok := e.(map[string]any)
		if !ok {
			continue
		}
		to := strings.TrimSpace(pickString(m, "to", "To"))
		if to == "" {
			continue
		}
		out = append(out, Evolution{
			To:     to,
			Method: pickString(m, "method", "Method"),
			Param:  pickString(m, "param", "Param"),
		})
	}
	return out
}
