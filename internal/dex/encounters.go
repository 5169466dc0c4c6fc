package dex

import (
	"encoding/json"
	"math"
	"sort"
	"strings"
)

// EncounterRow is one raw encounter table row. The source serializes it
// as a [weight, creature, minLevel, maxLevel] tuple.
type EncounterRow struct {
	Chance   int    `json:"chance"`
	Mon      string `json:"mon"`
	MinLevel int    `json:"minLevel"`
	MaxLevel int    `json:"maxLevel"`
}

// UnmarshalJSON accepts the positional tuple form, degrading malformed
// cells to zero values.
func (r *EncounterRow) UnmarshalJSON(data []byte) error {
	var tuple []any
	if err := json.Unmarshal(data, &tuple); err != nil {
		return err
	}
	*r = EncounterRow{}
	if len(tuple) > 0 {
		r.Chance = asInt(tuple[0], 0)
	}
	if len(tuple) > 1 {
		r.Mon = asString(tuple[1])
	}
	if len(tuple) > 2 {
		r.MinLevel = asInt(tuple[2], 0)
	}
	if len(tuple) > 3 {
		r.MaxLevel = asInt(tuple[3], 0)
	}
	return nil
}

// EncounterSummary is one creature's aggregated share of a single
// encounter method.
type EncounterSummary struct {
	Mon       string `json:"mon"`
	ChancePct int    `json:"chancePct"`
	MinLevel  int    `json:"minLevel"`
	MaxLevel  int    `json:"maxLevel"`
}

// SummarizeMethod aggregates one method's raw rows by creature: weights
// sum, level ranges merge, and the summed weight becomes a percentage of
// the method's total. The result is sorted by descending percentage,
// ties broken by display name. A zero total yields 0% rows rather than
// dividing by zero.
func (d *Dataset) SummarizeMethod(rows []EncounterRow) ([]EncounterSummary, int) {
	type acc struct {
		chance   int
		min, max int
	}
	byMon := map[string]*acc{}
	var order []string
	total := 0

	for _, row := range rows {
		total += row.Chance
		if cur, ok := byMon[row.Mon]; ok {
			cur.chance += row.Chance
			if row.MinLevel < cur.min {
				cur.min = row.MinLevel
			}
			if row.MaxLevel > cur.max {
				cur.max = row.MaxLevel
			}
		} else {
			byMon[row.Mon] = &acc{chance: row.Chance, min: row.MinLevel, max: row.MaxLevel}
			order = append(order, row.Mon)
		}
	}

	out := make([]EncounterSummary, 0, len(order))
	for _, mon := range order {
		a := byMon[mon]
		pct := 0
		if total > 0 {
			pct = int(math.Round(float64(a.chance*100) / float64(total)))
		}
		out = append(out, EncounterSummary{Mon: mon, ChancePct: pct, MinLevel: a.min, MaxLevel: a.max})
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].ChancePct != out[j].ChancePct {
			return out[i].ChancePct > out[j].ChancePct
		}
		a := strings.ToLower(d.asMon(out[i].Mon).Name)
		b := strings.ToLower(d.asMon(out[j].Mon).Name)
		return a < b
	})
	return out, total
}

// MonLocation is one place a creature can be encountered.
type MonLocation struct {
	LocationID string `json:"locationId"`
	Method     string `json:"method"`
	ChancePct  int    `json:"chancePct"`
	MinLevel   int    `json:"minLevel"`
	MaxLevel   int    `json:"maxLevel"`
}

// FindEncounterLocations scans every location's encounter methods for
// the creature and returns its aggregated appearances, sorted by
// descending chance, then location name, then method. Forms match on
// their base creature since forms share base encounter data.
func (d *Dataset) FindEncounterLocations(mon *Mon) []MonLocation {
	target := mon.InternalName
	if mon.BaseInternal != "" {
		target = mon.BaseInternal
	}

	var out []MonLocation
	for locID, loc := range d.Locations {
		for method, rows := range loc.Encounters {
			list, _ := d.SummarizeMethod(rows)
			for _, e := range list {
				if e.Mon == target {
					out = append(out, MonLocation{
						LocationID: locID,
						Method:     method,
						ChancePct:  e.ChancePct,
						MinLevel:   e.MinLevel,
						MaxLevel:   e.MaxLevel,
					})
					break
				}
			}
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].ChancePct != out[j].ChancePct {
			return out[i].ChancePct > out[j].ChancePct
		}
		a, b := d.LocationName(out[i].LocationID), d.LocationName(out[j].LocationID)
		if a != b {
			return a < b
		}
		return out[i].Method < out[j].Method
	})
	return out
}
