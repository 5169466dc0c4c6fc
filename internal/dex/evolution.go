package dex

import (
	"regexp"
	"strconv"
	"strings"
)

// EvolutionChain is the full evolutionary tree of a creature. Stage 0 is
// the chain root; EdgeLabels maps each non-root member to the readable
// description of the edge that introduced it.
type EvolutionChain struct {
	Base       string            `json:"base"`
	Stages     [][]string        `json:"stages"`
	EdgeLabels map[string]string `json:"edgeLabels"`
}

// BuildEvolutionStages computes the evolutionary tree containing the
// given creature: ascend to the chain root, then layer the forward edges
// breadth-first with global deduplication. Cycles and dangling targets in
// the data truncate the graph instead of failing.
func (d *Dataset) BuildEvolutionStages(mon *Mon) EvolutionChain {
	base := mon.InternalName
	guard := map[string]bool{}
	for !guard[base] {
		guard[base] = true
		cur, ok := d.ByInternal[base]
		if !ok || cur.Prevo == "" {
			break
		}
		base = cur.Prevo
	}

	// forward edges, parent -> children, one pass over the whole list
	edgesByParent := map[string][]Evolution{}
	for _, m := range d.All {
		if len(m.Evolutions) > 0 {
			edgesByParent[m.InternalName] = m.Evolutions
		}
	}

	chain := EvolutionChain{
		Base:       base,
		Stages:     [][]string{{base}},
		EdgeLabels: map[string]string{},
	}
	visited := map[string]bool{base: true}

	layer := []string{base}
	for len(layer) > 0 {
		var next []string
		for _, parent := range layer {
			for _, e := range edgesByParent[parent] {
				child := strings.TrimSpace(e.To)
				if _, known := d.ByInternal[child]; !known {
					continue // dangling edge target
				}
				if _, labelled := chain.EdgeLabels[child]; !labelled {
					chain.EdgeLabels[child] = d.FormatEvoMethod(e.Method, e.Param)
				}
				if !visited[child] {
					visited[child] = true
					next = append(next, child)
				}
			}
		}
		if len(next) > 0 {
			chain.Stages = append(chain.Stages, next)
		}
		layer = next
	}
	return chain
}

var tplTokenRe = regexp.MustCompile(`\{(\w+)\}`)

// FormatEvoMethod renders an evolution method keyword plus its parameter
// into a readable string. Known methods go through their localization
// template with typed placeholder resolution; everything else degrades to
// "<method> <param>". Never fails, always produces some string.
func (d *Dataset) FormatEvoMethod(method, param string) string {
	tpl, hasTpl := d.evoMethodTemplate(method)

	locationMethod := strings.EqualFold(method, "Location")
	location := ""
	if locationMethod || (hasTpl && strings.Contains(tpl, "{location}")) {
		if param != "" {
			location = d.LocationName(param)
		}
	}

	resolve := func(token string) string {
		switch token {
		case "method":
			return method
		case "param":
			// a Location template's {param} means the resolved place name
			if location != "" {
				return location
			}
			return param
		case "item":
			return d.ItemName(param)
		case "location":
			return location
		case "level":
			if n, err := strconv.Atoi(strings.TrimSpace(param)); err == nil {
				return strconv.Itoa(n)
			}
			return param
		case "move":
			return d.MoveName(param)
		}
		return ""
	}

	if hasTpl {
		return tplTokenRe.ReplaceAllStringFunc(tpl, func(m string) string {
			return resolve(m[1 : len(m)-1])
		})
	}
	if locationMethod && location != "" {
		return "Level up at " + location
	}
	if param != "" {
		return method + " " + param
	}
	return method
}
