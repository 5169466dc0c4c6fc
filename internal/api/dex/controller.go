package dexapi

import (
	"context"
	"net/http"
	"sort"
	"strconv"
	"strings"

	"github.com/danielgtaylor/huma/v2"
	"github.com/nerdwave-nick/pbsdex/internal/api/common"
	"github.com/nerdwave-nick/pbsdex/internal/dex"
)

// Controller serves lookup and derived-view queries over one loaded
// Dataset. The Dataset is immutable, so every handler is a pure read.
type Controller struct {
	data *dex.Dataset
}

func MakeController(data *dex.Dataset) *Controller {
	return &Controller{data: data}
}

func (c *Controller) RegisterRoutes(rctx common.RouteCreationContext) {
	op := func(path string) huma.Operation {
		return huma.Operation{Method: http.MethodGet, Path: path, Tags: []string{"Dex"}}
	}
	common.AddHumaRoute(rctx, c.GetDataset, op("/api/dex"))
	common.AddHumaRoute(rctx, c.ListMons, op("/api/dex/pokemon"))
	common.AddHumaRoute(rctx, c.GetMon, op("/api/dex/pokemon/{id}"))
	common.AddHumaRoute(rctx, c.GetEvolution, op("/api/dex/pokemon/{id}/evolution"))
	common.AddHumaRoute(rctx, c.GetMatchup, op("/api/dex/pokemon/{id}/matchup"))
	common.AddHumaRoute(rctx, c.GetMonLocations, op("/api/dex/pokemon/{id}/locations"))
	common.AddHumaRoute(rctx, c.GetMove, op("/api/dex/moves/{id}"))
	common.AddHumaRoute(rctx, c.GetAbility, op("/api/dex/abilities/{id}"))
	common.AddHumaRoute(rctx, c.GetType, op("/api/dex/types/{id}"))
	common.AddHumaRoute(rctx, c.GetLocation, op("/api/dex/locations/{id}"))
	common.AddHumaRoute(rctx, c.GetCoverage, op("/api/dex/coverage"))
	common.AddHumaRoute(rctx, c.Search, op("/api/dex/search"))
}

// MonRef is the compact creature reference used in list responses.
type MonRef struct {
	ID           string   `json:"id"`
	InternalName string   `json:"internalName"`
	Name         string   `json:"name"`
	Types        []string `json:"types"`
}

func monRefs(mons []*dex.Mon) []MonRef {
	out := make([]MonRef, len(mons))
	for i, m := range mons {
		out[i] = MonRef{ID: m.ID, InternalName: m.InternalName, Name: m.Name, Types: m.Types}
	}
	return out
}

type IDInput struct {
	ID string `path:"id"`
}

type DatasetOutput struct {
	Body struct {
		Game      string `json:"game"`
		Pokemon   int    `json:"pokemon"`
		Moves     int    `json:"moves"`
		Abilities int    `json:"abilities"`
		Types     int    `json:"types"`
		Items     int    `json:"items"`
		Locations int    `json:"locations"`
	}
}

func (c *Controller) GetDataset(_ context.Context, _ *struct{}) (*DatasetOutput, huma.StatusError) {
	out := &DatasetOutput{}
	out.Body.Game = c.data.Game
	out.Body.Pokemon = len(c.data.All)
	out.Body.Moves = len(c.data.Moves)
	out.Body.Abilities = len(c.data.Abilities)
	out.Body.Types = len(c.data.Types)
	out.Body.Items = len(c.data.Items)
	out.Body.Locations = len(c.data.Locations)
	return out, nil
}

type ListMonsInput struct {
	Type    string `query:"type" doc:"Filter by type id"`
	Ability string `query:"ability" doc:"Filter by ability id"`
}

type MonListOutput struct {
	Body struct {
		Count   int      `json:"count"`
		Pokemon []MonRef `json:"pokemon"`
	}
}

func (c *Controller) ListMons(_ context.Context, in *ListMonsInput) (*MonListOutput, huma.StatusError) {
	var mons []*dex.Mon
	switch {
	case in.Type != "":
		mons = c.data.OfType(in.Type)
	case in.Ability != "":
		mons = c.data.BearersOf(in.Ability)
	default:
		mons = c.data.All
	}
	out := &MonListOutput{}
	out.Body.Count = len(mons)
	out.Body.Pokemon = monRefs(mons)
	return out, nil
}

// LevelMoveRow is one display row of the level-up learnset.
type LevelMoveRow struct {
	Label string `json:"label"`
	Move  string `json:"move"`
	Name  string `json:"name"`
}

type MonOutput struct {
	Body struct {
		dex.Mon
		BST        int            `json:"bst"`
		LevelMoves []LevelMoveRow `json:"levelMoves,omitempty"`
	}
}

func (c *Controller) GetMon(_ context.Context, in *IDInput) (*MonOutput, huma.StatusError) {
	mon, ok := c.data.Lookup(in.ID)
	if !ok {
		return nil, huma.Error404NotFound("unknown pokemon: " + in.ID)
	}
	out := &MonOutput{}
	out.Body.Mon = *mon
	out.Body.BST = mon.Stats.Total()
	for _, lm := range mon.Moves {
		out.Body.LevelMoves = append(out.Body.LevelMoves, LevelMoveRow{
			Label: lm.LevelLabel(),
			Move:  lm.Move,
			Name:  c.data.MoveName(lm.Move),
		})
	}
	return out, nil
}

type EvolutionOutput struct {
	Body dex.EvolutionChain
}

func (c *Controller) GetEvolution(_ context.Context, in *IDInput) (*EvolutionOutput, huma.StatusError) {
	mon, ok := c.data.Lookup(in.ID)
	if !ok {
		return nil, huma.Error404NotFound("unknown pokemon: " + in.ID)
	}
	return &EvolutionOutput{Body: c.data.BuildEvolutionStages(mon)}, nil
}

type MatchupOutput struct {
	Body struct {
		Types   []string           `json:"types"`
		Matchup dex.DefenseMatchup `json:"matchup"`
	}
}

func (c *Controller) GetMatchup(_ context.Context, in *IDInput) (*MatchupOutput, huma.StatusError) {
	mon, ok := c.data.Lookup(in.ID)
	if !ok {
		return nil, huma.Error404NotFound("unknown pokemon: " + in.ID)
	}
	out := &MatchupOutput{}
	out.Body.Types = mon.Types
	out.Body.Matchup = c.data.CombineDefense(mon.Types)
	return out, nil
}

// MonLocationRow is one reverse-lookup hit with its display name
// resolved.
type MonLocationRow struct {
	dex.MonLocation
	Location string `json:"location"`
}

type MonLocationsOutput struct {
	Body struct {
		Locations []MonLocationRow `json:"locations"`
	}
}

func (c *Controller) GetMonLocations(_ context.Context, in *IDInput) (*MonLocationsOutput, huma.StatusError) {
	mon, ok := c.data.Lookup(in.ID)
	if !ok {
		return nil, huma.Error404NotFound("unknown pokemon: " + in.ID)
	}
	hits := c.data.FindEncounterLocations(mon)
	out := &MonLocationsOutput{}
	out.Body.Locations = make([]MonLocationRow, len(hits))
	for i, h := range hits {
		out.Body.Locations[i] = MonLocationRow{MonLocation: h, Location: c.data.LocationName(h.LocationID)}
	}
	return out, nil
}

type MoveOutput struct {
	Body struct {
		Move          *dex.MoveInfo `json:"move"`
		PowerLabel    string        `json:"powerLabel"`
		AccuracyLabel string        `json:"accuracyLabel"`
		TargetLabel   string        `json:"targetLabel,omitempty"`
		FlagLabels    []string      `json:"flagLabels,omitempty"`
		Learners      []MonRef      `json:"learners"`
	}
}

func (c *Controller) GetMove(_ context.Context, in *IDInput) (*MoveOutput, huma.StatusError) {
	mv, ok := c.data.Moves[in.ID]
	if !ok {
		return nil, huma.Error404NotFound("unknown move: " + in.ID)
	}
	out := &MoveOutput{}
	out.Body.Move = mv
	out.Body.PowerLabel = "—"
	if mv.HasPower() {
		out.Body.PowerLabel = strconv.Itoa(mv.Power)
	}
	out.Body.AccuracyLabel = "—"
	if mv.HasAccuracy() {
		out.Body.AccuracyLabel = strconv.Itoa(mv.Accuracy) + "%"
	}
	out.Body.TargetLabel = c.data.MoveTargetLabel(mv.Target)
	for _, f := range mv.Flags {
		out.Body.FlagLabels = append(out.Body.FlagLabels, c.data.MoveFlagLabel(f))
	}
	out.Body.Learners = monRefs(c.data.LearnersOf(in.ID))
	return out, nil
}

type AbilityOutput struct {
	Body struct {
		ID          string   `json:"id"`
		Name        string   `json:"name"`
		Description string   `json:"description,omitempty"`
		Bearers     []MonRef `json:"bearers"`
	}
}

// GetAbility never 404s: an unresolved ability id degrades to the raw id
// as its display name so callers always have something to show.
func (c *Controller) GetAbility(_ context.Context, in *IDInput) (*AbilityOutput, huma.StatusError) {
	key := c.data.ResolveAbilityKey(in.ID)
	out := &AbilityOutput{}
	out.Body.ID = key
	out.Body.Name = c.data.AbilityName(key)
	if info, ok := c.data.AbilityByKey(key); ok {
		out.Body.Description = info.Description
	}
	out.Body.Bearers = monRefs(c.data.BearersOf(key))
	return out, nil
}

type TypeOutput struct {
	Body struct {
		Type      *dex.TypeInfo        `json:"type"`
		Attacking dex.AttackingBuckets `json:"attacking"`
		Defending dex.DefendingBuckets `json:"defending"`
		Pokemon   []MonRef             `json:"pokemon"`
	}
}

func (c *Controller) GetType(_ context.Context, in *IDInput) (*TypeOutput, huma.StatusError) {
	info, ok := c.data.Types[in.ID]
	if !ok {
		return nil, huma.Error404NotFound("unknown type: " + in.ID)
	}
	out := &TypeOutput{}
	out.Body.Type = info
	out.Body.Attacking = c.data.Attacking(in.ID)
	out.Body.Defending = c.data.Defending(in.ID)
	out.Body.Pokemon = monRefs(c.data.OfType(in.ID))
	return out, nil
}

// LocationMethod is one encounter method's aggregated table.
type LocationMethod struct {
	Method  string                `json:"method"`
	Total   int                   `json:"totalWeight"`
	Entries []LocationMethodEntry `json:"entries"`
}

type LocationMethodEntry struct {
	dex.EncounterSummary
	Name string `json:"name"`
}

type LocationOutput struct {
	Body struct {
		ID      string           `json:"id"`
		Name    string           `json:"name"`
		Methods []LocationMethod `json:"methods"`
	}
}

func (c *Controller) GetLocation(_ context.Context, in *IDInput) (*LocationOutput, huma.StatusError) {
	loc, ok := c.data.Locations[in.ID]
	if !ok {
		return nil, huma.Error404NotFound("unknown location: " + in.ID)
	}
	out := &LocationOutput{}
	out.Body.ID = loc.ID
	out.Body.Name = loc.Name

	methods := make([]string, 0, len(loc.Encounters))
	for m := range loc.Encounters {
		methods = append(methods, m)
	}
	sort.Strings(methods)
	for _, method := range methods {
		list, total := c.data.SummarizeMethod(loc.Encounters[method])
		lm := LocationMethod{Method: method, Total: total}
		for _, e := range list {
			name := e.Mon
			if mon, ok := c.data.ByInternal[e.Mon]; ok {
				name = mon.Name
			}
			lm.Entries = append(lm.Entries, LocationMethodEntry{EncounterSummary: e, Name: name})
		}
		out.Body.Methods = append(out.Body.Methods, lm)
	}
	return out, nil
}

type CoverageInput struct {
	Types string `query:"types" doc:"Comma-separated attacking type ids, up to four"`
}

type CoverageBucketsRef struct {
	Immune         []MonRef `json:"immune"`
	StronglyResist []MonRef `json:"stronglyResist"`
	Resist         []MonRef `json:"resist"`
	Neutral        []MonRef `json:"neutral"`
	Super          []MonRef `json:"superEffective"`
	Very           []MonRef `json:"veryEffective"`
}

type CoverageOutput struct {
	Body struct {
		Attacking []string           `json:"attacking"`
		Buckets   CoverageBucketsRef `json:"buckets"`
	}
}

func (c *Controller) GetCoverage(_ context.Context, in *CoverageInput) (*CoverageOutput, huma.StatusError) {
	var attacking []string
	for _, t := range strings.Split(in.Types, ",") {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		if _, ok := c.data.Types[t]; !ok {
			return nil, huma.Error422UnprocessableEntity("unknown type: " + t)
		}
		attacking = append(attacking, t)
	}
	if len(attacking) > 4 {
		return nil, huma.Error422UnprocessableEntity("at most four attacking types")
	}

	buckets := c.data.Coverage(attacking)
	out := &CoverageOutput{}
	out.Body.Attacking = attacking
	out.Body.Buckets = CoverageBucketsRef{
		Immune:         monRefs(buckets.Immune),
		StronglyResist: monRefs(buckets.StronglyResist),
		Resist:         monRefs(buckets.Resist),
		Neutral:        monRefs(buckets.Neutral),
		Super:          monRefs(buckets.Super),
		Very:           monRefs(buckets.Very),
	}
	return out, nil
}

type SearchInput struct {
	Q     string `query:"q" doc:"Search query"`
	Limit int    `query:"limit" doc:"Maximum number of results" default:"12"`
}

type SearchOutput struct {
	Body struct {
		Results []dex.SearchResult `json:"results"`
	}
}

func (c *Controller) Search(_ context.Context, in *SearchInput) (*SearchOutput, huma.StatusError) {
	limit := in.Limit
	if limit <= 0 {
		limit = 12
	}
	out := &SearchOutput{}
	out.Body.Results = c.data.Suggest(in.Q, limit)
	return out, nil
}
