package dex

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"
)

// Dataset is the immutable in-memory model for one game corpus. It is
// built once by Load and treated as read-only afterwards; switching games
// means constructing a new Dataset, never patching one in place.
type Dataset struct {
	Game string

	All        []*Mon
	ByInternal map[string]*Mon
	ByID       map[string]*Mon

	Moves     map[string]*MoveInfo
	Abilities map[string]*AbilityInfo
	Types     map[string]*TypeInfo
	Items     map[string]*Item
	Locations map[string]*EncounterLocation
	Intl      IntlPack

	// type ids in display order; gives every derived view a stable
	// iteration order regardless of map layout
	typeOrder []string

	intlIdx     intlIndex
	searchIndex []SearchEntry
}

// Load fetches and normalizes every corpus document for the given game.
// The documents are independent and fetched concurrently; each loader
// writes a disjoint field. A missing or broken pokemon/moves/abilities/
// types document is fatal, the rest degrade to empty structures.
func Load(ctx context.Context, src Source, game string) (*Dataset, error) {
	d := &Dataset{Game: game}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return d.loadMons(ctx, src) })
	g.Go(func() error { return d.loadMoves(ctx, src) })
	g.Go(func() error { return d.loadAbilities(ctx, src) })
	g.Go(func() error { return d.loadTypes(ctx, src) })
	g.Go(func() error { d.loadItems(ctx, src); return nil })
	g.Go(func() error { d.loadEncounters(ctx, src); return nil })
	g.Go(func() error { d.loadIntl(ctx, src); return nil })
	if err := g.Wait(); err != nil {
		return nil, err
	}

	d.finalize()
	slog.Info("dataset loaded",
		slog.String("game", game),
		slog.Int("pokemon", len(d.All)),
		slog.Int("moves", len(d.Moves)),
		slog.Int("types", len(d.Types)),
		slog.Int("locations", len(d.Locations)),
	)
	return d, nil
}

func (d *Dataset) finalize() {
	d.ByInternal = make(map[string]*Mon, len(d.All))
	d.ByID = make(map[string]*Mon, len(d.All))
	for _, m := range d.All {
		// last write wins on duplicate keys; valid data has none
		d.ByInternal[m.InternalName] = m
		d.ByID[m.ID] = m
	}
	d.attachPrevos()

	d.typeOrder = make([]string, 0, len(d.Types))
	for id := range d.Types {
		d.typeOrder = append(d.typeOrder, id)
	}
	sort.Slice(d.typeOrder, func(i, j int) bool {
		a, b := d.Types[d.typeOrder[i]], d.Types[d.typeOrder[j]]
		if a.Index != b.Index {
			return a.Index < b.Index
		}
		return d.typeOrder[i] < d.typeOrder[j]
	})

	d.intlIdx = buildIntlIndex(d.Intl)
	d.buildSearchIndex()
}

// attachPrevos derives the unique pre-evolution back-edge from the
// forward evolution lists. First parent found wins; evolution data is
// assumed to form a forest.
func (d *Dataset) attachPrevos() {
	for _, parent := range d.All {
		for _, ev := range parent.Evolutions {
			child, ok := d.ByInternal[ev.To]
			if ok && child.Prevo == "" {
				child.Prevo = parent.InternalName
			}
		}
	}
}

func (d *Dataset) loadMons(ctx context.Context, src Source) error {
	body, err := src.Fetch(ctx, d.Game, "pokemon.json")
	if err != nil {
		return fmt.Errorf("loading pokemon: %w", err)
	}
	records, err := decodeRecords(body)
	if err != nil {
		return fmt.Errorf("loading pokemon: %w", err)
	}
	d.All = make([]*Mon, 0, len(records))
	for idx, rec := range records {
		d.All = append(d.All, NormalizeEntry(rec, idx))
	}
	return nil
}

func (d *Dataset) loadMoves(ctx context.Context, src Source) error {
	body, err := src.Fetch(ctx, d.Game, "moves.json")
	if err != nil {
		return fmt.Errorf("loading moves: %w", err)
	}
	keyed, err := decodeKeyed(body, "id", "internalName")
	if err != nil {
		return fmt.Errorf("loading moves: %w", err)
	}
	d.Moves = make(map[string]*MoveInfo, len(keyed))
	for id, rec := range keyed {
		d.Moves[id] = normalizeMove(id, rec)
	}
	return nil
}

func (d *Dataset) loadAbilities(ctx context.Context, src Source) error {
	body, err := src.Fetch(ctx, d.Game, "abilities.json")
	if err != nil {
		return fmt.Errorf("loading abilities: %w", err)
	}
	keyed, err := decodeKeyed(body, "id", "internalName")
	if err != nil {
		return fmt.Errorf("loading abilities: %w", err)
	}
	d.Abilities = make(map[string]*AbilityInfo, len(keyed))
	for id, rec := range keyed {
		d.Abilities[id] = &AbilityInfo{
			Name:        pickString(rec, "name", "Name"),
			Description: pickString(rec, "description", "Description"),
		}
	}
	return nil
}

func (d *Dataset) loadTypes(ctx context.Context, src Source) error {
	body, err := src.Fetch(ctx, d.Game, "types.json")
	if err != nil {
		return fmt.Errorf("loading types: %w", err)
	}
	keyed, err := decodeKeyed(body, "internalId", "id")
	if err != nil {
		return fmt.Errorf("loading types: %w", err)
	}
	d.Types = make(map[string]*TypeInfo, len(keyed))
	for id, rec := range keyed {
		internal := pickString(rec, "internalId", "InternalId")
		if internal == "" {
			internal = id
		}
		d.Types[id] = &TypeInfo{
			Name:          pickString(rec, "name", "Name"),
			InternalID:    internal,
			Weaknesses:    toArray(pick(rec, "weaknesses", "Weaknesses")),
			Resistances:   toArray(pick(rec, "resistances", "Resistances")),
			Immunities:    toArray(pick(rec, "immunities", "Immunities")),
			IsSpecialType: pickBool(rec, "isSpecialType"),
			IsPseudoType:  pickBool(rec, "isPseudoType"),
			Index:         pickInt(rec, 0, "index", "Index"),
		}
	}
	return nil
}

func (d *Dataset) loadItems(ctx context.Context, src Source) {
	d.Items = map[string]*Item{}
	body, err := src.Fetch(ctx, d.Game, "items.json")
	if err != nil {
		slog.Debug("items unavailable, continuing without", slog.Any("error", err))
		return
	}
	keyed, err := decodeKeyed(body, "internalName", "id")
	if err != nil {
		slog.Warn("items.json malformed, continuing without", slog.Any("error", err))
		return
	}
	for id, rec := range keyed {
		internal := pickString(rec, "internalName", "InternalName")
		if internal == "" {
			internal = id
		}
		d.Items[id] = &Item{
			ID:           pickString(rec, "id"),
			InternalName: internal,
			Name:         pickString(rec, "name", "Name"),
			NamePlural:   pickString(rec, "namePlural"),
			Description:  pickString(rec, "description", "Description"),
			Pocket:       pickInt(rec, 0, "pocket", "Pocket"),
			Price:        pickInt(rec, 0, "price", "Price"),
			SellPrice:    pickInt(rec, 0, "sellPrice", "SellPrice"),
			FieldUse:     pickString(rec, "fieldUse"),
			Flags:        toArray(pick(rec, "flags", "Flags")),
			Consumable:   pickBool(rec, "consumable"),
		}
	}
}

func (d *Dataset) loadEncounters(ctx context.Context, src Source) {
	d.Locations = map[string]*EncounterLocation{}
	body, err := src.Fetch(ctx, d.Game, "encounters.json")
	if err != nil {
		slog.Debug("encounters unavailable, continuing without", slog.Any("error", err))
		return
	}
	var byID map[string]*EncounterLocation
	if err := json.Unmarshal(body, &byID); err == nil {
		for id, loc := range byID {
			if loc == nil {
				continue
			}
			if loc.ID == "" {
				loc.ID = id
			}
			d.Locations[id] = loc
		}
		return
	}
	// array payloads get re-keyed by their own id
	var list []*EncounterLocation
	if err := json.Unmarshal(body, &list); err != nil {
		slog.Warn("encounters.json malformed, continuing without", slog.Any("error", err))
		return
	}
	for _, loc := range list {
		if loc != nil && loc.ID != "" {
			d.Locations[loc.ID] = loc
		}
	}
}

func (d *Dataset) loadIntl(ctx context.Context, src Source) {
	body, err := src.Fetch(ctx, d.Game, "intl.json")
	if err != nil {
		slog.Debug("intl unavailable, continuing without", slog.Any("error", err))
		return
	}
	if err := json.Unmarshal(body, &d.Intl); err != nil {
		slog.Warn("intl.json malformed, continuing without", slog.Any("error", err))
	}
}

// decodeRecords coerces an array-or-map payload into an ordered record
// sequence. Map payloads are walked in sorted key order so positional
// fallbacks and first-parent-wins passes stay deterministic.
func decodeRecords(body []byte) ([]map[string]any, error) {
	var arr []json.RawMessage
	if err := json.Unmarshal(body, &arr); err == nil {
		out := make([]map[string]any, len(arr))
		for i, raw := range arr {
			_ = json.Unmarshal(raw, &out[i]) // non-objects stay nil
		}
		return out, nil
	}
	var m map[string]json.RawMessage
	if err := json.Unmarshal(body, &m); err != nil {
		return nil, err
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]map[string]any, len(keys))
	for i, k := range keys {
		_ = json.Unmarshal(m[k], &out[i])
	}
	return out, nil
}

// decodeKeyed coerces a map-or-array payload into id-keyed records,
// re-keying array entries by the first present key field.
func decodeKeyed(body []byte, keyFields ...string) (map[string]map[string]any, error) {
	var m map[string]map[string]any
	if err := json.Unmarshal(body, &m); err == nil {
		for id, rec := range m {
			if rec == nil {
				delete(m, id)
			}
		}
		return m, nil
	}
	var arr []map[string]any
	if err := json.Unmarshal(body, &arr); err != nil {
		return nil, err
	}
	out := make(map[string]map[string]any, len(arr))
	for _, rec := range arr {
		if rec == nil {
			continue
		}
		if key := pickString(rec, keyFields...); key != "" {
			out[key] = rec
		}
	}
	return out, nil
}

func normalizeMove(id string, rec map[string]any) *MoveInfo {
	return &MoveInfo{
		ID:          id,
		Name:        pickString(rec, "name", "Name"),
		Type:        pickString(rec, "type", "Type"),
		Category:    pickString(rec, "category", "Category"),
		Power:       pickInt(rec, 0, "power", "Power", "basePower"),
		Accuracy:    pickInt(rec, 0, "accuracy", "Accuracy"),
		PP:          pickInt(rec, 0, "pp", "PP"),
		Priority:    pickInt(rec, 0, "priority", "Priority"),
		Target:      pickString(rec, "target", "Target"),
		Flags:       toArray(pick(rec, "flags", "Flags")),
		Description: pickString(rec, "description", "Description"),
	}
}

// Lookup resolves a creature by slug id first, then internal name.
func (d *Dataset) Lookup(id string) (*Mon, bool) {
	if m, ok := d.ByID[id]; ok {
		return m, true
	}
	m, ok := d.ByInternal[id]
	return m, ok
}

// asMon resolves an internal name or id to a creature, degrading to a
// stub so name getters always have something to show.
func (d *Dataset) asMon(key string) *Mon {
	if m, ok := d.Lookup(key); ok {
		return m
	}
	return &Mon{ID: key, InternalName: key, Name: key}
}

// TypeIDs returns all known type ids in display order.
func (d *Dataset) TypeIDs() []string {
	return d.typeOrder
}

// LocationName resolves a location id to its display name, with a "#id"
// fallback for unknown ids.
func (d *Dataset) LocationName(locID string) string {
	if locID == "" {
		return ""
	}
	if loc, ok := d.Locations[locID]; ok && loc.Name != "" {
		return loc.Name
	}
	return "#" + locID
}

// ItemName resolves an item id to its display name, falling back to the
// raw id.
func (d *Dataset) ItemName(itemID string) string {
	if it, ok := d.Items[itemID]; ok && it.Name != "" {
		return it.Name
	}
	return itemID
}

// MoveName resolves a move id to its display name, falling back to the
// raw id.
func (d *Dataset) MoveName(moveID string) string {
	if moveID == "" {
		return ""
	}
	if mv, ok := d.Moves[moveID]; ok && mv.Name != "" {
		return mv.Name
	}
	return moveID
}

// ResolveAbilityKey maps an ability id to a key present in the catalog,
// tolerating case drift in the source data. Unresolvable ids come back
// unchanged.
func (d *Dataset) ResolveAbilityKey(id string) string {
	if _, ok := d.Abilities[id]; ok {
		return id
	}
	up := strings.ToUpper(id)
	keys := make([]string, 0, len(d.Abilities))
	for k := range d.Abilities {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if strings.ToUpper(k) == up {
			return k
		}
	}
	return id
}

// AbilityName resolves an ability id to its display name, falling back
// to the raw id.
func (d *Dataset) AbilityName(id string) string {
	if id == "" {
		return ""
	}
	if a, ok := d.Abilities[d.ResolveAbilityKey(id)]; ok && a.Name != "" {
		return a.Name
	}
	return id
}

// AbilityByKey returns the ability record after case-normalizing key
// resolution.
func (d *Dataset) AbilityByKey(id string) (*AbilityInfo, bool) {
	a, ok := d.Abilities[d.ResolveAbilityKey(id)]
	return a, ok
}

// ChainRoot ascends the pre-evolution links to the root of the creature's
// chain. Cycles in malformed data are broken with a visited set.
func (d *Dataset) ChainRoot(mon *Mon) *Mon {
	cur := mon
	seen := map[string]bool{}
	for cur.Prevo != "" && !seen[cur.Prevo] {
		seen[cur.InternalName] = true
		prev, ok := d.ByInternal[cur.Prevo]
		if !ok {
			break
		}
		cur = prev
	}
	return cur
}

// EggMovesFromRoot returns the egg moves a creature inherits. Egg moves
// live on the chain root, not the individual creature.
func (d *Dataset) EggMovesFromRoot(mon *Mon) []string {
	return d.ChainRoot(mon).EggMoves
}

// LearnersOf returns every creature that learns the move through any
// acquisition channel, sorted by display name.
func (d *Dataset) LearnersOf(moveID string) []*Mon {
	var out []*Mon
	for _, p := range d.All {
		if d.learns(p, moveID) {
			out = append(out, p)
		}
	}
	sortMonsByName(out)
	return out
}

func (d *Dataset) learns(p *Mon, moveID string) bool {
	for _, lm := range p.Moves {
		if lm.Move == moveID {
			return true
		}
	}
	if containsString(p.TutorMoves, moveID) || containsString(p.MachineMoves, moveID) {
		return true
	}
	return containsString(d.EggMovesFromRoot(p), moveID)
}

// BearersOf returns every creature holding the ability in a regular or
// hidden slot, sorted by display name.
func (d *Dataset) BearersOf(abilityID string) []*Mon {
	key := d.ResolveAbilityKey(abilityID)
	var out []*Mon
	for _, p := range d.All {
		if containsString(p.Abilities, key) || p.HiddenAbility == key {
			out = append(out, p)
		}
	}
	sortMonsByName(out)
	return out
}

// OfType returns every creature carrying the type, in dex number order.
func (d *Dataset) OfType(typeID string) []*Mon {
	var out []*Mon
	for _, p := range d.All {
		if containsString(p.Types, typeID) {
			out = append(out, p)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Num != out[j].Num {
			return out[i].Num < out[j].Num
		}
		return out[i].Name < out[j].Name
	})
	return out
}

func containsString(list []string, s string) bool {
	for _, e := range list {
		if e == s {
			return true
		}
	}
	return false
}

func sortMonsByName(mons []*Mon) {
	sort.SliceStable(mons, func(i, j int) bool {
		a, b := strings.ToLower(mons[i].Name), strings.ToLower(mons[j].Name)
		if a != b {
			return a < b
		}
		return mons[i].InternalName < mons[j].InternalName
	})
}
