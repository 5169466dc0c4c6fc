package dex

import "strconv"

// Stats are the six base stats of a creature.
type Stats struct {
	HP  int `json:"hp"`
	Atk int `json:"atk"`
	Def int `json:"def"`
	SpA int `json:"spa"`
	SpD int `json:"spd"`
	Spe int `json:"spe"`
}

// Total returns the base stat total.
func (s Stats) Total() int {
	return s.HP + s.Atk + s.Def + s.SpA + s.SpD + s.Spe
}

// LevelMove is a single level-up learnset entry. Level 0 means "on
// evolution", level 1 means "known from start".
type LevelMove struct {
	Level int    `json:"level"`
	Move  string `json:"move"`
}

// LevelLabel is the display form of the learn level.
func (lm LevelMove) LevelLabel() string {
	switch lm.Level {
	case 0:
		return "Evolve"
	case 1:
		return "—"
	}
	return strconv.Itoa(lm.Level)
}

// Evolution is a forward evolution edge as stored on the parent.
type Evolution struct {
	To     string `json:"to"`
	Method string `json:"method"`
	Param  string `json:"param"`
}

// Mon is the canonical creature record.
type Mon struct {
	// Slug id, unique, derived from the internal name (or display name).
	ID string `json:"id"`
	// Canonical source-system key, unique.
	InternalName string `json:"internalName"`
	// Display name.
	Name    string   `json:"name"`
	Types   []string `json:"types"`
	Stats   Stats    `json:"stats"`
	Num     int      `json:"num,omitempty"`
	Summary string   `json:"summary,omitempty"`

	Abilities     []string `json:"abilities"`
	HiddenAbility string   `json:"hiddenAbility,omitempty"`

	Moves        []LevelMove `json:"moves,omitempty"`
	TutorMoves   []string    `json:"tutorMoves,omitempty"`
	EggMoves     []string    `json:"eggMoves,omitempty"`
	MachineMoves []string    `json:"machineMoves,omitempty"`

	Evolutions []Evolution `json:"evolutions,omitempty"`
	// Back-reference to the unique parent, derived after load. Never set
	// from the raw data.
	Prevo string `json:"prevo,omitempty"`

	IsForm       bool   `json:"isForm,omitempty"`
	BaseInternal string `json:"baseInternal,omitempty"`
}

// MoveInfo is a single move record from moves.json.
type MoveInfo struct {
	ID       string   `json:"id,omitempty"`
	Name     string   `json:"name"`
	Type     string   `json:"type,omitempty"`
	Category string   `json:"category,omitempty"` // Physical | Special | Status
	Power    int      `json:"power,omitempty"`
	Accuracy int      `json:"accuracy,omitempty"`
	PP       int      `json:"pp,omitempty"`
	Priority int      `json:"priority,omitempty"`
	Target   string   `json:"target,omitempty"`
	Flags    []string `json:"flags,omitempty"`
	// Flavor description.
	Description string `json:"description,omitempty"`
}

// HasPower reports whether the power value is meaningful. Status moves
// and the power == 1 sentinel carry no displayable power.
func (m *MoveInfo) HasPower() bool {
	return m.Category != "Status" && m.Power > 1
}

// HasAccuracy reports whether the accuracy value is meaningful. The
// accuracy == 0 sentinel means the move always hits.
func (m *MoveInfo) HasAccuracy() bool {
	return m.Accuracy > 0
}

// AbilityInfo is a single ability record from abilities.json.
type AbilityInfo struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// TypeInfo is a single type record from types.json.
type TypeInfo struct {
	Name          string   `json:"name"`
	InternalID    string   `json:"internalId"`
	Weaknesses    []string `json:"weaknesses"`
	Resistances   []string `json:"resistances"`
	Immunities    []string `json:"immunities"`
	IsSpecialType bool     `json:"isSpecialType,omitempty"`
	IsPseudoType  bool     `json:"isPseudoType,omitempty"`
	// Display order.
	Index int `json:"index"`
}

// Item is a single item record from items.json.
type Item struct {
	ID           string   `json:"id"`
	InternalName string   `json:"internalName"`
	Name         string   `json:"name"`
	NamePlural   string   `json:"namePlural,omitempty"`
	Description  string   `json:"description,omitempty"`
	Pocket       int      `json:"pocket,omitempty"`
	Price        int      `json:"price,omitempty"`
	SellPrice    int      `json:"sellPrice,omitempty"`
	FieldUse     string   `json:"fieldUse,omitempty"`
	Flags        []string `json:"flags,omitempty"`
	Consumable   bool     `json:"consumable,omitempty"`
}

// EncounterLocation is one location with its raw per-method encounter
// tables, keyed by method label ("Land", "Water", ...).
type EncounterLocation struct {
	ID         string                    `json:"id"`
	Name       string                    `json:"name"`
	Encounters map[string][]EncounterRow `json:"encounters"`
}

// IntlPack holds the localization tables from intl.json. Each maps a raw
// keyword to a display template.
type IntlPack struct {
	MoveTargets map[string]string `json:"moveTargets,omitempty"`
	MoveFlags   map[string]string `json:"moveFlags,omitempty"`
	EvoMethods  map[string]string `json:"evoMethods,omitempty"`
}
