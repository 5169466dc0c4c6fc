package dex

// DefenseMatchup classifies every known attacking type against a 1-2
// type defender. Net-neutral attackers (one resist cancelling one
// weakness) are omitted entirely.
type DefenseMatchup struct {
	Immune          []string `json:"immune"`
	StronglyResists []string `json:"stronglyResists"`
	Resists         []string `json:"resists"`
	Weak            []string `json:"weak"`
	VeryWeak        []string `json:"veryWeak"`
}

// AttackingBuckets partitions all types by how a single attacking type
// fares against them.
type AttackingBuckets struct {
	NoEffect       []string `json:"noEffect"`
	NotVery        []string `json:"notVeryEffective"`
	SuperEffective []string `json:"superEffective"`
}

// DefendingBuckets partitions all types by how they fare attacking a
// single defending type.
type DefendingBuckets struct {
	Immune []string `json:"immune"`
	Resist []string `json:"resist"`
	Weak   []string `json:"weak"`
}

// Multiplier returns the single-type damage multiplier of an attacking
// type against a defending type: 0 (immune), 0.5 (resisted), 2 (weak) or
// 1. The defending type id is expected to come from the loaded type
// catalog; unknown ids are treated as neutral.
func (d *Dataset) Multiplier(atk, def string) float64 {
	info, ok := d.Types[def]
	if !ok {
		return 1
	}
	if containsString(info.Immunities, atk) {
		return 0
	}
	if containsString(info.Resistances, atk) {
		return 0.5
	}
	if containsString(info.Weaknesses, atk) {
		return 2
	}
	return 1
}

// AttackMultiplier returns the combined multiplier of one attacking type
// against a 1-2 type defender: the product of the single-type
// multipliers (0, 0.25, 0.5, 1, 2 or 4).
func (d *Dataset) AttackMultiplier(atk string, defTypes []string) float64 {
	mult := 1.0
	for _, def := range defTypes {
		mult *= d.Multiplier(atk, def)
	}
	return mult
}

// CombineDefense buckets every known attacking type against the given
// defending types. Classification is categorical, evaluated per attacker:
// immunity on either type wins outright, then double resist / double
// weakness, then single resist / single weakness; one resist plus one
// weakness cancels and the attacker is dropped.
func (d *Dataset) CombineDefense(defTypes []string) DefenseMatchup {
	var out DefenseMatchup
	for _, atk := range d.typeOrder {
		immune := false
		resists, weaks := 0, 0
		for _, def := range defTypes {
			info, ok := d.Types[def]
			if !ok {
				continue
			}
			if containsString(info.Immunities, atk) {
				immune = true
				break
			}
			if containsString(info.Resistances, atk) {
				resists++
			} else if containsString(info.Weaknesses, atk) {
				weaks++
			}
		}
		switch {
		case immune:
			out.Immune = append(out.Immune, atk)
		case resists == 2:
			out.StronglyResists = append(out.StronglyResists, atk)
		case weaks == 2:
			out.VeryWeak = append(out.VeryWeak, atk)
		case resists == 1 && weaks == 0:
			out.Resists = append(out.Resists, atk)
		case weaks == 1 && resists == 0:
			out.Weak = append(out.Weak, atk)
		}
	}
	return out
}

// Attacking partitions all types by the single-type multiplier of the
// given type on offense.
func (d *Dataset) Attacking(atkType string) AttackingBuckets {
	var out AttackingBuckets
	for _, def := range d.typeOrder {
		switch d.Multiplier(atkType, def) {
		case 0:
			out.NoEffect = append(out.NoEffect, def)
		case 0.5:
			out.NotVery = append(out.NotVery, def)
		case 2:
			out.SuperEffective = append(out.SuperEffective, def)
		}
	}
	return out
}

// Defending partitions all types by the single-type multiplier against
// the given type on defense.
func (d *Dataset) Defending(defType string) DefendingBuckets {
	var out DefendingBuckets
	for _, atk := range d.typeOrder {
		switch d.Multiplier(atk, defType) {
		case 0:
			out.Immune = append(out.Immune, atk)
		case 0.5:
			out.Resist = append(out.Resist, atk)
		case 2:
			out.Weak = append(out.Weak, atk)
		}
	}
	return out
}

// CoverageBuckets groups the whole creature list by how a set of up to
// four attacking types fares against each creature's typing. A creature
// lands in the bucket of its best multiplier among the selected
// attackers, but only when no attacker exceeds that bucket.
type CoverageBuckets struct {
	Immune         []*Mon `json:"immune"`
	StronglyResist []*Mon `json:"stronglyResist"`
	Resist         []*Mon `json:"resist"`
	Neutral        []*Mon `json:"neutral"`
	Super          []*Mon `json:"superEffective"`
	Very           []*Mon `json:"veryEffective"`
}

// Coverage computes the coverage grouping for the given attacking types.
// An empty selection yields empty buckets.
func (d *Dataset) Coverage(attacking []string) CoverageBuckets {
	var out CoverageBuckets
	if len(attacking) == 0 {
		return out
	}
	for _, p := range d.All {
		mults := make([]float64, len(attacking))
		for i, atk := range attacking {
			mults[i] = d.AttackMultiplier(atk, p.Types)
		}
		anyEq := func(x float64) bool {
			for _, m := range mults {
				if m == x {
					return true
				}
			}
			return false
		}
		allLe := func(x float64) bool {
			for _, m := range mults {
				if m > x {
					return false
				}
			}
			return true
		}
		switch {
		case anyEq(0) && allLe(0):
			out.Immune = append(out.Immune, p)
		case anyEq(0.25) && allLe(0.25):
			out.StronglyResist = append(out.StronglyResist, p)
		case anyEq(0.5) && allLe(0.5):
			out.Resist = append(out.Resist, p)
		case anyEq(1) && allLe(1):
			out.Neutral = append(out.Neutral, p)
		case anyEq(2) && allLe(2):
			out.Super = append(out.Super, p)
		case anyEq(4) && allLe(4):
			out.Very = append(out.Very, p)
		}
	}
	return out
}
