package dex

// intlIndex holds the localization tables re-keyed through normKey so
// lookups tolerate underscore/hyphen/case drift between data exports.
type intlIndex struct {
	moveTargets map[string]string
	moveFlags   map[string]string
	evoMethods  map[string]string
}

func buildIntlIndex(p IntlPack) intlIndex {
	idx := intlIndex{
		moveTargets: make(map[string]string, len(p.MoveTargets)),
		moveFlags:   make(map[string]string, len(p.MoveFlags)),
		evoMethods:  make(map[string]string, len(p.EvoMethods)),
	}
	for k, v := range p.MoveTargets {
		idx.moveTargets[normKey(k)] = v
	}
	for k, v := range p.MoveFlags {
		idx.moveFlags[normKey(k)] = v
	}
	for k, v := range p.EvoMethods {
		idx.evoMethods[normKey(k)] = v
	}
	return idx
}

// MoveTargetLabel resolves a raw move target keyword to its display
// label, humanizing the keyword when no localization entry exists.
func (d *Dataset) MoveTargetLabel(key string) string {
	if key == "" {
		return ""
	}
	if v, ok := d.intlIdx.moveTargets[normKey(key)]; ok {
		return v
	}
	return Humanize(key)
}

// MoveFlagLabel resolves a raw move flag keyword to its display label,
// humanizing the keyword when no localization entry exists.
func (d *Dataset) MoveFlagLabel(key string) string {
	if key == "" {
		return ""
	}
	if v, ok := d.intlIdx.moveFlags[normKey(key)]; ok {
		return v
	}
	return Humanize(key)
}

// evoMethodTemplate looks up the localization template for an evolution
// method, first by exact key, then by normalized key.
func (d *Dataset) evoMethodTemplate(method string) (string, bool) {
	if v, ok := d.Intl.EvoMethods[method]; ok {
		return v, true
	}
	v, ok := d.intlIdx.evoMethods[normKey(method)]
	return v, ok
}
