package dex_test

import (
	"context"
	"fmt"

	"github.com/nerdwave-nick/pbsdex/internal/dex"
)

// mapSource serves corpus documents from memory.
type mapSource map[string][]byte

func (s mapSource) Fetch(_ context.Context, game, name string) ([]byte, error) {
	b, ok := s[game+"/"+name]
	if !ok {
		return nil, fmt.Errorf("%s/%s: %w", game, name, dex.ErrNotFound)
	}
	return b, nil
}

// fixtureSource is a small but complete corpus: two evolution lines (one
// linear, one branching), a form, a handful of types with asymmetric
// charts, encounter tables and localization entries.
func fixtureSource() mapSource {
	return mapSource{
		"testgame/pokemon.json": []byte(`[
			{"name":"Bulbasaur","internalName":"BULBA","types":["GRASS"],"stats":{"hp":45,"atk":49,"def":49,"spa":65,"spd":65,"spe":45},"abilities":["OVERGROW"],"hiddenAbility":"CHLOROPHYLL","moves":[{"level":1,"move":"TACKLE"},{"level":7,"move":"VINEWHIP"}],"eggMoves":["SKULLBASH"],"evolutions":[{"to":"IVY","method":"Level","param":"16"}],"num":1},
			{"name":"Ivysaur","internalName":"IVY","types":["GRASS"],"stats":{"hp":60,"atk":62,"def":63,"spa":80,"spd":80,"spe":60},"abilities":["OVERGROW"],"moves":[{"level":1,"move":"TACKLE"}],"evolutions":[{"to":"VENU","method":"Level","param":"32"}],"num":2},
			{"name":"Venusaur","internalName":"VENU","types":["GRASS"],"stats":{"hp":80,"atk":82,"def":83,"spa":100,"spd":100,"spe":80},"abilities":["OVERGROW"],"machineMoves":["SURF"],"num":3},
			{"name":"Charmander","internalName":"CHARM","types":["FIRE"],"stats":{"hp":39,"atk":52,"def":43,"spa":60,"spd":50,"spe":65},"abilities":["BLAZE"],"moves":[{"level":1,"move":"SCRATCH"},{"level":1,"move":"EMBER"}],"evolutions":[{"to":"CHARME","method":"Level","param":"16"}],"num":4},
			{"name":"Charmeleon","internalName":"CHARME","types":["FIRE"],"abilities":["BLAZE"],"evolutions":[{"to":"CHARIZ","method":"Level","param":"36"}],"num":5},
			{"name":"Charizard","internalName":"CHARIZ","types":["FIRE","FLYING"],"abilities":["BLAZE"],"num":6},
			{"name":"Mega Charizard X","internalName":"CHARIZMEGAX","types":["FIRE","FLYING"],"abilities":["BLAZE"],"isForm":true,"baseInternal":"CHARIZ","num":6},
			{"name":"Eevee","internalName":"EVEE","types":["NORMAL"],"abilities":["RUNAWAY"],"evolutions":[{"to":"VAPOR","method":"Item","param":"WATERSTONE"},{"to":"JOLT","method":"Item","param":"THUNDERSTONE"}],"num":7},
			{"name":"Vaporeon","internalName":"VAPOR","types":["WATER"],"abilities":["RUNAWAY"],"num":8},
			{"name":"Jolteon","internalName":"JOLT","types":["ELECTRIC"],"abilities":["RUNAWAY"],"num":9},
			{"name":"Pidgey","internalName":"PIDGY","types":["NORMAL","FLYING"],"abilities":["RUNAWAY"],"num":10},
			{"name":"Rattata","internalName":"RATT","types":["NORMAL"],"abilities":["RUNAWAY"],"num":11},
			{"name":"Geodude","internalName":"GEO","types":["ROCK","GROUND"],"abilities":["STURDY"],"num":12},
			{"name":"Ludicolo","internalName":"LUDI","types":["WATER","GRASS"],"abilities":["RAINDISH"],"num":13}
		]`),
		"testgame/moves.json": []byte(`{
			"TACKLE":{"name":"Tackle","type":"NORMAL","category":"Physical","power":40,"accuracy":100,"pp":35,"target":"NearOther","flags":["Contact"]},
			"VINEWHIP":{"name":"Vine Whip","type":"GRASS","category":"Physical","power":45,"accuracy":100,"pp":25,"target":"NearOther","flags":["Contact"]},
			"SCRATCH":{"name":"Scratch","type":"NORMAL","category":"Physical","power":40,"accuracy":100,"pp":35},
			"EMBER":{"name":"Ember","type":"FIRE","category":"Special","power":40,"accuracy":100,"pp":25},
			"SURF":{"name":"Surf","type":"WATER","category":"Special","power":90,"accuracy":100,"pp":15},
			"SKULLBASH":{"name":"Skull Bash","type":"NORMAL","category":"Physical","power":130,"accuracy":100,"pp":10},
			"GROWL":{"name":"Growl","type":"NORMAL","category":"Status","power":0,"accuracy":100,"pp":40,"target":"AllNearFoes"}
		}`),
		"testgame/abilities.json": []byte(`{
			"OVERGROW":{"name":"Overgrow","description":"Powers up Grass moves in a pinch."},
			"BLAZE":{"name":"Blaze","description":"Powers up Fire moves in a pinch."},
			"CHLOROPHYLL":{"name":"Chlorophyll","description":"Boosts Speed in sunshine."},
			"RUNAWAY":{"name":"Run Away","description":"Enables a sure getaway from wild encounters."},
			"STURDY":{"name":"Sturdy","description":"Cannot be knocked out with one hit."},
			"RAINDISH":{"name":"Rain Dish","description":"Restores HP in rain."}
		}`),
		"testgame/types.json": []byte(`{
			"NORMAL":{"name":"Normal","index":0,"weaknesses":[],"resistances":[],"immunities":[]},
			"FIRE":{"name":"Fire","index":1,"weaknesses":["WATER","GROUND","ROCK"],"resistances":["FIRE","GRASS"],"immunities":[]},
			"WATER":{"name":"Water","index":2,"weaknesses":["ELECTRIC","GRASS"],"resistances":["FIRE","WATER"],"immunities":[]},
			"GRASS":{"name":"Grass","index":3,"weaknesses":["FIRE","FLYING"],"resistances":["WATER","GRASS","ELECTRIC","GROUND"],"immunities":[]},
			"ELECTRIC":{"name":"Electric","index":4,"weaknesses":["GROUND"],"resistances":["ELECTRIC","FLYING"],"immunities":[]},
			"GROUND":{"name":"Ground","index":5,"weaknesses":["WATER","GRASS"],"resistances":["ROCK"],"immunities":["ELECTRIC"]},
			"FLYING":{"name":"Flying","index":6,"weaknesses":["ELECTRIC","ROCK"],"resistances":["GRASS"],"immunities":["GROUND"]},
			"ROCK":{"name":"Rock","index":7,"weaknesses":["WATER","GRASS","GROUND"],"resistances":["NORMAL","FIRE","FLYING"],"immunities":[]}
		}`),
		"testgame/items.json": []byte(`{
			"WATERSTONE":{"name":"Water Stone"},
			"THUNDERSTONE":{"name":"Thunder Stone"}
		}`),
		"testgame/encounters.json": []byte(`{
			"route1":{"name":"Route 1","encounters":{"Land":[[20,"RATT",2,4],[30,"RATT",3,5],[50,"PIDGY",2,2]]}},
			"route2":{"name":"Route 2","encounters":{"Land":[[60,"PIDGY",3,5],[40,"RATT",3,4]],"Water":[[100,"VAPOR",10,20]]}},
			"charcave":{"name":"Char Cave","encounters":{"Cave":[[100,"CHARIZ",30,40]]}}
		}`),
		"testgame/intl.json": []byte(`{
			"moveTargets":{"NearOther":"Single nearby target"},
			"moveFlags":{"Contact":"Makes contact"},
			"evoMethods":{"Level":"Level {param}","Item":"Use {item}","Location":"Level up at {location}","Trade":"Trade"}
		}`),
	}
}

func loadFixture(ctx context.Context) (*dex.Dataset, error) {
	return dex.Load(ctx, fixtureSource(), "testgame")
}

func loadFixtureFrom(ctx context.Context, src mapSource) (*dex.Dataset, error) {
	return dex.Load(ctx, src, "testgame")
}
