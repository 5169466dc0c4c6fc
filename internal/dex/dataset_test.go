package dex_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/nerdwave-nick/pbsdex/internal/dex"
)

type DatasetTestSuite struct {
	suite.Suite
	ctx  context.Context
	data *dex.Dataset
}

func (s *DatasetTestSuite) SetupTest() {
	s.ctx = context.Background()
	data, err := loadFixture(s.ctx)
	s.Require().NoError(err)
	s.data = data
}

func (s *DatasetTestSuite) TestLoadRequiredDocuments() {
	s.Run("missing pokemon document is fatal", func() {
		src := fixtureSource()
		delete(src, "testgame/pokemon.json")
		_, err := dex.Load(s.ctx, src, "testgame")
		s.Error(err)
		s.ErrorIs(err, dex.ErrNotFound)
		s.Contains(err.Error(), "loading pokemon")
	})

	s.Run("missing encounters document degrades to empty", func() {
		src := fixtureSource()
		delete(src, "testgame/encounters.json")
		data, err := dex.Load(s.ctx, src, "testgame")
		s.NoError(err)
		s.Empty(data.Locations)
	})

	s.Run("malformed optional document degrades to empty", func() {
		src := fixtureSource()
		src["testgame/items.json"] = []byte(`"not a catalog"`)
		data, err := dex.Load(s.ctx, src, "testgame")
		s.NoError(err)
		s.Empty(data.Items)
	})
}

func (s *DatasetTestSuite) TestIndexes() {
	s.Len(s.data.All, 14)

	s.Run("every record is reachable by id and internal name", func() {
		for _, m := range s.data.All {
			s.Same(m, s.data.ByID[m.ID])
			s.Same(m, s.data.ByInternal[m.InternalName])
		}
	})

	s.Run("lookup prefers slug id and falls back to internal name", func() {
		byID, ok := s.data.Lookup("bulba")
		s.True(ok)
		byInternal, ok := s.data.Lookup("BULBA")
		s.True(ok)
		s.Same(byID, byInternal)

		_, ok = s.data.Lookup("missingno")
		s.False(ok)
	})

	s.Run("type ids come back in display order", func() {
		s.Equal(
			[]string{"NORMAL", "FIRE", "WATER", "GRASS", "ELECTRIC", "GROUND", "FLYING", "ROCK"},
			s.data.TypeIDs(),
		)
	})
}

func (s *DatasetTestSuite) TestPrevoDerivation() {
	s.Run("linear chain gets back edges", func() {
		s.Equal("", s.data.ByInternal["BULBA"].Prevo)
		s.Equal("BULBA", s.data.ByInternal["IVY"].Prevo)
		s.Equal("IVY", s.data.ByInternal["VENU"].Prevo)
	})

	s.Run("branching chain points every child at the same parent", func() {
		s.Equal("EVEE", s.data.ByInternal["VAPOR"].Prevo)
		s.Equal("EVEE", s.data.ByInternal["JOLT"].Prevo)
	})

	s.Run("chain root ascends to the base", func() {
		s.Equal("BULBA", s.data.ChainRoot(s.data.ByInternal["VENU"]).InternalName)
		s.Equal("EVEE", s.data.ChainRoot(s.data.ByInternal["JOLT"]).InternalName)
		s.Equal("RATT", s.data.ChainRoot(s.data.ByInternal["RATT"]).InternalName)
	})

	s.Run("cyclic evolution data terminates", func() {
		src := fixtureSource()
		src["testgame/pokemon.json"] = []byte(`[
			{"name":"Loop A","internalName":"LOOPA","types":["NORMAL"],"evolutions":[{"to":"LOOPB","method":"Level","param":"10"}]},
			{"name":"Loop B","internalName":"LOOPB","types":["NORMAL"],"evolutions":[{"to":"LOOPA","method":"Level","param":"20"}]}
		]`)
		data, err := dex.Load(s.ctx, src, "testgame")
		s.Require().NoError(err)
		root := data.ChainRoot(data.ByInternal["LOOPA"])
		s.NotNil(root)
		chain := data.BuildEvolutionStages(data.ByInternal["LOOPA"])
		s.NotEmpty(chain.Stages)
	})
}

func (s *DatasetTestSuite) TestNameResolution() {
	s.Run("location names with id fallback", func() {
		s.Equal("Route 1", s.data.LocationName("route1"))
		s.Equal("#route99", s.data.LocationName("route99"))
		s.Equal("", s.data.LocationName(""))
	})

	s.Run("item and move names with raw fallback", func() {
		s.Equal("Water Stone", s.data.ItemName("WATERSTONE"))
		s.Equal("MYSTERYORB", s.data.ItemName("MYSTERYORB"))
		s.Equal("Vine Whip", s.data.MoveName("VINEWHIP"))
		s.Equal("UNKNOWNMOVE", s.data.MoveName("UNKNOWNMOVE"))
	})

	s.Run("ability keys tolerate case drift", func() {
		s.Equal("BLAZE", s.data.ResolveAbilityKey("blaze"))
		s.Equal("BLAZE", s.data.ResolveAbilityKey("Blaze"))
		s.Equal("Blaze", s.data.AbilityName("blaze"))
		s.Equal("wonderguard", s.data.ResolveAbilityKey("wonderguard"))
		s.Equal("wonderguard", s.data.AbilityName("wonderguard"))
	})
}

func (s *DatasetTestSuite) TestLearnersOf() {
	names := func(mons []*dex.Mon) []string {
		out := make([]string, len(mons))
		for i, m := range mons {
			out[i] = m.Name
		}
		return out
	}

	s.Run("level up learners", func() {
		s.Equal([]string{"Bulbasaur", "Ivysaur"}, names(s.data.LearnersOf("TACKLE")))
	})

	s.Run("machine learners", func() {
		s.Equal([]string{"Venusaur"}, names(s.data.LearnersOf("SURF")))
	})

	s.Run("egg moves are inherited through the chain root", func() {
		s.Equal([]string{"Bulbasaur", "Ivysaur", "Venusaur"}, names(s.data.LearnersOf("SKULLBASH")))
		s.Equal([]string{"SKULLBASH"}, s.data.EggMovesFromRoot(s.data.ByInternal["VENU"]))
	})

	s.Run("unknown move has no learners", func() {
		s.Empty(s.data.LearnersOf("UNKNOWNMOVE"))
	})
}

func (s *DatasetTestSuite) TestBearersOf() {
	names := func(mons []*dex.Mon) []string {
		out := make([]string, len(mons))
		for i, m := range mons {
			out[i] = m.Name
		}
		return out
	}

	s.Run("regular slot bearers sorted by name", func() {
		s.Equal(
			[]string{"Charizard", "Charmander", "Charmeleon", "Mega Charizard X"},
			names(s.data.BearersOf("blaze")),
		)
	})

	s.Run("hidden slot counts", func() {
		s.Equal([]string{"Bulbasaur"}, names(s.data.BearersOf("CHLOROPHYLL")))
	})
}

func (s *DatasetTestSuite) TestOfType() {
	names := func(mons []*dex.Mon) []string {
		out := make([]string, len(mons))
		for i, m := range mons {
			out[i] = m.Name
		}
		return out
	}

	s.Run("dex number order with name tie break", func() {
		s.Equal(
			[]string{"Charmander", "Charmeleon", "Charizard", "Mega Charizard X"},
			names(s.data.OfType("FIRE")),
		)
	})

	s.Run("dual types appear under both", func() {
		s.Contains(names(s.data.OfType("WATER")), "Ludicolo")
		s.Contains(names(s.data.OfType("GRASS")), "Ludicolo")
	})
}

func TestDatasetTestSuite(t *testing.T) {
	suite.Run(t, new(DatasetTestSuite))
}
