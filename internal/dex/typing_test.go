package dex_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/nerdwave-nick/pbsdex/internal/dex"
)

type TypingTestSuite struct {
	suite.Suite
	data *dex.Dataset
}

func (s *TypingTestSuite) SetupTest() {
	data, err := loadFixture(context.Background())
	s.Require().NoError(err)
	s.data = data
}

func (s *TypingTestSuite) TestMultiplier() {
	testCases := []struct {
		name     string
		atk      string
		def      string
		expected float64
	}{
		{"weakness", "WATER", "FIRE", 2},
		{"resistance", "FIRE", "WATER", 0.5},
		{"immunity", "ELECTRIC", "GROUND", 0},
		{"neutral", "NORMAL", "FIRE", 1},
		{"unknown defender is neutral", "FIRE", "FAIRY", 1},
	}
	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.Equal(tc.expected, s.data.Multiplier(tc.atk, tc.def))
		})
	}
}

func (s *TypingTestSuite) TestAttackMultiplier() {
	s.Run("multipliers stack over dual types", func() {
		s.Equal(4.0, s.data.AttackMultiplier("ROCK", []string{"FIRE", "FLYING"}))
		s.Equal(0.25, s.data.AttackMultiplier("GRASS", []string{"FIRE", "GRASS"}))
	})

	s.Run("immunity zeroes the product", func() {
		s.Equal(0.0, s.data.AttackMultiplier("ELECTRIC", []string{"ROCK", "GROUND"}))
	})

	s.Run("empty defender is neutral", func() {
		s.Equal(1.0, s.data.AttackMultiplier("FIRE", nil))
	})
}

func (s *TypingTestSuite) TestCombineDefense() {
	s.Run("net neutral attackers are omitted", func() {
		m := s.data.CombineDefense([]string{"WATER", "GRASS"})
		// FIRE is resisted by WATER and strong against GRASS: cancelled
		s.NotContains(m.Resists, "FIRE")
		s.NotContains(m.Weak, "FIRE")
		s.Equal([]string{"WATER"}, m.StronglyResists)
		s.Equal([]string{"GROUND"}, m.Resists)
		s.Equal([]string{"FLYING"}, m.Weak)
		s.Empty(m.Immune)
		s.Empty(m.VeryWeak)
	})

	s.Run("immunity beats any weakness", func() {
		m := s.data.CombineDefense([]string{"FIRE", "FLYING"})
		s.Equal([]string{"GROUND"}, m.Immune)
		s.Equal([]string{"ROCK"}, m.VeryWeak)
		s.Equal([]string{"GRASS"}, m.StronglyResists)
		s.Equal([]string{"FIRE"}, m.Resists)
		s.Equal([]string{"WATER", "ELECTRIC"}, m.Weak)
	})

	s.Run("single type defender", func() {
		m := s.data.CombineDefense([]string{"ELECTRIC"})
		s.Equal([]string{"ELECTRIC", "FLYING"}, m.Resists)
		s.Equal([]string{"GROUND"}, m.Weak)
	})

	s.Run("unknown defending type yields no entries", func() {
		m := s.data.CombineDefense([]string{"FAIRY"})
		s.Empty(m.Immune)
		s.Empty(m.Resists)
		s.Empty(m.Weak)
	})
}

func (s *TypingTestSuite) TestAttackingAndDefendingBuckets() {
	s.Run("attacking partitions by offensive multiplier", func() {
		b := s.data.Attacking("ELECTRIC")
		s.Equal([]string{"GROUND"}, b.NoEffect)
		s.Equal([]string{"GRASS", "ELECTRIC"}, b.NotVery)
		s.Equal([]string{"WATER", "FLYING"}, b.SuperEffective)
	})

	s.Run("defending partitions by defensive multiplier", func() {
		b := s.data.Defending("FLYING")
		s.Equal([]string{"GROUND"}, b.Immune)
		s.Equal([]string{"GRASS"}, b.Resist)
		s.Equal([]string{"ELECTRIC", "ROCK"}, b.Weak)
	})
}

func (s *TypingTestSuite) TestCoverage() {
	names := func(mons []*dex.Mon) []string {
		out := make([]string, len(mons))
		for i, m := range mons {
			out[i] = m.Name
		}
		return out
	}

	s.Run("single attacking type", func() {
		b := s.data.Coverage([]string{"ELECTRIC"})
		s.Equal([]string{"Geodude"}, names(b.Immune))
		s.Equal([]string{"Bulbasaur", "Ivysaur", "Venusaur", "Jolteon"}, names(b.Resist))
		s.Equal([]string{"Charizard", "Mega Charizard X", "Vaporeon", "Pidgey"}, names(b.Super))
		s.Contains(names(b.Neutral), "Ludicolo")
	})

	s.Run("best multiplier wins across attackers", func() {
		b := s.data.Coverage([]string{"ELECTRIC", "GRASS"})
		// grass hits Geodude for 4x, so the electric immunity no longer pins it
		s.Empty(b.Immune)
		s.Equal([]string{"Geodude"}, names(b.Very))
	})

	s.Run("empty selection yields empty buckets", func() {
		b := s.data.Coverage(nil)
		s.Empty(b.Immune)
		s.Empty(b.Neutral)
		s.Empty(b.Super)
	})
}

func TestTypingTestSuite(t *testing.T) {
	suite.Run(t, new(TypingTestSuite))
}
