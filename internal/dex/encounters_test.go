package dex_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/nerdwave-nick/pbsdex/internal/dex"
)

type EncountersTestSuite struct {
	suite.Suite
	data *dex.Dataset
}

func (s *EncountersTestSuite) SetupTest() {
	data, err := loadFixture(context.Background())
	s.Require().NoError(err)
	s.data = data
}

func (s *EncountersTestSuite) TestEncounterRowUnmarshal() {
	s.Run("positional tuple", func() {
		var row dex.EncounterRow
		s.Require().NoError(json.Unmarshal([]byte(`[20,"RATT",2,4]`), &row))
		s.Equal(dex.EncounterRow{Chance: 20, Mon: "RATT", MinLevel: 2, MaxLevel: 4}, row)
	})

	s.Run("short tuple pads with zeroes", func() {
		var row dex.EncounterRow
		s.Require().NoError(json.Unmarshal([]byte(`[20,"RATT"]`), &row))
		s.Equal(dex.EncounterRow{Chance: 20, Mon: "RATT"}, row)
	})

	s.Run("malformed cells degrade to zero values", func() {
		var row dex.EncounterRow
		s.Require().NoError(json.Unmarshal([]byte(`["lots",null,"x",{}]`), &row))
		s.Equal(dex.EncounterRow{}, row)
	})
}

func (s *EncountersTestSuite) TestSummarizeMethod() {
	s.Run("duplicate rows merge and percentages share the total", func() {
		rows := s.data.Locations["route1"].Encounters["Land"]
		list, total := s.data.SummarizeMethod(rows)
		s.Equal(100, total)
		s.Require().Len(list, 2)
		// equal chance, Pidgey wins the name tie break
		s.Equal(dex.EncounterSummary{Mon: "PIDGY", ChancePct: 50, MinLevel: 2, MaxLevel: 2}, list[0])
		s.Equal(dex.EncounterSummary{Mon: "RATT", ChancePct: 50, MinLevel: 2, MaxLevel: 5}, list[1])
	})

	s.Run("sorted by descending chance", func() {
		list, total := s.data.SummarizeMethod(s.data.Locations["route2"].Encounters["Land"])
		s.Equal(100, total)
		s.Require().Len(list, 2)
		s.Equal("PIDGY", list[0].Mon)
		s.Equal(60, list[0].ChancePct)
		s.Equal("RATT", list[1].Mon)
		s.Equal(40, list[1].ChancePct)
	})

	s.Run("zero total yields zero percentages", func() {
		list, total := s.data.SummarizeMethod([]dex.EncounterRow{{Chance: 0, Mon: "RATT", MinLevel: 1, MaxLevel: 2}})
		s.Equal(0, total)
		s.Require().Len(list, 1)
		s.Equal(0, list[0].ChancePct)
	})

	s.Run("empty rows", func() {
		list, total := s.data.SummarizeMethod(nil)
		s.Empty(list)
		s.Equal(0, total)
	})
}

func (s *EncountersTestSuite) TestFindEncounterLocations() {
	s.Run("reverse lookup matches the aggregated tables", func() {
		hits := s.data.FindEncounterLocations(s.data.ByInternal["RATT"])
		s.Require().Len(hits, 2)
		s.Equal(dex.MonLocation{LocationID: "route1", Method: "Land", ChancePct: 50, MinLevel: 2, MaxLevel: 5}, hits[0])
		s.Equal(dex.MonLocation{LocationID: "route2", Method: "Land", ChancePct: 40, MinLevel: 3, MaxLevel: 4}, hits[1])
	})

	s.Run("forms match through their base creature", func() {
		hits := s.data.FindEncounterLocations(s.data.ByInternal["CHARIZMEGAX"])
		s.Require().Len(hits, 1)
		s.Equal("charcave", hits[0].LocationID)
		s.Equal("Cave", hits[0].Method)
		s.Equal(100, hits[0].ChancePct)
	})

	s.Run("never encountered", func() {
		s.Empty(s.data.FindEncounterLocations(s.data.ByInternal["BULBA"]))
	})
}

func TestEncountersTestSuite(t *testing.T) {
	suite.Run(t, new(EncountersTestSuite))
}
