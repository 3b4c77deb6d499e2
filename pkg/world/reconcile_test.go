package world

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testEntity(id, name string) Entity {
	return Entity{
		ID:       id,
		Name:     name,
		Type:     EntityKingdom,
		Relation: RelationNeutral,
		Color:    "#888888",
	}
}

func TestInfoApply_UpsertEntities(t *testing.T) {
	w := NewInfo()

	w.Apply(&Update{NewEntities: []Entity{
		testEntity("A", "Aldmark"),
		testEntity("B", "Brennia"),
	}})
	require.Len(t, w.Entities, 2)

	// Repeating the same entity must not duplicate; the later payload wins.
	updated := testEntity("A", "Aldmark")
	updated.Relation = RelationHostile
	w.Apply(&Update{NewEntities: []Entity{updated}})

	require.Len(t, w.Entities, 2)
	assert.Equal(t, "A", w.Entities[0].ID, "upsert must preserve position")
	assert.Equal(t, RelationHostile, w.Entities[0].Relation)
}

func TestInfoApply_UpsertIdempotent(t *testing.T) {
	w := NewInfo()
	e := testEntity("A", "Aldmark")

	w.Apply(&Update{NewEntities: []Entity{e}})
	w.Apply(&Update{NewEntities: []Entity{e}})

	assert.Len(t, w.Entities, 1)
}

func TestInfoApply_PeopleSightingsAlwaysAppend(t *testing.T) {
	w := NewInfo()
	p := Person{ID: "p1", Name: "Old Man Havel", Status: StatusAlive}

	w.Apply(&Update{NewPeople: []Person{p}})
	w.Apply(&Update{NewPeople: []Person{p}})

	// People are sightings, not identities; duplicates by ID stay.
	assert.Len(t, w.People, 2)
}

func TestInfoApply_RumorDedupAppend(t *testing.T) {
	w := NewInfo()
	r := Rumor{ID: "r1", Title: "Gold in the hills", Type: RumorOpportunity}

	w.Apply(&Update{NewRumors: []Rumor{r}})
	w.Apply(&Update{NewRumors: []Rumor{r}})

	assert.Len(t, w.Rumors, 1)
}

func TestInfoApply_RumorResolutionIsOneWay(t *testing.T) {
	w := NewInfo()
	w.Apply(&Update{NewRumors: []Rumor{
		{ID: "r1", Title: "Bandits on the road", Type: RumorThreat},
		{ID: "r2", Title: "A hermit sage", Type: RumorTalent},
	}})

	w.Apply(&Update{ResolvedRumorIDs: []string{"r1", "missing-id"}})
	assert.True(t, w.Rumors[0].IsResolved)
	assert.False(t, w.Rumors[1].IsResolved)

	// Later updates that omit r1 from the resolved list must not revert it,
	// and redelivering the rumor must not reinsert an unresolved copy.
	w.Apply(&Update{
		NewRumors:        []Rumor{{ID: "r1", Title: "Bandits on the road", Type: RumorThreat}},
		ResolvedRumorIDs: []string{"r2"},
	})
	require.Len(t, w.Rumors, 2)
	assert.True(t, w.Rumors[0].IsResolved)
	assert.True(t, w.Rumors[1].IsResolved)
}

func TestInfoApply_NilAndEmptyAreNoOps(t *testing.T) {
	w := NewInfo()
	w.Apply(&Update{NewEntities: []Entity{testEntity("A", "Aldmark")}})
	before := len(w.Entities) + len(w.People) + len(w.Rumors)

	w.Apply(nil)
	w.Apply(&Update{})

	assert.Equal(t, before, len(w.Entities)+len(w.People)+len(w.Rumors))
}

func TestHeritageApply_FamilyUpsertAndUpdate(t *testing.T) {
	h := NewHeritage()

	king := Person{ID: "f1", Name: "King Aldric", Status: StatusAlive, FamilyRelation: FamilySelf}
	queen := Person{ID: "f2", Name: "Queen Maren", Status: StatusAlive, FamilyRelation: FamilySpouse}
	h.Apply(&PoliticalUpdate{NewFamilyMembers: []Person{king, queen}})
	require.Len(t, h.RoyalFamily, 2)

	// Status change arrives as an update by ID.
	queen.Status = StatusDead
	h.Apply(&PoliticalUpdate{UpdatedFamilyMembers: []Person{queen}})
	assert.Equal(t, StatusDead, h.RoyalFamily[1].Status)

	// Updates for unknown IDs are stale references and are dropped.
	h.Apply(&PoliticalUpdate{UpdatedFamilyMembers: []Person{{ID: "ghost", Name: "Nobody"}}})
	assert.Len(t, h.RoyalFamily, 2)
}

func TestHeritageApply_Divisions(t *testing.T) {
	h := NewHeritage()

	capital := Division{ID: "d1", Name: "Kingsreach", Type: DivisionCapital, RulerName: "King Aldric"}
	h.Apply(&PoliticalUpdate{NewDivisions: []Division{capital}})

	// New divisions with a known ID replace in place.
	capital.RulerName = "Regent Osric"
	h.Apply(&PoliticalUpdate{NewDivisions: []Division{capital}})
	require.Len(t, h.Divisions, 1)
	assert.Equal(t, "Regent Osric", h.Divisions[0].RulerName)

	h.Apply(&PoliticalUpdate{UpdatedDivisions: []Division{{ID: "d9", Name: "Ghost March"}}})
	assert.Len(t, h.Divisions, 1)
}

func TestApplyBuffs(t *testing.T) {
	harvest := Buff{ID: "b1", Name: "Bountiful Harvest", Type: BuffPositive, Effect: "+200 Food/month"}
	plague := Buff{ID: "b2", Name: "Plague", Type: BuffNegative, Effect: "-5% Population"}

	active := ApplyBuffs(nil, &BuffsUpdate{NewBuffs: []Buff{harvest, plague}})
	require.Len(t, active, 2)

	// Redelivery of an active buff is a no-op.
	active = ApplyBuffs(active, &BuffsUpdate{NewBuffs: []Buff{harvest}})
	assert.Len(t, active, 2)

	// Removal applies before append, so remove+add in one update stays active.
	active = ApplyBuffs(active, &BuffsUpdate{
		RemovedBuffIDs: []string{"b2"},
		NewBuffs:       []Buff{plague},
	})
	require.Len(t, active, 2)

	active = ApplyBuffs(active, &BuffsUpdate{RemovedBuffIDs: []string{"b1", "b2"}})
	assert.Empty(t, active)

	assert.Nil(t, ApplyBuffs(nil, nil))
}

func TestLiegeOf(t *testing.T) {
	w := NewInfo()
	empire := testEntity("A", "The Empire")
	vassal := testEntity("B", "March of Brennia")
	vassal.LiegeID = "A"
	dangling := testEntity("C", "Free City")
	dangling.LiegeID = "Z"
	self := testEntity("D", "Ouroboros")
	self.LiegeID = "D"
	w.Apply(&Update{NewEntities: []Entity{empire, vassal, dangling, self}})

	liege := w.LiegeOf("B")
	require.NotNil(t, liege)
	assert.Equal(t, "A", liege.ID)

	assert.Nil(t, w.LiegeOf("A"), "no liege link")
	assert.Nil(t, w.LiegeOf("C"), "dangling liege link")
	assert.Nil(t, w.LiegeOf("D"), "self-referencing liege link")
	assert.Nil(t, w.LiegeOf("missing"))
}

func TestMapGrid(t *testing.T) {
	g := MapGrid{"~~P~", "~AA~", "~~~~"}
	assert.True(t, g.Validate())
	assert.Equal(t, 'P', g.OwnerAt(0, 2))
	assert.Equal(t, 'A', g.OwnerAt(1, 1))
	assert.Equal(t, rune(MapOcean), g.OwnerAt(9, 9))
	assert.Equal(t, rune(MapOcean), g.OwnerAt(-1, 0))

	assert.False(t, MapGrid{}.Validate())
	assert.False(t, MapGrid{"~~~", "~~"}.Validate())
}
