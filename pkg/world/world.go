package world

// EntityType classifies a foreign polity.
type EntityType string

const (
	EntityKingdom      EntityType = "Kingdom"
	EntityEmpire       EntityType = "Empire"
	EntityTribe        EntityType = "Tribe"
	EntityCityState    EntityType = "City-State"
	EntityOrganization EntityType = "Organization"
)

// Relation is the diplomatic stance of a foreign polity toward the player.
type Relation string

const (
	RelationHostile  Relation = "Hostile"
	RelationNeutral  Relation = "Neutral"
	RelationFriendly Relation = "Friendly"
	RelationAlly     Relation = "Ally"
	RelationUnknown  Relation = "Unknown"
)

// Entity is a foreign polity on the world stage. LiegeID is a weak reference
// to another entity's ID; it may dangle or point at the entity itself, and
// lookups must tolerate both.
type Entity struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Type        EntityType `json:"type"`
	Relation    Relation   `json:"relation"`
	Description string     `json:"description"`
	LiegeID     string     `json:"liegeId,omitempty"`
	Color       string     `json:"color"`
}

// PersonStatus is the life state of a named character.
type PersonStatus string

const (
	StatusAlive   PersonStatus = "Alive"
	StatusDead    PersonStatus = "Dead"
	StatusMissing PersonStatus = "Missing"
)

// FamilyRelation tags a person's relationship to the leader, used only for
// genealogy grouping in the royal family.
type FamilyRelation string

const (
	FamilySelf    FamilyRelation = "Self"
	FamilySpouse  FamilyRelation = "Spouse"
	FamilyChild   FamilyRelation = "Child"
	FamilySibling FamilyRelation = "Sibling"
	FamilyParent  FamilyRelation = "Parent"
	FamilyOther   FamilyRelation = "Relative"
	FamilyNone    FamilyRelation = "None"
)

// Person is a named character, either a notable-people sighting or a royal
// family member.
type Person struct {
	ID             string         `json:"id"`
	Name           string         `json:"name"`
	Role           string         `json:"role"`
	Age            int            `json:"age"`
	Personality    string         `json:"personality"`
	Description    string         `json:"description"`
	Status         PersonStatus   `json:"status"`
	FamilyRelation FamilyRelation `json:"familyRelation,omitempty"`
}

// RumorType classifies a rumor.
type RumorType string

const (
	RumorThreat      RumorType = "Threat"
	RumorOpportunity RumorType = "Opportunity"
	RumorMystery     RumorType = "Mystery"
	RumorGossip      RumorType = "Gossip"
	RumorTalent      RumorType = "Talent"
)

// Rumor is an unverified lead circulating in the kingdom. Resolution is
// one-way: once IsResolved is set it is never cleared.
type Rumor struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	Content        string    `json:"content"`
	Type           RumorType `json:"type"`
	PossibleImpact string    `json:"possibleImpact,omitempty"`
	IsResolved     bool      `json:"isResolved"`
}

// Info is the accumulated knowledge about the outside world. Entities are
// upserted by ID and never deleted; people are raw sightings and may repeat;
// rumors are deduplicated by ID on insert.
type Info struct {
	Entities []Entity `json:"entities"`
	People   []Person `json:"people"`
	Rumors   []Rumor  `json:"rumors"`
}

// NewInfo returns an empty world info aggregate.
func NewInfo() Info {
	return Info{
		Entities: make([]Entity, 0),
		People:   make([]Person, 0),
		Rumors:   make([]Rumor, 0),
	}
}

// EntityByID looks up an entity by its ID. Returns nil when absent.
func (w *Info) EntityByID(id string) *Entity {
	for i := range w.Entities {
		if w.Entities[i].ID == id {
			return &w.Entities[i]
		}
	}
	return nil
}

// LiegeOf resolves the liege of the given entity. A missing, dangling or
// self-referencing liege link yields nil (unknown), never an error.
func (w *Info) LiegeOf(id string) *Entity {
	e := w.EntityByID(id)
	if e == nil || e.LiegeID == "" || e.LiegeID == e.ID {
		return nil
	}
	return w.EntityByID(e.LiegeID)
}
