package world

// DivisionType classifies an internal political division.
type DivisionType string

const (
	DivisionCapital  DivisionType = "Capital"
	DivisionDuchy    DivisionType = "Duchy"
	DivisionCounty   DivisionType = "County"
	DivisionBarony   DivisionType = "Barony"
	DivisionProvince DivisionType = "Province"
)

// Division is an internal political division of the kingdom.
type Division struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Type        DivisionType `json:"type"`
	RulerName   string       `json:"rulerName"`
	Description string       `json:"description"`
}

// Heritage groups the royal family and the internal divisions. Both
// collections are upserted by ID, since family members and divisions are
// updated over time (deaths, succession, renamed holdings).
type Heritage struct {
	RoyalFamily []Person   `json:"royalFamily"`
	Divisions   []Division `json:"divisions"`
}

// NewHeritage returns an empty heritage aggregate.
func NewHeritage() Heritage {
	return Heritage{
		RoyalFamily: make([]Person, 0),
		Divisions:   make([]Division, 0),
	}
}
