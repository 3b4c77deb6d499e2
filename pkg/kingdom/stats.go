package kingdom

// TaxRate is the standing taxation policy of the kingdom. It is set by the
// player and never changed by turn results.
type TaxRate string

const (
	TaxHaven     TaxRate = "Tax Haven"
	TaxLow       TaxRate = "Low"
	TaxStandard  TaxRate = "Standard"
	TaxExtortion TaxRate = "Extortion"
)

// Multiplier returns the income multiplier for the tax policy.
// Unknown values fall back to the standard rate.
func (t TaxRate) Multiplier() float64 {
	switch t {
	case TaxHaven:
		return 0
	case TaxLow:
		return 0.5
	case TaxStandard:
		return 1.0
	case TaxExtortion:
		return 1.5
	default:
		return 1.0
	}
}

// Next cycles to the following tax policy, wrapping around.
func (t TaxRate) Next() TaxRate {
	switch t {
	case TaxHaven:
		return TaxLow
	case TaxLow:
		return TaxStandard
	case TaxStandard:
		return TaxExtortion
	case TaxExtortion:
		return TaxHaven
	default:
		return TaxStandard
	}
}

// Stats is the resource scalar state of the kingdom. Year and Month form the
// calendar; every other numeric field is a clamped resource. Happiness is
// bounded to [0,100], all other resources floor at 0.
type Stats struct {
	Year          int     `json:"year"`
	Month         int     `json:"month"`
	Gold          int     `json:"gold"`
	Food          int     `json:"food"`
	Population    int     `json:"population"`
	Army          int     `json:"army"`
	Happiness     int     `json:"happiness"`
	Wood          int     `json:"wood"`
	Stone         int     `json:"stone"`
	Manpower      int     `json:"manpower"`
	Supplies      int     `json:"supplies"`
	EconomicPower int     `json:"economicPower"`
	TaxRate       TaxRate `json:"taxRate"`
}

// ZeroStats is the pre-initialization baseline for a new session.
func ZeroStats() Stats {
	return Stats{
		Year:      1,
		Month:     1,
		Happiness: 50,
		TaxRate:   TaxStandard,
	}
}

// StarterStats is the fixed starting snapshot used when the turn service
// resolves the initialization turn without providing initial stats.
func StarterStats() Stats {
	s := ZeroStats()
	s.Gold = 100
	s.Food = 500
	s.Population = 100
	s.Army = 10
	s.EconomicPower = 10
	return s
}

// RecoveryStats is the minimal snapshot seeded when the initialization turn
// fails outright, so the player is never left with an empty kingdom.
func RecoveryStats() Stats {
	s := ZeroStats()
	s.Gold = 50
	s.Food = 100
	s.Population = 50
	return s
}
