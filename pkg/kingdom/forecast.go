package kingdom

import "math"

// Forecast is the estimated net change for the next month, shown as display
// guidance only. The turn service remains the authority on actual deltas, so
// the forecast and the delivered delta are expected to diverge.
type Forecast struct {
	Gold int `json:"gold"`
	Food int `json:"food"`
}

// EstimateForecast computes the expected monthly income and upkeep from the
// current stats alone. Income scales with population, the tax multiplier and
// economic power (EP 100 = full efficiency, defaulting to 10 when unset);
// the army eats 2 food and costs 1 gold per soldier.
func EstimateForecast(s Stats) Forecast {
	ep := s.EconomicPower
	if ep == 0 {
		ep = 10
	}
	epFactor := math.Max(0.1, float64(ep)/100)

	income := int(math.Floor(float64(s.Population) * 0.1 * s.TaxRate.Multiplier() * epFactor * 10))

	foodUpkeep := int(math.Floor(float64(s.Army) * 2.0))
	goldUpkeep := int(math.Floor(float64(s.Army) * 1.0))

	return Forecast{
		Gold: income - goldUpkeep,
		Food: -foodUpkeep,
	}
}
