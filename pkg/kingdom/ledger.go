package kingdom

// Delta is a signed per-resource change reported by a turn result. Absent
// fields decode to zero, which keeps older saves and newer service schemas
// compatible. The calendar and tax rate are never part of a delta.
type Delta struct {
	Gold          int `json:"gold"`
	Food          int `json:"food"`
	Population    int `json:"population"`
	Army          int `json:"army"`
	Happiness     int `json:"happiness"`
	Wood          int `json:"wood"`
	Stone         int `json:"stone"`
	Manpower      int `json:"manpower"`
	Supplies      int `json:"supplies"`
	EconomicPower int `json:"economicPower"`
}

// IsZero reports whether the delta changes nothing.
func (d Delta) IsZero() bool {
	return d == Delta{}
}

// Apply folds a turn delta into the current stats and advances the calendar
// by monthsPassed (values below 1 count as 1). Resources floor at 0,
// happiness is clamped to [0,100], and the tax rate carries over untouched.
// The returned stats are a new value; the inputs are not mutated.
func Apply(s Stats, d Delta, monthsPassed int) Stats {
	if monthsPassed < 1 {
		monthsPassed = 1
	}

	next := Stats{
		Year:          s.Year,
		Month:         s.Month + monthsPassed,
		Gold:          floor0(s.Gold + d.Gold),
		Food:          floor0(s.Food + d.Food),
		Population:    floor0(s.Population + d.Population),
		Army:          floor0(s.Army + d.Army),
		Happiness:     clamp(s.Happiness+d.Happiness, 0, 100),
		Wood:          floor0(s.Wood + d.Wood),
		Stone:         floor0(s.Stone + d.Stone),
		Manpower:      floor0(s.Manpower + d.Manpower),
		Supplies:      floor0(s.Supplies + d.Supplies),
		EconomicPower: floor0(s.EconomicPower + d.EconomicPower),
		TaxRate:       s.TaxRate,
	}

	for next.Month > 12 {
		next.Month -= 12
		next.Year++
	}

	return next
}

func floor0(v int) int {
	if v < 0 {
		return 0
	}
	return v
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
