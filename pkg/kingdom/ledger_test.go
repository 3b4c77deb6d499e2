package kingdom

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestApply_Clamping(t *testing.T) {
	tests := []struct {
		name     string
		stats    Stats
		delta    Delta
		expected Stats
	}{
		{
			name:  "resources floor at zero",
			stats: Stats{Year: 1, Month: 1, Gold: 10, Food: 5, TaxRate: TaxStandard},
			delta: Delta{Gold: -50, Food: -100, Wood: -3},
			expected: Stats{
				Year: 1, Month: 2,
				Gold: 0, Food: 0, Wood: 0,
				TaxRate: TaxStandard,
			},
		},
		{
			name:  "happiness capped at 100",
			stats: Stats{Year: 2, Month: 5, Happiness: 90, TaxRate: TaxLow},
			delta: Delta{Happiness: 40},
			expected: Stats{
				Year: 2, Month: 6,
				Happiness: 100,
				TaxRate:   TaxLow,
			},
		},
		{
			name:  "happiness floors at 0",
			stats: Stats{Year: 1, Month: 1, Happiness: 10, TaxRate: TaxStandard},
			delta: Delta{Happiness: -25},
			expected: Stats{
				Year: 1, Month: 2,
				Happiness: 0,
				TaxRate:   TaxStandard,
			},
		},
		{
			name:  "plain addition inside bounds",
			stats: Stats{Year: 1, Month: 1, Gold: 100, Army: 10, Food: 500, TaxRate: TaxStandard},
			delta: Delta{Gold: -20, Army: 0, Food: -20},
			expected: Stats{
				Year: 1, Month: 2,
				Gold: 80, Army: 10, Food: 480,
				TaxRate: TaxStandard,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Apply(tt.stats, tt.delta, 1)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestApply_CalendarRollover(t *testing.T) {
	tests := []struct {
		name         string
		year, month  int
		monthsPassed int
		wantYear     int
		wantMonth    int
	}{
		{"single month", 1, 1, 1, 1, 2},
		{"rollover into new year", 3, 11, 3, 4, 2},
		{"full year cycle", 5, 12, 12, 6, 12},
		{"december plus one", 1, 12, 1, 2, 1},
		{"multi year jump", 1, 6, 30, 3, 12},
		{"zero treated as one", 1, 1, 0, 1, 2},
		{"negative treated as one", 1, 1, -4, 1, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Stats{Year: tt.year, Month: tt.month, TaxRate: TaxStandard}
			got := Apply(s, Delta{}, tt.monthsPassed)
			assert.Equal(t, tt.wantYear, got.Year, "year")
			assert.Equal(t, tt.wantMonth, got.Month, "month")
		})
	}
}

func TestApply_TaxRateUntouched(t *testing.T) {
	s := Stats{Year: 1, Month: 1, Gold: 100, TaxRate: TaxExtortion}
	got := Apply(s, Delta{Gold: 500}, 1)
	assert.Equal(t, TaxExtortion, got.TaxRate)
}

func TestApply_DoesNotMutateInput(t *testing.T) {
	s := Stats{Year: 1, Month: 1, Gold: 100, TaxRate: TaxStandard}
	_ = Apply(s, Delta{Gold: -100}, 5)
	assert.Equal(t, 100, s.Gold)
	assert.Equal(t, 1, s.Month)
}

func TestApply_NeverNegative(t *testing.T) {
	// Heavy negative deltas across the board must never produce a value
	// below the floor.
	s := StarterStats()
	d := Delta{
		Gold: -99999, Food: -99999, Population: -99999, Army: -99999,
		Happiness: -99999, Wood: -99999, Stone: -99999, Manpower: -99999,
		Supplies: -99999, EconomicPower: -99999,
	}
	got := Apply(s, d, 1)

	for name, v := range map[string]int{
		"gold": got.Gold, "food": got.Food, "population": got.Population,
		"army": got.Army, "happiness": got.Happiness, "wood": got.Wood,
		"stone": got.Stone, "manpower": got.Manpower, "supplies": got.Supplies,
		"economicPower": got.EconomicPower,
	} {
		if v < 0 {
			t.Errorf("%s went negative: %d", name, v)
		}
	}
}
