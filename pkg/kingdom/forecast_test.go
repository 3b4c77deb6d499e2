package kingdom

import "testing"

func TestEstimateForecast(t *testing.T) {
	tests := []struct {
		name     string
		stats    Stats
		wantGold int
		wantFood int
	}{
		{
			name:     "standard tax with low economic power",
			stats:    Stats{Population: 100, EconomicPower: 10, TaxRate: TaxStandard, Army: 10},
			wantGold: 0, // income floor(100*0.1*1.0*0.1*10)=10, upkeep 10
			wantFood: -20,
		},
		{
			name:     "tax haven yields no income",
			stats:    Stats{Population: 1000, EconomicPower: 100, TaxRate: TaxHaven, Army: 50},
			wantGold: -50,
			wantFood: -100,
		},
		{
			name:     "extortion at full efficiency",
			stats:    Stats{Population: 200, EconomicPower: 100, TaxRate: TaxExtortion, Army: 0},
			wantGold: 300, // floor(200*0.1*1.5*1.0*10)
			wantFood: 0,
		},
		{
			name:     "zero economic power defaults to 10",
			stats:    Stats{Population: 100, TaxRate: TaxStandard, Army: 0},
			wantGold: 10,
			wantFood: 0,
		},
		{
			name:     "unknown tax rate behaves as standard",
			stats:    Stats{Population: 100, EconomicPower: 100, TaxRate: TaxRate("Feudal"), Army: 0},
			wantGold: 100,
			wantFood: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EstimateForecast(tt.stats)
			if got.Gold != tt.wantGold {
				t.Errorf("gold forecast = %d, want %d", got.Gold, tt.wantGold)
			}
			if got.Food != tt.wantFood {
				t.Errorf("food forecast = %d, want %d", got.Food, tt.wantFood)
			}
		})
	}
}

func TestEstimateForecast_DoesNotMutate(t *testing.T) {
	s := Stats{Population: 100, EconomicPower: 50, TaxRate: TaxStandard, Army: 10}
	before := s
	_ = EstimateForecast(s)
	if s != before {
		t.Error("forecast mutated the stats")
	}
}

func TestTaxRate_Next(t *testing.T) {
	order := []TaxRate{TaxHaven, TaxLow, TaxStandard, TaxExtortion, TaxHaven}
	for i := 0; i < len(order)-1; i++ {
		if got := order[i].Next(); got != order[i+1] {
			t.Errorf("Next(%s) = %s, want %s", order[i], got, order[i+1])
		}
	}
	if got := TaxRate("bogus").Next(); got != TaxStandard {
		t.Errorf("Next(bogus) = %s, want Standard", got)
	}
}
