package world

// BuffType classifies a standing kingdom status effect.
type BuffType string

const (
	BuffPositive BuffType = "Positive"
	BuffNegative BuffType = "Negative"
	BuffNeutral  BuffType = "Neutral"
)

// Buff is a standing status effect on the kingdom. Buffs have no expiry
// timer; they persist until a turn result removes them by ID.
type Buff struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Type        BuffType `json:"type"`
	Description string   `json:"description"`
	Effect      string   `json:"effect"`
}
