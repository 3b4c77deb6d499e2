package session

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
	"github.com/kvhuynh/sovereign/pkg/kingdom"
	"github.com/kvhuynh/sovereign/pkg/turn"
	"github.com/kvhuynh/sovereign/pkg/world"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// saveFile mirrors the session save contract with pointer fields for the
// mandatory keys, so a missing key is distinguishable from a zero value.
type saveFile struct {
	Stats          *kingdom.Stats         `json:"stats"`
	Logs           *[]LogEntry            `json:"logs"`
	Settings       *turn.Settings         `json:"settings"`
	GameOver       bool                   `json:"gameOver"`
	GameOverReason string                 `json:"gameOverReason"`
	LastChange     kingdom.Delta          `json:"lastChange"`
	World          *world.Info            `json:"worldInfo"`
	Heritage       *world.Heritage        `json:"heritage"`
	ActiveBuffs    []world.Buff           `json:"activeBuffs"`
	Choices        []turn.SuggestedAction `json:"currentChoices"`
	Map            world.MapGrid          `json:"mapGrid"`
	ID             uuid.UUID              `json:"id"`
	CreatedAt      time.Time              `json:"createdAt"`
}

// MarshalSave serializes the session as a save-file document.
func (s *Session) MarshalSave() ([]byte, error) {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal session: %w", err)
	}
	return data, nil
}

// ParseSave parses and validates a save-file document. Stats, logs and
// settings are mandatory; a document missing any of them is rejected whole.
// Every other field defaults to its empty value so older saves keep loading
// as the schema grows.
func ParseSave(data []byte) (*Session, error) {
	var sf saveFile
	if err := json.Unmarshal(data, &sf); err != nil {
		return nil, fmt.Errorf("invalid save file: %w", err)
	}
	if sf.Stats == nil || sf.Logs == nil || sf.Settings == nil {
		return nil, fmt.Errorf("invalid save file: missing stats, logs or settings")
	}

	s := New(*sf.Settings)
	s.Stats = *sf.Stats
	s.Logs = *sf.Logs
	s.GameOver = sf.GameOver
	s.GameOverReason = sf.GameOverReason
	s.LastChange = sf.LastChange
	if sf.World != nil {
		s.World = *sf.World
	}
	if sf.Heritage != nil {
		s.Heritage = *sf.Heritage
	}
	if sf.ActiveBuffs != nil {
		s.ActiveBuffs = sf.ActiveBuffs
	}
	if sf.Choices != nil {
		s.Choices = sf.Choices
	}
	s.Map = sf.Map
	if sf.ID != uuid.Nil {
		s.ID = sf.ID
	}
	if !sf.CreatedAt.IsZero() {
		s.CreatedAt = sf.CreatedAt
	}
	return s, nil
}

// SaveFilename derives the canonical save filename from the kingdom name and
// calendar position: kingdom_<slug>_Y<year>_M<month>.json. The slug folds
// diacritics, lowercases, and maps anything non-alphanumeric to underscores.
func (s *Session) SaveFilename() string {
	return fmt.Sprintf("kingdom_%s_Y%d_M%d.json",
		slugify(s.Settings.KingdomName), s.Stats.Year, s.Stats.Month)
}

// foldDiacritics strips combining marks so names like "Đại Việt" slug to
// "dai_viet" instead of collapsing to underscores.
var foldDiacritics = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

func slugify(name string) string {
	folded, _, err := transform.String(foldDiacritics, name)
	if err != nil {
		folded = name
	}
	// Đ is a standalone letter, not a combining mark.
	folded = strings.NewReplacer("Đ", "D", "đ", "d").Replace(folded)

	var b strings.Builder
	for _, r := range strings.ToLower(folded) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		} else {
			b.WriteRune('_')
		}
	}
	return b.String()
}
