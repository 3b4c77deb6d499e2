package session

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/kvhuynh/sovereign/pkg/kingdom"
	"github.com/kvhuynh/sovereign/pkg/turn"
	"github.com/kvhuynh/sovereign/pkg/world"
)

// HistoryWindowSize bounds the narrative context sent to the turn service.
const HistoryWindowSize = 8

// Session is the canonical state of one reign. It is owned exclusively by
// the engine; every other component either reads it or produces partial
// updates that the engine merges in. The JSON tags form the persisted save
// contract, so renaming a field here is a save-format change.
type Session struct {
	ID             uuid.UUID              `json:"id"`
	Settings       turn.Settings          `json:"settings"`
	Stats          kingdom.Stats          `json:"stats"`
	Logs           []LogEntry             `json:"logs"`
	World          world.Info             `json:"worldInfo"`
	Heritage       world.Heritage         `json:"heritage"`
	ActiveBuffs    []world.Buff           `json:"activeBuffs"`
	Choices        []turn.SuggestedAction `json:"currentChoices"`
	Map            world.MapGrid          `json:"mapGrid,omitempty"`
	GameOver       bool                   `json:"gameOver"`
	GameOverReason string                 `json:"gameOverReason,omitempty"`
	LastChange     kingdom.Delta          `json:"lastChange"`
	CreatedAt      time.Time              `json:"createdAt"`
	UpdatedAt      time.Time              `json:"updatedAt"`
}

// New creates a fresh session for the given settings with zeroed stats,
// empty collections and an empty chronicle.
func New(settings turn.Settings) *Session {
	now := time.Now()
	return &Session{
		ID:          uuid.New(),
		Settings:    settings,
		Stats:       kingdom.ZeroStats(),
		Logs:        make([]LogEntry, 0),
		World:       world.NewInfo(),
		Heritage:    world.NewHeritage(),
		ActiveBuffs: make([]world.Buff, 0),
		Choices:     make([]turn.SuggestedAction, 0),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// ClockLabel is the display timestamp for the current calendar position.
func (s *Session) ClockLabel() string {
	return ClockLabel(s.Stats.Year, s.Stats.Month)
}

// ClockLabel formats a calendar position for chronicle timestamps.
func ClockLabel(year, month int) string {
	return fmt.Sprintf("Year %d - Month %d", year, month)
}

// Append adds an entry to the chronicle. The chronicle is a pure log:
// this is the only way it grows and nothing ever shrinks it.
func (s *Session) Append(e LogEntry) {
	s.Logs = append(s.Logs, e)
	s.UpdatedAt = time.Now()
}

// HistoryWindow renders the trailing n non-system chronicle entries as
// narrative context lines, oldest first. System entries are client-side
// bookkeeping and never reach the turn service.
func (s *Session) HistoryWindow(n int) []string {
	filtered := make([]LogEntry, 0, len(s.Logs))
	for _, e := range s.Logs {
		if e.Kind != KindSystem {
			filtered = append(filtered, e)
		}
	}
	if len(filtered) > n {
		filtered = filtered[len(filtered)-n:]
	}

	lines := make([]string, len(filtered))
	for i, e := range filtered {
		lines[i] = e.HistoryLine()
	}
	return lines
}

// TurnRequest assembles the outbound request for the given action from the
// current state.
func (s *Session) TurnRequest(action string) *turn.Request {
	return &turn.Request{
		Stats:       s.Stats,
		Action:      action,
		Settings:    s.Settings,
		World:       s.World,
		Heritage:    s.Heritage,
		ActiveBuffs: s.ActiveBuffs,
		History:     s.HistoryWindow(HistoryWindowSize),
	}
}
