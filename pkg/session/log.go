package session

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/kvhuynh/sovereign/pkg/turn"
)

// Kind discriminates chronicle entries. The persisted values match the save
// contract; narrative entries serialize as "ai".
type Kind string

const (
	KindUser       Kind = "user"
	KindNarrative  Kind = "ai"
	KindSystem     Kind = "system"
	KindWorldEvent Kind = "world_event"
)

// LogEntry is one immutable item in the chronicle. Entries are append-only:
// once written they are never mutated or removed.
type LogEntry struct {
	ID            string              `json:"id"`
	Kind          Kind                `json:"type"`
	Content       string              `json:"content"`
	Timestamp     string              `json:"timestamp"`
	EventTitle    string              `json:"eventTitle,omitempty"`
	EntityActions []turn.EntityAction `json:"entityActions,omitempty"`
}

// NewLogEntry creates a chronicle entry with a fresh unique ID.
func NewLogEntry(kind Kind, content, timestamp string) LogEntry {
	return LogEntry{
		ID:        uuid.NewString(),
		Kind:      kind,
		Content:   content,
		Timestamp: timestamp,
	}
}

// speaker labels used when rendering history for the turn service.
func (e LogEntry) speaker() string {
	switch e.Kind {
	case KindUser:
		return "LEADER"
	case KindWorldEvent:
		return "WORLD"
	default:
		return "GAME MASTER"
	}
}

// HistoryLine renders the entry as one line of narrative context.
func (e LogEntry) HistoryLine() string {
	return fmt.Sprintf("[%s] %s: %s", e.Timestamp, e.speaker(), e.Content)
}
