package turn

import (
	"github.com/kvhuynh/sovereign/pkg/kingdom"
	"github.com/kvhuynh/sovereign/pkg/world"
)

// InitAction is the sentinel action sent on the very first turn of a new
// game, asking the service to create the world.
const InitAction = "KHỞI TẠO"

// ActionStyle tags a suggested action for display.
type ActionStyle string

const (
	StyleAggressive ActionStyle = "Aggressive"
	StyleDiplomatic ActionStyle = "Diplomatic"
	StyleEconomic   ActionStyle = "Economic"
	StyleNeutral    ActionStyle = "Neutral"
)

// SuggestedAction is one of the choices offered to the player after a turn.
// The list is replaced wholesale each turn, never merged.
type SuggestedAction struct {
	Label  string      `json:"label"`
	Action string      `json:"action"`
	Style  ActionStyle `json:"style,omitempty"`
}

// EntityActionType classifies what a foreign polity did this turn.
type EntityActionType string

const (
	ActionWar       EntityActionType = "War"
	ActionDiplomacy EntityActionType = "Diplomacy"
	ActionExpansion EntityActionType = "Expansion"
	ActionInternal  EntityActionType = "Internal"
	ActionTrade     EntityActionType = "Trade"
	ActionUnknown   EntityActionType = "Unknown"
)

// EntityAction records something a foreign polity did during a turn.
type EntityAction struct {
	EntityID    string           `json:"entityId"`
	EntityName  string           `json:"entityName"`
	ActionType  EntityActionType `json:"actionType"`
	Description string           `json:"description"`
}

// Settings is the immutable session configuration chosen at world creation.
type Settings struct {
	WorldTheme        string `json:"worldTheme"`
	KingdomName       string `json:"kingdomName"`
	Background        string `json:"background"`
	LeaderName        string `json:"leaderName"`
	LeaderDescription string `json:"leaderDescription"`
}

// Request is everything the turn-resolution service needs to resolve one
// player action: the current state plus a bounded narrative history window.
type Request struct {
	Stats       kingdom.Stats  `json:"stats"`
	Action      string         `json:"action"`
	Settings    Settings       `json:"settings"`
	World       world.Info     `json:"worldInfo"`
	Heritage    world.Heritage `json:"heritage"`
	ActiveBuffs []world.Buff   `json:"activeBuffs"`
	History     []string       `json:"history"` // pre-rendered log lines, oldest first
}

// IsInit reports whether this is the world-creation turn.
func (r *Request) IsInit() bool {
	return r.Action == InitAction
}

// Result is the structured outcome of one resolved turn. Narrative,
// StatsChange, IsGameOver, SuggestedActions and MapGrid are expected on every
// result; everything else is optional and absent fields mean "no update of
// that kind this turn".
type Result struct {
	Narrative            string                 `json:"narrative"`
	EventTitle           string                 `json:"eventTitle,omitempty"`
	MonthsPassed         int                    `json:"monthsPassed,omitempty"`
	StatsChange          kingdom.Delta          `json:"statsChange"`
	SuggestedActions     []SuggestedAction      `json:"suggestedActions"`
	OtherKingdomsActions []EntityAction         `json:"otherKingdomsActions,omitempty"`
	MapGrid              world.MapGrid          `json:"map_grid,omitempty"`
	WorldUpdate          *world.Update          `json:"worldUpdate,omitempty"`
	PoliticalUpdate      *world.PoliticalUpdate `json:"politicalUpdate,omitempty"`
	BuffsUpdate          *world.BuffsUpdate     `json:"buffsUpdate,omitempty"`
	InitialStats         *kingdom.Stats         `json:"initialStats,omitempty"`
	IsGameOver           bool                   `json:"isGameOver"`
	GameOverReason       string                 `json:"gameOverReason,omitempty"`
}
