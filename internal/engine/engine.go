package engine

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"

	"github.com/kvhuynh/sovereign/internal/services"
	"github.com/kvhuynh/sovereign/internal/storage"
	"github.com/kvhuynh/sovereign/pkg/kingdom"
	"github.com/kvhuynh/sovereign/pkg/session"
	"github.com/kvhuynh/sovereign/pkg/turn"
	"github.com/kvhuynh/sovereign/pkg/world"
)

// Phase is the turn lifecycle state of the engine.
type Phase string

const (
	PhaseIdle     Phase = "idle"
	PhaseAwaiting Phase = "awaiting"
	PhaseResolved Phase = "resolved"
	PhaseFailed   Phase = "failed"
)

// In-world flavor shown when the turn service cannot be reached. The reign
// continues; the player just retries.
const turnFailureFlavor = "The royal messenger never returned. The court waits for word that does not come. (The order was not carried out; try again.)"

// Engine owns the session and drives turns through the resolver. All state
// transitions go through the engine; the TUI only reads the session and calls
// the exported methods. Turns are single-flight: a submission while one is in
// flight is rejected as a no-op.
type Engine struct {
	mu       sync.Mutex
	session  *session.Session
	resolver services.TurnResolver
	store    storage.SessionStore // optional autosave target
	logger   *slog.Logger
	phase    Phase
	busy     bool
}

// New creates an engine. store may be nil to disable autosave.
func New(resolver services.TurnResolver, store storage.SessionStore, logger *slog.Logger) *Engine {
	return &Engine{
		resolver: resolver,
		store:    store,
		logger:   logger,
		phase:    PhaseIdle,
	}
}

// Session returns the current session, or nil when no game is active. The
// returned pointer is the live aggregate; callers outside the engine's own
// goroutine must read through Snapshot instead.
func (e *Engine) Session() *session.Session {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.session
}

// Snapshot is a point-in-time copy of the session state the UI renders.
// The engine keeps mutating the live session while a turn resolves, so
// renderers never share slices with it.
type Snapshot struct {
	Active         bool
	Settings       turn.Settings
	Stats          kingdom.Stats
	LastChange     kingdom.Delta
	Logs           []session.LogEntry
	Choices        []turn.SuggestedAction
	ActiveBuffs    []world.Buff
	Map            world.MapGrid
	GameOver       bool
	GameOverReason string
	Clock          string
}

// Snapshot copies the render-relevant session fields under the engine lock.
// Active is false when no game is running. Log entries and choices are
// write-once after append, so cloning the slice headers is enough.
func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	s := e.session
	if s == nil {
		return Snapshot{}
	}
	return Snapshot{
		Active:         true,
		Settings:       s.Settings,
		Stats:          s.Stats,
		LastChange:     s.LastChange,
		Logs:           slices.Clone(s.Logs),
		Choices:        slices.Clone(s.Choices),
		ActiveBuffs:    slices.Clone(s.ActiveBuffs),
		Map:            slices.Clone(s.Map),
		GameOver:       s.GameOver,
		GameOverReason: s.GameOverReason,
		Clock:          s.ClockLabel(),
	}
}

// Phase returns the current turn lifecycle phase.
func (e *Engine) Phase() Phase {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.phase
}

// Busy reports whether a turn is currently in flight.
func (e *Engine) Busy() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.busy
}

// NewGame discards any active session and starts a fresh reign by submitting
// the initialization turn. A failed initialization still yields a playable
// session on minimal recovery stats rather than an error screen.
func (e *Engine) NewGame(ctx context.Context, settings turn.Settings) error {
	e.mu.Lock()
	if e.busy {
		e.mu.Unlock()
		return fmt.Errorf("a turn is already in flight")
	}
	e.busy = true
	e.phase = PhaseAwaiting
	s := session.New(settings)
	e.session = s
	req := s.TurnRequest(turn.InitAction)
	e.mu.Unlock()

	result, err := e.resolver.ResolveTurn(ctx, req)

	e.mu.Lock()
	defer func() {
		e.busy = false
		e.mu.Unlock()
	}()

	if err != nil {
		e.logger.Error("Initialization turn failed", "error", err, "provider", e.resolver.Name())
		s.Stats = kingdom.RecoveryStats()
		s.Append(session.NewLogEntry(session.KindSystem,
			"The realm begins in hardship. Records of the founding were lost; the kingdom starts from almost nothing.",
			s.ClockLabel()))
		s.Choices = []turn.SuggestedAction{
			{Label: "Survey the land", Action: "Survey the surrounding land", Style: turn.StyleNeutral},
			{Label: "Rally the people", Action: "Rally the people and take stock of the kingdom", Style: turn.StyleDiplomatic},
		}
		e.phase = PhaseFailed
		e.autosaveLocked(ctx)
		return nil
	}

	if result.InitialStats != nil {
		s.Stats = normalizeInitialStats(*result.InitialStats)
	} else {
		s.Stats = kingdom.StarterStats()
	}
	e.foldShared(s, result)

	title := result.EventTitle
	if title == "" {
		title = "Genesis"
	}
	entry := session.NewLogEntry(session.KindNarrative, result.Narrative, s.ClockLabel())
	entry.EventTitle = title
	s.Append(entry)

	e.phase = PhaseResolved
	e.autosaveLocked(ctx)
	return nil
}

// Submit resolves one player action. It returns false without error when the
// submission is rejected: a turn already in flight, no active session, or the
// game is over. A resolver failure returns (true, nil) as well; the failure
// surfaces as a system chronicle entry and the session stays playable.
func (e *Engine) Submit(ctx context.Context, action string) (bool, error) {
	e.mu.Lock()
	s := e.session
	if s == nil || e.busy || s.GameOver {
		e.mu.Unlock()
		return false, nil
	}
	e.busy = true
	e.phase = PhaseAwaiting

	s.Append(session.NewLogEntry(session.KindUser, action, s.ClockLabel()))
	s.Choices = make([]turn.SuggestedAction, 0)
	req := s.TurnRequest(action)
	e.mu.Unlock()

	result, err := e.resolver.ResolveTurn(ctx, req)

	e.mu.Lock()
	defer func() {
		e.busy = false
		e.mu.Unlock()
	}()

	if err != nil {
		e.logger.Error("Turn failed", "error", err, "provider", e.resolver.Name())
		s.Append(session.NewLogEntry(session.KindSystem, turnFailureFlavor, s.ClockLabel()))
		e.phase = PhaseFailed
		e.autosaveLocked(ctx)
		return true, nil
	}

	e.foldShared(s, result)

	if result.IsGameOver {
		// Stats and calendar freeze at the moment of defeat.
		s.GameOver = true
		reason := result.GameOverReason
		if reason == "" {
			reason = "unknown"
		}
		s.GameOverReason = reason

		entry := session.NewLogEntry(session.KindNarrative, result.Narrative, s.ClockLabel())
		entry.EventTitle = result.EventTitle
		s.Append(entry)
		s.Append(session.NewLogEntry(session.KindSystem,
			fmt.Sprintf("The kingdom has fallen! Cause: %s", reason), s.ClockLabel()))
		e.phase = PhaseResolved
		e.autosaveLocked(ctx)
		return true, nil
	}

	s.Stats = kingdom.Apply(s.Stats, result.StatsChange, result.MonthsPassed)
	s.LastChange = result.StatsChange

	// Narrative entries carry the post-turn calendar stamp.
	entry := session.NewLogEntry(session.KindNarrative, result.Narrative, s.ClockLabel())
	entry.EventTitle = result.EventTitle
	entry.EntityActions = result.OtherKingdomsActions
	s.Append(entry)

	if len(result.OtherKingdomsActions) > 0 {
		s.Append(session.NewLogEntry(session.KindWorldEvent,
			describeEntityActions(result.OtherKingdomsActions), s.ClockLabel()))
	}

	e.phase = PhaseResolved
	e.autosaveLocked(ctx)
	return true, nil
}

// foldShared merges the update payloads common to every resolved turn:
// world knowledge, politics, buffs, choices and the map.
func (e *Engine) foldShared(s *session.Session, result *turn.Result) {
	s.World.Apply(result.WorldUpdate)
	s.Heritage.Apply(result.PoliticalUpdate)
	s.ActiveBuffs = world.ApplyBuffs(s.ActiveBuffs, result.BuffsUpdate)
	if result.SuggestedActions != nil {
		s.Choices = result.SuggestedActions
	}
	if len(result.MapGrid) > 0 {
		s.Map = result.MapGrid
	}
}

// CycleTaxRate advances the tax policy to the next setting and returns the
// new value. Taxation is player-set; turn results never change it.
func (e *Engine) CycleTaxRate() kingdom.TaxRate {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.session == nil || e.busy || e.session.GameOver {
		if e.session == nil {
			return kingdom.TaxStandard
		}
		return e.session.Stats.TaxRate
	}
	e.session.Stats.TaxRate = e.session.Stats.TaxRate.Next()
	return e.session.Stats.TaxRate
}

// SaveTo exports the session as a save file in dir and returns the path.
func (e *Engine) SaveTo(dir string) (string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.session == nil {
		return "", fmt.Errorf("no active session")
	}
	exporter, err := storage.NewFileExporter(dir)
	if err != nil {
		return "", err
	}
	return exporter.ExportSession(e.session)
}

// LoadFrom imports a save file and makes it the active session. The current
// session is only replaced when the file parses and validates.
func (e *Engine) LoadFrom(path string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.busy {
		return fmt.Errorf("a turn is in flight")
	}

	exporter, err := storage.NewFileExporter(".")
	if err != nil {
		return err
	}
	loaded, err := exporter.ImportSession(path)
	if err != nil {
		return err
	}
	e.session = loaded
	e.phase = PhaseIdle
	return nil
}

// ExitToMenu drops the in-memory session. Anything not saved is gone.
func (e *Engine) ExitToMenu() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.session = nil
	e.phase = PhaseIdle
}

// autosaveLocked persists the session to the store if one is configured.
// Autosave is best effort; a failing store never fails the turn.
// Callers must hold e.mu.
func (e *Engine) autosaveLocked(ctx context.Context) {
	if e.store == nil || e.session == nil {
		return
	}
	if err := e.store.SaveSession(ctx, e.session); err != nil {
		e.logger.Warn("Autosave failed", "error", err, "session_id", e.session.ID)
	}
}

// normalizeInitialStats accepts service-provided starting stats but repairs
// fields the schema does not ask for, so a reign never starts at Year 0 or
// with an empty tax policy.
func normalizeInitialStats(s kingdom.Stats) kingdom.Stats {
	if s.Year < 1 {
		s.Year = 1
	}
	if s.Month < 1 || s.Month > 12 {
		s.Month = 1
	}
	if s.TaxRate == "" {
		s.TaxRate = kingdom.TaxStandard
	}
	return s
}

func describeEntityActions(actions []turn.EntityAction) string {
	parts := make([]string, 0, len(actions))
	for _, a := range actions {
		if a.Description != "" {
			parts = append(parts, fmt.Sprintf("%s: %s", a.EntityName, a.Description))
			continue
		}
		parts = append(parts, fmt.Sprintf("%s takes action (%s)", a.EntityName, a.ActionType))
	}
	return strings.Join(parts, "\n")
}
