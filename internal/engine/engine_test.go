package engine

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/kvhuynh/sovereign/internal/services"
	"github.com/kvhuynh/sovereign/internal/storage"
	"github.com/kvhuynh/sovereign/pkg/kingdom"
	"github.com/kvhuynh/sovereign/pkg/session"
	"github.com/kvhuynh/sovereign/pkg/turn"
	"github.com/kvhuynh/sovereign/pkg/world"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func testSettings() turn.Settings {
	return turn.Settings{
		WorldTheme:  "Medieval",
		KingdomName: "Aldmark",
		LeaderName:  "King Aldric",
	}
}

func quietResult() *turn.Result {
	return &turn.Result{
		Narrative:    "The month passes quietly.",
		EventTitle:   "A Quiet Month",
		MonthsPassed: 1,
		StatsChange:  kingdom.Delta{Gold: -20, Food: 30, Happiness: 5},
		SuggestedActions: []turn.SuggestedAction{
			{Label: "Rest", Action: "Let the kingdom rest"},
		},
	}
}

func newTestEngine(t *testing.T) (*Engine, *services.MockResolver, *storage.MockStore) {
	t.Helper()
	mock := services.NewMockResolver()
	store := storage.NewMockStore()
	return New(mock, store, testLogger()), mock, store
}

func startGame(t *testing.T, e *Engine) {
	t.Helper()
	require.NoError(t, e.NewGame(context.Background(), testSettings()))
}

func TestNewGame_AdoptsInitialStats(t *testing.T) {
	e, mock, store := newTestEngine(t)
	startGame(t, e)

	s := e.Session()
	require.NotNil(t, s)
	assert.Equal(t, kingdom.StarterStats(), s.Stats, "mock init provides starter stats")
	assert.Equal(t, 1, s.Stats.Year)
	assert.Equal(t, 1, s.Stats.Month)

	require.Len(t, s.Logs, 1)
	assert.Equal(t, session.KindNarrative, s.Logs[0].Kind)
	assert.NotEmpty(t, s.Logs[0].EventTitle)
	assert.Contains(t, s.Logs[0].Timestamp, "Year 1 - Month 1")

	assert.NotEmpty(t, s.Choices)
	assert.NotEmpty(t, s.Map)
	assert.NotEmpty(t, s.Heritage.RoyalFamily)
	assert.Equal(t, PhaseResolved, e.Phase())

	calls := mock.GetCalls()
	require.Len(t, calls, 1)
	assert.True(t, calls[0].Request.IsInit())

	assert.Equal(t, 1, store.Count(), "new game autosaves")
}

func TestNewGame_FallsBackToStarterStats(t *testing.T) {
	e, mock, _ := newTestEngine(t)
	mock.SetResult(&turn.Result{
		Narrative:        "A realm without records.",
		SuggestedActions: []turn.SuggestedAction{{Label: "Look around", Action: "Look around"}},
	})
	startGame(t, e)

	assert.Equal(t, kingdom.StarterStats(), e.Session().Stats)
}

func TestNewGame_FailureRecovers(t *testing.T) {
	e, mock, _ := newTestEngine(t)
	mock.SetResolveError(fmt.Errorf("provider down"))
	startGame(t, e)

	s := e.Session()
	require.NotNil(t, s)
	assert.Equal(t, kingdom.RecoveryStats(), s.Stats)
	require.Len(t, s.Logs, 1)
	assert.Equal(t, session.KindSystem, s.Logs[0].Kind)
	assert.Len(t, s.Choices, 2)
	assert.Equal(t, PhaseFailed, e.Phase())
	assert.False(t, s.GameOver, "a failed init is not a game over")

	// The session stays playable.
	mock.SetResult(quietResult())
	ok, err := e.Submit(context.Background(), "rally the people")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestSubmit_AppliesResult(t *testing.T) {
	e, mock, _ := newTestEngine(t)
	startGame(t, e)
	mock.SetResult(quietResult())

	before := e.Session().Stats
	ok, err := e.Submit(context.Background(), "hold court")
	require.NoError(t, err)
	require.True(t, ok)

	s := e.Session()
	assert.Equal(t, before.Gold-20, s.Stats.Gold)
	assert.Equal(t, before.Food+30, s.Stats.Food)
	assert.Equal(t, before.Month+1, s.Stats.Month)
	assert.Equal(t, kingdom.Delta{Gold: -20, Food: 30, Happiness: 5}, s.LastChange)

	// Init narrative, then user order, then turn narrative.
	require.Len(t, s.Logs, 3)
	assert.Equal(t, session.KindUser, s.Logs[1].Kind)
	assert.Equal(t, "hold court", s.Logs[1].Content)
	assert.Equal(t, session.KindNarrative, s.Logs[2].Kind)
	assert.Contains(t, s.Logs[2].Timestamp, "Month 2", "narrative is stamped with the post-turn calendar")

	require.Len(t, s.Choices, 1)
	assert.Equal(t, "Rest", s.Choices[0].Label)
	assert.Equal(t, PhaseResolved, e.Phase())
}

func TestSubmit_SingleFlight(t *testing.T) {
	e, mock, _ := newTestEngine(t)
	startGame(t, e)

	release := make(chan struct{})
	started := make(chan struct{})
	mock.ResolveTurnFunc = func(ctx context.Context, req *turn.Request) (*turn.Result, error) {
		close(started)
		<-release
		return quietResult(), nil
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		ok, err := e.Submit(context.Background(), "first order")
		assert.NoError(t, err)
		assert.True(t, ok)
	}()

	<-started
	logsBefore := len(e.Session().Logs)
	ok, err := e.Submit(context.Background(), "second order")
	require.NoError(t, err)
	assert.False(t, ok, "second submission while in flight must be rejected")
	assert.Len(t, e.Session().Logs, logsBefore, "rejected submission leaves no trace")

	close(release)
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("first submission never finished")
	}
	assert.False(t, e.Busy())
}

func TestSnapshot_ReadableDuringTurn(t *testing.T) {
	e, mock, _ := newTestEngine(t)
	startGame(t, e)

	release := make(chan struct{})
	started := make(chan struct{})
	mock.ResolveTurnFunc = func(ctx context.Context, req *turn.Request) (*turn.Result, error) {
		close(started)
		<-release
		return quietResult(), nil
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		ok, err := e.Submit(context.Background(), "survey the granaries")
		assert.NoError(t, err)
		assert.True(t, ok)
	}()

	// A render loop keeps reading while the turn is in flight and while its
	// result is being folded in. Run with -race.
	readerDone := make(chan struct{})
	go func() {
		defer close(readerDone)
		for {
			snap := e.Snapshot()
			_ = snap.Clock
			_ = len(snap.Logs) + len(snap.Choices) + len(snap.ActiveBuffs)
			_ = snap.Stats.Gold + snap.LastChange.Gold
			select {
			case <-done:
				return
			default:
			}
		}
	}()

	<-started
	close(release)
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("submission never finished")
	}
	<-readerDone

	snap := e.Snapshot()
	assert.True(t, snap.Active)
	assert.Equal(t, e.Session().Stats, snap.Stats)
	assert.Len(t, snap.Logs, len(e.Session().Logs))
}

func TestSnapshot_IsolatedFromLaterTurns(t *testing.T) {
	e, mock, _ := newTestEngine(t)
	startGame(t, e)

	snap := e.Snapshot()
	logsBefore := len(snap.Logs)
	choicesBefore := len(snap.Choices)

	mock.SetResult(quietResult())
	ok, err := e.Submit(context.Background(), "hold court")
	require.NoError(t, err)
	require.True(t, ok)

	assert.Len(t, snap.Logs, logsBefore, "a snapshot must not grow with the live session")
	assert.Len(t, snap.Choices, choicesBefore)
	assert.Greater(t, len(e.Session().Logs), logsBefore)
}

func TestSnapshot_NoSession(t *testing.T) {
	e, _, _ := newTestEngine(t)
	snap := e.Snapshot()
	assert.False(t, snap.Active)
	assert.Empty(t, snap.Logs)
}

func TestSubmit_FailureLeavesStatsUntouched(t *testing.T) {
	e, mock, _ := newTestEngine(t)
	startGame(t, e)
	before := e.Session().Stats
	logsBefore := len(e.Session().Logs)

	mock.SetResolveError(fmt.Errorf("timeout"))
	ok, err := e.Submit(context.Background(), "march east")
	require.NoError(t, err)
	require.True(t, ok)

	s := e.Session()
	assert.Equal(t, before, s.Stats, "failed turn must not move stats or calendar")
	require.Len(t, s.Logs, logsBefore+2, "user order plus one system flavor entry")
	assert.Equal(t, session.KindSystem, s.Logs[len(s.Logs)-1].Kind)
	assert.Empty(t, s.Choices, "choices were cleared optimistically")
	assert.Equal(t, PhaseFailed, e.Phase())
	assert.False(t, e.Busy())

	// Next turn proceeds normally.
	mock.SetResult(quietResult())
	ok, err = e.Submit(context.Background(), "try again")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestSubmit_GameOverFreezesState(t *testing.T) {
	e, mock, _ := newTestEngine(t)
	startGame(t, e)
	before := e.Session().Stats

	mock.SetResult(&turn.Result{
		Narrative:      "The gates are breached.",
		EventTitle:     "The Fall",
		StatsChange:    kingdom.Delta{Gold: -999, Population: -999},
		MonthsPassed:   3,
		IsGameOver:     true,
		GameOverReason: "conquered by Brennia",
	})

	ok, err := e.Submit(context.Background(), "defend the walls")
	require.NoError(t, err)
	require.True(t, ok)

	s := e.Session()
	assert.True(t, s.GameOver)
	assert.Equal(t, "conquered by Brennia", s.GameOverReason)
	assert.Equal(t, before, s.Stats, "defeat freezes stats and calendar")

	last := s.Logs[len(s.Logs)-1]
	assert.Equal(t, session.KindSystem, last.Kind)
	assert.Contains(t, last.Content, "The kingdom has fallen! Cause: conquered by Brennia")

	// No further turns on a fallen kingdom.
	ok, err = e.Submit(context.Background(), "rise again")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSubmit_WorldEventEntry(t *testing.T) {
	e, mock, _ := newTestEngine(t)
	startGame(t, e)

	result := quietResult()
	result.OtherKingdomsActions = []turn.EntityAction{
		{EntityID: "A", EntityName: "Brennia", ActionType: turn.ActionWar, Description: "Brennia raids the border"},
	}
	mock.SetResult(result)

	ok, err := e.Submit(context.Background(), "hold court")
	require.NoError(t, err)
	require.True(t, ok)

	s := e.Session()
	last := s.Logs[len(s.Logs)-1]
	assert.Equal(t, session.KindWorldEvent, last.Kind)
	assert.Contains(t, last.Content, "Brennia raids the border")
}

func TestSubmit_NoSession(t *testing.T) {
	e, _, _ := newTestEngine(t)
	ok, err := e.Submit(context.Background(), "anything")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSubmit_FoldsWorldUpdates(t *testing.T) {
	e, mock, _ := newTestEngine(t)
	startGame(t, e)

	result := quietResult()
	result.WorldUpdate = &world.Update{
		NewEntities: []world.Entity{{ID: "B", Name: "Vostok", Type: world.EntityEmpire, Relation: world.RelationHostile}},
		NewRumors:   []world.Rumor{{ID: "r1", Title: "War drums", Type: world.RumorThreat}},
	}
	result.BuffsUpdate = &world.BuffsUpdate{
		NewBuffs: []world.Buff{{ID: "b1", Name: "War Footing", Type: world.BuffNegative}},
	}
	mock.SetResult(result)

	ok, err := e.Submit(context.Background(), "scout east")
	require.NoError(t, err)
	require.True(t, ok)

	s := e.Session()
	assert.NotNil(t, s.World.EntityByID("B"))
	require.Len(t, s.World.Rumors, 1)
	require.Len(t, s.ActiveBuffs, 1)
	assert.Equal(t, "War Footing", s.ActiveBuffs[0].Name)
}

func TestAutosave_BestEffort(t *testing.T) {
	e, mock, store := newTestEngine(t)
	startGame(t, e)

	store.SetSaveError(fmt.Errorf("redis gone"))
	mock.SetResult(quietResult())

	ok, err := e.Submit(context.Background(), "hold court")
	require.NoError(t, err, "a failing store must not fail the turn")
	assert.True(t, ok)
	assert.Equal(t, PhaseResolved, e.Phase())
}

func TestCycleTaxRate(t *testing.T) {
	e, _, _ := newTestEngine(t)
	startGame(t, e)

	assert.Equal(t, kingdom.TaxStandard, e.Session().Stats.TaxRate)
	assert.Equal(t, kingdom.TaxExtortion, e.CycleTaxRate())
	assert.Equal(t, kingdom.TaxHaven, e.CycleTaxRate())
	assert.Equal(t, kingdom.TaxHaven, e.Session().Stats.TaxRate)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	e, mock, _ := newTestEngine(t)
	startGame(t, e)
	mock.SetResult(quietResult())
	_, err := e.Submit(context.Background(), "hold court")
	require.NoError(t, err)

	dir := t.TempDir()
	path, err := e.SaveTo(dir)
	require.NoError(t, err)
	want := *e.Session()

	e.ExitToMenu()
	assert.Nil(t, e.Session())

	require.NoError(t, e.LoadFrom(path))
	got := e.Session()
	require.NotNil(t, got)
	assert.Equal(t, want.ID, got.ID)
	assert.Equal(t, want.Stats, got.Stats)
	assert.Equal(t, want.Logs, got.Logs)
	assert.Equal(t, want.Choices, got.Choices)
}

func TestLoadFrom_RejectsCorruptKeepsSession(t *testing.T) {
	e, _, _ := newTestEngine(t)
	startGame(t, e)
	current := e.Session()

	bad := filepath.Join(t.TempDir(), "kingdom_bad_Y1_M1.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"stats": {}}`), 0o644))

	err := e.LoadFrom(bad)
	require.Error(t, err)
	assert.Same(t, current, e.Session(), "a rejected load must not disturb the active session")
}
