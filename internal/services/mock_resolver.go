package services

import (
	"context"
	"sync"

	"github.com/kvhuynh/sovereign/pkg/kingdom"
	"github.com/kvhuynh/sovereign/pkg/turn"
	"github.com/kvhuynh/sovereign/pkg/world"
)

// MockResolver is a mock implementation of TurnResolver for testing and for
// offline play.
type MockResolver struct {
	ResolveTurnFunc func(ctx context.Context, req *turn.Request) (*turn.Result, error)

	// Track calls for testing
	ResolveTurnCalls []ResolveTurnCall

	mu sync.Mutex // protects all fields above
}

type ResolveTurnCall struct {
	Request *turn.Request
}

// NewMockResolver creates a new mock turn resolver
func NewMockResolver() *MockResolver {
	return &MockResolver{
		ResolveTurnCalls: make([]ResolveTurnCall, 0),
	}
}

func (m *MockResolver) Name() string { return "mock" }

// ResolveTurn mocks turn resolution. The default behavior returns a canned
// result; init requests additionally get initial stats, a map and politics so
// a new game is playable against the mock.
func (m *MockResolver) ResolveTurn(ctx context.Context, req *turn.Request) (*turn.Result, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.ResolveTurnCalls = append(m.ResolveTurnCalls, ResolveTurnCall{Request: req})

	if m.ResolveTurnFunc != nil {
		return m.ResolveTurnFunc(ctx, req)
	}

	if req.IsInit() {
		stats := kingdom.StarterStats()
		return &turn.Result{
			Narrative:    "Your banner rises over a small holdfast. The realm watches.",
			EventTitle:   "A Crown Claimed",
			InitialStats: &stats,
			MapGrid:      world.MapGrid{"~~~~", "~PA~", "~~~~"},
			WorldUpdate: &world.Update{
				NewEntities: []world.Entity{
					{ID: "A", Name: "Brennia", Type: world.EntityKingdom, Relation: world.RelationNeutral, Color: "#aa3333"},
				},
			},
			PoliticalUpdate: &world.PoliticalUpdate{
				NewFamilyMembers: []world.Person{
					{ID: "self", Name: req.Settings.LeaderName, Status: world.StatusAlive, FamilyRelation: world.FamilySelf},
				},
				NewDivisions: []world.Division{
					{ID: "capital", Name: "The Capital", Type: world.DivisionCapital},
				},
			},
			SuggestedActions: mockChoices(),
		}, nil
	}

	return &turn.Result{
		Narrative:        "The month passes quietly. Grain is gathered and the garrison drills.",
		EventTitle:       "A Quiet Month",
		MonthsPassed:     1,
		StatsChange:      kingdom.Delta{Gold: 10, Food: -5},
		SuggestedActions: mockChoices(),
	}, nil
}

func mockChoices() []turn.SuggestedAction {
	return []turn.SuggestedAction{
		{Label: "Expand the farms", Action: "Clear land for new farms", Style: turn.StyleEconomic},
		{Label: "Drill the levies", Action: "Train the levies for war", Style: turn.StyleAggressive},
		{Label: "Send an envoy", Action: "Send an envoy to the neighbors", Style: turn.StyleDiplomatic},
		{Label: "Hold court", Action: "Hold court and hear petitions", Style: turn.StyleNeutral},
	}
}

// Reset clears all call tracking
func (m *MockResolver) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ResolveTurnCalls = make([]ResolveTurnCall, 0)
}

// SetResolveError sets up the mock to return an error on ResolveTurn
func (m *MockResolver) SetResolveError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ResolveTurnFunc = func(ctx context.Context, req *turn.Request) (*turn.Result, error) {
		return nil, err
	}
}

// SetResult sets up the mock to return a fixed result on ResolveTurn
func (m *MockResolver) SetResult(result *turn.Result) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ResolveTurnFunc = func(ctx context.Context, req *turn.Request) (*turn.Result, error) {
		return result, nil
	}
}

// GetCalls returns a copy of the call tracking data in a thread-safe way
func (m *MockResolver) GetCalls() []ResolveTurnCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	calls := make([]ResolveTurnCall, len(m.ResolveTurnCalls))
	copy(calls, m.ResolveTurnCalls)
	return calls
}
