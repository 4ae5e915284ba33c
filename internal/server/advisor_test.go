package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"dota-draft-advisor/internal/api"
	"dota-draft-advisor/internal/domain"
	"dota-draft-advisor/internal/draft"
	"dota-draft-advisor/internal/heuristics"
	"dota-draft-advisor/internal/service"

	"connectrpc.com/connect"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/types/known/emptypb"
)

type stubHeroSource struct {
	entries []api.HeroStatsEntry
	err     error
}

func (s *stubHeroSource) GetHeroStats(context.Context) ([]api.HeroStatsEntry, error) {
	return s.entries, s.err
}

type memHeroStore struct {
	heroes []domain.Hero
	stats  []domain.HeroStats
}

func (m *memHeroStore) List(context.Context) ([]domain.Hero, error) { return m.heroes, nil }
func (m *memHeroStore) ListStats(context.Context) ([]domain.HeroStats, error) { return m.stats, nil }
func (m *memHeroStore) Count(context.Context) (int, error) { return len(m.heroes), nil }

func (m *memHeroStore) ShouldRefresh(context.Context, time.Duration) (bool, error) {
	return len(m.heroes) == 0, nil
}

func (m *memHeroStore) UpsertBatch(_ context.Context, heroes []domain.Hero, stats []domain.HeroStats) error {
	m.heroes, m.stats = heroes, stats
	return nil
}

// Only Anti-Mage has matchup data: Crystal Maiden beats him, Axe does not.
type stubMatchups struct{}

func (stubMatchups) GetMatchups(_ context.Context, heroID int) ([]api.MatchupEntry, error) {
	if heroID != 1 {
		return nil, api.ErrNotFound
	}
	return []api.MatchupEntry{
		{HeroID: 5, GamesPlayed: 100, Wins: 40},
		{HeroID: 2, GamesPlayed: 100, Wins: 70},
	}, nil
}

type emptyCache struct{}

func (emptyCache) GetByHero(context.Context, int) ([]domain.MatchupRecord, error) { return nil, nil }
func (emptyCache) ShouldRefresh(context.Context, int, time.Duration) (bool, error) {
	return true, nil
}
func (emptyCache) Replace(context.Context, int, []domain.MatchupRecord) error { return nil }

type defaultTable struct{}

func (defaultTable) Current() *heuristics.Table { return heuristics.Default() }

func testEntries() []api.HeroStatsEntry {
	return []api.HeroStatsEntry{
		{ID: 1, Name: "npc_dota_hero_antimage", LocalizedName: "Anti-Mage", PrimaryAttr: domain.AttrAgility,
			AttackType: domain.AttackMelee, Roles: []string{domain.RoleCarry, domain.RoleEscape, domain.RoleNuker}, PubPick: 100, PubWin: 52},
		{ID: 2, Name: "npc_dota_hero_axe", LocalizedName: "Axe", PrimaryAttr: domain.AttrStrength,
			AttackType: domain.AttackMelee, Roles: []string{domain.RoleInitiator, domain.RoleDurable}, PubPick: 80, PubWin: 41},
		{ID: 5, Name: "npc_dota_hero_crystal_maiden", LocalizedName: "Crystal Maiden", PrimaryAttr: domain.AttrIntelligence,
			AttackType: domain.AttackRanged, Roles: []string{domain.RoleSupport, domain.RoleDisabler}, PubPick: 60, PubWin: 30},
	}
}

func newTestServer(t *testing.T, source *stubHeroSource) string {
	t.Helper()
	logger := zerolog.Nop()
	heroSvc := service.NewHeroService(source, &memHeroStore{}, time.Hour, logger)
	matchupSvc := service.NewMatchupService(stubMatchups{}, emptyCache{}, time.Hour, logger)
	draftSvc := service.NewDraftService(heroSvc, matchupSvc, defaultTable{}, logger)

	path, handler := NewAdvisorServer(draftSvc, heroSvc, logger).Handler()
	mux := http.NewServeMux()
	mux.Handle(path, handler)

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv.URL
}

func call[Req, Res any](t *testing.T, baseURL, procedure string, req *Req) (*Res, error) {
	t.Helper()
	client := connect.NewClient[Req, Res](http.DefaultClient, baseURL+procedure, connect.WithCodec(jsonCodec{}))
	resp, err := client.CallUnary(context.Background(), connect.NewRequest(req))
	if err != nil {
		return nil, err
	}
	return resp.Msg, nil
}

func TestAdvisor_Suggest(t *testing.T) {
	url := newTestServer(t, &stubHeroSource{entries: testEntries()})

	res, err := call[SuggestRequest, SuggestResponse](t, url, SuggestProcedure, &SuggestRequest{
		EnemyTeam: []int{1},
		Context:   GameContext{ExpectedDuration: domain.Minutes(30), Playstyle: "balanced"},
	})
	require.NoError(t, err)

	assert.NotEmpty(t, res.BatchID)
	assert.InDelta(t, 0.2, res.Weights.Counter, 1e-9)
	require.Len(t, res.Suggestions, 2)
	for _, s := range res.Suggestions {
		assert.NotEqual(t, 1, s.Hero.ID)
		assert.Len(t, s.Timing, 3)
		assert.NotEmpty(t, s.Reasons)
		assert.NotEmpty(t, s.Lanes)
	}
	assert.GreaterOrEqual(t, res.Suggestions[0].Score, res.Suggestions[1].Score)
}

func TestAdvisor_InvalidArgument(t *testing.T) {
	url := newTestServer(t, &stubHeroSource{entries: testEntries()})

	tests := []struct {
		name string
		req  *SuggestRequest
	}{
		{"limit too high", &SuggestRequest{Limit: 99}},
		{"negative hero id", &SuggestRequest{YourTeam: []int{-1}}},
		{"too many heroes", &SuggestRequest{YourTeam: []int{1, 2, 3, 4, 5, 6}}},
		{"bad playstyle", &SuggestRequest{Context: GameContext{Playstyle: "reckless"}}},
		{"bad lane", &SuggestRequest{Context: GameContext{PreferredLanes: []int{6}}}},
		{"unknown role", &SuggestRequest{Roles: []string{"Tank"}}},
		{"duplicate pick", &SuggestRequest{YourTeam: []int{1}, EnemyTeam: []int{1}}},
		{"unknown hero", &SuggestRequest{YourTeam: []int{42}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := call[SuggestRequest, SuggestResponse](t, url, SuggestProcedure, tt.req)
			require.Error(t, err)
			assert.Equal(t, connect.CodeInvalidArgument, connect.CodeOf(err))
		})
	}
}

func TestAdvisor_SuggestScenario(t *testing.T) {
	url := newTestServer(t, &stubHeroSource{entries: testEntries()})

	res, err := call[SuggestScenarioRequest, SuggestResponse](t, url, SuggestScenarioProcedure, &SuggestScenarioRequest{
		Scenario: "team_fight",
	})
	require.NoError(t, err)
	assert.Len(t, res.Suggestions, 3)

	_, err = call[SuggestScenarioRequest, SuggestResponse](t, url, SuggestScenarioProcedure, &SuggestScenarioRequest{
		Scenario: "turbo",
	})
	assert.Equal(t, connect.CodeInvalidArgument, connect.CodeOf(err))
}

func TestAdvisor_SuggestScenarioFilters(t *testing.T) {
	url := newTestServer(t, &stubHeroSource{entries: testEntries()})

	tests := []struct {
		name string
		req  *SuggestScenarioRequest
		want []int
	}{
		{"offlane", &SuggestScenarioRequest{Scenario: "team_fight", OnlyLane: 3}, []int{2}},
		{"late peak", &SuggestScenarioRequest{Scenario: "team_fight", OnlyPhase: "late"}, []int{1}},
		{"counters anti-mage", &SuggestScenarioRequest{Scenario: "team_fight", CountersTo: 1}, []int{5}},
		{"combined", &SuggestScenarioRequest{Scenario: "team_fight", OnlyPhase: "early", CountersTo: 1}, []int{5}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := call[SuggestScenarioRequest, SuggestResponse](t, url, SuggestScenarioProcedure, tt.req)
			require.NoError(t, err)

			got := make([]int, 0, len(res.Suggestions))
			for _, s := range res.Suggestions {
				got = append(got, s.Hero.ID)
			}
			assert.ElementsMatch(t, tt.want, got)
		})
	}
}

func TestAdvisor_SuggestScenarioInvalidFilters(t *testing.T) {
	url := newTestServer(t, &stubHeroSource{entries: testEntries()})

	tests := []struct {
		name string
		req  *SuggestScenarioRequest
	}{
		{"lane out of range", &SuggestScenarioRequest{Scenario: "push", OnlyLane: 6}},
		{"unknown phase", &SuggestScenarioRequest{Scenario: "push", OnlyPhase: "endgame"}},
		{"negative counter target", &SuggestScenarioRequest{Scenario: "push", CountersTo: -3}},
		{"unknown counter target", &SuggestScenarioRequest{Scenario: "push", CountersTo: 42}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := call[SuggestScenarioRequest, SuggestResponse](t, url, SuggestScenarioProcedure, tt.req)
			require.Error(t, err)
			assert.Equal(t, connect.CodeInvalidArgument, connect.CodeOf(err))
		})
	}
}

func TestAdvisor_AnalyzeHero(t *testing.T) {
	url := newTestServer(t, &stubHeroSource{entries: testEntries()})

	res, err := call[AnalyzeHeroRequest, AnalyzeHeroResponse](t, url, AnalyzeHeroProcedure, &AnalyzeHeroRequest{HeroID: 1})
	require.NoError(t, err)
	assert.Equal(t, "Anti-Mage", res.Suggestion.Hero.LocalizedName)
	assert.NotEmpty(t, res.Suggestion.ItemBuilds)

	_, err = call[AnalyzeHeroRequest, AnalyzeHeroResponse](t, url, AnalyzeHeroProcedure, &AnalyzeHeroRequest{HeroID: 99})
	assert.Equal(t, connect.CodeInvalidArgument, connect.CodeOf(err))

	_, err = call[AnalyzeHeroRequest, AnalyzeHeroResponse](t, url, AnalyzeHeroProcedure, &AnalyzeHeroRequest{})
	assert.Equal(t, connect.CodeInvalidArgument, connect.CodeOf(err))
}

func TestAdvisor_AssignLanes(t *testing.T) {
	url := newTestServer(t, &stubHeroSource{entries: testEntries()})

	res, err := call[AssignLanesRequest, AssignLanesResponse](t, url, AssignLanesProcedure, &AssignLanesRequest{HeroIDs: []int{5, 1}})
	require.NoError(t, err)
	require.Len(t, res.Assignments, 2)
	assert.Equal(t, 5, res.Assignments[0].Position)
	assert.Equal(t, 5, res.Assignments[0].HeroID)
	assert.InDelta(t, 0.9, res.Assignments[0].Confidence, 1e-9)
	assert.NotEmpty(t, res.Assignments[0].Reasons)
	assert.Equal(t, 1, res.Assignments[1].Position)

	_, err = call[AssignLanesRequest, AssignLanesResponse](t, url, AssignLanesProcedure, &AssignLanesRequest{})
	assert.Equal(t, connect.CodeInvalidArgument, connect.CodeOf(err))
}

func TestAdvisor_Heroes(t *testing.T) {
	url := newTestServer(t, &stubHeroSource{entries: testEntries()})

	synced, err := call[SyncHeroesRequest, SyncHeroesResponse](t, url, SyncHeroesProcedure, &SyncHeroesRequest{})
	require.NoError(t, err)
	assert.Equal(t, 3, synced.Synced)

	list, err := call[emptypb.Empty, ListHeroesResponse](t, url, ListHeroesProcedure, &emptypb.Empty{})
	require.NoError(t, err)
	require.Len(t, list.Heroes, 3)
	assert.Equal(t, "Anti-Mage", list.Heroes[0].LocalizedName)

	stats := list.Heroes[0].Stats
	require.NotNil(t, stats)
	assert.InDelta(t, 52.0, stats.WinRate, 1e-9)
	assert.InDelta(t, 1.0, stats.PickShare, 1e-9)
	assert.Zero(t, stats.ProWinRate)
	assert.Zero(t, stats.TurboWinRate)
	assert.Len(t, stats.BracketWinRates, domain.NumBrackets)
}

func TestToHeroStats(t *testing.T) {
	s := domain.HeroStats{HeroID: 1, PubPick: 200, PubWin: 100, ProPick: 10, ProWin: 7, TurboPick: 40, TurboWin: 22}
	s.BracketPick[0], s.BracketWin[0] = 50, 30
	s.BracketPick[7], s.BracketWin[7] = 40, 18
	reg := draft.NewRegistry(
		[]domain.Hero{{ID: 1, LocalizedName: "Anti-Mage"}, {ID: 2, LocalizedName: "Axe"}},
		[]domain.HeroStats{s, {HeroID: 2, PubPick: 400, PubWin: 200}},
	)

	got := toHeroStats(reg, 1)
	require.NotNil(t, got)
	assert.InDelta(t, 50.0, got.WinRate, 1e-9)
	assert.InDelta(t, 70.0, got.ProWinRate, 1e-9)
	assert.InDelta(t, 55.0, got.TurboWinRate, 1e-9)
	assert.InDelta(t, 0.5, got.PickShare, 1e-9)
	require.Len(t, got.BracketWinRates, domain.NumBrackets)
	assert.InDelta(t, 60.0, got.BracketWinRates[0], 1e-9)
	assert.InDelta(t, 45.0, got.BracketWinRates[7], 1e-9)
	assert.Zero(t, got.BracketWinRates[3])

	assert.Nil(t, toHeroStats(reg, 99))
}

func TestAdvisor_Unavailable(t *testing.T) {
	url := newTestServer(t, &stubHeroSource{err: errors.New("opendota down")})

	_, err := call[emptypb.Empty, ListHeroesResponse](t, url, ListHeroesProcedure, &emptypb.Empty{})
	assert.Equal(t, connect.CodeUnavailable, connect.CodeOf(err))

	_, err = call[SuggestRequest, SuggestResponse](t, url, SuggestProcedure, &SuggestRequest{})
	assert.Equal(t, connect.CodeUnavailable, connect.CodeOf(err))

	_, err = call[SyncHeroesRequest, SyncHeroesResponse](t, url, SyncHeroesProcedure, &SyncHeroesRequest{})
	assert.Equal(t, connect.CodeUnavailable, connect.CodeOf(err))
}

func TestToConnectError(t *testing.T) {
	tests := []struct {
		err  error
		want connect.Code
	}{
		{domain.ErrTeamFull, connect.CodeInvalidArgument},
		{fmt.Errorf("wrapped: %w", domain.ErrSlotOccupied), connect.CodeInvalidArgument},
		{service.ErrUnknownHero, connect.CodeInvalidArgument},
		{service.ErrNoHeroData, connect.CodeUnavailable},
		{context.DeadlineExceeded, connect.CodeDeadlineExceeded},
		{context.Canceled, connect.CodeCanceled},
		{errors.New("boom"), connect.CodeInternal},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, toConnectError(tt.err).Code(), tt.err.Error())
	}
}
