package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"dota-draft-advisor/internal/config"
	"dota-draft-advisor/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const heroStatsBody = `[
  {
    "id": 1,
    "name": "npc_dota_hero_antimage",
    "localized_name": "Anti-Mage",
    "primary_attr": "agi",
    "attack_type": "Melee",
    "roles": ["Carry", "Escape", "Nuker"],
    "img": "/apps/dota2/images/dota_react/heroes/antimage.png?",
    "icon": "/apps/dota2/images/dota_react/heroes/icons/antimage.png?",
    "1_pick": 100, "1_win": 48,
    "2_pick": 200, "2_win": 99,
    "8_pick": 50, "8_win": 30,
    "pro_pick": 12, "pro_win": 7, "pro_ban": 40,
    "pub_pick": 1000, "pub_win": 520,
    "pub_pick_trend": [140, 150],
    "pub_win_trend": [70, 80],
    "turbo_picks": 300, "turbo_wins": 160,
    "turbo_picks_trend": [40],
    "turbo_wins_trend": [21]
  }
]`

const matchupsBody = `[
  {"hero_id": 5, "games_played": 120, "wins": 50},
  {"hero_id": 2, "games_played": 80, "wins": 47}
]`

func newTestClient(t *testing.T, h http.HandlerFunc) *OpenDotaClient {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewOpenDotaClient(&config.Config{OpenDotaBaseURL: srv.URL + "/", OpenDotaRPS: 100})
}

func TestGetHeroStats(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/heroStats", r.URL.Path)
		assert.Empty(t, r.URL.Query().Get("api_key"))
		w.Header().Set("X-Rate-Limit-Remaining-Minute", "59")
		w.Header().Set("X-Rate-Limit-Remaining-Day", "1999")
		_, _ = w.Write([]byte(heroStatsBody))
	})

	entries, err := c.GetHeroStats(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 1)

	hero := entries[0].Hero()
	assert.Equal(t, 1, hero.ID)
	assert.Equal(t, "Anti-Mage", hero.LocalizedName)
	assert.Equal(t, domain.AttrAgility, hero.PrimaryAttr)
	assert.Equal(t, []string{"Carry", "Escape", "Nuker"}, hero.Roles)

	stats := entries[0].Stats()
	assert.Equal(t, 1, stats.HeroID)
	assert.Equal(t, [domain.NumBrackets]int{100, 200, 0, 0, 0, 0, 0, 50}, stats.BracketPick)
	assert.Equal(t, [domain.NumBrackets]int{48, 99, 0, 0, 0, 0, 0, 30}, stats.BracketWin)
	assert.Equal(t, 1000, stats.PubPick)
	assert.Equal(t, 520, stats.PubWin)
	assert.Equal(t, []int{140, 150}, stats.PubPickTrend)
	assert.Equal(t, 40, stats.ProBan)
	assert.Equal(t, 300, stats.TurboPick)
	assert.Equal(t, 160, stats.TurboWin)
	assert.Equal(t, []int{21}, stats.TurboWinTrend)

	rl := c.GetRateLimitInfo()
	assert.Equal(t, 59, rl.RemainingMinute)
	assert.Equal(t, 1999, rl.RemainingDay)
}

func TestGetMatchups(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/heroes/1/matchups", r.URL.Path)
		_, _ = w.Write([]byte(matchupsBody))
	})

	entries, err := c.GetMatchups(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	rec := entries[0].Record(1)
	assert.Equal(t, domain.MatchupRecord{HeroID: 1, OpponentID: 5, GamesPlayed: 120, Wins: 50}, rec)
}

func TestAPIKeyQuery(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "s3cret key", r.URL.Query().Get("api_key"))
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := NewOpenDotaClient(&config.Config{OpenDotaBaseURL: srv.URL, OpenDotaAPIKey: "s3cret key", OpenDotaRPS: 100})
	entries, err := c.GetMatchups(context.Background(), 7)
	require.NoError(t, err)
	assert.Empty(t, entries)
	// untouched headers keep the unknown marker
	assert.Equal(t, -1, c.GetRateLimitInfo().RemainingMinute)
}

func TestErrorStatuses(t *testing.T) {
	tests := []struct {
		name   string
		status int
		check  func(t *testing.T, err error)
	}{
		{
			name:   "not found",
			status: http.StatusNotFound,
			check: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, ErrNotFound)
			},
		},
		{
			name:   "server error",
			status: http.StatusInternalServerError,
			check: func(t *testing.T, err error) {
				var se *StatusError
				require.ErrorAs(t, err, &se)
				assert.Equal(t, http.StatusInternalServerError, se.StatusCode)
				assert.Contains(t, se.URL, "/api/heroes/3/matchups")
			},
		},
		{
			name:   "rate limited",
			status: http.StatusTooManyRequests,
			check: func(t *testing.T, err error) {
				var se *StatusError
				require.ErrorAs(t, err, &se)
				assert.Equal(t, http.StatusTooManyRequests, se.StatusCode)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			})
			_, err := c.GetMatchups(context.Background(), 3)
			require.Error(t, err)
			tt.check(t, err)
		})
	}
}

func TestMalformedBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"error":`))
	})
	_, err := c.GetHeroStats(context.Background())
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrNotFound))
}

func TestCanceledContext(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	})
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	cancel()
	_, err := c.GetHeroStats(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
