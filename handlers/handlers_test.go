package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dosada05/tournament-predictor/brackets"
	"github.com/Dosada05/tournament-predictor/middleware"
	"github.com/Dosada05/tournament-predictor/models"
	"github.com/Dosada05/tournament-predictor/scoring"
	"github.com/Dosada05/tournament-predictor/services"
	"github.com/Dosada05/tournament-predictor/standings"
)

type fakeTournamentService struct {
	services.TournamentService

	tables        map[models.GroupID]standings.Table
	bracketErr    error
	recordErr     error
	gotGame       models.GameID
	gotGroupIn    services.GroupResultInput
	gotPlayoffIn  services.PlayoffResultInput
	gotScheduleIn services.ScheduleGroupInput
}

func (f *fakeTournamentService) GroupTables(ctx context.Context) (map[models.GroupID]standings.Table, error) {
	return f.tables, nil
}

func (f *fakeTournamentService) GroupTable(ctx context.Context, id models.GroupID) (standings.Table, error) {
	t, ok := f.tables[id]
	if !ok {
		return standings.Table{}, fmt.Errorf("%w: %s", services.ErrGroupNotFound, id)
	}
	return t, nil
}

func (f *fakeTournamentService) Bracket(ctx context.Context) (*services.BracketView, error) {
	if f.bracketErr != nil {
		return nil, f.bracketErr
	}
	champion := models.TeamID(11)
	return &services.BracketView{Final: 3, Champion: &champion}, nil
}

func (f *fakeTournamentService) RecordGroupResult(ctx context.Context, gameID models.GameID, input services.GroupResultInput) (*standings.Table, error) {
	f.gotGame, f.gotGroupIn = gameID, input
	if f.recordErr != nil {
		return nil, f.recordErr
	}
	t := f.tables[models.MustGroupID('A')]
	return &t, nil
}

func (f *fakeTournamentService) RecordPlayoffResult(ctx context.Context, gameID models.GameID, input services.PlayoffResultInput) (*services.BracketView, error) {
	f.gotGame, f.gotPlayoffIn = gameID, input
	if f.recordErr != nil {
		return nil, f.recordErr
	}
	return &services.BracketView{Final: 3}, nil
}

func (f *fakeTournamentService) ScheduleGroup(ctx context.Context, groupID models.GroupID, input services.ScheduleGroupInput) (*models.Group, error) {
	f.gotScheduleIn = input
	g, err := models.NewGroup(groupID, nil, nil)
	return &g, err
}

type fakePredictionService struct {
	services.PredictionService

	gotPlayer int
	gotGame   models.GameID
	err       error
}

func (f *fakePredictionService) SubmitPrediction(ctx context.Context, playerID int, gameID models.GameID, home, away int) (*models.Prediction, error) {
	f.gotPlayer, f.gotGame = playerID, gameID
	if f.err != nil {
		return nil, f.err
	}
	return &models.Prediction{PlayerID: playerID, GameID: gameID, HomeGoals: models.MustGoalCount(home), AwayGoals: models.MustGoalCount(away)}, nil
}

func (f *fakePredictionService) Leaderboard(ctx context.Context) ([]scoring.LeaderboardEntry, error) {
	return []scoring.LeaderboardEntry{{Rank: 1, PlayerID: 1, Name: "alice", Score: scoring.NewPredScore(5)}}, nil
}

func newRouter(ts services.TournamentService, ps services.PredictionService) chi.Router {
	gh, bh, ph := NewGroupHandler(ts), NewBracketHandler(ts), NewPredictionHandler(ps)
	r := chi.NewRouter()
	r.Get("/groups", gh.ListTables)
	r.Get("/groups/{groupID}", gh.GetTable)
	r.Post("/groups/{groupID}/fixtures", gh.ScheduleGroup)
	r.Put("/games/{gameID}/result", gh.RecordResult)
	r.Get("/bracket", bh.GetBracket)
	r.Put("/playoff/{gameID}/result", bh.RecordResult)
	r.Put("/predictions/{gameID}", ph.SubmitPrediction)
	r.Get("/leaderboard", ph.Leaderboard)
	return r
}

func do(t *testing.T, h http.Handler, req *http.Request) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), rec.Body.String())
	return rec, body
}

func tablesFixture() map[models.GroupID]standings.Table {
	return map[models.GroupID]standings.Table{
		models.MustGroupID('B'): {Group: models.MustGroupID('B'), Standings: []standings.Standing{{Team: 21}}},
		models.MustGroupID('A'): {Group: models.MustGroupID('A'), Standings: []standings.Standing{{Team: 11}}, Complete: true},
	}
}

func TestListTablesOrdersGroups(t *testing.T) {
	router := newRouter(&fakeTournamentService{tables: tablesFixture()}, nil)

	rec, body := do(t, router, httptest.NewRequest(http.MethodGet, "/groups", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	groups := body["groups"].([]interface{})
	require.Len(t, groups, 2)
	assert.Equal(t, "A", groups[0].(map[string]interface{})["group"])
	assert.Equal(t, "B", groups[1].(map[string]interface{})["group"])
}

func TestGetTable(t *testing.T) {
	router := newRouter(&fakeTournamentService{tables: tablesFixture()}, nil)

	rec, _ := do(t, router, httptest.NewRequest(http.MethodGet, "/groups/a", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, _ = do(t, router, httptest.NewRequest(http.MethodGet, "/groups/C", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, _ = do(t, router, httptest.NewRequest(http.MethodGet, "/groups/AB", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRecordGroupResult(t *testing.T) {
	ts := &fakeTournamentService{tables: tablesFixture()}
	router := newRouter(ts, nil)

	rec, body := do(t, router, httptest.NewRequest(http.MethodPut, "/games/101/result", strings.NewReader(`{"home_goals": 2, "away_goals": 1}`)))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, body, "group")
	assert.Equal(t, models.GameID(101), ts.gotGame)
	assert.Equal(t, 2, ts.gotGroupIn.HomeGoals)
	assert.Equal(t, 1, ts.gotGroupIn.AwayGoals)
	assert.Nil(t, ts.gotGroupIn.HomeCards)

	rec, _ = do(t, router, httptest.NewRequest(http.MethodPut, "/games/101/result",
		strings.NewReader(`{"home_goals": 0, "away_goals": 0, "away_cards": {"yellow": 2, "direct_red": 1}}`)))
	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, ts.gotGroupIn.AwayCards)
	assert.Equal(t, models.Cards{Yellow: 2, DirectRed: 1}, *ts.gotGroupIn.AwayCards)
	assert.Nil(t, ts.gotGroupIn.HomeCards)
}

func TestRequestValidation(t *testing.T) {
	router := newRouter(&fakeTournamentService{tables: tablesFixture()}, nil)
	tests := []struct {
		name string
		path string
		body string
	}{
		{"unknown field", "/games/101/result", `{"home": 2}`},
		{"bad json", "/games/101/result", `{"home_goals": `},
		{"empty body", "/games/101/result", ``},
		{"bad id", "/games/abc/result", `{"home_goals": 2}`},
		{"negative id", "/games/-1/result", `{"home_goals": 2}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, body := do(t, router, httptest.NewRequest(http.MethodPut, tt.path, strings.NewReader(tt.body)))
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, body, "error")
		})
	}
}

func TestServiceErrorMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"no winner", fmt.Errorf("game 1: %w", models.ErrNoWinner), http.StatusUnprocessableEntity},
		{"validation", fmt.Errorf("%w: home goals", services.ErrValidationFailed), http.StatusUnprocessableEntity},
		{"not found", services.ErrGameNotFound, http.StatusNotFound},
		{"teams unknown", services.ErrTeamsNotDetermined, http.StatusConflict},
		{"downstream played", services.ErrDependentGamePlayed, http.StatusConflict},
		{"inconsistent bracket", fmt.Errorf("%w: %w", services.ErrInconsistentBracket, brackets.ErrCycle), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newRouter(&fakeTournamentService{recordErr: tt.err}, nil)
			req := httptest.NewRequest(http.MethodPut, "/playoff/1/result", strings.NewReader(`{"home_goals": 1, "away_goals": 1}`))

			rec, _ := do(t, router, req)

			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestRecordPlayoffResultPassesPenalties(t *testing.T) {
	ts := &fakeTournamentService{}
	router := newRouter(ts, nil)
	req := httptest.NewRequest(http.MethodPut, "/playoff/5/result",
		strings.NewReader(`{"home_goals": 1, "away_goals": 1, "home_penalties": 5, "away_penalties": 4}`))

	rec, body := do(t, router, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 3, body["final_game_id"])
	require.NotNil(t, ts.gotPlayoffIn.HomePenalties)
	assert.Equal(t, 5, *ts.gotPlayoffIn.HomePenalties)
	assert.Equal(t, 4, *ts.gotPlayoffIn.AwayPenalties)
}

func TestGetBracket(t *testing.T) {
	router := newRouter(&fakeTournamentService{}, nil)
	rec, body := do(t, router, httptest.NewRequest(http.MethodGet, "/bracket", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 11, body["champion"])

	router = newRouter(&fakeTournamentService{bracketErr: services.ErrNoPlayoff}, nil)
	rec, _ = do(t, router, httptest.NewRequest(http.MethodGet, "/bracket", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestScheduleGroup(t *testing.T) {
	ts := &fakeTournamentService{}
	router := newRouter(ts, nil)
	req := httptest.NewRequest(http.MethodPost, "/groups/C/fixtures", strings.NewReader(`{"team_ids": [31, 32, 33], "legs": 2}`))

	rec, _ := do(t, router, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, []models.TeamID{31, 32, 33}, ts.gotScheduleIn.TeamIDs)
	assert.Equal(t, 2, ts.gotScheduleIn.Legs)
}

func TestSubmitPredictionUsesTokenPlayer(t *testing.T) {
	ps := &fakePredictionService{}
	router := newRouter(nil, ps)

	req := httptest.NewRequest(http.MethodPut, "/predictions/106", strings.NewReader(`{"home_goals": 2, "away_goals": 2}`))
	req = req.WithContext(middleware.WithClaims(req.Context(), jwt.MapClaims{"user_id": float64(9), "role": "player"}))
	rec, body := do(t, router, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 9, ps.gotPlayer)
	assert.Equal(t, models.GameID(106), ps.gotGame)
	assert.Contains(t, body, "prediction")

	req = httptest.NewRequest(http.MethodPut, "/predictions/106", strings.NewReader(`{"home_goals": 2, "away_goals": 2}`))
	rec, _ = do(t, router, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	ps.err = services.ErrPredictionClosed
	req = httptest.NewRequest(http.MethodPut, "/predictions/101", strings.NewReader(`{"home_goals": 1, "away_goals": 0}`))
	req = req.WithContext(middleware.WithClaims(req.Context(), jwt.MapClaims{"user_id": float64(9), "role": "player"}))
	rec, _ = do(t, router, req)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestLeaderboard(t *testing.T) {
	router := newRouter(nil, &fakePredictionService{})

	rec, body := do(t, router, httptest.NewRequest(http.MethodGet, "/leaderboard", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	entries := body["leaderboard"].([]interface{})
	require.Len(t, entries, 1)
	assert.EqualValues(t, 5, entries[0].(map[string]interface{})["score"])
}
