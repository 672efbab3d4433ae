package services

import (
	"context"
	"io"
	"log/slog"
	"slices"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Dosada05/tournament-predictor/models"
	"github.com/Dosada05/tournament-predictor/repositories"
	"github.com/Dosada05/tournament-predictor/storage"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func goals(n int) models.GoalCount { return models.MustGoalCount(n) }

// group builds a four-team group where the teams finish in listed order.
// With open set, the game between the last two (base+6) is unplayed.
func group(t *testing.T, id rune, teams []models.TeamID, open bool) models.Group {
	t.Helper()
	require.Len(t, teams, 4)
	base := models.GameID(int(id-'A'+1) * 100)
	played := []models.PlayedGame{
		{ID: base + 1, Home: teams[0], Away: teams[1], HomeGoals: goals(1), AwayGoals: goals(0)},
		{ID: base + 2, Home: teams[0], Away: teams[2], HomeGoals: goals(1), AwayGoals: goals(0)},
		{ID: base + 3, Home: teams[0], Away: teams[3], HomeGoals: goals(1), AwayGoals: goals(0)},
		{ID: base + 4, Home: teams[1], Away: teams[2], HomeGoals: goals(1), AwayGoals: goals(0)},
		{ID: base + 5, Home: teams[1], Away: teams[3], HomeGoals: goals(1), AwayGoals: goals(0)},
	}
	last := models.UnplayedGame{ID: base + 6, Home: teams[2], Away: teams[3]}
	var unplayed []models.UnplayedGame
	if open {
		unplayed = append(unplayed, last)
	} else {
		played = append(played, last.Play(goals(1), goals(0)))
	}
	g, err := models.NewGroup(models.MustGroupID(id), played, unplayed)
	require.NoError(t, err)
	return g
}

func teamsOf(r rune) []models.TeamID {
	base := models.TeamID(int(r-'A'+1) * 10)
	return []models.TeamID{base + 1, base + 2, base + 3, base + 4}
}

func teamList(ids ...[]models.TeamID) []models.Team {
	var out []models.Team
	for _, four := range ids {
		for _, id := range four {
			out = append(out, models.Team{ID: id, Name: "Team " + id.String()})
		}
	}
	return out
}

type fakeGameRepo struct {
	mu      sync.Mutex
	groups  []models.Group
	nextID  models.GameID
	created map[models.GroupID][]models.UnplayedGame
}

func (r *fakeGameRepo) ListGroups(ctx context.Context) ([]models.Group, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.groups), nil
}

func (r *fakeGameRepo) NextGameID(ctx context.Context) (models.GameID, error) {
	return r.nextID, nil
}

func (r *fakeGameRepo) CreateGroupGames(ctx context.Context, id models.GroupID, games []models.UnplayedGame) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.created == nil {
		r.created = make(map[models.GroupID][]models.UnplayedGame)
	}
	r.created[id] = games
	g, err := models.NewGroup(id, nil, games)
	if err != nil {
		return err
	}
	r.groups = append(r.groups, g)
	return nil
}

func (r *fakeGameRepo) update(gameID models.GameID, fn func(models.Group) (models.Group, error)) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	idx, ok := groupOf(r.groups, gameID)
	if !ok {
		return repositories.ErrGameNotFound
	}
	next, err := fn(r.groups[idx])
	if err != nil {
		return err
	}
	r.groups[idx] = next
	return nil
}

func (r *fakeGameRepo) SetResult(ctx context.Context, exec repositories.SQLExecutor, game models.PlayedGame) error {
	return r.update(game.ID, func(g models.Group) (models.Group, error) {
		var err error
		if isPlayed(g, game.ID) {
			if g, err = g.WithoutResult(game.ID); err != nil {
				return models.Group{}, err
			}
		}
		if g, err = g.WithResult(game.ID, game.HomeGoals, game.AwayGoals); err != nil {
			return models.Group{}, err
		}
		return g.WithCards(game.ID, game.HomeCards, game.AwayCards)
	})
}

func (r *fakeGameRepo) ClearResult(ctx context.Context, exec repositories.SQLExecutor, gameID models.GameID) error {
	return r.update(gameID, func(g models.Group) (models.Group, error) {
		return g.WithoutResult(gameID)
	})
}

type fakePlayoffRepo struct {
	mu    sync.Mutex
	games []models.PlayoffGame
}

func (r *fakePlayoffRepo) ListGames(ctx context.Context) ([]models.PlayoffGame, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.games), nil
}

func (r *fakePlayoffRepo) CreatePlayoff(ctx context.Context, games []models.PlayoffGame) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.games) > 0 {
		return repositories.ErrPlayoffExists
	}
	r.games = slices.Clone(games)
	return nil
}

func (r *fakePlayoffRepo) setScore(gameID models.GameID, score *models.PlayoffScore) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.games {
		if r.games[i].ID == gameID {
			r.games[i].Score = score
			return nil
		}
	}
	return repositories.ErrPlayoffGameNotFound
}

func (r *fakePlayoffRepo) SetResult(ctx context.Context, exec repositories.SQLExecutor, gameID models.GameID, home, away models.TeamID, score models.PlayoffScore) error {
	return r.setScore(gameID, &score)
}

func (r *fakePlayoffRepo) ClearResult(ctx context.Context, exec repositories.SQLExecutor, gameID models.GameID) error {
	return r.setScore(gameID, nil)
}

type fakeTeamRepo struct {
	teams []models.Team
}

func (r *fakeTeamRepo) GetByID(ctx context.Context, id models.TeamID) (*models.Team, error) {
	for _, t := range r.teams {
		if t.ID == id {
			return &t, nil
		}
	}
	return nil, repositories.ErrTeamNotFound
}

func (r *fakeTeamRepo) ListAll(ctx context.Context) ([]models.Team, error) {
	return slices.Clone(r.teams), nil
}

type fakeFormatRepo struct {
	mu      sync.Mutex
	formats []models.Format
	active  int
}

func (r *fakeFormatRepo) Create(ctx context.Context, f *models.Format) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.formats {
		if existing.Name == f.Name {
			return repositories.ErrFormatNameConflict
		}
	}
	f.ID = len(r.formats) + 1
	r.formats = append(r.formats, *f)
	return nil
}

func (r *fakeFormatRepo) GetByID(ctx context.Context, id int) (*models.Format, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, f := range r.formats {
		if f.ID == id {
			return &f, nil
		}
	}
	return nil, repositories.ErrFormatNotFound
}

func (r *fakeFormatRepo) GetActive(ctx context.Context) (*models.Format, error) {
	if r.active == 0 {
		return nil, repositories.ErrFormatNotFound
	}
	return r.GetByID(ctx, r.active)
}

func (r *fakeFormatRepo) GetAll(ctx context.Context) ([]models.Format, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.formats), nil
}

func (r *fakeFormatRepo) Activate(ctx context.Context, id int) error {
	if _, err := r.GetByID(ctx, id); err != nil {
		return err
	}
	r.active = id
	return nil
}

type fakePredictionRepo struct {
	mu          sync.Mutex
	players     []models.Player
	predictions []models.Prediction
}

func (r *fakePredictionRepo) Upsert(ctx context.Context, p models.Prediction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, existing := range r.predictions {
		if existing.PlayerID == p.PlayerID && existing.GameID == p.GameID {
			r.predictions[i] = p
			return nil
		}
	}
	r.predictions = append(r.predictions, p)
	return nil
}

func (r *fakePredictionRepo) ListAll(ctx context.Context) ([]models.Prediction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.predictions), nil
}

func (r *fakePredictionRepo) ListPlayers(ctx context.Context) ([]models.Player, error) {
	return slices.Clone(r.players), nil
}

func (r *fakePredictionRepo) GetPlayer(ctx context.Context, id int) (*models.Player, error) {
	for _, p := range r.players {
		if p.ID == id {
			return &p, nil
		}
	}
	return nil, repositories.ErrPlayerNotFound
}

type fakeHub struct {
	mu     sync.Mutex
	events []string
}

func (h *fakeHub) Broadcast(eventType string, payload interface{}) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.events = append(h.events, eventType)
}

func (h *fakeHub) Events() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return slices.Clone(h.events)
}

type fakeUploader struct {
	mu   sync.Mutex
	keys []string
}

func (u *fakeUploader) Upload(ctx context.Context, key string, contentType string, reader io.Reader) (*storage.UploadResult, error) {
	if _, err := io.ReadAll(reader); err != nil {
		return nil, err
	}
	u.mu.Lock()
	defer u.mu.Unlock()
	u.keys = append(u.keys, key)
	return &storage.UploadResult{Key: key, Location: "https://cdn.example.com/" + key}, nil
}

func (u *fakeUploader) GetPublicURL(key string) string { return "https://cdn.example.com/" + key }

func (u *fakeUploader) Keys() []string {
	u.mu.Lock()
	defer u.mu.Unlock()
	return slices.Clone(u.keys)
}

type fakeRefresher struct {
	calls int
}

func (f *fakeRefresher) RefreshLeaderboard(ctx context.Context) error {
	f.calls++
	return nil
}
