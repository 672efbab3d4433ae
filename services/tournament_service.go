package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/Dosada05/tournament-predictor/brackets"
	"github.com/Dosada05/tournament-predictor/models"
	"github.com/Dosada05/tournament-predictor/repositories"
	"github.com/Dosada05/tournament-predictor/standings"
	"github.com/Dosada05/tournament-predictor/storage"
	"golang.org/x/sync/errgroup"
)

type TournamentService interface {
	GroupTables(ctx context.Context) (map[models.GroupID]standings.Table, error)
	GroupTable(ctx context.Context, id models.GroupID) (standings.Table, error)
	Bracket(ctx context.Context) (*BracketView, error)
	RecordGroupResult(ctx context.Context, gameID models.GameID, input GroupResultInput) (*standings.Table, error)
	ClearGroupResult(ctx context.Context, gameID models.GameID) (*standings.Table, error)
	RecordPlayoffResult(ctx context.Context, gameID models.GameID, input PlayoffResultInput) (*BracketView, error)
	ClearPlayoffResult(ctx context.Context, gameID models.GameID) (*BracketView, error)
	ScheduleGroup(ctx context.Context, groupID models.GroupID, input ScheduleGroupInput) (*models.Group, error)
	CreatePlayoff(ctx context.Context, input CreatePlayoffInput) (*BracketView, error)
}

// GroupResultInput is a group game score. Cards are optional and feed the
// fair play criterion; a side left out has no cards.
type GroupResultInput struct {
	HomeGoals int           `json:"home_goals"`
	AwayGoals int           `json:"away_goals"`
	HomeCards *models.Cards `json:"home_cards,omitempty"`
	AwayCards *models.Cards `json:"away_cards,omitempty"`
}

type PlayoffResultInput struct {
	HomeGoals     int  `json:"home_goals"`
	AwayGoals     int  `json:"away_goals"`
	HomePenalties *int `json:"home_penalties,omitempty"`
	AwayPenalties *int `json:"away_penalties,omitempty"`
}

type ScheduleGroupInput struct {
	TeamIDs []models.TeamID `json:"team_ids"`
	Legs    int             `json:"legs,omitempty"` // 0 takes number_of_rounds from the active format
}

// CreatePlayoffInput selects the bracket. ThirdPlacePlayoff asks for a
// game between the losing semi-finalists; when the bracket cannot have one
// (a semi-finalist arrives through a bye, or a fixed template without
// it) creation fails with ErrValidationFailed.
type CreatePlayoffInput struct {
	Template          string `json:"template,omitempty"` // empty or "cross_groups" generates from the groups
	ThirdPlacePlayoff bool   `json:"third_place_playoff,omitempty"`
}

// TemplateCrossGroups generates a single-elimination playoff from the
// scheduled groups instead of using a fixed template.
const TemplateCrossGroups = "cross_groups"

// RoundView is one round of the playoff. Games that do not lead to the
// final are collected in a classification round with depth -1.
type RoundView struct {
	Depth int                   `json:"depth"`
	Name  string                `json:"name"`
	Games []brackets.Resolution `json:"games"`
}

type BracketView struct {
	Final    models.GameID         `json:"final_game_id"`
	Games    []brackets.Resolution `json:"games"`
	Rounds   []RoundView           `json:"rounds"`
	Champion *models.TeamID        `json:"champion,omitempty"`
	RunnerUp *models.TeamID        `json:"runner_up,omitempty"`
}

type TournamentOptions struct {
	DefaultPreset            string
	ProvisionalGroupOutcomes bool
}

type tournamentService struct {
	gameRepo    repositories.GameRepository
	playoffRepo repositories.PlayoffRepository
	teamRepo    repositories.TeamRepository
	formatRepo  repositories.FormatRepository
	generator   brackets.BracketGenerator
	hub         Broadcaster
	leaderboard LeaderboardRefresher
	publisher   snapshotPublisher
	opts        TournamentOptions
	logger      *slog.Logger
}

func NewTournamentService(
	gameRepo repositories.GameRepository,
	playoffRepo repositories.PlayoffRepository,
	teamRepo repositories.TeamRepository,
	formatRepo repositories.FormatRepository,
	hub Broadcaster,
	leaderboard LeaderboardRefresher,
	uploader storage.FileUploader,
	opts TournamentOptions,
	logger *slog.Logger,
) TournamentService {
	return &tournamentService{
		gameRepo:    gameRepo,
		playoffRepo: playoffRepo,
		teamRepo:    teamRepo,
		formatRepo:  formatRepo,
		generator:   brackets.NewSingleEliminationGenerator(),
		hub:         hub,
		leaderboard: leaderboard,
		publisher:   snapshotPublisher{uploader: uploader, logger: logger},
		opts:        opts,
		logger:      logger,
	}
}

// tournamentState is an in-memory snapshot of everything the engine needs.
type tournamentState struct {
	groups  []models.Group
	teams   []models.Team
	format  *models.Format
	playoff []models.PlayoffGame
}

func (s *tournamentService) load(ctx context.Context) (*tournamentState, error) {
	st := &tournamentState{}
	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		groups, err := s.gameRepo.ListGroups(gCtx)
		if err != nil {
			return fmt.Errorf("failed to load groups: %w", err)
		}
		st.groups = groups
		return nil
	})
	g.Go(func() error {
		teams, err := s.teamRepo.ListAll(gCtx)
		if err != nil {
			return fmt.Errorf("failed to load teams: %w", err)
		}
		st.teams = teams
		return nil
	})
	g.Go(func() error {
		format, err := s.formatRepo.GetActive(gCtx)
		if err != nil {
			if errors.Is(err, repositories.ErrFormatNotFound) {
				return nil
			}
			return fmt.Errorf("failed to load active format: %w", err)
		}
		st.format = format
		return nil
	})
	g.Go(func() error {
		games, err := s.playoffRepo.ListGames(gCtx)
		if err != nil {
			return fmt.Errorf("failed to load playoff games: %w", err)
		}
		st.playoff = games
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return st, nil
}

func (s *tournamentService) policy(st *tournamentState) (standings.Policy, error) {
	ranking := models.Ranking(st.teams)
	var (
		policy standings.Policy
		err    error
	)
	if st.format != nil {
		policy, err = standings.PolicyFromSettings(st.format.ParsedSettings, ranking)
	} else {
		policy, err = standings.Preset(s.opts.DefaultPreset, ranking)
	}
	if err != nil {
		return standings.Policy{}, fmt.Errorf("invalid tie-break configuration: %w", err)
	}
	return policy, nil
}

// tables computes every group table concurrently.
func tables(ctx context.Context, groups []models.Group, policy standings.Policy) (map[models.GroupID]standings.Table, error) {
	computed := make([]standings.Table, len(groups))
	g, gCtx := errgroup.WithContext(ctx)
	for i, group := range groups {
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			computed[i] = standings.ComputeTable(group, policy)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	out := make(map[models.GroupID]standings.Table, len(computed))
	for _, t := range computed {
		out[t.Group] = t
	}
	return out, nil
}

func (s *tournamentService) evaluate(ctx context.Context) (*tournamentState, standings.Policy, map[models.GroupID]standings.Table, error) {
	st, err := s.load(ctx)
	if err != nil {
		return nil, standings.Policy{}, nil, err
	}
	policy, err := s.policy(st)
	if err != nil {
		return nil, standings.Policy{}, nil, err
	}
	tbl, err := tables(ctx, st.groups, policy)
	if err != nil {
		return nil, standings.Policy{}, nil, err
	}
	return st, policy, tbl, nil
}

func (s *tournamentService) resolver(policy standings.Policy) *brackets.Resolver {
	if s.opts.ProvisionalGroupOutcomes {
		return brackets.NewResolver(policy, brackets.WithProvisionalGroupOutcomes())
	}
	return brackets.NewResolver(policy)
}

func (s *tournamentService) resolve(
	playoff []models.PlayoffGame,
	policy standings.Policy,
	tbl map[models.GroupID]standings.Table,
) (*brackets.Structure, map[models.GameID]brackets.Resolution, error) {
	if len(playoff) == 0 {
		return nil, nil, ErrNoPlayoff
	}
	structure, err := brackets.NewStructure(playoff)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrInconsistentBracket, err)
	}
	res, err := s.resolver(policy).Resolve(structure, tbl, models.PlayoffResults(playoff))
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrInconsistentBracket, err)
	}
	return structure, res, nil
}

func newBracketView(structure *brackets.Structure, res map[models.GameID]brackets.Resolution) *BracketView {
	view := &BracketView{Final: structure.Final()}
	for _, id := range structure.Order() {
		view.Games = append(view.Games, res[id])
	}
	for depth := structure.MaxDepth(); depth >= 0; depth-- {
		round := RoundView{Depth: depth, Name: roundName(depth)}
		for _, id := range structure.GamesAtDepth(depth) {
			round.Games = append(round.Games, res[id])
		}
		view.Rounds = append(view.Rounds, round)
	}
	classification := RoundView{Depth: -1, Name: "classification"}
	for _, id := range structure.Order() {
		if _, ok := structure.Depth(id); !ok {
			classification.Games = append(classification.Games, res[id])
		}
	}
	if len(classification.Games) > 0 {
		view.Rounds = append(view.Rounds, classification)
	}
	if champion, ok := brackets.Champion(structure, res); ok {
		view.Champion = &champion
	}
	if runnerUp, ok := brackets.RunnerUp(structure, res); ok {
		view.RunnerUp = &runnerUp
	}
	return view
}

func roundName(depth int) string {
	switch depth {
	case 0:
		return "final"
	case 1:
		return "semi_finals"
	case 2:
		return "quarter_finals"
	default:
		return fmt.Sprintf("round_of_%d", 1<<(depth+1))
	}
}

func (s *tournamentService) GroupTables(ctx context.Context) (map[models.GroupID]standings.Table, error) {
	_, _, tbl, err := s.evaluate(ctx)
	if err != nil {
		return nil, err
	}
	return tbl, nil
}

func (s *tournamentService) GroupTable(ctx context.Context, id models.GroupID) (standings.Table, error) {
	tbl, err := s.GroupTables(ctx)
	if err != nil {
		return standings.Table{}, err
	}
	t, ok := tbl[id]
	if !ok {
		return standings.Table{}, fmt.Errorf("%w: %s", ErrGroupNotFound, id)
	}
	return t, nil
}

func (s *tournamentService) Bracket(ctx context.Context) (*BracketView, error) {
	st, policy, tbl, err := s.evaluate(ctx)
	if err != nil {
		return nil, err
	}
	structure, res, err := s.resolve(st.playoff, policy, tbl)
	if err != nil {
		if errors.Is(err, ErrInconsistentBracket) {
			s.logger.Error("stored bracket cannot be resolved", "error", err)
		}
		return nil, err
	}
	return newBracketView(structure, res), nil
}

func (s *tournamentService) RecordGroupResult(ctx context.Context, gameID models.GameID, input GroupResultInput) (*standings.Table, error) {
	hg, ag, err := goalsFromInput(input.HomeGoals, input.AwayGoals)
	if err != nil {
		return nil, err
	}
	hc, ac, err := cardsFromInput(input.HomeCards, input.AwayCards)
	if err != nil {
		return nil, err
	}
	return s.changeGroupResult(ctx, gameID, func(group models.Group) (models.Group, error) {
		if isPlayed(group, gameID) {
			var err error
			if group, err = group.WithoutResult(gameID); err != nil {
				return models.Group{}, err
			}
		}
		next, err := group.WithResult(gameID, hg, ag)
		if err != nil {
			return models.Group{}, err
		}
		if next, err = next.WithCards(gameID, hc, ac); err != nil {
			return models.Group{}, err
		}
		game, _ := next.Played(gameID)
		if err := s.gameRepo.SetResult(ctx, nil, game); err != nil {
			return models.Group{}, err
		}
		return next, nil
	})
}

func (s *tournamentService) ClearGroupResult(ctx context.Context, gameID models.GameID) (*standings.Table, error) {
	return s.changeGroupResult(ctx, gameID, func(group models.Group) (models.Group, error) {
		next, err := group.WithoutResult(gameID)
		if err != nil {
			return models.Group{}, err
		}
		if err := s.gameRepo.ClearResult(ctx, nil, gameID); err != nil {
			return models.Group{}, err
		}
		return next, nil
	})
}

// changeGroupResult applies a result change to the group holding gameID,
// then pushes the new tables, bracket and leaderboard.
func (s *tournamentService) changeGroupResult(
	ctx context.Context,
	gameID models.GameID,
	apply func(models.Group) (models.Group, error),
) (*standings.Table, error) {
	st, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	idx, ok := groupOf(st.groups, gameID)
	if !ok {
		return nil, fmt.Errorf("%w: group game %d", ErrGameNotFound, gameID)
	}
	group := st.groups[idx]
	if playoffPlayedFrom(st.playoff, group.ID()) {
		return nil, fmt.Errorf("%w: group %s", ErrDependentGamePlayed, group.ID())
	}

	next, err := apply(group)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrGroupGameNotPlayed), errors.Is(err, models.ErrGroupGameAlreadySet):
			return nil, fmt.Errorf("%w: %w", ErrValidationFailed, err)
		case errors.Is(err, repositories.ErrGameNotFound), errors.Is(err, models.ErrGroupGameNotFound):
			return nil, fmt.Errorf("%w: group game %d", ErrGameNotFound, gameID)
		}
		return nil, fmt.Errorf("failed to update result of game %d: %w", gameID, err)
	}
	st.groups[idx] = next
	s.logger.Info("group result changed", "game_id", gameID, "group", next.ID(), "complete", next.IsComplete())

	policy, err := s.policy(st)
	if err != nil {
		return nil, err
	}
	tbl, err := tables(ctx, st.groups, policy)
	if err != nil {
		return nil, err
	}
	s.pushStandings(ctx, tbl)
	if len(st.playoff) > 0 {
		if structure, res, err := s.resolve(st.playoff, policy, tbl); err != nil {
			s.logger.Error("bracket not pushed after group result", "game_id", gameID, "error", err)
		} else {
			s.pushBracket(ctx, newBracketView(structure, res))
		}
	}
	if s.leaderboard != nil {
		if err := s.leaderboard.RefreshLeaderboard(ctx); err != nil {
			s.logger.Warn("failed to refresh leaderboard", "game_id", gameID, "error", err)
		}
	}

	t := tbl[next.ID()]
	return &t, nil
}

func (s *tournamentService) pushStandings(ctx context.Context, tbl map[models.GroupID]standings.Table) {
	sorted := SortedTables(tbl)
	broadcast(s.hub, brackets.EventStandingsUpdated, sorted)
	s.publisher.publish(ctx, SnapshotStandingsKey, sorted)
}

func (s *tournamentService) pushBracket(ctx context.Context, view *BracketView) {
	broadcast(s.hub, brackets.EventBracketUpdated, view)
	s.publisher.publish(ctx, SnapshotBracketKey, view)
}

func penaltiesFromInput(input PlayoffResultInput) (*models.Penalties, error) {
	if input.HomePenalties == nil && input.AwayPenalties == nil {
		return nil, nil
	}
	if input.HomePenalties == nil || input.AwayPenalties == nil {
		return nil, fmt.Errorf("%w: both penalty counts are required", ErrValidationFailed)
	}
	home, away, err := goalsFromInput(*input.HomePenalties, *input.AwayPenalties)
	if err != nil {
		return nil, err
	}
	return &models.Penalties{Home: home, Away: away}, nil
}

// dependentPlayed reports whether any game downstream of id has a score.
func dependentPlayed(structure *brackets.Structure, res map[models.GameID]brackets.Resolution, id models.GameID) bool {
	queue := structure.Dependents(id)
	seen := make(map[models.GameID]bool)
	for len(queue) > 0 {
		next := queue[0]
		queue = queue[1:]
		if seen[next] {
			continue
		}
		seen[next] = true
		if res[next].Score != nil {
			return true
		}
		queue = append(queue, structure.Dependents(next)...)
	}
	return false
}

func (s *tournamentService) RecordPlayoffResult(ctx context.Context, gameID models.GameID, input PlayoffResultInput) (*BracketView, error) {
	hg, ag, err := goalsFromInput(input.HomeGoals, input.AwayGoals)
	if err != nil {
		return nil, err
	}
	penalties, err := penaltiesFromInput(input)
	if err != nil {
		return nil, err
	}
	score, err := models.NewPlayoffScore(hg, ag, penalties)
	if err != nil {
		return nil, fmt.Errorf("game %d: %w", gameID, err)
	}

	st, policy, tbl, err := s.evaluate(ctx)
	if err != nil {
		return nil, err
	}
	structure, res, err := s.resolve(st.playoff, policy, tbl)
	if err != nil {
		return nil, err
	}
	current, ok := res[gameID]
	if !ok {
		return nil, fmt.Errorf("%w: playoff game %d", ErrGameNotFound, gameID)
	}
	if current.Home == nil || current.Away == nil {
		return nil, fmt.Errorf("%w: game %d", ErrTeamsNotDetermined, gameID)
	}
	if current.Winner != nil && *current.Winner != score.Winner(*current.Home, *current.Away) && dependentPlayed(structure, res, gameID) {
		return nil, fmt.Errorf("%w: game %d", ErrDependentGamePlayed, gameID)
	}

	if err := s.playoffRepo.SetResult(ctx, nil, gameID, *current.Home, *current.Away, score); err != nil {
		if errors.Is(err, repositories.ErrPlayoffGameNotFound) {
			return nil, fmt.Errorf("%w: playoff game %d", ErrGameNotFound, gameID)
		}
		return nil, fmt.Errorf("failed to save result of playoff game %d: %w", gameID, err)
	}
	s.logger.Info("playoff result recorded", "game_id", gameID, "score", score.String())

	return s.afterPlayoffChange(ctx, st, policy, tbl, gameID, &score)
}

func (s *tournamentService) ClearPlayoffResult(ctx context.Context, gameID models.GameID) (*BracketView, error) {
	st, policy, tbl, err := s.evaluate(ctx)
	if err != nil {
		return nil, err
	}
	structure, res, err := s.resolve(st.playoff, policy, tbl)
	if err != nil {
		return nil, err
	}
	current, ok := res[gameID]
	if !ok {
		return nil, fmt.Errorf("%w: playoff game %d", ErrGameNotFound, gameID)
	}
	if current.Score == nil {
		return nil, fmt.Errorf("%w: playoff game %d has no result", ErrValidationFailed, gameID)
	}
	if dependentPlayed(structure, res, gameID) {
		return nil, fmt.Errorf("%w: game %d", ErrDependentGamePlayed, gameID)
	}

	if err := s.playoffRepo.ClearResult(ctx, nil, gameID); err != nil {
		if errors.Is(err, repositories.ErrPlayoffGameNotFound) {
			return nil, fmt.Errorf("%w: playoff game %d", ErrGameNotFound, gameID)
		}
		return nil, fmt.Errorf("failed to clear result of playoff game %d: %w", gameID, err)
	}
	s.logger.Info("playoff result cleared", "game_id", gameID)

	return s.afterPlayoffChange(ctx, st, policy, tbl, gameID, nil)
}

func (s *tournamentService) afterPlayoffChange(
	ctx context.Context,
	st *tournamentState,
	policy standings.Policy,
	tbl map[models.GroupID]standings.Table,
	gameID models.GameID,
	score *models.PlayoffScore,
) (*BracketView, error) {
	for i := range st.playoff {
		if st.playoff[i].ID == gameID {
			st.playoff[i].Score = score
		}
	}
	structure, res, err := s.resolve(st.playoff, policy, tbl)
	if err != nil {
		return nil, err
	}
	view := newBracketView(structure, res)
	s.pushBracket(ctx, view)
	return view, nil
}

func (s *tournamentService) ScheduleGroup(ctx context.Context, groupID models.GroupID, input ScheduleGroupInput) (*models.Group, error) {
	st, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	for _, g := range st.groups {
		if g.ID() == groupID {
			return nil, fmt.Errorf("%w: %s", ErrGroupAlreadyScheduled, groupID)
		}
		for _, team := range g.TeamIDs() {
			if slices.Contains(input.TeamIDs, team) {
				return nil, fmt.Errorf("%w: team %d already plays in group %s", ErrValidationFailed, team, g.ID())
			}
		}
	}
	for _, team := range input.TeamIDs {
		if !slices.ContainsFunc(st.teams, func(t models.Team) bool { return t.ID == team }) {
			return nil, fmt.Errorf("%w: unknown team %d", ErrValidationFailed, team)
		}
	}

	legs := input.Legs
	if legs == 0 {
		legs = 1
		if st.format != nil && st.format.ParsedSettings != nil && st.format.ParsedSettings.NumberOfRounds > 0 {
			legs = st.format.ParsedSettings.NumberOfRounds
		}
	}
	if legs != 1 && legs != 2 {
		return nil, fmt.Errorf("%w: legs must be 1 or 2, got %d", ErrValidationFailed, legs)
	}

	first, err := s.gameRepo.NextGameID(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to allocate game ids: %w", err)
	}
	fixtures, err := brackets.RoundRobinFixtures(input.TeamIDs, legs, first)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrValidationFailed, err)
	}
	if err := s.gameRepo.CreateGroupGames(ctx, groupID, fixtures); err != nil {
		if errors.Is(err, repositories.ErrGameTeamInvalid) {
			return nil, fmt.Errorf("%w: %w", ErrValidationFailed, err)
		}
		return nil, fmt.Errorf("failed to create fixtures for group %s: %w", groupID, err)
	}
	group, err := models.NewGroup(groupID, nil, fixtures)
	if err != nil {
		return nil, err
	}
	s.logger.Info("group scheduled", "group", groupID, "games", len(fixtures), "legs", legs)

	st.groups = append(st.groups, group)
	if policy, err := s.policy(st); err == nil {
		if tbl, err := tables(ctx, st.groups, policy); err == nil {
			s.pushStandings(ctx, tbl)
		}
	}
	return &group, nil
}

func (s *tournamentService) CreatePlayoff(ctx context.Context, input CreatePlayoffInput) (*BracketView, error) {
	st, policy, tbl, err := s.evaluate(ctx)
	if err != nil {
		return nil, err
	}
	if len(st.playoff) > 0 {
		return nil, ErrPlayoffExists
	}

	var games []models.PlayoffGame
	switch input.Template {
	case "", TemplateCrossGroups:
		ids := make([]models.GroupID, 0, len(st.groups))
		for _, g := range st.groups {
			ids = append(ids, g.ID())
		}
		slices.Sort(ids)
		games, err = s.generator.GenerateBracket(ctx, brackets.GenerateBracketParams{
			Entrants:          brackets.CrossGroupEntrants(ids),
			FirstGameID:       1,
			ThirdPlacePlayoff: input.ThirdPlacePlayoff,
		})
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrValidationFailed, err)
		}
	default:
		var ok bool
		if games, ok = brackets.Template(input.Template); !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownTemplate, input.Template)
		}
		if input.ThirdPlacePlayoff && !hasThirdPlacePlayoff(games) {
			return nil, fmt.Errorf("%w: %w: template %q", ErrValidationFailed, brackets.ErrNoThirdPlacePlayoff, input.Template)
		}
	}

	first, err := s.gameRepo.NextGameID(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to allocate game ids: %w", err)
	}
	games = brackets.Renumber(games, first)
	structure, err := brackets.NewStructure(games)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrValidationFailed, err)
	}
	for _, g := range structure.Groups() {
		if _, ok := tbl[g]; !ok {
			return nil, fmt.Errorf("%w: bracket uses group %s which has no fixtures", ErrValidationFailed, g)
		}
	}

	if err := s.playoffRepo.CreatePlayoff(ctx, games); err != nil {
		if errors.Is(err, repositories.ErrPlayoffExists) {
			return nil, ErrPlayoffExists
		}
		if errors.Is(err, repositories.ErrInvalidTeamSource) {
			return nil, fmt.Errorf("%w: %w", ErrValidationFailed, err)
		}
		return nil, fmt.Errorf("failed to create playoff: %w", err)
	}
	s.logger.Info("playoff created", "template", input.Template, "games", len(games))

	structure, res, err := s.resolve(games, policy, tbl)
	if err != nil {
		return nil, err
	}
	view := newBracketView(structure, res)
	s.pushBracket(ctx, view)
	return view, nil
}

func hasThirdPlacePlayoff(games []models.PlayoffGame) bool {
	for _, g := range games {
		if _, ok := g.Home.(models.LoserOf); ok {
			return true
		}
	}
	return false
}
