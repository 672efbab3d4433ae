package models

// DashboardStats summarises tournament progress for administrators.
type DashboardStats struct {
	TeamsTotal         int `json:"teams_total"`
	GroupsTotal        int `json:"groups_total"`
	GroupsComplete     int `json:"groups_complete"`
	GroupGamesTotal    int `json:"group_games_total"`
	GroupGamesPlayed   int `json:"group_games_played"`
	PlayoffGamesTotal  int `json:"playoff_games_total"`
	PlayoffGamesPlayed int `json:"playoff_games_played"`
	PlayersTotal       int `json:"players_total"`
	PredictionsTotal   int `json:"predictions_total"`
}
