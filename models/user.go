package models

import "time"

type UserRole string

const (
	RoleAdmin  UserRole = "admin"
	RolePlayer UserRole = "player"
)

// Player is a user taking part in the betting pool.
type Player struct {
	ID        int       `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Role      UserRole  `json:"role" db:"role"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// Prediction is a player's guess for a group game.
type Prediction struct {
	PlayerID  int       `json:"player_id" db:"player_id"`
	GameID    GameID    `json:"game_id" db:"game_id"`
	HomeGoals GoalCount `json:"home_goals" db:"home_result"`
	AwayGoals GoalCount `json:"away_goals" db:"away_result"`
}

// Outcome of the predicted score, seen from the home side.
func (p Prediction) Outcome() MatchOutcome {
	return PlayedGame{HomeGoals: p.HomeGoals, AwayGoals: p.AwayGoals}.Outcome()
}
