package services

import "errors"

// Errors shared by the services and the HTTP error mapping.
var (
	// validation and business rules
	ErrValidationFailed      = errors.New("validation failed")
	ErrTeamsNotDetermined    = errors.New("playoff game teams are not determined yet")
	ErrDependentGamePlayed   = errors.New("a later playoff game depending on this result has been played")
	ErrGroupAlreadyScheduled = errors.New("group already has fixtures")
	ErrPredictionClosed      = errors.New("predictions are closed for a played game")
	ErrUnknownTemplate       = errors.New("unknown bracket template")

	// conflicts
	ErrPlayoffExists      = errors.New("playoff already created")
	ErrFormatNameConflict = errors.New("format name already exists")

	// the stored tournament cannot be interpreted
	ErrInconsistentBracket = errors.New("stored bracket is inconsistent")

	// not found with context
	ErrGameNotFound   = errors.New("game not found")
	ErrGroupNotFound  = errors.New("group not found")
	ErrPlayerNotFound = errors.New("player not found")
	ErrFormatNotFound = errors.New("format not found")
	ErrNoPlayoff      = errors.New("playoff has not been created")
)
