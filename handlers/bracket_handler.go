package handlers

import (
	"net/http"

	"github.com/Dosada05/tournament-predictor/services"
)

type BracketHandler struct {
	tournamentService services.TournamentService
}

func NewBracketHandler(ts services.TournamentService) *BracketHandler {
	return &BracketHandler{tournamentService: ts}
}

// GetBracket godoc
// @Summary Get the playoff bracket
// @Tags playoff
// @Description Resolves every playoff game from the group tables and playoff results.
// @Produce json
// @Success 200 {object} services.BracketView
// @Failure 404 {object} map[string]string "Playoff not created"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /bracket [get]
func (h *BracketHandler) GetBracket(w http.ResponseWriter, r *http.Request) {
	view, err := h.tournamentService.Bracket(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, view, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// CreatePlayoff godoc
// @Summary Create the playoff
// @Tags playoff
// @Description Creates the playoff from a named template or, by default, from the scheduled groups. Admin only.
// @Accept json
// @Produce json
// @Param body body services.CreatePlayoffInput false "Template"
// @Success 201 {object} services.BracketView
// @Failure 400 {object} map[string]string "Unknown template"
// @Failure 409 {object} map[string]string "Playoff already exists"
// @Security BearerAuth
// @Router /playoff [post]
func (h *BracketHandler) CreatePlayoff(w http.ResponseWriter, r *http.Request) {
	var input services.CreatePlayoffInput
	if r.ContentLength != 0 {
		if err := readJSON(w, r, &input); err != nil {
			badRequestResponse(w, r, err)
			return
		}
	}
	view, err := h.tournamentService.CreatePlayoff(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusCreated, view, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// RecordResult godoc
// @Summary Record a playoff result
// @Tags playoff
// @Description A level score needs home_penalties and away_penalties with a winner. Admin only.
// @Accept json
// @Produce json
// @Param gameID path int true "Game ID"
// @Param body body services.PlayoffResultInput true "Score"
// @Success 200 {object} services.BracketView
// @Failure 404 {object} map[string]string "Game not found"
// @Failure 409 {object} map[string]string "Teams not determined or a later game was played"
// @Failure 422 {object} map[string]string "Score without a winner"
// @Security BearerAuth
// @Router /playoff/{gameID}/result [put]
func (h *BracketHandler) RecordResult(w http.ResponseWriter, r *http.Request) {
	gameID, err := getGameIDFromURL(r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	var input services.PlayoffResultInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	view, err := h.tournamentService.RecordPlayoffResult(r.Context(), gameID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, view, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ClearResult godoc
// @Summary Remove a playoff result
// @Tags playoff
// @Produce json
// @Param gameID path int true "Game ID"
// @Success 200 {object} services.BracketView
// @Failure 404 {object} map[string]string "Game not found"
// @Failure 409 {object} map[string]string "A later game was played"
// @Security BearerAuth
// @Router /playoff/{gameID}/result [delete]
func (h *BracketHandler) ClearResult(w http.ResponseWriter, r *http.Request) {
	gameID, err := getGameIDFromURL(r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	view, err := h.tournamentService.ClearPlayoffResult(r.Context(), gameID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, view, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
