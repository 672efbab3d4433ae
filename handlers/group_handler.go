package handlers

import (
	"net/http"

	"github.com/Dosada05/tournament-predictor/services"
)

type GroupHandler struct {
	tournamentService services.TournamentService
}

func NewGroupHandler(ts services.TournamentService) *GroupHandler {
	return &GroupHandler{tournamentService: ts}
}

// ListTables godoc
// @Summary List group tables
// @Tags groups
// @Description Computes the table of every group from its results, ordered by group letter.
// @Produce json
// @Success 200 {object} map[string]interface{} "Group tables"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /groups [get]
func (h *GroupHandler) ListTables(w http.ResponseWriter, r *http.Request) {
	tables, err := h.tournamentService.GroupTables(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"groups": services.SortedTables(tables)}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// GetTable godoc
// @Summary Get a group table
// @Tags groups
// @Produce json
// @Param groupID path string true "Group letter"
// @Success 200 {object} map[string]interface{} "Group table"
// @Failure 400 {object} map[string]string "Invalid group"
// @Failure 404 {object} map[string]string "Group not found"
// @Router /groups/{groupID} [get]
func (h *GroupHandler) GetTable(w http.ResponseWriter, r *http.Request) {
	groupID, err := getGroupIDFromURL(r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	table, err := h.tournamentService.GroupTable(r.Context(), groupID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"group": table}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ScheduleGroup godoc
// @Summary Create the fixtures of a group
// @Tags groups
// @Description Creates a round-robin between the listed teams. Admin only.
// @Accept json
// @Produce json
// @Param groupID path string true "Group letter"
// @Param body body services.ScheduleGroupInput true "Teams and number of legs"
// @Success 201 {object} map[string]interface{} "Group created"
// @Failure 400 {object} map[string]string "Bad request"
// @Failure 409 {object} map[string]string "Group already scheduled"
// @Failure 422 {object} map[string]string "Validation error"
// @Security BearerAuth
// @Router /groups/{groupID}/fixtures [post]
func (h *GroupHandler) ScheduleGroup(w http.ResponseWriter, r *http.Request) {
	groupID, err := getGroupIDFromURL(r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	var input services.ScheduleGroupInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	group, err := h.tournamentService.ScheduleGroup(r.Context(), groupID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusCreated, jsonResponse{"group": group}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// RecordResult godoc
// @Summary Record a group game result
// @Tags games
// @Description Sets or corrects the score of a group game and returns the new table. Admin only.
// @Accept json
// @Produce json
// @Param gameID path int true "Game ID"
// @Param body body services.GroupResultInput true "Score and optional cards"
// @Success 200 {object} map[string]interface{} "Updated table"
// @Failure 404 {object} map[string]string "Game not found"
// @Failure 409 {object} map[string]string "A playoff game fed by the group has been played"
// @Failure 422 {object} map[string]string "Invalid score"
// @Security BearerAuth
// @Router /games/{gameID}/result [put]
func (h *GroupHandler) RecordResult(w http.ResponseWriter, r *http.Request) {
	gameID, err := getGameIDFromURL(r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	var input services.GroupResultInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	table, err := h.tournamentService.RecordGroupResult(r.Context(), gameID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"group": table}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ClearResult godoc
// @Summary Remove a group game result
// @Tags games
// @Produce json
// @Param gameID path int true "Game ID"
// @Success 200 {object} map[string]interface{} "Updated table"
// @Failure 404 {object} map[string]string "Game not found"
// @Failure 422 {object} map[string]string "Game has no result"
// @Security BearerAuth
// @Router /games/{gameID}/result [delete]
func (h *GroupHandler) ClearResult(w http.ResponseWriter, r *http.Request) {
	gameID, err := getGameIDFromURL(r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	table, err := h.tournamentService.ClearGroupResult(r.Context(), gameID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"group": table}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
