package handlers

import (
	"net/http"

	"github.com/Dosada05/tournament-predictor/middleware"
	"github.com/Dosada05/tournament-predictor/services"
)

type PredictionHandler struct {
	predictionService services.PredictionService
}

func NewPredictionHandler(ps services.PredictionService) *PredictionHandler {
	return &PredictionHandler{predictionService: ps}
}

// SubmitPrediction godoc
// @Summary Predict a group game
// @Tags predictions
// @Description Stores or replaces the caller's prediction. Closed once the game has a result.
// @Accept json
// @Produce json
// @Param gameID path int true "Game ID"
// @Param body body services.PredictionInput true "Predicted score"
// @Success 200 {object} map[string]interface{} "Prediction stored"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Game or player not found"
// @Failure 409 {object} map[string]string "Game already played"
// @Failure 422 {object} map[string]string "Invalid score"
// @Security BearerAuth
// @Router /predictions/{gameID} [put]
func (h *PredictionHandler) SubmitPrediction(w http.ResponseWriter, r *http.Request) {
	playerID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, err.Error())
		return
	}
	gameID, err := getGameIDFromURL(r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	var input services.PredictionInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	prediction, err := h.predictionService.SubmitPrediction(r.Context(), playerID, gameID, input.HomeGoals, input.AwayGoals)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"prediction": prediction}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// Leaderboard godoc
// @Summary Prediction leaderboard
// @Tags predictions
// @Produce json
// @Success 200 {object} map[string]interface{} "Leaderboard"
// @Router /leaderboard [get]
func (h *PredictionHandler) Leaderboard(w http.ResponseWriter, r *http.Request) {
	board, err := h.predictionService.Leaderboard(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"leaderboard": board}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
