package handlers

import (
	"net/http"

	"github.com/Dosada05/tournament-predictor/services"
)

type FormatHandler struct {
	formatService services.FormatService
}

func NewFormatHandler(fs services.FormatService) *FormatHandler {
	return &FormatHandler{
		formatService: fs,
	}
}

// CreateFormat godoc
// @Summary Create a tournament format
// @Tags formats
// @Description Stores a named rule set: tie-break preset, points and criteria. Admin only.
// @Accept json
// @Produce json
// @Param body body services.CreateFormatInput true "Name and settings"
// @Success 201 {object} map[string]interface{} "Format created"
// @Failure 400 {object} map[string]string "Bad request"
// @Failure 409 {object} map[string]string "Name already in use"
// @Failure 422 {object} map[string]string "Invalid rules"
// @Security BearerAuth
// @Router /formats [post]
func (h *FormatHandler) CreateFormat(w http.ResponseWriter, r *http.Request) {
	var input services.CreateFormatInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	format, err := h.formatService.CreateFormat(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusCreated, jsonResponse{"format": format}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// GetFormatByID godoc
// @Summary Get a format
// @Tags formats
// @Produce json
// @Param formatID path int true "Format ID"
// @Success 200 {object} map[string]interface{} "Format"
// @Failure 400 {object} map[string]string "Invalid ID"
// @Failure 404 {object} map[string]string "Format not found"
// @Security BearerAuth
// @Router /formats/{formatID} [get]
func (h *FormatHandler) GetFormatByID(w http.ResponseWriter, r *http.Request) {
	formatID, err := getIDFromURL(r, "formatID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	format, err := h.formatService.GetFormatByID(r.Context(), formatID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"format": format}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// GetAllFormats godoc
// @Summary List formats
// @Tags formats
// @Produce json
// @Success 200 {object} map[string]interface{} "Formats"
// @Security BearerAuth
// @Router /formats [get]
func (h *FormatHandler) GetAllFormats(w http.ResponseWriter, r *http.Request) {
	formats, err := h.formatService.GetAllFormats(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"formats": formats}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ActivateFormat godoc
// @Summary Activate a format
// @Tags formats
// @Description Standings and the bracket are computed under the active format. Admin only.
// @Produce json
// @Param formatID path int true "Format ID"
// @Success 200 {object} map[string]interface{} "Active format"
// @Failure 404 {object} map[string]string "Format not found"
// @Security BearerAuth
// @Router /formats/{formatID}/activate [put]
func (h *FormatHandler) ActivateFormat(w http.ResponseWriter, r *http.Request) {
	formatID, err := getIDFromURL(r, "formatID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	format, err := h.formatService.ActivateFormat(r.Context(), formatID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"format": format}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
