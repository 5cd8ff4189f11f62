package handlers

import (
	"net/http"

	"wordmemo/internal/models"
	"wordmemo/internal/security"
)

// ModeHandler handles switching between Teacher and Play mode
type ModeHandler struct {
	csrf *security.CSRFGenerator
}

// NewModeHandler creates a new mode handler
func NewModeHandler(csrf *security.CSRFGenerator) *ModeHandler {
	return &ModeHandler{csrf: csrf}
}

// Session returns the caller's mode and a CSRF token for later requests
func (h *ModeHandler) Session(w http.ResponseWriter, r *http.Request) {
	cs := GetClientSession(r.Context())
	token, err := h.csrf.GenerateToken(cs.ID)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Error generating CSRF token", err)
		return
	}
	respondJSON(w, http.StatusOK, SessionResponse{ModeStatus: cs.Gate.Status(), CSRFToken: token})
}

// RequestPlay enters Play mode or opens the set-PIN prompt
func (h *ModeHandler) RequestPlay(w http.ResponseWriter, r *http.Request) {
	status := GetClientSession(r.Context()).Gate.RequestPlay()
	respondJSON(w, http.StatusOK, SessionResponse{ModeStatus: status, Message: promptMessage(status)})
}

// RequestTeacher opens the PIN prompt
func (h *ModeHandler) RequestTeacher(w http.ResponseWriter, r *http.Request) {
	status := GetClientSession(r.Context()).Gate.RequestTeacher()
	respondJSON(w, http.StatusOK, SessionResponse{ModeStatus: status, Message: promptMessage(status)})
}

// SetPin stores the first teacher PIN and enters Play mode
func (h *ModeHandler) SetPin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		respondWithError(w, http.StatusBadRequest, ErrInvalidFormData, "", err)
		return
	}

	status, err := GetClientSession(r.Context()).Gate.SubmitNewPin(r.FormValue("pin"))
	if err != nil {
		respondWithServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, SessionResponse{ModeStatus: status})
}

// ValidatePin checks the teacher PIN and returns to Teacher mode
func (h *ModeHandler) ValidatePin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		respondWithError(w, http.StatusBadRequest, ErrInvalidFormData, "", err)
		return
	}

	status, err := GetClientSession(r.Context()).Gate.SubmitPin(r.FormValue("pin"))
	if err != nil {
		respondWithServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, SessionResponse{ModeStatus: status})
}

// Cancel closes an open PIN prompt
func (h *ModeHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	status := GetClientSession(r.Context()).Gate.Cancel()
	respondJSON(w, http.StatusOK, SessionResponse{ModeStatus: status})
}

func promptMessage(status models.ModeStatus) string {
	switch status.Prompt {
	case models.PromptSetPin:
		return "Set a teacher PIN to enter Play Mode."
	case models.PromptValidatePin:
		return "Enter the teacher PIN to return to Teacher Mode."
	default:
		return ""
	}
}
