package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"wordmemo/internal/service"
	"wordmemo/internal/utils"
)

type errorResponse struct {
	Error string `json:"error"`
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}

func respondWithError(w http.ResponseWriter, status int, userMsg, logMsg string, err error) {
	if err != nil {
		if logMsg == "" {
			logMsg = userMsg
		}
		log.Printf("%s: %v", logMsg, err)
	}

	respondJSON(w, status, errorResponse{Error: userMsg})
}

// respondWithServiceError maps a service error to a status and user message
func respondWithServiceError(w http.ResponseWriter, err error) {
	var validationErr utils.ValidationError
	switch {
	case errors.As(err, &validationErr):
		respondWithError(w, http.StatusBadRequest, validationErr.Message, "", nil)
	case errors.Is(err, service.ErrIncorrectPin):
		respondWithError(w, http.StatusForbidden, service.MsgIncorrectPin, "", nil)
	case errors.Is(err, service.ErrWordNotFound):
		respondWithError(w, http.StatusNotFound, "Word not found", "", nil)
	case errors.Is(err, service.ErrNoPrompt):
		respondWithError(w, http.StatusConflict, ErrNoPinPrompt, "", nil)
	default:
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "", err)
	}
}
