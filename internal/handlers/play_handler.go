package handlers

import (
	"log"
	"net/http"

	"wordmemo/internal/audio"
	"wordmemo/internal/service"
	"wordmemo/internal/utils"
)

// PlayHandler handles the guessing game
type PlayHandler struct {
	teacher *service.TeacherService
	tts     *audio.TTSService
}

// NewPlayHandler creates a new play handler
func NewPlayHandler(teacher *service.TeacherService, tts *audio.TTSService) *PlayHandler {
	return &PlayHandler{teacher: teacher, tts: tts}
}

// State returns the session snapshot and any pending sound cues
func (h *PlayHandler) State(w http.ResponseWriter, r *http.Request) {
	respondWithPlay(w, GetClientSession(r.Context()))
}

// Ready starts guessing the current word
func (h *PlayHandler) Ready(w http.ResponseWriter, r *http.Request) {
	cs := GetClientSession(r.Context())
	cs.Play.Ready()
	respondWithPlay(w, cs)
}

// Guess submits one letter
func (h *PlayHandler) Guess(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		respondWithError(w, http.StatusBadRequest, ErrInvalidFormData, "", err)
		return
	}

	letter, err := utils.ValidateLetter(r.FormValue("letter"))
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	cs := GetClientSession(r.Context())
	cs.Play.Guess(letter)
	respondWithPlay(w, cs)
}

// Hint reveals the meaning of the current word
func (h *PlayHandler) Hint(w http.ResponseWriter, r *http.Request) {
	cs := GetClientSession(r.Context())
	cs.Play.Hint()
	respondWithPlay(w, cs)
}

// Restart begins a new session over the current word bank
func (h *PlayHandler) Restart(w http.ResponseWriter, r *http.Request) {
	cs := GetClientSession(r.Context())
	cs.Play.Reset(h.teacher.Words())
	respondWithPlay(w, cs)
}

// Speech serves spoken audio for the current word or meaning. When audio
// cannot be produced the text is returned so the client can speak it itself.
func (h *PlayHandler) Speech(w http.ResponseWriter, r *http.Request) {
	text := GetClientSession(r.Context()).Play.SpeechText()
	if text == "" {
		respondJSON(w, http.StatusOK, SpeechResponse{Message: MsgNothingToSpeak})
		return
	}

	filename, err := h.tts.Speak(r.Context(), text)
	if err != nil {
		if h.tts.Enabled() {
			log.Printf("Warning: text-to-speech failed: %v", err)
		}
		respondJSON(w, http.StatusOK, SpeechResponse{Text: text, Message: MsgSpeechUnavailable})
		return
	}

	w.Header().Set("Content-Type", "audio/mpeg")
	http.ServeFile(w, r, h.tts.Path(filename))
}

func respondWithPlay(w http.ResponseWriter, cs *service.ClientSession) {
	respondJSON(w, http.StatusOK, PlayResponse{
		PlaySnapshot: cs.Play.Snapshot(),
		Cues:         cs.Cues.Drain(),
	})
}
