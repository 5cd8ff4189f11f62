package handlers

import (
	"wordmemo/internal/audio"
	"wordmemo/internal/models"
)

type SessionResponse struct {
	models.ModeStatus
	CSRFToken string `json:"csrf_token,omitempty"`
	Message   string `json:"message,omitempty"`
}

type WordsResponse struct {
	Words    models.WordBank `json:"words"`
	Revision uint64          `json:"revision"`
	Message  string          `json:"message,omitempty"`
	Warning  string          `json:"warning,omitempty"`
	Added    int             `json:"added,omitempty"`
}

type WordResponse struct {
	Index    int              `json:"index"`
	Word     models.WordEntry `json:"word"`
	Revision uint64           `json:"revision"`
}

type DeleteResponse struct {
	Deleted bool `json:"deleted"`
	// Confirm holds the question to ask when the request was not confirmed
	Confirm  string `json:"confirm,omitempty"`
	Revision uint64 `json:"revision"`
}

type PlayResponse struct {
	models.PlaySnapshot
	Cues []audio.Cue `json:"cues"`
}

type SpeechResponse struct {
	Text    string `json:"text,omitempty"`
	Message string `json:"message"`
}
