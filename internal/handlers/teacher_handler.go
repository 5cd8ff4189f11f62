package handlers

import (
	"net/http"
	"strconv"

	"wordmemo/internal/service"
	"wordmemo/internal/utils"
)

// TeacherHandler handles word bank management
type TeacherHandler struct {
	teacher *service.TeacherService
}

// NewTeacherHandler creates a new teacher handler
func NewTeacherHandler(teacher *service.TeacherService) *TeacherHandler {
	return &TeacherHandler{teacher: teacher}
}

// ListWords returns the word bank
func (h *TeacherHandler) ListWords(w http.ResponseWriter, r *http.Request) {
	h.respondWithWords(w, WordsResponse{})
}

// AddWord appends one word and meaning
func (h *TeacherHandler) AddWord(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		respondWithError(w, http.StatusBadRequest, ErrInvalidFormData, "", err)
		return
	}

	if _, err := h.teacher.AddSingle(r.FormValue("word"), r.FormValue("meaning")); err != nil {
		respondWithServiceError(w, err)
		return
	}
	h.respondWithWords(w, WordsResponse{Added: 1})
}

// AddBulk appends "word: meaning" lines
func (h *TeacherHandler) AddBulk(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		respondWithError(w, http.StatusBadRequest, ErrInvalidFormData, "", err)
		return
	}

	result, err := h.teacher.AddBulk(r.FormValue("text"))
	if err != nil {
		respondWithServiceError(w, err)
		return
	}
	h.respondWithWords(w, WordsResponse{Added: result.Added, Warning: result.Warning})
}

// AddRandom appends catalog words of one difficulty
func (h *TeacherHandler) AddRandom(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		respondWithError(w, http.StatusBadRequest, ErrInvalidFormData, "", err)
		return
	}

	difficulty, err := utils.ValidateDifficulty(r.FormValue("difficulty"))
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	result := h.teacher.AddRandom(difficulty)
	h.respondWithWords(w, WordsResponse{Added: result.Added, Message: result.Message})
}

// EditWord replaces the word and meaning at {index}
func (h *TeacherHandler) EditWord(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(r.PathValue("index"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, ErrInvalidWordIndex, "", nil)
		return
	}
	if err := r.ParseForm(); err != nil {
		respondWithError(w, http.StatusBadRequest, ErrInvalidFormData, "", err)
		return
	}

	entry, err := h.teacher.Edit(index, r.FormValue("word"), r.FormValue("meaning"))
	if err != nil {
		respondWithServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, WordResponse{Index: index, Word: entry, Revision: h.teacher.Revision()})
}

// DeleteWord removes the word at {index} once the request carries confirm=yes.
// Without it the confirmation question is returned and nothing changes.
func (h *TeacherHandler) DeleteWord(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(r.PathValue("index"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, ErrInvalidWordIndex, "", nil)
		return
	}
	if err := r.ParseForm(); err != nil {
		respondWithError(w, http.StatusBadRequest, ErrInvalidFormData, "", err)
		return
	}

	confirmed := r.FormValue("confirm") == "yes"
	deleted, err := h.teacher.Delete(index, service.ConfirmFunc(func(string) bool {
		return confirmed
	}))
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	resp := DeleteResponse{Deleted: deleted, Revision: h.teacher.Revision()}
	if !deleted {
		resp.Confirm = service.MsgDeleteConfirmation
	}
	respondJSON(w, http.StatusOK, resp)
}

func (h *TeacherHandler) respondWithWords(w http.ResponseWriter, resp WordsResponse) {
	resp.Words, resp.Revision = h.teacher.Snapshot()
	respondJSON(w, http.StatusOK, resp)
}
