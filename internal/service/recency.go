package service

import (
	"slices"
	"sync"

	"wordmemo/internal/models"
)

// HistorySize is how many recent words are remembered per difficulty
const HistorySize = 30

// RecencyHistory remembers the most recently picked words per difficulty,
// most recent first, so random picks avoid immediate repeats.
type RecencyHistory struct {
	mu      sync.Mutex
	entries map[models.Difficulty]*difficultyHistory
	size    int
}

type difficultyHistory struct {
	mu    sync.Mutex
	words []string
}

// NewRecencyHistory creates a history keeping up to size words per difficulty
func NewRecencyHistory(size int) *RecencyHistory {
	if size <= 0 {
		size = HistorySize
	}
	return &RecencyHistory{
		entries: make(map[models.Difficulty]*difficultyHistory),
		size:    size,
	}
}

func (h *RecencyHistory) forDifficulty(d models.Difficulty) *difficultyHistory {
	h.mu.Lock()
	defer h.mu.Unlock()
	entry, ok := h.entries[d]
	if !ok {
		entry = &difficultyHistory{}
		h.entries[d] = entry
	}
	return entry
}

// Recent returns a copy of the history for d, most recent first
func (h *RecencyHistory) Recent(d models.Difficulty) []string {
	entry := h.forDifficulty(d)
	entry.mu.Lock()
	defer entry.mu.Unlock()
	return slices.Clone(entry.words)
}

// contains must be called with the entry lock held
func (e *difficultyHistory) contains(word string) bool {
	return slices.Contains(e.words, word)
}

// remember moves each word to the front in order and truncates to size.
// Must be called with the entry lock held.
func (e *difficultyHistory) remember(words []string, size int) {
	for _, word := range words {
		if i := slices.Index(e.words, word); i >= 0 {
			e.words = slices.Delete(e.words, i, i+1)
		}
		e.words = slices.Insert(e.words, 0, word)
	}
	if len(e.words) > size {
		e.words = e.words[:size]
	}
}
