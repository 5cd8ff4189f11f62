// Package catalog provides the built-in vocabulary used to add random words.
package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/samber/lo"

	"wordmemo/internal/models"
)

//go:embed words.json
var wordsJSON []byte

type catalogEntry struct {
	Word    string `json:"word"`
	Meaning string `json:"meaning"`
}

var (
	loadOnce sync.Once
	builtIn  []models.WordEntry
	loadErr  error
)

// Load returns the embedded vocabulary as word entries tagged with their difficulty.
// The returned slice is a copy and may be modified by the caller.
func Load() ([]models.WordEntry, error) {
	loadOnce.Do(func() {
		builtIn, loadErr = Parse(wordsJSON)
	})
	if loadErr != nil {
		return nil, loadErr
	}
	return models.WordBank(builtIn).Clone(), nil
}

// Parse decodes a catalog document keyed by difficulty name
func Parse(data []byte) ([]models.WordEntry, error) {
	var raw map[string][]catalogEntry
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to decode catalog: %w", err)
	}

	byDifficulty := make(map[models.Difficulty][]catalogEntry, len(raw))
	for key, words := range raw {
		d, err := models.ParseDifficulty(key)
		if err != nil {
			return nil, fmt.Errorf("catalog: %w", err)
		}
		byDifficulty[d] = append(byDifficulty[d], words...)
	}

	// Difficulty order keeps the result stable
	var entries []models.WordEntry
	for _, d := range models.Difficulties {
		entries = append(entries, lo.Map(byDifficulty[d], func(e catalogEntry, _ int) models.WordEntry {
			return models.WordEntry{Word: e.Word, Meaning: e.Meaning, Difficulty: d}
		})...)
	}
	return entries, nil
}

// CountByDifficulty reports how many catalog words exist per difficulty
func CountByDifficulty(entries []models.WordEntry) map[models.Difficulty]int {
	return lo.CountValuesBy(entries, func(e models.WordEntry) models.Difficulty {
		return e.Difficulty
	})
}
