package service

import (
	"log"

	"github.com/samber/lo"

	"wordmemo/internal/models"
)

// DefaultPickCount is used when a non-positive count is requested
const DefaultPickCount = 10

// WordPicker selects random words for a difficulty while avoiding recent repeats
type WordPicker struct {
	history *RecencyHistory
	rng     RandSource
}

// NewWordPicker creates a picker sharing the given history
func NewWordPicker(history *RecencyHistory, rng RandSource) *WordPicker {
	if rng == nil {
		rng = DefaultRand
	}
	return &WordPicker{history: history, rng: rng}
}

// Pick returns up to count entries of difficulty d from source with no duplicate words.
// Words absent from the recent history are preferred; recent words only fill
// the batch when there are not enough fresh ones.
func (p *WordPicker) Pick(source []models.WordEntry, d models.Difficulty, count int) []models.WordEntry {
	if count <= 0 {
		count = DefaultPickCount
	}

	all := lo.Filter(source, func(e models.WordEntry, _ int) bool {
		return e.Difficulty == d
	})
	if len(all) == 0 {
		log.Printf("Warning: no words available for difficulty: %s", d)
		return []models.WordEntry{}
	}

	entry := p.history.forDifficulty(d)
	entry.mu.Lock()
	defer entry.mu.Unlock()

	picked := make([]models.WordEntry, 0, count)
	seen := make(map[string]bool, count)

	fill := func(candidates []models.WordEntry) {
		for _, e := range Shuffle(candidates, p.rng) {
			if len(picked) >= count {
				return
			}
			if seen[e.Word] {
				continue
			}
			seen[e.Word] = true
			picked = append(picked, e)
		}
	}

	fresh := lo.Filter(all, func(e models.WordEntry, _ int) bool {
		return !entry.contains(e.Word)
	})
	fill(fresh)

	if len(picked) < count {
		fill(lo.Filter(all, func(e models.WordEntry, _ int) bool {
			return !seen[e.Word] && !entry.contains(e.Word)
		}))
	}

	if len(picked) < count {
		fill(lo.Filter(all, func(e models.WordEntry, _ int) bool {
			return !seen[e.Word]
		}))
	}

	entry.remember(lo.Map(picked, func(e models.WordEntry, _ int) string {
		return e.Word
	}), p.history.size)

	return picked
}
