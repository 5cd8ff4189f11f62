package service

import (
	"sync"
	"time"

	"wordmemo/internal/audio"
	"wordmemo/internal/models"
	"wordmemo/internal/repository"
)

// identityRand never swaps, so Shuffle keeps the input order
type identityRand struct{}

func (identityRand) IntN(n int) int { return n - 1 }

type fakeTimer struct {
	d       time.Duration
	fn      func()
	stopped bool
}

func (t *fakeTimer) Stop() bool {
	wasActive := !t.stopped
	t.stopped = true
	return wasActive
}

// fakeScheduler records timers and fires them on demand
type fakeScheduler struct {
	mu     sync.Mutex
	timers []*fakeTimer
}

func (s *fakeScheduler) AfterFunc(d time.Duration, fn func()) Timer {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := &fakeTimer{d: d, fn: fn}
	s.timers = append(s.timers, t)
	return t
}

// pending returns timers that have not been stopped or fired
func (s *fakeScheduler) pending() []*fakeTimer {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*fakeTimer
	for _, t := range s.timers {
		if !t.stopped {
			out = append(out, t)
		}
	}
	return out
}

// fireNext runs the oldest pending timer and reports whether one existed
func (s *fakeScheduler) fireNext() bool {
	pending := s.pending()
	if len(pending) == 0 {
		return false
	}
	t := pending[0]
	t.stopped = true
	t.fn()
	return true
}

// fireN fires n pending timers in order
func (s *fakeScheduler) fireN(n int) {
	for i := 0; i < n; i++ {
		if !s.fireNext() {
			return
		}
	}
}

// recordingCues collects played cues
type recordingCues struct {
	mu   sync.Mutex
	cues []audio.Cue
}

func (r *recordingCues) Play(cue audio.Cue) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cues = append(r.cues, cue)
}

func (r *recordingCues) played() []audio.Cue {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]audio.Cue{}, r.cues...)
}

func newTestStore() *repository.WordStore {
	return repository.NewWordStore(repository.NewMemoryKV())
}

func bankOf(words ...string) models.WordBank {
	bank := make(models.WordBank, 0, len(words))
	for _, w := range words {
		bank = append(bank, models.WordEntry{Word: w, Meaning: "meaning of " + w, Difficulty: models.DifficultyMedium})
	}
	return bank
}

func catalogOf(d models.Difficulty, n int) []models.WordEntry {
	entries := make([]models.WordEntry, 0, n)
	for i := 0; i < n; i++ {
		entries = append(entries, models.WordEntry{
			Word:       string(d) + "-" + string(rune('a'+i%26)) + string(rune('a'+i/26)),
			Meaning:    "meaning",
			Difficulty: d,
		})
	}
	return entries
}
