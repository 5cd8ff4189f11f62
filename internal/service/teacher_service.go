package service

import (
	"fmt"
	"log"
	"slices"
	"strings"
	"sync"

	"wordmemo/internal/models"
	"wordmemo/internal/repository"
	"wordmemo/internal/utils"
)

// Confirmer asks the user a yes/no question
type Confirmer interface {
	Confirm(question string) bool
}

// ConfirmFunc adapts a function to Confirmer
type ConfirmFunc func(question string) bool

func (f ConfirmFunc) Confirm(question string) bool {
	return f(question)
}

// BulkResult reports the outcome of a bulk add
type BulkResult struct {
	Added   int
	Skipped int
	// Warning is set when any line was skipped
	Warning string
}

// RandomResult reports the outcome of adding random words
type RandomResult struct {
	Added   int
	Message string
}

// TeacherService manages the word bank. Every successful change is persisted
// and bumps the revision. The stored bank is re-read on access so writes made
// through another WordStore, such as a wordbank import, are picked up.
type TeacherService struct {
	mu        sync.Mutex
	store     *repository.WordStore
	picker    *WordPicker
	catalog   []models.WordEntry
	bank      models.WordBank
	revision  uint64
	listeners []func(revision uint64)
}

// NewTeacherService creates a teacher service and loads the stored word bank.
// catalog is the source for AddRandom.
func NewTeacherService(store *repository.WordStore, picker *WordPicker, catalog []models.WordEntry) *TeacherService {
	return &TeacherService{
		store:   store,
		picker:  picker,
		catalog: catalog,
		bank:    store.Load(),
	}
}

// Words returns a copy of the word bank
func (s *TeacherService) Words() models.WordBank {
	bank, _ := s.Snapshot()
	return bank
}

// Revision increases by one for every change to the bank
func (s *TeacherService) Revision() uint64 {
	_, revision := s.Snapshot()
	return revision
}

// Snapshot returns the bank and its revision together
func (s *TeacherService) Snapshot() (models.WordBank, uint64) {
	s.mu.Lock()
	changed := s.reload()
	bank, revision := s.bank.Clone(), s.revision
	listeners := slices.Clone(s.listeners)
	s.mu.Unlock()

	if changed {
		log.Printf("Word bank changed in storage: %d words (revision %d)", len(bank), revision)
		notify(listeners, revision)
	}
	return bank, revision
}

// reload replaces the cached bank with the stored one when they differ and
// reports whether it did. A read failure keeps the cached bank. s.mu must be held.
func (s *TeacherService) reload() bool {
	stored, err := s.store.LoadBank()
	if err != nil {
		log.Printf("Warning: keeping cached word bank: %v", err)
		return false
	}
	if slices.Equal(stored, s.bank) {
		return false
	}
	s.bank = stored
	s.revision++
	return true
}

func notify(listeners []func(revision uint64), revision uint64) {
	for _, fn := range listeners {
		fn(revision)
	}
}

// OnChange registers a listener called after each change, outside the service lock
func (s *TeacherService) OnChange(fn func(revision uint64)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

// AddSingle appends a word with Medium difficulty
func (s *TeacherService) AddSingle(word, meaning string) (models.WordEntry, error) {
	word, meaning, err := utils.ValidateWordPair(word, meaning)
	if err != nil {
		return models.WordEntry{}, err
	}

	entry := models.WordEntry{Word: word, Meaning: meaning, Difficulty: models.DifficultyMedium}
	s.update(func(bank models.WordBank) models.WordBank {
		return append(bank, entry)
	})
	return entry, nil
}

// AddBulk parses "word: meaning" lines and appends the valid ones with Medium difficulty
func (s *TeacherService) AddBulk(text string) (BulkResult, error) {
	var result BulkResult
	var entries []models.WordEntry

	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		word, meaning, ok := strings.Cut(line, ":")
		word, meaning = strings.TrimSpace(word), strings.TrimSpace(meaning)
		if !ok || word == "" || meaning == "" {
			result.Skipped++
			continue
		}
		entries = append(entries, models.WordEntry{Word: word, Meaning: meaning, Difficulty: models.DifficultyMedium})
	}

	if result.Skipped > 0 {
		result.Warning = MsgBulkSkipped
	}

	if len(entries) == 0 {
		if result.Skipped == 0 {
			return result, utils.ValidationError{Field: "text", Message: MsgBulkEmpty}
		}
		return result, nil
	}

	s.update(func(bank models.WordBank) models.WordBank {
		return append(bank, entries...)
	})
	result.Added = len(entries)
	return result, nil
}

// AddRandom appends up to ten catalog words of difficulty d, avoiding recent picks
func (s *TeacherService) AddRandom(d models.Difficulty) RandomResult {
	picked := s.picker.Pick(s.catalog, d, DefaultPickCount)
	name := strings.ToLower(string(d))
	if len(picked) == 0 {
		return RandomResult{Message: fmt.Sprintf("No words found for %q difficulty.", name)}
	}

	s.update(func(bank models.WordBank) models.WordBank {
		return append(bank, picked...)
	})
	return RandomResult{
		Added:   len(picked),
		Message: fmt.Sprintf("Added %d random words of %q.", len(picked), name),
	}
}

// Edit replaces the word and meaning at index, keeping its difficulty
func (s *TeacherService) Edit(index int, word, meaning string) (models.WordEntry, error) {
	word, meaning, err := utils.ValidateWordPair(word, meaning)
	if err != nil {
		return models.WordEntry{}, err
	}

	var updated models.WordEntry
	found := s.update(func(bank models.WordBank) models.WordBank {
		if index < 0 || index >= len(bank) {
			return nil
		}
		bank[index].Word = word
		bank[index].Meaning = meaning
		updated = bank[index]
		return bank
	})
	if !found {
		return models.WordEntry{}, ErrWordNotFound
	}
	return updated, nil
}

// Delete removes the word at index once confirm agrees. It reports whether
// the word was removed; a declined confirmation is not an error.
func (s *TeacherService) Delete(index int, confirm Confirmer) (bool, error) {
	bank, _ := s.Snapshot()
	if index < 0 || index >= len(bank) {
		return false, ErrWordNotFound
	}

	if confirm == nil || !confirm.Confirm(MsgDeleteConfirmation) {
		return false, nil
	}

	found := s.update(func(bank models.WordBank) models.WordBank {
		if index < 0 || index >= len(bank) {
			return nil
		}
		return slices.Delete(bank, index, index+1)
	})
	if !found {
		return false, ErrWordNotFound
	}
	return true, nil
}

// update applies fn to a copy of the stored bank. A nil result aborts the
// change. It reports whether the change was applied.
func (s *TeacherService) update(fn func(bank models.WordBank) models.WordBank) bool {
	s.mu.Lock()
	reloaded := s.reload()
	next := fn(s.bank.Clone())
	if next == nil {
		revision := s.revision
		listeners := slices.Clone(s.listeners)
		s.mu.Unlock()
		if reloaded {
			notify(listeners, revision)
		}
		return false
	}
	s.bank = next
	s.revision++
	revision := s.revision
	listeners := slices.Clone(s.listeners)
	s.store.Save(next)
	s.mu.Unlock()

	log.Printf("Word bank updated: %d words (revision %d)", len(next), revision)
	notify(listeners, revision)
	return true
}
