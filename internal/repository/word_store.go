package repository

import (
	"encoding/json"
	"fmt"
	"log"

	"wordmemo/internal/models"
)

// Storage keys
const (
	KeyWords      = "words"
	KeyTeacherPin = "teacherPin"
)

// WordStore persists the word bank and teacher PIN.
// Storage failures are logged and degrade to empty or default values.
type WordStore struct {
	kv KeyValueStore
}

// NewWordStore creates a word store over kv
func NewWordStore(kv KeyValueStore) *WordStore {
	return &WordStore{kv: kv}
}

// Load returns the stored word bank, or an empty bank when nothing usable is stored
func (s *WordStore) Load() models.WordBank {
	bank, err := s.LoadBank()
	if err != nil {
		log.Printf("Warning: failed to load word bank: %v", err)
		return models.WordBank{}
	}
	return bank
}

// LoadBank is like Load but reports storage read failures instead of
// degrading to an empty bank. A corrupt value still reads as empty.
func (s *WordStore) LoadBank() (models.WordBank, error) {
	raw, ok, err := s.kv.Get(KeyWords)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", KeyWords, err)
	}
	if !ok {
		return models.WordBank{}, nil
	}

	var bank models.WordBank
	if err := json.Unmarshal([]byte(raw), &bank); err != nil {
		log.Printf("Warning: stored word bank is corrupt, starting empty: %v", err)
		return models.WordBank{}, nil
	}
	if bank == nil {
		return models.WordBank{}, nil
	}
	return bank, nil
}

// Save replaces the stored word bank
func (s *WordStore) Save(bank models.WordBank) {
	data, err := encodeBank(bank)
	if err != nil {
		log.Printf("Warning: failed to encode word bank: %v", err)
		return
	}
	if err := s.kv.Set(KeyWords, data); err != nil {
		log.Printf("Warning: failed to save word bank: %v", err)
	}
}

// LoadPin returns the stored teacher PIN, or nil when none is set
func (s *WordStore) LoadPin() *string {
	pin, ok, err := s.kv.Get(KeyTeacherPin)
	if err != nil {
		log.Printf("Warning: failed to load teacher PIN: %v", err)
		return nil
	}
	if !ok {
		return nil
	}
	return &pin
}

// SavePin stores the teacher PIN; nil removes it
func (s *WordStore) SavePin(pin *string) {
	var err error
	if pin == nil {
		err = s.kv.Delete(KeyTeacherPin)
	} else {
		err = s.kv.Set(KeyTeacherPin, *pin)
	}
	if err != nil {
		log.Printf("Warning: failed to save teacher PIN: %v", err)
	}
}

// Restore writes the bank and PIN together. Unlike Save it reports failures,
// since it is only used by operator tooling.
func (s *WordStore) Restore(bank models.WordBank, pin *string) error {
	data, err := encodeBank(bank)
	if err != nil {
		return fmt.Errorf("failed to encode word bank: %w", err)
	}
	if err := s.kv.SetMany(map[string]*string{
		KeyWords:      &data,
		KeyTeacherPin: pin,
	}); err != nil {
		return fmt.Errorf("failed to restore word bank: %w", err)
	}
	return nil
}

func encodeBank(bank models.WordBank) (string, error) {
	if bank == nil {
		bank = models.WordBank{}
	}
	data, err := json.Marshal(bank)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
