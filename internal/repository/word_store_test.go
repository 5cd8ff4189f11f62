package repository

import (
	"bytes"
	"errors"
	"log"
	"strings"
	"testing"

	"wordmemo/internal/models"
)

type failingKV struct{}

func (failingKV) Get(string) (string, bool, error) { return "", false, errors.New("quota exceeded") }
func (failingKV) Set(string, string) error         { return errors.New("quota exceeded") }
func (failingKV) Delete(string) error              { return errors.New("quota exceeded") }
func (failingKV) SetMany(map[string]*string) error { return errors.New("quota exceeded") }

func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	logger := log.Default()
	original := logger.Writer()
	logger.SetOutput(&buf)
	t.Cleanup(func() { logger.SetOutput(original) })
	return &buf
}

func TestWordStoreLoad(t *testing.T) {
	tests := []struct {
		name   string
		stored *string
		want   int
	}{
		{name: "absent key", stored: nil, want: 0},
		{name: "corrupt json", stored: strPtr("{not json"), want: 0},
		{name: "null json", stored: strPtr("null"), want: 0},
		{name: "valid bank", stored: strPtr(`[{"word":"cat","meaning":"an animal","difficulty":"Easy"}]`), want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			captureLog(t)
			kv := NewMemoryKV()
			if tt.stored != nil {
				kv.Set(KeyWords, *tt.stored)
			}

			bank := NewWordStore(kv).Load()
			if bank == nil {
				t.Fatal("Load() returned nil bank")
			}
			if len(bank) != tt.want {
				t.Errorf("Load() returned %d entries, want %d", len(bank), tt.want)
			}
		})
	}
}

func TestWordStoreSaveAndLoad(t *testing.T) {
	store := NewWordStore(NewMemoryKV())
	bank := models.WordBank{
		{Word: "ice cream", Meaning: "A cold dessert", Difficulty: models.DifficultyNormal},
		{Word: "cat", Meaning: "An animal", Difficulty: models.DifficultyMedium},
	}

	store.Save(bank)
	loaded := store.Load()

	if len(loaded) != 2 || loaded[0] != bank[0] || loaded[1] != bank[1] {
		t.Errorf("Load() = %+v, want %+v", loaded, bank)
	}
}

func TestWordStorePin(t *testing.T) {
	store := NewWordStore(NewMemoryKV())

	if pin := store.LoadPin(); pin != nil {
		t.Fatalf("expected no PIN, got %q", *pin)
	}

	store.SavePin(strPtr("abc"))
	if pin := store.LoadPin(); pin == nil || *pin != "abc" {
		t.Fatalf("expected PIN abc, got %v", pin)
	}

	store.SavePin(nil)
	if pin := store.LoadPin(); pin != nil {
		t.Fatalf("expected PIN removed, got %q", *pin)
	}
}

func TestWordStoreFailingBackend(t *testing.T) {
	buf := captureLog(t)
	store := NewWordStore(failingKV{})

	if bank := store.Load(); len(bank) != 0 {
		t.Errorf("expected empty bank, got %d entries", len(bank))
	}
	if pin := store.LoadPin(); pin != nil {
		t.Errorf("expected nil PIN, got %q", *pin)
	}

	// Must not panic
	store.Save(models.WordBank{{Word: "cat", Meaning: "x"}})
	store.SavePin(strPtr("abc"))

	if err := store.Restore(models.WordBank{}, nil); err == nil {
		t.Error("Restore() should report backend failures")
	}

	if !strings.Contains(buf.String(), "quota exceeded") {
		t.Errorf("expected failures to be logged, got %q", buf.String())
	}
}

func TestWordStoreRestore(t *testing.T) {
	kv := NewMemoryKV()
	store := NewWordStore(kv)
	store.SavePin(strPtr("old"))

	bank := models.WordBank{{Word: "dog", Meaning: "barks", Difficulty: models.DifficultyEasy}}
	if err := store.Restore(bank, nil); err != nil {
		t.Fatalf("Restore() error: %v", err)
	}

	if loaded := store.Load(); len(loaded) != 1 || loaded[0].Word != "dog" {
		t.Errorf("unexpected bank after restore: %+v", loaded)
	}
	if pin := store.LoadPin(); pin != nil {
		t.Errorf("restore with nil PIN should clear it, got %q", *pin)
	}
}

func strPtr(s string) *string {
	return &s
}

func TestWordStoreLoadBankReportsReadFailure(t *testing.T) {
	if _, err := NewWordStore(failingKV{}).LoadBank(); err == nil {
		t.Error("LoadBank() should report backend failures")
	}

	kv := NewMemoryKV()
	kv.Set(KeyWords, "{not json")
	bank, err := NewWordStore(kv).LoadBank()
	if err != nil {
		t.Fatalf("LoadBank() error = %v, a corrupt value reads as empty", err)
	}
	if len(bank) != 0 {
		t.Errorf("expected empty bank, got %d entries", len(bank))
	}
}
