package service

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"wordmemo/internal/models"
	"wordmemo/internal/repository"
	"wordmemo/internal/utils"
)

// BackupVersion is written into every export
const BackupVersion = "1.0"

// BackupData is the JSON document produced by an export
type BackupData struct {
	Version      string          `json:"version"`
	ExportedAt   time.Time       `json:"exported_at"`
	DatabaseType string          `json:"database_type"`
	Words        models.WordBank `json:"words"`
	TeacherPin   *string         `json:"teacher_pin,omitempty"`
}

// BackupService exports and restores the word bank and teacher PIN
type BackupService struct {
	store        *repository.WordStore
	databaseType string
}

// NewBackupService creates a new backup service
func NewBackupService(store *repository.WordStore, databaseType string) *BackupService {
	return &BackupService{store: store, databaseType: databaseType}
}

// Export writes a backup to a file
func (s *BackupService) Export(outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	if err := s.ExportToWriter(file); err != nil {
		return err
	}

	log.Printf("Word bank exported successfully to %s", outputPath)
	return nil
}

// ExportToWriter writes a backup as indented JSON
func (s *BackupService) ExportToWriter(w io.Writer) error {
	backup := &BackupData{
		Version:      BackupVersion,
		ExportedAt:   time.Now(),
		DatabaseType: s.databaseType,
		Words:        s.store.Load(),
		TeacherPin:   s.store.LoadPin(),
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(backup); err != nil {
		return fmt.Errorf("failed to encode backup: %w", err)
	}

	log.Printf("Exported: %d words, PIN set: %t", len(backup.Words), backup.TeacherPin != nil)
	return nil
}

// Import restores a backup file. See ImportFromReader.
func (s *BackupService) Import(inputPath string, replace bool) error {
	file, err := os.Open(inputPath)
	if err != nil {
		return fmt.Errorf("failed to open input file: %w", err)
	}
	defer file.Close()

	return s.ImportFromReader(file, replace)
}

// ImportFromReader restores a backup. With replace the stored bank and PIN
// are overwritten; otherwise the backup's words are appended and an existing
// PIN is kept.
func (s *BackupService) ImportFromReader(reader io.Reader, replace bool) error {
	var backup BackupData
	if err := json.NewDecoder(reader).Decode(&backup); err != nil {
		return fmt.Errorf("failed to decode backup: %w", err)
	}

	log.Printf("Backup version: %s, exported at: %s", backup.Version, backup.ExportedAt)

	bank, err := normalizeBackupWords(backup.Words)
	if err != nil {
		return err
	}
	pin := backup.TeacherPin
	if !replace {
		bank = append(s.store.Load(), bank...)
		if existing := s.store.LoadPin(); existing != nil {
			pin = existing
		}
	}

	if err := s.store.Restore(bank, pin); err != nil {
		return err
	}

	log.Printf("Import completed: %d words stored", len(bank))
	return nil
}

// normalizeBackupWords trims each entry and checks it the way the teacher
// screen would. A missing difficulty defaults to Medium.
func normalizeBackupWords(words models.WordBank) (models.WordBank, error) {
	bank := make(models.WordBank, 0, len(words))
	for i, entry := range words {
		word, meaning, err := utils.ValidateWordPair(entry.Word, entry.Meaning)
		if err != nil {
			return nil, fmt.Errorf("backup word %d is missing a word or meaning", i+1)
		}

		difficulty := models.DifficultyMedium
		if entry.Difficulty != "" {
			if !entry.Difficulty.Valid() {
				return nil, fmt.Errorf("backup word %d has unknown difficulty %q", i+1, entry.Difficulty)
			}
			difficulty, _ = models.ParseDifficulty(string(entry.Difficulty))
		}

		bank = append(bank, models.WordEntry{Word: word, Meaning: meaning, Difficulty: difficulty})
	}
	return bank, nil
}
