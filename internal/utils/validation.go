package utils

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"wordmemo/internal/models"
)

// MinPinLength is the shortest teacher PIN accepted
const MinPinLength = 3

// ValidationError represents a validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateWordPair trims a word and meaning and checks both are present
func ValidateWordPair(word, meaning string) (string, string, error) {
	word = strings.TrimSpace(word)
	meaning = strings.TrimSpace(meaning)
	if word == "" || meaning == "" {
		return "", "", ValidationError{Field: "word", Message: "Word and Meaning cannot be empty."}
	}
	return word, meaning, nil
}

// ValidatePin trims a new teacher PIN and checks its length
func ValidatePin(pin string) (string, error) {
	pin = strings.TrimSpace(pin)
	if utf8.RuneCountInString(pin) < MinPinLength {
		return "", ValidationError{Field: "pin", Message: fmt.Sprintf("PIN must be at least %d characters long.", MinPinLength)}
	}
	return pin, nil
}

// ValidateDifficulty parses a difficulty form value
func ValidateDifficulty(value string) (models.Difficulty, error) {
	d, err := models.ParseDifficulty(value)
	if err != nil {
		return "", ValidationError{Field: "difficulty", Message: fmt.Sprintf("Unknown difficulty %q.", strings.TrimSpace(value))}
	}
	return d, nil
}

// ValidateLetter returns the single letter of a guess
func ValidateLetter(value string) (rune, error) {
	value = strings.TrimSpace(value)
	if utf8.RuneCountInString(value) != 1 {
		return 0, ValidationError{Field: "letter", Message: "Guess one letter at a time."}
	}
	r, _ := utf8.DecodeRuneInString(value)
	return r, nil
}
