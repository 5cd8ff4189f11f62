package models

import (
	"fmt"
	"strings"
)

// Difficulty is the level a word was picked from
type Difficulty string

const (
	DifficultyEasy    Difficulty = "Easy"
	DifficultyNormal  Difficulty = "Normal"
	DifficultyMedium  Difficulty = "Medium"
	DifficultyHard    Difficulty = "Hard"
	DifficultyExpert  Difficulty = "Expert"
	DifficultyAdvance Difficulty = "Advance"
)

// Difficulties lists every difficulty in ascending order
var Difficulties = []Difficulty{
	DifficultyEasy,
	DifficultyNormal,
	DifficultyMedium,
	DifficultyHard,
	DifficultyExpert,
	DifficultyAdvance,
}

// ParseDifficulty converts a case-insensitive name into a Difficulty
func ParseDifficulty(s string) (Difficulty, error) {
	name := strings.TrimSpace(s)
	for _, d := range Difficulties {
		if strings.EqualFold(name, string(d)) {
			return d, nil
		}
	}
	return "", fmt.Errorf("unknown difficulty %q", s)
}

// Valid reports whether d is one of the known difficulties
func (d Difficulty) Valid() bool {
	_, err := ParseDifficulty(string(d))
	return err == nil
}

// WordEntry is one word and its meaning. Entries are identified by position in the bank.
type WordEntry struct {
	Word       string     `json:"word"`
	Meaning    string     `json:"meaning"`
	Difficulty Difficulty `json:"difficulty"`
}

// WordBank is the ordered, persisted list of words
type WordBank []WordEntry

// Clone returns a copy that shares no backing array with b
func (b WordBank) Clone() WordBank {
	if b == nil {
		return WordBank{}
	}
	out := make(WordBank, len(b))
	copy(out, b)
	return out
}
