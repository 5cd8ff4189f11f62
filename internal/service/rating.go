package service

import (
	"wordmemo/internal/audio"
	"wordmemo/internal/models"
)

// Rate grades a finished session. Only sessions where every word was guessed
// can score above Bad.
func Rate(score, totalWords, sessionErrors, hintsUsed int) models.Rating {
	if totalWords == 0 || score != totalWords {
		return models.RatingBad
	}
	switch {
	case sessionErrors == 0 && hintsUsed == 0:
		return models.RatingPerfect
	case sessionErrors == 0:
		return models.RatingExcellent
	case sessionErrors <= 2:
		return models.RatingGood
	case sessionErrors <= 4:
		return models.RatingAverage
	default:
		return models.RatingBad
	}
}

// RatingCue returns the sound played for a rating
func RatingCue(r models.Rating) audio.Cue {
	switch r {
	case models.RatingPerfect:
		return audio.CueFanfare
	case models.RatingExcellent:
		return audio.CueApplause
	case models.RatingGood:
		return audio.CueBell
	case models.RatingAverage:
		return audio.CueCar
	default:
		return audio.CueDuck
	}
}
