package models

import "time"

// PlayState is the state of a play session
type PlayState int

const (
	// PlayIdle means there are no words to play
	PlayIdle PlayState = iota
	// PlayReady shows the current word in full until the player is ready
	PlayReady
	PlayGuessing
	// PlayWordComplete is shown briefly before the next word
	PlayWordComplete
	PlaySessionOver
)

func (s PlayState) String() string {
	switch s {
	case PlayIdle:
		return "idle"
	case PlayReady:
		return "ready"
	case PlayGuessing:
		return "guessing"
	case PlayWordComplete:
		return "word_complete"
	case PlaySessionOver:
		return "session_over"
	default:
		return "unknown"
	}
}

// MarshalText encodes the state by name
func (s PlayState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Rating is the end-of-session grade
type Rating string

const (
	RatingNone      Rating = ""
	RatingPerfect   Rating = "Perfect"
	RatingExcellent Rating = "Excellent"
	RatingGood      Rating = "Good"
	RatingAverage   Rating = "Average"
	RatingBad       Rating = "Bad"
)

// PlaySnapshot is a display-ready view of a play session.
// Word is only filled while the answer is shown; Meaning only while visible.
type PlaySnapshot struct {
	State         PlayState  `json:"state"`
	MaskedWord    string     `json:"masked_word"`
	Word          string     `json:"word,omitempty"`
	Meaning       string     `json:"meaning,omitempty"`
	Difficulty    Difficulty `json:"difficulty,omitempty"`
	WordNumber    int        `json:"word_number"`
	TotalWords    int        `json:"total_words"`
	Score         int        `json:"score"`
	WordErrors    int        `json:"word_errors"`
	MaxWordErrors int        `json:"max_word_errors"`
	SessionErrors int        `json:"session_errors"`
	HintsLeft     int        `json:"hints_left"`
	HintsUsed     int        `json:"hints_used"`
	Countdown     int        `json:"countdown"`
	Rating        Rating     `json:"rating,omitempty"`
	Message       string     `json:"message,omitempty"`
}

// SessionResult summarizes a finished session
type SessionResult struct {
	TotalWords    int
	Score         int
	SessionErrors int
	HintsUsed     int
	Rating        Rating
	// EndedEarly is set when the session stopped before every word was played
	EndedEarly bool
	StartedAt  time.Time
	FinishedAt time.Time
}
