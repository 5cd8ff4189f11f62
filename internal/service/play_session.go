package service

import (
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"
	"unicode"

	"wordmemo/internal/audio"
	"wordmemo/internal/models"
)

const (
	// MaxWordErrors wrong guesses on one word end the session
	MaxWordErrors = 5
	// HintBudget is the number of hints available per session
	HintBudget = 5

	DefaultGuessTimeLimit    = 60 * time.Second
	DefaultWordCompleteDelay = time.Second

	tickInterval = time.Second
)

// PlayOptions configures a play session. Zero values fall back to defaults.
type PlayOptions struct {
	GuessTimeLimit    time.Duration
	WordCompleteDelay time.Duration
	Scheduler         Scheduler
	Rand              RandSource
	Cues              audio.CuePlayer
	Now               func() time.Time
}

func (o PlayOptions) withDefaults() PlayOptions {
	if o.GuessTimeLimit < tickInterval {
		o.GuessTimeLimit = DefaultGuessTimeLimit
	}
	if o.WordCompleteDelay <= 0 {
		o.WordCompleteDelay = DefaultWordCompleteDelay
	}
	if o.Scheduler == nil {
		o.Scheduler = RealScheduler{}
	}
	if o.Rand == nil {
		o.Rand = DefaultRand
	}
	if o.Cues == nil {
		o.Cues = audio.NopPlayer{}
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	return o
}

// PlaySession runs one pass over a shuffled word bank.
//
// The session owns at most one pending timer. Every transition cancels it
// before scheduling a new one, and callbacks from a cancelled timer are
// recognised by their generation and dropped.
type PlaySession struct {
	mu   sync.Mutex
	opts PlayOptions

	words    models.WordBank
	order    []int
	position int
	state    models.PlayState

	// cursor is a rune index into the current word
	cursor         int
	wordErrors     int
	sessionErrors  int
	score          int
	hintsLeft      int
	hintsUsed      int
	meaningVisible bool
	countdown      int
	rating         models.Rating
	message        string
	revealAnswer   bool
	endedEarly     bool
	startedAt      time.Time

	timer      Timer
	generation uint64
	closed     bool

	listeners []func(models.SessionResult)
}

// NewPlaySession creates an idle session; call Reset to load words
func NewPlaySession(opts PlayOptions) *PlaySession {
	return &PlaySession{
		opts:      opts.withDefaults(),
		state:     models.PlayIdle,
		hintsLeft: HintBudget,
		message:   MsgNoWords,
	}
}

// OnSessionOver registers a hook run in its own goroutine when a session ends
func (s *PlaySession) OnSessionOver(fn func(models.SessionResult)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

// Reset starts a new session over words in a fresh shuffled order
func (s *PlaySession) Reset(words models.WordBank) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cancelTimer()
	s.closed = false
	s.words = words.Clone()
	s.order = ShuffledIndices(len(s.words), s.opts.Rand)
	s.position = 0
	s.wordErrors = 0
	s.sessionErrors = 0
	s.score = 0
	s.hintsLeft = HintBudget
	s.hintsUsed = 0
	s.meaningVisible = false
	s.countdown = 0
	s.rating = models.RatingNone
	s.revealAnswer = false
	s.endedEarly = false
	s.startedAt = s.opts.Now()

	if len(s.words) == 0 {
		s.state = models.PlayIdle
		s.cursor = 0
		s.message = MsgNoWords
		return
	}

	s.state = models.PlayReady
	s.cursor = firstNonSpace(s.currentWord())
	s.message = ""
}

// Ready hides the revealed word and starts guessing with a full countdown
func (s *PlaySession) Ready() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed || s.state != models.PlayReady {
		return
	}

	s.state = models.PlayGuessing
	s.cursor = firstNonSpace(s.currentWord())
	s.wordErrors = 0
	s.meaningVisible = false
	s.countdown = int(s.opts.GuessTimeLimit / time.Second)
	s.message = "Guess the first letter!"
	s.scheduleTick()
}

// Guess checks letter against the next unguessed letter of the current word.
// Outside of guessing it does nothing.
func (s *PlaySession) Guess(letter rune) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed || s.state != models.PlayGuessing {
		return
	}

	word := s.currentWord()
	s.cursor = skipSpaces(word, s.cursor)
	if s.cursor >= len(word) {
		s.completeWord()
		return
	}

	if unicode.ToLower(letter) == word[s.cursor] {
		s.cursor = skipSpaces(word, s.cursor+1)
		if s.cursor >= len(word) {
			s.completeWord()
			return
		}
		s.message = "Correct! Guess the next letter."
		return
	}

	s.opts.Cues.Play(audio.CueBeep)
	s.wordErrors++
	s.sessionErrors++
	if s.wordErrors >= MaxWordErrors {
		s.endSession(true, fmt.Sprintf("Game Over! The word was %q.", strings.ToUpper(string(word))))
		return
	}
	s.message = fmt.Sprintf("Oops! %q is not the correct letter for this position. Errors: %d/%d",
		strings.ToUpper(string(letter)), s.wordErrors, MaxWordErrors)
}

// Hint reveals the meaning and uses one hint. With no hints left the session
// ends immediately.
func (s *PlaySession) Hint() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed || s.state != models.PlayGuessing {
		return
	}
	if s.hintsLeft <= 0 {
		s.endSession(true, "No hints left! The session is over.")
		return
	}
	if s.meaningVisible {
		return
	}

	s.hintsLeft--
	s.hintsUsed++
	s.meaningVisible = true
	s.message = fmt.Sprintf("Hint used. %d left.", s.hintsLeft)
}

// Close stops the session's timer. Later calls are ignored until Reset.
func (s *PlaySession) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cancelTimer()
	s.closed = true
}

// State returns the current state
func (s *PlaySession) State() models.PlayState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// SpeechText returns what text-to-speech should read: the meaning while
// guessing, otherwise the revealed word
func (s *PlaySession) SpeechText() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.currentEntry()
	if !ok {
		return ""
	}
	switch s.state {
	case models.PlayGuessing:
		return entry.Meaning
	case models.PlayReady, models.PlayWordComplete:
		return entry.Word
	case models.PlaySessionOver:
		if s.revealAnswer {
			return entry.Word
		}
	}
	return ""
}

// Snapshot returns a display-ready view of the session
func (s *PlaySession) Snapshot() models.PlaySnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := models.PlaySnapshot{
		State:         s.state,
		TotalWords:    len(s.words),
		Score:         s.score,
		WordErrors:    s.wordErrors,
		MaxWordErrors: MaxWordErrors,
		SessionErrors: s.sessionErrors,
		HintsLeft:     s.hintsLeft,
		HintsUsed:     s.hintsUsed,
		Countdown:     s.countdown,
		Rating:        s.rating,
		Message:       s.message,
	}

	entry, ok := s.currentEntry()
	if !ok {
		return snap
	}
	word := s.currentWord()
	snap.WordNumber = s.position + 1
	snap.Difficulty = entry.Difficulty

	switch s.state {
	case models.PlayReady:
		snap.MaskedWord = string(word)
		snap.Word = string(word)
		snap.Meaning = entry.Meaning
	case models.PlayGuessing, models.PlayWordComplete:
		snap.MaskedWord = maskWord(word, s.cursor)
		if s.meaningVisible || s.state == models.PlayWordComplete {
			snap.Meaning = entry.Meaning
		}
		if s.state == models.PlayWordComplete {
			snap.Word = string(word)
		}
	case models.PlaySessionOver:
		if s.revealAnswer {
			snap.MaskedWord = string(word)
			snap.Word = string(word)
			snap.Meaning = entry.Meaning
		}
	}
	return snap
}

func (s *PlaySession) currentEntry() (models.WordEntry, bool) {
	if s.position < 0 || s.position >= len(s.order) {
		return models.WordEntry{}, false
	}
	return s.words[s.order[s.position]], true
}

// currentWord returns the lower-cased runes of the current word
func (s *PlaySession) currentWord() []rune {
	entry, ok := s.currentEntry()
	if !ok {
		return nil
	}
	return []rune(strings.ToLower(entry.Word))
}

func (s *PlaySession) hasNextWord() bool {
	return s.position+1 < len(s.order)
}

// completeWord must be called with s.mu held
func (s *PlaySession) completeWord() {
	s.cancelTimer()
	s.score++
	s.wordErrors = 0
	s.countdown = 0
	s.message = fmt.Sprintf("Congratulations! You guessed %q correctly!", strings.ToUpper(string(s.currentWord())))

	if !s.hasNextWord() {
		s.endSession(false, s.message)
		return
	}

	s.state = models.PlayWordComplete
	s.schedule(s.opts.WordCompleteDelay, func() {
		s.advance("")
	})
}

// advance moves to the next word and shows it in full. Must be called with s.mu held.
func (s *PlaySession) advance(prefix string) {
	s.cancelTimer()
	s.position++
	s.state = models.PlayReady
	s.cursor = firstNonSpace(s.currentWord())
	s.wordErrors = 0
	s.meaningVisible = false
	s.countdown = 0

	entry, _ := s.currentEntry()
	s.message = prefix + fmt.Sprintf("Next word: %q", entry.Meaning)
}

// timeUp skips the current word. Must be called with s.mu held.
func (s *PlaySession) timeUp() {
	s.cancelTimer()
	s.sessionErrors++
	s.countdown = 0
	timesUp := fmt.Sprintf("Time's up! The word was %q.", strings.ToUpper(string(s.currentWord())))

	if !s.hasNextWord() {
		s.endSession(false, timesUp)
		s.revealAnswer = true
		return
	}
	s.advance(timesUp + " ")
}

// endSession must be called with s.mu held
func (s *PlaySession) endSession(early bool, message string) {
	s.cancelTimer()
	s.state = models.PlaySessionOver
	s.endedEarly = early
	s.revealAnswer = early
	s.countdown = 0
	s.meaningVisible = false
	s.rating = Rate(s.score, len(s.words), s.sessionErrors, s.hintsUsed)
	s.message = message
	s.opts.Cues.Play(RatingCue(s.rating))

	result := models.SessionResult{
		TotalWords:    len(s.words),
		Score:         s.score,
		SessionErrors: s.sessionErrors,
		HintsUsed:     s.hintsUsed,
		Rating:        s.rating,
		EndedEarly:    early,
		StartedAt:     s.startedAt,
		FinishedAt:    s.opts.Now(),
	}
	for _, fn := range slices.Clone(s.listeners) {
		go fn(result)
	}
}

// scheduleTick must be called with s.mu held
func (s *PlaySession) scheduleTick() {
	s.schedule(tickInterval, func() {
		if s.state != models.PlayGuessing {
			return
		}
		s.countdown--
		if s.countdown <= 0 {
			s.timeUp()
			return
		}
		s.scheduleTick()
	})
}

// schedule replaces the pending timer. fn runs with s.mu held and only if no
// other transition happened in between. Must be called with s.mu held.
func (s *PlaySession) schedule(d time.Duration, fn func()) {
	s.cancelTimer()
	generation := s.generation
	s.timer = s.opts.Scheduler.AfterFunc(d, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.closed || s.generation != generation {
			return
		}
		s.timer = nil
		fn()
	})
}

// cancelTimer must be called with s.mu held
func (s *PlaySession) cancelTimer() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.generation++
}

func firstNonSpace(word []rune) int {
	return skipSpaces(word, 0)
}

func skipSpaces(word []rune, i int) int {
	for i < len(word) && word[i] == ' ' {
		i++
	}
	return i
}

// maskWord shows guessed letters and spaces, and _ for the rest
func maskWord(word []rune, cursor int) string {
	var b strings.Builder
	for i, r := range word {
		switch {
		case r == ' ':
			b.WriteRune(' ')
		case i < cursor:
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	return b.String()
}
