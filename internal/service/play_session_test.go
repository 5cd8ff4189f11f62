package service

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wordmemo/internal/audio"
	"wordmemo/internal/models"
)

type playFixture struct {
	play  *PlaySession
	sched *fakeScheduler
	cues  *recordingCues
}

func newPlayFixture(t *testing.T, bank models.WordBank) *playFixture {
	t.Helper()
	f := &playFixture{sched: &fakeScheduler{}, cues: &recordingCues{}}
	f.play = NewPlaySession(PlayOptions{
		Scheduler: f.sched,
		Rand:      identityRand{},
		Cues:      f.cues,
	})
	f.play.Reset(bank)
	return f
}

// guessWord types every non-space letter of the current revealed word
func (f *playFixture) guessWord(t *testing.T) {
	t.Helper()
	snap := f.play.Snapshot()
	require.Equal(t, models.PlayReady, snap.State)
	word := snap.Word
	f.play.Ready()
	for _, r := range word {
		if r != ' ' {
			f.play.Guess(r)
		}
	}
}

// next fires the word-complete delay
func (f *playFixture) next(t *testing.T) {
	t.Helper()
	require.Equal(t, models.PlayWordComplete, f.play.State())
	pending := f.sched.pending()
	require.Len(t, pending, 1)
	assert.Equal(t, DefaultWordCompleteDelay, pending[0].d)
	f.sched.fireNext()
}

func TestPlayResetWithoutWordsIsIdle(t *testing.T) {
	f := newPlayFixture(t, nil)

	snap := f.play.Snapshot()
	assert.Equal(t, models.PlayIdle, snap.State)
	assert.Equal(t, MsgNoWords, snap.Message)

	f.play.Ready()
	f.play.Guess('a')
	f.play.Hint()
	assert.Equal(t, models.PlayIdle, f.play.State())
	assert.Empty(t, f.sched.pending())
}

func TestPlayReadyRevealsThenHides(t *testing.T) {
	f := newPlayFixture(t, bankOf("Cat"))

	snap := f.play.Snapshot()
	assert.Equal(t, models.PlayReady, snap.State)
	assert.Equal(t, "cat", snap.MaskedWord)
	assert.Equal(t, "cat", snap.Word)
	assert.Equal(t, "meaning of Cat", snap.Meaning)
	assert.Equal(t, 1, snap.WordNumber)
	assert.Equal(t, 1, snap.TotalWords)
	assert.Equal(t, HintBudget, snap.HintsLeft)

	f.play.Ready()
	snap = f.play.Snapshot()
	assert.Equal(t, models.PlayGuessing, snap.State)
	assert.Equal(t, "___", snap.MaskedWord)
	assert.Empty(t, snap.Word)
	assert.Empty(t, snap.Meaning, "meaning is hidden while guessing")
	assert.Equal(t, 60, snap.Countdown)

	pending := f.sched.pending()
	require.Len(t, pending, 1)
	assert.Equal(t, time.Second, pending[0].d)
}

func TestPlayGuessSkipsSpaces(t *testing.T) {
	f := newPlayFixture(t, bankOf("ice cream", "other"))
	f.play.Ready()

	f.play.Guess('I')
	assert.Equal(t, "i__ _____", f.play.Snapshot().MaskedWord)
	f.play.Guess('c')
	f.play.Guess('e')
	// The cursor jumps over the space straight to "c"
	assert.Equal(t, "ice _____", f.play.Snapshot().MaskedWord)

	f.play.Guess(' ')
	snap := f.play.Snapshot()
	assert.Equal(t, 1, snap.WordErrors, "a space is never the expected letter")

	for _, r := range "cream" {
		f.play.Guess(r)
	}
	snap = f.play.Snapshot()
	assert.Equal(t, models.PlayWordComplete, snap.State)
	assert.Equal(t, "ice cream", snap.MaskedWord)
	assert.Equal(t, 1, snap.Score)
	assert.Equal(t, `Congratulations! You guessed "ICE CREAM" correctly!`, snap.Message)
}

func TestPlayWrongGuess(t *testing.T) {
	f := newPlayFixture(t, bankOf("cat"))
	f.play.Ready()

	f.play.Guess('x')
	snap := f.play.Snapshot()
	assert.Equal(t, 1, snap.WordErrors)
	assert.Equal(t, 1, snap.SessionErrors)
	assert.Equal(t, `Oops! "X" is not the correct letter for this position. Errors: 1/5`, snap.Message)
	assert.Equal(t, []audio.Cue{audio.CueBeep}, f.cues.played())
}

func TestPlayGuessIgnoredOutsideGuessing(t *testing.T) {
	f := newPlayFixture(t, bankOf("cat"))

	f.play.Guess('x')
	f.play.Hint()
	snap := f.play.Snapshot()
	assert.Equal(t, models.PlayReady, snap.State)
	assert.Zero(t, snap.SessionErrors)
	assert.Equal(t, HintBudget, snap.HintsLeft)
}

func TestPlayAdvancesAfterDelay(t *testing.T) {
	f := newPlayFixture(t, bankOf("cat", "dog"))
	f.guessWord(t)

	// Guesses during the completion delay are ignored
	f.play.Guess('z')
	assert.Zero(t, f.play.Snapshot().SessionErrors)

	f.next(t)
	snap := f.play.Snapshot()
	assert.Equal(t, models.PlayReady, snap.State)
	assert.Equal(t, "dog", snap.Word)
	assert.Equal(t, 2, snap.WordNumber)
	assert.Equal(t, `Next word: "meaning of dog"`, snap.Message)
	assert.Zero(t, snap.WordErrors)
}

func TestPlayFiveWrongGuessesEndSession(t *testing.T) {
	f := newPlayFixture(t, bankOf("cat", "dog", "owl"))
	results := make(chan models.SessionResult, 1)
	f.play.OnSessionOver(func(r models.SessionResult) { results <- r })

	f.play.Ready()
	for i := 0; i < MaxWordErrors; i++ {
		f.play.Guess('z')
	}

	snap := f.play.Snapshot()
	assert.Equal(t, models.PlaySessionOver, snap.State)
	assert.Equal(t, models.RatingBad, snap.Rating)
	assert.Equal(t, "cat", snap.Word, "the answer is revealed")
	assert.Equal(t, `Game Over! The word was "CAT".`, snap.Message)
	assert.Empty(t, f.sched.pending())

	cues := f.cues.played()
	assert.Equal(t, audio.CueDuck, cues[len(cues)-1])
	assert.Len(t, cues, MaxWordErrors+1)

	select {
	case r := <-results:
		assert.True(t, r.EndedEarly)
		assert.Less(t, r.Score, r.TotalWords)
		assert.Equal(t, models.RatingBad, r.Rating)
	case <-time.After(time.Second):
		t.Fatal("session over hook was not called")
	}

	f.play.Guess('c')
	assert.Equal(t, models.PlaySessionOver, f.play.State())
}

func TestPlayRatings(t *testing.T) {
	tests := []struct {
		name     string
		errors   int
		hint     bool
		wantRate models.Rating
		wantCue  audio.Cue
	}{
		{name: "perfect", wantRate: models.RatingPerfect, wantCue: audio.CueFanfare},
		{name: "excellent with a hint", hint: true, wantRate: models.RatingExcellent, wantCue: audio.CueApplause},
		{name: "good", errors: 2, wantRate: models.RatingGood, wantCue: audio.CueBell},
		{name: "average", errors: 4, wantRate: models.RatingAverage, wantCue: audio.CueCar},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newPlayFixture(t, bankOf("cat", "dog", "owl"))

			for i := 0; i < 3; i++ {
				snap := f.play.Snapshot()
				f.play.Ready()
				if i == 0 {
					if tt.hint {
						f.play.Hint()
					}
					// Spread errors over words so none reaches the per-word limit
					for e := 0; e < tt.errors; e++ {
						f.play.Guess('z')
					}
				}
				for _, r := range snap.Word {
					f.play.Guess(r)
				}
				if i < 2 {
					f.next(t)
				}
			}

			snap := f.play.Snapshot()
			assert.Equal(t, models.PlaySessionOver, snap.State)
			assert.Equal(t, 3, snap.Score)
			assert.Equal(t, tt.wantRate, snap.Rating)
			cues := f.cues.played()
			assert.Equal(t, tt.wantCue, cues[len(cues)-1])
		})
	}
}

func TestRate(t *testing.T) {
	tests := []struct {
		score, total, errors, hints int
		want                        models.Rating
	}{
		{3, 3, 0, 0, models.RatingPerfect},
		{3, 3, 0, 2, models.RatingExcellent},
		{3, 3, 1, 0, models.RatingGood},
		{3, 3, 2, 5, models.RatingGood},
		{3, 3, 3, 0, models.RatingAverage},
		{3, 3, 4, 0, models.RatingAverage},
		{3, 3, 5, 0, models.RatingBad},
		{2, 3, 0, 0, models.RatingBad},
		{0, 0, 0, 0, models.RatingBad},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Rate(tt.score, tt.total, tt.errors, tt.hints),
			"Rate(%d, %d, %d, %d)", tt.score, tt.total, tt.errors, tt.hints)
	}
}

func TestPlayHint(t *testing.T) {
	f := newPlayFixture(t, bankOf("cat"))
	f.play.Ready()

	f.play.Hint()
	snap := f.play.Snapshot()
	assert.Equal(t, "meaning of cat", snap.Meaning)
	assert.Equal(t, HintBudget-1, snap.HintsLeft)
	assert.Equal(t, 1, snap.HintsUsed)

	// The meaning is already visible, so another click costs nothing
	f.play.Hint()
	assert.Equal(t, HintBudget-1, f.play.Snapshot().HintsLeft)
}

func TestPlayHintWithEmptyBudgetEndsSession(t *testing.T) {
	f := newPlayFixture(t, bankOf("a", "b", "c", "d", "e", "f"))

	for i := 0; i < HintBudget; i++ {
		f.play.Ready()
		f.play.Hint()
		snap := f.play.Snapshot()
		f.play.Guess(rune(snap.Meaning[len(snap.Meaning)-1]))
		f.next(t)
	}
	assert.Zero(t, f.play.Snapshot().HintsLeft)

	f.play.Ready()
	f.play.Hint()
	snap := f.play.Snapshot()
	assert.Equal(t, models.PlaySessionOver, snap.State)
	assert.Equal(t, models.RatingBad, snap.Rating)
	assert.Equal(t, 5, snap.Score)
}

func TestPlayHintAfterLastHintEndsSession(t *testing.T) {
	f := newPlayFixture(t, bankOf("a", "b", "c", "d", "e", "f"))

	for i := 0; i < HintBudget-1; i++ {
		f.play.Ready()
		f.play.Hint()
		snap := f.play.Snapshot()
		f.play.Guess(rune(snap.Meaning[len(snap.Meaning)-1]))
		f.next(t)
	}

	f.play.Ready()
	f.play.Hint()
	snap := f.play.Snapshot()
	assert.Zero(t, snap.HintsLeft)
	assert.NotEmpty(t, snap.Meaning)

	// The meaning is still showing, but the budget is spent
	f.play.Hint()
	snap = f.play.Snapshot()
	assert.Equal(t, models.PlaySessionOver, snap.State)
	assert.Equal(t, HintBudget-1, snap.Score)
}

func TestPlayCountdownSkipsWord(t *testing.T) {
	f := newPlayFixture(t, bankOf("cat", "dog"))
	f.play.Ready()

	f.sched.fireN(59)
	assert.Equal(t, 1, f.play.Snapshot().Countdown)

	f.sched.fireNext()
	snap := f.play.Snapshot()
	assert.Equal(t, models.PlayReady, snap.State)
	assert.Equal(t, "dog", snap.Word)
	assert.Equal(t, 1, snap.SessionErrors)
	assert.Zero(t, snap.WordErrors)
	assert.True(t, strings.HasPrefix(snap.Message, `Time's up! The word was "CAT".`))
	assert.Empty(t, f.sched.pending(), "no countdown while a word is revealed")

	f.play.Ready()
	f.sched.fireN(60)
	snap = f.play.Snapshot()
	assert.Equal(t, models.PlaySessionOver, snap.State)
	assert.Equal(t, 2, snap.SessionErrors)
	assert.Equal(t, "dog", snap.Word)
	assert.Equal(t, models.RatingBad, snap.Rating)
}

func TestPlayStaleTimerIsDropped(t *testing.T) {
	f := newPlayFixture(t, bankOf("cat", "dog"))
	f.play.Ready()
	tick := f.sched.pending()[0]

	for _, r := range "cat" {
		f.play.Guess(r)
	}
	require.True(t, tick.stopped, "completing a word cancels the countdown")

	// A callback that slipped past Stop must not change the session
	tick.fn()
	snap := f.play.Snapshot()
	assert.Equal(t, models.PlayWordComplete, snap.State)
	assert.Zero(t, snap.SessionErrors)
}

func TestPlayCloseStopsTimers(t *testing.T) {
	f := newPlayFixture(t, bankOf("cat"))
	f.play.Ready()
	tick := f.sched.pending()[0]

	f.play.Close()
	assert.Empty(t, f.sched.pending())
	tick.fn()
	f.play.Guess('c')
	assert.Equal(t, "___", f.play.Snapshot().MaskedWord)

	f.play.Reset(bankOf("dog"))
	assert.Equal(t, models.PlayReady, f.play.State())
}

func TestPlayResetZeroesCounters(t *testing.T) {
	f := newPlayFixture(t, bankOf("cat", "dog"))
	f.play.Ready()
	f.play.Hint()
	f.play.Guess('z')

	f.play.Reset(bankOf("cat", "dog"))
	snap := f.play.Snapshot()
	assert.Equal(t, models.PlayReady, snap.State)
	assert.Zero(t, snap.SessionErrors)
	assert.Zero(t, snap.Score)
	assert.Equal(t, HintBudget, snap.HintsLeft)
	assert.Empty(t, f.sched.pending())
}

func TestPlayVisitsEveryWordOnce(t *testing.T) {
	bank := bankOf("alpha", "bravo", "charlie", "delta", "echo", "fox trot", "golf")
	sched := &fakeScheduler{}
	play := NewPlaySession(PlayOptions{Scheduler: sched})
	play.Reset(bank)

	seen := map[string]bool{}
	for play.State() != models.PlaySessionOver {
		snap := play.Snapshot()
		require.Equal(t, models.PlayReady, snap.State)
		require.False(t, seen[snap.Word], "word %q visited twice", snap.Word)
		seen[snap.Word] = true

		play.Ready()
		for _, r := range snap.Word {
			if r != ' ' {
				play.Guess(r)
			}
		}
		if play.State() == models.PlayWordComplete {
			sched.fireNext()
		}
	}

	assert.Len(t, seen, len(bank))
	assert.Equal(t, models.RatingPerfect, play.Snapshot().Rating)
}
