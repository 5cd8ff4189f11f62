package audio

import "testing"

func TestCueQueueDrain(t *testing.T) {
	q := NewCueQueue(4)
	q.Play(CueBeep)
	q.Play(CueDuck)

	got := q.Drain()
	if len(got) != 2 || got[0] != CueBeep || got[1] != CueDuck {
		t.Fatalf("Drain() = %v, want [beep duck]", got)
	}

	if again := q.Drain(); len(again) != 0 {
		t.Errorf("second Drain() = %v, want empty", again)
	}
}

func TestCueQueueDropsWhenFull(t *testing.T) {
	q := NewCueQueue(2)
	q.Play(CueBeep)
	q.Play(CueBeep)
	// Must not block
	q.Play(CueApplause)

	got := q.Drain()
	if len(got) != 2 {
		t.Fatalf("Drain() returned %d cues, want 2", len(got))
	}
	for _, cue := range got {
		if cue == CueApplause {
			t.Error("cue beyond capacity should have been dropped")
		}
	}
}
