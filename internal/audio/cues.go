package audio

// Cue names a short sound effect played by the client
type Cue string

const (
	CueFanfare  Cue = "fanfare"
	CueApplause Cue = "applause"
	CueBell     Cue = "bell"
	CueCar      Cue = "car"
	CueDuck     Cue = "duck"
	CueBeep     Cue = "beep"
)

// CuePlayer plays cues without blocking the caller
type CuePlayer interface {
	Play(cue Cue)
}

// NopPlayer discards every cue
type NopPlayer struct{}

func (NopPlayer) Play(Cue) {}

// CueQueue buffers cues until a client collects them.
// When the buffer is full new cues are dropped.
type CueQueue struct {
	ch chan Cue
}

// NewCueQueue creates a queue holding up to size cues
func NewCueQueue(size int) *CueQueue {
	if size <= 0 {
		size = 16
	}
	return &CueQueue{ch: make(chan Cue, size)}
}

// Play enqueues cue, dropping it if the queue is full
func (q *CueQueue) Play(cue Cue) {
	select {
	case q.ch <- cue:
	default:
	}
}

// Drain returns and removes every queued cue
func (q *CueQueue) Drain() []Cue {
	cues := []Cue{}
	for {
		select {
		case cue := <-q.ch:
			cues = append(cues, cue)
		default:
			return cues
		}
	}
}
