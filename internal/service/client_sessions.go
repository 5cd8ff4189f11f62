package service

import (
	"log"
	"sync"
	"time"

	"wordmemo/internal/audio"
	"wordmemo/internal/models"
	"wordmemo/internal/repository"
)

// ClientSession is the per-client state: its mode gate, play engine and
// pending audio cues
type ClientSession struct {
	ID    string
	Gate  *ModeGate
	Play  *PlaySession
	Cues  *audio.CueQueue
	debug bool

	mu       sync.Mutex
	lastSeen time.Time
}

func (cs *ClientSession) touch(now time.Time) {
	cs.mu.Lock()
	cs.lastSeen = now
	cs.mu.Unlock()
}

func (cs *ClientSession) idleSince() time.Time {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	return cs.lastSeen
}

// ClientSessionsConfig configures new client sessions
type ClientSessionsConfig struct {
	Play     PlayOptions
	HashPins bool
	// IdleTimeout is how long an unused session is kept
	IdleTimeout time.Duration
	// OnSessionOver is called, in its own goroutine, when a client's play session ends
	OnSessionOver func(sessionID string, result models.SessionResult)
	Debug         bool
}

// ClientSessions tracks the sessions of all connected clients
type ClientSessions struct {
	mu       sync.Mutex
	sessions map[string]*ClientSession
	teacher  *TeacherService
	store    *repository.WordStore
	cfg      ClientSessionsConfig
	now      func() time.Time
}

// NewClientSessions creates the session registry. Clients in Play restart
// their session whenever the word bank changes.
func NewClientSessions(teacher *TeacherService, store *repository.WordStore, cfg ClientSessionsConfig) *ClientSessions {
	if cfg.IdleTimeout <= 0 {
		cfg.IdleTimeout = 24 * time.Hour
	}
	c := &ClientSessions{
		sessions: make(map[string]*ClientSession),
		teacher:  teacher,
		store:    store,
		cfg:      cfg,
		now:      time.Now,
	}
	teacher.OnChange(func(uint64) {
		c.resetPlaying()
	})
	return c
}

// Get returns an existing session
func (c *ClientSessions) Get(id string) (*ClientSession, bool) {
	c.mu.Lock()
	cs, ok := c.sessions[id]
	c.mu.Unlock()
	if ok {
		cs.touch(c.now())
	}
	return cs, ok
}

// GetOrCreate returns the session for id, creating it if needed
func (c *ClientSessions) GetOrCreate(id string) *ClientSession {
	c.mu.Lock()
	cs, ok := c.sessions[id]
	if !ok {
		cs = c.newSession(id)
		c.sessions[id] = cs
	}
	c.mu.Unlock()

	cs.touch(c.now())
	if !ok && cs.Gate.Mode() == models.ModePlay {
		cs.Play.Reset(c.teacher.Words())
	}
	return cs
}

// Remove closes and forgets a session
func (c *ClientSessions) Remove(id string) {
	c.mu.Lock()
	cs, ok := c.sessions[id]
	delete(c.sessions, id)
	c.mu.Unlock()
	if ok {
		cs.Play.Close()
	}
}

// Len returns the number of tracked sessions
func (c *ClientSessions) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.sessions)
}

// CleanupExpired removes sessions idle for longer than the idle timeout
func (c *ClientSessions) CleanupExpired() int {
	cutoff := c.now().Add(-c.cfg.IdleTimeout)

	c.mu.Lock()
	var expired []*ClientSession
	for id, cs := range c.sessions {
		if cs.idleSince().Before(cutoff) {
			expired = append(expired, cs)
			delete(c.sessions, id)
		}
	}
	c.mu.Unlock()

	for _, cs := range expired {
		cs.Play.Close()
	}
	return len(expired)
}

// CloseAll stops every session's timers
func (c *ClientSessions) CloseAll() {
	c.mu.Lock()
	sessions := make([]*ClientSession, 0, len(c.sessions))
	for _, cs := range c.sessions {
		sessions = append(sessions, cs)
	}
	c.mu.Unlock()

	for _, cs := range sessions {
		cs.Play.Close()
	}
}

// newSession must be called with c.mu held
func (c *ClientSessions) newSession(id string) *ClientSession {
	cues := audio.NewCueQueue(16)
	opts := c.cfg.Play
	opts.Cues = cues

	cs := &ClientSession{
		ID:    id,
		Gate:  NewModeGate(c.store, c.cfg.HashPins),
		Play:  NewPlaySession(opts),
		Cues:  cues,
		debug: c.cfg.Debug,
	}

	cs.Gate.OnModeChange(func(mode models.Mode) {
		if mode == models.ModePlay {
			cs.Play.Reset(c.teacher.Words())
		} else {
			cs.Play.Close()
		}
		if cs.debug {
			log.Printf("[DEBUG] session %s switched to %s mode", cs.ID, mode)
		}
	})

	if c.cfg.OnSessionOver != nil {
		hook := c.cfg.OnSessionOver
		cs.Play.OnSessionOver(func(result models.SessionResult) {
			hook(cs.ID, result)
		})
	}
	return cs
}

func (c *ClientSessions) resetPlaying() {
	c.mu.Lock()
	var playing []*ClientSession
	for _, cs := range c.sessions {
		playing = append(playing, cs)
	}
	c.mu.Unlock()

	words := c.teacher.Words()
	for _, cs := range playing {
		if cs.Gate.Mode() == models.ModePlay {
			cs.Play.Reset(words)
		}
	}
}
