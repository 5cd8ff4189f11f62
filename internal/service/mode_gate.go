package service

import (
	"log"
	"slices"
	"sync"

	"wordmemo/internal/models"
	"wordmemo/internal/repository"
	"wordmemo/internal/security"
	"wordmemo/internal/utils"
)

// ModeGate switches one client between Teacher and Play mode.
// Leaving Play requires the teacher PIN; the first switch to Play asks for one.
// There is no attempt limit on PIN entry.
type ModeGate struct {
	mu        sync.Mutex
	store     *repository.WordStore
	hashPins  bool
	mode      models.Mode
	prompt    models.PinPrompt
	listeners []func(mode models.Mode)
}

// NewModeGate creates a gate. Clients start in Play when a PIN exists, so a
// new session cannot skip the PIN check.
func NewModeGate(store *repository.WordStore, hashPins bool) *ModeGate {
	mode := models.ModeTeacher
	if store.LoadPin() != nil {
		mode = models.ModePlay
	}
	return &ModeGate{store: store, hashPins: hashPins, mode: mode}
}

// OnModeChange registers a listener called after the mode changes, outside the gate lock
func (g *ModeGate) OnModeChange(fn func(mode models.Mode)) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.listeners = append(g.listeners, fn)
}

// Mode returns the current mode
func (g *ModeGate) Mode() models.Mode {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.mode
}

// Status returns the mode, open prompt and whether a PIN exists
func (g *ModeGate) Status() models.ModeStatus {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.statusLocked()
}

func (g *ModeGate) statusLocked() models.ModeStatus {
	return models.ModeStatus{
		Mode:   g.mode,
		Prompt: g.prompt,
		PinSet: g.store.LoadPin() != nil,
	}
}

// RequestPlay enters Play, or opens the set-PIN prompt when no PIN exists
func (g *ModeGate) RequestPlay() models.ModeStatus {
	g.mu.Lock()
	if g.mode == models.ModePlay {
		status := g.statusLocked()
		g.mu.Unlock()
		return status
	}
	if g.store.LoadPin() == nil {
		g.prompt = models.PromptSetPin
		status := g.statusLocked()
		g.mu.Unlock()
		return status
	}
	return g.switchTo(models.ModePlay)
}

// SubmitNewPin stores a new PIN and enters Play. A too-short PIN keeps the prompt open.
func (g *ModeGate) SubmitNewPin(pin string) (models.ModeStatus, error) {
	g.mu.Lock()
	if g.prompt != models.PromptSetPin {
		status := g.statusLocked()
		g.mu.Unlock()
		return status, ErrNoPrompt
	}

	pin, err := utils.ValidatePin(pin)
	if err != nil {
		status := g.statusLocked()
		g.mu.Unlock()
		return status, err
	}

	stored := pin
	if g.hashPins {
		hashed, err := security.HashPin(pin)
		if err != nil {
			// Fall back to storing the plain PIN rather than blocking the switch
			log.Printf("Warning: %v", err)
		} else {
			stored = hashed
		}
	}
	g.store.SavePin(&stored)
	return g.switchTo(models.ModePlay), nil
}

// RequestTeacher opens the PIN prompt when in Play
func (g *ModeGate) RequestTeacher() models.ModeStatus {
	g.mu.Lock()
	if g.mode == models.ModeTeacher {
		status := g.statusLocked()
		g.mu.Unlock()
		return status
	}
	if g.store.LoadPin() == nil {
		// The PIN was cleared by an operator; nothing to check
		return g.switchTo(models.ModeTeacher)
	}
	g.prompt = models.PromptValidatePin
	status := g.statusLocked()
	g.mu.Unlock()
	return status
}

// SubmitPin returns to Teacher when pin matches the stored PIN.
// A mismatch keeps the prompt open and returns ErrIncorrectPin.
func (g *ModeGate) SubmitPin(pin string) (models.ModeStatus, error) {
	g.mu.Lock()
	if g.prompt != models.PromptValidatePin {
		status := g.statusLocked()
		g.mu.Unlock()
		return status, ErrNoPrompt
	}

	stored := g.store.LoadPin()
	if stored == nil {
		return g.switchTo(models.ModeTeacher), nil
	}
	if !security.MatchPin(*stored, pin) {
		status := g.statusLocked()
		g.mu.Unlock()
		return status, ErrIncorrectPin
	}
	return g.switchTo(models.ModeTeacher), nil
}

// Cancel closes any open prompt, leaving the mode unchanged
func (g *ModeGate) Cancel() models.ModeStatus {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.prompt = models.PromptNone
	return g.statusLocked()
}

// switchTo must be called with g.mu held; it releases the lock before notifying listeners
func (g *ModeGate) switchTo(mode models.Mode) models.ModeStatus {
	changed := g.mode != mode
	g.mode = mode
	g.prompt = models.PromptNone
	status := g.statusLocked()
	listeners := slices.Clone(g.listeners)
	g.mu.Unlock()

	if changed {
		for _, fn := range listeners {
			fn(mode)
		}
	}
	return status
}
