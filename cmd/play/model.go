package main

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"wordmemo/internal/audio"
	"wordmemo/internal/models"
	"wordmemo/internal/service"
)

const refreshInterval = 200 * time.Millisecond

var (
	styleHeader  = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	styleWord    = lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Bold(true)
	styleMeaning = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	styleError   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	styleGood    = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	styleSubtle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	styleBox     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(1, 2)
)

var cueText = map[audio.Cue]string{
	audio.CueFanfare:  "fanfare!",
	audio.CueApplause: "applause!",
	audio.CueBell:     "ding!",
	audio.CueCar:      "vroom",
	audio.CueDuck:     "quack",
	audio.CueBeep:     "beep",
}

type tickMsg time.Time

// model drives one PlaySession from the keyboard and polls it for timer updates
type model struct {
	session *service.PlaySession
	cues    *audio.CueQueue
	words   func() models.WordBank
	snap    models.PlaySnapshot
	sounds  []audio.Cue
}

func newModel(session *service.PlaySession, cues *audio.CueQueue, words func() models.WordBank) model {
	return model{
		session: session,
		cues:    cues,
		words:   words,
		snap:    session.Snapshot(),
	}
}

func tick() tea.Cmd {
	return tea.Tick(refreshInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m model) Init() tea.Cmd {
	return tick()
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		m.refresh()
		return m, tick()

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyEnter:
			m.session.Ready()
		case tea.KeyCtrlR:
			m.session.Reset(m.words())
		case tea.KeyRunes:
			for _, r := range msg.Runes {
				if r == '?' {
					m.session.Hint()
					continue
				}
				m.session.Guess(r)
			}
		}
		m.refresh()
	}
	return m, nil
}

func (m *model) refresh() {
	m.snap = m.session.Snapshot()
	if played := m.cues.Drain(); len(played) > 0 {
		m.sounds = played
	}
}

func (m model) View() string {
	s := m.snap
	var b strings.Builder

	b.WriteString(styleHeader.Render("Word Memorizer"))
	b.WriteString("\n\n")

	if s.TotalWords == 0 {
		b.WriteString(styleError.Render(service.MsgNoWords))
		b.WriteString("\n\n")
		b.WriteString(styleSubtle.Render("esc: quit"))
		return styleBox.Render(b.String())
	}

	fmt.Fprintf(&b, "Word %d/%d   Score %d   Errors %d/%d   Hints left %d",
		s.WordNumber, s.TotalWords, s.Score, s.WordErrors, s.MaxWordErrors, s.HintsLeft)
	if s.State == models.PlayGuessing {
		fmt.Fprintf(&b, "   %ds", s.Countdown)
	}
	b.WriteString("\n\n")

	switch s.State {
	case models.PlayReady:
		b.WriteString(styleWord.Render(strings.ToUpper(s.Word)))
		b.WriteString("\n")
		b.WriteString(styleMeaning.Render(s.Meaning))
		b.WriteString("\n\nMemorize the word, then press enter.")
	case models.PlayGuessing, models.PlayWordComplete:
		b.WriteString(styleWord.Render(spaced(strings.ToUpper(s.MaskedWord))))
		if s.Meaning != "" {
			b.WriteString("\n")
			b.WriteString(styleMeaning.Render(s.Meaning))
		}
	case models.PlaySessionOver:
		if s.Word != "" {
			b.WriteString(styleWord.Render(strings.ToUpper(s.Word)))
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "Rating: %s", styleGood.Render(string(s.Rating)))
	}

	if s.Message != "" {
		b.WriteString("\n\n")
		b.WriteString(s.Message)
	}
	if len(m.sounds) > 0 {
		names := make([]string, 0, len(m.sounds))
		for _, cue := range m.sounds {
			names = append(names, cueText[cue])
		}
		b.WriteString("\n")
		b.WriteString(styleSubtle.Render("♪ " + strings.Join(names, " ")))
	}

	b.WriteString("\n\n")
	b.WriteString(styleSubtle.Render("letters: guess   ?: hint   enter: ready   ctrl+r: restart   esc: quit"))
	return styleBox.Render(b.String())
}

// spaced puts a space between letters so blanks are countable
func spaced(masked string) string {
	return strings.Join(strings.Split(masked, ""), " ")
}
