package main

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	swisseph "github.com/wippyai/swisseph-wasm"
	"github.com/wippyai/swisseph-wasm/engine"
	"github.com/wippyai/swisseph-wasm/sweph"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	nameStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#04B575")).
			Bold(true)

	signStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262"))

	retroStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF8C00")).
			Bold(true)

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#7D56F4")).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF0000")).
			Bold(true)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262"))
)

type state int

const (
	stateLoading state = iota
	stateTable
	stateEditing
)

// ephemeris serializes the commands sharing one handle. Bubble Tea runs
// every command on its own goroutine and a SwissEph is not safe for
// concurrent use.
type ephemeris struct {
	mu  sync.Mutex
	swe *sweph.SwissEph
}

func (e *ephemeris) positions(ctx context.Context, jd float64, bodies []swisseph.Body) ([]positionRow, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return positions(ctx, e.swe, jd, bodies)
}

// close waits for the call in flight, if any.
func (e *ephemeris) close(ctx context.Context) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.swe.Close(ctx)
}

type model struct {
	opts    options
	log     *zap.Logger
	eph     *ephemeris
	version string

	state  state
	date   time.Time
	rows   []positionRow
	cursor int
	input  textinput.Model
	err    error

	// seq numbers compute requests; only the answer to the latest one is
	// shown. busy holds relative steps until it arrives.
	seq  int
	busy bool
}

type loadedMsg struct {
	eph     *ephemeris
	version string
	err     error
}

type positionsMsg struct {
	seq  int
	date time.Time
	rows []positionRow
	err  error
}

func newModel(opts options, log *zap.Logger) model {
	ti := textinput.New()
	ti.Placeholder = "2006-01-02T15:04"
	ti.CharLimit = 32
	ti.Width = 32

	return model{
		opts:  opts,
		log:   log,
		state: stateLoading,
		date:  opts.date,
		input: ti,
	}
}

func (m model) Init() tea.Cmd {
	return m.loadModule
}

func (m model) loadModule() tea.Msg {
	ctx := context.Background()
	swe, err := openEphemeris(ctx, m.opts.cfg, m.log)
	if err != nil {
		return loadedMsg{err: err}
	}
	version, err := swe.Version(ctx)
	if err != nil {
		swe.Close(ctx)
		return loadedMsg{err: err}
	}
	return loadedMsg{eph: &ephemeris{swe: swe}, version: version}
}

func (m *model) compute(date time.Time) tea.Cmd {
	m.seq++
	m.busy = true
	eph, bodies, seq := m.eph, m.opts.bodies, m.seq
	return func() tea.Msg {
		rows, err := eph.positions(context.Background(), sweph.JulianDay(date), bodies)
		return positionsMsg{seq: seq, date: date, rows: rows, err: err}
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, m.quit
		}
		if m.state == stateEditing {
			return m.updateEditing(msg)
		}
		return m.updateTable(msg)

	case loadedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.eph = msg.eph
		m.version = msg.version
		m.state = stateTable
		cmd := m.compute(m.date)
		return m, cmd

	case positionsMsg:
		if msg.seq != m.seq {
			return m, nil
		}
		m.busy = false
		m.err = msg.err
		if msg.err == nil {
			m.date = msg.date
			m.rows = msg.rows
			if m.cursor >= len(m.rows) {
				m.cursor = 0
			}
		}
		return m, nil
	}
	return m, nil
}

func (m model) updateTable(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc":
		return m, m.quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.rows)-1 {
			m.cursor++
		}
	case "enter", "/":
		if m.eph == nil {
			return m, nil
		}
		m.state = stateEditing
		m.input.SetValue(m.date.Format("2006-01-02T15:04"))
		m.input.CursorEnd()
		m.input.Focus()
		return m, textinput.Blink
	case "left", "h":
		cmd := m.step(-1)
		return m, cmd
	case "right", "l":
		cmd := m.step(1)
		return m, cmd
	case "[":
		cmd := m.stepHours(-1)
		return m, cmd
	case "]":
		cmd := m.stepHours(1)
		return m, cmd
	case "n":
		if m.eph == nil {
			return m, nil
		}
		cmd := m.compute(time.Now().UTC())
		return m, cmd
	}
	return m, nil
}

func (m model) updateEditing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.state = stateTable
		m.input.Blur()
		return m, nil
	case "enter":
		date, err := parseDate(m.input.Value(), m.date)
		if err != nil {
			m.err = err
			return m, nil
		}
		m.state = stateTable
		m.input.Blur()
		cmd := m.compute(date)
		return m, cmd
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *model) step(days int) tea.Cmd {
	if m.eph == nil || m.busy {
		return nil
	}
	return m.compute(m.date.AddDate(0, 0, days))
}

func (m *model) stepHours(hours int) tea.Cmd {
	if m.eph == nil || m.busy {
		return nil
	}
	return m.compute(m.date.Add(time.Duration(hours) * time.Hour))
}

func (m model) quit() tea.Msg {
	if m.eph != nil {
		m.eph.close(context.Background())
	}
	return tea.Quit()
}

func (m model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Swiss Ephemeris"))
	if m.version != "" {
		b.WriteString(" " + signStyle.Render(m.version))
	}
	b.WriteString("\n\n")

	if m.state == stateLoading {
		if m.err != nil {
			b.WriteString(errorStyle.Render("Error: "+m.err.Error()) + "\n\n")
			b.WriteString(helpStyle.Render("ctrl+c quit"))
			return b.String()
		}
		b.WriteString("Loading module...\n")
		return b.String()
	}

	jd := sweph.JulianDay(m.date)
	b.WriteString(fmt.Sprintf("%s  JD %.6f UT\n\n", m.date.Format("2006-01-02 15:04 MST"), jd))

	if m.state == stateEditing {
		b.WriteString("Date: " + m.input.View() + "\n\n")
	}

	for i, r := range m.rows {
		line := fmt.Sprintf("%-12s %11.6f°  %-18s %+9.6f°/d", r.name, r.lon, r.sign, r.speed)
		switch {
		case i == m.cursor:
			line = selectedStyle.Render("> " + line)
		default:
			line = "  " + nameStyle.Render(fmt.Sprintf("%-12s", r.name)) +
				fmt.Sprintf(" %11.6f°  ", r.lon) +
				signStyle.Render(fmt.Sprintf("%-18s", r.sign)) +
				fmt.Sprintf(" %+9.6f°/d", r.speed)
		}
		if r.speed < 0 {
			line += " " + retroStyle.Render("R")
		}
		b.WriteString(line + "\n")
	}

	if len(m.rows) > 0 {
		r := m.rows[m.cursor]
		b.WriteString(fmt.Sprintf("\n%s  latitude %+.6f°\n", nameStyle.Render(r.name), r.lat))
	}

	if m.err != nil {
		b.WriteString("\n" + errorStyle.Render("Error: "+m.err.Error()) + "\n")
	}

	b.WriteString("\n")
	if m.state == stateEditing {
		b.WriteString(helpStyle.Render("enter apply • esc cancel"))
	} else {
		b.WriteString(helpStyle.Render("↑/↓ select • ←/→ day • [/] hour • enter date • n now • q quit"))
	}
	return b.String()
}

func runInteractive(opts options) error {
	// zap output would tear the alternate screen.
	log := zap.NewNop()
	engine.SetLogger(log)
	sweph.SetLogger(log)

	p := tea.NewProgram(newModel(opts, log), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
