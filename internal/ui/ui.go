// Package ui provides the terminal user interface using Bubble Tea.
package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-astroclock/internal/astro"
	"github.com/litescript/ls-astroclock/internal/chart"
	"github.com/litescript/ls-astroclock/internal/event"
	"github.com/litescript/ls-astroclock/internal/position"
	"github.com/litescript/ls-astroclock/internal/search"
	"github.com/litescript/ls-astroclock/internal/state"
	"github.com/litescript/ls-astroclock/internal/version"
)

const promptText = "> "

var zodiacCycle = []astro.Zodiac{
	astro.ZodiacTropical,
	astro.ZodiacRaman,
	astro.ZodiacLahiri,
	astro.ZodiacFaganBradley,
}

var (
	titleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#9D4EDD")).Bold(true)
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("60"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#E84A27"))
	accentStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#7B2CBF"))
	promptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#9D4EDD"))
)

// Msg types for Bubble Tea
type (
	// AnimTickMsg drives the spinner while a search runs.
	AnimTickMsg time.Time

	// searchResultMsg carries a finished search back to the model.
	searchResultMsg struct {
		query   string
		forward bool
		from    float64
		result  search.Result
		err     error
	}
)

// Model is the root Bubble Tea model.
type Model struct {
	// Dependencies
	state     *state.Manager
	positions *position.Service
	searcher  *search.Searcher

	// UI state
	input     textinput.Model
	width     int
	height    int
	ready     bool
	searching bool
	animTick  int
	parseErr  *event.ParseError
	statusMsg string

	now func() time.Time
}

// New creates a new root UI model.
func New(stateMgr *state.Manager, positions *position.Service, opts search.Options) Model {
	ti := textinput.New()
	ti.Placeholder = "moon in leo and not mercury rx"
	ti.Prompt = promptText
	ti.PromptStyle = promptStyle
	ti.CharLimit = 256
	ti.Focus()

	if positions == nil {
		positions = position.NewService(nil)
	}
	return Model{
		state:     stateMgr,
		positions: positions,
		searcher:  search.New(opts),
		input:     ti,
		now:       time.Now,
	}
}

// Run starts the TUI and blocks until it exits.
func Run(stateMgr *state.Manager, positions *position.Service, opts search.Options) error {
	p := tea.NewProgram(New(stateMgr, positions, opts), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.input.Width = max(msg.Width-len(promptText)-4, 10)
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			return m, tea.Quit

		case key.Matches(msg, keys.Search):
			return m.submit()

		case key.Matches(msg, keys.Next):
			return m.continueSearch(true)

		case key.Matches(msg, keys.Prev):
			return m.continueSearch(false)

		case key.Matches(msg, keys.Now):
			m.state.SetJD(astro.JulianDay(m.now()))
			m.statusMsg = ""
			return m, nil

		case key.Matches(msg, keys.Zodiac):
			m.state.SetZodiac(nextZodiac(m.state.Context().Zodiac))
			return m, nil

		case key.Matches(msg, keys.Helio):
			m.state.SetHeliocentric(!m.state.Context().Heliocentric)
			return m, nil
		}

		// Pass remaining keys to text input
		before := m.input.Value()
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		if m.input.Value() != before {
			m.parseErr = nil
		}
		return m, cmd

	case searchResultMsg:
		m.searching = false
		m.state.RecordSearch(msg.query, msg.forward, msg.from, msg.result, msg.err)
		if msg.err != nil {
			if errors.Is(msg.err, search.ErrTimeout) {
				m.statusMsg = "No occurrence found in time"
			} else {
				m.statusMsg = msg.err.Error()
			}
			return m, nil
		}
		m.state.SetJD(msg.result.Start)
		m.statusMsg = fmt.Sprintf("%s: %s to %s", msg.query,
			formatJD(msg.result.Start), formatJD(msg.result.End))
		return m, nil

	case AnimTickMsg:
		if m.searching {
			m.animTick++
			return m, animTickCmd()
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// submit parses the prompt and searches forward from the chart time.
func (m Model) submit() (tea.Model, tea.Cmd) {
	q := strings.TrimSpace(m.input.Value())
	if q == "" || m.searching {
		return m, nil
	}
	ev, err := event.Parse(q)
	if err != nil {
		var perr *event.ParseError
		if errors.As(err, &perr) {
			m.parseErr = perr
		} else {
			m.statusMsg = err.Error()
		}
		return m, nil
	}
	m.parseErr = nil
	return m.startSearch(ev, m.state.JD(), true)
}

// continueSearch repeats the last successful search from just past its
// result, forward from the end or backward from the start.
func (m Model) continueSearch(forward bool) (tea.Model, tea.Cmd) {
	if m.searching {
		return m, nil
	}
	snap := m.state.Snapshot()
	if snap.Last == nil || snap.Query == "" {
		m.statusMsg = "No previous search"
		return m, nil
	}
	ev, err := event.Parse(snap.Query)
	if err != nil {
		m.statusMsg = err.Error()
		return m, nil
	}
	return m.startSearch(ev, snap.Last.Resume(forward), forward)
}

func (m Model) startSearch(ev *event.Event, from float64, forward bool) (tea.Model, tea.Cmd) {
	m.searching = true
	m.statusMsg = ""
	return m, tea.Batch(m.searchCmd(ev, from, forward), animTickCmd())
}

// searchCmd runs the search off the UI goroutine.
func (m Model) searchCmd(ev *event.Event, from float64, forward bool) tea.Cmd {
	view := m.positions.View(m.state.Context())
	searcher := m.searcher
	return func() tea.Msg {
		res, err := searcher.Search(context.Background(), from, event.Bind(ev, view), forward)
		return searchResultMsg{query: ev.String(), forward: forward, from: from, result: res, err: err}
	}
}

func nextZodiac(z astro.Zodiac) astro.Zodiac {
	for i, c := range zodiacCycle {
		if c == z {
			return zodiacCycle[(i+1)%len(zodiacCycle)]
		}
	}
	return zodiacCycle[0]
}

func formatJD(jd float64) string {
	return astro.Time(jd).Format("2006-01-02 15:04")
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString(m.input.View())
	b.WriteString("\n")
	if m.parseErr != nil {
		pad := strings.Repeat(" ", len(promptText))
		b.WriteString(pad + errorStyle.Render(m.parseErr.Caret()) + "\n")
		b.WriteString(pad + errorStyle.Render(m.parseErr.Msg) + "\n")
	}
	b.WriteString(m.renderStatus())
	b.WriteString("\n\n")

	view := m.positions.View(m.state.Context())
	chart.WriteTable(&b, chart.Compute(view, m.state.JD()), true)

	b.WriteString("\n")
	b.WriteString(m.renderFooter())
	return b.String()
}

func (m Model) renderHeader() string {
	title := "ls-astroclock"
	var b strings.Builder
	b.WriteString("\n  ")
	runes := []rune(title)
	for col, r := range runes {
		style := lipgloss.NewStyle().Foreground(lipgloss.Color(gradientColor(col, 0, len(runes), 1))).Bold(true)
		b.WriteString(style.Render(string(r)))
	}
	b.WriteString(dimStyle.Render(fmt.Sprintf("  v%s", version.Version)))
	b.WriteString("\n\n")
	return b.String()
}

func (m Model) renderStatus() string {
	if m.searching {
		spinnerFrames := []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}
		spinner := spinnerFrames[m.animTick%len(spinnerFrames)]
		return accentStyle.Render(spinner) + " " + m.renderShimmerText("Searching...")
	}
	if m.statusMsg != "" {
		if m.state.Snapshot().LastError != nil {
			return errorStyle.Render(m.statusMsg)
		}
		return titleStyle.Render(m.statusMsg)
	}
	return dimStyle.Render("Type a query and press enter")
}

func (m Model) renderFooter() string {
	var parts []string
	for _, k := range keys.bindings() {
		h := k.Help()
		parts = append(parts, h.Key+": "+h.Desc)
	}
	return "  " + dimStyle.Render(strings.Join(parts, " | "))
}

func animTickCmd() tea.Cmd {
	return tea.Tick(80*time.Millisecond, func(t time.Time) tea.Msg {
		return AnimTickMsg(t)
	})
}

// gradientColor returns a hex color for a position in the title gradient:
// blue to purple to magenta to pink, fading toward the bottom.
func gradientColor(col, row, width, height int) string {
	xRatio := float64(col) / float64(width)
	yRatio := float64(row) / float64(height)

	var r, g, b float64
	switch {
	case xRatio < 0.33:
		t := xRatio / 0.33
		r = 59 + t*(139-59)
		g = 130 + t*(92-130)
		b = 246
	case xRatio < 0.66:
		t := (xRatio - 0.33) / 0.33
		r = 139 + t*(217-139)
		g = 92 + t*(70-92)
		b = 246 + t*(239-246)
	default:
		t := (xRatio - 0.66) / 0.34
		r = 217 + t*(236-217)
		g = 70 + t*(72-70)
		b = 239 + t*(153-239)
	}

	brightness := 1.0 - (yRatio * 0.5)
	clamp := func(v float64) int {
		return min(max(int(v*brightness), 0), 255)
	}
	return fmt.Sprintf("#%02X%02X%02X", clamp(r), clamp(g), clamp(b))
}

// renderShimmerText renders text with a subtle moving shine effect.
func (m Model) renderShimmerText(text string) string {
	runes := []rune(text)
	if len(runes) == 0 {
		return ""
	}

	pos := m.animTick % (len(runes) + 8)

	var result strings.Builder
	for i, r := range runes {
		dist := i - pos + 4
		if dist < 0 {
			dist = -dist
		}

		var r8, g8, b8 int
		switch {
		case dist <= 1:
			r8, g8, b8 = 180, 160, 220
		case dist <= 3:
			r8, g8, b8 = 140, 120, 180
		case dist <= 5:
			r8, g8, b8 = 110, 90, 150
		default:
			r8, g8, b8 = 80, 70, 120
		}

		style := lipgloss.NewStyle().Foreground(lipgloss.Color(fmt.Sprintf("#%02X%02X%02X", r8, g8, b8)))
		result.WriteString(style.Render(string(r)))
	}
	return result.String()
}
