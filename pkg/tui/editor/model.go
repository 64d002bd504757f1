package editor

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/v2/textarea"
	"github.com/charmbracelet/bubbles/v2/viewport"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/muesli/reflow/wordwrap"

	"tableflip.dev/dreem/pkg/ai"
	"tableflip.dev/dreem/pkg/app"
	"tableflip.dev/dreem/pkg/session"
	"tableflip.dev/dreem/pkg/tui/theme"
)

type tab int

const (
	tabEntry tab = iota
	tabLuna
)

const layoutHeader = "Monday, January 2, 2006"

// chromeRows is the number of rows above the text area: header and tab bar.
const chromeRows = 2

// Model is the full-screen editor for one journal day. It owns the edit
// session while mounted and routes every leave attempt through the
// session state machine.
type Model struct {
	svc    *app.Service
	client *ai.Client
	guard  *session.Guard
	th     theme.Theme

	day      app.Day
	baseline session.Baseline
	nav      session.State

	ta      textarea.Model
	vp      viewport.Model
	active  tab
	aiText  string
	loading bool

	width  int
	height int

	status string
	errMsg string

	quitting bool
}

// interpretedMsg carries an async interpretation result, tagged with the day
// it was requested for so stale answers can be discarded.
type interpretedMsg struct {
	dateKey string
	answer  string
	err     error
}

// New builds the editor for a loaded day and takes ownership of the guard.
func New(svc *app.Service, client *ai.Client, guard *session.Guard, day app.Day, th theme.Theme) *Model {
	ta := textarea.New()
	ta.Placeholder = "Describe your dream in as much detail as you wish…"
	ta.SetValue(day.Text)

	vp := viewport.New(viewport.WithWidth(1), viewport.WithHeight(1))

	m := &Model{
		svc:      svc,
		client:   client,
		guard:    guard,
		th:       th,
		day:      day,
		baseline: session.Baseline{Text: day.Text, AIResult: day.AIResult},
		ta:       ta,
		vp:       vp,
		aiText:   day.AIResult,
	}
	if day.FromDraft {
		// The draft is the last-persisted snapshot, so a resumed draft opens
		// clean; only further edits count as unsaved.
		m.status = "resumed draft"
	}
	m.syncGuard()
	return m
}

// Run starts the editor program and blocks until it exits.
func Run(svc *app.Service, client *ai.Client, guard *session.Guard, day app.Day, th theme.Theme) error {
	p := tea.NewProgram(New(svc, client, guard, day, th), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func (m *Model) Init() tea.Cmd {
	return m.ta.Focus()
}

func (m *Model) data() session.EntryData {
	return session.EntryData{DateKey: m.day.DateKey, Text: m.ta.Value(), AIResult: m.aiText}
}

// syncGuard recomputes dirtiness against the baseline and publishes it to
// both the shared guard and the navigation machine.
func (m *Model) syncGuard() {
	data := m.data()
	dirty := m.baseline.Dirty(data.Text, data.AIResult)
	m.guard.Update(dirty, data)
	m.nav, _ = session.Transition(m.nav, session.EditChanged{HasChanges: dirty, Data: data})
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.setSize(msg.Width, msg.Height)
		return m, nil

	case interpretedMsg:
		m.loading = false
		if msg.dateKey != m.day.DateKey {
			// An answer for a day this editor no longer owns; drop it.
			return m, nil
		}
		if msg.err != nil {
			m.errMsg = msg.err.Error()
			return m, nil
		}
		m.errMsg = ""
		m.aiText = msg.answer
		// The interpretation was persisted on arrival, so only the AI side
		// of the baseline moves; text dirtiness is untouched.
		m.baseline.RebaselineAI(msg.answer)
		m.syncGuard()
		m.active = tabLuna
		m.refreshLuna()
		m.status = "Luna answered"
		return m, nil

	case tea.KeyMsg:
		if m.nav.Phase == session.PhasePendingDecision {
			return m, m.handleDecisionKey(msg)
		}
		if cmd, handled := m.handleKey(msg); handled {
			return m, cmd
		}
	}

	if m.active == tabEntry {
		var cmd tea.Cmd
		m.ta, cmd = m.ta.Update(msg)
		m.syncGuard()
		return m, cmd
	}

	var cmd tea.Cmd
	m.vp, cmd = m.vp.Update(msg)
	return m, cmd
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	switch msg.String() {
	case "esc", "ctrl+c":
		return m.navigate("journal"), true
	case "ctrl+s":
		return m.save(), true
	case "ctrl+l":
		return m.askLuna(), true
	case "ctrl+x":
		return m.deleteDay(), true
	case "tab":
		if m.aiText != "" {
			if m.active == tabEntry {
				m.active = tabLuna
				m.refreshLuna()
			} else {
				m.active = tabEntry
			}
		}
		return nil, true
	}
	return nil, false
}

// navigate runs an outbound transition through the state machine and
// executes whatever it decides.
func (m *Model) navigate(target string) tea.Cmd {
	var effects []session.Effect
	m.nav, effects = session.Transition(m.nav, session.Navigate{Target: target})
	return m.execute(effects)
}

func (m *Model) handleDecisionKey(msg tea.KeyMsg) tea.Cmd {
	var decision session.Decision
	switch msg.String() {
	case "s":
		decision = session.DecisionSaveDraft
	case "d":
		decision = session.DecisionDiscard
	case "c", "esc":
		decision = session.DecisionCancel
	default:
		return nil
	}
	var effects []session.Effect
	m.nav, effects = session.Transition(m.nav, session.Decided{Decision: decision})
	return m.execute(effects)
}

func (m *Model) execute(effects []session.Effect) tea.Cmd {
	var cmds []tea.Cmd
	for _, effect := range effects {
		switch effect := effect.(type) {
		case session.BlockNavigation:
			// The decision overlay is drawn from nav.Phase; nothing to do.
		case session.PersistDraft:
			if err := m.svc.SaveDraft(context.Background(), effect.Data); err != nil {
				m.errMsg = fmt.Sprintf("draft not saved: %v", err)
				m.nav.Phase = session.PhaseDirty
				return nil
			}
		case session.ClearSession:
			m.guard.Clear()
		case session.AllowNavigation:
			m.quitting = true
			cmds = append(cmds, tea.Quit)
		}
	}
	return tea.Batch(cmds...)
}

func (m *Model) save() tea.Cmd {
	text := m.ta.Value()
	if err := m.svc.SaveFinal(context.Background(), m.day, text, m.aiText); err != nil {
		if !app.IsResidualDraft(err) {
			m.errMsg = err.Error()
			return nil
		}
		// Entry is durable; the stray draft stays masked until cleaned up.
		m.status = "saved (draft cleanup pending)"
	} else {
		m.status = "saved"
	}
	m.errMsg = ""
	m.baseline.Rebaseline(text, m.aiText)
	m.day.FromDraft = false
	m.syncGuard()
	return nil
}

func (m *Model) deleteDay() tea.Cmd {
	if err := m.svc.CommitDelete(context.Background(), m.day.DateKey); err != nil && !app.IsResidualDraft(err) {
		m.errMsg = err.Error()
		return nil
	}
	m.errMsg = ""
	m.ta.SetValue("")
	m.aiText = ""
	m.baseline = session.Baseline{}
	m.day.FromDraft = false
	m.syncGuard()
	m.status = "deleted"
	return nil
}

func (m *Model) askLuna() tea.Cmd {
	text := m.ta.Value()
	if strings.TrimSpace(text) == "" {
		m.status = "write your dream first"
		return nil
	}
	if strings.TrimSpace(m.aiText) != "" {
		// An analysis already exists; reopen it instead of spending a call.
		m.active = tabLuna
		m.refreshLuna()
		return nil
	}
	if m.loading {
		return nil
	}
	m.loading = true
	m.status = "asking Luna…"

	svc, client, day := m.svc, m.client, m.day
	return func() tea.Msg {
		answer, err := svc.Interpret(context.Background(), client, day, text)
		return interpretedMsg{dateKey: day.DateKey, answer: answer, err: err}
	}
}

func (m *Model) setSize(width, height int) {
	if width <= 0 {
		width = 80
	}
	if height <= 0 {
		height = 24
	}
	m.width = width
	m.height = height

	body := height - chromeRows - 1 // one footer row
	if body < 3 {
		body = 3
	}
	m.ta.SetWidth(width)
	m.ta.SetHeight(body)
	m.vp.SetWidth(width)
	m.vp.SetHeight(body)
	m.refreshLuna()
}

func (m *Model) refreshLuna() {
	w := m.width
	if w <= 0 {
		w = 80
	}
	m.vp.SetContent(wordwrap.String(m.aiText, w-2))
}

func (m *Model) View() (string, *tea.Cursor) {
	if m.quitting {
		return "", nil
	}

	header := m.th.Header.Render(m.day.Date.Format(layoutHeader))
	moonStr := m.th.Moon.Render(fmt.Sprintf("  %s %s", m.day.MoonPhaseEmoji, m.day.MoonPhase))
	headerRow := header + moonStr
	if m.day.FromDraft {
		headerRow += m.th.DraftTag.Render("  draft")
	}

	entryTab := m.th.Tab.Render("Entry")
	lunaTab := ""
	if m.active == tabEntry {
		entryTab = m.th.TabActive.Render("Entry")
	}
	if m.aiText != "" {
		lunaTab = m.th.Tab.Render("Luna")
		if m.active == tabLuna {
			lunaTab = m.th.TabActive.Render("Luna")
		}
	}
	tabRow := entryTab + lunaTab

	var body string
	var cursor *tea.Cursor
	if m.active == tabEntry {
		body = m.ta.View()
		if c := m.ta.Cursor(); c != nil {
			clone := *c
			clone.Position.Y += chromeRows
			cursor = &clone
		}
	} else {
		body = m.vp.View()
	}

	view := lipgloss.JoinVertical(lipgloss.Left, headerRow, tabRow, body, m.footer())

	if m.nav.Phase == session.PhasePendingDecision {
		return m.decisionOverlay(), nil
	}
	return view, cursor
}

func (m *Model) footer() string {
	if m.errMsg != "" {
		return m.th.Error.Render(m.errMsg)
	}
	help := "ctrl+s save · ctrl+l ask luna · ctrl+x delete · esc back"
	if m.status != "" {
		return m.th.Status.Render(m.status + "  " + help)
	}
	return m.th.Status.Render(help)
}

func (m *Model) decisionOverlay() string {
	t := m.th.Modal
	lines := []string{
		t.Title.Render("Unsaved changes"),
		"",
		t.Body.Render("You have unsaved work for " + m.day.DateKey + "."),
		"",
		t.Key.Render("[s]") + t.Body.Render(" save draft   ") +
			t.Key.Render("[d]") + t.Body.Render(" discard   ") +
			t.Key.Render("[c]") + t.Body.Render(" keep editing"),
	}
	box := t.Frame.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))

	w, h := m.width, m.height
	if w <= 0 {
		w = 80
	}
	if h <= 0 {
		h = 24
	}
	return lipgloss.Place(w, h, lipgloss.Center, lipgloss.Center, box)
}
