// Package app renders the interactive terminal: a scrolling transcript, a
// prompt line with ghost-text autocomplete and history recall, and the
// toggleable command reference panel.
package app

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/v2/textinput"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/muesli/reflow/wordwrap"

	"tableflip.dev/mycmd/pkg/terminal"
	"tableflip.dev/mycmd/pkg/tui/theme"
)

// asyncLinesMsg carries output produced outside the update loop, such as a
// resolved quote fetch.
type asyncLinesMsg []terminal.Line

// Model is the Bubble Tea root for the terminal UI.
type Model struct {
	session *terminal.Session
	theme   theme.Theme
	input   textinput.Model

	width  int
	height int

	// history recall state; -1 means live input.
	historyIndex int
	draft        string

	ghost string
}

// New constructs the root model around an existing session.
func New(session *terminal.Session) *Model {
	input := textinput.New()
	input.Prompt = ""
	input.Focus()

	m := &Model{
		session:      session,
		theme:        theme.Default(),
		input:        input,
		historyIndex: -1,
	}
	m.syncEcho()
	return m
}

// Run launches the Bubble Tea program and wires async session output into
// its message queue.
func Run(session *terminal.Session) error {
	m := New(session)
	p := tea.NewProgram(m, tea.WithAltScreen())
	session.SetNotify(func(lines []terminal.Line) {
		p.Send(asyncLinesMsg(lines))
	})
	_, err := p.Run()
	return err
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd { return nil }

// syncEcho masks input while the session is waiting for the secret word.
func (m *Model) syncEcho() {
	if m.session.Authenticated() {
		m.input.EchoMode = textinput.EchoNormal
	} else {
		m.input.EchoMode = textinput.EchoPassword
		m.input.EchoCharacter = '*'
	}
}

func (m *Model) refreshGhost() {
	m.ghost = m.session.Suggest(m.input.Value())
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch v := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = v.Width
		m.height = v.Height
		m.input.SetWidth(maxInt(1, m.width-lipgloss.Width(m.session.Prompt())-1))
		return m, nil

	case asyncLinesMsg:
		m.session.Append([]terminal.Line(v))
		return m, nil

	case tea.KeyMsg:
		switch v.String() {
		case "ctrl+c", "ctrl+d":
			return m, tea.Quit
		case "enter":
			value := m.input.Value()
			m.input.SetValue("")
			m.historyIndex = -1
			m.draft = ""
			m.ghost = ""
			m.session.Do(context.Background(), value)
			m.syncEcho()
			return m, nil
		case "tab":
			if m.ghost != "" {
				m.input.SetValue(m.input.Value() + m.ghost)
				m.input.CursorEnd()
				m.ghost = ""
			}
			return m, nil
		case "up":
			m.recall(-1)
			return m, nil
		case "down":
			m.recall(1)
			return m, nil
		}
	}

	var cmd tea.Cmd
	prev := m.input.Value()
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() != prev {
		m.historyIndex = -1
		m.refreshGhost()
	}
	return m, cmd
}

// recall steps through the persisted command history. Moving past the newest
// entry restores whatever was being typed.
func (m *Model) recall(delta int) {
	if !m.session.Authenticated() {
		return
	}
	hist := m.session.CommandHistory()
	if len(hist) == 0 {
		return
	}
	switch {
	case delta < 0:
		if m.historyIndex == -1 {
			m.draft = m.input.Value()
			m.historyIndex = len(hist) - 1
		} else if m.historyIndex > 0 {
			m.historyIndex--
		}
	case delta > 0:
		if m.historyIndex == -1 {
			return
		}
		m.historyIndex++
		if m.historyIndex >= len(hist) {
			m.historyIndex = -1
			m.input.SetValue(m.draft)
			m.input.CursorEnd()
			m.ghost = ""
			return
		}
	}
	m.input.SetValue(hist[m.historyIndex])
	m.input.CursorEnd()
	m.ghost = ""
}

// View implements tea.Model.
func (m *Model) View() (string, *tea.Cursor) {
	if m.width <= 0 || m.height <= 0 {
		return "initializing…", nil
	}

	contentWidth := m.width
	var helpPanel string
	if m.session.Authenticated() && m.session.HelpVisible() {
		helpPanel = m.renderHelp()
		if w := lipgloss.Width(helpPanel); w < m.width/2 {
			contentWidth = m.width - w - 1
		}
	}

	transcript := m.renderTranscript(contentWidth, m.height-1)
	promptLine, cursor := m.renderPrompt()

	body := transcript
	if helpPanel != "" {
		body = lipgloss.JoinHorizontal(lipgloss.Top,
			lipgloss.NewStyle().Width(contentWidth).Render(transcript),
			" ",
			helpPanel,
		)
	}

	return body + "\n" + promptLine, cursor
}

func (m *Model) renderTranscript(width, height int) string {
	st := m.theme.Screen
	var rendered []string
	for _, line := range m.session.Lines() {
		var out string
		switch line.Kind {
		case terminal.KindCommand:
			out = st.Prompt.Render(line.Prompt) + st.Command.Render(line.Text)
		case terminal.KindError:
			out = st.Error.Render(line.Text)
		default:
			out = st.Text.Render(line.Text)
		}
		wrapped := wordwrap.String(out, width)
		rendered = append(rendered, strings.Split(wrapped, "\n")...)
	}
	if len(rendered) > height {
		rendered = rendered[len(rendered)-height:]
	}
	for len(rendered) < height {
		rendered = append(rendered, "")
	}
	return strings.Join(rendered, "\n")
}

func (m *Model) renderPrompt() (string, *tea.Cursor) {
	st := m.theme.Screen
	prompt := st.Prompt.Render(m.session.Prompt())
	line := prompt + m.input.View()
	if m.ghost != "" {
		line += st.Ghost.Render(m.ghost)
	}

	var cursor *tea.Cursor
	if c := m.input.Cursor(); c != nil {
		copy := *c
		copy.X += lipgloss.Width(prompt)
		copy.Y = m.height - 1
		cursor = &copy
	}
	return line, cursor
}

func (m *Model) renderHelp() string {
	ht := m.theme.Help
	sections := []struct {
		title   string
		entries []string
	}{
		{"SYSTEM", []string{"help, clear, logout, debug"}},
		{"CATEGORIES", []string{
			"categories - list all",
			`addcat "name" - create`,
			`removecat "name" - delete`,
			"[category] - show items",
		}},
		{"ITEMS", []string{
			`add "item" in [category]`,
			"remove [id] from [category]",
			`remove "name" from [category]`,
		}},
		{"ALIASES", []string{
			`alias "url" as name`,
			"aliaslist - list all",
			"removealias name",
		}},
		{"TOOLS", []string{
			"stats, uptime, grep, quote",
			"export, import [file]",
		}},
	}

	var b strings.Builder
	b.WriteString(ht.Title.Render("MyCMD Commands"))
	for _, sec := range sections {
		b.WriteString("\n\n")
		b.WriteString(ht.Section.Render(sec.title))
		for _, entry := range sec.entries {
			b.WriteString("\n")
			b.WriteString(ht.Entry.Render(entry))
		}
	}
	return ht.Frame.Render(b.String())
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
