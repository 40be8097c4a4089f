// ============================================================================
// mini - Formula Engine Tools
// ============================================================================
//
// Package:     repl
// Description: Interactive formula REPL: enter expressions, watch cells
//              update as values and deferred results arrive
// Author:      msto63
// Created:     2025-10-18
// License:     MIT
// ============================================================================

package repl

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/substance/expression/foundation/formula/engine"
	"github.com/substance/expression/foundation/formula/value"
	mdwstringx "github.com/substance/expression/foundation/utils/stringx"
	"github.com/substance/expression/internal/datasource"
)

const (
	idWidth    = 12
	valueWidth = 60
)

// Model is the REPL state
type Model struct {
	engine   *engine.Engine
	notifier *notifier
	unsub    func()

	width  int
	height int
	ready  bool

	input    textinput.Model
	viewport viewport.Model

	message string
	isError bool
	history []string
	quit    bool
}

// NewModel creates a REPL bound to e
func NewModel(e *engine.Engine) *Model {
	ti := textinput.New()
	ti.Placeholder = "Expression, e.g. total = sum(A1:A3)"
	ti.Prompt = "› "
	ti.CharLimit = 4096
	ti.Focus()

	n := newNotifier()
	m := &Model{
		engine:   e,
		notifier: n,
		input:    ti,
	}
	m.unsub = e.Subscribe(func(engine.Event) { n.signal() })
	return m
}

// Init initializes the model
func (m *Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.notifier.wait())
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, m.shutdown()

		case tea.KeyEnter:
			line := strings.TrimSpace(m.input.Value())
			m.input.Reset()
			if line != "" {
				m.execute(line)
			}
			if m.quit {
				return m, m.shutdown()
			}
			m.updateContent()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		if !m.ready {
			m.viewport = viewport.New(msg.Width, msg.Height-7)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = msg.Height - 7
		}
		m.input.Width = msg.Width - 6
		m.updateContent()

	case cellsChangedMsg:
		m.updateContent()
		cmds = append(cmds, m.notifier.wait())
	}

	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)

	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// execute runs one input line
func (m *Model) execute(line string) {
	m.history = append(m.history, line)
	m.message, m.isError = "", false

	if !strings.HasPrefix(line, ":") {
		c := m.engine.AddExpression(line)
		if c.IsError() {
			m.setError(c.Err())
		}
		return
	}

	fields := strings.Fields(line)
	arg := ""
	if len(fields) > 1 {
		arg = fields[1]
	}

	switch fields[0] {
	case ":quit", ":q":
		m.quit = true
	case ":propagate", ":p":
		c, ok := m.engine.Cell(arg)
		if !ok {
			m.setError(fmt.Errorf("no cell named %q", arg))
			return
		}
		c.Propagate()
		m.message = "propagated " + arg
	case ":data":
		data, err := datasource.Load(arg)
		if err != nil {
			m.setError(err)
			return
		}
		if err := m.engine.SetValue(m.engine.DataSymbol(), data); err != nil {
			m.setError(err)
			return
		}
		m.message = fmt.Sprintf("loaded %d rows into %s", data.Rows(), m.engine.DataSymbol())
	case ":set":
		if len(fields) < 3 {
			m.setError(fmt.Errorf("usage: :set <name> <number|text>"))
			return
		}
		if err := m.engine.SetValue(arg, parseLiteral(strings.Join(fields[2:], " "))); err != nil {
			m.setError(err)
		}
	case ":funcs":
		m.message = strings.Join(m.engine.Registry().Names(), " ")
	case ":help":
		m.message = helpText
	default:
		m.setError(fmt.Errorf("unknown command %s (try :help)", fields[0]))
	}
}

const helpText = ":propagate <name>  :set <name> <value>  :data <file>  :funcs  :quit"

func parseLiteral(s string) value.Value {
	if n, err := strconv.ParseFloat(s, 64); err == nil {
		return n
	}
	return s
}

func (m *Model) setError(err error) {
	m.message = err.Error()
	m.isError = true
}

func (m *Model) shutdown() tea.Cmd {
	if m.unsub != nil {
		m.unsub()
		m.unsub = nil
	}
	m.notifier.signal()
	return tea.Quit
}

func (m *Model) updateContent() {
	if !m.ready {
		return
	}
	m.viewport.SetContent(m.renderCells())
	m.viewport.GotoBottom()
}

// renderCells lists every defined cell with its status
func (m *Model) renderCells() string {
	var s strings.Builder
	for _, c := range m.engine.Cells() {
		if c.IsPlaceholder() && len(c.Dependents()) == 0 {
			continue
		}
		s.WriteString(renderCell(c))
		s.WriteString("\n")
	}
	return s.String()
}

func renderCell(c *engine.Cell) string {
	id := c.ID()
	if c.Name() == "" {
		id = "#" + id[:8]
	}

	status := c.Status()
	var result string
	switch {
	case c.IsPlaceholder():
		result = "undefined"
	case status == engine.StatusReady:
		result = value.Format(c.Value())
	case status == engine.StatusError:
		result = c.Err().Error()
	default:
		result = "…"
	}

	source := mdwstringx.FirstNonBlank(c.Source(), "(value)")
	return lipgloss.JoinHorizontal(lipgloss.Top,
		CellIDStyle.Render(mdwstringx.PadRight(mdwstringx.Truncate(id, idWidth, "…"), idWidth, ' ')),
		" ",
		StatusStyle(status).Render(mdwstringx.PadRight(status.String(), 8, ' ')),
		StatusStyle(status).Render(mdwstringx.Truncate(result, valueWidth, "…")),
		"  ",
		SourceStyle.Render(source),
	)
}

// View renders the UI
func (m *Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	var s strings.Builder
	s.WriteString(TitleStyle.Render("mini"))
	s.WriteString(" ")
	s.WriteString(SubtitleStyle.Render("reactive formula REPL"))
	s.WriteString("\n\n")
	s.WriteString(m.viewport.View())
	s.WriteString("\n")
	s.WriteString(InputStyle.Render(m.input.View()))
	s.WriteString("\n")

	switch {
	case m.isError:
		s.WriteString(ErrorStyle.Render(m.message))
	case m.message != "":
		s.WriteString(HelpStyle.Render(m.message))
	default:
		s.WriteString(HelpStyle.Render(helpText))
	}
	return s.String()
}

// Run starts the REPL program on the terminal
func Run(e *engine.Engine) error {
	p := tea.NewProgram(NewModel(e), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
