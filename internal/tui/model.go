package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/povarna/generative-ai-agents/campus-agent/internal/session"
)

// ChatPort is the TUI-facing subset of a chat session.
type ChatPort interface {
	Submit(ctx context.Context, text string) bool
	Log() []session.Entry
	Pending() bool
	SetUseLLM(useLLM bool)
	UseLLM() bool
}

type submittedMsg struct {
	accepted bool
}

// Model is the Bubble Tea model for the campus chat.
type Model struct {
	ctx      context.Context
	chat     ChatPort
	input    textinput.Model
	viewport viewport.Model
	spinner  spinner.Model
	status   string
	ready    bool
}

func New(ctx context.Context, chat ChatPort) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Ask about schedules, dining, the library..."
	ti.Focus()
	ti.CharLimit = 0

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return Model{
		ctx:      ctx,
		chat:     chat,
		input:    ti,
		viewport: viewport.New(0, 0),
		spinner:  sp,
		status:   "Ready. Enter sends, ctrl+l toggles LLM, ctrl+c quits.",
	}
}

func (m Model) Init() tea.Cmd { return tea.Batch(textinput.Blink, m.spinner.Tick) }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		_, lh := logBoxStyle.GetFrameSize()
		_, ih := inputBoxStyle.GetFrameSize()
		reserved := 1 + 1 + ih + 1 // header, status, input, spacer
		m.viewport.Width = max(20, msg.Width)
		m.viewport.Height = max(3, msg.Height-reserved-lh)
		m.refreshLog()
		return m, nil
	case submittedMsg:
		if msg.accepted {
			m.status = "Reply received."
		} else {
			m.status = "Still waiting for the previous reply."
		}
		m.refreshLog()
		return m, nil
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		if m.chat.Pending() {
			m.refreshLog()
		}
		return m, cmd
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyCtrlD {
			return m, tea.Quit
		}
		switch msg.String() {
		case "ctrl+l":
			m.chat.SetUseLLM(!m.chat.UseLLM())
			if m.chat.UseLLM() {
				m.status = "LLM replies on."
			} else {
				m.status = "LLM replies off."
			}
			return m, nil
		case "enter":
			text := m.input.Value()
			if strings.TrimSpace(text) == "" {
				return m, nil
			}
			if m.chat.Pending() {
				m.status = "Still waiting for the previous reply."
				return m, nil
			}
			m.input.Reset()
			m.status = "Asking..."
			return m, m.submit(text)
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) submit(text string) tea.Cmd {
	chat, ctx := m.chat, m.ctx
	return func() tea.Msg {
		return submittedMsg{accepted: chat.Submit(ctx, text)}
	}
}

func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	mode := "templated"
	if m.chat.UseLLM() {
		mode = "llm"
	}
	header := lipgloss.NewStyle().Bold(true).Render("Campus Assistant") +
		lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Render("  mode: "+mode)

	status := m.status
	if m.chat.Pending() {
		status = m.spinner.View() + " waiting for reply"
	}

	return header + "\n" +
		logBoxStyle.Render(m.viewport.View()) + "\n" +
		inputBoxStyle.Render(m.input.View()) + "\n" +
		statusStyle.Render(status)
}

func (m *Model) refreshLog() {
	m.viewport.SetContent(renderLog(m.chat.Log()))
	m.viewport.GotoBottom()
}

func renderLog(entries []session.Entry) string {
	if len(entries) == 0 {
		return "No messages yet."
	}

	lines := make([]string, 0, len(entries))
	for _, entry := range entries {
		switch entry.Speaker {
		case session.SpeakerUser:
			lines = append(lines, userStyle.Render("you: ")+entry.Text)
		default:
			lines = append(lines, assistantStyle.Render("campus: ")+entry.Text)
		}
	}
	return strings.Join(lines, "\n\n")
}

var (
	logBoxStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	inputBoxStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	statusStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	userStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
	assistantStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
)
