package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	assistantdto "aria/internal/modules/assistant/dto"
	apperrors "aria/internal/platform/errors"
	"aria/internal/ui/components"
	"aria/internal/ui/theme"
	chatview "aria/internal/ui/views/chat"
)

const (
	toastTTL     = 3 * time.Second
	shownHistory = 40
)

// assistantPort is the slice of the assistant the chat screen drives.
type assistantPort interface {
	Send(ctx context.Context, text string) (assistantdto.Reply, error)
	History(ctx context.Context, limit int) ([]assistantdto.ChatMessage, error)
	NextQuestion(ctx context.Context) (assistantdto.QuizStep, error)
	Clear(ctx context.Context) error
}

type historyLoadedMsg struct {
	messages []assistantdto.ChatMessage
	err      error
}

type replyMsg struct {
	reply assistantdto.Reply
	err   error
}

type questionMsg struct {
	step assistantdto.QuizStep
	err  error
}

type clearedMsg struct{ err error }

type toastMsg struct{ toast assistantdto.Toast }

type toastExpiredMsg struct{ seq int }

type keyMap struct {
	Send    key.Binding
	Palette key.Binding
	Help    key.Binding
	Scroll  key.Binding
	Quit    key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Send:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "send")),
		Palette: key.NewBinding(key.WithKeys("ctrl+p"), key.WithHelp("ctrl+p", "commands")),
		Help:    key.NewBinding(key.WithKeys("ctrl+g"), key.WithHelp("ctrl+g", "help")),
		Scroll:  key.NewBinding(key.WithKeys("pgup", "pgdown"), key.WithHelp("pgup/pgdn", "scroll")),
		Quit:    key.NewBinding(key.WithKeys("ctrl+c", "esc"), key.WithHelp("esc", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Send, k.Palette, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Send, k.Scroll},
		{k.Palette, k.Help, k.Quit},
	}
}

// Model is the chat screen: transcript, input line, spinner while a turn is
// in flight, and a toast line fed by the action dispatcher.
type Model struct {
	ctx       context.Context
	assistant assistantPort
	toasts    <-chan assistantdto.Toast

	transcript chatview.Model
	input      textinput.Model
	spinner    spinner.Model
	palette    components.Palette
	keys       keyMap
	help       help.Model

	userName string
	sending  bool
	showHelp bool
	toast    *assistantdto.Toast
	toastSeq int
	status   string
	width    int
	height   int
}

func NewModel(ctx context.Context, assistant assistantPort, toasts <-chan assistantdto.Toast, userName string) Model {
	input := textinput.New()
	input.Placeholder = "Message Aria..."
	input.CharLimit = 2000
	input.Focus()

	spin := spinner.New()
	spin.Spinner = spinner.MiniDot
	spin.Style = theme.AriaLabel

	return Model{
		ctx:        ctx,
		assistant:  assistant,
		toasts:     toasts,
		transcript: chatview.New(userName),
		input:      input,
		spinner:    spin,
		palette:    components.NewPalette(),
		keys:       defaultKeys(),
		help:       help.New(),
		userName:   userName,
		status:     "ready",
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.loadHistoryCmd(), m.waitForToast())
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.palette.Visible() {
		var cmd tea.Cmd
		m.palette, cmd = m.palette.Update(msg)
		if _, ok := msg.(tea.KeyMsg); ok {
			return m, cmd
		}
	}

	var cmds []tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.input.Width = msg.Width - 4
		m.palette.SetWidth(min(msg.Width-4, 72))
		m.layout()
		return m, nil

	case historyLoadedMsg:
		if msg.err != nil {
			m.status = "history: " + msg.err.Error()
			return m, nil
		}
		m.transcript.SetMessages(msg.messages)
		return m, nil

	case replyMsg:
		m.sending = false
		m.input.Focus()
		switch {
		case errors.Is(msg.err, apperrors.ErrBusy):
			m.status = "still thinking about the last message"
		case msg.err != nil:
			m.status = "send failed: " + msg.err.Error()
		default:
			m.status = "ready"
		}
		return m, m.loadHistoryCmd()

	case questionMsg:
		switch {
		case errors.Is(msg.err, apperrors.ErrNoActiveQuiz):
			m.status = "no quiz running"
		case msg.err != nil:
			m.status = "quiz: " + msg.err.Error()
		case msg.step.Finished:
			m.status = "that was the last question, tell Aria your answers"
		default:
			m.transcript.Append(assistantdto.ChatMessage{Role: "aria", Content: msg.step.Question})
			m.status = fmt.Sprintf("question %d/%d", msg.step.Index+1, msg.step.Total)
		}
		return m, nil

	case clearedMsg:
		if msg.err != nil {
			m.status = "clear failed: " + msg.err.Error()
			return m, nil
		}
		m.status = "all data cleared"
		return m, m.loadHistoryCmd()

	case toastMsg:
		toast := msg.toast
		m.toast = &toast
		m.toastSeq++
		seq := m.toastSeq
		return m, tea.Batch(m.waitForToast(), tea.Tick(toastTTL, func(time.Time) tea.Msg {
			return toastExpiredMsg{seq: seq}
		}))

	case toastExpiredMsg:
		if msg.seq == m.toastSeq {
			m.toast = nil
		}
		return m, nil

	case spinner.TickMsg:
		if !m.sending {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case components.PaletteSubmitMsg:
		return m.runCommand(msg.Input)

	case components.PaletteCancelMsg:
		m.input.Focus()
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.showHelp = !m.showHelp
			m.layout()
			return m, nil
		case key.Matches(msg, m.keys.Palette):
			m.input.Blur()
			return m, m.palette.Open()
		case key.Matches(msg, m.keys.Scroll):
			var cmd tea.Cmd
			m.transcript, cmd = m.transcript.Update(msg)
			return m, cmd
		case key.Matches(msg, m.keys.Send):
			return m.submit(m.input.Value())
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

func (m Model) submit(text string) (tea.Model, tea.Cmd) {
	text = strings.TrimSpace(text)
	if text == "" || m.sending {
		return m, nil
	}
	m.input.Reset()
	m.input.Blur()
	m.sending = true
	m.status = "Thinking..."
	m.transcript.Append(assistantdto.ChatMessage{Role: "user", Content: text})
	return m, tea.Batch(m.spinner.Tick, m.sendCmd(text))
}

func (m Model) runCommand(line string) (tea.Model, tea.Cmd) {
	m.input.Focus()
	switch line {
	case "":
		return m, nil
	case "quiz:next":
		return m, m.nextQuestionCmd()
	case "deadlines":
		return m.submit("list all my current deadlines")
	case "focus":
		return m.submit("what should I focus on today")
	case "chat:reload":
		return m, m.loadHistoryCmd()
	case "data:clear confirm":
		return m, m.clearCmd()
	case "data:clear":
		m.status = "type data:clear confirm to erase everything"
	default:
		m.status = "unknown command: " + line
	}
	return m, nil
}

func (m *Model) layout() {
	if m.width == 0 {
		return
	}
	reserved := lipgloss.Height(m.renderHeader()) + lipgloss.Height(m.renderFooter()) + 3
	m.transcript.SetSize(m.width-4, m.height-reserved)
}

func (m Model) View() string {
	if m.width == 0 {
		return "loading..."
	}
	body := m.transcript.View()
	if m.palette.Visible() {
		body = lipgloss.Place(m.width-4, lipgloss.Height(body), lipgloss.Center, lipgloss.Center, m.palette.View())
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(),
		theme.Pane.Width(m.width-2).Render(body),
		m.renderFooter(),
	)
}

func (m Model) renderHeader() string {
	title := theme.Title.Render("Aria")
	if m.userName != "" {
		title += theme.Muted.Render("  with " + m.userName)
	}
	return title
}

func (m Model) renderFooter() string {
	var line string
	switch {
	case m.sending:
		line = m.spinner.View() + " " + theme.Muted.Render("Aria is thinking...")
	case m.toast != nil:
		line = toastStyle(string(m.toast.Level)).Render(m.toast.Message)
	default:
		line = theme.Muted.Render(m.status)
	}
	helpView := m.help.ShortHelpView(m.keys.ShortHelp())
	if m.showHelp {
		helpView = m.help.FullHelpView(m.keys.FullHelp())
	}
	return lipgloss.JoinVertical(lipgloss.Left, line, m.input.View(), helpView)
}

func toastStyle(level string) lipgloss.Style {
	switch level {
	case "success":
		return theme.ToastSuccess
	case "error":
		return theme.ToastError
	default:
		return theme.ToastInfo
	}
}

func (m Model) loadHistoryCmd() tea.Cmd {
	return func() tea.Msg {
		messages, err := m.assistant.History(m.ctx, shownHistory)
		return historyLoadedMsg{messages: messages, err: err}
	}
}

func (m Model) sendCmd(text string) tea.Cmd {
	return func() tea.Msg {
		reply, err := m.assistant.Send(m.ctx, text)
		return replyMsg{reply: reply, err: err}
	}
}

func (m Model) nextQuestionCmd() tea.Cmd {
	return func() tea.Msg {
		step, err := m.assistant.NextQuestion(m.ctx)
		return questionMsg{step: step, err: err}
	}
}

func (m Model) clearCmd() tea.Cmd {
	return func() tea.Msg {
		return clearedMsg{err: m.assistant.Clear(m.ctx)}
	}
}

// waitForToast blocks on the toast channel; it is re-armed after every toast.
func (m Model) waitForToast() tea.Cmd {
	if m.toasts == nil {
		return nil
	}
	return func() tea.Msg {
		select {
		case toast, ok := <-m.toasts:
			if !ok {
				return nil
			}
			return toastMsg{toast: toast}
		case <-m.ctx.Done():
			return nil
		}
	}
}
