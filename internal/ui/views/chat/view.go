package chat

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	assistantdto "aria/internal/modules/assistant/dto"
	"aria/internal/ui/theme"
)

// Model renders the conversation transcript. Assistant replies are markdown.
type Model struct {
	viewport viewport.Model
	renderer *glamour.TermRenderer
	messages []assistantdto.ChatMessage
	userName string
	width    int
}

func New(userName string) Model {
	return Model{viewport: viewport.New(0, 0), userName: userName}
}

func (m *Model) SetSize(width, height int) {
	if width < 10 {
		width = 10
	}
	if height < 1 {
		height = 1
	}
	m.viewport.Width = width
	m.viewport.Height = height
	if width != m.width {
		m.width = width
		m.renderer, _ = glamour.NewTermRenderer(
			glamour.WithStandardStyle("dark"),
			glamour.WithWordWrap(width-2),
		)
	}
	m.refresh()
}

func (m *Model) SetMessages(messages []assistantdto.ChatMessage) {
	m.messages = append(m.messages[:0:0], messages...)
	m.refresh()
}

func (m *Model) Append(msg assistantdto.ChatMessage) {
	m.messages = append(m.messages, msg)
	m.refresh()
}

func (m Model) Len() int { return len(m.messages) }

func (m *Model) refresh() {
	var b strings.Builder
	for _, msg := range m.messages {
		b.WriteString(m.render(msg))
		b.WriteString("\n")
	}
	m.viewport.SetContent(b.String())
	m.viewport.GotoBottom()
}

func (m Model) render(msg assistantdto.ChatMessage) string {
	if msg.Role == "user" {
		name := m.userName
		if name == "" {
			name = "You"
		}
		return theme.UserLabel.Render(name) + "\n" + msg.Content + "\n"
	}
	body := msg.Content
	if m.renderer != nil {
		if out, err := m.renderer.Render(msg.Content); err == nil {
			body = strings.Trim(out, "\n")
		}
	}
	return theme.AriaLabel.Render("Aria") + "\n" + body + "\n"
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	return m.viewport.View()
}
