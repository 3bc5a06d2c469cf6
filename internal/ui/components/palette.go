package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"aria/internal/ui/theme"
)

// PaletteSubmitMsg carries the confirmed command line.
type PaletteSubmitMsg struct{ Input string }

type PaletteCancelMsg struct{}

type Command struct {
	Usage string
	Help  string
}

// Commands must match the switch in app.Model.runCommand.
var Commands = []Command{
	{Usage: "quiz:next", Help: "show the next quiz question"},
	{Usage: "deadlines", Help: "ask for a summary of current deadlines"},
	{Usage: "focus", Help: "ask what to focus on today"},
	{Usage: "chat:reload", Help: "reload the conversation from storage"},
	{Usage: "data:clear confirm", Help: "erase every stored record"},
}

const maxHints = 6

var (
	paletteStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(theme.Peach).
			Foreground(theme.Text).
			Padding(0, 1)

	usageStyle = lipgloss.NewStyle().Foreground(theme.Lavender)
)

type Palette struct {
	input   textinput.Model
	visible bool
	width   int
}

func NewPalette() Palette {
	ti := textinput.New()
	ti.Placeholder = "command"
	ti.CharLimit = 128
	return Palette{input: ti}
}

func (p Palette) Visible() bool { return p.visible }

func (p *Palette) Open() tea.Cmd {
	p.visible = true
	p.input.Reset()
	return p.input.Focus()
}

func (p *Palette) SetWidth(w int) { p.width = w }

func (p *Palette) close() {
	p.visible = false
	p.input.Blur()
}

func (p Palette) Update(msg tea.Msg) (Palette, tea.Cmd) {
	if !p.visible {
		return p, nil
	}
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyEsc:
			p.close()
			return p, func() tea.Msg { return PaletteCancelMsg{} }
		case tea.KeyEnter:
			line := strings.TrimSpace(p.input.Value())
			p.close()
			return p, func() tea.Msg { return PaletteSubmitMsg{Input: line} }
		case tea.KeyTab:
			if matches := Matching(p.input.Value()); len(matches) > 0 {
				p.input.SetValue(matches[0].Usage)
				p.input.CursorEnd()
			}
			return p, nil
		}
	}
	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	return p, cmd
}

// Matching returns the commands whose usage contains query.
func Matching(query string) []Command {
	query = strings.ToLower(strings.TrimSpace(query))
	var out []Command
	for _, c := range Commands {
		if query == "" || strings.Contains(c.Usage, query) {
			out = append(out, c)
		}
	}
	return out
}

func (p Palette) View() string {
	if !p.visible {
		return ""
	}
	var b strings.Builder
	b.WriteString(theme.Title.Render("Commands") + "\n")
	b.WriteString("> " + p.input.View() + "\n\n")
	for i, c := range Matching(p.input.Value()) {
		if i == maxHints {
			break
		}
		b.WriteString(usageStyle.Render(c.Usage) + "  " + theme.Muted.Render(c.Help) + "\n")
	}
	w := p.width
	if w < 30 {
		w = 60
	}
	return paletteStyle.Width(w - 2).Render(strings.TrimRight(b.String(), "\n"))
}
