package ui

import (
	"fmt"

	"codyplay/internal/playground"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// FailureModal shows the full error of the most recent failed request.
// Esc, enter or e closes it.
type FailureModal struct {
	Failure playground.Failure
	width   int
}

// Ensure FailureModal implements View.
var _ View = (*FailureModal)(nil)

// NewFailureModal creates a modal for f.
func NewFailureModal(f playground.Failure, width int) *FailureModal {
	return &FailureModal{Failure: f, width: width}
}

// Init implements View.
func (m *FailureModal) Init() tea.Cmd {
	return nil
}

// Update implements View.
func (m *FailureModal) Update(msg tea.Msg) (View, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok {
		switch km.String() {
		case "esc", "enter", "e", "q":
			return m, func() tea.Msg { return DismissModalMsg{} }
		}
	}
	return m, nil
}

// View implements View.
func (m *FailureModal) View() string {
	body := lipgloss.NewStyle()
	if m.width > 12 {
		body = body.Width(m.width - 12)
	}
	content := Styles.TitleWarning.Render("Request failed") + "\n\n"
	content += fmt.Sprintf("%s (#%d) at %s\n\n", m.Failure.Op.Title(), m.Failure.Seq, m.Failure.At.Format("15:04:05"))
	content += body.Render(m.Failure.Err.Error())
	content += "\n\n" + Styles.Hint.Render("The previous response is still displayed.  Esc: close")
	return Styles.BoxDanger.Render(content)
}
