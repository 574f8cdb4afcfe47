package ui

import (
	"codyplay/internal/playground"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// OutputView is the pass-through display region. It renders the last response
// as indented JSON and nothing at all while no response has completed.
type OutputView struct {
	viewport viewport.Model
	content  string
}

// Ensure OutputView implements View.
var _ View = (*OutputView)(nil)

// NewOutputView creates an empty output region.
func NewOutputView() *OutputView {
	vp := viewport.New(80, 10)
	// j/k move focus between sections; only arrows and paging scroll output.
	vp.KeyMap = viewport.KeyMap{
		PageDown:     key.NewBinding(key.WithKeys("pgdown")),
		PageUp:       key.NewBinding(key.WithKeys("pgup")),
		HalfPageDown: key.NewBinding(key.WithKeys("ctrl+d")),
		HalfPageUp:   key.NewBinding(key.WithKeys("ctrl+u")),
		Down:         key.NewBinding(key.WithKeys("down")),
		Up:           key.NewBinding(key.WithKeys("up")),
	}
	return &OutputView{viewport: vp}
}

// SetSize resizes the viewport.
func (o *OutputView) SetSize(width, height int) {
	if height < 1 {
		height = 1
	}
	o.viewport.Width = width
	o.viewport.Height = height
}

// Sync copies the session output into the viewport. A new payload scrolls back
// to the top.
func (o *OutputView) Sync(snap playground.Snapshot) {
	out := snap.Output()
	if out == o.content {
		return
	}
	o.content = out
	o.viewport.SetContent(out)
	o.viewport.GotoTop()
}

// Empty reports whether nothing has been rendered yet.
func (o *OutputView) Empty() bool {
	return o.content == ""
}

// Init implements View.
func (o *OutputView) Init() tea.Cmd {
	return nil
}

// Update implements View.
func (o *OutputView) Update(msg tea.Msg) (View, tea.Cmd) {
	var cmd tea.Cmd
	o.viewport, cmd = o.viewport.Update(msg)
	return o, cmd
}

// View implements View.
func (o *OutputView) View() string {
	if o.Empty() {
		return ""
	}
	return o.viewport.View()
}
