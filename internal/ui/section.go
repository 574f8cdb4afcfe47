package ui

import (
	"fmt"
	"strings"

	"codyplay/internal/api"
	"codyplay/internal/catalog"
	"codyplay/internal/playground"
	"codyplay/internal/ui/textutil"

	tea "github.com/charmbracelet/bubbletea"
)

// SectionView is one trigger control. The category section also renders the
// selector bound to the eight category labels.
type SectionView struct {
	ID      string
	Op      api.Operation
	Number  int // 1-based, also the direct-run key
	Focused bool
	session *playground.Session
}

// Ensure SectionView implements View.
var _ View = (*SectionView)(nil)

// NewSectionView creates the section for op.
func NewSectionView(number int, op api.Operation, session *playground.Session) *SectionView {
	return &SectionView{
		ID:      op.String(),
		Op:      op,
		Number:  number,
		session: session,
	}
}

// Init implements View.
func (s *SectionView) Init() tea.Cmd {
	return nil
}

// Update implements View. Only called while the section is focused; enter is
// handled by the app so the activation happens on the key press itself.
func (s *SectionView) Update(msg tea.Msg) (View, tea.Cmd) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}
	switch km.String() {
	case "h", "left":
		if s.Op.TakesCategory() {
			s.session.Select(s.session.Selected().Prev())
		}
	case "l", "right":
		if s.Op.TakesCategory() {
			s.session.Select(s.session.Selected().Next())
		}
	}
	return s, nil
}

// titleWidth aligns the endpoint column across sections.
const titleWidth = 30

// View implements View.
func (s *SectionView) View() string {
	var b strings.Builder
	b.WriteString(Styles.Section.Render(textutil.PadRightVisual(fmt.Sprintf("%d. %s", s.Number, s.Op.Title()), titleWidth)))
	b.WriteString("  ")
	b.WriteString(Styles.Hint.Render("GET " + s.Op.Path(s.session.Selected())))
	if s.Op.TakesCategory() {
		b.WriteString("\n")
		b.WriteString(renderSelector(s.session.Selected()))
	}

	box := Styles.Box
	if s.Focused {
		box = Styles.BoxFocused
	}
	return box.Render(b.String())
}

// renderSelector lists all categories with the selected one highlighted.
func renderSelector(selected catalog.Category) string {
	parts := make([]string, 0, len(catalog.All()))
	for _, c := range catalog.All() {
		if c == selected {
			parts = append(parts, Styles.Selected.Render("["+c.String()+"]"))
		} else {
			parts = append(parts, Styles.Muted.Render(c.String()))
		}
	}
	return strings.Join(parts, " ") + "  " + Styles.Hint.Render(selected.DisplayName())
}
