package ui

import (
	"sort"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
)

// leaderBindings converts the pending leader hints into key.Bindings, sorted by key.
func leaderBindings(h *KeyHandler) []key.Binding {
	hints := h.Registry.LeaderHints(h.Sequence())
	if len(hints) == 0 {
		return nil
	}
	keys := make([]string, 0, len(hints))
	for k := range hints {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	bindings := make([]key.Binding, 0, len(keys)+1)
	for _, k := range keys {
		bindings = append(bindings, key.NewBinding(key.WithKeys(k), key.WithHelp(k, hints[k])))
	}
	return append(bindings, key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")))
}

// RenderKeybindHelp produces the transient help bar shown after SPC.
func RenderKeybindHelp(h *KeyHandler) string {
	if h == nil || !h.LeaderWaiting {
		return ""
	}
	bindings := leaderBindings(h)
	if len(bindings) == 0 {
		return ""
	}

	hm := help.New()
	hm.Styles.ShortKey = Styles.Selected
	hm.Styles.ShortDesc = Styles.Hint
	hm.Styles.ShortSeparator = Styles.Hint

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorAccent)).
		Padding(0, 1)
	return box.Render(Styles.Hint.Render(h.Sequence()) + " " + hm.ShortHelpView(bindings))
}

// baseKeys documents the always-available keys for the footer.
var baseKeys = []key.Binding{
	key.NewBinding(key.WithKeys("tab", "j", "k"), key.WithHelp("tab/j/k", "focus")),
	key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "run")),
	key.NewBinding(key.WithKeys("h", "l"), key.WithHelp("h/l", "category")),
	key.NewBinding(key.WithKeys("1", "2", "3"), key.WithHelp("1-3", "run section")),
	key.NewBinding(key.WithKeys("pgup", "pgdown"), key.WithHelp("pgup/pgdn", "scroll")),
	key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "last error")),
	key.NewBinding(key.WithKeys(" "), key.WithHelp("SPC", "menu")),
	key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
}

// RenderFooter renders the short help line for the base keys.
func RenderFooter(width int) string {
	hm := help.New()
	hm.Width = width
	hm.Styles.ShortKey = Styles.Status
	hm.Styles.ShortDesc = Styles.Hint
	hm.Styles.ShortSeparator = Styles.Hint
	return hm.ShortHelpView(baseKeys)
}
