package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// KeybindRegistry maps key sequences to messages. The app applies a resolved
// message on the same Update call as the key press.
// Sequences use spacemacs-style notation: "SPC" for space, "SPC r 1" for
// SPC then r then 1. Single keys: "1", "q", "ctrl+c".
type KeybindRegistry struct {
	bindings     map[string]tea.Msg
	descriptions map[string]string
}

// NewKeybindRegistry creates an empty registry.
func NewKeybindRegistry() *KeybindRegistry {
	return &KeybindRegistry{
		bindings:     make(map[string]tea.Msg),
		descriptions: make(map[string]string),
	}
}

// Bind registers a key sequence to a message, replacing any existing binding.
func (r *KeybindRegistry) Bind(seq string, msg tea.Msg) {
	r.BindWithDesc(seq, msg, "")
}

// BindWithDesc registers a key sequence with a description for the help bar.
func (r *KeybindRegistry) BindWithDesc(seq string, msg tea.Msg, desc string) {
	n := normalizeSeq(seq)
	r.bindings[n] = msg
	if desc != "" {
		r.descriptions[n] = desc
	}
}

// Lookup returns the message for a key sequence, or nil if not bound.
func (r *KeybindRegistry) Lookup(seq string) tea.Msg {
	return r.bindings[normalizeSeq(seq)]
}

// HasPrefix reports whether a longer binding starts with seq.
func (r *KeybindRegistry) HasPrefix(seq string) bool {
	prefix := normalizeSeq(seq) + " "
	for k := range r.bindings {
		if strings.HasPrefix(k, prefix) {
			return true
		}
	}
	return false
}

// submenuLabel names first-level leader keys that open a submenu.
var submenuLabel = map[string]string{
	"r": "Run",
	"c": "Category",
}

// LeaderHints returns the next keys available after currentSeq ("" means right
// after SPC), mapped to their descriptions. Keys that open a submenu show a
// generic label instead of one of the actions beneath them.
func (r *KeybindRegistry) LeaderHints(currentSeq string) map[string]string {
	out := make(map[string]string)
	prefix := "SPC "
	if currentSeq != "" {
		prefix = normalizeSeq(currentSeq) + " "
	}
	for seq, msg := range r.bindings {
		if msg == nil || !strings.HasPrefix(seq, prefix) {
			continue
		}
		parts := strings.Fields(strings.TrimPrefix(seq, prefix))
		if len(parts) == 0 {
			continue
		}
		next := parts[0]
		if r.HasPrefix(prefix + next) {
			if label, ok := submenuLabel[next]; ok {
				out[next] = label
			} else {
				out[next] = next + "…"
			}
			continue
		}
		if d, ok := r.descriptions[seq]; ok {
			out[next] = d
		} else {
			out[next] = seq
		}
	}
	return out
}

// normalizeSeq converts tea key strings to our canonical format.
// "space" -> "SPC", "ctrl+c" -> "ctrl+c", "j" -> "j".
func normalizeSeq(seq string) string {
	parts := strings.Fields(seq)
	for i, p := range parts {
		parts[i] = keyToSeqPart(p)
	}
	return strings.Join(parts, " ")
}

// keyToSeqPart converts a tea key string to a sequence part.
func keyToSeqPart(s string) string {
	if s == " " || s == "space" {
		return "SPC"
	}
	return s
}

// KeyHandler tracks leader-key state and dispatches to the registry.
type KeyHandler struct {
	Registry      *KeybindRegistry
	LeaderWaiting bool     // true after SPC until a binding resolves or fails
	Buffer        []string // accumulated sequence in leader mode
}

// NewKeyHandler creates a handler with SPC as leader.
func NewKeyHandler(reg *KeybindRegistry) *KeyHandler {
	return &KeyHandler{Registry: reg}
}

// Sequence returns the pending leader sequence, e.g. "SPC r".
func (h *KeyHandler) Sequence() string {
	return strings.Join(h.Buffer, " ")
}

// Handle processes a KeyMsg. Returns (consumed, bound message).
// Unconsumed keys are left for the focused section.
func (h *KeyHandler) Handle(key tea.KeyMsg) (consumed bool, msg tea.Msg) {
	s := key.String()

	if s == "esc" {
		if h.LeaderWaiting {
			h.reset()
			return true, nil
		}
		return false, nil
	}

	// Bubble Tea reports space as " ".
	if s == " " && !h.LeaderWaiting {
		h.LeaderWaiting = true
		h.Buffer = []string{"SPC"}
		return true, nil
	}

	if h.LeaderWaiting {
		h.Buffer = append(h.Buffer, keyToSeqPart(s))
		seq := h.Sequence()
		if m := h.Registry.Lookup(seq); m != nil {
			h.reset()
			return true, m
		}
		if !h.Registry.HasPrefix(seq) {
			h.reset()
		}
		return true, nil
	}

	if m := h.Registry.Lookup(s); m != nil {
		return true, m
	}
	return false, nil
}

func (h *KeyHandler) reset() {
	h.LeaderWaiting = false
	h.Buffer = nil
}
