package ui

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"codyplay/internal/api"
	"codyplay/internal/catalog"
	"codyplay/internal/playground"
	"codyplay/internal/ui/textutil"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Default terminal size used until the first WindowSizeMsg (and in tests).
const (
	defaultWidth  = 80
	defaultHeight = 30
)

// AppModel is the root model: three trigger sections over one shared output region.
type AppModel struct {
	Session    *playground.Session
	Querier    playground.Querier
	BaseURL    string
	Sections   []*SectionView
	Focus      *FocusManager
	Output     *OutputView
	KeyHandler *KeyHandler
	Modal      View // nil when no modal is open

	spinner spinner.Model
	ctx     context.Context
	note    string // result line for the last settled completion
	width   int
	height  int
}

// Ensure AppModel can be used as tea.Model via adapter.
var _ tea.Model = (*appModelAdapter)(nil)

// appModelAdapter wraps AppModel to implement tea.Model.
type appModelAdapter struct {
	*AppModel
}

// NewAppModel creates the root model. ctx is passed to every request.
func NewAppModel(ctx context.Context, session *playground.Session, q playground.Querier, baseURL string) *AppModel {
	m := &AppModel{
		Session:    session,
		Querier:    q,
		BaseURL:    baseURL,
		Output:     NewOutputView(),
		KeyHandler: NewKeyHandler(newRegistry()),
		ctx:        ctx,
		width:      defaultWidth,
		height:     defaultHeight,
	}

	order := make([]string, 0, len(api.Triggers))
	for i, op := range api.Triggers {
		s := NewSectionView(i+1, op, session)
		m.Sections = append(m.Sections, s)
		order = append(order, s.ID)
	}
	m.Focus = NewFocusManager(order, func(from, to string) {
		for _, s := range m.Sections {
			s.Focused = s.ID == to
		}
	})

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = Styles.Status
	m.spinner = sp

	m.layout()
	return m
}

func newRegistry() *KeybindRegistry {
	reg := NewKeybindRegistry()
	reg.Bind("q", tea.QuitMsg{})
	reg.Bind("ctrl+c", tea.QuitMsg{})
	reg.BindWithDesc("SPC q", tea.QuitMsg{}, "Quit")
	reg.Bind("e", ShowFailureMsg{})
	reg.BindWithDesc("SPC e", ShowFailureMsg{}, "Last error")
	for i, op := range api.Triggers {
		n := fmt.Sprintf("%d", i+1)
		reg.Bind(n, RunMsg{Op: op})
		reg.BindWithDesc("SPC r "+n, RunMsg{Op: op}, op.Title())
	}
	reg.BindWithDesc("SPC c n", CycleCategoryMsg{Delta: 1}, "Next category")
	reg.BindWithDesc("SPC c p", CycleCategoryMsg{Delta: -1}, "Previous category")
	return reg
}

// AsTeaModel returns a tea.Model adapter for use with tea.NewProgram.
func (m *AppModel) AsTeaModel() tea.Model {
	return &appModelAdapter{AppModel: m}
}

// Run starts the terminal view and blocks until the user quits.
func Run(ctx context.Context, session *playground.Session, q playground.Querier, baseURL string) error {
	m := NewAppModel(ctx, session, q, baseURL)
	p := tea.NewProgram(m.AsTeaModel(), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}

// Init implements tea.Model.
func (a *appModelAdapter) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (a *appModelAdapter) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.layout()
		return a, nil

	case RunMsg:
		return a, a.activate(msg.Op)

	case fetchDoneMsg:
		a.settle(msg)
		return a, nil

	case CycleCategoryMsg:
		cur := a.Session.Selected()
		if msg.Delta < 0 {
			a.Session.Select(cur.Prev())
		} else {
			a.Session.Select(cur.Next())
		}
		return a, nil

	case ShowFailureMsg:
		if f := a.Session.Snapshot().Failure; f != nil {
			a.Modal = NewFailureModal(*f, a.width)
		}
		return a, nil

	case DismissModalMsg:
		a.Modal = nil
		return a, nil

	case spinner.TickMsg:
		if a.Session.Snapshot().InFlight == 0 {
			return a, nil
		}
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd

	case tea.KeyMsg:
		return a, a.handleKey(msg)
	}
	return a, nil
}

func (a *appModelAdapter) handleKey(msg tea.KeyMsg) tea.Cmd {
	if a.Modal != nil {
		var cmd tea.Cmd
		a.Modal, cmd = a.Modal.Update(msg)
		return cmd
	}
	if consumed, bound := a.KeyHandler.Handle(msg); consumed {
		return a.apply(bound)
	}

	switch msg.String() {
	case "enter":
		if s := a.focused(); s != nil {
			return a.activate(s.Op)
		}
		return nil
	case "tab", "j":
		a.Focus.Next()
		return nil
	case "shift+tab", "k":
		a.Focus.Prev()
		return nil
	case "up", "down", "pgup", "pgdown", "ctrl+u", "ctrl+d":
		_, cmd := a.Output.Update(msg)
		return cmd
	}

	if s := a.focused(); s != nil {
		_, cmd := s.Update(msg)
		return cmd
	}
	return nil
}

// apply handles a key binding's message within the current Update, so an
// activation sees the selection as it is at the key press.
func (a *appModelAdapter) apply(msg tea.Msg) tea.Cmd {
	switch msg.(type) {
	case nil:
		return nil
	case tea.QuitMsg:
		return tea.Quit
	}
	_, cmd := a.Update(msg)
	return cmd
}

// activate starts op without blocking: the request runs in a command goroutine.
func (m *AppModel) activate(op api.Operation) tea.Cmd {
	m.Focus.SetFocus(op.String())
	act := m.Session.Activate(op)
	log.Printf("[ui] #%d %s %s", act.Seq, op, act.Category)

	cmds := []tea.Cmd{fetchCmd(m.ctx, m.Querier, act)}
	if m.Session.Snapshot().InFlight == 1 {
		cmds = append(cmds, m.spinner.Tick)
	}
	return tea.Batch(cmds...)
}

// settle applies a completion on the UI goroutine.
func (m *AppModel) settle(msg fetchDoneMsg) {
	act := msg.Activation
	outcome := m.Session.Settle(act, msg.Result, msg.Err)
	log.Printf("[ui] #%d %s %s", act.Seq, act.Op, outcome)

	switch outcome {
	case playground.Applied:
		r := msg.Result
		m.note = fmt.Sprintf("#%d %s → %d in %s", act.Seq, describe(act), r.StatusCode, r.Elapsed.Round(time.Millisecond))
	case playground.Stale:
		m.note = fmt.Sprintf("#%d %s discarded: a newer response is displayed", act.Seq, describe(act))
	case playground.Failed:
		m.note = ""
	}
	m.Output.Sync(m.Session.Snapshot())
	m.layout()
}

func describe(a playground.Activation) string {
	if a.Category != "" {
		return a.Op.Title() + " (" + a.Category.String() + ")"
	}
	return a.Op.Title()
}

func (m *AppModel) focused() *SectionView {
	for _, s := range m.Sections {
		if s.ID == m.Focus.Current {
			return s
		}
	}
	return nil
}

// Selected returns the category currently bound to the category section.
func (m *AppModel) Selected() catalog.Category {
	return m.Session.Selected()
}

// layout gives the output region whatever height the header and sections leave.
func (m *AppModel) layout() {
	used := lipgloss.Height(m.renderTop()) + 4 // status, output heading, footer, spacing
	m.Output.SetSize(m.width, m.height-used)
}

func (m *AppModel) renderTop() string {
	var b strings.Builder
	b.WriteString(Styles.Title.Render("Brand-Cody API Playground"))
	b.WriteString("  ")
	base := m.BaseURL
	if base == "" {
		base = "(no base address configured)"
	}
	b.WriteString(Styles.Muted.Render(textutil.Truncate(base, m.width/2)))
	for _, s := range m.Sections {
		b.WriteString("\n")
		b.WriteString(s.View())
	}
	return b.String()
}

func (m *AppModel) renderStatus(snap playground.Snapshot) string {
	var parts []string
	if snap.InFlight > 0 {
		parts = append(parts, m.spinner.View()+Styles.Status.Render(fmt.Sprintf(" %d in flight", snap.InFlight)))
	}
	if snap.Failure != nil {
		msg := fmt.Sprintf("✗ #%d %s: %s", snap.Failure.Seq, snap.Failure.Op.Title(), textutil.FirstLine(snap.Failure.Err.Error()))
		parts = append(parts, Styles.Error.Render(textutil.Truncate(msg, m.width-20))+Styles.Hint.Render("  (e)"))
	} else if m.note != "" {
		style := Styles.Status
		if snap.Last != nil && snap.Last.Result.StatusCode >= 300 {
			style = Styles.Warning
		}
		parts = append(parts, style.Render(textutil.Truncate(m.note, m.width)))
	}
	return strings.Join(parts, "  ")
}

// View implements tea.Model.
func (a *appModelAdapter) View() string {
	if a.Modal != nil {
		return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, a.Modal.View())
	}

	snap := a.Session.Snapshot()
	var b strings.Builder
	b.WriteString(a.renderTop())
	b.WriteString("\n")
	b.WriteString(a.renderStatus(snap))
	if help := RenderKeybindHelp(a.KeyHandler); help != "" {
		b.WriteString("\n")
		b.WriteString(help)
	}
	if out := a.Output.View(); out != "" {
		b.WriteString("\n")
		b.WriteString(Styles.Output.Render("Response"))
		b.WriteString("\n")
		b.WriteString(out)
	}
	b.WriteString("\n")
	b.WriteString(RenderFooter(a.width))
	return b.String()
}
