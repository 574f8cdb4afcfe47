package ui

import (
	"context"

	"codyplay/internal/playground"

	tea "github.com/charmbracelet/bubbletea"
)

// fetchCmd performs one activation off the UI goroutine. Nothing cancels it:
// once started it runs to completion or failure.
func fetchCmd(ctx context.Context, q playground.Querier, a playground.Activation) tea.Cmd {
	return func() tea.Msg {
		res, err := playground.Execute(ctx, q, a)
		return fetchDoneMsg{Activation: a, Result: res, Err: err}
	}
}
