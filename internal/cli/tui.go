package cli

import (
	"fmt"
	"io"
	"log"

	"codyplay/internal/playground"
	"codyplay/internal/ui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func newTUICommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Open the terminal playground (default)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runTUI(cmd)
		},
	}
}

// runTUI owns stdout, so logs go to the configured log file or nowhere.
func (a *app) runTUI(cmd *cobra.Command) error {
	if a.cfg.LogFile != "" {
		f, err := tea.LogToFile(a.cfg.LogFile, "codyplay")
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
	} else {
		log.SetOutput(io.Discard)
	}

	client, shutdown, err := a.newClient(cmd.Context())
	if err != nil {
		return err
	}
	defer shutdown()

	session := playground.NewSession(a.cfg.Ordering)
	log.Printf("[cli] tui base=%q ordering=%s", client.BaseURL(), session.Ordering())
	return ui.Run(cmd.Context(), session, client, client.BaseURL())
}
