// Package cli wires configuration, the API client and the views into the
// codyplay command line.
package cli

import (
	"fmt"
	"io"
	"runtime"
	"strings"

	"codyplay/internal/config"

	"github.com/spf13/cobra"
)

// app carries the flag values and the configuration built from them.
type app struct {
	cfgFile  string
	baseURL  string
	ordering string
	verbose  bool

	loader *config.Loader
	cfg    *config.Config
}

// NewRootCommand creates the root command.
func NewRootCommand(version, commit, date string) *cobra.Command {
	return newRootCommand(&app{loader: config.NewLoader()}, version, commit, date)
}

func newRootCommand(a *app, version, commit, date string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "codyplay",
		Short: "Playground for the Brand-Cody pricing API",
		Long: `codyplay triggers the Brand-Cody pricing queries and shows the raw JSON response.

Without a subcommand it opens the terminal playground. "codyplay serve" offers the
same playground in a browser, and the query subcommands run a single request and
print the indented response.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.configure(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runTUI(cmd)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&a.cfgFile, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().StringVarP(&a.baseURL, "base-url", "b", "", "API base address (overrides CODYPLAY_API_BASE / VITE_API_BASE)")
	rootCmd.PersistentFlags().StringVar(&a.ordering, "ordering", "", "completion ordering: arrival or request")
	rootCmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "verbose output")

	rootCmd.AddCommand(newTUICommand(a))
	rootCmd.AddCommand(newServeCommand(a))
	rootCmd.AddCommand(newQueryCommands(a)...)
	rootCmd.AddCommand(newVersionCommand(version, commit, date))

	return rootCmd
}

// configure loads the configuration and applies explicitly set flags on top.
func (a *app) configure(cmd *cobra.Command) error {
	cfg, err := a.loader.Load(a.cfgFile)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("base-url") {
		cfg.BaseURL = a.baseURL
	}
	if flags.Changed("ordering") {
		cfg.Ordering = config.Ordering(strings.ToLower(a.ordering))
	}
	if flags.Changed("verbose") {
		cfg.Verbose = a.verbose
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	a.cfg = cfg
	return nil
}

// logOutput is where log output goes for commands that own the terminal
// only briefly.
func (a *app) logOutput(cmd *cobra.Command) io.Writer {
	if a.cfg != nil && a.cfg.Verbose {
		return cmd.ErrOrStderr()
	}
	return io.Discard
}

func newVersionCommand(version, commit, date string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return nil
		},
		Run: func(cmd *cobra.Command, args []string) {
			displayVersion := version
			displayCommit := commit
			displayDate := date

			if version == "dev" || version == "" {
				displayVersion = "development"
			}
			if commit == "none" || commit == "" {
				displayCommit = "local-build"
			}
			if date == "unknown" || date == "" {
				displayDate = "local-build"
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "codyplay %s (%s) built on %s\n", displayVersion, displayCommit, displayDate)
			fmt.Fprintf(out, "Go version: %s\n", runtime.Version())
			fmt.Fprintf(out, "OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
		},
	}
}
