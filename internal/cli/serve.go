package cli

import (
	"log"

	"codyplay/internal/playground"
	"codyplay/internal/web"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

func newServeCommand(a *app) *cobra.Command {
	var listen string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the playground in a browser",
		Long:  "Serve the playground as a web page. All visitors share one playground state.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("listen") {
				a.cfg.Listen = listen
			}
			return a.serve(cmd)
		},
	}
	cmd.Flags().StringVarP(&listen, "listen", "l", "", "listen address (default from config, :8080)")
	return cmd
}

func (a *app) serve(cmd *cobra.Command) error {
	log.SetOutput(cmd.ErrOrStderr())
	if !a.cfg.Verbose {
		gin.SetMode(gin.ReleaseMode)
	}

	client, shutdown, err := a.newClient(cmd.Context())
	if err != nil {
		return err
	}
	defer shutdown()

	session := playground.NewSession(a.cfg.Ordering)
	h := web.NewHandler(session, client, client.BaseURL())
	srv := web.NewServer(a.cfg.Listen, h)
	log.Printf("[cli] serving playground on %s (base=%q ordering=%s)", srv.Addr(), client.BaseURL(), session.Ordering())
	return srv.Run(cmd.Context())
}
