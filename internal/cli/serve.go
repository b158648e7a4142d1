package cli

import (
	"github.com/spf13/cobra"

	"github.com/Flyrell/physiotrack/internal/server"
)

var serveCmd = LeafCommand{
	Use:   "serve",
	Short: "Run the HTTP API",
	Args:  cobra.NoArgs,
	StrFlags: []StringFlag{
		{Name: "addr", Usage: "listen address (default: server.addr from config)"},
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		addr, _ := cmd.Flags().GetString("addr")
		return withApp(cmd, func(a *app) error {
			return newWebAPI(a, addr).Start()
		})
	},
}.Build()

func newWebAPI(a *app, addr string) *server.WebAPI {
	if addr == "" {
		addr = a.cfg.Server.Addr
	}
	return server.NewWebAPI(a.logger, server.Config{
		Addr:            addr,
		ShutdownTimeout: a.cfg.Server.ShutdownTimeout,
		Dependencies: server.Dependencies{
			Clinic: a.clinic,
		},
	})
}
