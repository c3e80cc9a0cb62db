package main

import (
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gorilla/websocket"
	"github.com/notargets/PlateFEM/server"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func newServeCmd(a *app) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve mesh and deflection data over a websocket on /ws",
		Long: `Starts a websocket endpoint on /ws. Each client sends

  {"type": "mesh", "content": {...plate...}}   reply "meshed"
  {"type": "calculate"}                        reply "calculated"

Fields missing from a mesh request take the configured plate values.
Failures are answered with an "error" message carrying a kind of
config, numerical, sequence or protocol.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := a.cfg
			if cmd.Flags().Changed("addr") {
				cfg.Server.Addr = addr
			}
			upgrader := websocket.Upgrader{
				ReadBufferSize:  cfg.Server.ReadBufferSize,
				WriteBufferSize: cfg.Server.WriteBufferSize,
				CheckOrigin: func(r *http.Request) bool {
					return true
				},
			}
			s := server.NewServer(cfg.Server.Addr, upgrader,
				server.WithDefaults(cfg.Plate),
				server.WithFixedNodeRule(cfg.Rule()),
				server.WithLogger(log.StandardLogger()))

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return s.Serve(ctx)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address, overrides [server] addr")
	return cmd
}
