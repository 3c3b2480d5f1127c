package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/heroman/heroman/internal/api"
	"github.com/heroman/heroman/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the local JSON API",
	Long: `Serve the tracker over a local HTTP JSON API until interrupted.

The address comes from --bind, then HEROMAN_BIND, then the [server]
section of the config file.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		bind, _ := cmd.Flags().GetString("bind")

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		a, err := openApp(ctx, appOptions{Bind: bind, Console: true, Rollover: true})
		if err != nil {
			handleError(err)
		}

		srv := newServer(a)
		err = srv.Run(ctx)
		a.Close()
		handleError(err)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("bind", "", "Address to bind the server to (host:port)")
}

func newServer(a *app) *server.Server {
	router := api.NewRouter(a.svc, a.log, api.Options{Now: nowFunc})
	return server.New(a.cfg.Addr(), router, a.log)
}
