package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/CauceloJuanma/reserva/internal/auth"
	"github.com/CauceloJuanma/reserva/internal/route"
	"github.com/CauceloJuanma/reserva/internal/tui"
)

var startRoute string

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Open the marketplace TUI",
	Long: `Start the interactive terminal interface. Use --route to open a
specific view directly, e.g. --route /reservations or --route /reservations/42.
Protected views wait for the session check and redirect to login when needed.`,
	RunE: runStart,
}

func init() {
	startCmd.Flags().StringVar(&startRoute, "route", "/", "view to open on start")
	rootCmd.AddCommand(startCmd)
}

func runStart(cmd *cobra.Command, args []string) error {
	app, err := newAppContext()
	if err != nil {
		return err
	}
	defer app.Close()

	start, err := route.Parse(startRoute)
	if err != nil {
		return fmt.Errorf("invalid route %q: %w", startRoute, err)
	}

	// Session transitions are logged outside the TUI's own update loop, so
	// the debug log records them even when no view is watching.
	app.session.Subscribe(func(state auth.State) {
		app.log.Info("session state changed",
			"authenticated", state.Authenticated(), "loading", state.Loading)
	})

	app.log.Info("starting TUI", "route", start.Path(), "server", app.cfg.Server.BaseURL)
	return tui.New(app.client, app.session, app.cfg, app.log, start).Run()
}
