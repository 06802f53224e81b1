// Package tui is the terminal front end for the reservation marketplace.
// Views mirror the web application's routes; a single update loop owns all
// state and every network call reports back through a typed message.
package tui

import (
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/CauceloJuanma/reserva/internal/auth"
	"github.com/CauceloJuanma/reserva/internal/config"
	"github.com/CauceloJuanma/reserva/internal/logging"
	"github.com/CauceloJuanma/reserva/internal/route"
)

// App wraps the Bubbletea program
type App struct {
	program *tea.Program
	model   Model
}

// New creates a new TUI application starting at the given route.
func New(backend Backend, session *auth.Manager, cfg *config.Config, log *logging.Logger, start route.Location) *App {
	return &App{
		model: NewModel(backend, session, cfg, log, start),
	}
}

// Run starts the TUI application and blocks until it exits.
func (a *App) Run() error {
	a.program = tea.NewProgram(
		a.model,
		tea.WithAltScreen(),
	)

	// Forward termination signals into the program so the terminal is
	// restored before the process exits.
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sigChan)

	go func() {
		<-sigChan
		if a.program != nil {
			a.program.Send(tea.Quit())
		}
	}()

	_, err := a.program.Run()
	return err
}
