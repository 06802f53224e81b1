package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the current session",
	Long:  `Check the persisted session against the backend and print who is logged in.`,
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	app, err := newAppContext()
	if err != nil {
		return err
	}
	defer app.Close()

	state := app.session.Initialize(context.Background())
	if !state.Authenticated() {
		fmt.Println("No hay sesión activa")
		return nil
	}

	fmt.Printf("Sesión activa: %s %s <%s>\n", state.User.Nombre, state.User.Apellido, state.User.Correo)
	fmt.Printf("Servidor: %s\n", app.cfg.Server.BaseURL)
	return nil
}
