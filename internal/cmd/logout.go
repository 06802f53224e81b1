package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Close the session",
	Long: `Invalidate the session on the backend and remove the persisted
session file. The local session is cleared even if the server is unreachable.`,
	RunE: runLogout,
}

func init() {
	rootCmd.AddCommand(logoutCmd)
}

func runLogout(cmd *cobra.Command, args []string) error {
	app, err := newAppContext()
	if err != nil {
		return err
	}
	defer app.Close()

	if err := app.session.Logout(context.Background()); err != nil {
		app.log.Warn("server logout failed", "error", err)
		fmt.Println("No se pudo contactar con el servidor; la sesión local se ha borrado igualmente")
		return nil
	}

	fmt.Println("Sesión cerrada")
	return nil
}
