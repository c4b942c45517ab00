package cmd

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/storekeep/storekeep/internal/inserter"
)

var addUsersCmd = &cobra.Command{
	Use:   "add-users",
	Short: "Insert users interactively",
	Long:  `Prompt for user name, password, email and admin flag and insert the user, repeating until you decline.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		_, db, err := openDatabase()
		if err != nil {
			return err
		}
		defer func() {
			if err := db.Close(); err != nil {
				log.Error("failed to close database", "error", err)
				return
			}
			fmt.Fprintln(cmd.OutOrStdout(), "\nConnection closed.") //nolint:errcheck
		}()

		if err := db.EnsureSchema(cmd.Context()); err != nil {
			log.Error("failed to create tables", "error", err)
		} else {
			log.Info("tables 'users' and 'inventario' ready")
		}

		_, err = inserter.New(db, cmd.InOrStdin(), cmd.OutOrStdout()).Run(cmd.Context())
		return err
	},
}

func init() {
	rootCmd.AddCommand(addUsersCmd)
}
