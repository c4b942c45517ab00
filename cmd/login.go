package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/storekeep/storekeep/internal/auth"
	"github.com/storekeep/storekeep/internal/prompt"
)

var loginCmdFlags struct {
	Name     string
	Password string
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Check a user name and password",
	Long:  `Check a user name and password against the users table and report whether the user is an admin.`,
	Example: `storekeep login --name alice
  storekeep login --name alice --password secret`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		_, db, err := openDatabase()
		if err != nil {
			return err
		}
		defer db.Close() //nolint: errcheck

		p := prompt.New(cmd.InOrStdin(), cmd.OutOrStdout())
		password := loginCmdFlags.Password
		if !cmd.Flags().Changed("password") {
			if password, err = p.Line("Password: "); err != nil {
				return fmt.Errorf("failed to read password: %w", err)
			}
		}

		res, err := auth.Login(cmd.Context(), db, loginCmdFlags.Name, password)
		if err != nil {
			return err
		}

		role := "user"
		if res.IsAdmin {
			role = "admin"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Login successful: %s (%s)\n", res.Name, role) //nolint:errcheck
		return nil
	},
}

var checkAdminCmdFlags struct {
	Password string
}

var checkAdminCmd = &cobra.Command{
	Use:   "check-admin",
	Short: "Check that a password belongs to an admin",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		_, db, err := openDatabase()
		if err != nil {
			return err
		}
		defer db.Close() //nolint: errcheck

		password := checkAdminCmdFlags.Password
		if !cmd.Flags().Changed("password") {
			p := prompt.New(cmd.InOrStdin(), cmd.OutOrStdout())
			if password, err = p.Line("Admin password: "); err != nil {
				return fmt.Errorf("failed to read password: %w", err)
			}
		}

		if err := auth.CheckAdminPassword(cmd.Context(), db, password); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Admin password accepted.") //nolint:errcheck
		return nil
	},
}

func init() {
	loginCmd.Flags().StringVarP(&loginCmdFlags.Name, "name", "n", "", "User name")
	loginCmd.Flags().StringVarP(&loginCmdFlags.Password, "password", "p", "", "Password (prompted when omitted)")
	_ = loginCmd.MarkFlagRequired("name")

	checkAdminCmd.Flags().StringVarP(&checkAdminCmdFlags.Password, "password", "p", "", "Password (prompted when omitted)")

	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(checkAdminCmd)
}
