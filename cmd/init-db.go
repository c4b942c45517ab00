package cmd

import (
	"github.com/spf13/cobra"
	"github.com/storekeep/storekeep/internal/config"
	"github.com/storekeep/storekeep/internal/database"
	"github.com/storekeep/storekeep/internal/initializer"
)

var initDBCmdFlags struct {
	AddUser bool
	Admin   int
	DBPath  string
}

var initDBCmd = &cobra.Command{
	Use:   "init-db",
	Short: "Create the users and inventario tables",
	Long: `Create the users and inventario tables if they do not exist yet.

With --add-user a test user (user/user, user@example.com by default) is inserted
unless a user with that name already exists.`,
	Example: `storekeep init-db
  storekeep init-db --add-user
  storekeep init-db --add-user --admin 0 --db ./data/store.db`,
	Args: cobra.NoArgs,
	RunE: initDB,
}

func init() {
	initDBCmd.Flags().BoolVar(&initDBCmdFlags.AddUser, "add-user", false, "Add the test user")
	initDBCmd.Flags().IntVar(&initDBCmdFlags.Admin, "admin", database.AdminYes, "Admin flag of the test user (0 or 1)")
	initDBCmd.Flags().StringVar(&initDBCmdFlags.DBPath, "db", config.DefaultDatabasePath, "Path to the SQLite database (default: database.path from config)")

	rootCmd.AddCommand(initDBCmd)
}

func initDB(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	path := cfg.Database.Path
	if cmd.Flags().Changed("db") {
		path = initDBCmdFlags.DBPath
	}

	_, err = initializer.Run(cmd.Context(), initializer.OpenClient, initializer.Options{
		Path:    path,
		AddUser: initDBCmdFlags.AddUser,
		Admin:   initDBCmdFlags.Admin,
		Seed: database.User{
			Name:     cfg.Seed.Name,
			Password: cfg.Seed.Password,
			Email:    cfg.Seed.Email,
		},
	})
	return err
}
