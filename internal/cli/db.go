package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/carbonex/footprint/internal/assessdb"
	"github.com/carbonex/footprint/internal/config"
)

func newDBCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "db",
		Short: "Database maintenance commands",
	}
	cmd.AddCommand(NewDBMigrateCmd())
	return cmd
}

// NewDBMigrateCmd creates the db migrate command.
func NewDBMigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending schema migrations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			cfg := config.FromContext(ctx)

			databaseURL, _ := cmd.Flags().GetString("database-url")
			if databaseURL == "" {
				databaseURL = cfg.DatabaseURL
			}
			if databaseURL == "" {
				return fmt.Errorf("no database configured (set --database-url or %s)", config.EnvDatabaseURL)
			}

			if err := assessdb.Migrate(ctx, databaseURL); err != nil {
				return err
			}
			cmd.Println("Migrations applied")
			return nil
		},
	}

	cmd.Flags().String("database-url", "", "PostgreSQL connection string")
	return cmd
}
