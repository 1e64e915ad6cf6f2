package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/userdir/userdir/internal/config"
)

func MigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Create the users table in the configured database",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := initLogger()
			if err != nil {
				return err
			}
			defer logger.Sync()

			storeType := config.Store().Type
			if storeType == config.StoreTypeMemory {
				fmt.Fprintln(cmd.OutOrStdout(), "memory store has no schema, nothing to migrate")
				return nil
			}

			// openStore creates missing tables before returning
			_, db, err := openStore(cmd.Context(), logger)
			if err != nil {
				return err
			}
			defer db.Close()

			logger.Info("Schema is up to date", zap.String("store", storeType))
			fmt.Fprintf(cmd.OutOrStdout(), "%s schema is up to date\n", storeType)
			return nil
		},
	}

	return cmd
}
