package cli

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/userdir/userdir/internal/config"
	"github.com/userdir/userdir/internal/database"
	"github.com/userdir/userdir/internal/health"
	"github.com/userdir/userdir/internal/print"
)

func CheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Verify configuration and store connectivity",
		RunE: func(cmd *cobra.Command, args []string) error {
			as, err := newAppState(cmd.Context())
			if err != nil {
				return err
			}
			defer as.Close()

			manager := health.NewManager(as.Logger)
			manager.AddChecker(health.CheckFunc{
				CheckName: "configuration",
				Critical:  true,
				Fn: func(ctx context.Context) error {
					return config.Get().Validate()
				},
			})
			if as.db != nil {
				manager.AddChecker(database.NewHealthChecker(as.db))
			}
			manager.AddChecker(health.CheckFunc{
				CheckName: "directory",
				Critical:  false,
				Fn: func(ctx context.Context) error {
					if len(as.Directory.GetAll()) == 0 {
						return errors.New("directory holds no users")
					}
					return nil
				},
			})

			results, runErr := manager.Run(cmd.Context())

			w := print.NewTabWriter(cmd.OutOrStdout())
			fmt.Fprintf(w, "%s\t%s\t%s\n", "CHECK", "CRITICAL", "STATUS")
			for _, r := range results {
				status := "ok"
				if !r.Healthy() {
					status = r.Error
				}
				fmt.Fprintf(w, "%s\t%t\t%s\n", r.Name, r.Critical, status)
			}
			w.Flush()

			return runErr
		},
	}

	return cmd
}
