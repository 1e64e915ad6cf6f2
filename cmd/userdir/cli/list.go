package cli

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/userdir/userdir/internal/print"
)

func ListCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List users held by the directory",
		Long:    "List users in insertion order, or keyed by ID with --by-id (later entries win on duplicate IDs).",
		RunE: func(cmd *cobra.Command, args []string) error {
			as, err := newAppState(cmd.Context())
			if err != nil {
				return err
			}
			defer as.Close()

			if v.GetBool("by-id") {
				return errors.Wrap(print.UsersByID(cmd.OutOrStdout(), as.Directory.GetAllConvertedByID(), v.GetString("output")), "failed to print users")
			}
			return errors.Wrap(print.Users(cmd.OutOrStdout(), as.Directory.GetAll(), v.GetString("output")), "failed to print users")
		},
	}

	cmd.Flags().Bool("by-id", false, "print the by-id view of the directory")
	cmd.Flags().StringP("output", "o", "", "output format. supported values: json")

	return cmd
}
