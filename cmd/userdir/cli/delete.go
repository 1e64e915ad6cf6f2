package cli

import (
	"fmt"
	"strconv"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func DeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete [id]",
		Short: "Delete a user through the store",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			userID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return errors.Wrapf(err, "invalid user id %q", args[0])
			}

			as, err := newAppState(cmd.Context())
			if err != nil {
				return err
			}
			defer as.Close()

			deleted, err := as.Directory.Delete(cmd.Context(), userID)
			if err != nil {
				return errors.Wrap(err, "failed to delete user")
			}

			fmt.Fprintf(cmd.OutOrStdout(), "deleted: %t\n", deleted)
			return nil
		},
	}

	return cmd
}
