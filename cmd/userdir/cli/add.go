package cli

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/userdir/userdir/internal/print"
	"github.com/userdir/userdir/internal/users"
)

func AddCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Save a user to the store and add it to the directory",
		Long:  "Save a user to the store and add it to the directory. With the memory store the user only lives for this run.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if v.GetString("username") == "" || v.GetString("password") == "" {
				return errors.New("--username and --password are required")
			}

			as, err := newAppState(cmd.Context())
			if err != nil {
				return err
			}
			defer as.Close()

			user := users.NewUser(v.GetInt64("id"), v.GetString("username"), v.GetString("password"))
			if err := as.Store.SaveUser(cmd.Context(), user); err != nil {
				return errors.Wrap(err, "failed to save user")
			}
			as.Directory.Add(user)

			return errors.Wrap(print.Users(cmd.OutOrStdout(), as.Directory.GetAll(), v.GetString("output")), "failed to print users")
		},
	}

	cmd.Flags().Int64("id", 0, "user id")
	cmd.Flags().String("username", "", "username")
	cmd.Flags().String("password", "", "password")
	cmd.Flags().StringP("output", "o", "", "output format. supported values: json")

	return cmd
}
