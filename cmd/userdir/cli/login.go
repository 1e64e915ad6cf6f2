package cli

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/userdir/userdir/internal/print"
)

var errLoginFailed = errors.New("no user matches the given username and password")

func LoginCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Check a username and password against the directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			as, err := newAppState(cmd.Context())
			if err != nil {
				return err
			}
			defer as.Close()

			user, ok, err := as.Directory.Login(v.GetString("username"), v.GetString("password"))
			if err != nil {
				return errors.Wrap(err, "login rejected")
			}
			if !ok {
				as.Logger.Info("Login failed", zap.String("username", v.GetString("username")))
				return errLoginFailed
			}

			return errors.Wrap(print.User(cmd.OutOrStdout(), user, v.GetString("output")), "failed to print user")
		},
	}

	cmd.Flags().String("username", "", "username to log in with")
	cmd.Flags().String("password", "", "password to log in with")
	cmd.Flags().StringP("output", "o", "", "output format. supported values: json")

	return cmd
}
