package cli

import (
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/userdir/userdir/internal/config"
)

func RootCmd() *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix("USERDIR")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	cmd := &cobra.Command{
		Use:           "userdir",
		Short:         "Query and manage the user directory",
		Long:          `Loads users from the configured store into an in-memory directory and runs a single operation against it.`,
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := v.BindPFlags(cmd.LocalFlags()); err != nil {
				return errors.Wrap(err, "failed to bind flags")
			}
			return loadConfig(v)
		},
	}

	// keys match the config package's environment variables
	persistent := cmd.PersistentFlags()
	persistent.String("config", "", "path to the YAML config file (default userdir.yaml)")
	persistent.String("log-level", "", "log level: debug, info, warn or error")
	persistent.String("store", "", "user store: memory, sqlite or postgres")
	persistent.String("seed-file", "", "YAML file with users inserted into the store when missing")
	v.BindPFlag("config-file", persistent.Lookup("config"))
	v.BindPFlag("log-level", persistent.Lookup("log-level"))
	v.BindPFlag("store-type", persistent.Lookup("store"))
	v.BindPFlag("seed-file", persistent.Lookup("seed-file"))

	cmd.AddCommand(ListCmd(v))
	cmd.AddCommand(LoginCmd(v))
	cmd.AddCommand(AddCmd(v))
	cmd.AddCommand(DeleteCmd())
	cmd.AddCommand(MigrateCmd())
	cmd.AddCommand(CheckCmd())

	return cmd
}

func InitAndExecute() {
	if err := RootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig reads config file and environment, then applies flags on top
func loadConfig(v *viper.Viper) error {
	if err := config.LoadWithFile(v.GetString("config-file")); err != nil {
		return errors.Wrap(err, "failed to load config")
	}

	config.Set(func(c *config.Config) {
		if level := v.GetString("log-level"); level != "" {
			c.Common.Log.Level = level
		}
		if store := v.GetString("store-type"); store != "" {
			c.Common.Store.Type = store
		}
		if seedFile := v.GetString("seed-file"); seedFile != "" {
			c.Common.Directory.SeedFile = seedFile
		}
	})

	return errors.Wrap(config.Get().Validate(), "invalid config")
}
