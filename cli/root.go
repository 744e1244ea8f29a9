package cli

import (
	"github.com/spf13/cobra"

	"furuth/config"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	EnvFile string
	Driver  string
}

// NewRootCommand creates the root command for the furuth CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "furuth",
		Short: "Furuth storefront backend",
		Long:  "Serve the Furuth storefront API and manage its catalog, orders and backups.",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if opts.EnvFile != "" {
				config.LoadEnv(opts.EnvFile)
			} else {
				config.LoadEnv()
			}
		},
	}

	cmd.PersistentFlags().StringVar(&opts.EnvFile, "env-file", "", "path to a .env file (default ./.env)")
	cmd.PersistentFlags().StringVar(&opts.Driver, "driver", "", "storage driver: memory, sqlite, mongo or postgres (overrides STORAGE_DRIVER)")

	cmd.AddCommand(NewServeCommand(opts))
	cmd.AddCommand(NewRestoreCommand(opts))
	cmd.AddCommand(NewExportCommand(opts))
	cmd.AddCommand(NewImportCommand(opts))
	cmd.AddCommand(NewOrdersCommand(opts))
	cmd.AddCommand(NewHashPasswordCommand())

	return cmd
}
