// Command pigbot runs the pig game API and a few operator commands.
//
//	pigbot serve                      run the HTTP API
//	pigbot migrate                    create or update the schema
//	pigbot size <owner_id> [date]     daily hand pig size
//	pigbot overclock <owner_id> [date]
//	pigbot token <client> [--ttl 24h] sign a service token for a frontend
package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "pigbot",
		Short:         "Pig game engine for the pigbot Telegram frontend",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			envFile, _ := cmd.Flags().GetString("env-file")
			if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(err) {
				return err
			}
			return nil
		},
	}
	root.PersistentFlags().String("env-file", ".env", "dotenv file loaded before reading the environment")

	root.AddCommand(
		newServeCmd(),
		newMigrateCmd(),
		newSizeCmd(),
		newOverclockCmd(),
		newTokenCmd(),
	)
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		log.Error().Err(err).Msg("pigbot failed")
		os.Exit(1)
	}
}
