package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/prismtrack/console/internal/logging"
)

var rootCmd = &cobra.Command{
	Use:           "prismtrack-console",
	Short:         "PrismTrack Console serves the workforce-monitoring admin UI.",
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		structured := commandUsesStructuredLogging(cmd)
		setCommandExecutionContext(commandExecutionContext{
			CommandPath:       cmd.CommandPath(),
			UsesStructuredLog: structured,
		})
		if structured {
			if _, err := logging.BootstrapFromEnv(logging.BootstrapOptions{
				Command: cmd.CommandPath(),
				Writer:  os.Stderr,
			}); err != nil {
				return err
			}
		}
		return nil
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(serveCmd, migrateCmd, checkCmd)
}
