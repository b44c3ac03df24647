package cmd

import (
	"github.com/spf13/cobra"

	"github.com/oshokin/oneshot/internal/app"
	"github.com/oshokin/oneshot/internal/logger"
)

var (
	//nolint:gochecknoglobals // Cobra command requires a global definition.
	configCmd = &cobra.Command{
		Use:   "config",
		Short: "Manage the configuration file.",
		// The configuration is not loaded, so that a broken file can be replaced.
		PersistentPreRun: func(*cobra.Command, []string) {},
	}

	//nolint:gochecknoglobals // Cobra command requires a global definition.
	configInitCmd = &cobra.Command{
		Use:   "init [file]",
		Short: "Write a configuration file with the default settings.",
		Long: `Write a commented configuration file with the default settings.
The file is taken from the argument, then from --config, then defaults to .oneshot.yaml.`,
		Args: cobra.MaximumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			filename := configFilenameFromFlag
			if len(args) > 0 {
				filename = args[0]
			}

			force, _ := cmd.Flags().GetBool("force")

			if err := app.ExecuteConfigInitCommand(cmd.Context(), filename, force); err != nil {
				logger.Fatalf(cmd.Context(), "Failed to write configuration: %v", err)
			}
		},
	}
)

//nolint:gochecknoinits // Cobra requires the init function to set up flags before the command is executed.
func init() {
	configInitCmd.Flags().BoolP(
		"force",
		"f",
		false,
		"overwrite an existing file.")

	configCmd.AddCommand(configInitCmd)
}
