package cmd

import (
	"confedit/cmd/cli/app"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(initializeCmd)
}

var initializeCmd = &cobra.Command{
	Use:   "initialize",
	Short: "Writes a configuration file with the default values",
	Long:  `The default configuration is written to ~/.confedit.yaml, or to the file given with --config. The file is not created if it already exists.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		h, err := app.InjectInitializeCommandHandler(settings(cmd))
		if err != nil {
			return err
		}

		return h.Handle()
	},
}
