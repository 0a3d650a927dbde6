package cmd

import (
	"confedit/cmd/cli/app"

	"github.com/spf13/cobra"
)

func init() {
	deleteCmd.Flags().BoolP("yes", "y", false, "Skip the confirmation prompt")
	rootCmd.AddCommand(deleteCmd)
}

var deleteCmd = &cobra.Command{
	Use:   "delete FILE...",
	Short: "Deletes files",
	Long:  `Deletes each FILE. Files that do not exist are ignored.`,
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		skipConfirmation, err := cmd.Flags().GetBool("yes")
		if err != nil {
			return err
		}

		h, err := app.InjectDeleteCommandHandler(settings(cmd))
		if err != nil {
			return err
		}

		return h.Handle(args, isDryRun(), skipConfirmation)
	},
}
