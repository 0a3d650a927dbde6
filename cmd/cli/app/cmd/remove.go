package cmd

import (
	"confedit/cmd/cli/app"

	"github.com/spf13/cobra"
)

func init() {
	addEditFlags(removeCmd)
	rootCmd.AddCommand(removeCmd)
}

var removeCmd = &cobra.Command{
	Use:     "remove FILE PATH...",
	Aliases: []string{"rm"},
	Short:   "Removes keys from a structured file",
	Long:    `Removes each dot-separated PATH. Paths that do not exist are ignored.`,
	Args:    cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		options, err := editOptions(cmd)
		if err != nil {
			return err
		}

		h, err := app.InjectRemoveCommandHandler(settings(cmd))
		if err != nil {
			return err
		}

		return h.Handle(args[0], args[1:], options)
	},
}
