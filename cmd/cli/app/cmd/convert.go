package cmd

import (
	"confedit/cmd/cli/app"

	"github.com/spf13/cobra"
)

func init() {
	convertCmd.Flags().String("from", "", "Format of INPUT (default: detected from the extension)")
	convertCmd.Flags().String("to", "", "Format of OUTPUT (default: detected from the extension)")
	_ = convertCmd.RegisterFlagCompletionFunc("from", formatCompletion)
	_ = convertCmd.RegisterFlagCompletionFunc("to", formatCompletion)
	rootCmd.AddCommand(convertCmd)
}

var convertCmd = &cobra.Command{
	Use:   "convert INPUT OUTPUT",
	Short: "Rewrites a file in another format",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		from, err := optionalFormat(cmd.Flags(), "from")
		if err != nil {
			return err
		}
		to, err := optionalFormat(cmd.Flags(), "to")
		if err != nil {
			return err
		}

		h, err := app.InjectConvertCommandHandler(settings(cmd))
		if err != nil {
			return err
		}

		return h.Handle(args[0], args[1], from, to, isDryRun())
	},
}
