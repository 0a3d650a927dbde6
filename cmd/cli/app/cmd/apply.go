package cmd

import (
	"confedit/cmd/cli/app"
	"confedit/internal/core/handler"

	"github.com/spf13/cobra"
)

func init() {
	applyCmd.Flags().StringArrayP("file", "f", nil, "Update script to apply (repeatable)")
	applyCmd.Flags().IntP("concurrency", "j", handler.DefaultApplyConcurrency, "Number of files updated in parallel")
	_ = applyCmd.MarkFlagRequired("file")
	rootCmd.AddCommand(applyCmd)
}

var applyCmd = &cobra.Command{
	Use:   "apply -f SCRIPT...",
	Short: "Applies update scripts",
	Long: `Reads YAML or JSON update scripts and applies their targets. Targets
that touch the same file run in script order; other targets run in
parallel. Nothing is reported as written until every target succeeded.`,
	Example: `  confedit apply -f update.yaml
  confedit apply --dry-run -f base.yaml -f overrides.json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		scripts, err := cmd.Flags().GetStringArray("file")
		if err != nil {
			return err
		}
		concurrency, err := cmd.Flags().GetInt("concurrency")
		if err != nil {
			return err
		}

		h, err := app.InjectApplyCommandHandler(settings(cmd))
		if err != nil {
			return err
		}

		return h.Handle(cmd.Context(), scripts, isDryRun(), concurrency)
	},
}
