package cmd

import (
	"confedit/cmd/cli/app"
	"confedit/internal/core/handler"

	"github.com/spf13/cobra"
)

func init() {
	setCmd.Flags().Bool("append", false, "Append values to the sequence at PATH")
	setCmd.Flags().Bool("replace", false, "Replace the sequence at PATH with the values")
	setCmd.MarkFlagsMutuallyExclusive("append", "replace")
	addEditFlags(setCmd)
	rootCmd.AddCommand(setCmd)
}

var setCmd = &cobra.Command{
	Use:   "set FILE PATH=VALUE...",
	Short: "Sets keys in a structured file",
	Long: `Sets each PATH to VALUE. PATH is a dot-separated key path, VALUE is
parsed as YAML so numbers, booleans, lists and mappings keep their type.
Existing mappings are merged and existing sequences are extended.

An empty PATH (=VALUE) merges a mapping into the document root.`,
	Example: `  confedit set package.json version=1.2.0 private=true
  confedit set --append .github/workflows/ci.yaml jobs.test.steps='[{run: make}]'
  confedit set --replace pyproject.toml project.dependencies='[requests]'`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		options, err := editOptions(cmd)
		if err != nil {
			return err
		}

		mode := handler.SetModeMerge
		if appendValues, _ := cmd.Flags().GetBool("append"); appendValues {
			mode = handler.SetModeAppend
		}
		if replaceValues, _ := cmd.Flags().GetBool("replace"); replaceValues {
			mode = handler.SetModeReplace
		}

		assignments := make([]handler.Assignment, 0, len(args)-1)
		for _, arg := range args[1:] {
			assignment, err := handler.ParseAssignment(arg)
			if err != nil {
				return err
			}
			assignments = append(assignments, assignment)
		}

		h, err := app.InjectSetCommandHandler(settings(cmd))
		if err != nil {
			return err
		}

		return h.Handle(args[0], assignments, mode, options)
	},
}
