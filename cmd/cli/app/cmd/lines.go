package cmd

import (
	"confedit/cmd/cli/app"
	"confedit/internal/core/domain"
	"confedit/internal/core/handler"

	"github.com/spf13/cobra"
)

// lineFlag records every occurrence of a line flag in a shared list so the
// operations run in command line order.
type lineFlag struct {
	kind string
	ops  *[]lineArg
}

type lineArg struct {
	kind string
	raw  string
}

func (f lineFlag) String() string { return "" }

func (f lineFlag) Set(raw string) error {
	*f.ops = append(*f.ops, lineArg{kind: f.kind, raw: raw})
	return nil
}

func (f lineFlag) Type() string { return "string" }

var lineArgs []lineArg

func init() {
	flags := []struct {
		kind  string
		usage string
	}{
		{handler.LineInsert, "Append TEXT as a new line"},
		{handler.LineInsertAt, "Insert a line before index N (N=TEXT)"},
		{handler.LineSet, "Overwrite the line at index N (N=TEXT)"},
		{handler.LineReplace, "Replace lines containing PATTERN (PATTERN=TEXT)"},
		{handler.LineSubstitute, "Replace OLD with NEW in every line (OLD=NEW)"},
		{handler.LineSubstituteIn, "Replace OLD with NEW in lines containing PATTERN (PATTERN:OLD=NEW)"},
		{handler.LineRemoveContaining, "Remove lines containing PATTERN"},
		{handler.LineRemoveAt, "Remove the line at index N"},
	}
	for _, f := range flags {
		linesCmd.Flags().Var(lineFlag{kind: f.kind, ops: &lineArgs}, f.kind, f.usage)
	}
	addEditFlags(linesCmd)
	rootCmd.AddCommand(linesCmd)
}

var linesCmd = &cobra.Command{
	Use:   "lines FILE",
	Short: "Edits a file line by line",
	Long: `Applies line operations in the order they are given. Structured files
must be read as text (--format text) to be edited line by line.`,
	Example: `  confedit lines --insert 'flask==2.0' requirements.txt
  confedit lines --replace-line 'django=django==4.2' --remove-containing '#' requirements.txt
  confedit lines --format text --substitute-in 'image:old=new' compose.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		options, err := editOptions(cmd)
		if err != nil {
			return err
		}

		ops := make([]domain.Operation, 0, len(lineArgs))
		for _, arg := range lineArgs {
			op, err := handler.ParseLineOperation(arg.kind, arg.raw)
			if err != nil {
				return err
			}
			ops = append(ops, op)
		}

		h, err := app.InjectLinesCommandHandler(settings(cmd))
		if err != nil {
			return err
		}

		return h.Handle(args[0], ops, options)
	},
}
