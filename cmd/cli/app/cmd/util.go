package cmd

import (
	"fmt"

	"confedit/internal/core/domain"
	"confedit/internal/core/handler"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var formatNames = []cobra.Completion{"json", "yaml", "toml", "text"}

func formatCompletion(
	cmd *cobra.Command,
	args []string,
	toComplete string,
) ([]cobra.Completion, cobra.ShellCompDirective) {
	return formatNames, cobra.ShellCompDirectiveNoFileComp
}

// optionalFormat parses a format flag. An unset flag yields nil so the
// format is detected from the file extension.
func optionalFormat(flags *pflag.FlagSet, name string) (*domain.Format, error) {
	raw, err := flags.GetString(name)
	if err != nil {
		return nil, err
	}
	if raw == "" {
		return nil, nil
	}
	format, err := domain.ParseFormat(raw)
	if err != nil {
		return nil, fmt.Errorf("--%s: %w", name, err)
	}
	return &format, nil
}

func addEditFlags(cmd *cobra.Command) {
	cmd.Flags().String("format", "", "Format of the input file (default: detected from the extension)")
	cmd.Flags().StringP("output", "o", "", "Write the result to this file instead")
	cmd.Flags().String("output-format", "", "Format of the written file")
	cmd.Flags().Bool("blank", false, "Ignore the current content and start from an empty document")
	_ = cmd.RegisterFlagCompletionFunc("format", formatCompletion)
	_ = cmd.RegisterFlagCompletionFunc("output-format", formatCompletion)
}

func editOptions(cmd *cobra.Command) (handler.EditOptions, error) {
	flags := cmd.Flags()
	format, err := optionalFormat(flags, "format")
	if err != nil {
		return handler.EditOptions{}, err
	}
	outputFormat, err := optionalFormat(flags, "output-format")
	if err != nil {
		return handler.EditOptions{}, err
	}
	output, err := flags.GetString("output")
	if err != nil {
		return handler.EditOptions{}, err
	}
	blank, err := flags.GetBool("blank")
	if err != nil {
		return handler.EditOptions{}, err
	}
	return handler.EditOptions{
		Format:       format,
		Output:       output,
		OutputFormat: outputFormat,
		Blank:        blank,
		DryRun:       isDryRun(),
	}, nil
}
