package handler

import (
	"fmt"
	"strings"

	"confedit/internal/cli/output"
	"confedit/internal/core"
	"confedit/internal/core/codec"
	"confedit/internal/core/domain"
	"confedit/internal/ports"
)

// EditOptions are the target options shared by the editing commands.
type EditOptions struct {
	Format       *domain.Format
	Output       string
	OutputFormat *domain.Format
	Blank        bool
	DryRun       bool
}

func (o EditOptions) open(editor *core.FileEditor, file string) *core.FileBuilder {
	builder := editor.Open(file)
	if o.Format != nil {
		builder.As(*o.Format)
	}
	if o.Blank {
		builder.Blank()
	}
	switch {
	case o.OutputFormat != nil:
		out := o.Output
		if out == "" {
			out = file
		}
		builder.WriteAs(out, *o.OutputFormat)
	case o.Output != "":
		builder.WriteTo(o.Output)
	}
	return builder
}

// run saves the document, or only renders it on a dry run.
func run(builder *core.FileBuilder, dryRun bool) (core.Result, error) {
	if dryRun {
		return builder.Render()
	}
	return builder.Save()
}

func commit(builder *core.FileBuilder, dryRun bool, differ ports.Differ) error {
	result, err := run(builder, dryRun)
	if err != nil {
		return err
	}
	report(result, dryRun, differ)
	return nil
}

func report(result core.Result, dryRun bool, differ ports.Differ) {
	if result.Fallback != nil {
		output.PrintWarning(fmt.Sprintf("%s is not valid %s, edited as text", result.Path, result.Fallback.Requested))
	}
	if dryRun {
		printPreview(result, differ)
		return
	}
	printSaved(result)
}

func printSaved(result core.Result) {
	switch {
	case !result.Changed():
		output.PrintInfo(fmt.Sprintf("%s is unchanged", result.OutputPath))
	case result.Existed && result.OutputPath == result.Path:
		output.PrintSuccess(fmt.Sprintf("Updated %s", result.OutputPath))
	default:
		output.PrintSuccess(fmt.Sprintf("Wrote %s (%s)", result.OutputPath, result.OutputFormat))
	}
}

func printPreview(result core.Result, differ ports.Differ) {
	output.PrintHeader(fmt.Sprintf("%s (dry run)", result.OutputPath))
	if !result.Changed() {
		output.PrintInfo("No changes")
		fmt.Fprintln(output.Stdout)
		return
	}

	before := ""
	if result.OutputPath == result.Path {
		before = string(result.Before)
	}
	for _, line := range strings.SplitAfter(differ.LineDiff(before, string(result.Output)), "\n") {
		fmt.Fprint(output.Stdout, styleDiffLine(line))
	}

	if patch := mergePatch(result, differ); patch != "" {
		output.PrintSecondary("merge patch: " + patch)
	}
	fmt.Fprintln(output.Stdout)
}

func styleDiffLine(line string) string {
	switch {
	case strings.HasPrefix(line, "@@"):
		return output.Dim(line)
	case strings.HasPrefix(line, "+"):
		return output.Success(line)
	case strings.HasPrefix(line, "-"):
		return output.Error(line)
	default:
		return line
	}
}

// mergePatch summarises a structured change as an RFC 7396 merge patch. It
// is empty for text documents and non-mapping roots.
func mergePatch(result core.Result, differ ports.Differ) string {
	if !result.Base.IsMapping() || !result.Document.IsMapping() {
		return ""
	}
	compact := codec.Options{}
	before, err := codec.Encode(domain.FormatJSON, result.Base, compact)
	if err != nil {
		return ""
	}
	after, err := codec.Encode(domain.FormatJSON, result.Document, compact)
	if err != nil {
		return ""
	}
	patch, err := differ.MergePatch(before, after)
	if err != nil {
		return ""
	}
	return string(patch)
}
