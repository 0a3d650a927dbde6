package handler

import (
	"errors"
	"fmt"
	"strings"

	"confedit/internal/cli/output"
	"confedit/internal/core"
	"confedit/internal/ports"
)

type DeleteCommandHandler struct {
	editor        *core.FileEditor
	terminalInput ports.TerminalInput
}

func ProvideDeleteCommandHandler(editor *core.FileEditor, terminalInput ports.TerminalInput) DeleteCommandHandler {
	return DeleteCommandHandler{editor: editor, terminalInput: terminalInput}
}

func (h *DeleteCommandHandler) Handle(files []string, dryRun bool, skipConfirmation bool) error {
	if len(files) == 0 {
		return errors.New("no files given")
	}

	if dryRun {
		for _, file := range files {
			output.PrintInfo(fmt.Sprintf("Would delete %s", file))
		}
		return nil
	}

	if !skipConfirmation {
		if !h.terminalInput.IsTerminal() {
			return fmt.Errorf("deleting files requires confirmation. Use --yes to skip in non-interactive mode")
		}

		output.PrintWarning(fmt.Sprintf("About to delete %d %s:", len(files), output.Plural(len(files), "file", "files")))
		for _, file := range files {
			fmt.Fprintf(output.Stdout, "  - %s\n", file)
		}

		response, err := h.terminalInput.ReadLine("Continue? [y/N] ")
		if err != nil {
			return fmt.Errorf("failed to read confirmation: %w", err)
		}
		response = strings.ToLower(strings.TrimSpace(response))
		if response != "y" && response != "yes" {
			output.PrintInfo("Delete cancelled")
			return nil
		}
	}

	for _, file := range files {
		if err := h.editor.Open(file).Delete(); err != nil {
			return err
		}
		output.PrintSuccess(fmt.Sprintf("Deleted %s", file))
	}
	return nil
}
