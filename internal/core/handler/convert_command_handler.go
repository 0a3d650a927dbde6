package handler

import (
	"confedit/internal/core"
	"confedit/internal/core/domain"
	"confedit/internal/ports"
)

type ConvertCommandHandler struct {
	editor *core.FileEditor
	differ ports.Differ
}

func ProvideConvertCommandHandler(
	editor *core.FileEditor,
	differ ports.Differ,
) ConvertCommandHandler {
	return ConvertCommandHandler{
		editor: editor,
		differ: differ,
	}
}

// Handle rewrites input as output. Formats default to detection from the
// file extensions.
func (h *ConvertCommandHandler) Handle(input, output string, from, to *domain.Format, dryRun bool) error {
	options := EditOptions{
		Format:       from,
		Output:       output,
		OutputFormat: to,
		DryRun:       dryRun,
	}
	return commit(options.open(h.editor, input), dryRun, h.differ)
}
