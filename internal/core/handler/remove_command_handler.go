package handler

import (
	"errors"

	"confedit/internal/core"
	"confedit/internal/ports"
)

type RemoveCommandHandler struct {
	editor *core.FileEditor
	differ ports.Differ
}

func ProvideRemoveCommandHandler(
	editor *core.FileEditor,
	differ ports.Differ,
) RemoveCommandHandler {
	return RemoveCommandHandler{
		editor: editor,
		differ: differ,
	}
}

func (h *RemoveCommandHandler) Handle(file string, paths []string, options EditOptions) error {
	if len(paths) == 0 {
		return errors.New("no keys given")
	}

	builder := options.open(h.editor, file)
	for _, path := range paths {
		builder.RemovePath(path)
	}

	return commit(builder, options.DryRun, h.differ)
}
