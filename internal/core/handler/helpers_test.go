package handler

import (
	"log/slog"
	"testing"

	"confedit/internal/core"
	"confedit/internal/core/domain"
	"confedit/internal/testutil"

	"github.com/stretchr/testify/mock"
)

func newTestEditor(t *testing.T) (*core.FileEditor, *testutil.TestFileSystem) {
	t.Helper()
	fs := testutil.NewTestFileSystem(t)
	config := domain.CreateDefaultConfig()
	editor := core.ProvideFileEditor(fs, &config, core.ProvideLinePatcher(&config), slog.New(slog.DiscardHandler))
	return editor, fs
}

// newQuietDiffer accepts any diff request.
func newQuietDiffer() *testutil.MockDiffer {
	differ := new(testutil.MockDiffer)
	differ.On("LineDiff", mock.Anything, mock.Anything).Return("")
	differ.On("MergePatch", mock.Anything, mock.Anything).Return([]byte("{}"), nil)
	return differ
}
