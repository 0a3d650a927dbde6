package handler

import (
	"testing"

	"confedit/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvertCommandHandler_HandleDetectsFormats(t *testing.T) {
	editor, fs := newTestEditor(t)
	fs.WriteString(t, "package.json", `{"name": "demo", "version": "1.0.0"}`)
	sut := ProvideConvertCommandHandler(editor, newQuietDiffer())

	err := sut.Handle("package.json", "package.toml", nil, nil, false)

	require.NoError(t, err)
	assert.Equal(t, "name = 'demo'\nversion = '1.0.0'\n", fs.ReadString(t, "package.toml"))
}

func TestConvertCommandHandler_HandleExplicitFormats(t *testing.T) {
	editor, fs := newTestEditor(t)
	fs.WriteString(t, "config", "name: demo\n")
	sut := ProvideConvertCommandHandler(editor, newQuietDiffer())
	from := domain.FormatYAML
	to := domain.FormatJSON

	err := sut.Handle("config", "config.out", &from, &to, false)

	require.NoError(t, err)
	assert.Equal(t, "{\n    \"name\": \"demo\"\n}\n", fs.ReadString(t, "config.out"))
}

func TestConvertCommandHandler_HandleTOMLRejectsSequenceRoot(t *testing.T) {
	editor, fs := newTestEditor(t)
	fs.WriteString(t, "list.json", `[1, 2]`)
	sut := ProvideConvertCommandHandler(editor, newQuietDiffer())

	err := sut.Handle("list.json", "list.toml", nil, nil, false)

	assert.ErrorIs(t, err, domain.ErrUnsupportedRootShape)
	exists, statErr := fs.FileExists("list.toml")
	require.NoError(t, statErr)
	assert.False(t, exists)
}

func TestConvertCommandHandler_HandleDryRun(t *testing.T) {
	editor, fs := newTestEditor(t)
	fs.WriteString(t, "a.json", `{"a": 1}`)
	differ := newQuietDiffer()
	sut := ProvideConvertCommandHandler(editor, differ)

	err := sut.Handle("a.json", "a.yaml", nil, nil, true)

	require.NoError(t, err)
	exists, statErr := fs.FileExists("a.yaml")
	require.NoError(t, statErr)
	assert.False(t, exists)
	// a new output file is diffed against nothing
	differ.AssertCalled(t, "LineDiff", "", "a: 1\n")
}
