package testutil

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"confedit/internal/ports"
)

// TestFileSystem provides real file system operations sandboxed within a temporary directory.
// All paths are automatically resolved relative to the sandbox directory.
// Use this in tests that need to actually read/write files.
// For unit tests that mock file system calls, use MockFileSystem instead.
type TestFileSystem struct {
	baseDir string
}

var _ ports.FileSystem = (*TestFileSystem)(nil)

// NewTestFileSystem creates a sandboxed file system within a temporary directory.
// The directory is automatically cleaned up when the test completes.
func NewTestFileSystem(t *testing.T) *TestFileSystem {
	t.Helper()
	baseDir := t.TempDir()
	return &TestFileSystem{baseDir: baseDir}
}

// BaseDir returns the sandbox base directory path.
// Use this when you need to construct paths or verify file locations.
func (f *TestFileSystem) BaseDir() string {
	return f.baseDir
}

// resolvePath converts a path to be relative to the sandbox directory.
// Absolute paths and "~" are both rooted at the base directory.
func (f *TestFileSystem) resolvePath(path string) string {
	path = strings.TrimPrefix(path, "~")
	cleanPath := filepath.Clean(path)
	if filepath.IsAbs(cleanPath) {
		// Remove the root to make it relative (e.g., "/foo/bar" -> "foo/bar")
		cleanPath = cleanPath[1:]
	}
	return filepath.Join(f.baseDir, cleanPath)
}

func (f *TestFileSystem) ResolvePath(path string) (string, error) {
	if path == "" {
		return "", errors.New("empty path")
	}
	return f.resolvePath(path), nil
}

func (f *TestFileSystem) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(f.resolvePath(path))
}

func (f *TestFileSystem) ReadFileIfExists(path string) ([]byte, bool, error) {
	content, err := os.ReadFile(f.resolvePath(path))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return content, true, nil
}

func (f *TestFileSystem) WriteFile(path string, content []byte, _ ports.AccessMode) error {
	resolved := f.resolvePath(path)
	// Ensure parent directory exists
	if err := os.MkdirAll(filepath.Dir(resolved), 0700); err != nil {
		return err
	}
	return os.WriteFile(resolved, content, 0600)
}

func (f *TestFileSystem) FileExists(path string) (bool, error) {
	_, err := os.Stat(f.resolvePath(path))
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}

func (f *TestFileSystem) RemoveFile(path string) error {
	if err := os.Remove(f.resolvePath(path)); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// WriteString seeds a file in the sandbox and fails the test on error.
func (f *TestFileSystem) WriteString(t *testing.T, path, content string) {
	t.Helper()
	if err := f.WriteFile(path, []byte(content), ports.ReadWrite); err != nil {
		t.Fatalf("failed to seed %s: %v", path, err)
	}
}

// ReadString returns the contents of a sandbox file and fails the test when
// it cannot be read.
func (f *TestFileSystem) ReadString(t *testing.T, path string) string {
	t.Helper()
	content, err := f.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read %s: %v", path, err)
	}
	return string(content)
}
