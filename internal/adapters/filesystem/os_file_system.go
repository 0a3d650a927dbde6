package filesystem

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"confedit/internal/core/domain"
	"confedit/internal/ports"
)

var ErrEmptyPath = errors.New("empty path")

// OsFileSystem resolves relative paths against an explicit working directory
// instead of the process working directory.
type OsFileSystem struct {
	workDir string
}

func ProvideOsFileSystem(config *domain.Config) *OsFileSystem {
	return &OsFileSystem{workDir: config.WorkDir}
}

var _ ports.FileSystem = (*OsFileSystem)(nil)

func (f *OsFileSystem) ResolvePath(path string) (string, error) {
	if path == "" {
		return "", ErrEmptyPath
	}

	if path == "~" || strings.HasPrefix(path, "~/") || strings.HasPrefix(path, `~\`) {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get user home directory: %w", err)
		}
		return filepath.Join(home, filepath.FromSlash(strings.ReplaceAll(path[1:], `\`, "/"))), nil
	}

	if filepath.IsAbs(path) {
		return filepath.Clean(path), nil
	}

	workDir, err := f.resolveWorkDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(workDir, path), nil
}

func (f *OsFileSystem) resolveWorkDir() (string, error) {
	if f.workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("failed to get working directory: %w", err)
		}
		return wd, nil
	}
	if f.workDir == "~" || strings.HasPrefix(f.workDir, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get user home directory: %w", err)
		}
		return filepath.Join(home, f.workDir[1:]), nil
	}
	return filepath.Abs(f.workDir)
}

func (f *OsFileSystem) ReadFile(path string) ([]byte, error) {
	resolved, err := f.ResolvePath(path)
	if err != nil {
		return nil, err
	}
	return os.ReadFile(resolved)
}

func (f *OsFileSystem) ReadFileIfExists(path string) ([]byte, bool, error) {
	resolved, err := f.ResolvePath(path)
	if err != nil {
		return nil, false, err
	}

	content, err := os.ReadFile(resolved)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read file: %w", err)
	}
	return content, true, nil
}

func (f *OsFileSystem) WriteFile(path string, content []byte, accessMode ports.AccessMode) error {
	resolved, err := f.ResolvePath(path)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(resolved), getOsFileModeForAccessMode(ports.ReadWriteExecute)); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	if err := os.WriteFile(resolved, content, getOsFileModeForAccessMode(accessMode)); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	return nil
}

func (f *OsFileSystem) FileExists(path string) (bool, error) {
	resolved, err := f.ResolvePath(path)
	if err != nil {
		return false, err
	}

	_, err = os.Stat(resolved)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, fmt.Errorf("failed to check if file exists: %w", err)
}

func (f *OsFileSystem) RemoveFile(path string) error {
	resolved, err := f.ResolvePath(path)
	if err != nil {
		return err
	}

	if err := os.Remove(resolved); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove file: %w", err)
	}
	return nil
}

func getOsFileModeForAccessMode(accessMode ports.AccessMode) os.FileMode {
	switch accessMode {
	case ports.ReadWrite:
		return 0600
	case ports.ReadWriteExecute:
		return 0700
	case ports.ReadAllWriteOwner:
		return 0644
	default:
		return 0600
	}
}
