package testutil

import (
	"confedit/internal/ports"
	"github.com/stretchr/testify/mock"
)

type MockFileSystem struct {
	mock.Mock
}

var _ ports.FileSystem = (*MockFileSystem)(nil)

func (m *MockFileSystem) ResolvePath(path string) (string, error) {
	args := m.Called(path)
	return args.String(0), args.Error(1)
}

func (m *MockFileSystem) ReadFile(path string) ([]byte, error) {
	args := m.Called(path)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockFileSystem) ReadFileIfExists(path string) ([]byte, bool, error) {
	args := m.Called(path)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).([]byte), args.Bool(1), args.Error(2)
}

func (m *MockFileSystem) WriteFile(path string, content []byte, accessMode ports.AccessMode) error {
	args := m.Called(path, content, accessMode)
	return args.Error(0)
}

func (m *MockFileSystem) FileExists(path string) (bool, error) {
	args := m.Called(path)
	return args.Bool(0), args.Error(1)
}

func (m *MockFileSystem) RemoveFile(path string) error {
	args := m.Called(path)
	return args.Error(0)
}
