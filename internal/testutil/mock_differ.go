package testutil

import (
	"confedit/internal/ports"
	"github.com/stretchr/testify/mock"
)

type MockDiffer struct {
	mock.Mock
}

var _ ports.Differ = (*MockDiffer)(nil)

func (m *MockDiffer) LineDiff(before, after string) string {
	args := m.Called(before, after)
	return args.String(0)
}

func (m *MockDiffer) MergePatch(before, after []byte) ([]byte, error) {
	args := m.Called(before, after)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}
