package progress

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTracker(names []string) (*ConcurrentTracker, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	info := terminalInfo{width: 80}
	return NewConcurrentTrackerWithWriter(names, "Applying", buf, false, false, info), buf
}

func newTestTrackerWithColor(names []string) (*ConcurrentTracker, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	info := terminalInfo{ansi: true, width: 80}
	return NewConcurrentTrackerWithWriter(names, "Applying", buf, false, true, info), buf
}

func completionLines(output string) []string {
	var lines []string
	for _, line := range strings.Split(output, "\n") {
		if strings.Contains(line, "+ [") || strings.Contains(line, "x [") {
			lines = append(lines, line)
		}
	}
	return lines
}

func TestConcurrentTracker_SuccessLifecycle(t *testing.T) {
	tracker, buf := newTestTracker([]string{"settings.json"})
	tracker.Start()

	tracker.StartItem(0)
	assert.Equal(t, StatusRunning, tracker.items[0].Status)

	tracker.CompleteItem(0, nil)
	assert.Equal(t, StatusSuccess, tracker.items[0].Status)
	assert.Equal(t, 1, tracker.completed)
	assert.Equal(t, 0, tracker.inProgress)

	tracker.Stop()

	output := buf.String()
	assert.Contains(t, output, "Applying settings.json")
	assert.Contains(t, output, "(1 in progress)")
	assert.Contains(t, output, "[0/1]")
	assert.Contains(t, output, "[1/1]")
	assert.Contains(t, output, "(<1s)")
	assert.NotContains(t, output, "FAILED")
}

func TestConcurrentTracker_Failure(t *testing.T) {
	tracker, buf := newTestTracker([]string{"Cargo.toml"})
	tracker.Start()

	tracker.StartItem(0)
	tracker.CompleteItem(0, errors.New("unsupported root shape"))
	tracker.Stop()

	assert.Equal(t, StatusFailed, tracker.items[0].Status)
	assert.EqualError(t, tracker.items[0].Error, "unsupported root shape")

	lines := completionLines(buf.String())
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], "x [")
	assert.Contains(t, lines[0], "Cargo.toml")
	assert.Contains(t, lines[0], "FAILED")
}

func TestConcurrentTracker_OutOfOrderCompletion(t *testing.T) {
	names := []string{"a.json", "b.yaml", "c.txt"}
	tracker, buf := newTestTracker(names)
	tracker.Start()

	for i := range names {
		tracker.StartItem(i)
	}
	assert.Equal(t, 3, tracker.inProgress)

	tracker.CompleteItem(2, nil)
	tracker.CompleteItem(0, nil)
	tracker.CompleteItem(1, errors.New("boom"))
	tracker.Stop()

	lines := completionLines(buf.String())
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "[1/3]")
	assert.Contains(t, lines[0], "c.txt")
	assert.Contains(t, lines[1], "[2/3]")
	assert.Contains(t, lines[1], "a.json")
	assert.Contains(t, lines[2], "[3/3]")
	assert.Contains(t, lines[2], "b.yaml")
	assert.NotContains(t, lines[0], "FAILED")
	assert.NotContains(t, lines[1], "FAILED")
	assert.Contains(t, lines[2], "FAILED")
}

func TestConcurrentTracker_Summary(t *testing.T) {
	tracker, _ := newTestTracker([]string{"a", "b", "c"})
	tracker.Start()

	assert.Equal(t, "nothing done in <1s", tracker.Summary())

	tracker.StartItem(0)
	tracker.CompleteItem(0, nil)
	tracker.StartItem(1)
	tracker.CompleteItem(1, nil)
	tracker.StartItem(2)
	tracker.CompleteItem(2, errors.New("boom"))
	tracker.Stop()

	assert.Equal(t, "2 succeeded, 1 failed in <1s", tracker.Summary())
}

func TestConcurrentTracker_Colors(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		tracker, buf := newTestTrackerWithColor([]string{"a"})
		tracker.Start()
		tracker.StartItem(0)
		tracker.CompleteItem(0, nil)
		tracker.Stop()

		assert.Contains(t, buf.String(), "\033[32m+\033[0m")
		assert.Contains(t, buf.String(), "\033[2m")
	})

	t.Run("failure", func(t *testing.T) {
		tracker, buf := newTestTrackerWithColor([]string{"a"})
		tracker.Start()
		tracker.StartItem(0)
		tracker.CompleteItem(0, errors.New("timeout"))
		tracker.Stop()

		assert.Contains(t, buf.String(), "\033[31mx\033[0m")
		assert.Contains(t, buf.String(), "FAILED")
	})
}

func TestConcurrentTracker_StopIsIdempotent(t *testing.T) {
	tracker, _ := newTestTracker([]string{})
	tracker.Start()

	require.NotPanics(t, func() {
		tracker.Stop()
		tracker.Stop()
	})
}

func TestConcurrentTracker_TTYStartsAndStopsCleanly(t *testing.T) {
	buf := &bytes.Buffer{}
	info := terminalInfo{ansi: true, width: 80}
	tracker := NewConcurrentTrackerWithWriter([]string{"a"}, "Applying", buf, true, false, info)
	tracker.Start()

	tracker.StartItem(0)
	tracker.CompleteItem(0, nil)

	require.NotPanics(t, func() {
		tracker.Stop()
	})
	assert.NotContains(t, buf.String(), "in progress)...")
	assert.Contains(t, buf.String(), "\033[2K\r")
}
