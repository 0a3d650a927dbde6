package progress

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"golang.org/x/term"
)

// ConcurrentTrackerItem represents a single task being tracked concurrently
type ConcurrentTrackerItem struct {
	Name      string
	Status    Status
	Duration  time.Duration
	Error     error
	startTime time.Time
}

// ConcurrentTracker reports tasks that run in parallel. Progress goes to
// stderr so stdout stays free for command output such as dry-run diffs.
type ConcurrentTracker struct {
	mu           sync.Mutex
	wg           sync.WaitGroup
	items        []ConcurrentTrackerItem
	total        int
	completed    int
	failed       int
	inProgress   int
	isTTY        bool
	useColor     bool
	terminal     terminalInfo
	stopChan     chan struct{}
	stopOnce     sync.Once
	spinnerFrame int
	actionVerb   string
	startTime    time.Time
	writer       io.Writer
}

func NewConcurrentTracker(names []string, verb string) *ConcurrentTracker {
	_, noColor := os.LookupEnv("NO_COLOR")
	isTTY := term.IsTerminal(int(os.Stderr.Fd()))
	info := detectTerminal(os.Stderr)
	return NewConcurrentTrackerWithWriter(names, verb, os.Stderr, isTTY, !noColor && isTTY && info.ansi, info)
}

// NewConcurrentTrackerWithWriter creates a concurrent tracker with an injectable writer
// and explicit terminal settings, bypassing auto-detection. Intended for testing.
func NewConcurrentTrackerWithWriter(names []string, verb string, writer io.Writer, isTTY bool, useColor bool, info terminalInfo) *ConcurrentTracker {
	items := make([]ConcurrentTrackerItem, len(names))
	for i, name := range names {
		items[i] = ConcurrentTrackerItem{Name: name, Status: StatusPending}
	}

	return &ConcurrentTracker{
		items:      items,
		total:      len(names),
		isTTY:      isTTY,
		useColor:   useColor,
		terminal:   info,
		stopChan:   make(chan struct{}),
		actionVerb: verb,
		writer:     writer,
	}
}

// Start begins tracking and starts the spinner animation if in TTY mode
func (t *ConcurrentTracker) Start() {
	t.startTime = time.Now()
	if t.isTTY {
		t.wg.Add(1)
		go t.animate()
	}
}

func (t *ConcurrentTracker) StartItem(index int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.items[index].Status = StatusRunning
	t.items[index].startTime = time.Now()
	t.inProgress++

	if !t.isTTY {
		fmt.Fprintf(t.writer, "[%s] [%d/%d] %s %s (%d in progress)...\n",
			timestamp(), t.completed, t.total, t.actionVerb, t.items[index].Name, t.inProgress)
	}
}

// CompleteItem records the outcome of an item and prints its status line.
func (t *ConcurrentTracker) CompleteItem(index int, err error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	item := &t.items[index]
	item.Duration = time.Since(item.startTime)
	item.Status = StatusSuccess
	if err != nil {
		item.Status = StatusFailed
		item.Error = err
		t.failed++
	}
	t.inProgress--
	t.completed++

	counter := fmt.Sprintf("[%d/%d]", t.completed, t.total)
	if t.isTTY {
		fmt.Fprint(t.writer, t.terminal.clearLine())
	} else {
		counter = fmt.Sprintf("[%s] %s", timestamp(), counter)
	}

	suffix := fmt.Sprintf("(%s)", FormatDuration(item.Duration))
	if item.Status == StatusFailed {
		suffix += " FAILED"
	}

	fmt.Fprintf(t.writer, "  %s %s  %s  %s\n", t.symbol(item.Status), t.dim(counter), item.Name, t.dim(suffix))
}

// Summary describes the finished items, e.g. "3 succeeded, 1 failed in 2s".
func (t *ConcurrentTracker) Summary() string {
	t.mu.Lock()
	defer t.mu.Unlock()

	var parts []string
	if succeeded := t.completed - t.failed; succeeded > 0 {
		parts = append(parts, fmt.Sprintf("%d succeeded", succeeded))
	}
	if t.failed > 0 {
		parts = append(parts, fmt.Sprintf("%d failed", t.failed))
	}
	if len(parts) == 0 {
		parts = append(parts, "nothing done")
	}
	return fmt.Sprintf("%s in %s", strings.Join(parts, ", "), FormatDuration(time.Since(t.startTime)))
}

// Stop ends the progress tracking. It is safe to call more than once.
func (t *ConcurrentTracker) Stop() {
	t.stopOnce.Do(func() {
		close(t.stopChan)
	})
	t.wg.Wait()

	if t.isTTY {
		t.mu.Lock()
		if t.useColor {
			fmt.Fprint(t.writer, "\033[0m")
		}
		fmt.Fprint(t.writer, t.terminal.clearLine())
		t.mu.Unlock()
	}
}

func (t *ConcurrentTracker) symbol(status Status) string {
	switch {
	case status == StatusFailed && t.useColor:
		return "\033[31mx\033[0m"
	case status == StatusFailed:
		return "x"
	case t.useColor:
		return "\033[32m+\033[0m"
	default:
		return "+"
	}
}

func (t *ConcurrentTracker) dim(text string) string {
	if !t.useColor {
		return text
	}
	return "\033[2m" + text + "\033[0m"
}

func (t *ConcurrentTracker) animate() {
	defer t.wg.Done()
	ticker := time.NewTicker(200 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-t.stopChan:
			return
		case <-ticker.C:
			t.mu.Lock()
			if t.inProgress > 0 {
				t.spinnerFrame++
				spinner := spinnerFrames[t.spinnerFrame%len(spinnerFrames)]
				counter := fmt.Sprintf("[%d/%d]", t.completed, t.total)
				status := fmt.Sprintf("%d in progress...", t.inProgress)
				elapsed := FormatDuration(time.Since(t.startTime))

				line := fmt.Sprintf("  %s %s  %s  %s", spinner, counter, status, elapsed)
				if t.useColor {
					line = fmt.Sprintf("  \033[1m%s %s  %s\033[0m  \033[2m%s\033[0m", spinner, counter, status, elapsed)
				}
				fmt.Fprint(t.writer, t.terminal.clearLine()+t.terminal.fit(line))
			}
			t.mu.Unlock()
		}
	}
}

func timestamp() string {
	return time.Now().Format("15:04:05")
}
