package terminal

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"confedit/internal/ports"

	"golang.org/x/term"
)

var _ ports.TerminalInput = (*TerminalInput)(nil)

// TerminalInput reads confirmations from stdin. Prompts go to stderr.
type TerminalInput struct {
	in  io.Reader
	out io.Writer
}

func ProvideTerminalInput() *TerminalInput {
	return &TerminalInput{in: os.Stdin, out: os.Stderr}
}

func (t *TerminalInput) ReadLine(prompt string) (string, error) {
	fmt.Fprint(t.out, prompt)
	line, err := bufio.NewReader(t.in).ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func (t *TerminalInput) IsTerminal() bool {
	f, ok := t.in.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
