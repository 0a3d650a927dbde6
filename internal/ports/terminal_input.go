package ports

// TerminalInput reads answers from the user.
type TerminalInput interface {
	// ReadLine prints prompt and returns the line typed without its newline.
	ReadLine(prompt string) (string, error)
	// IsTerminal returns true if stdin is connected to a terminal.
	IsTerminal() bool
}
