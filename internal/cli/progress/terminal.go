package progress

import (
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/term"
)

const defaultWidth = 80

// terminalInfo describes the stream progress lines are drawn on.
type terminalInfo struct {
	ansi  bool
	width int
}

func detectTerminal(f *os.File) terminalInfo {
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil || width <= 0 {
		width = defaultWidth
	}
	return terminalInfo{ansi: enableANSI(f), width: width}
}

// clearLine erases the line under the cursor and returns to column 0.
func (ti terminalInfo) clearLine() string {
	if ti.ansi {
		return "\033[2K\r"
	}
	return "\r" + strings.Repeat(" ", ti.width) + "\r"
}

// fit cuts s to the terminal width. Escape sequences take no columns and are
// always copied whole.
func (ti terminalInfo) fit(s string) string {
	if ti.width <= 0 {
		return ""
	}

	var out strings.Builder
	columns := 0
	for i := 0; i < len(s); {
		if s[i] == '\033' {
			end := escapeEnd(s, i)
			out.WriteString(s[i:end])
			i = end
			continue
		}
		if columns == ti.width {
			out.WriteString("\033[0m")
			break
		}
		r, size := utf8.DecodeRuneInString(s[i:])
		out.WriteRune(r)
		columns++
		i += size
	}
	return out.String()
}

// escapeEnd returns the index just past the escape sequence starting at i.
// Sequences end with an ASCII letter.
func escapeEnd(s string, i int) int {
	for j := i + 1; j < len(s); j++ {
		if c := s[j]; (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z') {
			return j + 1
		}
	}
	return len(s)
}
