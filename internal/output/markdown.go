package output

import (
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/glamour"
	"golang.org/x/term"
)

const (
	defaultWidth = 80
	minWidth     = 20
)

// TerminalWidth returns the current terminal width, falling back to
// $COLUMNS and then to the default when stdout is not a terminal.
func TerminalWidth() int {
	if width, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && width > 0 {
		return width
	}
	if cols := os.Getenv("COLUMNS"); cols != "" {
		if parsed, err := strconv.Atoi(cols); err == nil && parsed > 0 {
			return parsed
		}
	}
	return defaultWidth
}

// Markdown renders announcement/task content for the terminal with
// width-aware wrapping. Empty content renders empty.
func Markdown(text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", nil
	}
	width := TerminalWidth()
	if width < minWidth {
		width = minWidth
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", err
	}
	rendered, err := renderer.Render(text)
	if err != nil {
		return "", err
	}
	return strings.TrimRight(rendered, "\n"), nil
}
