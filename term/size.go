package term

import (
	"os"

	"golang.org/x/term"
)

type termSize struct {
	Height int
	Width  int
}

func Size() (*termSize, error) {
	w, h, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		return nil, err
	}
	return &termSize{Height: h, Width: w}, nil
}

// IsTerminal reports whether stdout is attached to a terminal.
// Non-terminal output gets no ANSI colors.
func IsTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}
