//go:build !unix

package teahost

import "golang.org/x/term"

// TerminalSize returns the width and height of the terminal on fd.
func TerminalSize(fd int) (int, int, error) {
	return term.GetSize(fd)
}
