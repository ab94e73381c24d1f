//go:build unix

package teahost

import "golang.org/x/sys/unix"

// TerminalSize returns the width and height of the terminal on fd.
func TerminalSize(fd int) (int, int, error) {
	ws, err := unix.IoctlGetWinsize(fd, unix.TIOCGWINSZ)
	if err != nil {
		return 0, 0, err
	}
	return int(ws.Col), int(ws.Row), nil
}
