//go:build !(aix || darwin || dragonfly || freebsd || linux || netbsd || openbsd || solaris || zos)

package ui

// IsTerminal reports false on platforms without termios; color stays opt-in
// through the theme flags there.
func IsTerminal(fd uintptr) bool {
	return false
}
