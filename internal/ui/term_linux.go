//go:build aix || linux || solaris || zos

package ui

import "golang.org/x/sys/unix"

const ioctlReadTermios = unix.TCGETS
