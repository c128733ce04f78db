// Package ui holds the color themes shared by the CLI, the REPL and the TUI,
// and terminal detection used to decide whether color and animation are
// appropriate.
package ui
