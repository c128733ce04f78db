// Package format holds the display helpers shared by the CLI, the REPL and
// the TUI: durations, large numbers, byte sizes, progress bars and ETA
// estimates.
package format
