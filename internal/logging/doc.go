// Package logging provides the structured logging interface used across
// seqcalc. Components depend on Logger; zerolog backs it by default and a
// standard-library adapter exists for code that already owns a *log.Logger.
package logging
