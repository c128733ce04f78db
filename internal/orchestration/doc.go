// Package orchestration runs one or more sequence calculators concurrently,
// aggregates their progress and compares their results. Presentation is
// delegated through the ProgressReporter and ResultPresenter interfaces.
package orchestration
