// Package apperrors holds the error types and exit codes shared by the
// seqcalc surfaces.
//
// ConfigError, ValidationError, TimeoutError and OverflowError are leaf
// errors: they carry the offending setting or index and have no cause.
// CalculationError wraps the failure of an algorithm and is the only type
// with an Unwrap method. WrapError adds context with %w so leaf types stay
// reachable through errors.As. HandleCalculationError maps any of them to an
// exit code.
package apperrors
