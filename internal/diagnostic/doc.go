// Package diagnostic provides structured errors and warnings collected while
// binding a test function to its parameters.
//
// Key capabilities:
//   - Invalid annotation reports, keyed by function and parameter
//   - A combined error for callers that only need pass/fail
package diagnostic
