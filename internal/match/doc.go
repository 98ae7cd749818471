// Package match finds the closest spelling of a mistyped identifier.
//
// It backs the "did you mean" hints of parameter names and criteria flags.
//
// Key functions:
//   - Distance: edit distance between two strings
//   - Similarity: normalized similarity of two identifiers
//   - Suggest: best candidate for a mistyped name
package match
