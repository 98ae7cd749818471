// Package analyze recovers parameter names of test functions from source.
//
// Go reflection exposes parameter types but not names. This package maps a
// func value to its declaration (runtime.FuncForPC gives file and line) and
// reads the parameter list with golang.org/x/tools/go/packages.
//
// Key types:
//   - FuncInfo: runtime name, position and parameters of a function
//   - Param: parameter name and type expression as written
//   - Cache: caller-owned memo of loaded functions
package analyze
