// Package param resolves test function parameters into argument lists.
//
// Resolution pipeline:
//  1. Scan: collect the annotations declared on each parameter
//  2. Order: move freezing annotations after the others, keeping declaration order
//  3. Resolve: apply the customizations to the generation context parameter
//     by parameter, then resolve one value per parameter, left to right
//  4. Merge: when literal values are supplied for the leading parameters,
//     resolve only the trailing ones
//
// Failures during resolution are values (Result.Err), never panics; the
// caller decides how a failed case is reported.
package param
