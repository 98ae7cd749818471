// Package matching builds request predicates for frozen and injected values.
//
// A Selector turns a target type, an optional member name and a set of
// Criteria flags into one composite Specification: the OR of the
// sub-specifications each flag enables. Flags that are not set contribute
// False, the neutral OR operand.
//
// Key types:
//   - Specification: predicate over a request, composed with Or, And, Not
//   - Criteria: ExactType, DirectBaseType, ImplementedInterfaces,
//     ParameterName, PropertyName, FieldName and their union MemberName
//   - Selector: builds the composite for a target
package matching
