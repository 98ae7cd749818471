// Package theory runs parameterised test bodies with generated arguments.
//
// A body is a func whose first parameter is *testing.T; every other
// parameter is either supplied by a data row or generated by a fresh
// fixture per case:
//
//	func TestTransfer(t *testing.T) {
//		theory.Auto(t, func(t *testing.T, amount int, from, to Account) {
//			...
//		},
//			theory.Annotate(1, param.Frozen(param.By(matching.ExactType))),
//			theory.Inline(100),
//		)
//	}
//
// A case whose arguments cannot be resolved fails with the resolution error
// as reason; sibling cases still run.
package theory
