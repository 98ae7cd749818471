package param

import (
	"fmt"
	"reflect"

	"autoparam/fixture"
	"autoparam/matching"
)

// Annotation is a per-parameter declaration yielding exactly one customization.
// Any type implementing it is recognised, so callers may add their own.
type Annotation interface {
	Customization(d Descriptor) (fixture.Customization, error)
}

// Validator is implemented by annotations that can reject a parameter when
// the test is bound, before any value is resolved.
type Validator interface {
	Validate(d Descriptor) error
}

// Warner is implemented by annotations that are valid on a parameter but
// cannot affect it. Warning returns "" when the annotation applies.
type Warner interface {
	Warning(d Descriptor) string
}

// Freezer marks annotations that must observe every other customization
// of the same parameter. They are applied last.
type Freezer interface {
	Freezes() bool
}

// IsFreeze reports whether a is a freezing annotation.
func IsFreeze(a Annotation) bool {
	fz, ok := a.(Freezer)
	return ok && fz.Freezes()
}

// FrozenOption configures Frozen.
type FrozenOption func(*FrozenAnnotation)

// By sets the matching criteria of a frozen value. The default is ExactType.
func By(c matching.Criteria) FrozenOption {
	return func(a *FrozenAnnotation) { a.By = c }
}

// As registers the frozen value under t instead of the parameter type.
// The parameter type must be assignable to t.
func As(t reflect.Type) FrozenOption {
	return func(a *FrozenAnnotation) { a.As = t }
}

// FrozenAnnotation resolves the parameter once and reuses that value for
// later matching requests.
type FrozenAnnotation struct {
	By matching.Criteria
	As reflect.Type
}

// Frozen returns a freezing annotation.
func Frozen(opts ...FrozenOption) *FrozenAnnotation {
	a := &FrozenAnnotation{By: matching.ExactType}
	for _, opt := range opts {
		opt(a)
	}

	return a
}

// Freezes implements Freezer.
func (a *FrozenAnnotation) Freezes() bool { return true }

// Validate implements Validator.
func (a *FrozenAnnotation) Validate(d Descriptor) error {
	if a.As != nil && !d.Type.AssignableTo(a.As) {
		return fmt.Errorf("frozen type %s is not assignable from parameter type %s", a.As, d.Type)
	}

	return nil
}

// Warning implements Warner. Name criteria never match an unnamed parameter.
func (a *FrozenAnnotation) Warning(d Descriptor) string {
	if d.Name != "" || a.By&matching.MemberName == 0 {
		return ""
	}

	return fmt.Sprintf("%s matches by name but the parameter has no name", a)
}

// Customization implements Annotation.
func (a *FrozenAnnotation) Customization(d Descriptor) (fixture.Customization, error) {
	if err := a.Validate(d); err != nil {
		return nil, err
	}

	target := d.Type
	if a.As != nil {
		target = a.As
	}

	sel := matching.NewSelector(target, d.Name, a.By)

	return fixture.FreezeCustomization{
		Request: d.Request(),
		Spec:    sel.Including(d.Request()),
	}, nil
}

// String renders the annotation.
func (a *FrozenAnnotation) String() string {
	if a.As != nil {
		return fmt.Sprintf("Frozen(%s, as %s)", a.By, a.As)
	}

	return fmt.Sprintf("Frozen(%s)", a.By)
}

// QueryAnnotation selects the constructor query for the parameter type.
type QueryAnnotation struct {
	Name  string
	Query fixture.ConstructorQuery
}

// Customization implements Annotation.
func (a QueryAnnotation) Customization(d Descriptor) (fixture.Customization, error) {
	return fixture.ConstructorCustomization{Type: d.Type, Query: a.Query}, nil
}

// String renders the annotation.
func (a QueryAnnotation) String() string { return a.Name }

// Greedy prefers the constructor with the most parameters.
func Greedy() QueryAnnotation {
	return QueryAnnotation{Name: "Greedy", Query: fixture.GreedyQuery{}}
}

// Modest prefers the constructor with the fewest parameters.
func Modest() QueryAnnotation {
	return QueryAnnotation{Name: "Modest", Query: fixture.ModestQuery{}}
}

// FavorSlices prefers constructors taking slices.
func FavorSlices() QueryAnnotation {
	return QueryAnnotation{Name: "FavorSlices", Query: fixture.FavorSlices}
}

// FavorArrays prefers constructors taking arrays.
func FavorArrays() QueryAnnotation {
	return QueryAnnotation{Name: "FavorArrays", Query: fixture.FavorArrays}
}

// FavorMaps prefers constructors taking maps.
func FavorMaps() QueryAnnotation {
	return QueryAnnotation{Name: "FavorMaps", Query: fixture.FavorMaps}
}

// NoAutoFieldsAnnotation leaves struct fields of the parameter type unpopulated.
type NoAutoFieldsAnnotation struct{}

// NoAutoFields returns a NoAutoFieldsAnnotation.
func NoAutoFields() NoAutoFieldsAnnotation { return NoAutoFieldsAnnotation{} }

// Customization implements Annotation.
func (NoAutoFieldsAnnotation) Customization(d Descriptor) (fixture.Customization, error) {
	return fixture.NoAutoFieldsCustomization{Type: d.Type}, nil
}

// String renders the annotation.
func (NoAutoFieldsAnnotation) String() string { return "NoAutoFields" }

// LiteralAnnotation supplies a fixed value for the parameter.
type LiteralAnnotation struct {
	Value any
}

// Literal returns a LiteralAnnotation. The value must be assignable or
// convertible to the parameter type; nil means the zero value.
func Literal(v any) LiteralAnnotation { return LiteralAnnotation{Value: v} }

// Validate implements Validator.
func (a LiteralAnnotation) Validate(d Descriptor) error {
	_, err := coerce(a.Value, d.Type)
	return err
}

// Customization implements Annotation.
func (a LiteralAnnotation) Customization(d Descriptor) (fixture.Customization, error) {
	v, err := coerce(a.Value, d.Type)
	if err != nil {
		return nil, err
	}

	return fixture.InjectCustomization{
		Spec:  matching.EqualRequestSpec{Request: d.Request()},
		Value: v,
	}, nil
}

// String renders the annotation.
func (a LiteralAnnotation) String() string { return fmt.Sprintf("Literal(%v)", a.Value) }

// coerce turns a caller-supplied value into a value of type t.
func coerce(v any, t reflect.Type) (reflect.Value, error) {
	if v == nil {
		return reflect.Zero(t), nil
	}

	rv := reflect.ValueOf(v)
	switch {
	case rv.Type().AssignableTo(t):
		return rv, nil
	case rv.Type().ConvertibleTo(t) && convertible(rv.Type(), t):
		return rv.Convert(t), nil
	default:
		return reflect.Value{}, fmt.Errorf("value %v of type %s cannot be used as %s", v, rv.Type(), t)
	}
}

// convertible limits conversions to numbers and same-kind named types, rejecting
// ones Go allows but that would surprise a test author, such as int to string.
func convertible(from, to reflect.Type) bool {
	if isNumber(from) && isNumber(to) {
		return true
	}

	return from.Kind() == to.Kind()
}

func isNumber(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64:
		return true
	default:
		return false
	}
}
