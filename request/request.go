// Package request defines the request shapes a fixture resolves into values.
//
// A request describes what value is wanted:
//   - reflect.Type: any value of the type
//   - Seed: a value of the type, hinted by a seed (a name prefix for strings)
//   - Parameter: a value for a function parameter (type, position and name)
//   - Field: a value for an exported struct field being auto-populated
//   - Property: a value passed to a SetX setter method being auto-populated
package request

import (
	"fmt"
	"reflect"
)

// Seed asks for a value of Type, hinted by Seed.
type Seed struct {
	Type reflect.Type
	Seed any
}

// Parameter asks for a value of a function parameter.
type Parameter struct {
	Func     string       // Qualified function name, empty for anonymous requests
	Position int          // Zero-based position in the parameter list
	Name     string       // Parameter name, empty when unknown
	Type     reflect.Type // Declared parameter type
}

// Field asks for a value of an exported struct field.
type Field struct {
	Owner reflect.Type
	Name  string
	Type  reflect.Type
}

// Property asks for the argument of a SetX setter method; Name is X.
type Property struct {
	Owner reflect.Type
	Name  string
	Type  reflect.Type
}

// String renders the request for diagnostics.
func (p Parameter) String() string {
	if p.Name == "" {
		return fmt.Sprintf("parameter #%d (%s)", p.Position, p.Type)
	}

	return fmt.Sprintf("parameter %s (%s)", p.Name, p.Type)
}

// String renders the request for diagnostics.
func (f Field) String() string {
	return fmt.Sprintf("field %s.%s (%s)", f.Owner, f.Name, f.Type)
}

// String renders the request for diagnostics.
func (p Property) String() string {
	return fmt.Sprintf("property %s.%s (%s)", p.Owner, p.Name, p.Type)
}

// String renders the request for diagnostics.
func (s Seed) String() string {
	return fmt.Sprintf("seed %v (%s)", s.Seed, s.Type)
}

// TypeOf returns the type a request asks for, or nil for unknown request shapes.
func TypeOf(r any) reflect.Type {
	switch rr := r.(type) {
	case reflect.Type:
		return rr
	case Seed:
		return rr.Type
	case Parameter:
		return rr.Type
	case Field:
		return rr.Type
	case Property:
		return rr.Type
	default:
		return nil
	}
}

// NameOf returns the member name carried by a request, or "" when it has none.
func NameOf(r any) string {
	switch rr := r.(type) {
	case Parameter:
		return rr.Name
	case Field:
		return rr.Name
	case Property:
		return rr.Name
	case Seed:
		if s, ok := rr.Seed.(string); ok {
			return s
		}

		return ""
	default:
		return ""
	}
}

// Describe renders any request for error messages.
func Describe(r any) string {
	if t, ok := r.(reflect.Type); ok {
		return "type " + t.String()
	}

	if s, ok := r.(fmt.Stringer); ok {
		return s.String()
	}

	return fmt.Sprintf("%T request", r)
}

// Relay returns r followed by the less specific requests it falls back to:
// a member request relays to a Seed named after the member, and a Seed
// relays to its bare type.
func Relay(r any) []any {
	chain := []any{r}

	switch rr := r.(type) {
	case Parameter, Field, Property:
		t := TypeOf(rr)
		if t == nil {
			return chain
		}

		return append(chain, Seed{Type: t, Seed: NameOf(rr)}, t)
	case Seed:
		if rr.Type == nil {
			return chain
		}

		return append(chain, rr.Type)
	default:
		return chain
	}
}
