package matching

import (
	"reflect"
	"strings"

	"autoparam/request"
)

// Specification is a predicate over requests.
type Specification interface {
	IsSatisfiedBy(req any) bool
}

// SpecFunc adapts a function to Specification.
type SpecFunc func(req any) bool

// IsSatisfiedBy implements Specification.
func (f SpecFunc) IsSatisfiedBy(req any) bool { return f(req) }

type constSpec bool

func (c constSpec) IsSatisfiedBy(any) bool { return bool(c) }

// True matches every request, False matches none.
var (
	True  Specification = constSpec(true)
	False Specification = constSpec(false)
)

type orSpec []Specification

func (o orSpec) IsSatisfiedBy(req any) bool {
	for _, s := range o {
		if s.IsSatisfiedBy(req) {
			return true
		}
	}

	return false
}

type andSpec []Specification

func (a andSpec) IsSatisfiedBy(req any) bool {
	for _, s := range a {
		if !s.IsSatisfiedBy(req) {
			return false
		}
	}

	return len(a) > 0
}

type notSpec struct{ inner Specification }

func (n notSpec) IsSatisfiedBy(req any) bool { return !n.inner.IsSatisfiedBy(req) }

// Or matches when any operand matches. With no operands it matches nothing.
func Or(specs ...Specification) Specification {
	return orSpec(specs)
}

// And matches when every operand matches. With no operands it matches nothing.
func And(specs ...Specification) Specification {
	return andSpec(specs)
}

// Not inverts a specification.
func Not(s Specification) Specification {
	return notSpec{inner: s}
}

// ExactTypeSpec matches a bare type request equal to Type.
type ExactTypeSpec struct {
	Type reflect.Type
}

// IsSatisfiedBy implements Specification.
func (s ExactTypeSpec) IsSatisfiedBy(req any) bool {
	t, ok := req.(reflect.Type)
	return ok && t == s.Type
}

// SeedRequestSpec matches a seeded request for Type.
type SeedRequestSpec struct {
	Type reflect.Type
}

// IsSatisfiedBy implements Specification.
func (s SeedRequestSpec) IsSatisfiedBy(req any) bool {
	sr, ok := req.(request.Seed)
	return ok && sr.Type == s.Type
}

// DirectBaseTypeSpec matches a type request for a struct embedded directly in Target.
type DirectBaseTypeSpec struct {
	Target reflect.Type
}

// IsSatisfiedBy implements Specification.
func (s DirectBaseTypeSpec) IsSatisfiedBy(req any) bool {
	t, ok := req.(reflect.Type)
	return ok && IsDirectBase(t, s.Target)
}

// ImplementedInterfaceSpec matches a request for an interface type Target implements.
type ImplementedInterfaceSpec struct {
	Target reflect.Type
}

// IsSatisfiedBy implements Specification.
func (s ImplementedInterfaceSpec) IsSatisfiedBy(req any) bool {
	t, ok := req.(reflect.Type)
	if !ok || t.Kind() != reflect.Interface || s.Target == nil {
		return false
	}

	return s.Target.Implements(t)
}

// ParameterSpec matches a parameter request named Name (case-insensitive)
// whose type accepts a Target value.
type ParameterSpec struct {
	Target reflect.Type
	Name   string
}

// IsSatisfiedBy implements Specification.
func (s ParameterSpec) IsSatisfiedBy(req any) bool {
	p, ok := req.(request.Parameter)
	return ok && memberMatches(p.Type, p.Name, s.Target, s.Name)
}

// FieldSpec matches a struct field request the same way ParameterSpec does.
type FieldSpec struct {
	Target reflect.Type
	Name   string
}

// IsSatisfiedBy implements Specification.
func (s FieldSpec) IsSatisfiedBy(req any) bool {
	f, ok := req.(request.Field)
	return ok && memberMatches(f.Type, f.Name, s.Target, s.Name)
}

// PropertySpec matches a setter request the same way ParameterSpec does.
type PropertySpec struct {
	Target reflect.Type
	Name   string
}

// IsSatisfiedBy implements Specification.
func (s PropertySpec) IsSatisfiedBy(req any) bool {
	p, ok := req.(request.Property)
	return ok && memberMatches(p.Type, p.Name, s.Target, s.Name)
}

func memberMatches(memberType reflect.Type, memberName string, target reflect.Type, name string) bool {
	if memberType == nil || target == nil || name == "" {
		return false
	}

	return target.AssignableTo(memberType) && strings.EqualFold(memberName, name)
}

// EqualRequestSpec matches a request equal to Request.
type EqualRequestSpec struct {
	Request any
}

// IsSatisfiedBy implements Specification.
func (s EqualRequestSpec) IsSatisfiedBy(req any) bool {
	if s.Request == nil || req == nil {
		return false
	}

	rt := reflect.TypeOf(req)
	if rt != reflect.TypeOf(s.Request) || !rt.Comparable() {
		return false
	}

	return req == s.Request
}
