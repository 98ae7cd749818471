package matching

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"

	"autoparam/request"
)

type Base struct {
	ID int
}

type Other struct {
	Code string
}

type Derived struct {
	Base
	*Other
	Label string
}

type Labeler interface {
	Labeled() string
}

func (d Derived) Labeled() string { return d.Label }

var (
	baseType    = reflect.TypeFor[Base]()
	otherType   = reflect.TypeFor[Other]()
	derivedType = reflect.TypeFor[Derived]()
	labelerType = reflect.TypeFor[Labeler]()
	stringerT   = reflect.TypeFor[fmt.Stringer]()
	intType     = reflect.TypeFor[int]()
	stringType  = reflect.TypeFor[string]()
	anyType     = reflect.TypeFor[any]()
)

func sampleRequests() map[string]any {
	return map[string]any{
		"derived type":        derivedType,
		"derived seed":        request.Seed{Type: derivedType, Seed: "x"},
		"base type":           baseType,
		"base pointer":        reflect.PointerTo(baseType),
		"other pointer":       reflect.PointerTo(otherType),
		"labeler":             labelerType,
		"stringer":            stringerT,
		"int":                 intType,
		"param same name":     request.Parameter{Name: "item", Type: derivedType},
		"param upper name":    request.Parameter{Name: "ITEM", Type: derivedType},
		"param any":           request.Parameter{Name: "item", Type: anyType},
		"param other name":    request.Parameter{Name: "thing", Type: derivedType},
		"param wrong type":    request.Parameter{Name: "item", Type: stringType},
		"field same name":     request.Field{Owner: otherType, Name: "Item", Type: derivedType},
		"field wrong type":    request.Field{Owner: otherType, Name: "Item", Type: intType},
		"property same name":  request.Property{Owner: otherType, Name: "item", Type: labelerType},
		"property other name": request.Property{Owner: otherType, Name: "Other", Type: derivedType},
	}
}

func TestSelector_Criteria(t *testing.T) {
	tests := []struct {
		name    string
		by      Criteria
		matches []string
	}{
		{
			name:    "exact type",
			by:      ExactType,
			matches: []string{"derived type", "derived seed"},
		},
		{
			name:    "default is exact type",
			by:      CriteriaNone,
			matches: []string{"derived type", "derived seed"},
		},
		{
			name:    "direct base type",
			by:      DirectBaseType,
			matches: []string{"base type", "base pointer", "other pointer"},
		},
		{
			name:    "implemented interfaces",
			by:      ImplementedInterfaces,
			matches: []string{"labeler"},
		},
		{
			name:    "parameter name",
			by:      ParameterName,
			matches: []string{"param same name", "param upper name", "param any"},
		},
		{
			name:    "field name",
			by:      FieldName,
			matches: []string{"field same name"},
		},
		{
			name:    "property name",
			by:      PropertyName,
			matches: []string{"property same name"},
		},
		{
			name: "member name",
			by:   MemberName,
			matches: []string{
				"param same name", "param upper name", "param any",
				"field same name", "property same name",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec := NewSelector(derivedType, "item", tt.by).Specification()

			want := make(map[string]bool)
			for _, m := range tt.matches {
				want[m] = true
			}

			for name, req := range sampleRequests() {
				assert.Equal(t, want[name], spec.IsSatisfiedBy(req), "request %q", name)
			}
		})
	}
}

func TestSelector_OrClosure(t *testing.T) {
	flags := []Criteria{ExactType, DirectBaseType, ImplementedInterfaces, ParameterName, PropertyName, FieldName}

	for _, a := range flags {
		for _, b := range flags {
			combined := NewSelector(derivedType, "item", a|b).Specification()
			either := Or(
				NewSelector(derivedType, "item", a).Specification(),
				NewSelector(derivedType, "item", b).Specification(),
			)

			for name, req := range sampleRequests() {
				assert.Equal(t, either.IsSatisfiedBy(req), combined.IsSatisfiedBy(req),
					"%s|%s on %q", a, b, name)
			}
		}
	}
}

func TestSelector_Including(t *testing.T) {
	exact := request.Parameter{Func: "f", Position: 1, Name: "p2", Type: intType}
	spec := NewSelector(derivedType, "", DirectBaseType).Including(exact)

	assert.True(t, spec.IsSatisfiedBy(exact))
	assert.False(t, spec.IsSatisfiedBy(request.Parameter{Func: "f", Position: 2, Name: "p3", Type: intType}))
	assert.False(t, spec.IsSatisfiedBy(derivedType), "exact type is not enabled")
}

func TestSelector_NoNameNeverMatchesMembers(t *testing.T) {
	spec := NewSelector(derivedType, "", MemberName).Specification()

	assert.False(t, spec.IsSatisfiedBy(request.Parameter{Name: "", Type: derivedType}))
	assert.False(t, spec.IsSatisfiedBy(request.Field{Name: "", Type: derivedType}))
}

func TestSelector_Accessors(t *testing.T) {
	s := NewSelector(derivedType, "item", CriteriaNone)

	assert.Equal(t, derivedType, s.Target())
	assert.Equal(t, ExactType, s.Criteria())
}
