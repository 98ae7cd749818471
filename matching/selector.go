package matching

import (
	"reflect"
)

// Selector builds the composite specification for a frozen value of Target.
type Selector struct {
	target reflect.Type
	name   string
	by     Criteria
}

// NewSelector returns a selector for target and name. CriteriaNone selects ExactType.
func NewSelector(target reflect.Type, name string, by Criteria) Selector {
	if by == CriteriaNone {
		by = ExactType
	}

	return Selector{target: target, name: name, by: by}
}

// Target returns the type the selector matches against.
func (s Selector) Target() reflect.Type { return s.target }

// Criteria returns the effective criteria.
func (s Selector) Criteria() Criteria { return s.by }

// Specification returns the OR of the sub-specifications enabled by the criteria.
// Disabled criteria contribute False.
func (s Selector) Specification() Specification {
	return Or(
		s.exactType(),
		s.directBaseType(),
		s.implementedInterfaces(),
		s.parameterName(),
		s.propertyName(),
		s.fieldName(),
	)
}

// Including returns Specification() extended with a match for the exact request.
func (s Selector) Including(exact any) Specification {
	return Or(EqualRequestSpec{Request: exact}, s.Specification())
}

func (s Selector) exactType() Specification {
	if !s.by.Has(ExactType) {
		return False
	}

	return Or(ExactTypeSpec{Type: s.target}, SeedRequestSpec{Type: s.target})
}

func (s Selector) directBaseType() Specification {
	if !s.by.Has(DirectBaseType) {
		return False
	}

	return And(DirectBaseTypeSpec{Target: s.target}, Not(ExactTypeSpec{Type: s.target}))
}

func (s Selector) implementedInterfaces() Specification {
	if !s.by.Has(ImplementedInterfaces) {
		return False
	}

	return And(ImplementedInterfaceSpec{Target: s.target}, Not(ExactTypeSpec{Type: s.target}))
}

func (s Selector) parameterName() Specification {
	if !s.by.Has(ParameterName) {
		return False
	}

	return ParameterSpec{Target: s.target, Name: s.name}
}

func (s Selector) propertyName() Specification {
	if !s.by.Has(PropertyName) {
		return False
	}

	return PropertySpec{Target: s.target, Name: s.name}
}

func (s Selector) fieldName() Specification {
	if !s.by.Has(FieldName) {
		return False
	}

	return FieldSpec{Target: s.target, Name: s.name}
}
