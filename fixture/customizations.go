package fixture

import (
	"errors"
	"fmt"
	"reflect"

	"go.uber.org/zap"

	"autoparam/matching"
	"autoparam/request"
)

// FreezeCustomization resolves Request once and injects the value for every
// later request satisfying Spec.
type FreezeCustomization struct {
	Request any
	Spec    matching.Specification
}

// Customize implements Customization.
func (c FreezeCustomization) Customize(f *Fixture) error {
	if c.Spec == nil {
		return errors.New("freeze: nil specification")
	}

	// Resolution errors already name the request; they are returned as is.
	v, err := f.Resolve(c.Request)
	if err != nil {
		return err
	}

	f.Inject(c.Spec, v)
	f.logger.Debug("frozen value injected",
		zap.String("request", request.Describe(c.Request)),
		zap.Stringer("type", v.Type()))

	return nil
}

// InjectCustomization injects a fixed value for requests satisfying Spec.
type InjectCustomization struct {
	Spec  matching.Specification
	Value reflect.Value
}

// Customize implements Customization.
func (c InjectCustomization) Customize(f *Fixture) error {
	if c.Spec == nil || !c.Value.IsValid() {
		return errors.New("inject: specification and value are required")
	}

	f.Inject(c.Spec, c.Value)

	return nil
}

// ConstructorCustomization selects the constructor query for Type.
type ConstructorCustomization struct {
	Type  reflect.Type
	Query ConstructorQuery
}

// Customize implements Customization.
func (c ConstructorCustomization) Customize(f *Fixture) error {
	if c.Type == nil || c.Query == nil {
		return errors.New("constructor query: type and query are required")
	}

	f.SetQuery(c.Type, c.Query)

	return nil
}

// NoAutoFieldsCustomization disables field and setter population for Type.
type NoAutoFieldsCustomization struct {
	Type reflect.Type
}

// Customize implements Customization.
func (c NoAutoFieldsCustomization) Customize(f *Fixture) error {
	if c.Type == nil {
		return errors.New("no auto fields: type is required")
	}

	f.OmitAutoFields(c.Type)

	return nil
}

// Validator is implemented by customizations whose arguments can be checked
// before a fixture exists.
type Validator interface {
	Validate() error
}

// RegisterCustomization registers constructor functions.
type RegisterCustomization []any

// Validate implements Validator.
func (c RegisterCustomization) Validate() error {
	for _, fn := range c {
		if _, err := newConstructor(fn); err != nil {
			return err
		}
	}

	return nil
}

// Customize implements Customization.
func (c RegisterCustomization) Customize(f *Fixture) error {
	for _, fn := range c {
		if err := f.Register(fn); err != nil {
			return err
		}
	}

	return nil
}

// CompositeCustomization applies customizations in order, stopping at the first error.
type CompositeCustomization []Customization

// Validate implements Validator, checking nested customizations too.
func (c CompositeCustomization) Validate() error {
	for i, cc := range c {
		if err := ValidateCustomization(cc); err != nil {
			return fmt.Errorf("customization %d: %w", i, err)
		}
	}

	return nil
}

// ValidateCustomization rejects a nil c and runs c's Validator, if any.
func ValidateCustomization(c Customization) error {
	if c == nil {
		return ErrNilCustomization
	}

	if v, ok := c.(Validator); ok {
		return v.Validate()
	}

	return nil
}

// Customize implements Customization.
func (c CompositeCustomization) Customize(f *Fixture) error {
	for _, cc := range c {
		if err := f.Customize(cc); err != nil {
			return err
		}
	}

	return nil
}
