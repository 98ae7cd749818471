package param

import (
	"fmt"
	"reflect"

	"autoparam/fixture"
	"autoparam/request"
)

// Context is the generation capability the resolver consumes. *fixture.Fixture implements it.
type Context interface {
	Customize(c fixture.Customization) error
	Resolve(req any) (reflect.Value, error)
}

// Descriptor describes one formal parameter and the annotations attached to it.
type Descriptor struct {
	Func        string
	Position    int
	Name        string
	Type        reflect.Type
	Annotations []Annotation
}

// Request returns the request used to resolve the parameter's value.
func (d Descriptor) Request() request.Parameter {
	return request.Parameter{Func: d.Func, Position: d.Position, Name: d.Name, Type: d.Type}
}

// String renders the descriptor for diagnostics.
func (d Descriptor) String() string {
	if d.Name == "" {
		return fmt.Sprintf("#%d %s", d.Position, d.Type)
	}

	return fmt.Sprintf("%s %s", d.Name, d.Type)
}

// Describe reflects the parameters of fn starting at position skip. names, when
// given, must name every described parameter.
func Describe(fn any, skip int, names []string) ([]Descriptor, error) {
	v := reflect.ValueOf(fn)
	if v.Kind() != reflect.Func {
		return nil, fmt.Errorf("expected a func, got %T", fn)
	}

	ft := v.Type()
	if skip < 0 || skip > ft.NumIn() {
		return nil, fmt.Errorf("cannot skip %d of %d parameters", skip, ft.NumIn())
	}

	count := ft.NumIn() - skip
	if names != nil && len(names) != count {
		return nil, fmt.Errorf("got %d parameter names for %d parameters", len(names), count)
	}

	name := FuncName(v)

	ds := make([]Descriptor, count)
	for i := range ds {
		ds[i] = Descriptor{Func: name, Position: i, Type: ft.In(skip + i)}
		if names != nil {
			ds[i].Name = names[i]
		}
	}

	return ds, nil
}
