package theory

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/davecgh/go-spew/spew"

	"autoparam/param"
)

// NamingStrategy renders a subtest name from a case's arguments. supplied is
// the number of leading arguments that came from data rows.
type NamingStrategy interface {
	Name(ds []param.Descriptor, args []reflect.Value, supplied int) string
}

// NamingFunc adapts a function to NamingStrategy.
type NamingFunc func(ds []param.Descriptor, args []reflect.Value, supplied int) string

// Name implements NamingStrategy.
func (fn NamingFunc) Name(ds []param.Descriptor, args []reflect.Value, supplied int) string {
	return fn(ds, args, supplied)
}

// AutoTypeNaming renders generated arguments as auto<Type>, so names are
// identical across runs.
var AutoTypeNaming NamingStrategy = NamingFunc(func(ds []param.Descriptor, args []reflect.Value, supplied int) string {
	parts := make([]string, 0, len(args))
	for i, a := range args {
		if i >= supplied {
			parts = append(parts, "auto<"+typeName(ds, args, i)+">")
			continue
		}

		parts = append(parts, literal(a))
	}

	return join(parts)
})

// ValueNaming renders every argument's value. Names change between runs
// whenever generated values do.
var ValueNaming NamingStrategy = NamingFunc(func(_ []param.Descriptor, args []reflect.Value, _ int) string {
	parts := make([]string, 0, len(args))
	for _, a := range args {
		parts = append(parts, render(a))
	}

	return join(parts)
})

var valueConfig = spew.ConfigState{
	Indent:                  "",
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	SortKeys:                true,
}

func render(a reflect.Value) string {
	if !a.IsValid() {
		return "<nil>"
	}

	if a.Kind() == reflect.String {
		return fmt.Sprintf("%q", a.String())
	}

	if !a.CanInterface() {
		return a.Type().String()
	}

	return valueConfig.Sprintf("%v", a.Interface())
}

func literal(a reflect.Value) string {
	if !a.IsValid() {
		return "<nil>"
	}

	if a.Kind() == reflect.String {
		return fmt.Sprintf("%q", a.String())
	}

	if a.CanInterface() {
		return fmt.Sprintf("%v", a.Interface())
	}

	return a.Type().String()
}

func typeName(ds []param.Descriptor, args []reflect.Value, i int) string {
	if i < len(ds) && ds[i].Type != nil {
		return ds[i].Type.String()
	}

	if args[i].IsValid() {
		return args[i].Type().String()
	}

	return "nil"
}

func join(parts []string) string {
	return "(" + strings.Join(parts, ",") + ")"
}
