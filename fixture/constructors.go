package fixture

import (
	"errors"
	"fmt"
	"reflect"
	"runtime"
	"sort"

	"autoparam/request"
)

var errorType = reflect.TypeFor[error]()

// Constructor is a registered function producing values of one type.
type Constructor struct {
	fn   reflect.Value
	name string
	typ  reflect.Type
}

func newConstructor(fn any) (Constructor, error) {
	v := reflect.ValueOf(fn)
	if v.Kind() != reflect.Func || v.IsNil() {
		return Constructor{}, fmt.Errorf("constructor must be a non-nil func, got %T", fn)
	}

	ft := v.Type()
	switch {
	case ft.NumOut() == 1:
	case ft.NumOut() == 2 && ft.Out(1) == errorType:
	default:
		return Constructor{}, fmt.Errorf("constructor %s must return T or (T, error)", ft)
	}

	if ft.IsVariadic() {
		return Constructor{}, fmt.Errorf("constructor %s must not be variadic", ft)
	}

	name := ft.String()
	if rf := runtime.FuncForPC(v.Pointer()); rf != nil {
		name = rf.Name()
	}

	return Constructor{fn: v, name: name, typ: ft.Out(0)}, nil
}

// Type returns the constructed type.
func (c Constructor) Type() reflect.Type { return c.typ }

// Name returns the constructor's function name.
func (c Constructor) Name() string { return c.name }

// Arity returns the number of parameters.
func (c Constructor) Arity() int { return c.fn.Type().NumIn() }

// In returns the type of parameter i.
func (c Constructor) In(i int) reflect.Type { return c.fn.Type().In(i) }

// count returns how many parameters have the given kind.
func (c Constructor) count(k reflect.Kind) int {
	n := 0
	for i := range c.Arity() {
		if c.In(i).Kind() == k {
			n++
		}
	}

	return n
}

// ConstructorQuery picks the constructor to use when a type has several.
type ConstructorQuery interface {
	SelectConstructor(ctors []Constructor) Constructor
}

// ModestQuery prefers the constructor with the fewest parameters.
type ModestQuery struct{}

// SelectConstructor implements ConstructorQuery.
func (ModestQuery) SelectConstructor(ctors []Constructor) Constructor {
	return pick(ctors, func(a, b Constructor) bool { return a.Arity() < b.Arity() })
}

// GreedyQuery prefers the constructor with the most parameters.
type GreedyQuery struct{}

// SelectConstructor implements ConstructorQuery.
func (GreedyQuery) SelectConstructor(ctors []Constructor) Constructor {
	return pick(ctors, func(a, b Constructor) bool { return a.Arity() > b.Arity() })
}

// KindQuery prefers constructors taking the most parameters of Kind,
// falling back to the modest choice.
type KindQuery struct {
	Kind reflect.Kind
}

// SelectConstructor implements ConstructorQuery.
func (q KindQuery) SelectConstructor(ctors []Constructor) Constructor {
	return pick(ctors, func(a, b Constructor) bool {
		ca, cb := a.count(q.Kind), b.count(q.Kind)
		if ca != cb {
			return ca > cb
		}

		return a.Arity() < b.Arity()
	})
}

// Predefined kind queries.
var (
	FavorSlices = KindQuery{Kind: reflect.Slice}
	FavorArrays = KindQuery{Kind: reflect.Array}
	FavorMaps   = KindQuery{Kind: reflect.Map}
)

// pick sorts a copy of ctors stably and returns the first; registration order breaks ties.
func pick(ctors []Constructor, less func(a, b Constructor) bool) Constructor {
	sorted := make([]Constructor, len(ctors))
	copy(sorted, ctors)

	sort.SliceStable(sorted, func(i, j int) bool { return less(sorted[i], sorted[j]) })

	return sorted[0]
}

// construct builds t from a registered constructor. ok is false when t (or
// the pointer/value counterpart of t) has no constructor.
func (f *Fixture) construct(t reflect.Type) (v reflect.Value, ok bool, err error) {
	if ctors := f.ctors[t]; len(ctors) > 0 {
		v, err = f.call(f.queryFor(t).SelectConstructor(ctors))
		return v, true, err
	}

	if t.Kind() == reflect.Pointer {
		if ctors := f.ctors[t.Elem()]; len(ctors) > 0 {
			elem, err := f.call(f.queryFor(t).SelectConstructor(ctors))
			if err != nil {
				return reflect.Value{}, true, err
			}

			ptr := reflect.New(t.Elem())
			ptr.Elem().Set(elem)

			return ptr, true, nil
		}
	}

	if ctors := f.ctors[reflect.PointerTo(t)]; len(ctors) > 0 {
		ptr, err := f.call(f.queryFor(t).SelectConstructor(ctors))
		if err != nil {
			return reflect.Value{}, true, err
		}

		if ptr.IsNil() {
			return reflect.Value{}, true, fmt.Errorf("constructor for %s returned nil", ptr.Type())
		}

		return ptr.Elem(), true, nil
	}

	return reflect.Value{}, false, nil
}

func (f *Fixture) queryFor(t reflect.Type) ConstructorQuery {
	if q, ok := f.queries[t]; ok {
		return q
	}

	if t.Kind() == reflect.Pointer {
		if q, ok := f.queries[t.Elem()]; ok {
			return q
		}
	} else if q, ok := f.queries[reflect.PointerTo(t)]; ok {
		return q
	}

	return f.query
}

func (f *Fixture) call(c Constructor) (reflect.Value, error) {
	args := make([]reflect.Value, c.Arity())
	for i := range args {
		arg, err := f.Resolve(request.Parameter{Func: c.name, Position: i, Type: c.In(i)})
		if err != nil {
			return reflect.Value{}, fmt.Errorf("constructor %s argument %d: %w", c.name, i, err)
		}

		args[i] = arg
	}

	out := c.fn.Call(args)
	if len(out) == 2 && !out[1].IsNil() {
		return reflect.Value{}, fmt.Errorf("constructor %s: %w", c.name, out[1].Interface().(error))
	}

	if !out[0].IsValid() {
		return reflect.Value{}, errors.New("constructor " + c.name + " returned an invalid value")
	}

	return out[0], nil
}
