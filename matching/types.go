package matching

import (
	"reflect"
)

// DirectBases returns the types embedded at depth one in target (or in the
// struct target points to).
func DirectBases(target reflect.Type) []reflect.Type {
	st := structOf(target)
	if st == nil {
		return nil
	}

	var bases []reflect.Type
	for i := range st.NumField() {
		f := st.Field(i)
		if f.Anonymous {
			bases = append(bases, f.Type)
		}
	}

	return bases
}

// IsDirectBase reports whether candidate is embedded directly in target.
// Embedding a struct by value also makes a pointer to it a direct base.
func IsDirectBase(candidate, target reflect.Type) bool {
	if candidate == nil || target == nil || candidate == target {
		return false
	}

	_, ok := embeddedIndex(candidate, target)
	return ok
}

// Adapt converts a frozen value into a value for want: directly when the
// types are assignable, otherwise by selecting the embedded base.
func Adapt(v reflect.Value, want reflect.Type) (reflect.Value, bool) {
	if !v.IsValid() {
		return v, false
	}

	if want == nil || v.Type().AssignableTo(want) {
		return v, true
	}

	idx, ok := embeddedIndex(want, v.Type())
	if !ok {
		return reflect.Value{}, false
	}

	holder := v
	if holder.Kind() == reflect.Pointer {
		if holder.IsNil() {
			return reflect.Value{}, false
		}

		holder = holder.Elem()
	}

	field := holder.Field(idx)
	if !field.CanInterface() {
		return reflect.Value{}, false
	}

	if field.Type() == want {
		return field, true
	}

	// want is *Base while Base is embedded by value.
	if field.CanAddr() {
		return field.Addr(), true
	}

	ptr := reflect.New(field.Type())
	ptr.Elem().Set(field)

	return ptr, true
}

func embeddedIndex(candidate, target reflect.Type) (int, bool) {
	st := structOf(target)
	if st == nil {
		return 0, false
	}

	for i := range st.NumField() {
		f := st.Field(i)
		if !f.Anonymous {
			continue
		}

		if f.Type == candidate {
			return i, true
		}

		if candidate.Kind() == reflect.Pointer && candidate.Elem() == f.Type {
			return i, true
		}
	}

	return 0, false
}

func structOf(t reflect.Type) reflect.Type {
	if t == nil {
		return nil
	}

	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	if t.Kind() != reflect.Struct {
		return nil
	}

	return t
}
