package fixture

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"

	"autoparam/request"
)

type builtinFunc func(f *Fixture, req any) (reflect.Value, error)

var (
	timeType     = reflect.TypeFor[time.Time]()
	durationType = reflect.TypeFor[time.Duration]()
	uuidType     = reflect.TypeFor[uuid.UUID]()
	ulidType     = reflect.TypeFor[ulid.ULID]()
)

// builtins cover opaque types whose zero-filled structure is not a useful specimen.
var builtins = map[reflect.Type]builtinFunc{
	timeType:     buildTime,
	durationType: buildDuration,
	uuidType:     buildUUID,
	ulidType:     buildULID,
}

// epoch anchors generated times so a fixed seed yields fixed values.
var epoch = time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC)

func (f *Fixture) create(t reflect.Type, req any) (reflect.Value, error) {
	if v, ok, err := f.construct(t); ok {
		if err != nil {
			return reflect.Value{}, err
		}

		return f.populate(v)
	}

	if b, ok := builtins[t]; ok {
		return b(f, req)
	}

	switch t.Kind() {
	case reflect.Bool:
		return reflect.ValueOf(f.random.bool()).Convert(t), nil

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		v := reflect.New(t).Elem()
		v.SetInt(int64(f.number(t)))

		return v, nil

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		v := reflect.New(t).Elem()
		v.SetUint(f.number(t))

		return v, nil

	case reflect.Float32, reflect.Float64:
		v := reflect.New(t).Elem()
		v.SetFloat(float64(f.number(t)) + f.random.fraction())

		return v, nil

	case reflect.Complex64, reflect.Complex128:
		v := reflect.New(t).Elem()
		v.SetComplex(complex(float64(f.number(t)), float64(f.number(t))))

		return v, nil

	case reflect.String:
		v := reflect.New(t).Elem()
		v.SetString(f.text(t, req))

		return v, nil

	case reflect.Pointer:
		elem, err := f.Resolve(t.Elem())
		if err != nil {
			return reflect.Value{}, err
		}

		ptr := reflect.New(t.Elem())
		ptr.Elem().Set(elem)

		return ptr, nil

	case reflect.Slice:
		return f.buildSlice(t)

	case reflect.Array:
		v := reflect.New(t).Elem()
		for i := range t.Len() {
			elem, err := f.Resolve(t.Elem())
			if err != nil {
				return reflect.Value{}, err
			}

			v.Index(i).Set(elem)
		}

		return v, nil

	case reflect.Map:
		return f.buildMap(t)

	case reflect.Chan:
		// MakeChan rejects directional types; build a bidirectional one and convert.
		ch := reflect.MakeChan(reflect.ChanOf(reflect.BothDir, t.Elem()), f.cfg.RepeatCount)
		return ch.Convert(t), nil

	case reflect.Struct:
		return f.populate(reflect.New(t).Elem())

	default:
		return reflect.Value{}, fmt.Errorf("%w for %s: %s values must be injected or registered",
			ErrNoSpecimen, request.Describe(req), t.Kind())
	}
}

func (f *Fixture) buildSlice(t reflect.Type) (reflect.Value, error) {
	v := reflect.MakeSlice(t, f.cfg.RepeatCount, f.cfg.RepeatCount)
	for i := range f.cfg.RepeatCount {
		elem, err := f.Resolve(t.Elem())
		if err != nil {
			return reflect.Value{}, err
		}

		v.Index(i).Set(elem)
	}

	return v, nil
}

func (f *Fixture) buildMap(t reflect.Type) (reflect.Value, error) {
	v := reflect.MakeMapWithSize(t, f.cfg.RepeatCount)
	for range f.cfg.RepeatCount {
		key, err := f.Resolve(t.Key())
		if err != nil {
			return reflect.Value{}, err
		}

		elem, err := f.Resolve(t.Elem())
		if err != nil {
			return reflect.Value{}, err
		}

		v.SetMapIndex(key, elem)
	}

	return v, nil
}

// populate fills exported fields, then calls SetX setters, unless omitted for the type.
// Fields already holding a non-zero value are left alone.
func (f *Fixture) populate(v reflect.Value) (reflect.Value, error) {
	var holder reflect.Value

	switch {
	case v.Kind() == reflect.Pointer && !v.IsNil() && v.Elem().Kind() == reflect.Struct:
		holder = v.Elem()
	case v.Kind() == reflect.Struct:
		holder = v
		if !holder.CanAddr() {
			ptr := reflect.New(v.Type())
			ptr.Elem().Set(v)
			holder = ptr.Elem()
		}
	default:
		return v, nil
	}

	owner := holder.Type()
	if f.omitFields[v.Type()] || f.omitFields[owner] {
		return v, nil
	}

	for i := range owner.NumField() {
		sf := owner.Field(i)
		if !sf.IsExported() {
			continue
		}

		field := holder.Field(i)
		if !field.CanSet() || !field.IsZero() {
			continue
		}

		fv, err := f.Resolve(request.Field{Owner: owner, Name: sf.Name, Type: sf.Type})
		if errors.Is(err, ErrNoSpecimen) && isOpaque(sf.Type) {
			continue
		}

		if err != nil {
			return reflect.Value{}, fmt.Errorf("field %s.%s: %w", owner, sf.Name, err)
		}

		field.Set(fv)
	}

	if err := f.callSetters(holder.Addr()); err != nil {
		return reflect.Value{}, err
	}

	if v.Kind() == reflect.Pointer {
		return v, nil
	}

	return holder, nil
}

// isOpaque reports kinds that only injection or registration can produce.
func isOpaque(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Interface, reflect.Func, reflect.UnsafePointer:
		return true
	default:
		return false
	}
}

func (f *Fixture) callSetters(ptr reflect.Value) error {
	pt := ptr.Type()
	owner := pt.Elem()

	for i := range pt.NumMethod() {
		m := pt.Method(i)
		if !strings.HasPrefix(m.Name, "Set") || len(m.Name) == len("Set") {
			continue
		}

		// Receiver plus one argument; any result is ignored except a non-nil error.
		if m.Type.NumIn() != 2 || m.Type.IsVariadic() {
			continue
		}

		name := strings.TrimPrefix(m.Name, "Set")
		arg, err := f.Resolve(request.Property{Owner: owner, Name: name, Type: m.Type.In(1)})
		if err != nil {
			return fmt.Errorf("property %s.%s: %w", owner, name, err)
		}

		out := ptr.Method(i).Call([]reflect.Value{arg})
		for _, o := range out {
			if e, ok := o.Interface().(error); ok && e != nil {
				return fmt.Errorf("property %s.%s: %w", owner, name, e)
			}
		}
	}

	return nil
}

// number returns a positive value that fits t and was not handed out before
// for t's kind, widening the range as smaller ranges run out.
func (f *Fixture) number(t reflect.Type) uint64 {
	limit := kindLimit(t.Kind())

	seen := f.numbers[t.Kind()]
	if seen == nil {
		seen = make(map[uint64]bool)
		f.numbers[t.Kind()] = seen
	}

	for _, upper := range []uint64{math.MaxUint8, math.MaxInt16, math.MaxInt32, limit} {
		if upper > limit {
			upper = limit
		}

		// A bounded number of draws per range keeps lookups cheap once a range fills up.
		for range 32 {
			n := f.random.uint64n(upper)
			if !seen[n] {
				seen[n] = true
				return n
			}
		}
	}

	return f.random.uint64n(limit)
}

func kindLimit(k reflect.Kind) uint64 {
	switch k {
	case reflect.Int8:
		return math.MaxInt8
	case reflect.Uint8:
		return math.MaxUint8
	case reflect.Int16:
		return math.MaxInt16
	case reflect.Uint16:
		return math.MaxUint16
	case reflect.Int32:
		return math.MaxInt32
	case reflect.Uint32:
		return math.MaxUint32
	case reflect.Float32:
		return 1 << 24
	case reflect.Float64:
		return 1 << 53
	default:
		return math.MaxInt64
	}
}

func (f *Fixture) text(t reflect.Type, req any) string {
	var prefix string

	switch f.cfg.StringPrefix {
	case PrefixName:
		prefix = request.NameOf(req)
		if prefix == "" {
			prefix = t.Name()
		}
	case PrefixType:
		prefix = t.Name()
	case PrefixNone:
	}

	return prefix + f.newUUID().String()
}

func (f *Fixture) newUUID() uuid.UUID {
	id, err := uuid.NewRandomFromReader(f.random)
	if err != nil {
		// The reader never fails; keep a valid value regardless.
		return uuid.New()
	}

	return id
}

func buildTime(f *Fixture, _ any) (reflect.Value, error) {
	offset := time.Duration(f.random.int64n(int64(5*365*24*time.Hour))) / time.Second * time.Second
	return reflect.ValueOf(epoch.Add(offset)), nil
}

func buildDuration(f *Fixture, _ any) (reflect.Value, error) {
	return reflect.ValueOf(time.Duration(f.number(durationType)) * time.Millisecond), nil
}

func buildUUID(f *Fixture, _ any) (reflect.Value, error) {
	return reflect.ValueOf(f.newUUID()), nil
}

func buildULID(f *Fixture, _ any) (reflect.Value, error) {
	ts := ulid.Timestamp(epoch.Add(time.Duration(f.random.int64n(int64(365 * 24 * time.Hour)))))

	id, err := ulid.New(ts, f.random)
	if err != nil {
		return reflect.Value{}, fmt.Errorf("generate ulid: %w", err)
	}

	return reflect.ValueOf(id), nil
}
