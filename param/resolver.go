package param

import (
	"errors"
	"fmt"
	"reflect"
	"runtime"

	"go.uber.org/zap"
)

// ErrNilContext is returned when resolution is asked to run without a generation context.
var ErrNilContext = errors.New("generation context is nil")

// Result is the outcome of resolving an argument list: either Args, aligned
// with the descriptors, or Err.
type Result struct {
	Args []reflect.Value
	Err  error
}

// OK reports whether resolution succeeded.
func (r Result) OK() bool { return r.Err == nil }

// Interfaces returns the arguments as interface values.
func (r Result) Interfaces() []any {
	out := make([]any, len(r.Args))
	for i, a := range r.Args {
		if a.IsValid() && a.CanInterface() {
			out[i] = a.Interface()
		}
	}

	return out
}

// ResolutionError carries the error raised while customizing or resolving one
// parameter. Its message is the original error's message.
type ResolutionError struct {
	Param Descriptor
	Err   error
}

func (e *ResolutionError) Error() string { return e.Err.Error() }

func (e *ResolutionError) Unwrap() error { return e.Err }

// PanicError wraps a value recovered from a panic during resolution.
type PanicError struct {
	Value any
}

func (e *PanicError) Error() string { return fmt.Sprint(e.Value) }

// Resolver resolves argument lists against a generation context.
type Resolver struct {
	logger *zap.Logger
}

// NewResolver creates a Resolver. A nil logger disables logging.
func NewResolver(logger *zap.Logger) *Resolver {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Resolver{logger: logger}
}

// Resolve applies the ordered customizations of every parameter, then
// resolves one value per parameter, left to right. Failures while doing so
// are returned in Result.Err; the returned error only reports invalid input.
// ctx is mutated and must not be shared between test cases.
func (r *Resolver) Resolve(ctx Context, ds []Descriptor) (Result, error) {
	if ctx == nil {
		return Result{}, ErrNilContext
	}

	for _, d := range ds {
		if d.Type == nil {
			return Result{}, fmt.Errorf("parameter %s has no type", paramRef(d))
		}
	}

	return r.resolve(ctx, ds), nil
}

func (r *Resolver) resolve(ctx Context, ds []Descriptor) (res Result) {
	var current Descriptor

	defer func() {
		if p := recover(); p != nil {
			res = Result{Err: &ResolutionError{Param: current, Err: &PanicError{Value: p}}}
		}
	}()

	for _, d := range ds {
		current = d

		for _, a := range Order(Scan(d)) {
			c, err := a.Customization(d)
			if err != nil {
				return Result{Err: &ResolutionError{Param: d, Err: err}}
			}

			r.logger.Debug("applying customization",
				zap.String("func", d.Func),
				zap.String("param", paramRef(d)),
				zap.String("annotation", fmt.Sprint(a)),
				zap.Bool("freeze", IsFreeze(a)))

			if err := ctx.Customize(c); err != nil {
				return Result{Err: &ResolutionError{Param: d, Err: err}}
			}
		}
	}

	args := make([]reflect.Value, len(ds))
	for i, d := range ds {
		current = d

		v, err := ctx.Resolve(d.Request())
		if err != nil {
			return Result{Err: &ResolutionError{Param: d, Err: err}}
		}

		args[i] = v
	}

	return Result{Args: args}
}

// Merge places the supplied values in the first positions and resolves only
// the remaining parameters. With as many values as parameters nothing is
// resolved, so customizations are not applied. Surplus values are passed
// through untouched for the caller to reject.
func (r *Resolver) Merge(ctx Context, ds []Descriptor, supplied []any) (Result, error) {
	m := len(supplied)
	if m >= len(ds) {
		return Result{Args: literalArgs(ds, supplied)}, nil
	}

	if ctx == nil {
		return Result{}, ErrNilContext
	}

	res, err := r.Resolve(ctx, ds[m:])
	if err != nil || !res.OK() {
		return res, err
	}

	args := append(literalArgs(ds[:m], supplied), res.Args...)

	return Result{Args: args}, nil
}

// literalArgs converts supplied values to the matching parameter types where
// possible; values that do not fit are kept as given.
func literalArgs(ds []Descriptor, supplied []any) []reflect.Value {
	args := make([]reflect.Value, len(supplied))
	for i, v := range supplied {
		if i < len(ds) && ds[i].Type != nil {
			if cv, err := coerce(v, ds[i].Type); err == nil {
				args[i] = cv
				continue
			}
		}

		args[i] = reflect.ValueOf(v)
	}

	return args
}

// FuncName returns the runtime name of a func value.
func FuncName(v reflect.Value) string {
	if rf := runtime.FuncForPC(v.Pointer()); rf != nil {
		return rf.Name()
	}

	return v.Type().String()
}
