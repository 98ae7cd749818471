package fixture

import (
	"errors"
	"fmt"
	"reflect"

	"go.uber.org/zap"

	"autoparam/matching"
	"autoparam/request"
)

var (
	// ErrNoSpecimen is returned when no builder can satisfy a request.
	ErrNoSpecimen = errors.New("no specimen")
	// ErrRecursion is returned when generation exceeds the configured depth.
	ErrRecursion = errors.New("recursion depth exceeded")
	// ErrNilCustomization is returned when a nil customization is applied.
	ErrNilCustomization = errors.New("nil customization")
)

// Customization alters how a fixture satisfies future requests.
type Customization interface {
	Customize(f *Fixture) error
}

// CustomizationFunc adapts a function to Customization.
type CustomizationFunc func(f *Fixture) error

// Customize implements Customization.
func (fn CustomizationFunc) Customize(f *Fixture) error { return fn(f) }

type injection struct {
	spec  matching.Specification
	value reflect.Value
}

// Fixture generates anonymous values. It is not safe for concurrent use;
// use one fixture per test case.
type Fixture struct {
	cfg    Config
	random *random
	logger *zap.Logger

	injected   []injection
	ctors      map[reflect.Type][]Constructor
	queries    map[reflect.Type]ConstructorQuery
	query      ConstructorQuery
	omitFields map[reflect.Type]bool
	numbers    map[reflect.Kind]map[uint64]bool
	depth      int
}

// Option configures a Fixture.
type Option func(*Fixture)

// WithConfig replaces the generation configuration.
func WithConfig(cfg Config) Option {
	return func(f *Fixture) {
		applyDefaults(&cfg)
		f.cfg = cfg
	}
}

// WithSeed sets the random seed.
func WithSeed(seed uint64) Option {
	return func(f *Fixture) { f.cfg.Seed = seed }
}

// WithLogger sets the logger used for debug tracing.
func WithLogger(l *zap.Logger) Option {
	return func(f *Fixture) {
		if l != nil {
			f.logger = l
		}
	}
}

// WithQuery sets the default constructor query.
func WithQuery(q ConstructorQuery) Option {
	return func(f *Fixture) {
		if q != nil {
			f.query = q
		}
	}
}

// New creates a Fixture.
func New(opts ...Option) *Fixture {
	f := &Fixture{
		cfg:        DefaultConfig(),
		logger:     zap.NewNop(),
		ctors:      make(map[reflect.Type][]Constructor),
		queries:    make(map[reflect.Type]ConstructorQuery),
		query:      ModestQuery{},
		omitFields: make(map[reflect.Type]bool),
		numbers:    make(map[reflect.Kind]map[uint64]bool),
	}

	for _, opt := range opts {
		opt(f)
	}

	f.random = newRandom(f.cfg.Seed)

	return f
}

// Config returns the effective configuration.
func (f *Fixture) Config() Config { return f.cfg }

// Customize applies c.
func (f *Fixture) Customize(c Customization) error {
	if c == nil {
		return ErrNilCustomization
	}

	return c.Customize(f)
}

// Inject makes every later request satisfying spec resolve to v. Later
// injections take precedence over earlier ones.
func (f *Fixture) Inject(spec matching.Specification, v reflect.Value) {
	f.injected = append(f.injected, injection{spec: spec, value: v})
}

// Register adds a constructor function returning T or (T, error).
func (f *Fixture) Register(fn any) error {
	ctor, err := newConstructor(fn)
	if err != nil {
		return err
	}

	f.ctors[ctor.Type()] = append(f.ctors[ctor.Type()], ctor)

	return nil
}

// SetQuery selects the constructor query for t.
func (f *Fixture) SetQuery(t reflect.Type, q ConstructorQuery) {
	f.queries[t] = q
}

// OmitAutoFields disables field and setter population for t (or the struct t points to).
func (f *Fixture) OmitAutoFields(t reflect.Type) {
	f.omitFields[t] = true

	if t.Kind() == reflect.Pointer {
		f.omitFields[t.Elem()] = true
	}
}

// Resolve satisfies a request: injected values first, then registered
// constructors, then the built-in builders. Injections are matched against
// req and then against the requests it relays to (see request.Relay), newest
// first at each step.
func (f *Fixture) Resolve(req any) (reflect.Value, error) {
	want := request.TypeOf(req)

	for _, r := range request.Relay(req) {
		if v, ok := f.injection(r, want); ok {
			return v, nil
		}
	}

	if want == nil {
		return reflect.Value{}, fmt.Errorf("%w for %s", ErrNoSpecimen, request.Describe(req))
	}

	if f.depth >= f.cfg.MaxDepth {
		return reflect.Value{}, fmt.Errorf("%w at %s", ErrRecursion, request.Describe(req))
	}

	f.depth++
	defer func() { f.depth-- }()

	return f.create(want, req)
}

func (f *Fixture) injection(req any, want reflect.Type) (reflect.Value, bool) {
	for i := len(f.injected) - 1; i >= 0; i-- {
		inj := f.injected[i]
		if !inj.spec.IsSatisfiedBy(req) {
			continue
		}

		if v, ok := matching.Adapt(inj.value, want); ok {
			return v, true
		}
	}

	return reflect.Value{}, false
}

// Create resolves a value of type T.
func Create[T any](f *Fixture) (T, error) {
	var zero T

	v, err := f.Resolve(reflect.TypeFor[T]())
	if err != nil {
		return zero, err
	}

	return v.Interface().(T), nil
}

// Freeze resolves a value of type T and injects it for later requests of T.
func Freeze[T any](f *Fixture) (T, error) {
	var zero T

	t := reflect.TypeFor[T]()
	if err := f.Customize(FreezeCustomization{
		Request: t,
		Spec:    matching.NewSelector(t, "", matching.ExactType).Specification(),
	}); err != nil {
		return zero, err
	}

	return Create[T](f)
}
