package theory

import (
	"go.uber.org/zap"

	"autoparam/fixture"
	"autoparam/internal/analyze"
	"autoparam/param"
)

// NameCache memoizes parameter names discovered from source. Create one per
// test binary or per test; it is never shared implicitly.
type NameCache = analyze.Cache

// NewNameCache creates an empty NameCache.
func NewNameCache() *NameCache { return analyze.NewCache() }

type options struct {
	names      []string
	discover   bool
	cache      *NameCache
	positional map[int][]param.Annotation
	named      map[string][]param.Annotation
	order      []string
	sources    []DataSource
	naming     NamingStrategy
	newContext func() param.Context
	config     *fixture.Config
	configFile string
	customize  []fixture.Customization
	logger     *zap.Logger
}

// Option configures a Theory.
type Option func(*options)

// Names sets the names of the generated parameters (every parameter after *testing.T).
func Names(names ...string) Option {
	return func(o *options) { o.names = names }
}

// DiscoverNames reads parameter names from the body's source. A nil cache
// loads the source on every New call.
func DiscoverNames(cache *NameCache) Option {
	return func(o *options) {
		o.discover = true
		o.cache = cache
	}
}

// Annotate attaches annotations to the parameter at pos, counted from 0 after *testing.T.
func Annotate(pos int, as ...param.Annotation) Option {
	return func(o *options) {
		if o.positional == nil {
			o.positional = make(map[int][]param.Annotation)
		}

		o.positional[pos] = append(o.positional[pos], as...)
	}
}

// AnnotateName attaches annotations to the parameter with the given name.
// Names must be set with Names or DiscoverNames.
func AnnotateName(name string, as ...param.Annotation) Option {
	return func(o *options) {
		if o.named == nil {
			o.named = make(map[string][]param.Annotation)
		}

		if _, ok := o.named[name]; !ok {
			o.order = append(o.order, name)
		}

		o.named[name] = append(o.named[name], as...)
	}
}

// Inline adds a case whose leading arguments are values; the rest are generated.
func Inline(values ...any) Option {
	return Data(Row(values))
}

// Data adds the rows of a data source as cases.
func Data(src DataSource) Option {
	return func(o *options) { o.sources = append(o.sources, src) }
}

// Naming selects how subtests are named. The default is AutoTypeNaming.
func Naming(s NamingStrategy) Option {
	return func(o *options) { o.naming = s }
}

// Context replaces the generation context factory. It is called once per case
// and must return a fresh context each time.
func Context(factory func() param.Context) Option {
	return func(o *options) { o.newContext = factory }
}

// Config sets the fixture configuration used by the default context factory.
func Config(cfg fixture.Config) Option {
	return func(o *options) { o.config = &cfg }
}

// ConfigFile loads the fixture configuration from a YAML file.
func ConfigFile(path string) Option {
	return func(o *options) { o.configFile = path }
}

// Customize applies customizations to every case's context before annotations.
func Customize(cs ...fixture.Customization) Option {
	return func(o *options) { o.customize = append(o.customize, cs...) }
}

// Register registers constructor functions on every case's context.
func Register(ctors ...any) Option {
	return Customize(fixture.RegisterCustomization(ctors))
}

// Logger sets the logger for resolution tracing.
func Logger(l *zap.Logger) Option {
	return func(o *options) { o.logger = l }
}
