package theory

import (
	"fmt"
	"maps"
	"reflect"
	"slices"
	"testing"

	"go.uber.org/zap"

	"autoparam/fixture"
	"autoparam/internal/analyze"
	"autoparam/internal/diagnostic"
	"autoparam/internal/match"
	"autoparam/param"
)

var testingTType = reflect.TypeFor[*testing.T]()

// Case is one invocation of a theory body.
type Case struct {
	Index    int
	Name     string
	Args     []reflect.Value
	Supplied int
	State    RunState
	Reason   string
}

// Theory binds a test body to generated arguments.
type Theory struct {
	body        reflect.Value
	name        string
	descriptors []param.Descriptor
	sources     []DataSource
	naming      NamingStrategy
	newContext  func() param.Context
	customize   []fixture.Customization
	resolver    *param.Resolver
	logger      *zap.Logger
}

// New binds body, a func whose first parameter is *testing.T. Every problem
// detectable without generating values is reported here.
func New(body any, opts ...Option) (*Theory, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	v := reflect.ValueOf(body)
	if err := checkBody(v); err != nil {
		return nil, err
	}

	names, err := resolveNames(body, &o)
	if err != nil {
		return nil, err
	}

	ds, err := param.Describe(body, 1, names)
	if err != nil {
		return nil, err
	}

	name := param.FuncName(v)

	var diags diagnostic.Diagnostics
	if o.discover && o.names == nil {
		diags.AddInfo("discovered_names", "parameter names read from source", name, "")
	}

	attach(name, ds, &o, &diags)
	checkOptions(name, ds, &o, &diags)
	diags.Merge(param.Diagnose(ds))

	if err := diags.Error(); err != nil {
		return nil, err
	}

	logger := o.logger
	if logger == nil {
		logger = zap.NewNop()
	}

	for _, w := range diags.Warnings {
		logger.Warn("theory option has no effect", zap.String("func", name), zap.Stringer("diagnostic", w))
	}

	for _, i := range diags.Infos {
		logger.Debug("theory bound", zap.String("func", name), zap.Stringer("diagnostic", i))
	}

	newContext, err := contextFactory(&o, logger)
	if err != nil {
		return nil, err
	}

	naming := o.naming
	if naming == nil {
		naming = AutoTypeNaming
	}

	return &Theory{
		body:        v,
		name:        name,
		descriptors: ds,
		sources:     o.sources,
		naming:      naming,
		newContext:  newContext,
		customize:   o.customize,
		resolver:    param.NewResolver(logger),
		logger:      logger,
	}, nil
}

// Descriptors returns the bound parameters.
func (th *Theory) Descriptors() []param.Descriptor {
	return append([]param.Descriptor(nil), th.descriptors...)
}

// Cases builds one case per data row, or a single fully generated case when
// there is no data. Each case gets a fresh context. Resolution failures make
// a case NotRunnable; the error return is kept for data sources that cannot
// produce rows.
func (th *Theory) Cases() ([]Case, error) {
	rows, err := th.rows()
	if err != nil {
		return nil, err
	}

	cases := make([]Case, 0, len(rows))
	for i, row := range rows {
		cases = append(cases, th.buildCase(i, row))
	}

	return cases, nil
}

// Run runs every case as a subtest of t.
func (th *Theory) Run(t *testing.T) {
	t.Helper()

	cases, err := th.Cases()
	if err != nil {
		t.Fatalf("%s: %v", th.name, err)
	}

	for _, c := range cases {
		t.Run(c.Name, func(t *testing.T) {
			t.Helper()

			if c.State == NotRunnable {
				t.Fatalf("not runnable: %s", c.Reason)
			}

			th.body.Call(append([]reflect.Value{reflect.ValueOf(t)}, c.Args...))
		})
	}
}

// Auto binds body and runs it, failing t when binding fails.
func Auto(t *testing.T, body any, opts ...Option) {
	t.Helper()

	th, err := New(body, opts...)
	if err != nil {
		t.Fatalf("bind theory: %v", err)
	}

	th.Run(t)
}

func (th *Theory) rows() ([][]any, error) {
	if len(th.sources) == 0 {
		return [][]any{nil}, nil
	}

	var rows [][]any
	for i, src := range th.sources {
		more, err := src.Rows(th.Descriptors())
		if err != nil {
			return nil, fmt.Errorf("%s: data source %d: %w", th.name, i, err)
		}

		rows = append(rows, more...)
	}

	return rows, nil
}

func (th *Theory) buildCase(i int, row []any) Case {
	c := Case{Index: i, Supplied: len(row)}

	res, err := th.resolve(row)
	if err == nil {
		err = res.Err
	}

	if err == nil {
		err = checkArgs(th.descriptors, res.Args)
	}

	if err != nil {
		c.State = NotRunnable
		c.Reason = err.Error()
		c.Name = th.naming.Name(th.descriptors, placeholders(th.descriptors, row), c.Supplied)

		th.logger.Debug("case not runnable",
			zap.String("func", th.name),
			zap.Int("case", i),
			zap.Error(err))

		return c
	}

	c.Args = res.Args
	c.Name = th.naming.Name(th.descriptors, res.Args, c.Supplied)

	return c
}

func (th *Theory) resolve(row []any) (param.Result, error) {
	if len(row) >= len(th.descriptors) {
		return th.resolver.Merge(nil, th.descriptors, row)
	}

	ctx := th.newContext()
	if ctx == nil {
		return param.Result{}, param.ErrNilContext
	}

	for _, c := range th.customize {
		if err := ctx.Customize(c); err != nil {
			return param.Result{Err: err}, nil
		}
	}

	return th.resolver.Merge(ctx, th.descriptors, row)
}

func checkBody(v reflect.Value) error {
	if v.Kind() != reflect.Func || v.IsNil() {
		return fmt.Errorf("theory body must be a non-nil func, got %s", v.Kind())
	}

	ft := v.Type()
	if ft.NumIn() == 0 || ft.In(0) != testingTType {
		return fmt.Errorf("theory body %s must take *testing.T as its first parameter", ft)
	}

	if ft.IsVariadic() {
		return fmt.Errorf("theory body %s must not be variadic", ft)
	}

	return nil
}

func resolveNames(body any, o *options) ([]string, error) {
	if o.names != nil || !o.discover {
		return o.names, nil
	}

	var (
		info *analyze.FuncInfo
		err  error
	)

	if o.cache != nil {
		info, err = o.cache.Func(body)
	} else {
		info, err = analyze.LoadFunc(body)
	}

	if err != nil {
		return nil, fmt.Errorf("discover parameter names: %w", err)
	}

	return info.Names(1), nil
}

func attach(fn string, ds []param.Descriptor, o *options, diags *diagnostic.Diagnostics) {
	for _, pos := range slices.Sorted(maps.Keys(o.positional)) {
		if pos < 0 || pos >= len(ds) {
			diags.AddError("annotation_position",
				fmt.Sprintf("annotation position %d out of range [0, %d)", pos, len(ds)), fn, "")
			continue
		}

		ds[pos].Annotations = append(ds[pos].Annotations, o.positional[pos]...)
	}

	for _, name := range o.order {
		idx := -1
		for i, d := range ds {
			if d.Name != "" && d.Name == name {
				idx = i
				break
			}
		}

		if idx < 0 {
			diags.AddError("unknown_parameter",
				fmt.Sprintf("no parameter named %q%s", name, match.Hint(name, paramNames(ds))), fn, "")
			continue
		}

		ds[idx].Annotations = append(ds[idx].Annotations, o.named[name]...)
	}
}

// checkOptions reports data sources and customizations that would only fail
// once cases are built, and literal rows that leave annotations unused.
func checkOptions(fn string, ds []param.Descriptor, o *options, diags *diagnostic.Diagnostics) {
	for i, src := range o.sources {
		if err := checkSource(src); err != nil {
			diags.AddError("invalid_data_source", fmt.Sprintf("data source %d: %v", i, err), fn, "")
		}
	}

	for i, c := range o.customize {
		if err := fixture.ValidateCustomization(c); err != nil {
			diags.AddError("invalid_customization", fmt.Sprintf("customization %d: %v", i, err), fn, "")
		}
	}

	if !annotated(ds) {
		return
	}

	for i, src := range o.sources {
		for _, row := range literalRows(src) {
			if len(row) >= len(ds) {
				diags.AddWarning("unused_annotations",
					fmt.Sprintf("data source %d supplies all %d parameters; annotations are not applied to its rows",
						i, len(ds)), fn, "")

				break
			}
		}
	}
}

func annotated(ds []param.Descriptor) bool {
	for _, d := range ds {
		if len(param.Scan(d)) > 0 {
			return true
		}
	}

	return false
}

func paramNames(ds []param.Descriptor) []string {
	names := make([]string, len(ds))
	for i, d := range ds {
		names[i] = d.Name
	}

	return names
}

func contextFactory(o *options, logger *zap.Logger) (func() param.Context, error) {
	if o.newContext != nil {
		return o.newContext, nil
	}

	cfg := fixture.DefaultConfig()
	switch {
	case o.configFile != "":
		loaded, err := fixture.LoadConfig(o.configFile)
		if err != nil {
			return nil, err
		}

		cfg = loaded
	case o.config != nil:
		cfg = *o.config
	}

	return func() param.Context {
		return fixture.New(fixture.WithConfig(cfg), fixture.WithLogger(logger))
	}, nil
}

func checkArgs(ds []param.Descriptor, args []reflect.Value) error {
	if len(args) != len(ds) {
		return fmt.Errorf("expected %d arguments, got %d", len(ds), len(args))
	}

	for i, a := range args {
		if !a.IsValid() {
			return fmt.Errorf("argument %d: nil is not a valid %s", i, ds[i].Type)
		}

		if !a.Type().AssignableTo(ds[i].Type) {
			return fmt.Errorf("argument %d: %s is not assignable to %s", i, a.Type(), ds[i].Type)
		}
	}

	return nil
}

func placeholders(ds []param.Descriptor, row []any) []reflect.Value {
	out := make([]reflect.Value, max(len(ds), len(row)))
	for i, v := range row {
		out[i] = reflect.ValueOf(v)
	}

	return out
}
