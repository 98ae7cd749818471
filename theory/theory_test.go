package theory

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"autoparam/fixture"
	"autoparam/matching"
	"autoparam/param"
)

type brokenContext struct{ err error }

func (brokenContext) Customize(fixture.Customization) error { return nil }

func (c brokenContext) Resolve(any) (reflect.Value, error) { return reflect.Value{}, c.err }

func caseNames(cases []Case) []string {
	names := make([]string, len(cases))
	for i, c := range cases {
		names[i] = c.Name
	}

	return names
}

func TestNew_RejectsBadBodies(t *testing.T) {
	tests := []struct {
		name    string
		body    any
		opts    []Option
		wantErr string
	}{
		{name: "not a func", body: 1, wantErr: "must be a non-nil func"},
		{name: "no testing.T", body: func(int) {}, wantErr: "must take *testing.T"},
		{name: "variadic", body: func(*testing.T, ...int) {}, wantErr: "must not be variadic"},
		{
			name:    "annotation out of range",
			body:    func(*testing.T, int) {},
			opts:    []Option{Annotate(1, param.Frozen())},
			wantErr: "annotation position 1 out of range [0, 1)",
		},
		{
			name:    "unknown parameter name",
			body:    func(*testing.T, int) {},
			opts:    []Option{Names("n"), AnnotateName("m", param.Frozen())},
			wantErr: `no parameter named "m"`,
		},
		{
			name:    "misspelled parameter name",
			body:    func(*testing.T, string) {},
			opts:    []Option{Names("address"), AnnotateName("adress", param.Frozen())},
			wantErr: `no parameter named "adress" (did you mean "address"?)`,
		},
		{
			name:    "wrong name count",
			body:    func(*testing.T, int) {},
			opts:    []Option{Names("a", "b")},
			wantErr: "got 2 parameter names for 1 parameters",
		},
		{
			name:    "invalid annotation",
			body:    func(*testing.T, int) {},
			opts:    []Option{Annotate(0, param.Literal("text"))},
			wantErr: "[invalid_annotation]",
		},
		{
			name:    "nil data source",
			body:    func(*testing.T, int, int) {},
			opts:    []Option{Data(nil)},
			wantErr: "[invalid_data_source] data source 0: nil data source",
		},
		{
			name:    "nil source inside composite",
			body:    func(*testing.T, int, int) {},
			opts:    []Option{Inline(1), Data(Composite{Row{1}, nil})},
			wantErr: "data source 1: composite source 1: nil data source",
		},
		{
			name:    "nil data source func",
			body:    func(*testing.T, int) {},
			opts:    []Option{Data(DataSourceFunc(nil))},
			wantErr: "data source 0: nil data source",
		},
		{
			name:    "nil customization",
			body:    func(*testing.T, int) {},
			opts:    []Option{Customize(nil)},
			wantErr: "[invalid_customization] customization 0: nil customization",
		},
		{
			name:    "nil customization inside composite",
			body:    func(*testing.T, int) {},
			opts:    []Option{Customize(fixture.CompositeCustomization{nil})},
			wantErr: "customization 0: customization 0: nil customization",
		},
		{
			name:    "register non-func",
			body:    func(*testing.T, int) {},
			opts:    []Option{Register(42)},
			wantErr: "constructor must be a non-nil func, got int",
		},
		{
			name:    "register bad constructor",
			body:    func(*testing.T, int) {},
			opts:    []Option{Register(func() (int, string) { return 0, "" })},
			wantErr: "must return T or (T, error)",
		},
		{
			name:    "missing config file",
			body:    func(*testing.T, int) {},
			opts:    []Option{ConfigFile(filepath.Join(os.TempDir(), "autoparam-missing", "fixture.yaml"))},
			wantErr: "failed to read fixture config",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.body, tt.opts...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestNew_ReportsAllProblemsInPositionOrder(t *testing.T) {
	_, err := New(func(*testing.T, int) {},
		Annotate(3, param.Frozen()),
		Annotate(2, param.Frozen()),
		Annotate(5, param.Frozen()),
		Data(nil),
	)
	require.Error(t, err)

	msg := err.Error()
	p2 := strings.Index(msg, "annotation position 2")
	p3 := strings.Index(msg, "annotation position 3")
	p5 := strings.Index(msg, "annotation position 5")

	require.True(t, p2 >= 0 && p3 >= 0 && p5 >= 0, msg)
	assert.Less(t, p2, p3)
	assert.Less(t, p3, p5)
	assert.Contains(t, msg, "[annotation_position]")
	assert.Contains(t, msg, "[invalid_data_source]")
}

func TestNew_WarnsAboutIneffectiveAnnotations(t *testing.T) {
	tests := []struct {
		name string
		body any
		opts []Option
		want int
	}{
		{
			name: "inline row covers every parameter",
			body: func(*testing.T, int, int) {},
			opts: []Option{Annotate(0, param.Frozen()), Inline(1, 2)},
			want: 1,
		},
		{
			name: "table row covers every parameter",
			body: func(*testing.T, int) {},
			opts: []Option{Annotate(0, param.Greedy()), Data(Table{{1}, {2}})},
			want: 1,
		},
		{
			name: "unnamed parameter frozen by name",
			body: func(*testing.T, int) {},
			opts: []Option{Annotate(0, param.Frozen(param.By(matching.ParameterName)))},
			want: 1,
		},
		{
			name: "partial inline row",
			body: func(*testing.T, int, int) {},
			opts: []Option{Annotate(1, param.Frozen()), Inline(1)},
		},
		{
			name: "covering row without annotations",
			body: func(*testing.T, int) {},
			opts: []Option{Inline(1)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			core, logs := observer.New(zap.WarnLevel)

			_, err := New(tt.body, append(tt.opts, Logger(zap.New(core)))...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, logs.FilterMessage("theory option has no effect").Len())
		})
	}
}

func TestCases_FrozenFailureKeepsResolutionText(t *testing.T) {
	th, err := New(func(*testing.T, func()) {}, Annotate(0, param.Frozen()))
	require.NoError(t, err)

	_, want := fixture.New().Resolve(th.Descriptors()[0].Request())
	require.Error(t, want)

	cases, err := th.Cases()
	require.NoError(t, err)
	require.Len(t, cases, 1)
	assert.Equal(t, NotRunnable, cases[0].State)
	assert.Equal(t, want.Error(), cases[0].Reason)
}

func TestCases_Generated(t *testing.T) {
	th, err := New(func(*testing.T, int, string) {})
	require.NoError(t, err)

	cases, err := th.Cases()
	require.NoError(t, err)
	require.Len(t, cases, 1)

	c := cases[0]
	assert.Equal(t, Runnable, c.State)
	assert.Equal(t, "(auto<int>,auto<string>)", c.Name)
	assert.Len(t, c.Args, 2)
	assert.Zero(t, c.Supplied)
}

func TestCases_InlineHybrid(t *testing.T) {
	th, err := New(func(*testing.T, string, string, string) {},
		Inline("alpha", "beta"),
		Inline("x", "y", "z"),
	)
	require.NoError(t, err)

	cases, err := th.Cases()
	require.NoError(t, err)
	require.Len(t, cases, 2)

	assert.Equal(t, []string{`("alpha","beta",auto<string>)`, `("x","y","z")`}, caseNames(cases))

	args := cases[0].Args
	assert.Equal(t, "alpha", args[0].String())
	assert.Equal(t, "beta", args[1].String())
	assert.NotEmpty(t, args[2].String())
	assert.Equal(t, 2, cases[0].Supplied)
}

func TestCases_FailuresAreNotRunnable(t *testing.T) {
	boom := errors.New("generator offline")

	th, err := New(func(*testing.T, int, int) {},
		Context(func() param.Context { return brokenContext{err: boom} }),
		Inline(1),
		Inline(1, 2),
		Inline(1, 2, 3),
	)
	require.NoError(t, err)

	cases, err := th.Cases()
	require.NoError(t, err)
	require.Len(t, cases, 3)

	assert.Equal(t, NotRunnable, cases[0].State)
	assert.Equal(t, "generator offline", cases[0].Reason)
	assert.Equal(t, "(1,auto<int>)", cases[0].Name)
	assert.Nil(t, cases[0].Args)

	assert.Equal(t, Runnable, cases[1].State, "an exact row needs no generation")

	assert.Equal(t, NotRunnable, cases[2].State)
	assert.Equal(t, "expected 2 arguments, got 3", cases[2].Reason)
	assert.Equal(t, "(1,2,3)", cases[2].Name)
}

func TestCases_WrongLiteralType(t *testing.T) {
	th, err := New(func(*testing.T, int) {}, Inline("seven"))
	require.NoError(t, err)

	cases, err := th.Cases()
	require.NoError(t, err)
	require.Len(t, cases, 1)
	assert.Equal(t, NotRunnable, cases[0].State)
	assert.Equal(t, "argument 0: string is not assignable to int", cases[0].Reason)
}

func TestCases_DataSourceError(t *testing.T) {
	th, err := New(func(*testing.T, int) {},
		Data(DataSourceFunc(func([]param.Descriptor) ([][]any, error) {
			return nil, errors.New("table unavailable")
		})))
	require.NoError(t, err)

	_, err = th.Cases()
	assert.ErrorContains(t, err, "data source 0: table unavailable")
}

func TestCases_LogsNotRunnable(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)

	th, err := New(func(*testing.T, int) {},
		Logger(zap.New(core)),
		Context(func() param.Context { return brokenContext{err: errors.New("nope")} }),
	)
	require.NoError(t, err)

	_, err = th.Cases()
	require.NoError(t, err)
	assert.Equal(t, 1, logs.FilterMessage("case not runnable").Len())
}

func TestAuto_FrozenParameterIsShared(t *testing.T) {
	var calls int

	Auto(t, func(t *testing.T, p1 int, p2, p3 uuid.UUID) {
		calls++
		assert.Equal(t, p2, p3)
		assert.NotEqual(t, uuid.Nil, p2)
	}, Annotate(1, param.Frozen()))

	assert.Equal(t, 1, calls)
}

func TestAuto_FrozenByName(t *testing.T) {
	Auto(t, func(t *testing.T, city, town, City string) {
		assert.Equal(t, city, City)
		assert.NotEqual(t, city, town)
	},
		Names("city", "town", "City"),
		AnnotateName("city", param.Frozen(param.By(matching.ParameterName))),
	)
}

func TestAuto_Customizations(t *testing.T) {
	type Service struct {
		Endpoint string
		Retries  int
	}

	Auto(t, func(t *testing.T, s Service, endpoint string) {
		assert.Equal(t, "https://example.test", s.Endpoint)
		assert.Equal(t, 5, s.Retries)
		assert.NotEqual(t, s.Endpoint, endpoint)
	},
		Register(func() Service { return Service{Endpoint: "https://example.test", Retries: 5} }),
	)
}

func TestAuto_ConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fixture.yaml")
	require.NoError(t, os.WriteFile(path, []byte("repeat_count: 6\nstring_prefix: none\n"), 0o600))

	Auto(t, func(t *testing.T, items []int, label string) {
		assert.Len(t, items, 6)
		assert.Len(t, label, 36, "a bare uuid")
	}, ConfigFile(path))
}

func TestAuto_Config(t *testing.T) {
	Auto(t, func(t *testing.T, items map[string]int) {
		assert.Len(t, items, 1)
	}, Config(fixture.Config{RepeatCount: 1}))
}

func TestTheory_Descriptors(t *testing.T) {
	th, err := New(func(*testing.T, int, string) {}, Names("n", "s"), Annotate(0, param.Greedy()))
	require.NoError(t, err)

	ds := th.Descriptors()
	require.Len(t, ds, 2)
	assert.Equal(t, "n", ds[0].Name)
	assert.Len(t, ds[0].Annotations, 1)

	ds[0].Name = "changed"
	assert.Equal(t, "n", th.Descriptors()[0].Name)
}

func TestRunState_String(t *testing.T) {
	assert.Equal(t, "Runnable", Runnable.String())
	assert.Equal(t, "NotRunnable", NotRunnable.String())
	assert.Equal(t, "RunState(7)", RunState(7).String())
}
