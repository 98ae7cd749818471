package main

import (
	"fmt"
	"reflect"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
	"github.com/spf13/cobra"

	"autoparam/fixture"
	"autoparam/request"
)

// sampleTypes are the types sample can generate by name.
var sampleTypes = map[string]reflect.Type{
	"bool":     reflect.TypeFor[bool](),
	"int":      reflect.TypeFor[int](),
	"int8":     reflect.TypeFor[int8](),
	"uint16":   reflect.TypeFor[uint16](),
	"float64":  reflect.TypeFor[float64](),
	"string":   reflect.TypeFor[string](),
	"strings":  reflect.TypeFor[[]string](),
	"time":     reflect.TypeFor[time.Time](),
	"duration": reflect.TypeFor[time.Duration](),
	"uuid":     reflect.TypeFor[uuid.UUID](),
	"ulid":     reflect.TypeFor[ulid.ULID](),
}

type sampleOptions struct {
	count      int
	seed       uint64
	name       string
	configPath string
}

func newSampleCmd(root *rootOptions) *cobra.Command {
	opts := &sampleOptions{}

	cmd := &cobra.Command{
		Use:   "sample TYPE",
		Short: "Print generated values of a built-in type",
		Long:  "Supported types: " + strings.Join(sampleTypeNames(), ", "),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSample(cmd, root, opts, args[0])
		},
	}

	cmd.Flags().IntVarP(&opts.count, "count", "n", 3, "Number of values")
	cmd.Flags().Uint64Var(&opts.seed, "seed", 0, "Random seed (0 picks one)")
	cmd.Flags().StringVar(&opts.name, "name", "", "Parameter name used to seed strings")
	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "", "Fixture configuration file")

	return cmd
}

func runSample(cmd *cobra.Command, root *rootOptions, opts *sampleOptions, typeName string) error {
	t, ok := sampleTypes[typeName]
	if !ok {
		return fmt.Errorf("unknown type %q, expected one of: %s", typeName, strings.Join(sampleTypeNames(), ", "))
	}

	cfg := fixture.DefaultConfig()
	if opts.configPath != "" {
		loaded, err := fixture.LoadConfig(opts.configPath)
		if err != nil {
			return err
		}

		cfg = loaded
	}

	if opts.seed != 0 {
		cfg.Seed = opts.seed
	}

	f := fixture.New(fixture.WithConfig(cfg), fixture.WithLogger(root.logger))

	for i := range opts.count {
		v, err := f.Resolve(request.Parameter{Func: "sample", Position: i, Name: opts.name, Type: t})
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), v.Interface())
	}

	return nil
}

func sampleTypeNames() []string {
	names := make([]string, 0, len(sampleTypes))
	for n := range sampleTypes {
		names = append(names, n)
	}

	sort.Strings(names)

	return names
}
