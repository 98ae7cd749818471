package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"autoparam/fixture"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Work with fixture configuration files",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Print the default configuration as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			data, err := fixture.DefaultConfig().Marshal()
			if err != nil {
				return err
			}

			_, err = cmd.OutOrStdout().Write(data)

			return err
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "check FILE...",
		Short: "Validate configuration files and print the effective settings",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runConfigCheck,
	})

	return cmd
}

var errInvalidConfig = errors.New("invalid configuration")

func runConfigCheck(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	failed := 0

	for _, path := range args {
		cfg, err := fixture.LoadConfig(path)
		if err != nil {
			fmt.Fprintf(out, "FAIL %s: %v\n", path, err)
			failed++

			continue
		}

		fmt.Fprintf(out, "OK   %s: seed=%d repeat_count=%d max_depth=%d string_prefix=%s\n",
			path, cfg.Seed, cfg.RepeatCount, cfg.MaxDepth, cfg.StringPrefix)
	}

	if failed > 0 {
		return fmt.Errorf("%w: %d of %d files", errInvalidConfig, failed, len(args))
	}

	return nil
}
