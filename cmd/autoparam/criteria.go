package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"autoparam/matching"
)

func newCriteriaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "criteria EXPR...",
		Short: "Parse matching criteria and print their canonical form",
		Long: `Parses expressions such as "type|base" or "ExactType,member" and prints
the canonical flag names, one expression per line.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, expr := range args {
				c, err := matching.ParseCriteria(expr)
				if err != nil {
					return err
				}

				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%d\n", c, int(c))
			}

			return nil
		},
	}
}
