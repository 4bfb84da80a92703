package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newLinkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "link <person> <interest>",
		Short: "Record that a person has an interest",
		Long: `Links a person to an interest.
Either side is created automatically if it doesn't exist.
Names match case-insensitively. Use quotes for names with spaces.

Examples:
  affinity link Sabrina Volleyball
  affinity link Jim "Art galleries"`,
		Args: cobra.ExactArgs(2),
		RunE: runLink,
	}
}

func runLink(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	return withDeps(ctx, func(d *Deps) error {
		result, err := d.GraphHandler.HandleLink(ctx, args[0], args[1])
		if err != nil {
			return fmt.Errorf("linking: %w", err)
		}

		fmt.Fprintf(out, "Linked %s -- %s\n", result.Person.Name, result.Interest.Name)
		return nil
	})
}
