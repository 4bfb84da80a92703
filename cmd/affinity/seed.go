package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newSeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Load the sample people and interests",
		Long: `Saves the sample data set: Sabrina and Jim both like Volleyball,
and Jim also likes Art galleries.

Seeding is skipped when the database already contains people.`,
		Args: cobra.NoArgs,
		RunE: runSeed,
	}
}

func runSeed(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	return withDeps(ctx, func(d *Deps) error {
		result, err := d.SeedHandler.HandleSeed(ctx)
		if err != nil {
			return fmt.Errorf("seeding: %w", err)
		}

		if result.Skipped {
			fmt.Fprintln(out, "Database already has people; nothing seeded.")
			return nil
		}

		fmt.Fprintf(out, "Seeded %d people, %d interests, %d links.\n",
			result.People, result.Interests, result.Associations)
		return nil
	})
}
