package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ersonp/affinity/internal/application/handlers"
)

func newPeopleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "people",
		Short: "List people and their interests",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return withDeps(ctx, func(d *Deps) error {
				people, err := d.GraphHandler.HandleListPeople(ctx)
				if err != nil {
					return fmt.Errorf("listing people: %w", err)
				}
				displayPeople(cmd.OutOrStdout(), people)
				return nil
			})
		},
	}
}

func newInterestsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "interests",
		Short: "List interests and the people holding them",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return withDeps(ctx, func(d *Deps) error {
				interests, err := d.GraphHandler.HandleListInterests(ctx)
				if err != nil {
					return fmt.Errorf("listing interests: %w", err)
				}
				displayInterests(cmd.OutOrStdout(), interests)
				return nil
			})
		},
	}
}

func displayPeople(w io.Writer, people []handlers.PersonSummary) {
	if len(people) == 0 {
		fmt.Fprintln(w, "No people found.")
		return
	}

	fmt.Fprintf(w, "People (%d total):\n\n", len(people))
	for _, p := range people {
		fmt.Fprintf(w, "  %-11s %-20s %s\n", shortID(p.Person.ID), p.Person.Name, joinOrDash(p.Interests))
	}
}

func displayInterests(w io.Writer, interests []handlers.InterestSummary) {
	if len(interests) == 0 {
		fmt.Fprintln(w, "No interests found.")
		return
	}

	fmt.Fprintf(w, "Interests (%d total):\n\n", len(interests))
	for _, i := range interests {
		fmt.Fprintf(w, "  %-11s %-20s %s\n", shortID(i.Interest.ID), i.Interest.Name, joinOrDash(i.People))
	}
}

func shortID(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[:8] + "..."
}

func joinOrDash(names []string) string {
	if len(names) == 0 {
		return "-"
	}
	return strings.Join(names, ", ")
}
