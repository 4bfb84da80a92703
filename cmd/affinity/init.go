package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ersonp/affinity/internal/infrastructure/config"
)

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize affinity in the current directory",
		Long: `Creates a .affinity directory with a default configuration file and an empty database.
With --db, the config file records that database path instead of the default.`,
		Args:  cobra.NoArgs,
		RunE:  runInit,
	}
}

func runInit(cmd *cobra.Command, args []string) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting current directory: %w", err)
	}

	if config.Exists(cwd) {
		return fmt.Errorf("affinity already initialized in %s", cwd)
	}

	if err := writeInitialConfig(cwd); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Created %s\n", config.ConfigFilePath(cwd))

	return withDeps(cmd.Context(), func(d *Deps) error {
		fmt.Fprintf(out, "Database ready: %s\n", d.Config.SQLite.Path)
		fmt.Fprintln(out, "Affinity initialized successfully!")
		return nil
	})
}

// writeInitialConfig writes the commented default file, or a config holding
// the --db path when one was given.
func writeInitialConfig(cwd string) error {
	if globalDBPath == "" {
		if err := config.WriteDefault(cwd); err != nil {
			return fmt.Errorf("writing default config: %w", err)
		}
		return nil
	}

	cfg := config.Default()
	cfg.SQLite.Path = globalDBPath
	if err := config.Write(cwd, cfg); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}
