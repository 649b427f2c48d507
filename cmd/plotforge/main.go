// Package main provides the CLI entry point for the plotforge chart skills.
//
// plotforge stores Highcharts payloads and edits them through four skills:
// seed, describe, customize, and display. The CLI is a thin host over the
// skill registry: each command builds the skill parameters, executes the
// skill, and prints its output.
//
// # Basic Usage
//
// Seed a starter chart and customize it:
//
//	plotforge seed --template line-basic
//	plotforge customize chart_a1b2c3d4 --instructions "make the first series green"
//	plotforge describe chart_a1b2c3d4
//
// List the editable fields of a stored chart:
//
//	plotforge fields chart_a1b2c3d4
//
// # Configuration
//
// Configuration is read from plotforge.yaml (override with --config). The
// store backend (memory, sqlite, postgres), logging, tracing, template
// directories, and retention policy are all configured there; run
// `plotforge config schema` for the full schema.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

// Build information - populated by ldflags during build.
//
// Example build command:
//
//	go build -ldflags "-X main.version=v1.0.0 -X main.commit=$(git rev-parse HEAD) -X main.date=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
var (
	version    = "dev"     // Semantic version (e.g., "v1.0.0")
	commit     = "none"    // Git commit SHA
	date       = "unknown" // Build timestamp
	configPath string
)

// defaultConfigPath is used when --config is not given. If the file does not
// exist the CLI falls back to built-in defaults (memory store, info logging).
const defaultConfigPath = "plotforge.yaml"

// main is the entry point for the plotforge CLI.
func main() {
	// Structured logging to stderr so command output on stdout stays clean.
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	rootCmd := buildRootCmd()

	if err := rootCmd.Execute(); err != nil {
		slog.Error("command execution failed", "error", err)
		os.Exit(1)
	}
}

// buildRootCmd creates the root command with all subcommands attached.
// This is separated from main() to facilitate testing.
func buildRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "plotforge",
		Short: "plotforge - Highcharts payload skills",
		Long: `plotforge stores Highcharts configuration payloads and edits them through
chart skills: seed a starter chart, describe or display a stored chart, and
customize it with path updates or plain-language instructions.

Store backends: in-memory, SQLite, PostgreSQL`,
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		// SilenceUsage prevents printing usage on every error.
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVar(&configPath, "config", defaultConfigPath,
		"Path to YAML configuration file")

	// Attach all subcommands.
	rootCmd.AddCommand(
		buildSeedCmd(),
		buildDescribeCmd(),
		buildCustomizeCmd(),
		buildDisplayCmd(),
		buildFieldsCmd(),
		buildTemplatesCmd(),
		buildConfigCmd(),
		buildVersionCmd(),
	)

	return rootCmd
}
