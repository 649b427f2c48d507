// Package main provides the CLI entry point for the plotforge chart skills.
//
// commands.go contains all cobra command definitions and their flag
// configurations. Each command builder function creates a command and wires
// it to its handler.
package main

import (
	"github.com/spf13/cobra"
)

// =============================================================================
// Seed Command
// =============================================================================

// buildSeedCmd creates the "seed" command that stores a starter chart.
func buildSeedCmd() *cobra.Command {
	var (
		templateName string
		payloadID    string
	)

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Store a starter chart payload",
		Long: `Store a starter Highcharts payload so the other commands have something
to describe, customize, and display.

The payload starts from a named seed template when --template is given,
from the configured default template otherwise, and from the built-in
sample chart when neither names one. The command prints the payload ID
the chart was stored under.`,
		Example: `  # Seed the built-in sample chart
  plotforge seed

  # Seed from a named template under a chosen ID
  plotforge seed --template line-basic --id revenue`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSeed(cmd, templateName, payloadID)
		},
	}

	cmd.Flags().StringVarP(&templateName, "template", "t", "",
		"Seed template name (see `plotforge templates list`)")
	cmd.Flags().StringVar(&payloadID, "id", "",
		"Identifier to store the payload under (generated when omitted)")

	return cmd
}

// =============================================================================
// Describe Command
// =============================================================================

// buildDescribeCmd creates the "describe" command that summarizes a stored
// chart.
func buildDescribeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "describe <payload-id>",
		Short: "Summarize a stored chart payload",
		Long: `Print a plain-language summary of a stored chart: its type, title,
axes, and series, followed by the editable field paths that apply to it.`,
		Example: `  plotforge describe chart_a1b2c3d4`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDescribe(cmd, args[0])
		},
	}
	return cmd
}

// =============================================================================
// Customize Command
// =============================================================================

// buildCustomizeCmd creates the "customize" command that edits a stored
// chart.
func buildCustomizeCmd() *cobra.Command {
	var (
		updates      string
		instructions string
	)

	cmd := &cobra.Command{
		Use:   "customize <payload-id>",
		Short: "Apply updates or instructions to a stored chart",
		Long: `Edit a stored chart payload in place and print a change log.

Updates name editable field paths directly. They are accepted as a JSON
object, a JSON list of {"path", "value"} pairs, or key=value lines:

  title.text="Quarterly Revenue"
  series[0].color="#336699"

Instructions are plain-language edit requests, one per line, translated
into field updates before they are applied:

  make the first series green
  turn off markers for all series

At least one of --updates and --instructions is required; when both are
given the updates run first.`,
		Example: `  # Direct field updates
  plotforge customize chart_a1b2c3d4 --updates 'title.text="Revenue"'

  # Plain-language instructions
  plotforge customize chart_a1b2c3d4 --instructions "hide the legend"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCustomize(cmd, args[0], updates, instructions)
		},
	}

	cmd.Flags().StringVarP(&updates, "updates", "u", "",
		"Field updates as JSON or key=value lines")
	cmd.Flags().StringVarP(&instructions, "instructions", "i", "",
		"Plain-language edit instructions, one per line")
	cmd.MarkFlagsOneRequired("updates", "instructions")

	return cmd
}

// =============================================================================
// Display Command
// =============================================================================

// buildDisplayCmd creates the "display" command that renders a stored chart
// as a visualization payload.
func buildDisplayCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "display <payload-id>",
		Short: "Print a stored chart payload as JSON",
		Long: `Load a stored chart payload and print it as indented JSON on stdout,
ready to hand to a Highcharts rendering host.`,
		Example: `  plotforge display chart_a1b2c3d4 > chart.json`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDisplay(cmd, args[0])
		},
	}
	return cmd
}

// =============================================================================
// Fields Command
// =============================================================================

// buildFieldsCmd creates the "fields" command that lists editable paths.
func buildFieldsCmd() *cobra.Command {
	var chartKind string

	cmd := &cobra.Command{
		Use:   "fields [payload-id]",
		Short: "List the editable field paths for a chart",
		Long: `List the editable field paths and their descriptions.

With a payload ID the catalog is expanded against the stored chart, so
kind-specific fields and one entry per series appear. With --kind the
catalog is expanded for an empty chart of that kind instead.`,
		Example: `  # Fields for a stored chart
  plotforge fields chart_a1b2c3d4

  # Fields for a pie chart with no stored payload
  plotforge fields --kind pie`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			payloadID := ""
			if len(args) == 1 {
				payloadID = args[0]
			}
			return runFields(cmd, payloadID, chartKind)
		},
	}

	cmd.Flags().StringVarP(&chartKind, "kind", "k", "",
		"Chart kind to expand the catalog for (line, pie, ...)")

	return cmd
}

// =============================================================================
// Templates Commands
// =============================================================================

// buildTemplatesCmd creates the "templates" command group.
func buildTemplatesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "templates",
		Short: "Inspect seed templates",
	}
	cmd.AddCommand(buildTemplatesListCmd())
	return cmd
}

func buildTemplatesListCmd() *cobra.Command {
	var query string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the available seed templates",
		Long: `List the seed templates discovered from the builtins and the configured
template directories, with their source and description.`,
		Example: `  plotforge templates list

  # Filter by name, description, or tag
  plotforge templates list --search revenue`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTemplatesList(cmd, query)
		},
	}

	cmd.Flags().StringVarP(&query, "search", "s", "",
		"Filter templates by name, description, or tag")

	return cmd
}

// =============================================================================
// Config Commands
// =============================================================================

// buildConfigCmd creates the "config" command group.
func buildConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect the configuration",
	}
	cmd.AddCommand(buildConfigSchemaCmd())
	return cmd
}

func buildConfigSchemaCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Print the configuration JSON schema",
		Long: `Print the JSON schema for the configuration file, for editor completion
and config validation tooling.`,
		Example: `  plotforge config schema > plotforge.schema.json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigSchema(cmd)
		},
	}
	return cmd
}

// =============================================================================
// Version Command
// =============================================================================

// buildVersionCmd creates the "version" command.
func buildVersionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVersion(cmd)
		},
	}
	return cmd
}
