// Package main provides the CLI entry point for the plotforge chart skills.
//
// handlers.go contains the RunE handler functions for all CLI commands.
// These functions implement the business logic for each command.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/plotforge/plotforge/internal/chartdoc"
	"github.com/plotforge/plotforge/internal/config"
	"github.com/plotforge/plotforge/internal/editable"
	"github.com/plotforge/plotforge/internal/observability"
	"github.com/plotforge/plotforge/internal/payloads"
	"github.com/plotforge/plotforge/internal/skills"
	"github.com/plotforge/plotforge/internal/templates"
)

// =============================================================================
// Application Wiring
// =============================================================================

// app bundles the collaborators a command needs: the configured store, the
// template registry, and the skill registry that dispatches to the four
// chart skills.
type app struct {
	cfg       *config.Config
	logger    *slog.Logger
	store     payloads.Store
	metrics   *payloads.Metrics
	templates *templates.Registry
	skills    *skills.Registry

	// cleanup functions run in reverse order on Close.
	cleanup []func(context.Context) error
}

// loadConfig resolves the --config flag. A missing file is only an error
// when the flag was set explicitly; the default path falls back to the
// built-in defaults so the CLI works out of the box.
func loadConfig() (*config.Config, error) {
	if configPath == defaultConfigPath {
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			return config.Default(), nil
		}
	}
	return config.Load(configPath)
}

// newApp wires the store, templates, and skills from the configuration.
// Callers must Close the returned app.
func newApp(ctx context.Context, cfg *config.Config) (*app, error) {
	logger := observability.NewLogger(observability.LogConfig{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: os.Stderr,
	})
	slog.SetDefault(logger)

	a := &app{cfg: cfg, logger: logger}

	var tracer *observability.Tracer
	if cfg.Tracing.Enabled {
		var shutdown func(context.Context) error
		tracer, shutdown = observability.NewTracer(observability.TraceConfig{
			ServiceName:    cfg.Tracing.ServiceName,
			ServiceVersion: version,
			Environment:    cfg.Tracing.Environment,
			Endpoint:       cfg.Tracing.Endpoint,
			SamplingRate:   cfg.Tracing.SamplingRate,
			EnableInsecure: cfg.Tracing.Insecure,
		})
		a.cleanup = append(a.cleanup, shutdown)
	}

	store, err := openStore(cfg.Store)
	if err != nil {
		a.Close(ctx)
		return nil, err
	}
	a.store = store
	if closer, ok := store.(interface{ Close() error }); ok {
		a.cleanup = append(a.cleanup, func(context.Context) error {
			return closer.Close()
		})
	}

	a.metrics = payloads.NewMetrics()

	// Commands are one-shot, so templates are discovered once per
	// invocation; file watching is for long-lived embedders.
	a.templates = templates.NewRegistry(templates.Config{
		Dirs:   cfg.Templates.Dirs,
		Logger: logger,
	})
	if err := a.templates.Discover(ctx); err != nil {
		a.Close(ctx)
		return nil, fmt.Errorf("discover templates: %w", err)
	}
	a.cleanup = append(a.cleanup, func(context.Context) error {
		return a.templates.Close()
	})

	deps := skills.Deps{
		Store:     a.store,
		Templates: a.templates,
		Logger:    logger,
		Metrics:   a.metrics,
	}
	a.skills = skills.NewRegistry(
		skills.WithRegistryLogger(logger),
		skills.WithRegistryTracer(tracer),
	)
	a.skills.Register(skills.NewSeedSkill(deps))
	a.skills.Register(skills.NewDescribeSkill(deps))
	a.skills.Register(skills.NewCustomizeSkill(deps))
	a.skills.Register(skills.NewDisplaySkill(deps))

	// With retention enabled each invocation prunes expired payloads
	// before running; the cron schedule matters to long-lived embedders.
	if cfg.Retention.Enabled {
		sweeper, err := payloads.NewSweeper(a.store, payloads.RetentionPolicy{
			Cron:   cfg.Retention.Cron,
			MaxAge: cfg.Retention.MaxAge,
		}, payloads.WithSweeperLogger(logger), payloads.WithSweeperMetrics(a.metrics))
		if err != nil {
			a.Close(ctx)
			return nil, fmt.Errorf("configure retention: %w", err)
		}
		if _, err := sweeper.RunOnce(ctx); err != nil {
			logger.WarnContext(ctx, "retention sweep failed", "error", err)
		}
	}

	return a, nil
}

// openStore builds the payload store named by the configuration.
func openStore(cfg config.StoreConfig) (payloads.Store, error) {
	switch cfg.Backend {
	case config.BackendMemory:
		return payloads.NewMemoryStore(), nil
	case config.BackendSQLite:
		return payloads.NewSQLiteStore(cfg.Path)
	case config.BackendPostgres:
		pool := payloads.DefaultPoolConfig()
		if cfg.MaxConnections > 0 {
			pool.MaxOpenConns = cfg.MaxConnections
		}
		if cfg.ConnMaxLifetime > 0 {
			pool.ConnMaxLifetime = cfg.ConnMaxLifetime
		}
		return payloads.NewPostgresStoreFromDSN(cfg.DSN, pool)
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Backend)
	}
}

// Close releases the app's resources in reverse acquisition order.
func (a *app) Close(ctx context.Context) error {
	var errs []error
	for i := len(a.cleanup) - 1; i >= 0; i-- {
		if err := a.cleanup[i](ctx); err != nil {
			errs = append(errs, err)
		}
	}
	a.cleanup = nil
	return errors.Join(errs...)
}

// =============================================================================
// Skill Command Handlers
// =============================================================================

// runSkill executes a named skill with the given parameters and prints its
// output: Text on stdout, Narrative on stderr. Skill-level failures become
// command errors.
func runSkill(cmd *cobra.Command, cfg *config.Config, skillName string, params map[string]any) error {
	ctx := cmd.Context()
	a, err := newApp(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := a.Close(ctx); err != nil {
			a.logger.WarnContext(ctx, "cleanup failed", "error", err)
		}
	}()

	raw, err := json.Marshal(params)
	if err != nil {
		return fmt.Errorf("encode parameters: %w", err)
	}

	out, err := a.skills.Execute(ctx, skillName, raw)
	if err != nil {
		return err
	}
	if out.Narrative != "" {
		fmt.Fprintln(cmd.ErrOrStderr(), out.Narrative)
	}
	if out.IsError {
		return errors.New(out.Text)
	}
	fmt.Fprintln(cmd.OutOrStdout(), out.Text)
	return nil
}

// runSeed handles the seed command.
func runSeed(cmd *cobra.Command, templateName, payloadID string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if templateName == "" {
		templateName = cfg.Templates.Default
	}

	params := map[string]any{}
	if templateName != "" {
		params["template"] = templateName
	}
	if payloadID != "" {
		params["saved_payload_id"] = payloadID
	}
	return runSkill(cmd, cfg, "seed_chart", params)
}

// runDescribe handles the describe command.
func runDescribe(cmd *cobra.Command, payloadID string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	return runSkill(cmd, cfg, "describe_chart", map[string]any{
		"saved_payload_id": payloadID,
	})
}

// runCustomize handles the customize command.
func runCustomize(cmd *cobra.Command, payloadID, updates, instructions string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	params := map[string]any{
		"saved_payload_id": payloadID,
	}
	// The updates flag is passed through as a string parameter; the skill
	// accepts JSON, JSON5, and key=value forms in string position.
	if updates != "" {
		params["updates"] = updates
	}
	if instructions != "" {
		params["instructions"] = instructions
	}
	return runSkill(cmd, cfg, "customize_chart", params)
}

// runDisplay handles the display command.
func runDisplay(cmd *cobra.Command, payloadID string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	return runSkill(cmd, cfg, "display_chart", map[string]any{
		"saved_payload_id": payloadID,
	})
}

// =============================================================================
// Fields Command Handler
// =============================================================================

// runFields handles the fields command. With a payload ID the catalog is
// expanded against the stored chart; otherwise an empty chart of the given
// kind stands in.
func runFields(cmd *cobra.Command, payloadID, chartKind string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	doc := chartdoc.Document{}
	if chartKind != "" {
		doc = chartdoc.Document{
			"chart": map[string]any{"type": chartKind},
		}
	}

	if payloadID != "" {
		ctx := cmd.Context()
		a, err := newApp(ctx, cfg)
		if err != nil {
			return err
		}
		defer func() {
			if err := a.Close(ctx); err != nil {
				a.logger.WarnContext(ctx, "cleanup failed", "error", err)
			}
		}()

		payload, err := a.store.Load(ctx, payloadID)
		if err != nil {
			return fmt.Errorf("load payload %s: %w", payloadID, err)
		}
		doc = payloads.Options(payload)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Editable fields:")
	for _, field := range editable.Fields(doc) {
		fmt.Fprintf(out, "  %-40s %s\n", field.Path, field.Description)
	}
	return nil
}

// =============================================================================
// Templates Command Handlers
// =============================================================================

// runTemplatesList handles the templates list command.
func runTemplatesList(cmd *cobra.Command, query string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	registry := templates.NewRegistry(templates.Config{
		Dirs:   cfg.Templates.Dirs,
		Logger: slog.Default(),
	})
	if err := registry.Discover(cmd.Context()); err != nil {
		return fmt.Errorf("discover templates: %w", err)
	}

	listed := registry.List()
	if query != "" {
		listed = registry.Search(query)
	}

	out := cmd.OutOrStdout()
	if len(listed) == 0 {
		fmt.Fprintln(out, "No templates found.")
		return nil
	}

	fmt.Fprintln(out, "Templates:")
	for _, tmpl := range listed {
		fmt.Fprintf(out, "  %-24s [%s] %s\n", tmpl.Name, tmpl.Source, tmpl.Description)
	}
	return nil
}

// =============================================================================
// Config Command Handlers
// =============================================================================

// runConfigSchema handles the config schema command.
func runConfigSchema(cmd *cobra.Command) error {
	schema, err := config.JSONSchema()
	if err != nil {
		return fmt.Errorf("generate schema: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(schema))
	return nil
}

// =============================================================================
// Version Command Handler
// =============================================================================

// runVersion handles the version command.
func runVersion(cmd *cobra.Command) error {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "plotforge %s\n", version)
	fmt.Fprintf(out, "  commit: %s\n", commit)
	fmt.Fprintf(out, "  built:  %s\n", date)
	return nil
}
