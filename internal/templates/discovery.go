package templates

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
)

// DiscoverySource discovers templates from a specific source.
type DiscoverySource interface {
	// Type returns the source type identifier.
	Type() SourceType

	// Priority returns the source priority (higher wins in conflicts).
	Priority() int

	// Discover scans for templates and returns found entries.
	Discover(ctx context.Context) ([]*ChartTemplate, error)
}

// WatchableSource exposes paths for file watching.
type WatchableSource interface {
	WatchPaths() []string
}

// LocalSource discovers template files in a local directory.
type LocalSource struct {
	path     string
	priority int
	logger   *slog.Logger
}

// NewLocalSource creates a local directory discovery source.
func NewLocalSource(path string, priority int) *LocalSource {
	return &LocalSource{
		path:     path,
		priority: priority,
		logger:   slog.Default().With("component", "templates", "source", SourceLocal),
	}
}

func (s *LocalSource) Type() SourceType {
	return SourceLocal
}

func (s *LocalSource) Priority() int {
	return s.priority
}

func (s *LocalSource) Discover(ctx context.Context) ([]*ChartTemplate, error) {
	info, err := os.Stat(s.path)
	if os.IsNotExist(err) {
		s.logger.Debug("templates directory does not exist", "path", s.path)
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("stat directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("not a directory: %s", s.path)
	}

	entries, err := os.ReadDir(s.path)
	if err != nil {
		return nil, fmt.Errorf("read directory: %w", err)
	}

	var templates []*ChartTemplate
	for _, entry := range entries {
		select {
		case <-ctx.Done():
			return templates, ctx.Err()
		default:
		}

		if entry.IsDir() || !HasTemplateExtension(entry.Name()) {
			continue
		}

		templatePath := filepath.Join(s.path, entry.Name())
		tmpl, err := ParseTemplateFile(templatePath)
		if err != nil {
			s.logger.Warn("failed to parse template",
				"path", templatePath,
				"error", err)
			continue
		}

		tmpl.Source = SourceLocal
		tmpl.SourcePriority = s.priority

		if err := ValidateTemplate(tmpl); err != nil {
			s.logger.Warn("invalid template",
				"path", templatePath,
				"error", err)
			continue
		}

		templates = append(templates, tmpl)
		s.logger.Debug("discovered template",
			"name", tmpl.Name,
			"path", templatePath)
	}

	return templates, nil
}

// WatchPaths returns the directory to watch for template changes.
func (s *LocalSource) WatchPaths() []string {
	return []string{s.path}
}

// EmbeddedSource discovers templates from an embedded filesystem.
type EmbeddedSource struct {
	fs       fs.FS
	priority int
	logger   *slog.Logger
}

// NewEmbeddedSource creates an embedded filesystem discovery source.
func NewEmbeddedSource(fsys fs.FS, priority int) *EmbeddedSource {
	return &EmbeddedSource{
		fs:       fsys,
		priority: priority,
		logger:   slog.Default().With("component", "templates", "source", SourceBuiltin),
	}
}

func (s *EmbeddedSource) Type() SourceType {
	return SourceBuiltin
}

func (s *EmbeddedSource) Priority() int {
	return s.priority
}

func (s *EmbeddedSource) Discover(ctx context.Context) ([]*ChartTemplate, error) {
	var templates []*ChartTemplate

	err := fs.WalkDir(s.fs, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if d.IsDir() || !HasTemplateExtension(path) {
			return nil
		}

		data, err := fs.ReadFile(s.fs, path)
		if err != nil {
			return err
		}

		tmpl, err := ParseTemplate(data, filepath.Ext(path))
		if err != nil {
			s.logger.Warn("failed to parse embedded template",
				"path", path,
				"error", err)
			return nil
		}
		if tmpl.Name == "" {
			tmpl.Name = nameFromFilename(path)
		}
		tmpl.Source = SourceBuiltin
		tmpl.SourcePriority = s.priority

		if err := ValidateTemplate(tmpl); err != nil {
			s.logger.Warn("invalid embedded template",
				"path", path,
				"error", err)
			return nil
		}

		templates = append(templates, tmpl)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk embedded filesystem: %w", err)
	}

	return templates, nil
}

// DiscoverAll discovers templates from multiple sources with precedence.
// Higher priority sources override lower priority ones on name conflicts;
// equal priority resolves to the later source.
func DiscoverAll(ctx context.Context, sources []DiscoverySource) ([]*ChartTemplate, error) {
	templateMap := make(map[string]*ChartTemplate)

	for _, source := range sources {
		templates, err := source.Discover(ctx)
		if err != nil {
			slog.Warn("template discovery failed",
				"source", source.Type(),
				"error", err)
			continue
		}

		for _, tmpl := range templates {
			existing, ok := templateMap[tmpl.Name]
			if ok && existing.SourcePriority > tmpl.SourcePriority {
				continue
			}
			templateMap[tmpl.Name] = tmpl
		}
	}

	result := make([]*ChartTemplate, 0, len(templateMap))
	for _, tmpl := range templateMap {
		result = append(result, tmpl)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Name < result[j].Name
	})
	return result, nil
}
