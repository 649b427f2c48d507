package templates

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/plotforge/plotforge/internal/chartdoc"
)

// Config configures template discovery and watching.
type Config struct {
	// Dirs are directories scanned for template files. Later directories
	// override earlier ones on name conflicts; all override builtins.
	Dirs []string

	// Watch enables fsnotify-driven re-discovery on file changes.
	Watch bool

	// WatchDebounce coalesces bursts of file events before re-discovery.
	// Defaults to 250ms.
	WatchDebounce time.Duration

	// Logger receives discovery and watch diagnostics. Defaults to
	// slog.Default().
	Logger *slog.Logger
}

// Registry manages seed template discovery, loading, and access.
type Registry struct {
	sources []DiscoverySource
	config  Config
	logger  *slog.Logger

	templates   map[string]*ChartTemplate
	templatesMu sync.RWMutex

	watcher       *fsnotify.Watcher
	watchPaths    map[string]struct{}
	watchMu       sync.Mutex
	watchWg       sync.WaitGroup
	watchCancel   context.CancelFunc
	watchDebounce time.Duration
}

// NewRegistry creates a template registry over the builtin templates and the
// configured directories.
func NewRegistry(cfg Config) *Registry {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "templates")

	sources := []DiscoverySource{NewBuiltinSource()}
	for i, dir := range cfg.Dirs {
		sources = append(sources, NewLocalSource(dir, PriorityLocal+i))
	}

	debounce := cfg.WatchDebounce
	if debounce <= 0 {
		debounce = 250 * time.Millisecond
	}

	return &Registry{
		sources:       sources,
		config:        cfg,
		logger:        logger,
		templates:     make(map[string]*ChartTemplate),
		watchDebounce: debounce,
	}
}

// AddSource adds a discovery source to the registry.
func (r *Registry) AddSource(source DiscoverySource) {
	r.sources = append(r.sources, source)
}

// Discover scans all sources for templates and replaces the registry state.
func (r *Registry) Discover(ctx context.Context) error {
	templates, err := DiscoverAll(ctx, r.sources)
	if err != nil {
		return fmt.Errorf("discovery failed: %w", err)
	}

	r.templatesMu.Lock()
	r.templates = make(map[string]*ChartTemplate, len(templates))
	for _, tmpl := range templates {
		r.templates[tmpl.Name] = tmpl
	}
	count := len(r.templates)
	r.templatesMu.Unlock()

	r.logger.Info("discovered seed templates", "count", count)

	if err := r.refreshWatches(); err != nil {
		r.logger.Warn("refresh template watches failed", "error", err)
	}

	return nil
}

// Get returns a template by name.
func (r *Registry) Get(name string) (*ChartTemplate, bool) {
	r.templatesMu.RLock()
	defer r.templatesMu.RUnlock()
	tmpl, ok := r.templates[name]
	return tmpl, ok
}

// Template returns a deep copy of the named template's chart options, so
// callers may mutate the result freely. It satisfies the seed skill's
// template source interface.
func (r *Registry) Template(name string) (map[string]any, bool) {
	tmpl, ok := r.Get(name)
	if !ok {
		return nil, false
	}
	return chartdoc.Clone(tmpl.Options), true
}

// List returns all discovered templates sorted by name.
func (r *Registry) List() []*ChartTemplate {
	r.templatesMu.RLock()
	defer r.templatesMu.RUnlock()

	result := make([]*ChartTemplate, 0, len(r.templates))
	for _, tmpl := range r.templates {
		result = append(result, tmpl)
	}
	sortTemplates(result)
	return result
}

// Search returns templates whose name, description, or tags contain the
// query, case-insensitively.
func (r *Registry) Search(query string) []*ChartTemplate {
	r.templatesMu.RLock()
	defer r.templatesMu.RUnlock()

	query = strings.ToLower(strings.TrimSpace(query))

	var result []*ChartTemplate
	for _, tmpl := range r.templates {
		if matchesQuery(tmpl, query) {
			result = append(result, tmpl)
		}
	}
	sortTemplates(result)
	return result
}

// StartWatching enables file watching for template changes. It is a no-op
// unless Config.Watch is set.
func (r *Registry) StartWatching(ctx context.Context) error {
	if !r.config.Watch {
		return nil
	}

	r.watchMu.Lock()
	if r.watcher != nil {
		r.watchMu.Unlock()
		return nil
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		r.watchMu.Unlock()
		return err
	}
	r.watcher = watcher
	if r.watchPaths == nil {
		r.watchPaths = make(map[string]struct{})
	}
	watchCtx, cancel := context.WithCancel(ctx)
	r.watchCancel = cancel
	debounce := r.watchDebounce
	r.watchMu.Unlock()

	if err := r.refreshWatches(); err != nil {
		r.logger.Warn("initial template watch refresh failed", "error", err)
	}

	r.watchWg.Add(1)
	go r.watchLoop(watchCtx, debounce)
	return nil
}

// Close stops any active watchers.
func (r *Registry) Close() error {
	r.watchMu.Lock()
	if r.watchCancel != nil {
		r.watchCancel()
		r.watchCancel = nil
	}
	watcher := r.watcher
	r.watcher = nil
	r.watchMu.Unlock()

	if watcher != nil {
		_ = watcher.Close()
	}
	r.watchWg.Wait()
	return nil
}

func (r *Registry) watchLoop(ctx context.Context, debounce time.Duration) {
	defer r.watchWg.Done()
	r.watchMu.Lock()
	watcher := r.watcher
	r.watchMu.Unlock()
	if watcher == nil {
		return
	}

	var mu sync.Mutex
	var timer *time.Timer
	scheduleRefresh := func() {
		mu.Lock()
		defer mu.Unlock()
		if timer != nil {
			timer.Stop()
		}
		timer = time.AfterFunc(debounce, func() {
			if err := r.Discover(context.Background()); err != nil {
				r.logger.Warn("template discovery failed during watch refresh", "error", err)
			}
		})
	}

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) != 0 {
				scheduleRefresh()
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			r.logger.Warn("template watch error", "error", err)
		}
	}
}

func (r *Registry) refreshWatches() error {
	r.watchMu.Lock()
	watcher := r.watcher
	r.watchMu.Unlock()
	if watcher == nil {
		return nil
	}

	desired := r.computeWatchPaths()
	desiredSet := make(map[string]struct{}, len(desired))
	for _, path := range desired {
		desiredSet[path] = struct{}{}
	}

	r.watchMu.Lock()
	defer r.watchMu.Unlock()

	for path := range desiredSet {
		if _, ok := r.watchPaths[path]; ok {
			continue
		}
		if err := watcher.Add(path); err != nil {
			r.logger.Debug("failed to watch templates path", "path", path, "error", err)
			continue
		}
		r.watchPaths[path] = struct{}{}
	}

	for path := range r.watchPaths {
		if _, ok := desiredSet[path]; ok {
			continue
		}
		if err := watcher.Remove(path); err != nil {
			r.logger.Debug("failed to unwatch templates path", "path", path, "error", err)
		}
		delete(r.watchPaths, path)
	}

	return nil
}

func (r *Registry) computeWatchPaths() []string {
	paths := make(map[string]struct{})
	for _, source := range r.sources {
		if watchable, ok := source.(WatchableSource); ok {
			for _, path := range watchable.WatchPaths() {
				if cleaned, ok := normalizeWatchPath(path); ok {
					paths[cleaned] = struct{}{}
				}
			}
		}
	}

	result := make([]string, 0, len(paths))
	for path := range paths {
		result = append(result, path)
	}
	sort.Strings(result)
	return result
}

func normalizeWatchPath(path string) (string, bool) {
	if path == "" {
		return "", false
	}
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return "", false
	}
	return filepath.Clean(path), true
}

// sortTemplates sorts templates alphabetically by name.
func sortTemplates(templates []*ChartTemplate) {
	sort.Slice(templates, func(i, j int) bool {
		return templates[i].Name < templates[j].Name
	})
}

// matchesQuery checks if a template matches the search query.
func matchesQuery(tmpl *ChartTemplate, query string) bool {
	if query == "" {
		return true
	}
	if strings.Contains(strings.ToLower(tmpl.Name), query) {
		return true
	}
	if strings.Contains(strings.ToLower(tmpl.Description), query) {
		return true
	}
	for _, tag := range tmpl.Tags {
		if strings.Contains(strings.ToLower(tag), query) {
			return true
		}
	}
	return false
}
