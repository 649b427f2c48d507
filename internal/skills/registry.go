package skills

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"go.opentelemetry.io/otel/trace"

	"github.com/plotforge/plotforge/internal/observability"
)

// Skill parameter limits to prevent resource exhaustion
const (
	// MaxSkillNameLength is the maximum length of a skill name.
	MaxSkillNameLength = 256

	// MaxParamsSize is the maximum size of skill parameters JSON (1MB).
	MaxParamsSize = 1 << 20
)

// Registry holds the available skills and dispatches executions to them.
type Registry struct {
	mu     sync.RWMutex
	skills map[string]Skill
	logger *slog.Logger
	tracer *observability.Tracer
}

// RegistryOption configures the registry.
type RegistryOption func(*Registry)

// WithRegistryLogger configures the registry logger.
func WithRegistryLogger(logger *slog.Logger) RegistryOption {
	return func(r *Registry) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithRegistryTracer configures span creation around skill executions.
func WithRegistryTracer(tracer *observability.Tracer) RegistryOption {
	return func(r *Registry) {
		if tracer != nil {
			r.tracer = tracer
		}
	}
}

// NewRegistry creates a new empty skill registry ready for registration.
func NewRegistry(opts ...RegistryOption) *Registry {
	registry := &Registry{
		skills: make(map[string]Skill),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(registry)
	}
	return registry
}

// Register adds a skill to the registry by its name.
// If a skill with the same name already exists, it is replaced.
func (r *Registry) Register(skill Skill) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.skills[skill.Name()] = skill
}

// Unregister removes a skill from the registry by name.
func (r *Registry) Unregister(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.skills, name)
}

// Get returns a skill by name and a boolean indicating if it was found.
func (r *Registry) Get(name string) (Skill, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	skill, ok := r.skills[name]
	return skill, ok
}

// List returns the registered skills sorted by name.
func (r *Registry) List() []Skill {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.skills))
	for name := range r.skills {
		names = append(names, name)
	}
	sort.Strings(names)
	listed := make([]Skill, 0, len(names))
	for _, name := range names {
		listed = append(listed, r.skills[name])
	}
	return listed
}

// Execute runs a skill by name with the given JSON parameters.
// Returns an error output if the skill is not found or parameters are
// invalid.
func (r *Registry) Execute(ctx context.Context, name string, params json.RawMessage) (*Output, error) {
	if len(name) > MaxSkillNameLength {
		return skillError(fmt.Sprintf("skill name exceeds maximum length of %d characters", MaxSkillNameLength)), nil
	}
	if len(params) > MaxParamsSize {
		return skillError(fmt.Sprintf("skill parameters exceed maximum size of %d bytes", MaxParamsSize)), nil
	}

	r.mu.RLock()
	skill, ok := r.skills[name]
	r.mu.RUnlock()
	if !ok {
		return skillError("skill not found: " + name), nil
	}

	var span trace.Span
	if r.tracer != nil {
		ctx, span = r.tracer.TraceSkillExecution(ctx, name)
		defer span.End()
	}

	started := time.Now()
	out, err := skill.Execute(ctx, params)
	if err != nil {
		if r.tracer != nil {
			r.tracer.RecordError(span, err)
		}
		r.logger.ErrorContext(ctx, "skill execution failed", "skill", name, "error", err)
		return nil, err
	}
	r.logger.DebugContext(ctx, "skill executed",
		"skill", name,
		"is_error", out != nil && out.IsError,
		"duration", time.Since(started))
	return out, nil
}
