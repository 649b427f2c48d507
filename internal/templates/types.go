// Package templates provides chart seed templates: named Highcharts option
// trees discovered from builtin and configured directories, used by the seed
// skill and CLI to bootstrap payloads.
package templates

import (
	"fmt"
	"regexp"

	"github.com/plotforge/plotforge/internal/chartdoc"
)

// ChartTemplate is a named, reusable chart options tree.
type ChartTemplate struct {
	// Name is the unique template identifier (lowercase, hyphens allowed).
	Name string `json:"name"`

	// Description explains what the template produces.
	Description string `json:"description,omitempty"`

	// Tags are keywords for template discovery.
	Tags []string `json:"tags,omitempty"`

	// Options is the Highcharts configuration tree seeded into new payloads.
	Options chartdoc.Document `json:"options"`

	// Path is the file the template was parsed from. Empty for builtins.
	Path string `json:"path,omitempty"`

	// Source indicates where the template was discovered from.
	Source SourceType `json:"source"`

	// SourcePriority is used for conflict resolution (higher wins).
	SourcePriority int `json:"-"`
}

// SourceType indicates where a template was discovered from.
type SourceType string

const (
	// SourceBuiltin means shipped with the plotforge binary.
	SourceBuiltin SourceType = "builtin"

	// SourceLocal means from a configured template directory.
	SourceLocal SourceType = "local"
)

// Source priorities for conflict resolution. Local directories override
// builtins; later directories override earlier ones.
const (
	PriorityBuiltin = 0
	PriorityLocal   = 10
)

var templateNameRe = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// ValidateTemplate checks that a template is well-formed enough to register.
func ValidateTemplate(tmpl *ChartTemplate) error {
	if tmpl == nil {
		return fmt.Errorf("template is nil")
	}
	if tmpl.Name == "" {
		return fmt.Errorf("template name is required")
	}
	if !templateNameRe.MatchString(tmpl.Name) {
		return fmt.Errorf("invalid template name %q (lowercase alphanumerics and hyphens)", tmpl.Name)
	}
	if len(tmpl.Options) == 0 {
		return fmt.Errorf("template %q has no chart options", tmpl.Name)
	}
	return nil
}
