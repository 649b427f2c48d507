package templates

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	json5 "github.com/yosuke-furukawa/json5/encoding/json5"
	"gopkg.in/yaml.v3"

	"github.com/plotforge/plotforge/internal/chartdoc"
)

// TemplateExtensions lists the file extensions scanned for seed templates.
var TemplateExtensions = []string{".yaml", ".yml", ".json", ".json5"}

// HasTemplateExtension reports whether path names a recognizable template file.
func HasTemplateExtension(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, allowed := range TemplateExtensions {
		if ext == allowed {
			return true
		}
	}
	return false
}

// ParseTemplateFile parses a template file and returns a ChartTemplate.
// The file body is a chart options tree; the reserved top-level keys
// name, description, and tags describe the template itself and are
// stripped from the options.
func ParseTemplateFile(path string) (*ChartTemplate, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	tmpl, err := ParseTemplate(data, filepath.Ext(path))
	if err != nil {
		return nil, err
	}
	if tmpl.Name == "" {
		tmpl.Name = nameFromFilename(path)
	}
	tmpl.Path = path
	return tmpl, nil
}

// ParseTemplate parses template content in the format implied by ext
// (".yaml"/".yml", ".json", or ".json5").
func ParseTemplate(data []byte, ext string) (*ChartTemplate, error) {
	var raw any
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("parse yaml: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("parse json: %w", err)
		}
	case ".json5":
		if err := json5.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("parse json5: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported template extension %q", ext)
	}

	doc, ok := chartdoc.NormalizeDocument(raw)
	if !ok {
		return nil, fmt.Errorf("template body is not a mapping")
	}

	tmpl := &ChartTemplate{Options: doc}
	if name, ok := doc["name"].(string); ok {
		tmpl.Name = strings.TrimSpace(name)
		delete(doc, "name")
	}
	if desc, ok := doc["description"].(string); ok {
		tmpl.Description = strings.TrimSpace(desc)
		delete(doc, "description")
	}
	if rawTags, ok := doc["tags"].([]any); ok {
		for _, entry := range rawTags {
			if tag, ok := entry.(string); ok && tag != "" {
				tmpl.Tags = append(tmpl.Tags, tag)
			}
		}
		delete(doc, "tags")
	}

	return tmpl, nil
}

// nameFromFilename derives a template name from the file basename.
func nameFromFilename(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
