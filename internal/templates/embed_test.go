package templates

import (
	"context"
	"testing"
)

func TestBuiltinFS(t *testing.T) {
	fsys := BuiltinFS()
	if fsys == nil {
		t.Fatal("BuiltinFS() returned nil")
	}
}

func TestNewBuiltinSource(t *testing.T) {
	source := NewBuiltinSource()
	if source == nil {
		t.Fatal("NewBuiltinSource() returned nil")
	}
	if source.Type() != SourceBuiltin {
		t.Errorf("Type() = %v, want %v", source.Type(), SourceBuiltin)
	}
	if source.Priority() != PriorityBuiltin {
		t.Errorf("Priority() = %v, want %v", source.Priority(), PriorityBuiltin)
	}
}

func TestBuiltinSource_Discover(t *testing.T) {
	source := NewBuiltinSource()
	templates, err := source.Discover(context.Background())
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}

	names := BuiltinTemplateNames()
	if len(templates) != len(names) {
		t.Fatalf("discovered %d builtin templates, want %d", len(templates), len(names))
	}

	byName := make(map[string]*ChartTemplate)
	for _, tmpl := range templates {
		if tmpl.Source != SourceBuiltin {
			t.Errorf("template %q source = %v, want %v", tmpl.Name, tmpl.Source, SourceBuiltin)
		}
		if err := ValidateTemplate(tmpl); err != nil {
			t.Errorf("builtin template %q is invalid: %v", tmpl.Name, err)
		}
		byName[tmpl.Name] = tmpl
	}
	for _, name := range names {
		if _, ok := byName[name]; !ok {
			t.Errorf("missing builtin template %q", name)
		}
	}
}

func TestBuiltinSource_AreaSample(t *testing.T) {
	source := NewBuiltinSource()
	templates, err := source.Discover(context.Background())
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}

	var area *ChartTemplate
	for _, tmpl := range templates {
		if tmpl.Name == "area-sample" {
			area = tmpl
			break
		}
	}
	if area == nil {
		t.Fatal("area-sample not discovered")
	}

	chart, ok := area.Options["chart"].(map[string]any)
	if !ok || chart["type"] != "area" {
		t.Errorf("chart = %v, want type area", area.Options["chart"])
	}
	title, ok := area.Options["title"].(map[string]any)
	if !ok || title["text"] != "Sample Highchart" {
		t.Errorf("title = %v, want text %q", area.Options["title"], "Sample Highchart")
	}
}
