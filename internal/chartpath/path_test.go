package chartpath

import (
	"errors"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		path string
		want Path
	}{
		{"single field", "title", Path{Field("title")}},
		{"dotted fields", "title.style.color", Path{Field("title"), Field("style"), Field("color")}},
		{"indexed series", "series[0].color", Path{Field("series"), Index(0), Field("color")}},
		{"nested after index", "series[1].dataLabels.enabled", Path{Field("series"), Index(1), Field("dataLabels"), Field("enabled")}},
		{"leading index", "[2].name", Path{Index(2), Field("name")}},
		{"index only", "[0]", Path{Index(0)}},
		{"whitespace in brackets", "series[ 3 ].color", Path{Field("series"), Index(3), Field("color")}},
		{"surrounding whitespace", "  title.text  ", Path{Field("title"), Field("text")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.path)
			if err != nil {
				t.Fatalf("Parse(%q) error: %v", tt.path, err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("Parse(%q) = %v, want %v", tt.path, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("Parse(%q) token %d = %v, want %v", tt.path, i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		path string
	}{
		{"empty", ""},
		{"whitespace only", "   "},
		{"unmatched bracket", "series[0"},
		{"negative index", "series[-1].color"},
		{"non-integer index", "series[abc].color"},
		{"empty index", "series[].color"},
		{"dots only", "..."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.path)
			if err == nil {
				t.Fatalf("Parse(%q) succeeded, want error", tt.path)
			}
			var perr *ParseError
			if !errors.As(err, &perr) {
				t.Fatalf("Parse(%q) error type = %T, want *ParseError", tt.path, err)
			}
		})
	}
}

func TestStringRoundTrip(t *testing.T) {
	paths := []string{
		"title.text",
		"series[0].color",
		"series[1].dataLabels.enabled",
		"plotOptions.series.marker.enabled",
		"[2].name",
	}
	for _, raw := range paths {
		first, err := Parse(raw)
		if err != nil {
			t.Fatalf("Parse(%q) error: %v", raw, err)
		}
		rendered := first.String()
		second, err := Parse(rendered)
		if err != nil {
			t.Fatalf("Parse(%q) after render error: %v", rendered, err)
		}
		if second.String() != rendered {
			t.Fatalf("round trip of %q drifted: %q vs %q", raw, rendered, second.String())
		}
		if len(first) != len(second) {
			t.Fatalf("round trip of %q changed token count", raw)
		}
	}
}

func TestPattern(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"title.text", "title.text"},
		{"series[0].color", "series[].color"},
		{"series[4].dataLabels.enabled", "series[].dataLabels.enabled"},
		{"[3].name", "[].name"},
		{"plotOptions.series.marker.enabled", "plotOptions.series.marker.enabled"},
	}
	for _, tt := range tests {
		p, err := Parse(tt.path)
		if err != nil {
			t.Fatalf("Parse(%q) error: %v", tt.path, err)
		}
		if got := p.Pattern(); got != tt.want {
			t.Fatalf("Pattern(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}
