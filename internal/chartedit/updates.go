package chartedit

import (
	"fmt"
	"sort"
	"strings"

	json5 "github.com/yosuke-furukawa/json5/encoding/json5"

	"github.com/plotforge/plotforge/internal/instruct"
)

// NormalizeUpdates coerces the accepted explicit-update shapes into a flat
// update list: a mapping of path to value (ordered by path), a sequence of
// {path, value} records, a sequence of two-element pairs, or a text block
// holding JSON/JSON5 or key=value lines. Unrecognized shapes normalize to
// nothing rather than failing.
func NormalizeUpdates(raw any) []instruct.Update {
	switch v := raw.(type) {
	case nil:
		return nil
	case []instruct.Update:
		out := make([]instruct.Update, len(v))
		copy(out, v)
		return out
	case string:
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			return nil
		}
		var decoded any
		if err := json5.Unmarshal([]byte(trimmed), &decoded); err != nil {
			return parseKeyValueLines(trimmed)
		}
		switch decoded.(type) {
		case map[string]any, []any:
			return NormalizeUpdates(decoded)
		default:
			return nil
		}
	case map[string]any:
		paths := make([]string, 0, len(v))
		for path := range v {
			paths = append(paths, path)
		}
		sort.Strings(paths)
		out := make([]instruct.Update, 0, len(paths))
		for _, path := range paths {
			out = append(out, instruct.Update{Path: path, Value: v[path]})
		}
		return out
	case []any:
		var out []instruct.Update
		for _, item := range v {
			switch entry := item.(type) {
			case map[string]any:
				path, okPath := entry["path"]
				value, okValue := entry["value"]
				if okPath && okValue {
					out = append(out, instruct.Update{Path: fmt.Sprint(path), Value: value})
				}
			case []any:
				if len(entry) == 2 {
					out = append(out, instruct.Update{Path: fmt.Sprint(entry[0]), Value: entry[1]})
				}
			}
		}
		return out
	default:
		return nil
	}
}

// parseKeyValueLines reads "path = value" lines. Values are decoded as JSON5
// literals when possible and kept as plain strings otherwise. Blank lines,
// lines starting with '#', and lines without '=' are skipped.
func parseKeyValueLines(raw string) []instruct.Update {
	var out []instruct.Update
	for _, line := range strings.Split(raw, "\n") {
		stripped := strings.TrimSpace(line)
		if stripped == "" || strings.HasPrefix(stripped, "#") {
			continue
		}
		pathText, valueText, found := strings.Cut(stripped, "=")
		if !found {
			continue
		}
		value := any(strings.TrimSpace(valueText))
		var parsed any
		if err := json5.Unmarshal([]byte(strings.TrimSpace(valueText)), &parsed); err == nil {
			value = parsed
		}
		out = append(out, instruct.Update{Path: strings.TrimSpace(pathText), Value: value})
	}
	return out
}
