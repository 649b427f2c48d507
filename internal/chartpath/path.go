// Package chartpath parses the dotted/bracketed path expressions used to
// address values inside chart option documents.
package chartpath

import (
	"fmt"
	"strconv"
	"strings"
)

// Token is a single step in a parsed path: a mapping field or a sequence index.
type Token struct {
	Field   string
	Index   int
	IsIndex bool
}

// Field returns a mapping-field token.
func Field(name string) Token { return Token{Field: name} }

// Index returns a sequence-index token.
func Index(i int) Token { return Token{Index: i, IsIndex: true} }

// Path is an ordered list of tokens addressing one value in a document.
type Path []Token

// ParseError reports a path expression that could not be tokenized.
type ParseError struct {
	Path   string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("chartpath: invalid path %q: %s", e.Path, e.Reason)
}

// Parse tokenizes a path expression such as "series[0].color". Dots separate
// field names, brackets enclose non-negative integer indexes. Whitespace
// around the expression and inside brackets is ignored.
func Parse(raw string) (Path, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, &ParseError{Path: raw, Reason: "empty path"}
	}

	var (
		path Path
		buf  strings.Builder
	)
	flush := func() {
		if buf.Len() > 0 {
			path = append(path, Field(buf.String()))
			buf.Reset()
		}
	}

	for i := 0; i < len(trimmed); {
		switch ch := trimmed[i]; ch {
		case '.':
			flush()
			i++
		case '[':
			flush()
			end := strings.IndexByte(trimmed[i:], ']')
			if end < 0 {
				return nil, &ParseError{Path: raw, Reason: "unmatched '['"}
			}
			idxText := strings.TrimSpace(trimmed[i+1 : i+end])
			if !isDigits(idxText) {
				return nil, &ParseError{Path: raw, Reason: fmt.Sprintf("invalid index %q", idxText)}
			}
			idx, err := strconv.Atoi(idxText)
			if err != nil {
				return nil, &ParseError{Path: raw, Reason: fmt.Sprintf("invalid index %q", idxText)}
			}
			path = append(path, Index(idx))
			i += end + 1
		default:
			buf.WriteByte(ch)
			i++
		}
	}
	flush()

	if len(path) == 0 {
		return nil, &ParseError{Path: raw, Reason: "no tokens"}
	}
	return path, nil
}

// String renders the path back into expression form, e.g. "series[0].color".
func (p Path) String() string {
	var b strings.Builder
	for i, tok := range p {
		if tok.IsIndex {
			fmt.Fprintf(&b, "[%d]", tok.Index)
			continue
		}
		if i > 0 {
			b.WriteByte('.')
		}
		b.WriteString(tok.Field)
	}
	return b.String()
}

// Pattern abstracts concrete indexes for schema matching: an index collapses
// into the preceding field as a "[]" suffix ("series[0].color" becomes
// "series[].color"), and a leading index becomes a bare "[]" segment.
func (p Path) Pattern() string {
	parts := make([]string, 0, len(p))
	for _, tok := range p {
		if tok.IsIndex {
			if len(parts) > 0 {
				parts[len(parts)-1] += "[]"
			} else {
				parts = append(parts, "[]")
			}
			continue
		}
		parts = append(parts, tok.Field)
	}
	return strings.Join(parts, ".")
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
