package chartdoc

import (
	"errors"
	"fmt"

	"github.com/plotforge/plotforge/internal/chartpath"
)

// ErrEmptyPath is returned by Set when called with no tokens.
var ErrEmptyPath = errors.New("chartdoc: empty path")

// ContainerError reports a path walk that found a node of the wrong kind for
// the token being applied.
type ContainerError struct {
	Token chartpath.Token
	Found Kind
}

func (e *ContainerError) Error() string {
	if e.Token.IsIndex {
		return fmt.Sprintf("chartdoc: cannot apply index [%d] to %s node", e.Token.Index, e.Found)
	}
	return fmt.Sprintf("chartdoc: cannot read field %q of %s node", e.Token.Field, e.Found)
}

// Get walks the path and returns the value it addresses. The second result is
// false when any step is missing or lands on an incompatible node; a stored
// null is returned as (nil, true) and is distinct from an absent value.
func Get(doc Document, path chartpath.Path) (any, bool) {
	var current any = map[string]any(doc)
	for _, tok := range path {
		if tok.IsIndex {
			seq, ok := current.([]any)
			if !ok || tok.Index >= len(seq) {
				return nil, false
			}
			current = seq[tok.Index]
			continue
		}
		m, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		val, ok := m[tok.Field]
		if !ok {
			return nil, false
		}
		current = val
	}
	return current, true
}

// Set writes value at the addressed position, autovivifying along the way:
// an intermediate field that is absent or incompatible with the next token's
// kind is replaced by a fresh empty container of the needed kind, and a
// too-short sequence is extended up to the required index (empty containers
// for intermediate tokens, a null placeholder for a final token). The value
// previously stored at the final position is returned when one existed.
// An index token applied to a non-sequence that cannot be vivified fails
// with ContainerError.
func Set(doc Document, path chartpath.Path, value any) (prev any, hadPrev bool, err error) {
	if len(path) == 0 {
		return nil, false, ErrEmptyPath
	}
	_, prev, hadPrev, err = setNode(map[string]any(doc), path, value)
	return prev, hadPrev, err
}

func setNode(node any, path chartpath.Path, value any) (updated any, prev any, hadPrev bool, err error) {
	tok := path[0]
	rest := path[1:]

	if tok.IsIndex {
		seq, ok := node.([]any)
		if !ok {
			return node, nil, false, &ContainerError{Token: tok, Found: KindOf(node)}
		}
		if len(rest) == 0 {
			for len(seq) <= tok.Index {
				seq = append(seq, nil)
			}
			prev = seq[tok.Index]
			seq[tok.Index] = value
			return seq, prev, true, nil
		}
		for len(seq) <= tok.Index {
			seq = append(seq, emptyFor(rest[0]))
		}
		child := seq[tok.Index]
		if !compatible(child, rest[0]) {
			child = emptyFor(rest[0])
		}
		child, prev, hadPrev, err = setNode(child, rest, value)
		seq[tok.Index] = child
		return seq, prev, hadPrev, err
	}

	m, ok := node.(map[string]any)
	if !ok {
		return node, nil, false, &ContainerError{Token: tok, Found: KindOf(node)}
	}
	if len(rest) == 0 {
		prev, hadPrev = m[tok.Field]
		m[tok.Field] = value
		return m, prev, hadPrev, nil
	}
	child, exists := m[tok.Field]
	if !exists || !compatible(child, rest[0]) {
		child = emptyFor(rest[0])
	}
	child, prev, hadPrev, err = setNode(child, rest, value)
	m[tok.Field] = child
	return m, prev, hadPrev, err
}

func emptyFor(next chartpath.Token) any {
	if next.IsIndex {
		return []any{}
	}
	return map[string]any{}
}

func compatible(node any, next chartpath.Token) bool {
	if next.IsIndex {
		_, ok := node.([]any)
		return ok
	}
	_, ok := node.(map[string]any)
	return ok
}
