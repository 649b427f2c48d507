package templates

import (
	"embed"
	"io/fs"
)

//go:embed builtin/*.yaml
var builtinFS embed.FS

// BuiltinFS returns the embedded filesystem containing builtin templates.
func BuiltinFS() fs.FS {
	sub, err := fs.Sub(builtinFS, "builtin")
	if err != nil {
		// Cannot happen with a valid embed directive.
		return builtinFS
	}
	return sub
}

// NewBuiltinSource creates a discovery source for the builtin templates.
func NewBuiltinSource() *EmbeddedSource {
	return NewEmbeddedSource(BuiltinFS(), PriorityBuiltin)
}

// BuiltinTemplateNames returns the names of all builtin templates.
func BuiltinTemplateNames() []string {
	return []string{
		"area-sample",
		"column-basic",
		"line-basic",
		"pie-basic",
	}
}
