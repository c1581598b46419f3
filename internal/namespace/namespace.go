// Package namespace derives Avro namespaces from source file paths.
package namespace

import (
	"path/filepath"
	"strings"
)

// Func maps a file path, relative to the project root, to a dotted namespace.
type Func func(rel string) string

// FromPath drops the extension and joins the path segments with dots.
// Parent-directory segments are dropped and characters Avro does not allow in
// names become underscores.
func FromPath(rel string) string {
	rel = filepath.ToSlash(filepath.Clean(rel))
	rel = strings.TrimSuffix(rel, filepath.Ext(rel))

	var parts []string
	for _, seg := range strings.Split(rel, "/") {
		if seg == "" || seg == "." || seg == ".." {
			continue
		}
		parts = append(parts, sanitize(seg))
	}
	return strings.Join(parts, ".")
}

// WithPrefix prepends prefix to every namespace produced by f.
func WithPrefix(prefix string, f Func) Func {
	prefix = strings.Trim(prefix, ".")
	if prefix == "" {
		return f
	}
	return func(rel string) string {
		ns := f(rel)
		if ns == "" {
			return prefix
		}
		return prefix + "." + ns
	}
}

func sanitize(seg string) string {
	var b strings.Builder
	for i, r := range seg {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r == '_':
			b.WriteRune(r)
		case r >= '0' && r <= '9':
			if i == 0 {
				b.WriteRune('_')
			}
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	return b.String()
}
