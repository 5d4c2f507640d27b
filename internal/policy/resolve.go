package policy

import (
	"path/filepath"
	"strings"
	"unicode"
)

// maxPathLength bounds caller input before any filesystem probe.
const maxPathLength = 4096

// ResolvedPath is an absolute path with symlinks resolved and relative
// segments removed. It is only produced by Resolve and is valid for a
// single call.
type ResolvedPath string

// String returns the path.
func (r ResolvedPath) String() string { return string(r) }

// Base returns the final path segment.
func (r ResolvedPath) Base() string { return filepath.Base(string(r)) }

// Resolve canonicalizes raw and checks it against the restricted prefixes.
// Every operation must route its input through Resolve before touching the
// filesystem, and must then use only the returned path.
//
// Both the lexically cleaned spelling and the symlink-resolved spelling are
// checked, so neither ".." segments nor a link into a restricted directory
// reach the filesystem.
func (p *Policy) Resolve(raw string) (ResolvedPath, error) {
	if err := validateRaw(raw); err != nil {
		return "", err
	}

	path := normalizeSeparators(raw)
	if !filepath.IsAbs(path) {
		path = filepath.Join(p.baseDir, path)
	}
	path = filepath.Clean(path)

	if prefix, ok := p.IsRestricted(path); ok {
		return "", accessDenied(prefix)
	}

	canonical := canonicalize(path)
	if prefix, ok := p.IsRestricted(canonical); ok {
		return "", accessDenied(prefix)
	}
	return ResolvedPath(canonical), nil
}

func validateRaw(raw string) error {
	if strings.TrimSpace(raw) == "" {
		return invalidPath("path is empty")
	}
	if strings.IndexByte(raw, 0) >= 0 {
		return invalidPath("path contains NUL byte")
	}
	if strings.IndexFunc(raw, unicode.IsControl) >= 0 {
		return invalidPath("path contains control characters")
	}
	if len(raw) > maxPathLength {
		return invalidPath("path is too long")
	}
	return nil
}

// normalizeSeparators maps both separator styles to the host separator.
func normalizeSeparators(path string) string {
	return filepath.FromSlash(strings.ReplaceAll(path, `\`, "/"))
}

// canonicalize resolves symlinks in path. When path does not fully exist,
// the deepest existing ancestor is resolved and the missing tail appended,
// so a link anywhere along the way is still followed.
func canonicalize(path string) string {
	if resolved, err := filepath.EvalSymlinks(path); err == nil {
		return filepath.Clean(resolved)
	}

	var tail []string
	dir := path
	for {
		parent := filepath.Dir(dir)
		tail = append(tail, filepath.Base(dir))
		if parent == dir {
			// Nothing along the path resolves; keep the cleaned spelling.
			return path
		}
		if resolved, err := filepath.EvalSymlinks(parent); err == nil {
			parts := []string{resolved}
			for i := len(tail) - 1; i >= 0; i-- {
				parts = append(parts, tail[i])
			}
			return filepath.Clean(filepath.Join(parts...))
		}
		dir = parent
	}
}
