package policy

import (
	"path/filepath"
	"strings"
)

// Extension returns the lowercase ".ext" of the final path segment, or ""
// when the name has none (including a trailing dot).
func Extension(path string) string {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == "." {
		return ""
	}
	return ext
}

// DisplayExtension renders an extension key for messages.
func DisplayExtension(ext string) string {
	if ext == "" {
		return "(none)"
	}
	return ext
}

// CheckExtension applies the allowlist and the category toggles to a
// resolved path. Allowlist membership is necessary but not sufficient: the
// extension's category must also be enabled.
func (p *Policy) CheckExtension(path ResolvedPath) error {
	ext := Extension(string(path))
	if !p.allowed[ext] {
		return Errorf(KindExtensionNotAllowed, "File type not allowed: %s", DisplayExtension(ext))
	}
	cat := CategoryOf(ext)
	if !p.enabled[cat] {
		return Errorf(KindCategoryDisabled, "File type disabled by policy: %s (%s)", DisplayExtension(ext), cat)
	}
	return nil
}

// CheckSize enforces the read size ceiling. A file of exactly the maximum
// size is allowed.
func (p *Policy) CheckSize(size int64) error {
	if size > p.maxSize {
		return Errorf(KindTooLarge, "File too large: %d bytes (max: %d)", size, p.maxSize)
	}
	return nil
}
