// Package policy decides whether a caller-supplied path may be touched.
//
// A Policy is built once from Options and never mutated afterwards; it is
// safe for any number of concurrent readers. Reconfiguration goes through a
// Store, which swaps in a brand-new Policy so in-flight calls keep seeing a
// single consistent snapshot.
package policy

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync/atomic"
)

// NoExtension is the allowlist token for files without an extension.
const NoExtension = "."

// Options configures a Policy.
type Options struct {
	// AllowedExtensions are dot-prefixed extensions (case-insensitive).
	// NoExtension admits files without one.
	AllowedExtensions []string

	// RestrictedPrefixes are absolute paths under which all access is denied.
	RestrictedPrefixes []string

	// MaxFileSizeBytes bounds read; must be > 0.
	MaxFileSizeBytes int64

	EnableImages          bool
	EnableManagedBinaries bool
	EnableGenericBinaries bool

	// BaseDir anchors relative input paths. Defaults to the working directory.
	BaseDir string
}

// restriction is one restricted prefix in the forms used for comparison.
type restriction struct {
	display string // as configured, reported in denials
	lower   string // lowercased cleaned form
}

// Policy is an immutable access policy.
type Policy struct {
	allowed    map[string]bool
	restricted []restriction
	maxSize    int64
	enabled    map[Category]bool
	baseDir    string
}

// New validates opts and builds a Policy. Errors here are configuration
// errors and are meant to be fatal at startup.
func New(opts Options) (*Policy, error) {
	allowed := make(map[string]bool, len(opts.AllowedExtensions))
	for _, ext := range opts.AllowedExtensions {
		key, err := normalizeExtension(ext)
		if err != nil {
			return nil, err
		}
		allowed[key] = true
	}
	if len(allowed) == 0 {
		return nil, fmt.Errorf("allowed extensions must not be empty")
	}

	if opts.MaxFileSizeBytes <= 0 {
		return nil, fmt.Errorf("max file size must be positive, got %d", opts.MaxFileSizeBytes)
	}

	baseDir := opts.BaseDir
	if baseDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to determine base directory: %w", err)
		}
		baseDir = wd
	}
	if !filepath.IsAbs(baseDir) {
		abs, err := filepath.Abs(baseDir)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve base directory: %w", err)
		}
		baseDir = abs
	}
	baseDir = filepath.Clean(baseDir)
	if resolved, err := filepath.EvalSymlinks(baseDir); err == nil {
		baseDir = resolved
	}

	var restricted []restriction
	seen := make(map[string]bool)
	add := func(display, path string) {
		lower := strings.ToLower(path)
		if seen[lower] {
			return
		}
		seen[lower] = true
		restricted = append(restricted, restriction{display: display, lower: lower})
	}
	for _, raw := range opts.RestrictedPrefixes {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		p := filepath.Clean(normalizeSeparators(raw))
		if !filepath.IsAbs(p) {
			return nil, fmt.Errorf("restricted path %q must be absolute", raw)
		}
		add(p, p)
		// Also match the symlink-free spelling, e.g. /var -> /private/var.
		if resolved, err := filepath.EvalSymlinks(p); err == nil && resolved != p {
			add(p, filepath.Clean(resolved))
		}
	}

	return &Policy{
		allowed:    allowed,
		restricted: restricted,
		maxSize:    opts.MaxFileSizeBytes,
		enabled: map[Category]bool{
			CategoryText:          true,
			CategoryImage:         opts.EnableImages,
			CategoryManagedBinary: opts.EnableManagedBinaries,
			CategoryGenericBinary: opts.EnableGenericBinaries,
		},
		baseDir: baseDir,
	}, nil
}

// normalizeExtension turns ".TXT", "txt" or "." into the lookup key.
func normalizeExtension(ext string) (string, error) {
	ext = strings.ToLower(strings.TrimSpace(ext))
	switch ext {
	case "":
		return "", fmt.Errorf("empty extension in allowlist")
	case NoExtension:
		return "", nil
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	if strings.ContainsAny(ext, `/\`) {
		return "", fmt.Errorf("invalid extension %q", ext)
	}
	return ext, nil
}

// Current lets a *Policy serve as its own Source.
func (p *Policy) Current() *Policy { return p }

// MaxFileSizeBytes returns the read size ceiling.
func (p *Policy) MaxFileSizeBytes() int64 { return p.maxSize }

// BaseDir returns the directory relative paths are resolved against.
func (p *Policy) BaseDir() string { return p.baseDir }

// CategoryEnabled reports whether a category may be read.
func (p *Policy) CategoryEnabled(c Category) bool { return p.enabled[c] }

// AllowedExtensions returns the allowlist in sorted order, with NoExtension
// standing for the empty key.
func (p *Policy) AllowedExtensions() []string {
	exts := make([]string, 0, len(p.allowed))
	for ext := range p.allowed {
		if ext == "" {
			ext = NoExtension
		}
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

// RestrictedPrefixes returns the configured restricted prefixes in order.
func (p *Policy) RestrictedPrefixes() []string {
	var out []string
	seen := make(map[string]bool)
	for _, r := range p.restricted {
		if !seen[r.display] {
			seen[r.display] = true
			out = append(out, r.display)
		}
	}
	return out
}

// IsRestricted reports whether an absolute path lies under a restricted
// prefix, returning the configured prefix that matched.
func (p *Policy) IsRestricted(path string) (string, bool) {
	lower := strings.ToLower(filepath.Clean(path))
	for _, r := range p.restricted {
		if hasPathPrefix(lower, r.lower) {
			return r.display, true
		}
	}
	return "", false
}

// hasPathPrefix reports whether path equals prefix or is nested under it on a
// segment boundary. Both arguments are cleaned and lowercased.
func hasPathPrefix(path, prefix string) bool {
	if !strings.HasPrefix(path, prefix) {
		return false
	}
	if len(path) == len(prefix) {
		return true
	}
	// Roots such as "/" or `C:\` already end in a separator.
	if strings.HasSuffix(prefix, string(filepath.Separator)) {
		return true
	}
	return path[len(prefix)] == filepath.Separator
}

// Snapshot is a serializable view of a Policy.
type Snapshot struct {
	AllowedExtensions  []string        `json:"allowedExtensions" yaml:"allowed_extensions"`
	RestrictedPrefixes []string        `json:"restrictedPrefixes" yaml:"restricted_paths"`
	MaxFileSizeBytes   int64           `json:"maxFileSizeBytes" yaml:"max_file_size_bytes"`
	Categories         map[string]bool `json:"categories" yaml:"categories"`
	BaseDir            string          `json:"baseDir" yaml:"base_dir"`
}

// Snapshot returns a copy of the policy's settings.
func (p *Policy) Snapshot() Snapshot {
	return Snapshot{
		AllowedExtensions:  p.AllowedExtensions(),
		RestrictedPrefixes: p.RestrictedPrefixes(),
		MaxFileSizeBytes:   p.maxSize,
		Categories: map[string]bool{
			CategoryImage.String():         p.enabled[CategoryImage],
			CategoryManagedBinary.String(): p.enabled[CategoryManagedBinary],
			CategoryGenericBinary.String(): p.enabled[CategoryGenericBinary],
		},
		BaseDir: p.baseDir,
	}
}

// Source yields the policy that governs the next call.
type Source interface {
	Current() *Policy
}

// Store holds the active Policy and replaces it atomically.
type Store struct {
	current atomic.Pointer[Policy]
}

// NewStore creates a Store publishing p.
func NewStore(p *Policy) *Store {
	s := &Store{}
	s.current.Store(p)
	return s
}

// Current returns the active policy snapshot.
func (s *Store) Current() *Policy {
	return s.current.Load()
}

// Publish replaces the active policy. A nil policy is ignored.
func (s *Store) Publish(p *Policy) {
	if p == nil {
		return
	}
	s.current.Store(p)
}
