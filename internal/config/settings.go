// Package config provides multi-level settings management for fsgate.
// Settings are loaded from multiple sources with the following priority (lowest to highest):
//  1. built-in defaults
//  2. ~/.fsgate/settings.{json,yaml,yml} (user level)
//  3. .fsgate/settings.{json,yaml,yml} (project level)
//  4. .fsgate/settings.local.{json,yaml,yml} (local level, not checked in)
//  5. an explicit file given with --config
//  6. FSGATE_* environment variables
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/yanmxa/fsgate/internal/policy"
)

// Settings represents the fsgate configuration. Unset fields inherit from
// lower-priority sources.
type Settings struct {
	// AllowedExtensions are the file types read may return, e.g. ".md".
	// "." admits files without an extension.
	AllowedExtensions []string `json:"allowedExtensions,omitempty" yaml:"allowed_extensions,omitempty"`

	// RestrictedPaths are absolute prefixes no operation may touch.
	// ${VAR}, ${VAR:-default} and a leading ~ are expanded.
	RestrictedPaths []string `json:"restrictedPaths,omitempty" yaml:"restricted_paths,omitempty"`

	// MaxFileSizeMB bounds the size of a file read may return; nil means inherit
	MaxFileSizeMB *int `json:"maxFileSizeMB,omitempty" yaml:"max_file_size_mb,omitempty"`

	// Category toggles; nil means inherit
	EnableImages          *bool `json:"enableImages,omitempty" yaml:"enable_images,omitempty"`
	EnableManagedBinaries *bool `json:"enableManagedBinaries,omitempty" yaml:"enable_managed_binaries,omitempty"`
	EnableGenericBinaries *bool `json:"enableGenericBinaries,omitempty" yaml:"enable_generic_binaries,omitempty"`

	// BaseDir anchors relative paths; defaults to the working directory
	BaseDir string `json:"baseDir,omitempty" yaml:"base_dir,omitempty"`

	// MaxSearchResults caps search output; 0 means unlimited, nil means inherit
	MaxSearchResults *int `json:"maxSearchResults,omitempty" yaml:"max_search_results,omitempty"`
}

// NewSettings creates a new Settings instance with default values
func NewSettings() *Settings {
	return &Settings{
		AllowedExtensions:     append([]string(nil), defaultAllowedExtensions...),
		RestrictedPaths:       defaultRestrictedPaths(),
		MaxFileSizeMB:         intPtr(defaultMaxFileSizeMB),
		EnableImages:          boolPtr(true),
		EnableManagedBinaries: boolPtr(false),
		EnableGenericBinaries: boolPtr(false),
	}
}

// Policy builds the immutable access policy these settings describe.
func (s *Settings) Policy() (*policy.Policy, error) {
	restricted := make([]string, 0, len(s.RestrictedPaths))
	for _, p := range s.RestrictedPaths {
		if p = expandPath(p); p != "" {
			restricted = append(restricted, p)
		}
	}

	return policy.New(policy.Options{
		AllowedExtensions:     s.AllowedExtensions,
		RestrictedPrefixes:    restricted,
		MaxFileSizeBytes:      int64(intValue(s.MaxFileSizeMB)) * 1024 * 1024,
		EnableImages:          boolValue(s.EnableImages),
		EnableManagedBinaries: boolValue(s.EnableManagedBinaries),
		EnableGenericBinaries: boolValue(s.EnableGenericBinaries),
		BaseDir:               expandPath(s.BaseDir),
	})
}

// expandPath expands environment references and a leading ~.
func expandPath(p string) string {
	p = strings.TrimSpace(ExpandEnv(p))
	if p == "~" || strings.HasPrefix(p, "~/") || strings.HasPrefix(p, `~\`) {
		home, err := os.UserHomeDir()
		if err != nil {
			return p
		}
		return filepath.Join(home, p[1:])
	}
	return p
}

func boolPtr(b bool) *bool {
	return &b
}

func boolValue(b *bool) bool {
	return b != nil && *b
}

func intPtr(n int) *int {
	return &n
}

func intValue(n *int) int {
	if n == nil {
		return 0
	}
	return *n
}

// SearchLimit returns the search result cap, 0 meaning unlimited.
func (s *Settings) SearchLimit() int {
	return intValue(s.MaxSearchResults)
}
