package config

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
)

// Environment variable expansion for path-valued settings.
// Supports ${VAR} and ${VAR:-default} syntax.

var (
	simpleVarPattern  = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}`)
	defaultVarPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*):-([^}]*)\}`)
)

// ExpandEnv expands environment variables in a string.
// Supports ${VAR} and ${VAR:-default} syntax.
func ExpandEnv(s string) string {
	// First handle ${VAR:-default} patterns
	result := defaultVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := defaultVarPattern.FindStringSubmatch(match)
		if len(parts) != 3 {
			return match
		}
		if val, ok := os.LookupEnv(parts[1]); ok && val != "" {
			return val
		}
		return parts[2]
	})

	// Then handle simple ${VAR} patterns
	return simpleVarPattern.ReplaceAllStringFunc(result, func(match string) string {
		parts := simpleVarPattern.FindStringSubmatch(match)
		if len(parts) != 2 {
			return match
		}
		return os.Getenv(parts[1])
	})
}

// Environment variables that override file settings.
const (
	EnvAllowedExtensions     = "FSGATE_ALLOWED_EXTENSIONS"
	EnvRestrictedPaths       = "FSGATE_RESTRICTED_PATHS"
	EnvMaxFileSizeMB         = "FSGATE_MAX_FILE_SIZE_MB"
	EnvEnableImages          = "FSGATE_ENABLE_IMAGES"
	EnvEnableManagedBinaries = "FSGATE_ENABLE_MANAGED_BINARIES"
	EnvEnableGenericBinaries = "FSGATE_ENABLE_GENERIC_BINARIES"
	EnvBaseDir               = "FSGATE_BASE_DIR"
	EnvMaxSearchResults      = "FSGATE_MAX_SEARCH_RESULTS"
)

// LookupFunc reads one environment variable.
type LookupFunc func(key string) (string, bool)

// FromEnv builds the overlay described by FSGATE_* variables. Unset or empty
// variables leave the corresponding field unset.
func FromEnv(lookup LookupFunc) (*Settings, error) {
	if lookup == nil {
		lookup = os.LookupEnv
	}
	get := func(key string) (string, bool) {
		v, ok := lookup(key)
		v = strings.TrimSpace(v)
		return v, ok && v != ""
	}

	s := &Settings{}
	if v, ok := get(EnvAllowedExtensions); ok {
		s.AllowedExtensions = splitList(v)
	}
	if v, ok := get(EnvRestrictedPaths); ok {
		s.RestrictedPaths = splitList(v)
	}
	if v, ok := get(EnvMaxFileSizeMB); ok {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("%s: expected a positive integer, got %q", EnvMaxFileSizeMB, v)
		}
		s.MaxFileSizeMB = intPtr(n)
	}
	if v, ok := get(EnvMaxSearchResults); ok {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("%s: expected a non-negative integer, got %q", EnvMaxSearchResults, v)
		}
		s.MaxSearchResults = intPtr(n)
	}
	for key, dst := range map[string]**bool{
		EnvEnableImages:          &s.EnableImages,
		EnvEnableManagedBinaries: &s.EnableManagedBinaries,
		EnvEnableGenericBinaries: &s.EnableGenericBinaries,
	} {
		v, ok := get(key)
		if !ok {
			continue
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("%s: expected a boolean, got %q", key, v)
		}
		*dst = boolPtr(b)
	}
	if v, ok := get(EnvBaseDir); ok {
		s.BaseDir = v
	}
	return s, nil
}

// splitList splits a comma-separated list, dropping blanks.
func splitList(v string) []string {
	var out []string
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
