package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// settingsExtensions are tried in order for each settings base name.
var settingsExtensions = []string{".json", ".yaml", ".yml"}

// Loader handles loading and merging settings from multiple sources.
type Loader struct {
	// userDir is the user-level config directory (e.g., ~/.fsgate)
	userDir string

	// projectDir is the project-level config directory (e.g., .fsgate)
	projectDir string

	// file is an explicit settings file layered above the directories
	file string

	// lookup reads environment overrides
	lookup LookupFunc
}

// NewLoader creates a new settings loader.
// It defaults to:
//   - userDir: ~/.fsgate
//   - projectDir: .fsgate
func NewLoader() *Loader {
	homeDir, _ := os.UserHomeDir()
	return &Loader{
		userDir:    filepath.Join(homeDir, ".fsgate"),
		projectDir: ".fsgate",
		lookup:     os.LookupEnv,
	}
}

// NewLoaderWithOptions creates a loader with custom directories. A nil
// lookup disables environment overrides.
func NewLoaderWithOptions(userDir, projectDir string, lookup LookupFunc) *Loader {
	if lookup == nil {
		lookup = func(string) (string, bool) { return "", false }
	}
	return &Loader{
		userDir:    userDir,
		projectDir: projectDir,
		lookup:     lookup,
	}
}

// WithFile layers an explicit settings file above the directory sources.
func (l *Loader) WithFile(path string) *Loader {
	l.file = path
	return l
}

// Sources returns the candidate settings files in priority order (lowest to
// highest). Files that do not exist are skipped by Load.
func (l *Loader) Sources() []string {
	var sources []string
	add := func(dir, base string) {
		if dir == "" {
			return
		}
		for _, ext := range settingsExtensions {
			sources = append(sources, filepath.Join(dir, base+ext))
		}
	}

	add(l.userDir, "settings")
	add(l.projectDir, "settings")
	add(l.projectDir, "settings.local")
	if l.file != "" {
		sources = append(sources, l.file)
	}
	return sources
}

// Load loads and merges settings from all sources.
// Priority (lowest to highest):
//  1. built-in defaults
//  2. ~/.fsgate/settings.{json,yaml,yml}
//  3. .fsgate/settings.{json,yaml,yml}
//  4. .fsgate/settings.local.{json,yaml,yml}
//  5. the explicit file, which must exist
//  6. FSGATE_* environment variables
//
// Unlike a missing file, a file that cannot be parsed is an error.
func (l *Loader) Load() (*Settings, error) {
	settings := NewSettings()

	for _, src := range l.Sources() {
		s, err := l.LoadFile(src)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) && src != l.file {
				continue
			}
			return nil, err
		}
		settings = MergeSettings(settings, s)
	}

	env, err := FromEnv(l.lookup)
	if err != nil {
		return nil, err
	}
	return MergeSettings(settings, env), nil
}

// LoadFile loads settings from a specific file. The format follows the
// extension: .yaml and .yml are YAML, anything else is JSON. Unknown keys are
// rejected so typos do not silently weaken the policy.
func (l *Loader) LoadFile(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read settings %s: %w", path, err)
	}

	var settings Settings
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&settings); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("failed to parse settings %s: %w", path, err)
		}
	default:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&settings); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("failed to parse settings %s: %w", path, err)
		}
	}

	return &settings, nil
}

// Load is a convenience function that loads settings using the default
// loader, layering path above the directory sources when non-empty.
func Load(path string) (*Settings, error) {
	loader := NewLoader()
	if path != "" {
		loader.WithFile(path)
	}
	return loader.Load()
}
