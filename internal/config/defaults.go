package config

import (
	"os"
	"path/filepath"
	"runtime"
)

const defaultMaxFileSizeMB = 10

// defaultAllowedExtensions covers common source, text and image formats.
var defaultAllowedExtensions = []string{
	// Text and documentation
	".txt", ".md", ".markdown", ".rst", ".adoc", ".log", ".csv", ".tsv",
	// Data and configuration
	".json", ".jsonl", ".yaml", ".yml", ".toml", ".ini", ".cfg", ".conf", ".xml", ".properties",
	// Web
	".html", ".htm", ".css", ".scss", ".js", ".mjs", ".cjs", ".jsx", ".ts", ".tsx", ".vue", ".svelte",
	// Source code
	".go", ".py", ".rb", ".rs", ".java", ".kt", ".scala", ".c", ".h", ".cc", ".cpp", ".hpp",
	".cs", ".swift", ".php", ".lua", ".pl", ".r", ".dart", ".ex", ".exs", ".erl", ".hs",
	".sh", ".bash", ".zsh", ".fish", ".ps1", ".bat",
	".sql", ".graphql", ".proto", ".tf", ".mod", ".sum", ".gradle", ".cmake",
	// Images
	".png", ".jpg", ".jpeg", ".gif", ".webp", ".svg", ".bmp", ".ico",
}

// defaultRestrictedPaths returns the system and credential locations denied
// out of the box on this platform.
func defaultRestrictedPaths() []string {
	var paths []string
	switch runtime.GOOS {
	case "windows":
		paths = []string{
			`C:\Windows`,
			`C:\Program Files`,
			`C:\Program Files (x86)`,
			`C:\ProgramData`,
		}
	case "darwin":
		paths = []string{
			"/System",
			"/Library/Keychains",
			"/private/etc",
			"/private/var/db",
			"/dev",
		}
	default:
		paths = []string{
			"/proc",
			"/sys",
			"/dev",
			"/boot",
			"/etc/shadow",
			"/etc/gshadow",
			"/etc/sudoers",
			"/etc/ssh",
		}
	}

	if home, err := os.UserHomeDir(); err == nil && home != "" {
		for _, dir := range []string{".ssh", ".aws", ".gnupg", ".kube", ".docker", ".fsgate"} {
			paths = append(paths, filepath.Join(home, dir))
		}
	}
	return paths
}
