package fsops

import (
	"io/fs"
	"mime"
	"strings"

	"github.com/dustin/go-humanize"
)

const (
	typeFile      = "file"
	typeDirectory = "directory"
	typeSymlink   = "symlink"
	typeOther     = "other"

	defaultMimeType = "application/octet-stream"
)

// mimeOverrides pins types the host mime database tends to omit or vary on.
var mimeOverrides = map[string]string{
	".txt":  "text/plain",
	".md":   "text/markdown",
	".go":   "text/x-go",
	".py":   "text/x-python",
	".ts":   "text/typescript",
	".sh":   "text/x-shellscript",
	".yaml": "text/yaml",
	".yml":  "text/yaml",
	".toml": "text/toml",
	".csv":  "text/csv",
	".log":  "text/plain",
	".json": "application/json",
}

// mimeType maps an extension key to a MIME type without parameters.
func mimeType(ext string) string {
	if ext == "" {
		return defaultMimeType
	}
	if mt, ok := mimeOverrides[ext]; ok {
		return mt
	}
	mt := mime.TypeByExtension(ext)
	if mt == "" {
		return defaultMimeType
	}
	if i := strings.IndexByte(mt, ';'); i >= 0 {
		mt = strings.TrimSpace(mt[:i])
	}
	return mt
}

// formatSize renders a byte count for humans, e.g. "1.5 KiB".
func formatSize(n int64) string {
	if n < 0 {
		n = 0
	}
	return humanize.IBytes(uint64(n))
}

func fileType(mode fs.FileMode) string {
	switch {
	case mode&fs.ModeSymlink != 0:
		return typeSymlink
	case mode.IsDir():
		return typeDirectory
	case mode.IsRegular():
		return typeFile
	default:
		return typeOther
	}
}
