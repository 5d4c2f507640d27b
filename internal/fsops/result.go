// Package fsops executes the read-only filesystem operations behind the
// policy gate. Every operation resolves its input through the active
// policy before touching the filesystem and reports the outcome as a Result;
// no error or panic escapes to the caller.
package fsops

import (
	"time"

	"github.com/yanmxa/fsgate/internal/policy"
)

// Operation names, shared by the tool surface, logs and metrics.
const (
	OpRead   = "read_file"
	OpList   = "list_directory"
	OpStat   = "get_file_info"
	OpSearch = "search_files"
)

// BinaryPlaceholder replaces the content of files classified as binary.
const BinaryPlaceholder = "[Binary file - content not displayed]"

// Result is the uniform envelope returned by every operation.
type Result struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`

	// Kind classifies a failure; KindNone on success.
	Kind policy.Kind `json:"-"`
}

// OK wraps operation data in a successful Result.
func OK(data any) Result {
	return Result{Success: true, Data: data}
}

// Fail converts err into a failed Result, keeping the kind of a policy error.
func Fail(err error) Result {
	return Result{Success: false, Error: err.Error(), Kind: policy.KindOf(err)}
}

// Outcome returns "ok" for success or the failure kind's name.
func (r Result) Outcome() string {
	if r.Success {
		return "ok"
	}
	return r.Kind.String()
}

// Observer is notified after every operation.
type Observer interface {
	ObserveOperation(op string, kind policy.Kind, duration time.Duration)
}

// FileEntry describes one directory entry in list and search output.
type FileEntry struct {
	Name          string    `json:"name"`
	Path          string    `json:"path"`
	Type          string    `json:"type"`
	Size          int64     `json:"size"`
	SizeFormatted string    `json:"sizeFormatted"`
	Modified      time.Time `json:"modified"`
	Extension     string    `json:"extension,omitempty"`
	MimeType      string    `json:"mimeType,omitempty"`
}

// ReadData is the payload of a successful read.
type ReadData struct {
	Path          string    `json:"path"`
	Name          string    `json:"name"`
	Size          int64     `json:"size"`
	SizeFormatted string    `json:"sizeFormatted"`
	MimeType      string    `json:"mimeType"`
	Modified      time.Time `json:"modified"`
	Encoding      string    `json:"encoding,omitempty"`
	IsBinary      bool      `json:"isBinary"`
	Content       string    `json:"content"`
}

// ListData is the payload of a successful list.
type ListData struct {
	Path    string      `json:"path"`
	Entries []FileEntry `json:"entries"`
	Count   int         `json:"count"`
}

// FileInfo is the payload of a successful stat.
type FileInfo struct {
	Name          string    `json:"name"`
	Path          string    `json:"path"`
	Directory     string    `json:"directory"`
	Extension     string    `json:"extension"`
	Type          string    `json:"type"`
	Size          int64     `json:"size"`
	SizeFormatted string    `json:"sizeFormatted"`
	Created       time.Time `json:"created"`
	Modified      time.Time `json:"modified"`
	Accessed      time.Time `json:"accessed"`
	MimeType      string    `json:"mimeType,omitempty"`
	Permissions   string    `json:"permissions"`
	Writable      bool      `json:"writable"`
}

// SearchData is the payload of a successful search.
type SearchData struct {
	Path      string      `json:"path"`
	Pattern   string      `json:"pattern"`
	Recursive bool        `json:"recursive"`
	Matches   []FileEntry `json:"matches"`
	Count     int         `json:"count"`
	Truncated bool        `json:"truncated,omitempty"`
}
