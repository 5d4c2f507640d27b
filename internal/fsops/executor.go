package fsops

import (
	"context"
	"errors"
	"io/fs"
	"syscall"
	"time"

	"github.com/yanmxa/fsgate/internal/log"
	"github.com/yanmxa/fsgate/internal/policy"
)

// DefaultMaxSearchDepth bounds how many directory levels below the search
// root are entered.
const DefaultMaxSearchDepth = 10

// Options configures an Executor.
type Options struct {
	// MaxSearchDepth defaults to DefaultMaxSearchDepth when zero.
	MaxSearchDepth int

	// MaxSearchResults caps returned matches; zero means unlimited.
	MaxSearchResults int

	Observer Observer
}

// Executor runs operations against whatever policy its source currently
// publishes. Each call reads the policy once, so a concurrent reload never
// splits a single operation across two policies.
type Executor struct {
	source policy.Source
	opts   Options
}

// New creates an Executor.
func New(source policy.Source, opts Options) *Executor {
	if opts.MaxSearchDepth <= 0 {
		opts.MaxSearchDepth = DefaultMaxSearchDepth
	}
	if opts.MaxSearchResults < 0 {
		opts.MaxSearchResults = 0
	}
	return &Executor{source: source, opts: opts}
}

// Policy returns the policy the next call would run under.
func (e *Executor) Policy() *policy.Policy {
	return e.source.Current()
}

// finish logs and reports a completed operation.
func (e *Executor) finish(ctx context.Context, op, path string, start time.Time, res Result) {
	d := time.Since(start)
	log.LogOperation(op, log.CallID(ctx), path, d, res.Outcome(), res.Error)
	if e.opts.Observer != nil {
		e.opts.Observer.ObserveOperation(op, res.Kind, d)
	}
}

// ioFailure classifies a filesystem error. Missing paths, including a file
// used as a directory component, are NotFound; anything else is Unknown.
func ioFailure(opLabel, raw string, err error) Result {
	if errors.Is(err, fs.ErrNotExist) || errors.Is(err, syscall.ENOTDIR) {
		return Fail(policy.Errorf(policy.KindNotFound, "File not found: %s", raw))
	}
	return Fail(policy.Errorf(policy.KindUnknown, "%s failed: %v", opLabel, err))
}

func notAFile() Result {
	return Fail(policy.Errorf(policy.KindNotAFile, "Path is not a file"))
}

func notADirectory() Result {
	return Fail(policy.Errorf(policy.KindNotADirectory, "Path is not a directory"))
}

// entryFor builds the list/search record for a directory entry.
func entryFor(path string, info fs.FileInfo) FileEntry {
	entry := FileEntry{
		Name:          info.Name(),
		Path:          path,
		Type:          fileType(info.Mode()),
		Size:          info.Size(),
		SizeFormatted: formatSize(info.Size()),
		Modified:      info.ModTime(),
	}
	if entry.Type == typeFile {
		entry.Extension = policy.Extension(path)
		entry.MimeType = mimeType(entry.Extension)
	}
	return entry
}
