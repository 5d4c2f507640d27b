package fsops

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/yanmxa/fsgate/internal/policy"
)

// ListParams are the inputs of List.
type ListParams struct {
	Path          string
	IncludeHidden bool
}

// List returns the immediate entries of a directory, sorted by name.
// Symlinks are reported as such and never followed.
func (e *Executor) List(ctx context.Context, params ListParams) Result {
	start := time.Now()
	res := e.list(e.source.Current(), params)
	e.finish(ctx, OpList, params.Path, start, res)
	return res
}

func (e *Executor) list(p *policy.Policy, params ListParams) Result {
	dir, err := p.Resolve(params.Path)
	if err != nil {
		return Fail(err)
	}

	info, err := os.Stat(dir.String())
	if err != nil {
		return ioFailure("List", params.Path, err)
	}
	if !info.IsDir() {
		return notADirectory()
	}

	dirEntries, err := os.ReadDir(dir.String())
	if err != nil {
		return ioFailure("List", params.Path, err)
	}

	entries := make([]FileEntry, 0, len(dirEntries))
	for _, de := range dirEntries {
		if !params.IncludeHidden && isHidden(de.Name()) {
			continue
		}
		full := filepath.Join(dir.String(), de.Name())
		if _, restricted := p.IsRestricted(full); restricted {
			continue
		}
		fi, err := de.Info()
		if err != nil {
			// Removed between ReadDir and Info.
			continue
		}
		entries = append(entries, entryFor(full, fi))
	}

	return OK(ListData{
		Path:    dir.String(),
		Entries: entries,
		Count:   len(entries),
	})
}

func isHidden(name string) bool {
	return strings.HasPrefix(name, ".")
}
