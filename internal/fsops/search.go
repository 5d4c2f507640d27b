package fsops

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/yanmxa/fsgate/internal/pattern"
	"github.com/yanmxa/fsgate/internal/policy"
)

// SearchParams are the inputs of Search.
type SearchParams struct {
	Path      string
	Pattern   string
	Recursive bool

	// Exclude holds doublestar patterns matched against slash-separated
	// paths relative to the search root. Patterns without a "/" also match
	// bare entry names.
	Exclude []string
}

// Search finds files whose name matches a wildcard pattern. Directories
// more than MaxSearchDepth levels below the root are not entered, symlinked
// directories are not followed, and unreadable directories are skipped.
func (e *Executor) Search(ctx context.Context, params SearchParams) Result {
	start := time.Now()
	res := e.search(ctx, e.source.Current(), params)
	e.finish(ctx, OpSearch, params.Path, start, res)
	return res
}

type searchItem struct {
	dir   string
	depth int
}

func (e *Executor) search(ctx context.Context, p *policy.Policy, params SearchParams) Result {
	root, err := p.Resolve(params.Path)
	if err != nil {
		return Fail(err)
	}

	info, err := os.Stat(root.String())
	if err != nil {
		return ioFailure("Search", params.Path, err)
	}
	if !info.IsDir() {
		return notADirectory()
	}

	m, err := pattern.Compile(params.Pattern)
	if err != nil {
		return Fail(policy.Errorf(policy.KindUnknown, "Invalid pattern: %v", err))
	}
	for _, ex := range params.Exclude {
		if !doublestar.ValidatePattern(ex) {
			return Fail(policy.Errorf(policy.KindInvalidParams, "Invalid parameters: invalid exclude pattern %q", ex))
		}
	}

	matches := []FileEntry{}
	stack := []searchItem{{dir: root.String(), depth: 0}}
	for len(stack) > 0 {
		if ctx.Err() != nil {
			return Fail(policy.Errorf(policy.KindUnknown, "Search cancelled"))
		}

		item := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		dirEntries, err := os.ReadDir(item.dir)
		if err != nil {
			if item.depth == 0 {
				return ioFailure("Search", params.Path, err)
			}
			continue
		}

		for _, de := range dirEntries {
			full := filepath.Join(item.dir, de.Name())
			if _, restricted := p.IsRestricted(full); restricted {
				continue
			}
			if excluded(root.String(), full, de.Name(), params.Exclude) {
				continue
			}

			// DirEntry.IsDir does not follow symlinks.
			if de.IsDir() {
				if params.Recursive && item.depth+1 <= e.opts.MaxSearchDepth {
					stack = append(stack, searchItem{dir: full, depth: item.depth + 1})
				}
				continue
			}
			if !m.Matches(de.Name()) {
				continue
			}
			fi, err := de.Info()
			if err != nil {
				continue
			}
			matches = append(matches, entryFor(full, fi))
		}
	}

	sort.Slice(matches, func(i, j int) bool {
		return matches[i].Path < matches[j].Path
	})

	truncated := false
	if limit := e.opts.MaxSearchResults; limit > 0 && len(matches) > limit {
		matches = matches[:limit]
		truncated = true
	}

	return OK(SearchData{
		Path:      root.String(),
		Pattern:   params.Pattern,
		Recursive: params.Recursive,
		Matches:   matches,
		Count:     len(matches),
		Truncated: truncated,
	})
}

func excluded(root, full, name string, patterns []string) bool {
	if len(patterns) == 0 {
		return false
	}
	rel, err := filepath.Rel(root, full)
	if err != nil {
		return false
	}
	rel = filepath.ToSlash(rel)
	for _, pat := range patterns {
		if ok, _ := doublestar.Match(pat, rel); ok {
			return true
		}
		if !strings.Contains(pat, "/") {
			if ok, _ := doublestar.Match(pat, name); ok {
				return true
			}
		}
	}
	return false
}
