package fsops

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/yanmxa/fsgate/internal/policy"
)

// StatParams are the inputs of Stat.
type StatParams struct {
	Path string
}

// Stat returns metadata for a file or directory. The extension allowlist
// does not apply.
func (e *Executor) Stat(ctx context.Context, params StatParams) Result {
	start := time.Now()
	res := e.stat(e.source.Current(), params)
	e.finish(ctx, OpStat, params.Path, start, res)
	return res
}

func (e *Executor) stat(p *policy.Policy, params StatParams) Result {
	path, err := p.Resolve(params.Path)
	if err != nil {
		return Fail(err)
	}

	info, err := os.Stat(path.String())
	if err != nil {
		return ioFailure("Stat", params.Path, err)
	}

	created, accessed := fileTimes(path.String(), info)
	fi := FileInfo{
		Name:          path.Base(),
		Path:          path.String(),
		Directory:     filepath.Dir(path.String()),
		Type:          fileType(info.Mode()),
		Size:          info.Size(),
		SizeFormatted: formatSize(info.Size()),
		Created:       created,
		Modified:      info.ModTime(),
		Accessed:      accessed,
		Permissions:   info.Mode().String(),
	}
	if fi.Type == typeFile {
		fi.Extension = policy.Extension(path.String())
		fi.MimeType = mimeType(fi.Extension)
	}
	return OK(fi)
}
