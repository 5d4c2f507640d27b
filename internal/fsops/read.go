package fsops

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/yanmxa/fsgate/internal/policy"
)

// ReadParams are the inputs of Read.
type ReadParams struct {
	Path     string
	Encoding string
}

// Read returns a file's content, or a placeholder for binary files.
func (e *Executor) Read(ctx context.Context, params ReadParams) Result {
	start := time.Now()
	res := e.read(e.source.Current(), params)
	e.finish(ctx, OpRead, params.Path, start, res)
	return res
}

func (e *Executor) read(p *policy.Policy, params ReadParams) Result {
	path, err := p.Resolve(params.Path)
	if err != nil {
		return Fail(err)
	}
	if err := p.CheckExtension(path); err != nil {
		return Fail(err)
	}
	dec, err := lookupDecoder(params.Encoding)
	if err != nil {
		return Fail(err)
	}

	info, err := os.Stat(path.String())
	if err != nil {
		return ioFailure("Read", params.Path, err)
	}
	if !info.Mode().IsRegular() {
		return notAFile()
	}
	if err := p.CheckSize(info.Size()); err != nil {
		return Fail(err)
	}

	ext := policy.Extension(path.String())
	data := ReadData{
		Path:          path.String(),
		Name:          path.Base(),
		Size:          info.Size(),
		SizeFormatted: formatSize(info.Size()),
		MimeType:      mimeType(ext),
		Modified:      info.ModTime(),
	}
	if policy.CategoryOf(ext).IsBinary() {
		data.IsBinary = true
		data.Content = BinaryPlaceholder
		return OK(data)
	}

	f, err := os.Open(path.String())
	if err != nil {
		return ioFailure("Read", params.Path, err)
	}
	defer f.Close()

	// The file may have grown since stat; never read past the ceiling.
	content, err := io.ReadAll(io.LimitReader(f, p.MaxFileSizeBytes()+1))
	if err != nil {
		return ioFailure("Read", params.Path, err)
	}
	if err := p.CheckSize(int64(len(content))); err != nil {
		return Fail(err)
	}

	// A NUL byte marks the file binary whatever encoding was asked for.
	if looksBinary(content) {
		data.IsBinary = true
		data.Content = BinaryPlaceholder
		return OK(data)
	}

	text, err := dec.decode(content)
	if err != nil {
		return Fail(policy.Errorf(policy.KindUnknown, "Read failed: %v", err))
	}
	data.Encoding = dec.name
	data.Content = text
	return OK(data)
}
