package ui

import (
	"strings"
	"time"

	"github.com/yanmxa/fsgate/internal/fsops"
)

const (
	maxShowLines   = 200
	maxShowEntries = 100
)

// RenderResult renders an operation result with a header box and content
func RenderResult(title, icon string, res fsops.Result, duration time.Duration, width int) string {
	if !res.Success {
		return RenderErrorHeader(title, res.Kind.String(), res.Error, width)
	}

	meta := ResultMetadata{Title: title, Icon: icon, Duration: duration}
	var body string

	switch data := res.Data.(type) {
	case fsops.ReadData:
		meta.Subtitle = data.Path
		meta.Size = data.SizeFormatted
		if data.IsBinary {
			body = "  " + BinaryStyle.Render(data.Content) + "\n"
			break
		}
		meta.LineCount = strings.Count(data.Content, "\n")
		if data.Content != "" && !strings.HasSuffix(data.Content, "\n") {
			meta.LineCount++
		}
		body = RenderLines(data.Content, maxShowLines)
	case fsops.ListData:
		meta.Subtitle = data.Path
		meta.ItemCount = data.Count
		meta.ItemLabel = "entries"
		body = RenderEntries(data.Entries, maxShowEntries)
	case fsops.FileInfo:
		meta.Subtitle = data.Path
		meta.Size = data.SizeFormatted
		body = RenderInfo(data)
	case fsops.SearchData:
		meta.Subtitle = data.Pattern + " in " + data.Path
		meta.ItemCount = data.Count
		meta.ItemLabel = "matches"
		meta.Truncated = data.Truncated
		body = RenderEntries(data.Matches, maxShowEntries)
	}

	var sb strings.Builder
	sb.WriteString(RenderHeader(meta, width))
	sb.WriteString("\n")
	sb.WriteString(body)
	return sb.String()
}
