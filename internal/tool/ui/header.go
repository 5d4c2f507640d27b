package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// ResultMetadata contains metadata about an operation result
type ResultMetadata struct {
	Title     string        // Tool name
	Icon      string        // Tool icon
	Subtitle  string        // Short description (e.g., file path)
	Size      string        // Formatted size
	Duration  time.Duration // Execution duration
	LineCount int           // Number of lines
	ItemCount int           // Number of entries/matches
	ItemLabel string        // Noun for ItemCount, e.g. "entries"
	Truncated bool          // Whether output was truncated
}

// RenderHeader renders the result header box
// ╭─────────────────────────────────────────────╮
// │ read_file                                   │
// │ 📄 /path/to/file.go                         │
// │ 2.4 KiB · 85 lines · 12ms                   │
// ╰─────────────────────────────────────────────╯
func RenderHeader(meta ResultMetadata, width int) string {
	title := HeaderTitleStyle.Render(meta.Title)
	subtitle := fmt.Sprintf("%s %s", meta.Icon, HeaderSubtitleStyle.Render(meta.Subtitle))

	metaParts := []string{}
	if meta.Size != "" {
		metaParts = append(metaParts, meta.Size)
	}
	if meta.LineCount > 0 {
		metaParts = append(metaParts, fmt.Sprintf("%d lines", meta.LineCount))
	}
	if meta.ItemLabel != "" {
		metaParts = append(metaParts, fmt.Sprintf("%d %s", meta.ItemCount, meta.ItemLabel))
	}
	if meta.Duration > 0 {
		metaParts = append(metaParts, FormatDuration(meta.Duration))
	}
	if meta.Truncated {
		metaParts = append(metaParts, TruncatedStyle.Render("(truncated)"))
	}
	metaLine := HeaderMetaStyle.Render(strings.Join(metaParts, " · "))

	content := fmt.Sprintf("%s\n%s\n%s", title, subtitle, metaLine)
	return HeaderStyle.Width(boxWidth(width) - 4).Render(content)
}

// RenderErrorHeader renders an error header box
// ╭─────────────────────────────────────────────╮
// │ read_file                                   │
// │ ❌ AccessDenied                             │
// │ Access denied: Path is in restricted ...    │
// ╰─────────────────────────────────────────────╯
func RenderErrorHeader(toolName, kind, errorMsg string, width int) string {
	title := HeaderTitleStyle.Render(toolName)
	errorLine := fmt.Sprintf("%s %s", IconError, ErrorStyle.Render(kind))
	msgLine := ErrorMsgStyle.Render(errorMsg)

	content := fmt.Sprintf("%s\n%s\n%s", title, errorLine, msgLine)

	// Use red border for errors
	errorBoxStyle := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(ColorError).
		Padding(0, 1)

	return errorBoxStyle.Width(boxWidth(width) - 4).Render(content)
}

func boxWidth(width int) int {
	if width <= 0 {
		return 50
	}
	if width > 80 {
		return 80
	}
	return width
}
