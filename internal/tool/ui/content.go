package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"

	"github.com/yanmxa/fsgate/internal/fsops"
)

// MaxLineLength is the maximum display width of a content line
const MaxLineLength = 500

// RenderLines renders file content with line numbers
//
//	1│package main
//	2│
//	3│import "fmt"
func RenderLines(content string, maxShow int) string {
	if content == "" {
		return TruncatedStyle.Render("  (empty file)") + "\n"
	}

	lines := strings.Split(strings.TrimSuffix(content, "\n"), "\n")
	showCount := len(lines)
	if maxShow > 0 && showCount > maxShow {
		showCount = maxShow
	}

	lineNoWidth := len(fmt.Sprintf("%d", showCount))
	if lineNoWidth < 4 {
		lineNoWidth = 4
	}

	var sb strings.Builder
	for i := 0; i < showCount; i++ {
		sb.WriteString(LineNumberStyle.Render(fmt.Sprintf("%*d│", lineNoWidth, i+1)))
		sb.WriteString(TruncateText(lines[i], MaxLineLength))
		sb.WriteString("\n")
	}
	if showCount < len(lines) {
		sb.WriteString(TruncatedStyle.Render(fmt.Sprintf("  ... and %d more lines", len(lines)-showCount)))
		sb.WriteString("\n")
	}
	return sb.String()
}

// RenderEntries renders directory entries as aligned columns
//
//	notes.md     file       1.2 KiB  2024-01-02 15:04
//	src/         directory  4.0 KiB  2024-01-02 15:04
func RenderEntries(entries []fsops.FileEntry, maxShow int) string {
	if len(entries) == 0 {
		return TruncatedStyle.Render("  (no entries)") + "\n"
	}

	showCount := len(entries)
	if maxShow > 0 && showCount > maxShow {
		showCount = maxShow
	}

	nameWidth, typeWidth, sizeWidth := 0, 0, 0
	names := make([]string, showCount)
	for i := 0; i < showCount; i++ {
		e := entries[i]
		names[i] = e.Name
		if e.Type == "directory" {
			names[i] += "/"
		}
		nameWidth = max(nameWidth, runewidth.StringWidth(names[i]))
		typeWidth = max(typeWidth, len(e.Type))
		sizeWidth = max(sizeWidth, len(e.SizeFormatted))
	}

	var sb strings.Builder
	for i := 0; i < showCount; i++ {
		e := entries[i]
		name := runewidth.FillRight(names[i], nameWidth)
		if e.Type == "directory" {
			name = DirectoryStyle.Render(name)
		} else {
			name = FilePathStyle.Render(name)
		}
		sb.WriteString("  ")
		sb.WriteString(name)
		sb.WriteString("  ")
		sb.WriteString(LabelStyle.Render(fmt.Sprintf("%-*s", typeWidth, e.Type)))
		sb.WriteString("  ")
		sb.WriteString(fmt.Sprintf("%*s", sizeWidth, e.SizeFormatted))
		sb.WriteString("  ")
		sb.WriteString(LabelStyle.Render(e.Modified.Local().Format("2006-01-02 15:04")))
		sb.WriteString("\n")
	}

	if showCount < len(entries) {
		sb.WriteString(TruncatedStyle.Render(fmt.Sprintf("  ... and %d more entries", len(entries)-showCount)))
		sb.WriteString("\n")
	}
	return sb.String()
}

// RenderInfo renders file metadata as label/value pairs
func RenderInfo(info fsops.FileInfo) string {
	rows := [][2]string{
		{"Path", info.Path},
		{"Type", info.Type},
		{"Size", fmt.Sprintf("%s (%d bytes)", info.SizeFormatted, info.Size)},
		{"Permissions", info.Permissions},
		{"Created", info.Created.Local().Format(time.RFC3339)},
		{"Modified", info.Modified.Local().Format(time.RFC3339)},
		{"Accessed", info.Accessed.Local().Format(time.RFC3339)},
	}
	if info.Extension != "" {
		rows = append(rows, [2]string{"Extension", info.Extension})
	}
	if info.MimeType != "" {
		rows = append(rows, [2]string{"MIME type", info.MimeType})
	}

	labelWidth := 0
	for _, r := range rows {
		labelWidth = max(labelWidth, runewidth.StringWidth(r[0]))
	}

	var sb strings.Builder
	for _, r := range rows {
		sb.WriteString("  ")
		sb.WriteString(LabelStyle.Render(runewidth.FillRight(r[0], labelWidth)))
		sb.WriteString("  ")
		sb.WriteString(r[1])
		sb.WriteString("\n")
	}
	return sb.String()
}

// TruncateText truncates text to a display width with ellipsis
func TruncateText(text string, maxWidth int) string {
	if runewidth.StringWidth(text) <= maxWidth {
		return text
	}
	if maxWidth <= 3 {
		return "..."
	}
	return runewidth.Truncate(text, maxWidth, "...")
}
