package ui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// Colors
var (
	ColorSuccess = lipgloss.Color("#10B981") // green
	ColorError   = lipgloss.Color("#EF4444") // red
	ColorMuted   = lipgloss.Color("#6B7280") // gray
	ColorAccent  = lipgloss.Color("#60A5FA") // blue
	ColorWarn    = lipgloss.Color("#F59E0B") // yellow
	ColorBorder  = lipgloss.Color("#374151") // dark gray for borders
)

// Icons
const (
	IconRead   = "\U0001F4C4" // 📄
	IconList   = "\U0001F4C1" // 📁
	IconInfo   = "\u2139"     // ℹ
	IconSearch = "\U0001F50D" // 🔍
	IconError  = "\u274C"     // ❌
)

// Styles
var (
	// Header box styles
	HeaderStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1)

	HeaderTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorAccent)

	HeaderSubtitleStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#E5E7EB"))

	HeaderMetaStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	// Content styles
	LineNumberStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	FilePathStyle = lipgloss.NewStyle().
			Foreground(ColorAccent)

	DirectoryStyle = lipgloss.NewStyle().
			Foreground(ColorAccent).
			Bold(true)

	LabelStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	TruncatedStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Italic(true)

	BinaryStyle = lipgloss.NewStyle().
			Foreground(ColorWarn).
			Italic(true)

	// Error styles
	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorError)

	ErrorMsgStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FCA5A5"))
)

// FormatDuration formats duration to human readable string
func FormatDuration(d time.Duration) string {
	switch {
	case d >= time.Second:
		return fmt.Sprintf("%.1fs", d.Seconds())
	case d >= time.Millisecond:
		return fmt.Sprintf("%dms", d.Milliseconds())
	default:
		return fmt.Sprintf("%dµs", d.Microseconds())
	}
}
