package util

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
)

// Terminal control sequences
const (
	ColorReset   = "\033[0m"
	ColorBlue    = "\033[34m"
	ColorCyan    = "\033[36m"
	ColorGreen   = "\033[32m"
	ColorYellow  = "\033[33m"
	ColorRed     = "\033[31m"
	ColorMagenta = "\033[35m"
	ColorBold    = "\033[1m"

	ClearScreen    = "\033[2J"
	MoveCursorHome = "\033[H"
	HideCursor     = "\033[?25l"
	ShowCursor     = "\033[?25h"
)

// GetDisplayWidth returns the number of terminal cells s occupies.
func GetDisplayWidth(text string) int {
	return runewidth.StringWidth(text)
}

// TruncateWidth cuts s to at most width cells.
func TruncateWidth(text string, width int) string {
	return runewidth.Truncate(text, width, "")
}

// PadRight pads s with spaces to width cells.
func PadRight(text string, width int) string {
	return runewidth.FillRight(text, width)
}

// PadLeft right-aligns s in width cells.
func PadLeft(text string, width int) string {
	return runewidth.FillLeft(text, width)
}

// CenterText centers text within the given width.
func CenterText(text string, width int) string {
	w := GetDisplayWidth(text)
	if w >= width {
		return TruncateWidth(text, width)
	}
	padding := (width - w) / 2
	return strings.Repeat(" ", padding) + text + strings.Repeat(" ", width-padding-w)
}

// Colorize wraps text in an ANSI color unless color is disabled.
func Colorize(text, color string, enabled bool) string {
	if !enabled || color == "" {
		return text
	}
	return color + text + ColorReset
}

// FormatHeaderTitle formats main header titles (Magenta + Bold)
func FormatHeaderTitle(title string) string {
	return fmt.Sprintf("%s%s%s%s", ColorBold, ColorMagenta, title, ColorReset)
}

// FormatWarningTitle formats warning section titles (Yellow + Bold)
func FormatWarningTitle(title string) string {
	return fmt.Sprintf("%s%s%s%s", ColorBold, ColorYellow, title, ColorReset)
}

// ResetScreen clears the terminal and homes the cursor.
func ResetScreen() string {
	return ClearScreen + MoveCursorHome
}
