// Package internal provides Unicode symbol definitions with fallback support for cross-platform compatibility.
//
// This module ensures consistent visual representation across different terminals and systems
// by providing ASCII fallbacks for Unicode symbols that may not render properly on all platforms.
package internal

import (
	"os"
	"strings"
)

// SymbolSet defines a collection of symbols used throughout the UI
type SymbolSet struct {
	// Status indicators
	Success string
	Error   string
	Warning string

	// Drive list
	Drive      string
	Channel    string
	RadioOn    string
	RadioOff   string
	CheckOn    string
	CheckOff   string
	Pointer    string
	Bullet     string
	ReadOnly   string
	WritableOK string
}

// UnicodeSymbols provides rich Unicode symbols for modern terminals
var UnicodeSymbols = SymbolSet{
	Success: "✓",
	Error:   "✗",
	Warning: "⚠️",

	Drive:      "💾",
	Channel:    "📚",
	RadioOn:    "◉",
	RadioOff:   "○",
	CheckOn:    "☑",
	CheckOff:   "☐",
	Pointer:    "❯",
	Bullet:     "•",
	ReadOnly:   "🔒",
	WritableOK: "✎",
}

// ASCIISymbols provides ASCII-only fallbacks for compatibility
var ASCIISymbols = SymbolSet{
	Success: "[OK]",
	Error:   "[X]",
	Warning: "[!]",

	Drive:      "[HD]",
	Channel:    "[C]",
	RadioOn:    "(*)",
	RadioOff:   "( )",
	CheckOn:    "[x]",
	CheckOff:   "[ ]",
	Pointer:    ">",
	Bullet:     "*",
	ReadOnly:   "[ro]",
	WritableOK: "[rw]",
}

// CurrentSymbols holds the active symbol set based on terminal capabilities
var CurrentSymbols SymbolSet

func init() {
	CurrentSymbols = detectSymbolSet()
}

// detectSymbolSet determines the appropriate symbol set based on terminal capabilities
func detectSymbolSet() SymbolSet {
	if v := os.Getenv("DRIVESYNC_ASCII"); v == "1" || v == "true" {
		return ASCIISymbols
	}

	term := strings.ToLower(os.Getenv("TERM"))
	if term == "dumb" || term == "vt100" || strings.HasPrefix(term, "xterm-mono") {
		return ASCIISymbols
	}

	// Windows Console (cmd.exe) has limited Unicode support
	if os.Getenv("COMSPEC") != "" && os.Getenv("WT_SESSION") == "" {
		return ASCIISymbols
	}

	// SSH sessions without a UTF-8 locale
	if os.Getenv("SSH_CLIENT") != "" || os.Getenv("SSH_TTY") != "" {
		locale := strings.ToLower(os.Getenv("LANG"))
		if !strings.Contains(locale, "utf-8") && !strings.Contains(locale, "utf8") {
			return ASCIISymbols
		}
	}

	return UnicodeSymbols
}

// ForceASCII switches to ASCII symbols regardless of terminal detection
func ForceASCII() {
	CurrentSymbols = ASCIISymbols
}

// ForceUnicode switches to Unicode symbols regardless of terminal detection
func ForceUnicode() {
	CurrentSymbols = UnicodeSymbols
}

// FormatSuccess formats a success message with the appropriate symbol
func FormatSuccess(message string) string {
	return CurrentSymbols.Success + " " + message
}

// FormatError formats an error message with the appropriate symbol
func FormatError(message string) string {
	return CurrentSymbols.Error + " " + message
}

// FormatWarning formats a warning message with the appropriate symbol
func FormatWarning(message string) string {
	return CurrentSymbols.Warning + " " + message
}

// Radio returns the radio button glyph for a row
func Radio(selected bool) string {
	if selected {
		return CurrentSymbols.RadioOn
	}
	return CurrentSymbols.RadioOff
}

// Checkbox returns the checkbox glyph for a setting
func Checkbox(checked bool) string {
	if checked {
		return CurrentSymbols.CheckOn
	}
	return CurrentSymbols.CheckOff
}
