package ui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

const AsciiArt = `
 ___ _                  ___               
/ __| |_ ___ _ _ _  _  / __| __ __ _ _ _  
\__ \  _/ _ \ '_| || | \__ \/ _/ _' | ' \ 
|___/\__\___/_|  \_, | |___/\__\__,_|_||_|
                 |__/                     
`

const (
	ColorReset  = "\033[0m"
	ColorGray   = "\033[90m" // Light gray
	ColorWhite  = "\033[97m" // White
	ColorRed    = "\033[91m" // Bright Red
	ColorGreen  = "\033[92m" // Bright Green
	ColorYellow = "\033[93m" // Bright Yellow

	ColorLow      = "\033[34m" // Blue for low
	ColorMedium   = "\033[33m" // Yellow/Orange for medium
	ColorHigh     = "\033[31m" // Red for high
	ColorCritical = "\033[95m" // Magenta for critical
)

// IsTerminal reports whether w is an interactive terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

// Palette wraps text in ANSI colors when enabled and returns it untouched
// otherwise.
type Palette struct {
	Enabled bool
}

func PaletteFor(w io.Writer) Palette {
	return Palette{Enabled: IsTerminal(w)}
}

func (p Palette) Paint(color, text string) string {
	if !p.Enabled || color == "" {
		return text
	}
	return color + text + ColorReset
}

// SeverityColor maps an issue severity name to its console color.
func SeverityColor(severity string) string {
	switch strings.ToLower(severity) {
	case "critical":
		return ColorCritical
	case "high":
		return ColorHigh
	case "medium":
		return ColorMedium
	case "low":
		return ColorLow
	default:
		return ColorWhite
	}
}

// GradeColor maps a score grade (good, fair, poor) to its console color.
func GradeColor(grade string) string {
	switch grade {
	case "good":
		return ColorGreen
	case "fair":
		return ColorYellow
	default:
		return ColorRed
	}
}

// PrintGradientAsciiArt prints the ASCII art with a Yellow to Blue gradient.
func PrintGradientAsciiArt(w io.Writer) {
	lines := strings.Split(strings.Trim(AsciiArt, "\n"), "\n")
	if !IsTerminal(w) || len(lines) < 2 {
		fmt.Fprintln(w, strings.Join(lines, "\n"))
		return
	}
	for i, line := range lines {
		ratio := float64(i) / float64(len(lines)-1)

		var r, g, b int
		// Yellow (255,255,0) -> Cyan (0,255,255) -> Blue (0,0,255)
		if ratio < 0.5 {
			localRatio := ratio * 2
			r = int(255 * (1 - localRatio))
			g = 255
			b = int(255 * localRatio)
		} else {
			localRatio := (ratio - 0.5) * 2
			r = 0
			g = int(255 * (1 - localRatio))
			b = 255
		}

		fmt.Fprintf(w, "\033[38;2;%d;%d;%dm%s\033[0m\n", r, g, b, line)
	}
}
