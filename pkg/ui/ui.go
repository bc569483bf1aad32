// Package ui renders styled terminal output for the geohash tools. Styling is
// dropped when the destination is not a terminal.
package ui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

var (
	// Styles
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF79C6")).
			Background(lipgloss.Color("#282A36")).
			Padding(0, 1)

	SubtitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#8BE9FD"))

	SuccessStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#50FA7B"))

	ErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF5555"))

	InfoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F1FA8C"))

	DimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6272A4"))

	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#BD93F9")).
			Padding(0, 1)

	StatStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFB86C"))
)

// IsTerminal reports whether w is a terminal, including Cygwin ptys
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Printer writes headings, stats and status lines to an output stream
type Printer struct {
	out    io.Writer
	styled bool
}

// NewPrinter creates a printer that styles output only when w is a terminal
func NewPrinter(w io.Writer) *Printer {
	return &Printer{out: w, styled: IsTerminal(w)}
}

func (p *Printer) render(style lipgloss.Style, s string) string {
	if !p.styled {
		return s
	}
	return style.Render(s)
}

// Title prints a section heading
func (p *Printer) Title(title string) {
	fmt.Fprintf(p.out, "\n%s\n", p.render(TitleStyle, title))
	fmt.Fprintln(p.out, strings.Repeat("=", 60))
}

// Subtitle prints a sub-section heading
func (p *Printer) Subtitle(subtitle string) {
	fmt.Fprintf(p.out, "\n%s\n", p.render(SubtitleStyle, subtitle))
}

// Success prints a completed step
func (p *Printer) Success(message string) {
	fmt.Fprintln(p.out, p.render(SuccessStyle, "✓ "+message))
}

// Info prints a neutral status line
func (p *Printer) Info(message string) {
	fmt.Fprintln(p.out, p.render(InfoStyle, "• "+message))
}

// Error prints a failure line
func (p *Printer) Error(message string) {
	fmt.Fprintln(p.out, p.render(ErrorStyle, "✗ "+message))
}

// Stat prints an indented label/value pair
func (p *Printer) Stat(label string, value any) {
	fmt.Fprintf(p.out, "  %s %s\n", p.render(StatStyle, label+":"), fmt.Sprint(value))
}

// Line prints a value on its own line without decoration, for piping
func (p *Printer) Line(value any) {
	fmt.Fprintln(p.out, value)
}

// Progress redraws a progress bar in place, ending the line when complete
func (p *Printer) Progress(current, total int, label string) {
	if total <= 0 {
		return
	}
	percent := float64(current) / float64(total) * 100
	const barLength = 40
	filled := int(percent / 100 * barLength)
	if filled > barLength {
		filled = barLength
	}

	bar := "[" + strings.Repeat("█", filled) + strings.Repeat("░", barLength-filled) + "]"
	fmt.Fprintf(p.out, "\r%s %s %s", label, p.render(InfoStyle, fmt.Sprintf("%.1f%%", percent)), bar)
	if current >= total {
		fmt.Fprintln(p.out)
	}
}
