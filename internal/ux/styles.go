package ux

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10")).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9")).
			Bold(true)

	noticeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("11"))

	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("12")).
			Bold(true)

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("8"))
)

// Success renders a success line.
func Success(msg string, noColor bool) string {
	if noColor {
		return "✓ " + msg
	}
	return successStyle.Render("✓ " + msg)
}

// Error renders an error line.
func Error(msg string, noColor bool) string {
	if noColor {
		return "✗ " + msg
	}
	return errorStyle.Render("✗ " + msg)
}

// Notice renders an informational line, used for redirect messages.
func Notice(msg string, noColor bool) string {
	if noColor {
		return "→ " + msg
	}
	return noticeStyle.Render("→ " + msg)
}

// Table is a simple column-aligned table for list commands.
type Table struct {
	Headers []string
	Rows    [][]string
}

// Render lays the table out with padded columns. Headers are styled unless
// noColor is set; widths are computed from the unstyled cell text.
func (t Table) Render(noColor bool) string {
	widths := make([]int, len(t.Headers))
	for i, h := range t.Headers {
		widths[i] = len(h)
	}
	for _, row := range t.Rows {
		for i, cell := range row {
			if i < len(widths) && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	var b strings.Builder
	for i, h := range t.Headers {
		cell := pad(h, widths[i])
		if !noColor {
			cell = headerStyle.Render(cell)
		}
		b.WriteString(cell)
		if i < len(t.Headers)-1 {
			b.WriteString("  ")
		}
	}

	if len(t.Rows) == 0 {
		b.WriteString("\n")
		empty := "(none)"
		if !noColor {
			empty = dimStyle.Render(empty)
		}
		b.WriteString(empty)
		return b.String()
	}

	for _, row := range t.Rows {
		b.WriteString("\n")
		for i, cell := range row {
			if i < len(widths) {
				b.WriteString(pad(cell, widths[i]))
			} else {
				b.WriteString(cell)
			}
			if i < len(row)-1 {
				b.WriteString("  ")
			}
		}
	}
	return b.String()
}

func pad(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

// Bool renders a boolean as yes/no for table cells.
func Bool(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}

// Money renders a price for table cells.
func Money(v float64) string {
	return fmt.Sprintf("%.2f", v)
}
