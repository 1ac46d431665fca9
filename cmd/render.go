package cmd

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/gustavotuas/color-identifier-app-sub000/internal/catalog"
	"github.com/gustavotuas/color-identifier-app-sub000/internal/color"
	"github.com/gustavotuas/color-identifier-app-sub000/internal/match"
)

var (
	nameStyle   = lipgloss.NewStyle().Bold(true)
	hexStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#909090"))
	vendorStyle = lipgloss.NewStyle().Faint(true)
	errStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF5555"))
)

// swatch renders a colored block for the entry, or blanks when the hex
// value does not parse.
func swatch(e catalog.Entry) string {
	c, err := e.Color()
	if err != nil {
		return "      "
	}
	return lipgloss.NewStyle().Background(lipgloss.Color(c.Hex())).Render("      ")
}

// renderEntry formats one catalog entry as a single line.
func renderEntry(e catalog.Entry) string {
	var b strings.Builder
	b.WriteString(swatch(e))
	b.WriteString("  ")
	b.WriteString(nameStyle.Render(e.Name))

	if c, err := e.Color(); err == nil {
		b.WriteString("  ")
		b.WriteString(hexStyle.Render(c.Hex()))
	} else {
		b.WriteString("  ")
		b.WriteString(errStyle.Render(e.Hex + " (unparseable)"))
	}

	if v := e.Vendor; v != nil {
		var parts []string
		if v.Brand != "" {
			parts = append(parts, v.Brand)
		}
		if v.Line != "" {
			parts = append(parts, v.Line)
		}
		if v.Code != "" {
			parts = append(parts, v.Code)
		}
		if len(parts) > 0 {
			b.WriteString("  ")
			b.WriteString(vendorStyle.Render(strings.Join(parts, " / ")))
		}
	}
	return b.String()
}

// renderMatch formats a nearest-match result with its distance from the
// target value.
func renderMatch(target color.Color, m match.Match) string {
	return fmt.Sprintf("%s\n%s %s\n",
		renderEntry(m.Entry),
		vendorStyle.Render("distance from "+target.Hex()+":"),
		fmt.Sprintf("%.2f", m.Distance),
	)
}
