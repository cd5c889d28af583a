// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// table.go - Minimal column-aligned table rendering for list commands.

package cmd

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")) // Cyan

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")) // Light gray
)

// renderTable writes header and rows as aligned columns, padding with
// runewidth so wide characters line up.
func renderTable(header []string, rows [][]string) string {
	widths := make([]int, len(header))
	for i, h := range header {
		widths[i] = runewidth.StringWidth(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) {
				if w := runewidth.StringWidth(cell); w > widths[i] {
					widths[i] = w
				}
			}
		}
	}

	var sb strings.Builder
	sb.WriteString(headerStyle.Render(padRow(header, widths)))
	sb.WriteString("\n")
	for _, row := range rows {
		sb.WriteString(padRow(row, widths))
		sb.WriteString("\n")
	}
	return sb.String()
}

func padRow(cells []string, widths []int) string {
	padded := make([]string, len(cells))
	for i, cell := range cells {
		padded[i] = cell + strings.Repeat(" ", widths[i]-runewidth.StringWidth(cell))
	}
	return strings.TrimRight(strings.Join(padded, "  "), " ")
}

// shortID returns the first 8 characters of an id for display.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// countFooter prints "N item(s)" footers consistently.
func countFooter(n int, singular, plural string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", singular)
	}
	return fmt.Sprintf("%d %s", n, plural)
}
