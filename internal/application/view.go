package application

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/JonMunkholm/condenser/internal/core"
)

const maxCellWidth = 24

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	headerStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14"))
	cursorStyle   = lipgloss.NewStyle().Background(lipgloss.Color("236"))
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	mutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	statusStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	menuStyle     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(m.title))
	b.WriteString("\n\n")

	if m.mode == modeMenu {
		b.WriteString(m.viewMenu())
		return b.String()
	}

	widths := m.columnWidths()
	selectable := m.engine.Selectable()

	// Header
	var head []string
	if selectable {
		head = append(head, checkbox(m.header.checked))
	}
	cfg := m.engine.Config()
	for i, name := range m.columns {
		if cfg.SortColumn != nil && *cfg.SortColumn == i {
			if cfg.SortDirection == core.SortDesc {
				name += " ▼"
			} else {
				name += " ▲"
			}
		}
		head = append(head, pad(name, widths[i]))
	}
	b.WriteString(headerStyle.Render(strings.Join(head, " │ ")))
	b.WriteString("\n")

	// Rows
	if len(m.rows) == 0 {
		b.WriteString(mutedStyle.Render("  no rows"))
		b.WriteString("\n")
	}
	for i, row := range m.rows {
		var cells []string
		if selectable {
			cells = append(cells, checkbox(row.Selected))
		}
		for c, cell := range row.Cells {
			if c >= len(widths) {
				break
			}
			cells = append(cells, pad(cell, widths[c]))
		}
		line := strings.Join(cells, " │ ")
		if row.Selected {
			line = selectedStyle.Render(line)
		}
		if i == m.cursor {
			line = cursorStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	// Footer
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("page %d/%d · %d rows", m.engine.Page()+1, m.engine.PageCount(), m.engine.VisibleCount()))
	if f := cfg.Filter; f != "" {
		b.WriteString(fmt.Sprintf(" · filter %q", f))
	}
	b.WriteString("\n")

	if m.mode == modeFilter {
		b.WriteString(m.filter.View())
		b.WriteString("\n")
	}
	if m.status != "" {
		b.WriteString(statusStyle.Render(m.status))
		b.WriteString("\n")
	}

	var help []string
	for _, k := range keys.help() {
		h := k.Help()
		help = append(help, h.Key+" "+h.Desc)
	}
	b.WriteString(mutedStyle.Render(strings.Join(help, " · ")))

	return b.String()
}

func (m Model) viewMenu() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render(m.menu.Title))
	b.WriteString("\n")
	for i, item := range m.menu.Items {
		prefix := "  "
		if i == m.menuCursor {
			prefix = "> "
		}
		b.WriteString(prefix + item.Label + "\n")
	}
	return menuStyle.Render(strings.TrimRight(b.String(), "\n"))
}

// columnWidths sizes each column to its widest header or page cell.
func (m Model) columnWidths() []int {
	widths := make([]int, len(m.columns))
	for i, name := range m.columns {
		widths[i] = lipgloss.Width(name) + 2
	}
	for _, row := range m.rows {
		for i, cell := range row.Cells {
			if i < len(widths) {
				widths[i] = max(widths[i], lipgloss.Width(cell))
			}
		}
	}
	for i := range widths {
		widths[i] = min(widths[i], maxCellWidth)
	}
	return widths
}

func checkbox(checked bool) string {
	if checked {
		return "[x]"
	}
	return "[ ]"
}

// pad truncates or right-pads s to width display cells.
func pad(s string, width int) string {
	w := lipgloss.Width(s)
	if w > width {
		r := []rune(s)
		for len(r) > 0 && lipgloss.Width(string(r))+1 > width {
			r = r[:len(r)-1]
		}
		return string(r) + "…"
	}
	return s + strings.Repeat(" ", width-w)
}
