package ui

import (
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/josephgoksu/tasktracker/models"
	"github.com/mattn/go-runewidth"
)

// Table renders rows in a compact fixed-width column layout.
type Table struct {
	Headers  []string
	Rows     [][]string
	MaxWidth int // Max width per column (0 = auto)
}

// ColumnWidths calculates column widths in terminal cells.
func (t *Table) ColumnWidths() []int {
	widths := make([]int, len(t.Headers))

	for i, h := range t.Headers {
		widths[i] = runewidth.StringWidth(h)
	}

	for _, row := range t.Rows {
		for i, cell := range row {
			if i < len(widths) {
				if w := runewidth.StringWidth(cell); w > widths[i] {
					widths[i] = w
				}
			}
		}
	}

	if t.MaxWidth > 0 {
		for i := range widths {
			if widths[i] > t.MaxWidth {
				widths[i] = t.MaxWidth
			}
		}
	}

	return widths
}

// Render outputs the table to a string. Styles are applied only when styled is true.
func (t *Table) Render(styled bool) string {
	if len(t.Headers) == 0 {
		return ""
	}

	p := painter{enabled: styled}
	widths := t.ColumnWidths()
	var sb strings.Builder

	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(ColorPrimary)

	var headerCells []string
	for i, h := range t.Headers {
		headerCells = append(headerCells, p.render(headerStyle, runewidth.FillRight(h, widths[i])))
	}
	sb.WriteString(strings.TrimRight(strings.Join(headerCells, "  "), " ") + "\n")

	var sepParts []string
	for _, w := range widths {
		sepParts = append(sepParts, strings.Repeat("─", w))
	}
	sb.WriteString(p.render(StyleSubtle, strings.Join(sepParts, "  ")) + "\n")

	for _, row := range t.Rows {
		var cells []string
		for i := range t.Headers {
			val := ""
			if i < len(row) {
				val = row[i]
			}
			val = runewidth.Truncate(val, widths[i], "…")
			cells = append(cells, p.render(StyleText, runewidth.FillRight(val, widths[i])))
		}
		sb.WriteString(strings.TrimRight(strings.Join(cells, "  "), " ") + "\n")
	}

	return sb.String()
}

// TaskTable builds a table of tasks in the given order.
func TaskTable(tasks []models.Task) *Table {
	table := &Table{
		Headers:  []string{"ID", "Priority", "Category", "Status", "Description"},
		MaxWidth: 60,
	}
	for _, t := range tasks {
		table.Rows = append(table.Rows, []string{t.ID, t.Priority, t.Category, string(t.Status), t.Description})
	}
	return table
}

// RenderTaskList writes tasks as a table, or emptyMsg when there are none.
func RenderTaskList(w io.Writer, tasks []models.Task, emptyMsg string) error {
	if len(tasks) == 0 {
		_, err := io.WriteString(w, emptyMsg+"\n")
		return err
	}
	_, err := io.WriteString(w, TaskTable(tasks).Render(IsTerminal(w)))
	return err
}
