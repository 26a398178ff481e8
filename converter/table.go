package converter

// table.go: Markdown preview of what lands on the form.
//
// The MCP tool result and `timesheet parse` show the rendered line values
// (after placeholder and decimal rules) so a reader can check the form
// contents without opening the PDF.

import (
	"strconv"
	"strings"

	"github.com/Cortexa-LLC/mcp/src/timesheet/timesheet"
)

const minColWidth = 3 // a Markdown separator cell needs at least ---

var previewHeader = []string{"Line", "Date", "Time", "Hours"}

// PreviewTable renders the lines of doc that fit on the form, formatted per
// policy, followed by total and name rows.
func PreviewTable(doc timesheet.Document, p timesheet.Policy) string {
	rows := make([][]string, 0, timesheet.MaxLines+2)
	for i, e := range doc.Rendered() {
		rows = append(rows, []string{strconv.Itoa(i + 1), e.Date, p.TimeText(e), p.HoursText(e)})
	}
	rows = append(rows, []string{"", "", "Total", timesheet.FormatTotal(timesheet.TotalHours(doc.Entries))})
	if doc.HasName() {
		rows = append(rows, []string{"", "", "Name", doc.Name})
	}
	return RenderMarkdownTable(previewHeader, rows)
}

// RenderMarkdownTable renders header and rows as a GitHub-Flavored Markdown
// table with every column padded to its widest cell.
func RenderMarkdownTable(header []string, rows [][]string) string {
	cols := len(header)
	for _, row := range rows {
		cols = max(cols, len(row))
	}
	if cols == 0 {
		return ""
	}

	widths := make([]int, cols)
	for i := range widths {
		widths[i] = minColWidth
	}
	measure := func(row []string) {
		for i, v := range row {
			widths[i] = max(widths[i], len(escapePipes(v)))
		}
	}
	measure(header)
	for _, row := range rows {
		measure(row)
	}

	var sb strings.Builder
	writeRow := func(row []string) {
		sb.WriteString("|")
		for i := 0; i < cols; i++ {
			var v string
			if i < len(row) {
				v = escapePipes(row[i])
			}
			sb.WriteString(" " + v + strings.Repeat(" ", widths[i]-len(v)) + " |")
		}
		sb.WriteByte('\n')
	}

	writeRow(header)
	sb.WriteString("|")
	for _, w := range widths {
		sb.WriteString(" " + strings.Repeat("-", w) + " |")
	}
	sb.WriteByte('\n')
	for _, row := range rows {
		writeRow(row)
	}
	return sb.String()
}

// escapePipes replaces | characters in a cell value so they do not break the
// Markdown table syntax.
func escapePipes(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
