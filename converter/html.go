package converter

// html.go: HTML to timesheet text.
//
// The first <table> wins: each row with data cells becomes one line, cells
// joined with commas. Rows made only of <th> cells are headers and skipped.
// Pages without a table are converted to Markdown text and read line by
// line, which covers timesheets pasted into <p> or <pre> blocks.

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

func (c *formatConverter) convertHTML(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("parse html: %w", err)
	}

	table := doc.Find("table").First()
	if table.Length() == 0 {
		text, err := c.htmlConverter.ConvertString(html)
		if err != nil {
			return "", fmt.Errorf("convert html: %w", err)
		}
		return text, nil
	}

	var rows [][]string
	table.Find("tr").Each(func(_ int, tr *goquery.Selection) {
		if tr.Find("td").Length() == 0 {
			return
		}
		var cells []string
		tr.Find("th, td").Each(func(_ int, cell *goquery.Selection) {
			cells = append(cells, strings.TrimSpace(cell.Text()))
		})
		rows = append(rows, cells)
	})
	return joinRows(rows), nil
}

// joinRows writes one comma-joined line per row. Trailing empty cells are
// dropped so a lone name cell reads as a name line.
func joinRows(rows [][]string) string {
	var sb strings.Builder
	for _, row := range rows {
		end := len(row)
		for end > 0 && strings.TrimSpace(row[end-1]) == "" {
			end--
		}
		if end == 0 {
			continue
		}
		sb.WriteString(strings.Join(row[:end], ","))
		sb.WriteByte('\n')
	}
	return sb.String()
}
