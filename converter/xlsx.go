package converter

// xlsx.go: XLSX to timesheet text using the excelize library.
// Only the first sheet is read. Each row becomes one comma-joined line via
// the shared joinRows function from html.go.

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

func convertXLSX(filePath string) (string, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return "", fmt.Errorf("open xlsx %s: %w", filePath, err)
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return "", nil
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return "", fmt.Errorf("read sheet %q in %s: %w", sheets[0], filePath, err)
	}
	return joinRows(rows), nil
}
