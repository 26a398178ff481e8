package converter

// Shared test helpers for the converter package.

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Cortexa-LLC/mcp/src/timesheet/config"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// newTestConverter returns a Converter with default configuration.
func newTestConverter(t *testing.T) *Converter {
	t.Helper()
	t.Setenv(config.EnvMaxFileBytes, "")
	t.Setenv(config.EnvTemplate, "")
	t.Setenv(config.EnvProfile, "")
	return NewConverter(config.Load())
}

// writeTempFile writes content to a temp file with the given name and returns
// its path. The file is cleaned up automatically when the test ends.
func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

// makeXLSX builds a minimal .xlsx file with one sheet and returns its path.
func makeXLSX(t *testing.T, sheet string, rows [][]any) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	// Rename the default sheet first so SetCellValue writes to the right name.
	if sheet != "Sheet1" {
		require.NoError(t, f.SetSheetName("Sheet1", sheet))
	}

	for r, row := range rows {
		for c, val := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			require.NoError(t, err)
			require.NoError(t, f.SetCellValue(sheet, cell, val))
		}
	}

	path := filepath.Join(t.TempDir(), "timesheet.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}
