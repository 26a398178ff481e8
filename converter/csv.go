package converter

import (
	"fmt"

	"github.com/Cortexa-LLC/mcp/src/timesheet/timesheet"
	"github.com/gocarina/gocsv"
)

// EncodeCSV writes entries as a CSV with a date,time_range,hours header.
// Unlike the input format, cells containing commas are quoted.
func EncodeCSV(entries []timesheet.Entry) (string, error) {
	if entries == nil {
		entries = []timesheet.Entry{}
	}
	out, err := gocsv.MarshalString(&entries)
	if err != nil {
		return "", fmt.Errorf("encode csv: %w", err)
	}
	return out, nil
}
