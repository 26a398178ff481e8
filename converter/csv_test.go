package converter

import (
	"testing"

	"github.com/Cortexa-LLC/mcp/src/timesheet/timesheet"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeCSV(t *testing.T) {
	out, err := EncodeCSV([]timesheet.Entry{
		{Date: "2024-01-01", TimeRange: "9:00-17:00", Hours: "8"},
		{Date: "Jan 2, 2024", TimeRange: "X", Hours: "X"},
	})
	require.NoError(t, err)
	assert.Equal(t, "date,time_range,hours\n2024-01-01,9:00-17:00,8\n\"Jan 2, 2024\",X,X\n", out)
}
