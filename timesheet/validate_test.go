package timesheet

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_AcceptsWellFormedDocument(t *testing.T) {
	doc := Document{
		Name: "Jane Doe",
		Entries: []Entry{
			{Date: "2024-01-01", TimeRange: "9:00-17:00", Hours: "8"},
			{Date: "2024-01-02", TimeRange: "X", Hours: "X"},
			{Date: "2024-01-03", TimeRange: "9-12:30", Hours: "3.5"},
		},
	}
	assert.Empty(t, Validate(doc, DefaultPolicy()))
}

func TestValidate_RejectsMissingFields(t *testing.T) {
	tests := []struct {
		name  string
		entry Entry
		want  string
	}{
		{"empty date", Entry{TimeRange: "9-5", Hours: "8"}, "line 1: date is required"},
		{"empty time", Entry{Date: "d", Hours: "8"}, "line 1: time range is required"},
		{"empty hours", Entry{Date: "d", TimeRange: "9-5"}, "line 1: hours is required"},
		{"non numeric hours", Entry{Date: "d", TimeRange: "9-5", Hours: "eight"}, `line 1: hours "eight" is not a number`},
		{"infinite hours", Entry{Date: "d", TimeRange: "9-5", Hours: "Infinity"}, "is not a number"},
		{"lowercase sentinel", Entry{Date: "d", TimeRange: "9-5", Hours: "x"}, "is not a number"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := Validate(Document{Name: "N", Entries: []Entry{tt.entry}}, DefaultPolicy())
			require.Len(t, errs, 1)
			assert.Contains(t, errs[0].Error(), tt.want)
		})
	}
}

func TestValidate_LenientNumericPrefix(t *testing.T) {
	doc := Document{Name: "N", Entries: []Entry{{Date: "d", TimeRange: "t", Hours: "12abc"}}}
	assert.Empty(t, Validate(doc, DefaultPolicy()))
}

func TestValidate_NameRequiredOnlyForNameLine(t *testing.T) {
	doc := Document{Name: "   ", Entries: []Entry{{Date: "d", TimeRange: "t", Hours: "1"}}}

	errs := Validate(doc, DefaultPolicy())
	require.Len(t, errs, 1)
	assert.Equal(t, "name line is required", errs[0].Error())

	p := DefaultPolicy()
	p.NameLine = false
	assert.Empty(t, Validate(doc, p))
}

func TestValidate_ReportsEveryProblem(t *testing.T) {
	doc := Parse("a,,\n,b,1\nc,d,2\n", DefaultPolicy())

	errs := Validate(doc, DefaultPolicy())

	msg := JoinProblems(errs)
	assert.Len(t, errs, 3)
	assert.Equal(t, 3, strings.Count(msg, "\n")+1)
	assert.Contains(t, msg, "line 1: time range is required")
	assert.Contains(t, msg, "line 1: hours is required")
	assert.Contains(t, msg, "line 2: date is required")
}

func TestValidate_AcceptsEntriesPastCapacity(t *testing.T) {
	var entries []Entry
	for i := 0; i < MaxLines+5; i++ {
		entries = append(entries, Entry{Date: "d", TimeRange: "t", Hours: "1"})
	}
	assert.Empty(t, Validate(Document{Name: "N", Entries: entries}, DefaultPolicy()))
}
