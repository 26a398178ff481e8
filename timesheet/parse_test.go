package timesheet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_NameLineTakenFromLastLine(t *testing.T) {
	in := "2024-01-01, 9:00-17:00 , 8\n\n  \n2024-01-02,X,X\n  Jane Doe  \n"

	doc := Parse(in, DefaultPolicy())

	assert.Equal(t, "Jane Doe", doc.Name)
	require.Len(t, doc.Entries, 2)
	assert.Equal(t, Entry{Date: "2024-01-01", TimeRange: "9:00-17:00", Hours: "8"}, doc.Entries[0])
	assert.Equal(t, Entry{Date: "2024-01-02", TimeRange: "X", Hours: "X"}, doc.Entries[1])
}

func TestParse_CRLFInput(t *testing.T) {
	doc := Parse("2024-01-01,9-5,8\r\nJane\r\n", DefaultPolicy())

	assert.Equal(t, "Jane", doc.Name)
	require.Len(t, doc.Entries, 1)
	assert.Equal(t, "8", doc.Entries[0].Hours)
}

func TestParse_FixedNameVariantKeepsAllLines(t *testing.T) {
	p := DefaultPolicy()
	p.NameLine = false
	p.FixedName = " Ben Grifka "

	doc := Parse("a,b,1\nc,d,2\n", p)

	assert.Equal(t, "Ben Grifka", doc.Name)
	assert.Len(t, doc.Entries, 2)
}

func TestParse_ShortAndLongLines(t *testing.T) {
	p := DefaultPolicy()
	p.NameLine = false

	doc := Parse("2024-01-01,9-5\n2024-01-02,9-5,8,extra\nonly", p)

	require.Len(t, doc.Entries, 3)
	assert.Equal(t, Entry{Date: "2024-01-01", TimeRange: "9-5"}, doc.Entries[0])
	assert.Equal(t, Entry{Date: "2024-01-02", TimeRange: "9-5", Hours: "8"}, doc.Entries[1])
	assert.Equal(t, Entry{Date: "only"}, doc.Entries[2])
}

func TestParse_EmptyInput(t *testing.T) {
	doc := Parse(" \n\n", DefaultPolicy())

	assert.Empty(t, doc.Entries)
	assert.Empty(t, doc.Name)
}

func TestParse_MalformedLastLineBecomesName(t *testing.T) {
	// A stray data line at the end is indistinguishable from a name line.
	doc := Parse("a,b,1\nc,d,2", DefaultPolicy())

	assert.Equal(t, "c,d,2", doc.Name)
	assert.Len(t, doc.Entries, 1)
}

func TestDocument_RenderedAndDropped(t *testing.T) {
	doc := Document{Entries: make([]Entry, MaxLines+3)}
	assert.Len(t, doc.Rendered(), MaxLines)
	assert.Equal(t, 3, doc.Dropped())

	small := Document{Entries: make([]Entry, 2)}
	assert.Len(t, small.Rendered(), 2)
	assert.Zero(t, small.Dropped())
}
