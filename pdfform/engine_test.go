package pdfform

import (
	"context"
	"testing"

	"github.com/Cortexa-LLC/mcp/src/timesheet/pdfform/pdftest"
	"github.com/Cortexa-LLC/mcp/src/timesheet/timesheet"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openStock(t *testing.T) *Form {
	t.Helper()
	f, err := NewEngine().Open(context.Background(), pdftest.Form(pdftest.TimesheetFields(timesheet.MaxLines)...))
	require.NoError(t, err)
	return f
}

func TestOpen_IndexesTextFields(t *testing.T) {
	f := openStock(t)

	assert.Equal(t, 1, f.PageCount())
	names := f.Fields()
	require.Len(t, names, timesheet.MaxLines*3+2)
	assert.Equal(t, "Date 1", names[0])
	assert.Contains(t, names, "Hours 14")
	assert.Contains(t, names, "Total")
	assert.Contains(t, names, "Name")
}

func TestOpen_NotAPDF(t *testing.T) {
	_, err := NewEngine().Open(context.Background(), []byte("this is not a PDF"))
	assert.Error(t, err)
}

func TestOpen_NoFormHasNoFields(t *testing.T) {
	tmpl := pdftest.Form()
	f, err := NewEngine().Open(context.Background(), tmpl)
	require.NoError(t, err)
	assert.Empty(t, f.Fields())

	err = f.SetField("Date 1", "2024-01-01")
	assert.ErrorIs(t, err, ErrFieldNotFound)

	out, err := f.Serialize()
	require.NoError(t, err)
	assert.Equal(t, tmpl, out)

	got, err := ReadFields(out)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestFields_StableNaturalOrder(t *testing.T) {
	want := openStock(t).Fields()
	require.Len(t, want, timesheet.MaxLines*3+2)
	assert.Equal(t, []string{"Date 1", "Date 2", "Date 3"}, want[:3])
	assert.Equal(t, "Date 14", want[timesheet.MaxLines-1])
	assert.Equal(t, "Hours 1", want[timesheet.MaxLines])

	for i := 0; i < 5; i++ {
		assert.Equal(t, want, openStock(t).Fields())
	}
}

func TestCompareNatural(t *testing.T) {
	assert.Negative(t, compareNatural("Date 2", "Date 10"))
	assert.Positive(t, compareNatural("Date 10", "Date 9"))
	assert.Negative(t, compareNatural("Date 14", "Hours 1"))
	assert.Zero(t, compareNatural("Time 007", "Time 7"))
	assert.Negative(t, compareNatural("Name", "Names"))
	assert.Negative(t, compareNatural("Name", "Total"))
}

func TestSetField_UnencodableValue(t *testing.T) {
	f := openStock(t)

	err := f.SetField("Name", "山田太郎")

	assert.ErrorIs(t, err, ErrUnencodable)
	assert.Contains(t, err.Error(), "Name")
	assert.NoError(t, f.SetField("Name", "Zoë Ångström"))
}

func TestFill_UnencodableNameIsPerField(t *testing.T) {
	form, err := NewEngine().Load(context.Background(), pdftest.Form(pdftest.TimesheetFields(timesheet.MaxLines)...))
	require.NoError(t, err)

	doc := timesheet.Parse("2024-01-01,9-5,8
山田太郎
", timesheet.DefaultPolicy())
	report := timesheet.Fill(form, doc, timesheet.DefaultPolicy(), nil)
	require.Len(t, report.Failures, 1)
	assert.Equal(t, "Name", report.Failures[0].Field)
	assert.ErrorIs(t, report.Failures[0].Err, ErrUnencodable)

	out, err := form.Serialize()
	require.NoError(t, err)

	got, err := ReadFields(out)
	require.NoError(t, err)
	assert.Equal(t, "2024-01-01", got["Date 1"])
	assert.Equal(t, "9-5", got["Time 1"])
	assert.Equal(t, "8.0", got["Hours 1"])
	assert.Equal(t, "8.00", got["Total"])
	assert.Empty(t, got["Name"])
}

func TestOpen_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewEngine().Open(ctx, pdftest.Form("Name"))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSetField_UnknownName(t *testing.T) {
	f := openStock(t)

	err := f.SetField("Date 15", "x")

	assert.ErrorIs(t, err, ErrFieldNotFound)
	assert.Contains(t, err.Error(), "Date 15")
}

func TestSerialize_WithoutWritesReturnsTemplate(t *testing.T) {
	tmpl := pdftest.Form("Name")
	f, err := NewEngine().Open(context.Background(), tmpl)
	require.NoError(t, err)

	out, err := f.Serialize()
	require.NoError(t, err)
	assert.Equal(t, tmpl, out)
}

func TestSerialize_RoundTrip(t *testing.T) {
	f := openStock(t)
	want := map[string]string{
		"Date 1":  "2024-01-01",
		"Time 1":  "9:00-17:00",
		"Hours 1": "8.0",
		"Time 2":  "---",
		"Total":   "8.00",
		"Name":    "Jane Doe",
	}
	for k, v := range want {
		require.NoError(t, f.SetField(k, v))
	}

	out, err := f.Serialize()
	require.NoError(t, err)

	got, err := ReadFields(out)
	require.NoError(t, err)
	for k, v := range want {
		assert.Equal(t, v, got[k], "field %s", k)
	}
	assert.Empty(t, got["Date 2"])
}

func TestEngine_ImplementsFormLoader(t *testing.T) {
	var loader timesheet.FormLoader = NewEngine()

	form, err := loader.Load(context.Background(), pdftest.Form(pdftest.TimesheetFields(timesheet.MaxLines)...))
	require.NoError(t, err)

	doc := timesheet.Parse("2024-01-01,9-5,8\n2024-01-02,X,X\nJane Doe\n", timesheet.DefaultPolicy())
	report := timesheet.Fill(form, doc, timesheet.DefaultPolicy(), nil)
	require.True(t, report.OK(), "%v", report.Err())

	out, err := form.Serialize()
	require.NoError(t, err)

	got, err := ReadFields(out)
	require.NoError(t, err)
	for _, w := range report.Written {
		assert.Equal(t, w.Value, got[w.Field], "field %s", w.Field)
	}
	assert.Equal(t, "8.00", got["Total"])
	assert.Equal(t, "---", got["Hours 2"])
}
