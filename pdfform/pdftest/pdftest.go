// Package pdftest builds small PDF documents for tests.
package pdftest

import (
	"bytes"
	"fmt"
	"strings"
)

// Heading is the text drawn at the top of every generated page.
const Heading = "Timesheet"

// Form returns a one-page PDF with an AcroForm holding one single-line text
// field per name. With no names the document has no AcroForm at all.
func Form(names ...string) []byte {
	content := fmt.Sprintf("BT /Helv 14 Tf 72 770 Td (%s) Tj ET", Heading)

	objs := []string{
		"", // catalog, set below
		"<< /Type /Pages /Kids [3 0 R] /Count 1 >>",
		"", // page, set below
		"", // acroform, set below
		"<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica /Encoding /WinAnsiEncoding >>",
		fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(content), content),
	}

	const firstField = 7
	refs := make([]string, len(names))
	for i, name := range names {
		y := 740 - i*16
		refs[i] = fmt.Sprintf("%d 0 R", firstField+i)
		objs = append(objs, fmt.Sprintf(
			"<< /Type /Annot /Subtype /Widget /FT /Tx /T (%s) /Rect [72 %d 372 %d] /P 3 0 R /F 4 /DA (/Helv 10 Tf 0 g) >>",
			escape(name), y, y+14))
	}

	fonts := "/Resources << /Font << /Helv 5 0 R >> >>"
	if len(names) == 0 {
		objs[0] = "<< /Type /Catalog /Pages 2 0 R >>"
		objs[2] = "<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] " + fonts + " /Contents 6 0 R >>"
		objs[3] = "<< >>"
	} else {
		list := strings.Join(refs, " ")
		objs[0] = "<< /Type /Catalog /Pages 2 0 R /AcroForm 4 0 R >>"
		objs[2] = "<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] " + fonts +
			" /Contents 6 0 R /Annots [" + list + "] >>"
		objs[3] = "<< /Fields [" + list + "] /DR << /Font << /Helv 5 0 R >> >> /DA (/Helv 0 Tf 0 g) >>"
	}

	return assemble(objs)
}

// assemble writes objs as objects 1..n with a classic cross-reference table.
func assemble(objs []string) []byte {
	var b bytes.Buffer
	b.WriteString("%PDF-1.7\n%\xe2\xe3\xcf\xd3\n")

	offsets := make([]int, len(objs))
	for i, body := range objs {
		offsets[i] = b.Len()
		fmt.Fprintf(&b, "%d 0 obj\n%s\nendobj\n", i+1, body)
	}

	xref := b.Len()
	fmt.Fprintf(&b, "xref\n0 %d\n", len(objs)+1)
	b.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&b, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&b, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objs)+1, xref)
	return b.Bytes()
}

func escape(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `(`, `\(`, `)`, `\)`)
	return r.Replace(s)
}

// TimesheetFields returns the field names of the stock timesheet template:
// Date/Time/Hours 1..lines, Total and Name.
func TimesheetFields(lines int) []string {
	var names []string
	for n := 1; n <= lines; n++ {
		names = append(names,
			fmt.Sprintf("Date %d", n),
			fmt.Sprintf("Time %d", n),
			fmt.Sprintf("Hours %d", n))
	}
	return append(names, "Total", "Name")
}
