package converter

// pdf.go: template inspection via pure-Go text-layer extraction.
//
// Uses github.com/ledongthuc/pdf for parsing. It cannot see AcroForm fields
// (pdfform lists those); it reports page count and the printed text of page
// one so a user can tell which template they are pointing at.

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// PDFInfo describes a template document.
type PDFInfo struct {
	Pages     int
	FirstPage string
}

// InspectPDF reads page count and the page-one text layer of data.
func InspectPDF(data []byte) (*PDFInfo, error) {
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}

	info := &PDFInfo{Pages: r.NumPage()}
	if info.Pages == 0 {
		return info, nil
	}

	p := r.Page(1)
	if p.V.IsNull() {
		return info, nil
	}
	fonts := make(map[string]*pdf.Font)
	for _, name := range p.Fonts() {
		f := p.Font(name)
		fonts[name] = &f
	}
	text, err := p.GetPlainText(fonts)
	if err != nil {
		return nil, fmt.Errorf("read pdf page 1: %w", err)
	}
	info.FirstPage = strings.TrimSpace(text)
	return info, nil
}
