package preview

import (
	"bytes"
	"fmt"

	"github.com/ledongthuc/pdf"
)

// Document is a decoded paged PDF. Only what the preview needs is kept: the
// page count and each page's plain text.
type Document struct {
	pages []string
}

// DecodePDF decodes raw PDF bytes into a paged document. Malformed inputs
// return an error; the pdf reader panics on some corrupt files, so decode is
// wrapped in a recover.
func DecodePDF(data []byte) (doc *Document, err error) {
	defer func() {
		if r := recover(); r != nil {
			doc = nil
			err = fmt.Errorf("decode pdf: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}

	total := reader.NumPage()
	pages := make([]string, 0, total)
	for i := 1; i <= total; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			pages = append(pages, "")
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			// keep the page slot so numbering stays correct
			pages = append(pages, "")
			continue
		}
		pages = append(pages, text)
	}
	return &Document{pages: pages}, nil
}

// PageCount returns the number of pages.
func (d *Document) PageCount() int {
	return len(d.pages)
}

// PageText returns the plain text of page n (1-based), or "" out of range.
func (d *Document) PageText(n int) string {
	if n < 1 || n > len(d.pages) {
		return ""
	}
	return d.pages[n-1]
}
