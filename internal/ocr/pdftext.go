package ocr

import (
	"bytes"
	"fmt"

	"github.com/ledongthuc/pdf"
)

// PDFTextLayer reads the embedded text layer of a PDF. Born-digital forms
// carry real text; using it directly is both faster and more accurate than
// recognizing a rendering of the same page.
type PDFTextLayer struct {
	reader *pdf.Reader
}

// NewPDFTextLayer parses the document once. Returns an error for documents
// the PDF reader cannot open; an open document with no text layer is not an
// error, its pages just read back empty.
func NewPDFTextLayer(data []byte) (*PDFTextLayer, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF for text extraction: %w", err)
	}
	return &PDFTextLayer{reader: reader}, nil
}

// PageCount implements TextLayer.
func (l *PDFTextLayer) PageCount() int {
	return l.reader.NumPage()
}

// PageText implements TextLayer. page is 1-based.
func (l *PDFTextLayer) PageText(page int) (string, error) {
	if page < 1 || page > l.reader.NumPage() {
		return "", fmt.Errorf("page %d out of range 1..%d", page, l.reader.NumPage())
	}
	p := l.reader.Page(page)
	if p.V.IsNull() {
		return "", nil
	}
	text, err := p.GetPlainText(nil)
	if err != nil {
		return "", fmt.Errorf("failed to read text layer of page %d: %w", page, err)
	}
	return text, nil
}
