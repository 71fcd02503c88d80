// Package extractor turns an uploaded invoice PDF into structured data:
// first the concatenated page text, then a fixed-schema extraction prompt
// sent to the generative model.
package extractor

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/ledongthuc/pdf"
)

// PDFText extracts document text with the pure-Go PDF reader.
type PDFText struct{}

// ExtractText returns the concatenated text of every page of a PDF stream.
func (PDFText) ExtractText(r io.Reader) (string, error) {
	// The PDF reader needs the stream size, so buffer it first.
	buf := new(bytes.Buffer)
	size, err := buf.ReadFrom(r)
	if err != nil {
		return "", fmt.Errorf("extractor: reading pdf stream: %w", err)
	}

	pdfReader, err := pdf.NewReader(bytes.NewReader(buf.Bytes()), size)
	if err != nil {
		return "", fmt.Errorf("extractor: opening pdf: %w", err)
	}

	var b strings.Builder
	for i := 1; i <= pdfReader.NumPage(); i++ {
		page := pdfReader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("extractor: extracting text from page %d: %w", i, err)
		}
		b.WriteString(text)
		b.WriteString("\n")
	}
	return b.String(), nil
}
