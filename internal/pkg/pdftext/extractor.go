package pdftext

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/futig/scopeguard/internal/entity"
	"github.com/ledongthuc/pdf"
)

// Extractor turns PDF bytes into plain text, one page per line group
type Extractor struct{}

func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract reads the whole document and joins the plain text of its pages
// with "\n". Pages without content contribute nothing.
func (e *Extractor) Extract(r io.Reader) (text string, err error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("read pdf: %w", err)
	}

	// The parser panics on some malformed inputs
	defer func() {
		if rec := recover(); rec != nil {
			text = ""
			err = fmt.Errorf("%w: %v", entity.ErrInvalidDocument, rec)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("%w: %v", entity.ErrInvalidDocument, err)
	}

	pages := make([]string, 0, reader.NumPage())
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}

		content, err := page.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("%w: page %d: %v", entity.ErrInvalidDocument, i, err)
		}
		pages = append(pages, content)
	}

	return strings.Join(pages, "\n"), nil
}
