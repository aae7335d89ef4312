package formatter

import (
	"bytes"
	"os"

	"github.com/jung-kurt/gofpdf"
)

const (
	pdfContentType   = "application/pdf"
	pdfFileExtension = ".pdf"

	// pdfFontName is the internal name used by gofpdf
	// for the UTF-8 capable font.
	pdfFontName = "DejaVuSans"

	// The container image copies fonts to /app/ttf.
	pdfFontRuntimePath = "ttf/DejaVuSans.ttf"

	// Source-relative path for `go run` from the repo root.
	pdfFontSourcePath = "internal/pkg/formatter/ttf/DejaVuSans.ttf"
)

type PDFFormatter struct{}

func NewPDFFormatter() *PDFFormatter {
	return &PDFFormatter{}
}

// resolveFontPath finds DejaVuSans in the runtime or the source layout.
func resolveFontPath() string {
	if _, err := os.Stat(pdfFontRuntimePath); err == nil {
		return pdfFontRuntimePath
	}

	if _, err := os.Stat(pdfFontSourcePath); err == nil {
		return pdfFontSourcePath
	}

	return ""
}

// Format writes the draft as plain text; markdown markup is flattened.
func (mf *PDFFormatter) Format(text string) ([]byte, error) {
	body, err := PlainText(text)
	if err != nil {
		return nil, err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	fontName := "Arial"
	translate := func(s string) string { return s }
	if fontPath := resolveFontPath(); fontPath != "" {
		// Register regular and bold styles under the same family name
		pdf.AddUTF8Font(pdfFontName, "", fontPath)
		pdf.AddUTF8Font(pdfFontName, "B", fontPath)
		fontName = pdfFontName
	} else {
		// Core fonts are cp1252
		translate = pdf.UnicodeTranslatorFromDescriptor("")
	}

	pdf.SetFont(fontName, "B", 20)
	pdf.Cell(0, 10, translate(baseTitle))
	pdf.Ln(12)

	pdf.SetFont(fontName, "", 12)
	_, lineHeight := pdf.GetFontSize()
	pdf.MultiCell(0, lineHeight*1.5, translate(body), "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (mf *PDFFormatter) ContentType() string {
	return pdfContentType
}

func (mf *PDFFormatter) FileExtension() string {
	return pdfFileExtension
}
