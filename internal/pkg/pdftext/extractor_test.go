package pdftext

import (
	"bytes"
	"strings"
	"testing"

	"github.com/futig/scopeguard/internal/entity"
	"github.com/jung-kurt/gofpdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildPDF(t *testing.T, pages ...string) []byte {
	t.Helper()

	doc := gofpdf.New("P", "mm", "A4", "")
	doc.SetCompression(false)
	for _, text := range pages {
		doc.AddPage()
		doc.SetFont("Arial", "", 12)
		doc.Cell(0, 10, text)
	}

	var buf bytes.Buffer
	require.NoError(t, doc.Output(&buf))
	return buf.Bytes()
}

func TestExtract(t *testing.T) {
	data := buildPDF(t, "Scope: logo design only.")

	text, err := NewExtractor().Extract(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Contains(t, text, "Scope: logo design only.")
}

func TestExtractJoinsPages(t *testing.T) {
	data := buildPDF(t, "First page", "Second page")

	text, err := NewExtractor().Extract(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Contains(t, text, "First page")
	assert.Contains(t, text, "Second page")
	assert.Less(t, strings.Index(text, "First page"), strings.Index(text, "Second page"))
}

func TestExtractRejectsGarbage(t *testing.T) {
	_, err := NewExtractor().Extract(strings.NewReader("this is not a pdf"))
	assert.ErrorIs(t, err, entity.ErrInvalidDocument)
}
