package formatter

import (
	"bytes"
	"testing"

	"github.com/futig/scopeguard/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFactoryCreate(t *testing.T) {
	f := NewFactory()

	tests := []struct {
		format    entity.ResultFormat
		extension string
	}{
		{entity.FormatMarkdown, ".md"},
		{entity.FormatPDF, ".pdf"},
		{entity.FormatDOCX, ".docx"},
	}

	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			fm, err := f.Create(tt.format)
			require.NoError(t, err)
			assert.Equal(t, tt.extension, fm.FileExtension())
			assert.NotEmpty(t, fm.ContentType())
		})
	}

	_, err := f.Create("html")
	assert.ErrorIs(t, err, entity.ErrInvalidFormat)
}

func TestMarkdownFormatter(t *testing.T) {
	out, err := NewMarkdownFormatter().Format("  **Scope:** logo only\n")
	require.NoError(t, err)
	assert.Equal(t, "# Scope Defense Draft\n\n**Scope:** logo only\n", string(out))
}

func TestPDFFormatter(t *testing.T) {
	out, err := NewPDFFormatter().Format("Dear client,\n\n- logo design is **in scope**\n- an app is not")
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestHTML(t *testing.T) {
	out, err := HTML("**Out of scope**\n\n<script>alert(1)</script>\n\n- one\n- two")
	require.NoError(t, err)

	assert.Contains(t, out, "<strong>Out of scope</strong>")
	assert.Contains(t, out, "<li>one</li>")
	assert.NotContains(t, out, "<script>")
}

func TestHTMLEmpty(t *testing.T) {
	out, err := HTML("   \n")
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestPlainText(t *testing.T) {
	out, err := PlainText("# Title\n\nSome **bold** text.\n\n- one\n- two")
	require.NoError(t, err)
	assert.Equal(t, "Title\n\nSome bold text.\n\n- one\n- two", out)
}
