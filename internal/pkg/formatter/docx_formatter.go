package formatter

import (
	"bytes"
	"strings"

	"github.com/unidoc/unioffice/document"
)

const (
	docxContentType   = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	docxFileExtension = ".docx"
)

type DOCXFormatter struct{}

func NewDOCXFormatter() *DOCXFormatter {
	return &DOCXFormatter{}
}

// Format writes one paragraph per line of the flattened draft.
func (mf *DOCXFormatter) Format(text string) ([]byte, error) {
	body, err := PlainText(text)
	if err != nil {
		return nil, err
	}

	doc := document.New()
	defer doc.Close()

	titlePar := doc.AddParagraph()
	titlePar.SetStyle("Heading1")
	titleRun := titlePar.AddRun()
	titleRun.AddText(baseTitle)

	doc.AddParagraph()

	for _, line := range strings.Split(body, "\n") {
		par := doc.AddParagraph()
		if line != "" {
			par.AddRun().AddText(line)
		}
	}

	var buf bytes.Buffer
	if err := doc.Save(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (mf *DOCXFormatter) ContentType() string {
	return docxContentType
}

func (mf *DOCXFormatter) FileExtension() string {
	return docxFileExtension
}
