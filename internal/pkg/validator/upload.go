package validator

import (
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/futig/scopeguard/internal/entity"
)

const MsgPDFUnreadable = "Could not read the PDF."

// ValidatePDF checks the uploaded contract file
func (v *Validator) ValidatePDF(file *multipart.FileHeader) error {
	if file == nil {
		return entity.NewValidationError(MsgPDFUnreadable)
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if ext != ".pdf" {
		return entity.NewValidationError(MsgPDFUnreadable,
			fmt.Errorf("%w: %s (only .pdf files are allowed)", entity.ErrInvalidExtension, ext))
	}

	if file.Size > v.cfg.MaxPDFSize {
		return entity.NewValidationError(MsgPDFUnreadable,
			fmt.Errorf("%w: file '%s' is %d bytes (max %d)", entity.ErrFileTooLarge, file.Filename, file.Size, v.cfg.MaxPDFSize))
	}

	// Browsers send application/pdf; some clients send octet-stream
	contentType := file.Header.Get("Content-Type")
	if contentType != "" &&
		contentType != "application/pdf" &&
		contentType != "application/x-pdf" &&
		contentType != "application/octet-stream" {
		return entity.NewValidationError(MsgPDFUnreadable,
			fmt.Errorf("%w: content type '%s' (expected application/pdf)", entity.ErrInvalidExtension, contentType))
	}

	return nil
}
