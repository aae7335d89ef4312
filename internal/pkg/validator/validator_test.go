package validator

import (
	"mime/multipart"
	"net/textproto"
	"testing"

	"github.com/futig/scopeguard/internal/config"
	"github.com/futig/scopeguard/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestValidator() *Validator {
	return NewValidator(config.FileUploadConfig{MaxPDFSize: 1024, MaxUploadSize: 2048})
}

func fileHeader(name string, size int64, contentType string) *multipart.FileHeader {
	h := textproto.MIMEHeader{}
	if contentType != "" {
		h.Set("Content-Type", contentType)
	}
	return &multipart.FileHeader{Filename: name, Size: size, Header: h}
}

func TestValidatePDF(t *testing.T) {
	v := newTestValidator()

	tests := []struct {
		name    string
		file    *multipart.FileHeader
		wantErr error
	}{
		{"valid", fileHeader("contract.pdf", 512, "application/pdf"), nil},
		{"upper case extension", fileHeader("CONTRACT.PDF", 512, ""), nil},
		{"octet stream", fileHeader("contract.pdf", 512, "application/octet-stream"), nil},
		{"wrong extension", fileHeader("contract.docx", 512, "application/pdf"), entity.ErrInvalidExtension},
		{"too large", fileHeader("contract.pdf", 4096, "application/pdf"), entity.ErrFileTooLarge},
		{"wrong content type", fileHeader("contract.pdf", 512, "image/png"), entity.ErrInvalidExtension},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidatePDF(tt.file)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}

			require.ErrorIs(t, err, tt.wantErr)
			vErr, ok := entity.IsValidation(err)
			require.True(t, ok)
			assert.Equal(t, MsgPDFUnreadable, vErr.Message)
		})
	}
}

func TestValidateCredentials(t *testing.T) {
	v := newTestValidator()

	assert.NoError(t, v.ValidateCredentials("a@b.c", "secret"))

	for _, pair := range [][2]string{{"", "secret"}, {"a@b.c", ""}, {"  ", "secret"}} {
		err := v.ValidateCredentials(pair[0], pair[1])
		vErr, ok := entity.IsValidation(err)
		require.True(t, ok)
		assert.Equal(t, MsgFillAllFields, vErr.Message)
	}
}

func TestValidateNewPassword(t *testing.T) {
	v := newTestValidator()

	tests := []struct {
		name         string
		password     string
		confirmation string
		wantMsg      string
	}{
		{"ok", "secret1", "secret1", ""},
		{"exactly six", "abcdef", "abcdef", ""},
		{"mismatch", "secret1", "secret2", MsgPasswordsMismatch},
		{"mismatch wins over length", "abc", "abd", MsgPasswordsMismatch},
		{"too short", "abc", "abc", MsgPasswordTooShort},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateNewPassword(tt.password, tt.confirmation)
			if tt.wantMsg == "" {
				assert.NoError(t, err)
				return
			}
			vErr, ok := entity.IsValidation(err)
			require.True(t, ok)
			assert.Equal(t, tt.wantMsg, vErr.Message)
		})
	}
}

func TestValidateDefenseInput(t *testing.T) {
	v := newTestValidator()

	assert.NoError(t, v.ValidateDefenseInput("Scope: logo", "Can you add an app?"))
	assert.Error(t, v.ValidateDefenseInput("", "email"))
	assert.Error(t, v.ValidateDefenseInput("contract", ""))

	err := v.ValidateDefenseInput(" \n\t", "email")
	vErr, ok := entity.IsValidation(err)
	require.True(t, ok)
	assert.Equal(t, MsgMissingInput, vErr.Message)
	assert.ErrorIs(t, err, entity.ErrMissingField)
}

func TestValidateVerificationCode(t *testing.T) {
	v := newTestValidator()

	assert.NoError(t, v.ValidateVerificationCode("123456"))

	err := v.ValidateVerificationCode("654321")
	vErr, ok := entity.IsValidation(err)
	require.True(t, ok)
	assert.Equal(t, MsgInvalidVerificationCode, vErr.Message)
}
