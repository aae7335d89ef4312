package validator

import (
	"github.com/futig/scopeguard/internal/config"
)

// Validator checks user input before any external call is made
type Validator struct {
	cfg config.FileUploadConfig
}

func NewValidator(cfg config.FileUploadConfig) *Validator {
	return &Validator{cfg: cfg}
}
