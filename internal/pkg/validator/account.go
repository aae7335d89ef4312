package validator

import (
	"strings"
	"unicode/utf8"

	"github.com/futig/scopeguard/internal/entity"
)

const (
	MinPasswordLength = 6

	MsgFillAllFields     = "Please fill in all fields."
	MsgPasswordsMismatch = "New passwords do not match."
	MsgPasswordTooShort  = "Password too short."
)

// ValidateCredentials requires both login or signup fields
func (v *Validator) ValidateCredentials(email, password string) error {
	if strings.TrimSpace(email) == "" || password == "" {
		return entity.NewValidationError(MsgFillAllFields)
	}
	return nil
}

// ValidateNewPassword checks the confirmation first, then the length
func (v *Validator) ValidateNewPassword(newPassword, confirmation string) error {
	if newPassword != confirmation {
		return entity.NewValidationError(MsgPasswordsMismatch, entity.ErrInvalidParameter)
	}
	if utf8.RuneCountInString(newPassword) < MinPasswordLength {
		return entity.NewValidationError(MsgPasswordTooShort, entity.ErrInvalidParameter)
	}
	return nil
}

// VerificationCode confirms the simulated account deletion
const VerificationCode = "123456"

const MsgInvalidVerificationCode = "Invalid Verification Code."

// ValidateVerificationCode checks the deletion confirmation code
func (v *Validator) ValidateVerificationCode(code string) error {
	if strings.TrimSpace(code) != VerificationCode {
		return entity.NewValidationError(MsgInvalidVerificationCode, entity.ErrInvalidParameter)
	}
	return nil
}
