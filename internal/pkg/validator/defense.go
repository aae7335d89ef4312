package validator

import (
	"strings"

	"github.com/futig/scopeguard/internal/entity"
)

const MsgMissingInput = "Missing input data."

// ValidateDefenseInput requires a non-blank contract and client email
func (v *Validator) ValidateDefenseInput(contract, email string) error {
	if strings.TrimSpace(contract) == "" || strings.TrimSpace(email) == "" {
		return entity.NewValidationError(MsgMissingInput)
	}
	return nil
}
