package defense

import (
	"fmt"

	"github.com/futig/scopeguard/internal/entity"
)

const (
	contractContextTemplate = "CONTRACT RULES:\n%s"
	contractAcknowledgement = "I have memorized the contract rules."
	instructionTemplate     = "Client Email: '%s'\nTone: %s\nTask: Check for scope violation and draft a response. " +
		"Use Markdown formatting (bolding, lists) to make it clear."
)

// buildCompletionRequest pins the contract as context and asks for the draft
func buildCompletionRequest(contract, email string, tone entity.Tone) *entity.CompletionRequest {
	return &entity.CompletionRequest{
		SystemContext: fmt.Sprintf(contractContextTemplate, contract),
		Acknowledge:   contractAcknowledgement,
		Instruction:   fmt.Sprintf(instructionTemplate, email, tone),
	}
}
