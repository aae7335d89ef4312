package session

import (
	"github.com/futig/scopeguard/internal/entity"
)

// State is everything one browser session remembers between actions.
// The zero value is not ready for use; call NewState.
type State struct {
	// Identity is nil until a successful sign-in
	Identity *entity.Identity `json:"identity,omitempty"`

	// ActiveChatID is empty while the conversation is unsaved
	ActiveChatID string `json:"active_chat_id,omitempty"`

	ContractText string `json:"contract_text"`
	EmailText    string `json:"email_text"`

	// LastResponse is empty until a draft has been generated or loaded
	LastResponse string `json:"last_response,omitempty"`

	Tone entity.Tone `json:"tone"`
}

// NewState returns the state of a fresh session
func NewState() *State {
	return &State{Tone: entity.DefaultTone}
}

func (s *State) IsAuthenticated() bool {
	return s.Identity != nil
}

func (s *State) HasResponse() bool {
	return s.LastResponse != ""
}

// SignIn stores the identity. Chat fields are left as they are.
func (s *State) SignIn(identity *entity.Identity) {
	s.Identity = identity
}

// ClearChat forgets the active conversation and the form contents.
// Identity and tone survive.
func (s *State) ClearChat() {
	s.ActiveChatID = ""
	s.ContractText = ""
	s.EmailText = ""
	s.LastResponse = ""
}

// Reset returns the state to what NewState produces.
func (s *State) Reset() {
	*s = *NewState()
}

// LoadChat overwrites the conversation fields with the record's values.
func (s *State) LoadChat(record *entity.ChatRecord) {
	s.ActiveChatID = record.ID
	s.ContractText = record.ContractText
	s.EmailText = record.ClientEmail
	s.LastResponse = record.AIResponse
}
