package entity

import (
	"bytes"
	"encoding/json"
	"time"
)

// SupabaseCredentials is the GoTrue password grant / signup body
type SupabaseCredentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type SupabaseUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

type SupabaseTokenResponse struct {
	AccessToken  string        `json:"access_token"`
	TokenType    string        `json:"token_type"`
	ExpiresIn    int           `json:"expires_in"`
	RefreshToken string        `json:"refresh_token"`
	User         *SupabaseUser `json:"user"`
}

// SupabaseSignupResponse is returned by /auth/v1/signup. With email
// confirmation enabled the user object is returned at the top level.
type SupabaseSignupResponse struct {
	ID          string        `json:"id"`
	Email       string        `json:"email"`
	AccessToken string        `json:"access_token,omitempty"`
	User        *SupabaseUser `json:"user,omitempty"`
}

type SupabaseUpdateUserRequest struct {
	Password string `json:"password"`
}

// ChatHistoryRow mirrors the chat_history table columns
type ChatHistoryRow struct {
	ID           RowID      `json:"id,omitempty"`
	UserID       string     `json:"user_id,omitempty"`
	Title        string     `json:"title"`
	ContractText string     `json:"contract_text"`
	ClientEmail  string     `json:"client_email"`
	AIResponse   string     `json:"ai_response"`
	CreatedAt    *time.Time `json:"created_at,omitempty"`
}

// RowID accepts both bigint and uuid primary keys
type RowID string

func (id *RowID) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = RowID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*id = RowID(n.String())
	return nil
}
