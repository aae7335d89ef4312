package entity

import (
	"fmt"
	"time"
)

type Tone string

// Tone selects the register of the drafted reply
const (
	TonePolite       Tone = "Polite"
	ToneProfessional Tone = "Professional"
	ToneStrict       Tone = "Strict"
)

// DefaultTone is used when no tone or an unknown tone is submitted
const DefaultTone = ToneProfessional

// Tones lists the selector options in display order
var Tones = []Tone{TonePolite, ToneProfessional, ToneStrict}

func (t Tone) Validate() error {
	switch t {
	case TonePolite, ToneProfessional, ToneStrict:
		return nil
	default:
		return fmt.Errorf("unknown tone: %s", t)
	}
}

// ParseTone returns the tone named by s, or DefaultTone.
func ParseTone(s string) Tone {
	t := Tone(s)
	if t.Validate() != nil {
		return DefaultTone
	}
	return t
}

// Identity is the signed-in user. AccessToken authorizes store calls made on
// the user's behalf and is never rendered.
type Identity struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	AccessToken string `json:"-"`
}

// ChatRecord is one saved defense conversation
type ChatRecord struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	Title        string    `json:"title"`
	ContractText string    `json:"contract_text"`
	ClientEmail  string    `json:"client_email"`
	AIResponse   string    `json:"ai_response"`
	CreatedAt    time.Time `json:"created_at"`
}

// ChatSummary is the id/title projection shown in the recent activity list
type ChatSummary struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

type ResultFormat string

const (
	FormatMarkdown ResultFormat = "markdown"
	FormatPDF      ResultFormat = "pdf"
	FormatDOCX     ResultFormat = "docx"
)

func (f ResultFormat) IsValid() bool {
	switch f {
	case FormatMarkdown, FormatPDF, FormatDOCX:
		return true
	default:
		return false
	}
}
