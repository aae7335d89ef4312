package view

import (
	"html/template"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/futig/scopeguard/internal/entity"
	"github.com/futig/scopeguard/internal/pkg/formatter"
	"github.com/futig/scopeguard/internal/session"
)

type Screen string

const (
	ScreenLogin     Screen = "login"
	ScreenDashboard Screen = "dashboard"
)

type NoticeLevel string

const (
	LevelInfo    NoticeLevel = "info"
	LevelSuccess NoticeLevel = "success"
	LevelWarning NoticeLevel = "warning"
	LevelError   NoticeLevel = "error"
)

type Notice struct {
	Level   NoticeLevel `json:"level"`
	Message string      `json:"message"`
}

func Success(msg string) Notice { return Notice{Level: LevelSuccess, Message: msg} }
func Warning(msg string) Notice { return Notice{Level: LevelWarning, Message: msg} }
func Error(msg string) Notice { return Notice{Level: LevelError, Message: msg} }

type User struct {
	Email  string `json:"email"`
	Avatar string `json:"avatar"`
}

type HistoryItem struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	DisplayTitle string `json:"display_title"`
	Active       bool   `json:"active"`
}

type ToneOption struct {
	Value    entity.Tone `json:"value"`
	Selected bool        `json:"selected"`
}

type Form struct {
	Contract string      `json:"contract"`
	Email    string      `json:"email"`
	Tone     entity.Tone `json:"tone"`
}

// Page is everything a client needs to draw the current screen
type Page struct {
	Screen       Screen        `json:"screen"`
	User         *User         `json:"user,omitempty"`
	History      []HistoryItem `json:"history"`
	Form         Form          `json:"form"`
	Tones        []ToneOption  `json:"tones"`
	ActiveChatID string        `json:"active_chat_id,omitempty"`
	Response     string        `json:"response,omitempty"`
	ResponseHTML template.HTML `json:"response_html,omitempty"`
	Notices      []Notice      `json:"notices"`
}

// HasResponse is used by the templates
func (p *Page) HasResponse() bool {
	return p.Response != ""
}

// Build maps the session state to a page. Without an identity only the
// login screen and the notices are filled in.
func Build(state *session.State, history []entity.ChatSummary, notices ...Notice) *Page {
	page := &Page{
		Screen:  ScreenLogin,
		History: []HistoryItem{},
		Tones:   []ToneOption{},
		Notices: append([]Notice{}, notices...),
	}

	if state == nil || !state.IsAuthenticated() {
		return page
	}

	page.Screen = ScreenDashboard
	page.User = &User{
		Email:  state.Identity.Email,
		Avatar: AvatarLetter(state.Identity.Email),
	}

	for _, item := range history {
		page.History = append(page.History, HistoryItem{
			ID:           item.ID,
			Title:        item.Title,
			DisplayTitle: DisplayTitle(item.Title),
			Active:       item.ID != "" && item.ID == state.ActiveChatID,
		})
	}

	tone := entity.ParseTone(string(state.Tone))
	page.Form = Form{
		Contract: state.ContractText,
		Email:    state.EmailText,
		Tone:     tone,
	}
	for _, t := range entity.Tones {
		page.Tones = append(page.Tones, ToneOption{Value: t, Selected: t == tone})
	}

	page.ActiveChatID = state.ActiveChatID
	if state.HasResponse() {
		page.Response = state.LastResponse
		page.ResponseHTML = responseHTML(state.LastResponse)
	}

	return page
}

const (
	sidebarTitleRunes = 18
	sidebarEllipsis   = ".."
	defaultAvatar     = "U"
)

// DisplayTitle shortens a chat title for the sidebar
func DisplayTitle(title string) string {
	runes := []rune(title)
	if len(runes) <= sidebarTitleRunes {
		return title
	}
	return string(runes[:sidebarTitleRunes]) + sidebarEllipsis
}

// AvatarLetter is the upper-cased first letter of the email
func AvatarLetter(email string) string {
	email = strings.TrimSpace(email)
	if email == "" {
		return defaultAvatar
	}
	r, _ := utf8.DecodeRuneInString(email)
	return string(unicode.ToUpper(r))
}

func responseHTML(markdown string) template.HTML {
	rendered, err := formatter.HTML(markdown)
	if err != nil {
		return template.HTML("<pre>" + template.HTMLEscapeString(markdown) + "</pre>")
	}
	// goldmark omits raw HTML from the source
	return template.HTML(rendered)
}
