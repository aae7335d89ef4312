package render

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"strings"

	"github.com/futig/scopeguard/internal/entity"
	"github.com/futig/scopeguard/internal/pkg/response"
	"github.com/futig/scopeguard/internal/session"
	"github.com/futig/scopeguard/internal/usecase/chat"
	"github.com/futig/scopeguard/internal/view"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

//go:embed templates/*.html
var templateFiles embed.FS

type HistoryLister interface {
	ListRecent(ctx context.Context, identity *entity.Identity, limit int) []entity.ChatSummary
}

// Renderer draws the page of the request's session as HTML or JSON
type Renderer struct {
	templates *template.Template
	history   HistoryLister
}

func NewRenderer(history HistoryLister) (*Renderer, error) {
	tmpl, err := template.New("").ParseFS(templateFiles, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	return &Renderer{
		templates: tmpl,
		history:   history,
	}, nil
}

// Page builds the view of the current session state and writes it
func (rr *Renderer) Page(w http.ResponseWriter, r *http.Request, status int, notices ...view.Notice) {
	ctx := r.Context()

	state, _ := session.StateFromContext(ctx)

	var history []entity.ChatSummary
	if state != nil && state.IsAuthenticated() {
		history = rr.history.ListRecent(ctx, state.Identity, chat.RecentLimit)
	}

	page := view.Build(state, history, notices...)

	if WantsJSON(r) {
		response.JSON(w, status, page)
		return
	}

	var buf bytes.Buffer
	if err := rr.templates.ExecuteTemplate(&buf, "page.html", page); err != nil {
		ctxzap.Error(ctx, "failed to render page", zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

// Denied renders the login screen with 401 for gated routes
func (rr *Renderer) Denied() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rr.Page(w, r, http.StatusUnauthorized)
	})
}

// WantsJSON reports whether the client asked for the JSON view
func WantsJSON(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}
