package settings

import (
	"context"
	"net/http"

	"github.com/futig/scopeguard/internal/session"
	"github.com/futig/scopeguard/internal/view"
)

type AccountUsecase interface {
	UpdatePassword(ctx context.Context, state *session.State, current, newPassword, confirmation string) error
	DeleteAccount(ctx context.Context, state *session.State, code, password string) error
}

type PageRenderer interface {
	Page(w http.ResponseWriter, r *http.Request, status int, notices ...view.Notice)
}
