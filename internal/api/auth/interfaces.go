package auth

import (
	"context"
	"net/http"

	"github.com/futig/scopeguard/internal/session"
	"github.com/futig/scopeguard/internal/view"
)

type AccountUsecase interface {
	Login(ctx context.Context, state *session.State, email, password string) error
	Signup(ctx context.Context, email, password string) error
	Logout(ctx context.Context, state *session.State)
}

type PageRenderer interface {
	Page(w http.ResponseWriter, r *http.Request, status int, notices ...view.Notice)
}
