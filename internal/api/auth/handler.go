package auth

import (
	"net/http"

	"github.com/futig/scopeguard/internal/api/render"
	"github.com/futig/scopeguard/internal/entity"
	"github.com/futig/scopeguard/internal/pkg/logger"
	"github.com/futig/scopeguard/internal/session"
	"github.com/futig/scopeguard/internal/usecase/account"
	"github.com/futig/scopeguard/internal/view"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

type Handler struct {
	usecase  AccountUsecase
	renderer PageRenderer
}

func NewHandler(usecase AccountUsecase, renderer PageRenderer) *Handler {
	return &Handler{
		usecase:  usecase,
		renderer: renderer,
	}
}

// Index handles GET / - Render the current screen
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	h.renderer.Page(w, r, http.StatusOK)
}

// Login handles POST /login - Sign in with email and password
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "Login")
	r = r.WithContext(ctx)

	state, ok := session.StateFromContext(ctx)
	if !ok {
		h.renderer.Page(w, r, http.StatusInternalServerError, view.Error(account.MsgLoginFailed))
		return
	}

	if err := r.ParseForm(); err != nil {
		ctxzap.Warn(ctx, "failed to parse login form", zap.Error(err))
		h.renderer.Page(w, r, http.StatusBadRequest, view.Error(account.MsgLoginFailed))
		return
	}

	err := h.usecase.Login(ctx, state, r.PostFormValue("email"), r.PostFormValue("password"))
	if err != nil {
		if vErr, ok := entity.IsValidation(err); ok {
			h.renderer.Page(w, r, render.StatusFor(err), view.Warning(vErr.Message))
			return
		}
		h.renderer.Page(w, r, http.StatusUnauthorized, view.Error(account.MsgLoginFailed))
		return
	}

	// A signed-in session never keeps its anonymous id
	session.Rotate(ctx)

	h.renderer.Page(w, r.WithContext(logger.WithUser(ctx, state.Identity.ID)), http.StatusOK)
}

// Signup handles POST /signup - Create an account without signing in
func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "Signup")
	r = r.WithContext(ctx)

	if err := r.ParseForm(); err != nil {
		ctxzap.Warn(ctx, "failed to parse signup form", zap.Error(err))
		h.renderer.Page(w, r, http.StatusBadRequest, view.Error(account.MsgSignupFailed))
		return
	}

	err := h.usecase.Signup(ctx, r.PostFormValue("email"), r.PostFormValue("password"))
	if err != nil {
		if vErr, ok := entity.IsValidation(err); ok {
			h.renderer.Page(w, r, render.StatusFor(err), view.Warning(vErr.Message))
			return
		}
		h.renderer.Page(w, r, http.StatusBadRequest, view.Error(account.MsgSignupFailed))
		return
	}

	h.renderer.Page(w, r, http.StatusOK, view.Success(account.MsgSignupSucceeded))
}

// Logout handles POST /logout - Sign out and reset the session
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "Logout")
	r = r.WithContext(ctx)

	if state, ok := session.StateFromContext(ctx); ok {
		h.usecase.Logout(ctx, state)
		session.Rotate(ctx)
	}

	h.renderer.Page(w, r, http.StatusOK)
}
