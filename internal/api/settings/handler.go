package settings

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

// UpdatePassword handles POST /settings/password - Change the password
func (h *Handler) UpdatePassword(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "UpdatePassword")
	r = r.WithContext(ctx)

	state, ok := session.StateFromContext(ctx)
	if !ok {
		h.renderer.Page(w, r, http.StatusUnauthorized)
		return
	}

	if err := r.ParseForm(); err != nil {
		ctxzap.Warn(ctx, "failed to parse password form", zap.Error(err))
		h.renderer.Page(w, r, http.StatusBadRequest, view.Error(account.MsgIncorrectCurrentPassword))
		return
	}

	err := h.usecase.UpdatePassword(ctx, state,
		r.PostFormValue("current_password"),
		r.PostFormValue("new_password"),
		r.PostFormValue("confirm_password"),
	)
	if err != nil {
		if vErr, ok := entity.IsValidation(err); ok {
			h.renderer.Page(w, r, render.StatusFor(err), view.Error(vErr.Message))
			return
		}
		h.renderer.Page(w, r, http.StatusUnauthorized, view.Error(account.MsgIncorrectCurrentPassword))
		return
	}

	h.renderer.Page(w, r, http.StatusOK, view.Success(account.MsgPasswordUpdated))
}

// DeleteAccount handles POST /settings/delete - Simulated account deletion
func (h *Handler) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "DeleteAccount")
	r = r.WithContext(ctx)

	state, ok := session.StateFromContext(ctx)
	if !ok {
		h.renderer.Page(w, r, http.StatusUnauthorized)
		return
	}

	if err := r.ParseForm(); err != nil {
		ctxzap.Warn(ctx, "failed to parse delete form", zap.Error(err))
		h.renderer.Page(w, r, http.StatusBadRequest, view.Error(account.MsgIncorrectPassword))
		return
	}

	err := h.usecase.DeleteAccount(ctx, state, r.PostFormValue("code"), r.PostFormValue("password"))
	if err != nil {
		if vErr, ok := entity.IsValidation(err); ok {
			h.renderer.Page(w, r, render.StatusFor(err), view.Error(vErr.Message))
			return
		}
		h.renderer.Page(w, r, http.StatusUnauthorized, view.Error(account.MsgIncorrectPassword))
		return
	}

	session.Rotate(ctx)

	// State is reset, so this renders the login screen
	h.renderer.Page(w, r, http.StatusOK, view.Success(account.MsgAccountDeleted))
}
