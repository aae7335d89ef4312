package dashboard

import (
	"context"
	"net/http"

	"github.com/futig/scopeguard/internal/entity"
	"github.com/futig/scopeguard/internal/pkg/formatter"
	"github.com/futig/scopeguard/internal/session"
	"github.com/futig/scopeguard/internal/usecase/defense"
	"github.com/futig/scopeguard/internal/view"
)

type ChatUsecase interface {
	Load(ctx context.Context, state *session.State, chatID string) error
	StartNew(ctx context.Context, state *session.State)
}

type DefenseUsecase interface {
	Submit(ctx context.Context, state *session.State, in defense.SubmitInput) (*defense.SubmitResult, error)
}

type FormatterFactory interface {
	Create(format entity.ResultFormat) (formatter.Formatter, error)
}

type PageRenderer interface {
	Page(w http.ResponseWriter, r *http.Request, status int, notices ...view.Notice)
}
