package defense

import (
	"context"
	"io"

	"github.com/futig/scopeguard/internal/entity"
	"github.com/futig/scopeguard/internal/session"
)

type CompletionConnector interface {
	Complete(ctx context.Context, req *entity.CompletionRequest) (string, error)
}

type DocumentExtractor interface {
	Extract(r io.Reader) (string, error)
}

// ChatSaver persists the generated draft into the active conversation
type ChatSaver interface {
	Save(ctx context.Context, state *session.State, title, contract, email, response string) error
}
