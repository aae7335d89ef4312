package chat

import (
	"context"

	"github.com/futig/scopeguard/internal/entity"
)

// HistoryStore persists chat records on behalf of their owner
type HistoryStore interface {
	Insert(ctx context.Context, owner *entity.Identity, record *entity.ChatRecord) (*entity.ChatRecord, error)
	Update(ctx context.Context, owner *entity.Identity, record *entity.ChatRecord) error
	ListRecent(ctx context.Context, owner *entity.Identity, limit int) ([]entity.ChatSummary, error)
	Get(ctx context.Context, owner *entity.Identity, id string) (*entity.ChatRecord, error)
}
