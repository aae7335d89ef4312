package chat

import (
	"context"
	"fmt"

	"github.com/futig/scopeguard/internal/entity"
	"github.com/futig/scopeguard/internal/session"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// RecentLimit is the number of conversations shown in the sidebar
const RecentLimit = 10

// ChatUsecase manages the lifecycle of saved conversations
type ChatUsecase struct {
	store  HistoryStore
	logger *zap.Logger
}

// NewUsecase creates a new chat use case
func NewUsecase(store HistoryStore, logger *zap.Logger) *ChatUsecase {
	return &ChatUsecase{
		store:  store,
		logger: logger,
	}
}

// ListRecent returns the newest conversations of the user. Store failures
// are logged and produce an empty list.
func (uc *ChatUsecase) ListRecent(ctx context.Context, identity *entity.Identity, limit int) []entity.ChatSummary {
	if identity == nil {
		return []entity.ChatSummary{}
	}
	if limit <= 0 {
		limit = RecentLimit
	}

	summaries, err := uc.store.ListRecent(ctx, identity, limit)
	if err != nil {
		ctxzap.Error(ctx, "failed to list chat history", zap.Error(err))
		return []entity.ChatSummary{}
	}

	return summaries
}

// Load puts a saved conversation into the session state. On any failure the
// state is left untouched.
func (uc *ChatUsecase) Load(ctx context.Context, state *session.State, chatID string) error {
	if !state.IsAuthenticated() {
		return entity.ErrUnauthenticated
	}

	record, err := uc.store.Get(ctx, state.Identity, chatID)
	if err != nil {
		ctxzap.Warn(ctx, "failed to load chat", zap.String("chat_id", chatID), zap.Error(err))
		return fmt.Errorf("load chat %s: %w", chatID, err)
	}

	state.LoadChat(record)

	ctxzap.Info(ctx, "chat loaded", zap.String("chat_id", record.ID))

	return nil
}

// StartNew clears the active conversation
func (uc *ChatUsecase) StartNew(ctx context.Context, state *session.State) {
	state.ClearChat()
	ctxzap.Debug(ctx, "new chat started")
}

// Save updates the active conversation or inserts a new one. A new record's
// id becomes the active chat id.
func (uc *ChatUsecase) Save(ctx context.Context, state *session.State, title, contract, email, response string) error {
	if !state.IsAuthenticated() {
		return entity.ErrUnauthenticated
	}

	record := &entity.ChatRecord{
		ID:           state.ActiveChatID,
		UserID:       state.Identity.ID,
		Title:        resolveTitle(title, email),
		ContractText: contract,
		ClientEmail:  email,
		AIResponse:   response,
	}

	if record.ID != "" {
		if err := uc.store.Update(ctx, state.Identity, record); err != nil {
			return fmt.Errorf("update chat %s: %w", record.ID, err)
		}

		ctxzap.Info(ctx, "chat updated", zap.String("chat_id", record.ID))
		return nil
	}

	created, err := uc.store.Insert(ctx, state.Identity, record)
	if err != nil {
		return fmt.Errorf("insert chat: %w", err)
	}

	state.ActiveChatID = created.ID

	ctxzap.Info(ctx, "chat created",
		zap.String("chat_id", created.ID),
		zap.String("title", created.Title),
	)

	return nil
}
