package supabase

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/futig/scopeguard/internal/config"
	"github.com/futig/scopeguard/internal/entity"
	pkgRetry "github.com/futig/scopeguard/internal/pkg/retry"
	pkghttp "github.com/futig/scopeguard/pkg/http"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

const (
	chatHistoryEndpoint  = "/rest/v1/chat_history"
	returnRepresentation = "return=representation"
)

// HistoryConnector stores chat history through the PostgREST API
type HistoryConnector struct {
	config    config.SupabaseConfig
	connector *pkghttp.Connector
	logger    *zap.Logger
}

func NewHistoryConnector(
	cfg config.SupabaseConfig,
	logger *zap.Logger,
) *HistoryConnector {
	return &HistoryConnector{
		connector: newServiceConnector(cfg, logger),
		config:    cfg,
		logger:    logger,
	}
}

// Insert creates a row and returns it with the id and created_at assigned by the store
func (c *HistoryConnector) Insert(ctx context.Context, owner *entity.Identity, record *entity.ChatRecord) (*entity.ChatRecord, error) {
	row := toRow(record)
	row.UserID = owner.ID

	var rows []entity.ChatHistoryRow
	err := c.connector.DoRequest(ctx, http.MethodPost, chatHistoryEndpoint, row, &rows,
		c.userAuth(owner),
		pkghttp.WithHeader("Prefer", returnRepresentation),
	)
	if err != nil {
		return nil, fmt.Errorf("insert chat history: %w", err)
	}

	if len(rows) == 0 || rows[0].ID == "" {
		return nil, fmt.Errorf("insert chat history: store returned no id")
	}

	ctxzap.Debug(ctx, "chat history inserted", zap.String("chat_id", string(rows[0].ID)))

	return toRecord(&rows[0]), nil
}

// Update overwrites title and text fields of the owner's record
func (c *HistoryConnector) Update(ctx context.Context, owner *entity.Identity, record *entity.ChatRecord) error {
	row := toRow(record)
	row.ID = ""

	var rows []entity.ChatHistoryRow
	err := c.connector.DoRequest(ctx, http.MethodPatch, chatHistoryEndpoint, row, &rows,
		c.userAuth(owner),
		pkghttp.WithHeader("Prefer", returnRepresentation),
		pkghttp.WithQuery("id", "eq."+record.ID),
		pkghttp.WithQuery("user_id", "eq."+owner.ID),
	)
	if err != nil {
		return fmt.Errorf("update chat history: %w", err)
	}

	if len(rows) == 0 {
		return entity.ErrChatNotFound
	}

	return nil
}

// ListRecent returns id and title of the owner's newest records
func (c *HistoryConnector) ListRecent(ctx context.Context, owner *entity.Identity, limit int) ([]entity.ChatSummary, error) {
	var rows []entity.ChatHistoryRow
	err := pkgRetry.Do(ctx, c.config.Retry, pkghttp.IsTransient, func() error {
		rows = nil
		return c.connector.DoRequest(ctx, http.MethodGet, chatHistoryEndpoint, nil, &rows,
			c.userAuth(owner),
			pkghttp.WithQuery("select", "id,title"),
			pkghttp.WithQuery("user_id", "eq."+owner.ID),
			pkghttp.WithQuery("order", "created_at.desc"),
			pkghttp.WithQuery("limit", strconv.Itoa(limit)),
		)
	})
	if err != nil {
		return nil, fmt.Errorf("list chat history: %w", err)
	}

	summaries := make([]entity.ChatSummary, 0, len(rows))
	for _, row := range rows {
		summaries = append(summaries, entity.ChatSummary{ID: string(row.ID), Title: row.Title})
	}

	return summaries, nil
}

// Get returns the owner's full record by id
func (c *HistoryConnector) Get(ctx context.Context, owner *entity.Identity, id string) (*entity.ChatRecord, error) {
	var rows []entity.ChatHistoryRow
	err := pkgRetry.Do(ctx, c.config.Retry, pkghttp.IsTransient, func() error {
		rows = nil
		return c.connector.DoRequest(ctx, http.MethodGet, chatHistoryEndpoint, nil, &rows,
			c.userAuth(owner),
			pkghttp.WithQuery("select", "*"),
			pkghttp.WithQuery("id", "eq."+id),
			pkghttp.WithQuery("user_id", "eq."+owner.ID),
		)
	})
	if err != nil {
		return nil, fmt.Errorf("get chat history: %w", err)
	}

	if len(rows) == 0 {
		return nil, entity.ErrChatNotFound
	}

	return toRecord(&rows[0]), nil
}

func (c *HistoryConnector) userAuth(owner *entity.Identity) pkghttp.RequestOpt {
	if owner.AccessToken == "" {
		return pkghttp.WithBearer(c.config.Key)
	}
	return pkghttp.WithBearer(owner.AccessToken)
}
