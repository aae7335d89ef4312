package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/futig/scopeguard/internal/entity"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ChatHistoryRepository defines the interface for chat history persistence
type ChatHistoryRepository interface {
	Insert(ctx context.Context, owner *entity.Identity, record *entity.ChatRecord) (*entity.ChatRecord, error)
	Update(ctx context.Context, owner *entity.Identity, record *entity.ChatRecord) error
	ListRecent(ctx context.Context, owner *entity.Identity, limit int) ([]entity.ChatSummary, error)
	Get(ctx context.Context, owner *entity.Identity, id string) (*entity.ChatRecord, error)
}

var _ ChatHistoryRepository = &ChatHistoryPostgres{}

const (
	insertChatHistoryQuery = `
		INSERT INTO chat_history (user_id, title, contract_text, client_email, ai_response)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, user_id, title, contract_text, client_email, ai_response, created_at`

	updateChatHistoryQuery = `
		UPDATE chat_history
		SET title = $3, contract_text = $4, client_email = $5, ai_response = $6
		WHERE id = $1 AND user_id = $2`

	listRecentChatHistoryQuery = `
		SELECT id, title
		FROM chat_history
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2`

	getChatHistoryQuery = `
		SELECT id, user_id, title, contract_text, client_email, ai_response, created_at
		FROM chat_history
		WHERE id = $1 AND user_id = $2`
)

// ChatHistoryPostgres implements ChatHistoryRepository on a direct pgx pool
type ChatHistoryPostgres struct {
	db *pgxpool.Pool
}

func NewChatHistoryPostgres(db *pgxpool.Pool) *ChatHistoryPostgres {
	return &ChatHistoryPostgres{
		db: db,
	}
}

func (r *ChatHistoryPostgres) Insert(ctx context.Context, owner *entity.Identity, record *entity.ChatRecord) (*entity.ChatRecord, error) {
	userID, err := parseUUID(owner.ID)
	if err != nil {
		return nil, fmt.Errorf("parse user ID: %w", err)
	}

	row := r.db.QueryRow(ctx, insertChatHistoryQuery,
		userID,
		record.Title,
		record.ContractText,
		record.ClientEmail,
		record.AIResponse,
	)

	created, err := scanChatRecord(row)
	if err != nil {
		return nil, fmt.Errorf("insert chat history: %w", err)
	}

	return created, nil
}

func (r *ChatHistoryPostgres) Update(ctx context.Context, owner *entity.Identity, record *entity.ChatRecord) error {
	chatID, err := parseUUID(record.ID)
	if err != nil {
		return entity.ErrChatNotFound
	}

	userID, err := parseUUID(owner.ID)
	if err != nil {
		return fmt.Errorf("parse user ID: %w", err)
	}

	tag, err := r.db.Exec(ctx, updateChatHistoryQuery,
		chatID,
		userID,
		record.Title,
		record.ContractText,
		record.ClientEmail,
		record.AIResponse,
	)
	if err != nil {
		return fmt.Errorf("update chat history: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return entity.ErrChatNotFound
	}

	return nil
}

func (r *ChatHistoryPostgres) ListRecent(ctx context.Context, owner *entity.Identity, limit int) ([]entity.ChatSummary, error) {
	userID, err := parseUUID(owner.ID)
	if err != nil {
		return nil, fmt.Errorf("parse user ID: %w", err)
	}

	rows, err := r.db.Query(ctx, listRecentChatHistoryQuery, userID, int32(limit))
	if err != nil {
		return nil, fmt.Errorf("list chat history: %w", err)
	}
	defer rows.Close()

	summaries := make([]entity.ChatSummary, 0, limit)
	for rows.Next() {
		var id pgtype.UUID
		var title string
		if err := rows.Scan(&id, &title); err != nil {
			return nil, fmt.Errorf("scan chat summary: %w", err)
		}
		summaries = append(summaries, entity.ChatSummary{
			ID:    uuid.UUID(id.Bytes).String(),
			Title: title,
		})
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate chat history: %w", err)
	}

	return summaries, nil
}

func (r *ChatHistoryPostgres) Get(ctx context.Context, owner *entity.Identity, id string) (*entity.ChatRecord, error) {
	chatID, err := parseUUID(id)
	if err != nil {
		return nil, entity.ErrChatNotFound
	}

	userID, err := parseUUID(owner.ID)
	if err != nil {
		return nil, fmt.Errorf("parse user ID: %w", err)
	}

	record, err := scanChatRecord(r.db.QueryRow(ctx, getChatHistoryQuery, chatID, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entity.ErrChatNotFound
		}
		return nil, fmt.Errorf("get chat history: %w", err)
	}

	return record, nil
}

func parseUUID(s string) (pgtype.UUID, error) {
	parsed, err := uuid.Parse(s)
	if err != nil {
		return pgtype.UUID{}, err
	}
	return pgtype.UUID{Bytes: parsed, Valid: true}, nil
}

func scanChatRecord(row pgx.Row) (*entity.ChatRecord, error) {
	var (
		id        pgtype.UUID
		userID    pgtype.UUID
		createdAt pgtype.Timestamptz
		record    entity.ChatRecord
	)

	if err := row.Scan(
		&id,
		&userID,
		&record.Title,
		&record.ContractText,
		&record.ClientEmail,
		&record.AIResponse,
		&createdAt,
	); err != nil {
		return nil, err
	}

	record.ID = uuid.UUID(id.Bytes).String()
	record.UserID = uuid.UUID(userID.Bytes).String()
	record.CreatedAt = createdAt.Time

	return &record, nil
}
