package repository

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/futig/scopeguard/internal/entity"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseUUID(t *testing.T) {
	id, err := parseUUID("0b2f6c55-59a4-4d7e-9a51-2f1f3c0d9e11")
	require.NoError(t, err)
	assert.True(t, id.Valid)

	_, err = parseUUID("42")
	assert.Error(t, err)
}

func TestMalformedChatIDIsNotFound(t *testing.T) {
	// Malformed ids are rejected before the pool is touched
	repo := NewChatHistoryPostgres(nil)
	owner := &entity.Identity{ID: "0b2f6c55-59a4-4d7e-9a51-2f1f3c0d9e11"}

	_, err := repo.Get(context.Background(), owner, "not-a-uuid")
	assert.ErrorIs(t, err, entity.ErrChatNotFound)

	err = repo.Update(context.Background(), owner, &entity.ChatRecord{ID: "not-a-uuid"})
	assert.ErrorIs(t, err, entity.ErrChatNotFound)
}

func TestEmbeddedMigrations(t *testing.T) {
	entries, err := migrationFiles.ReadDir("migrations")
	require.NoError(t, err)

	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	assert.Contains(t, names, "000001_create_chat_history.up.sql")
	assert.Contains(t, names, "000001_create_chat_history.down.sql")
}

// newTestRepository connects to DATABASE_URL and runs the migrations.
// Tests using it are skipped when no database is configured.
func newTestRepository(t *testing.T) *ChatHistoryPostgres {
	t.Helper()

	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		t.Skip("DATABASE_URL not set")
	}

	require.NoError(t, RunMigrations(databaseURL))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, databaseURL)
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	require.NoError(t, pool.Ping(ctx))

	return NewChatHistoryPostgres(pool)
}

func TestChatHistoryPostgresRoundTrip(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()
	owner := &entity.Identity{ID: uuid.NewString()}

	first, err := repo.Insert(ctx, owner, &entity.ChatRecord{
		Title:        "Can you also build a mob...",
		ContractText: "Scope: logo design only.",
		ClientEmail:  "Can you also build a mobile app?",
		AIResponse:   "**Out of scope.**",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, first.ID)
	assert.Equal(t, owner.ID, first.UserID)
	assert.False(t, first.CreatedAt.IsZero())

	second, err := repo.Insert(ctx, owner, &entity.ChatRecord{Title: "second"})
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)

	got, err := repo.Get(ctx, owner, first.ID)
	require.NoError(t, err)
	assert.Equal(t, "Scope: logo design only.", got.ContractText)
	assert.Equal(t, "Can you also build a mobile app?", got.ClientEmail)
	assert.Equal(t, "**Out of scope.**", got.AIResponse)

	first.Title = "renamed"
	first.AIResponse = "updated"
	require.NoError(t, repo.Update(ctx, owner, first))

	got, err = repo.Get(ctx, owner, first.ID)
	require.NoError(t, err)
	assert.Equal(t, "renamed", got.Title)
	assert.Equal(t, "updated", got.AIResponse)

	recent, err := repo.ListRecent(ctx, owner, 10)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, second.ID, recent[0].ID)
	assert.Equal(t, first.ID, recent[1].ID)

	recent, err = repo.ListRecent(ctx, owner, 1)
	require.NoError(t, err)
	assert.Len(t, recent, 1)
}

func TestChatHistoryPostgresOwnership(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()
	owner := &entity.Identity{ID: uuid.NewString()}
	stranger := &entity.Identity{ID: uuid.NewString()}

	record, err := repo.Insert(ctx, owner, &entity.ChatRecord{Title: "private"})
	require.NoError(t, err)

	_, err = repo.Get(ctx, stranger, record.ID)
	assert.ErrorIs(t, err, entity.ErrChatNotFound)

	err = repo.Update(ctx, stranger, &entity.ChatRecord{ID: record.ID, Title: "stolen"})
	assert.ErrorIs(t, err, entity.ErrChatNotFound)

	// No row matches an unknown id, so nothing is affected
	err = repo.Update(ctx, owner, &entity.ChatRecord{ID: uuid.NewString(), Title: "missing"})
	assert.ErrorIs(t, err, entity.ErrChatNotFound)

	recent, err := repo.ListRecent(ctx, stranger, 10)
	require.NoError(t, err)
	assert.Empty(t, recent)
}
