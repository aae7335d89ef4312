package logger

import (
	"context"
	"testing"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestContextFields(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	ctx := ctxzap.ToContext(context.Background(), zap.New(core))

	ctx = WithAction(ctx, "defense.submit")
	ctx = WithSession(ctx, "sess-1")
	ctx = WithUser(ctx, "")
	ctx = WithChat(ctx, "chat-9")

	ctxzap.Info(ctx, "done")

	entries := logs.All()
	assert.Len(t, entries, 1)

	fields := entries[0].ContextMap()
	assert.Equal(t, "defense.submit", fields["action"])
	assert.Equal(t, "sess-1", fields["session_id"])
	assert.Equal(t, "chat-9", fields["chat_id"])
	assert.NotContains(t, fields, "user_id")
}
