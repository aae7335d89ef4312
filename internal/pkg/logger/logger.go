package logger

import (
	"context"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// AddFields adds fields to the logger in context and returns new context
func AddFields(ctx context.Context, fields ...zap.Field) context.Context {
	logger := ctxzap.Extract(ctx)
	return ctxzap.ToContext(ctx, logger.With(fields...))
}

// WithAction adds "action" field to context logger to describe the flow
func WithAction(ctx context.Context, action string) context.Context {
	return AddFields(ctx, zap.String("action", action))
}

// WithSession tags every following log line with the browser session
func WithSession(ctx context.Context, sessionID string) context.Context {
	return AddFields(ctx, zap.String("session_id", sessionID))
}

// WithUser tags the context logger with the signed-in user; empty ids are skipped
func WithUser(ctx context.Context, userID string) context.Context {
	if userID == "" {
		return ctx
	}
	return AddFields(ctx, zap.String("user_id", userID))
}

func WithChat(ctx context.Context, chatID string) context.Context {
	if chatID == "" {
		return ctx
	}
	return AddFields(ctx, zap.String("chat_id", chatID))
}
