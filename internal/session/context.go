package session

import "context"

// contextKey is a type for context keys to avoid collisions
type contextKey string

const (
	sessionKey contextKey = "session"
	rotatorKey contextKey = "session_rotator"
)

// FromContext retrieves the request's session if the session middleware ran
func FromContext(ctx context.Context) (*Session, bool) {
	s, ok := ctx.Value(sessionKey).(*Session)
	return s, ok
}

// ContextWithSession attaches the session to the request context
func ContextWithSession(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, sessionKey, s)
}

// StateFromContext is a shortcut for handlers that only need the state
func StateFromContext(ctx context.Context) (*State, bool) {
	s, ok := FromContext(ctx)
	if !ok {
		return nil, false
	}
	return s.State, true
}

// ContextWithRotator attaches the function that re-keys the request's session
func ContextWithRotator(ctx context.Context, rotate func()) context.Context {
	return context.WithValue(ctx, rotatorKey, rotate)
}

// Rotate issues a new id for the request's session. It must run before the
// response is written so the new cookie reaches the client.
func Rotate(ctx context.Context) bool {
	rotate, ok := ctx.Value(rotatorKey).(func())
	if !ok {
		return false
	}
	rotate()
	return true
}
