package supabase

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/futig/scopeguard/internal/entity"
	"github.com/google/uuid"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

type mockAccount struct {
	id       string
	email    string
	password string
}

// MockAuthConnector keeps accounts in memory. Accounts are usable right
// after SignUp; there is no email confirmation step.
type MockAuthConnector struct {
	mu       sync.Mutex
	accounts map[string]*mockAccount
	logger   *zap.Logger
}

func NewMockAuthConnector(logger *zap.Logger) *MockAuthConnector {
	return &MockAuthConnector{
		accounts: make(map[string]*mockAccount),
		logger:   logger,
	}
}

func (m *MockAuthConnector) SignIn(ctx context.Context, email, password string) (*entity.Identity, error) {
	ctxzap.Info(ctx, "[MOCK] signing in")

	m.mu.Lock()
	defer m.mu.Unlock()

	acc, ok := m.accounts[strings.ToLower(email)]
	if !ok || acc.password != password {
		return nil, entity.ErrInvalidCredentials
	}

	return &entity.Identity{
		ID:          acc.id,
		Email:       acc.email,
		AccessToken: "mock-token-" + uuid.NewString(),
	}, nil
}

func (m *MockAuthConnector) SignUp(ctx context.Context, email, password string) error {
	ctxzap.Info(ctx, "[MOCK] signing up")

	m.mu.Lock()
	defer m.mu.Unlock()

	key := strings.ToLower(email)
	if _, exists := m.accounts[key]; exists {
		return entity.ErrSignupFailed
	}

	m.accounts[key] = &mockAccount{
		id:       uuid.NewString(),
		email:    email,
		password: password,
	}
	return nil
}

func (m *MockAuthConnector) SignOut(ctx context.Context, identity *entity.Identity) error {
	ctxzap.Info(ctx, "[MOCK] signing out")
	return nil
}

func (m *MockAuthConnector) UpdatePassword(ctx context.Context, identity *entity.Identity, newPassword string) error {
	ctxzap.Info(ctx, "[MOCK] updating password")

	if identity == nil {
		return entity.ErrUnauthenticated
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	acc, ok := m.accounts[strings.ToLower(identity.Email)]
	if !ok {
		return entity.ErrUnauthenticated
	}
	acc.password = newPassword
	return nil
}

// MockHistoryConnector keeps chat records in memory
type MockHistoryConnector struct {
	mu      sync.Mutex
	records map[string]*entity.ChatRecord
	order   []string // insertion order, oldest first
	logger  *zap.Logger
}

func NewMockHistoryConnector(logger *zap.Logger) *MockHistoryConnector {
	return &MockHistoryConnector{
		records: make(map[string]*entity.ChatRecord),
		logger:  logger,
	}
}

func (m *MockHistoryConnector) Insert(ctx context.Context, owner *entity.Identity, record *entity.ChatRecord) (*entity.ChatRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored := *record
	stored.ID = uuid.NewString()
	stored.UserID = owner.ID
	stored.CreatedAt = time.Now()
	m.records[stored.ID] = &stored
	m.order = append(m.order, stored.ID)

	ctxzap.Info(ctx, "[MOCK] chat history inserted", zap.String("chat_id", stored.ID))

	out := stored
	return &out, nil
}

func (m *MockHistoryConnector) Update(ctx context.Context, owner *entity.Identity, record *entity.ChatRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored, ok := m.records[record.ID]
	if !ok || stored.UserID != owner.ID {
		return entity.ErrChatNotFound
	}

	stored.Title = record.Title
	stored.ContractText = record.ContractText
	stored.ClientEmail = record.ClientEmail
	stored.AIResponse = record.AIResponse
	return nil
}

func (m *MockHistoryConnector) ListRecent(ctx context.Context, owner *entity.Identity, limit int) ([]entity.ChatSummary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	summaries := make([]entity.ChatSummary, 0)
	for i := len(m.order) - 1; i >= 0; i-- {
		if limit > 0 && len(summaries) == limit {
			break
		}
		r := m.records[m.order[i]]
		if r.UserID == owner.ID {
			summaries = append(summaries, entity.ChatSummary{ID: r.ID, Title: r.Title})
		}
	}
	return summaries, nil
}

func (m *MockHistoryConnector) Get(ctx context.Context, owner *entity.Identity, id string) (*entity.ChatRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored, ok := m.records[id]
	if !ok || stored.UserID != owner.ID {
		return nil, entity.ErrChatNotFound
	}

	out := *stored
	return &out, nil
}

// Count returns the number of stored records
func (m *MockHistoryConnector) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.records)
}
