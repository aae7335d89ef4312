package gemini

import (
	"context"
	"fmt"
	"strings"

	"github.com/futig/scopeguard/internal/entity"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// MockConnector answers without calling the completion service
type MockConnector struct {
	logger *zap.Logger
}

func NewMockConnector(logger *zap.Logger) *MockConnector {
	return &MockConnector{
		logger: logger,
	}
}

func (m *MockConnector) Complete(ctx context.Context, req *entity.CompletionRequest) (string, error) {
	ctxzap.Info(ctx, "[MOCK] generating draft")

	instruction := strings.TrimSpace(req.Instruction)
	draft := fmt.Sprintf(`**Scope check (MOCK)**

- The request was compared against the contract rules you provided.
- Anything not listed in the contract should be quoted separately.

**Draft reply**

Thank you for reaching out. The work you describe appears to fall outside the agreed scope.
I would be happy to prepare a separate quote for it.

---
*Instruction received:* %d characters`, len(instruction))

	ctxzap.Info(ctx, "[MOCK] draft generated", zap.Int("result_length", len(draft)))
	return draft, nil
}
