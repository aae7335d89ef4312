package account

import (
	"context"

	"github.com/futig/scopeguard/internal/entity"
)

type AuthConnector interface {
	SignIn(ctx context.Context, email, password string) (*entity.Identity, error)
	SignUp(ctx context.Context, email, password string) error
	SignOut(ctx context.Context, identity *entity.Identity) error
	UpdatePassword(ctx context.Context, identity *entity.Identity, newPassword string) error
}
