package supabase

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/futig/scopeguard/internal/config"
	"github.com/futig/scopeguard/internal/entity"
	"github.com/futig/scopeguard/internal/integration/common"
	pkghttp "github.com/futig/scopeguard/pkg/http"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

const (
	apiKeyHeader   = "apikey"
	tokenEndpoint  = "/auth/v1/token"
	signupEndpoint = "/auth/v1/signup"
	logoutEndpoint = "/auth/v1/logout"
	userEndpoint   = "/auth/v1/user"
)

// newServiceConnector returns a connector that authenticates as the project
// key unless a request supplies a user token.
func newServiceConnector(cfg config.SupabaseConfig, logger *zap.Logger) *pkghttp.Connector {
	return common.NewBaseConnector(
		strings.TrimRight(cfg.URL, "/"),
		cfg.HTTPClientConfig,
		logger,
		pkghttp.WithStaticHeader(apiKeyHeader, cfg.Key),
		pkghttp.WithAuthToken(cfg.Key),
	)
}

// AuthConnector talks to the GoTrue auth API of the project
type AuthConnector struct {
	config    config.SupabaseConfig
	connector *pkghttp.Connector
	logger    *zap.Logger
}

func NewAuthConnector(
	cfg config.SupabaseConfig,
	logger *zap.Logger,
) *AuthConnector {
	return &AuthConnector{
		connector: newServiceConnector(cfg, logger),
		config:    cfg,
		logger:    logger,
	}
}

// SignIn exchanges email and password for an identity with an access token
func (c *AuthConnector) SignIn(ctx context.Context, email, password string) (*entity.Identity, error) {
	ctxzap.Debug(ctx, "signing in with password")

	var resp entity.SupabaseTokenResponse
	err := c.connector.DoRequest(ctx, http.MethodPost, tokenEndpoint,
		entity.SupabaseCredentials{Email: email, Password: password},
		&resp,
		pkghttp.WithQuery("grant_type", "password"),
	)
	if err != nil {
		if isClientError(err) {
			return nil, fmt.Errorf("%w: %v", entity.ErrInvalidCredentials, err)
		}
		return nil, fmt.Errorf("sign in: %w", err)
	}

	if resp.User == nil || resp.User.ID == "" || resp.AccessToken == "" {
		return nil, fmt.Errorf("%w: token response without user", entity.ErrInvalidCredentials)
	}

	return &entity.Identity{
		ID:          resp.User.ID,
		Email:       resp.User.Email,
		AccessToken: resp.AccessToken,
	}, nil
}

// SignUp registers a new account. It does not sign the user in.
func (c *AuthConnector) SignUp(ctx context.Context, email, password string) error {
	ctxzap.Debug(ctx, "signing up")

	var resp entity.SupabaseSignupResponse
	err := c.connector.DoRequest(ctx, http.MethodPost, signupEndpoint,
		entity.SupabaseCredentials{Email: email, Password: password},
		&resp,
	)
	if err != nil {
		return fmt.Errorf("%w: %v", entity.ErrSignupFailed, err)
	}

	userID := resp.ID
	if resp.User != nil {
		userID = resp.User.ID
	}
	ctxzap.Info(ctx, "account created", zap.String("user_id", userID))

	return nil
}

// SignOut revokes the identity's session on the provider
func (c *AuthConnector) SignOut(ctx context.Context, identity *entity.Identity) error {
	if identity == nil || identity.AccessToken == "" {
		return nil
	}

	err := c.connector.DoRequest(ctx, http.MethodPost, logoutEndpoint, nil, nil,
		pkghttp.WithBearer(identity.AccessToken),
	)
	if err != nil {
		return fmt.Errorf("sign out: %w", err)
	}

	return nil
}

// UpdatePassword sets a new password for the user owning the token
func (c *AuthConnector) UpdatePassword(ctx context.Context, identity *entity.Identity, newPassword string) error {
	if identity == nil || identity.AccessToken == "" {
		return entity.ErrUnauthenticated
	}

	var user entity.SupabaseUser
	err := c.connector.DoRequest(ctx, http.MethodPut, userEndpoint,
		entity.SupabaseUpdateUserRequest{Password: newPassword},
		&user,
		pkghttp.WithBearer(identity.AccessToken),
	)
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}

	return nil
}

func isClientError(err error) bool {
	var httpErr *pkghttp.HTTPError
	if !errors.As(err, &httpErr) {
		return false
	}
	return httpErr.StatusCode >= 400 && httpErr.StatusCode < 500
}
