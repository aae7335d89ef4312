package account

import (
	"context"
	"fmt"
	"time"

	"github.com/futig/scopeguard/internal/entity"
	"github.com/futig/scopeguard/internal/pkg/validator"
	"github.com/futig/scopeguard/internal/session"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

const (
	MsgLoginFailed              = "Login failed. Check credentials."
	MsgSignupFailed             = "Signup failed."
	MsgSignupSucceeded          = "Account created! Check email or try logging in."
	MsgPasswordUpdated          = "Password updated!"
	MsgIncorrectCurrentPassword = "Incorrect current password."
	MsgIncorrectPassword        = "Incorrect Password."
	MsgAccountDeleted           = "Account deleted."
)

// AccountUsecase handles sign-in, sign-up and the settings actions
type AccountUsecase struct {
	auth          AuthConnector
	validator     *validator.Validator
	deletionPause time.Duration
	logger        *zap.Logger
}

// NewUsecase creates a new account use case
func NewUsecase(
	auth AuthConnector,
	validator *validator.Validator,
	deletionPause time.Duration,
	logger *zap.Logger,
) *AccountUsecase {
	return &AccountUsecase{
		auth:          auth,
		validator:     validator,
		deletionPause: deletionPause,
		logger:        logger,
	}
}

// Login authenticates the session. On failure the identity stays unset.
func (uc *AccountUsecase) Login(ctx context.Context, state *session.State, email, password string) error {
	if err := uc.validator.ValidateCredentials(email, password); err != nil {
		return err
	}

	identity, err := uc.auth.SignIn(ctx, email, password)
	if err != nil {
		ctxzap.Warn(ctx, "sign in failed", zap.Error(err))
		return fmt.Errorf("sign in: %w", err)
	}

	state.SignIn(identity)

	ctxzap.Info(ctx, "user signed in", zap.String("user_id", identity.ID))

	return nil
}

// Signup registers an account. The session is not authenticated by it.
func (uc *AccountUsecase) Signup(ctx context.Context, email, password string) error {
	if err := uc.validator.ValidateCredentials(email, password); err != nil {
		return err
	}

	if err := uc.auth.SignUp(ctx, email, password); err != nil {
		ctxzap.Warn(ctx, "sign up failed", zap.Error(err))
		return fmt.Errorf("sign up: %w", err)
	}

	ctxzap.Info(ctx, "account created")

	return nil
}

// Logout ends the provider session and resets the whole state. Provider
// errors are only logged.
func (uc *AccountUsecase) Logout(ctx context.Context, state *session.State) {
	if state.Identity != nil {
		if err := uc.auth.SignOut(ctx, state.Identity); err != nil {
			ctxzap.Warn(ctx, "sign out failed", zap.Error(err))
		}
		ctxzap.Info(ctx, "user signed out", zap.String("user_id", state.Identity.ID))
	}

	state.Reset()
}

// UpdatePassword re-authenticates with the current password and applies the
// new one with the fresh token.
func (uc *AccountUsecase) UpdatePassword(ctx context.Context, state *session.State, current, newPassword, confirmation string) error {
	if !state.IsAuthenticated() {
		return entity.ErrUnauthenticated
	}

	if err := uc.validator.ValidateNewPassword(newPassword, confirmation); err != nil {
		return err
	}

	fresh, err := uc.auth.SignIn(ctx, state.Identity.Email, current)
	if err != nil {
		ctxzap.Warn(ctx, "re-authentication failed", zap.Error(err))
		return fmt.Errorf("re-authenticate: %w", err)
	}

	if err := uc.auth.UpdatePassword(ctx, fresh, newPassword); err != nil {
		ctxzap.Error(ctx, "password update failed", zap.Error(err))
		return fmt.Errorf("update password: %w", err)
	}

	// The fresh token stays valid after the change
	state.Identity.AccessToken = fresh.AccessToken

	ctxzap.Info(ctx, "password updated", zap.String("user_id", fresh.ID))

	return nil
}

// DeleteAccount checks the verification code and the password, then resets
// the session after a short pause. The account itself is not removed from
// the identity provider.
func (uc *AccountUsecase) DeleteAccount(ctx context.Context, state *session.State, code, password string) error {
	if !state.IsAuthenticated() {
		return entity.ErrUnauthenticated
	}

	if err := uc.validator.ValidateVerificationCode(code); err != nil {
		return err
	}

	identity, err := uc.auth.SignIn(ctx, state.Identity.Email, password)
	if err != nil {
		ctxzap.Warn(ctx, "re-authentication failed", zap.Error(err))
		return fmt.Errorf("re-authenticate: %w", err)
	}

	ctxzap.Warn(ctx, "account deletion requested",
		zap.String("user_id", identity.ID),
		zap.Bool("deletion_simulated", true),
	)

	if err := pause(ctx, uc.deletionPause); err != nil {
		ctxzap.Debug(ctx, "deletion pause interrupted", zap.Error(err))
	}

	state.Reset()

	return nil
}

func pause(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
