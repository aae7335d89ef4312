package account

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/futig/scopeguard/internal/config"
	"github.com/futig/scopeguard/internal/entity"
	"github.com/futig/scopeguard/internal/integration/supabase"
	"github.com/futig/scopeguard/internal/pkg/validator"
	"github.com/futig/scopeguard/internal/session"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

const (
	testEmail    = "freelancer@example.com"
	testPassword = "secret1"
)

// countingAuth wraps the in-memory connector and counts calls
type countingAuth struct {
	*supabase.MockAuthConnector
	signIns    int
	signOuts   int
	signOutErr error
}

func (a *countingAuth) SignIn(ctx context.Context, email, password string) (*entity.Identity, error) {
	a.signIns++
	return a.MockAuthConnector.SignIn(ctx, email, password)
}

func (a *countingAuth) SignOut(ctx context.Context, identity *entity.Identity) error {
	a.signOuts++
	if a.signOutErr != nil {
		return a.signOutErr
	}
	return a.MockAuthConnector.SignOut(ctx, identity)
}

func newTestUsecase(t *testing.T) (*AccountUsecase, *countingAuth) {
	t.Helper()

	auth := &countingAuth{MockAuthConnector: supabase.NewMockAuthConnector(zap.NewNop())}
	require.NoError(t, auth.SignUp(context.Background(), testEmail, testPassword))

	v := validator.NewValidator(config.FileUploadConfig{MaxPDFSize: 1024, MaxUploadSize: 2048})
	return NewUsecase(auth, v, 0, zap.NewNop()), auth
}

func loggedIn(t *testing.T, uc *AccountUsecase) *session.State {
	t.Helper()

	state := session.NewState()
	require.NoError(t, uc.Login(context.Background(), state, testEmail, testPassword))
	return state
}

func TestLogin(t *testing.T) {
	uc, _ := newTestUsecase(t)
	state := session.NewState()

	require.NoError(t, uc.Login(context.Background(), state, testEmail, testPassword))
	require.True(t, state.IsAuthenticated())
	assert.Equal(t, testEmail, state.Identity.Email)
	assert.NotEmpty(t, state.Identity.AccessToken)
}

func TestLoginWrongPassword(t *testing.T) {
	uc, _ := newTestUsecase(t)
	state := session.NewState()

	err := uc.Login(context.Background(), state, testEmail, "wrong")
	assert.ErrorIs(t, err, entity.ErrInvalidCredentials)
	assert.False(t, state.IsAuthenticated())
}

func TestLoginEmptyFieldsSkipsProvider(t *testing.T) {
	uc, auth := newTestUsecase(t)
	state := session.NewState()

	err := uc.Login(context.Background(), state, "", testPassword)

	vErr, ok := entity.IsValidation(err)
	require.True(t, ok)
	assert.Equal(t, validator.MsgFillAllFields, vErr.Message)
	assert.Zero(t, auth.signIns)
	assert.False(t, state.IsAuthenticated())
}

func TestSignup(t *testing.T) {
	uc, _ := newTestUsecase(t)
	ctx := context.Background()

	require.NoError(t, uc.Signup(ctx, "new@example.com", "password"))
	assert.ErrorIs(t, uc.Signup(ctx, "new@example.com", "password"), entity.ErrSignupFailed)

	err := uc.Signup(ctx, "new2@example.com", "")
	_, ok := entity.IsValidation(err)
	assert.True(t, ok)
}

func TestLogoutResetsStateEvenWhenProviderFails(t *testing.T) {
	uc, auth := newTestUsecase(t)
	auth.signOutErr = errors.New("network down")

	state := loggedIn(t, uc)
	state.ActiveChatID = "chat-1"
	state.ContractText = "c"
	state.Tone = entity.ToneStrict

	uc.Logout(context.Background(), state)

	assert.Equal(t, 1, auth.signOuts)
	assert.Equal(t, session.NewState(), state)
}

func TestUpdatePassword(t *testing.T) {
	uc, _ := newTestUsecase(t)
	ctx := context.Background()
	state := loggedIn(t, uc)

	require.NoError(t, uc.UpdatePassword(ctx, state, testPassword, "brandnew", "brandnew"))

	assert.NoError(t, uc.Login(ctx, session.NewState(), testEmail, "brandnew"))
	assert.ErrorIs(t, uc.Login(ctx, session.NewState(), testEmail, testPassword), entity.ErrInvalidCredentials)
}

func TestUpdatePasswordValidation(t *testing.T) {
	tests := []struct {
		name         string
		newPassword  string
		confirmation string
		wantMsg      string
	}{
		{"mismatch", "brandnew", "brandnev", validator.MsgPasswordsMismatch},
		{"too short", "abc", "abc", validator.MsgPasswordTooShort},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc, auth := newTestUsecase(t)
			state := loggedIn(t, uc)
			before := auth.signIns

			err := uc.UpdatePassword(context.Background(), state, testPassword, tt.newPassword, tt.confirmation)

			vErr, ok := entity.IsValidation(err)
			require.True(t, ok)
			assert.Equal(t, tt.wantMsg, vErr.Message)
			assert.Equal(t, before, auth.signIns, "no provider call expected")
		})
	}
}

func TestUpdatePasswordWrongCurrent(t *testing.T) {
	uc, _ := newTestUsecase(t)
	ctx := context.Background()
	state := loggedIn(t, uc)

	err := uc.UpdatePassword(ctx, state, "not-it", "brandnew", "brandnew")
	assert.ErrorIs(t, err, entity.ErrInvalidCredentials)

	assert.NoError(t, uc.Login(ctx, session.NewState(), testEmail, testPassword))
}

func TestDeleteAccount(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	auth := supabase.NewMockAuthConnector(zap.NewNop())
	require.NoError(t, auth.SignUp(context.Background(), testEmail, testPassword))
	v := validator.NewValidator(config.FileUploadConfig{MaxPDFSize: 1024, MaxUploadSize: 2048})
	uc := NewUsecase(auth, v, 10*time.Millisecond, zap.NewNop())

	state := loggedIn(t, uc)
	state.LastResponse = "draft"

	ctx := ctxzap.ToContext(context.Background(), zap.New(core))
	start := time.Now()
	require.NoError(t, uc.DeleteAccount(ctx, state, "123456", testPassword))

	assert.GreaterOrEqual(t, time.Since(start), 10*time.Millisecond)
	assert.Equal(t, session.NewState(), state)

	entries := logs.FilterField(zap.Bool("deletion_simulated", true)).All()
	assert.Len(t, entries, 1)

	// Simulated: the account still works
	assert.NoError(t, uc.Login(context.Background(), session.NewState(), testEmail, testPassword))
}

func TestDeleteAccountFailures(t *testing.T) {
	tests := []struct {
		name     string
		code     string
		password string
		wantMsg  string
		wantErr  error
	}{
		{"bad code", "000000", testPassword, validator.MsgInvalidVerificationCode, nil},
		{"bad password", "123456", "wrong", "", entity.ErrInvalidCredentials},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc, _ := newTestUsecase(t)
			state := loggedIn(t, uc)

			err := uc.DeleteAccount(context.Background(), state, tt.code, tt.password)
			require.Error(t, err)

			if tt.wantMsg != "" {
				vErr, ok := entity.IsValidation(err)
				require.True(t, ok)
				assert.Equal(t, tt.wantMsg, vErr.Message)
			}
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}

			assert.True(t, state.IsAuthenticated())
		})
	}
}

func TestSettingsRequireIdentity(t *testing.T) {
	uc, _ := newTestUsecase(t)
	ctx := context.Background()

	assert.ErrorIs(t, uc.UpdatePassword(ctx, session.NewState(), "a", "bbbbbb", "bbbbbb"), entity.ErrUnauthenticated)
	assert.ErrorIs(t, uc.DeleteAccount(ctx, session.NewState(), "123456", "a"), entity.ErrUnauthenticated)
}
