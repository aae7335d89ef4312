package chat

import (
	"context"
	"errors"
	"testing"

	"github.com/futig/scopeguard/internal/entity"
	"github.com/futig/scopeguard/internal/integration/supabase"
	"github.com/futig/scopeguard/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var errStoreDown = errors.New("store down")

// failingStore fails every call
type failingStore struct{}

func (failingStore) Insert(context.Context, *entity.Identity, *entity.ChatRecord) (*entity.ChatRecord, error) {
	return nil, errStoreDown
}

func (failingStore) Update(context.Context, *entity.Identity, *entity.ChatRecord) error {
	return errStoreDown
}

func (failingStore) ListRecent(context.Context, *entity.Identity, int) ([]entity.ChatSummary, error) {
	return nil, errStoreDown
}

func (failingStore) Get(context.Context, *entity.Identity, string) (*entity.ChatRecord, error) {
	return nil, errStoreDown
}

func signedInState(id string) *session.State {
	state := session.NewState()
	state.SignIn(&entity.Identity{ID: id, Email: id + "@example.com", AccessToken: "token"})
	return state
}

func newTestUsecase() (*ChatUsecase, *supabase.MockHistoryConnector) {
	store := supabase.NewMockHistoryConnector(zap.NewNop())
	return NewUsecase(store, zap.NewNop()), store
}

func TestSaveThenLoad(t *testing.T) {
	ctx := context.Background()
	uc, _ := newTestUsecase()
	state := signedInState("user-1")

	require.NoError(t, uc.Save(ctx, state, "Logo scope", "Scope: logo design only.", "Can you build an app?", "**No.**"))
	require.NotEmpty(t, state.ActiveChatID)
	savedID := state.ActiveChatID

	uc.StartNew(ctx, state)
	assert.Empty(t, state.ActiveChatID)

	require.NoError(t, uc.Load(ctx, state, savedID))
	assert.Equal(t, savedID, state.ActiveChatID)
	assert.Equal(t, "Scope: logo design only.", state.ContractText)
	assert.Equal(t, "Can you build an app?", state.EmailText)
	assert.Equal(t, "**No.**", state.LastResponse)
}

func TestSaveWithoutActiveIDInsertsEachTime(t *testing.T) {
	ctx := context.Background()
	uc, store := newTestUsecase()
	state := signedInState("user-1")

	require.NoError(t, uc.Save(ctx, state, "first", "c", "e", "r"))
	firstID := state.ActiveChatID

	state.ActiveChatID = ""
	require.NoError(t, uc.Save(ctx, state, "second", "c", "e", "r"))

	assert.NotEqual(t, firstID, state.ActiveChatID)
	assert.Equal(t, 2, store.Count())
}

func TestSaveWithActiveIDUpdates(t *testing.T) {
	ctx := context.Background()
	uc, store := newTestUsecase()
	state := signedInState("user-1")

	require.NoError(t, uc.Save(ctx, state, "first", "c1", "e1", "r1"))
	id := state.ActiveChatID

	require.NoError(t, uc.Save(ctx, state, "renamed", "c2", "e2", "r2"))
	assert.Equal(t, id, state.ActiveChatID)
	assert.Equal(t, 1, store.Count())

	record, err := store.Get(ctx, state.Identity, id)
	require.NoError(t, err)
	assert.Equal(t, "renamed", record.Title)
	assert.Equal(t, "c2", record.ContractText)
	assert.Equal(t, "e2", record.ClientEmail)
	assert.Equal(t, "r2", record.AIResponse)
}

func TestSaveRequiresIdentity(t *testing.T) {
	uc, store := newTestUsecase()

	err := uc.Save(context.Background(), session.NewState(), "t", "c", "e", "r")
	assert.ErrorIs(t, err, entity.ErrUnauthenticated)
	assert.Equal(t, 0, store.Count())
}

func TestSaveStoreFailureKeepsStateUnsaved(t *testing.T) {
	uc := NewUsecase(failingStore{}, zap.NewNop())
	state := signedInState("user-1")

	err := uc.Save(context.Background(), state, "t", "c", "e", "r")
	assert.ErrorIs(t, err, errStoreDown)
	assert.Empty(t, state.ActiveChatID)
}

func TestLoadFailureLeavesStateUntouched(t *testing.T) {
	ctx := context.Background()
	uc, _ := newTestUsecase()
	state := signedInState("user-1")
	state.ContractText = "current contract"
	state.EmailText = "current email"
	state.LastResponse = "current response"
	state.ActiveChatID = "current-id"

	err := uc.Load(ctx, state, "missing")
	assert.ErrorIs(t, err, entity.ErrChatNotFound)

	assert.Equal(t, "current-id", state.ActiveChatID)
	assert.Equal(t, "current contract", state.ContractText)
	assert.Equal(t, "current email", state.EmailText)
	assert.Equal(t, "current response", state.LastResponse)
}

func TestLoadOtherUsersChat(t *testing.T) {
	ctx := context.Background()
	uc, _ := newTestUsecase()

	owner := signedInState("owner")
	require.NoError(t, uc.Save(ctx, owner, "private", "c", "e", "r"))

	intruder := signedInState("intruder")
	err := uc.Load(ctx, intruder, owner.ActiveChatID)
	assert.ErrorIs(t, err, entity.ErrChatNotFound)
	assert.Empty(t, intruder.ActiveChatID)
}

func TestListRecent(t *testing.T) {
	ctx := context.Background()
	uc, _ := newTestUsecase()
	state := signedInState("user-1")
	other := signedInState("user-2")

	for _, title := range []string{"one", "two", "three"} {
		state.ActiveChatID = ""
		require.NoError(t, uc.Save(ctx, state, title, "c", "e", "r"))
	}
	require.NoError(t, uc.Save(ctx, other, "foreign", "c", "e", "r"))

	recent := uc.ListRecent(ctx, state.Identity, 2)
	require.Len(t, recent, 2)
	assert.Equal(t, "three", recent[0].Title)
	assert.Equal(t, "two", recent[1].Title)

	assert.Len(t, uc.ListRecent(ctx, state.Identity, 0), 3)
}

func TestListRecentFailureIsEmpty(t *testing.T) {
	uc := NewUsecase(failingStore{}, zap.NewNop())

	recent := uc.ListRecent(context.Background(), &entity.Identity{ID: "user-1"}, RecentLimit)
	assert.NotNil(t, recent)
	assert.Empty(t, recent)
}

func TestStartNew(t *testing.T) {
	uc, _ := newTestUsecase()
	state := signedInState("user-1")
	state.ActiveChatID = "id"
	state.ContractText = "c"
	state.EmailText = "e"
	state.LastResponse = "r"
	state.Tone = entity.ToneStrict

	uc.StartNew(context.Background(), state)

	assert.Empty(t, state.ActiveChatID)
	assert.Empty(t, state.ContractText)
	assert.Empty(t, state.EmailText)
	assert.Empty(t, state.LastResponse)
	assert.True(t, state.IsAuthenticated())
	assert.Equal(t, entity.ToneStrict, state.Tone)
}

func TestResolveTitle(t *testing.T) {
	tests := []struct {
		name  string
		title string
		email string
		want  string
	}{
		{"title kept", "Mobile app", "ignored", "Mobile app"},
		{"short email", "", "Hi there", "Hi there"},
		{"exactly thirty", "", "123456789012345678901234567890", "123456789012345678901234567890"},
		{"long email", "", "1234567890123456789012345678901", "123456789012345678901234567890..."},
		{"blank everything", " ", "", "New Chat"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, resolveTitle(tt.title, tt.email))
		})
	}
}

func TestDefenseTitle(t *testing.T) {
	assert.Equal(t, "Hi, can you also build a ...", DefenseTitle("Hi, can you also build a mobile app?\nThanks"))
	assert.Equal(t, "Short...", DefenseTitle("Short\nsecond line"))
	assert.Equal(t, "Привет...", DefenseTitle("Привет"))
	assert.Equal(t, "New Chat", DefenseTitle("  "))
}
