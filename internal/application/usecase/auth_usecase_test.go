// internal/application/usecase/auth_usecase_test.go
package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vergilius/internal/domain/authgate"
	userdom "vergilius/internal/domain/user"
)

type fakeIdentity struct {
	createErr error
	revoked   []string
	nextUID   string
}

func (p *fakeIdentity) CreateUser(ctx context.Context, email, password, displayName string) (string, error) {
	if p.createErr != nil {
		return "", p.createErr
	}
	return p.nextUID, nil
}

func (p *fakeIdentity) RevokeSessions(ctx context.Context, uid string) error {
	p.revoked = append(p.revoked, uid)
	return nil
}

type fakeUserRepo struct {
	users     map[string]*userdom.User
	upsertErr error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*userdom.User{}}
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id string) (*userdom.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, userdom.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) Upsert(ctx context.Context, u *userdom.User) error {
	if r.upsertErr != nil {
		return r.upsertErr
	}
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func TestRegister(t *testing.T) {
	provider := &fakeIdentity{nextUID: "uid-1"}
	users := newFakeUserRepo()
	uc := NewAuthUsecaseWithClock(provider, users, clk)

	u, err := uc.Register(context.Background(), "laura@example.com", "hunter22", "Laura")
	require.NoError(t, err)
	assert.Equal(t, "uid-1", u.ID)
	assert.Equal(t, "password", u.Provider)
	assert.Contains(t, users.users, "uid-1")
}

func TestRegister_ProviderErrorPassesThrough(t *testing.T) {
	provider := &fakeIdentity{createErr: authgate.WrapProvider(authgate.CodeEmailAlreadyInUse, errors.New("dup"))}
	uc := NewAuthUsecaseWithClock(provider, newFakeUserRepo(), clk)

	_, err := uc.Register(context.Background(), "laura@example.com", "hunter22", "")
	assert.Equal(t, authgate.CodeEmailAlreadyInUse, authgate.CodeOf(err))
}

func TestRegister_DocWriteFailureTolerated(t *testing.T) {
	provider := &fakeIdentity{nextUID: "uid-1"}
	users := newFakeUserRepo()
	users.upsertErr = errors.New("firestore down")
	uc := NewAuthUsecaseWithClock(provider, users, clk)

	// provider account exists; the doc heals on next sign-in
	u, err := uc.Register(context.Background(), "laura@example.com", "hunter22", "")
	require.NoError(t, err)
	assert.Equal(t, "uid-1", u.ID)
}

func TestRegister_InvalidArgs(t *testing.T) {
	uc := NewAuthUsecaseWithClock(&fakeIdentity{}, newFakeUserRepo(), clk)

	_, err := uc.Register(context.Background(), "", "pw", "")
	assert.ErrorIs(t, err, ErrAuthInvalidArgument)

	_, err = uc.Register(context.Background(), "a@b.c", "", "")
	assert.ErrorIs(t, err, ErrAuthInvalidArgument)
}

func TestSignIn_CreatesDocOnFirstLogin(t *testing.T) {
	users := newFakeUserRepo()
	uc := NewAuthUsecaseWithClock(&fakeIdentity{}, users, clk)

	u, created, err := uc.SignIn(context.Background(), SignInInput{
		UID: "uid-1", DisplayName: "Laura", Email: "laura@example.com", Provider: "google.com",
	})
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "google.com", u.Provider)
}

func TestSignIn_RefreshesWithoutBlanking(t *testing.T) {
	users := newFakeUserRepo()
	uc := NewAuthUsecaseWithClock(&fakeIdentity{}, users, clk)
	ctx := context.Background()

	_, _, err := uc.SignIn(ctx, SignInInput{UID: "uid-1", DisplayName: "Laura", Email: "laura@example.com"})
	require.NoError(t, err)

	// a token without a name must not blank the stored one
	u, created, err := uc.SignIn(ctx, SignInInput{UID: "uid-1", Email: "laura@example.com"})
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, "Laura", u.DisplayName)
}

func TestSignOut(t *testing.T) {
	provider := &fakeIdentity{}
	uc := NewAuthUsecaseWithClock(provider, newFakeUserRepo(), clk)

	require.NoError(t, uc.SignOut(context.Background(), "uid-1"))
	assert.Equal(t, []string{"uid-1"}, provider.revoked)

	assert.ErrorIs(t, uc.SignOut(context.Background(), " "), ErrAuthInvalidArgument)
}
