// internal/application/usecase/auth_usecase.go
package usecase

import (
	"context"
	"errors"
	"log"
	"strings"

	userdom "vergilius/internal/domain/user"
)

// IdentityProvider is the outbound port to the identity service.
// Implementations wrap provider failures in authgate.ProviderError so the
// HTTP layer can translate them for buyers.
type IdentityProvider interface {
	// CreateUser registers an email/password account and returns its uid.
	CreateUser(ctx context.Context, email, password, displayName string) (string, error)

	// RevokeSessions invalidates the user's refresh tokens (sign-out).
	RevokeSessions(ctx context.Context, uid string) error
}

var (
	ErrAuthInvalidArgument = errors.New("auth_usecase: invalid argument")
	ErrAuthProviderMissing = errors.New("auth_usecase: identity provider is not configured")
	ErrAuthUserRepoMissing = errors.New("auth_usecase: user repository is not configured")
)

// AuthUsecase covers buyer onboarding: register, sign-in bootstrap, sign-out.
// Token verification itself happens in the auth middleware; federated logins
// arrive here as verified tokens like any other.
type AuthUsecase struct {
	provider IdentityProvider
	users    userdom.Repository
	clock    Clock
}

func NewAuthUsecase(provider IdentityProvider, users userdom.Repository) *AuthUsecase {
	return &AuthUsecase{
		provider: provider,
		users:    users,
		clock:    systemClock{},
	}
}

// NewAuthUsecaseWithClock is useful for tests.
func NewAuthUsecaseWithClock(provider IdentityProvider, users userdom.Repository, clock Clock) *AuthUsecase {
	if clock == nil {
		clock = systemClock{}
	}
	return &AuthUsecase{provider: provider, users: users, clock: clock}
}

// Register creates the provider account and the buyer document.
// Provider failures pass through untranslated (the handler maps codes).
func (uc *AuthUsecase) Register(ctx context.Context, email, password, displayName string) (*userdom.User, error) {
	if uc.provider == nil {
		return nil, ErrAuthProviderMissing
	}
	if uc.users == nil {
		return nil, ErrAuthUserRepoMissing
	}

	em := strings.TrimSpace(email)
	if em == "" || password == "" {
		return nil, ErrAuthInvalidArgument
	}

	uid, err := uc.provider.CreateUser(ctx, em, password, strings.TrimSpace(displayName))
	if err != nil {
		return nil, err
	}

	now := uc.clock.Now()
	u, err := userdom.New(uid, displayName, em, "", "password", now)
	if err != nil {
		return nil, err
	}
	if err := uc.users.Upsert(ctx, u); err != nil {
		// account exists at the provider; the doc heals on next sign-in
		log.Printf("[auth_uc] WARN: user doc write failed after register uid=%s err=%v", maskUID(uid), err)
		return u, nil
	}

	log.Printf("[auth_uc] registered uid=%s", maskUID(uid))
	return u, nil
}

// SignInInput is the verified identity put into context by the middleware.
type SignInInput struct {
	UID         string
	DisplayName string
	Email       string
	PhotoURL    string
	Provider    string // "password", "google.com", ...
}

// SignIn ensures the buyer document exists (docId = uid) and refreshes its
// profile fields. Returns (user, created, error).
func (uc *AuthUsecase) SignIn(ctx context.Context, in SignInInput) (*userdom.User, bool, error) {
	if uc.users == nil {
		return nil, false, ErrAuthUserRepoMissing
	}

	uid := strings.TrimSpace(in.UID)
	if uid == "" {
		return nil, false, ErrAuthInvalidArgument
	}

	now := uc.clock.Now()

	u, err := uc.users.GetByID(ctx, uid)
	if err == nil {
		u.Refresh(in.DisplayName, in.Email, in.PhotoURL, now)
		if uerr := uc.users.Upsert(ctx, u); uerr != nil {
			return nil, false, uerr
		}
		return u, false, nil
	}
	if !errors.Is(err, userdom.ErrNotFound) {
		return nil, false, err
	}

	u, err = userdom.New(uid, in.DisplayName, in.Email, in.PhotoURL, in.Provider, now)
	if err != nil {
		return nil, false, err
	}
	if err := uc.users.Upsert(ctx, u); err != nil {
		return nil, false, err
	}

	log.Printf("[auth_uc] sign-in created user doc uid=%s provider=%s", maskUID(uid), u.Provider)
	return u, true, nil
}

// SignOut revokes the buyer's refresh tokens.
func (uc *AuthUsecase) SignOut(ctx context.Context, uid string) error {
	if uc.provider == nil {
		return ErrAuthProviderMissing
	}
	id := strings.TrimSpace(uid)
	if id == "" {
		return ErrAuthInvalidArgument
	}
	return uc.provider.RevokeSessions(ctx, id)
}
