// internal/adapters/out/identity/firebase_identity.go
package identity

import (
	"context"
	"errors"
	"strings"

	fbauth "firebase.google.com/go/v4/auth"

	"vergilius/internal/domain/authgate"
)

// FirebaseIdentity implements usecase.IdentityProvider on the Firebase Admin
// SDK. Provider failures come back wrapped in authgate.ProviderError so the
// HTTP layer can translate them into buyer-facing messages.
type FirebaseIdentity struct {
	Auth *fbauth.Client
}

func NewFirebaseIdentity(auth *fbauth.Client) *FirebaseIdentity {
	return &FirebaseIdentity{Auth: auth}
}

func (p *FirebaseIdentity) CreateUser(ctx context.Context, email, password, displayName string) (string, error) {
	if p == nil || p.Auth == nil {
		return "", errors.New("firebase_identity: auth client is nil")
	}

	params := (&fbauth.UserToCreate{}).
		Email(strings.TrimSpace(email)).
		Password(password)
	if dn := strings.TrimSpace(displayName); dn != "" {
		params = params.DisplayName(dn)
	}

	rec, err := p.Auth.CreateUser(ctx, params)
	if err != nil {
		return "", translate(err)
	}
	return rec.UID, nil
}

func (p *FirebaseIdentity) RevokeSessions(ctx context.Context, uid string) error {
	if p == nil || p.Auth == nil {
		return errors.New("firebase_identity: auth client is nil")
	}
	if err := p.Auth.RevokeRefreshTokens(ctx, strings.TrimSpace(uid)); err != nil {
		return translate(err)
	}
	return nil
}

// translate maps Admin SDK failures onto the fixed provider code set.
// The SDK exposes typed checks for some conditions; for the rest the error
// text is the only signal (same approach the SDK itself documents).
func translate(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case fbauth.IsEmailAlreadyExists(err):
		return authgate.WrapProvider(authgate.CodeEmailAlreadyInUse, err)
	case fbauth.IsUserNotFound(err):
		return authgate.WrapProvider(authgate.CodeUserNotFound, err)
	}

	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "malformed email") || strings.Contains(msg, "invalid email"):
		return authgate.WrapProvider(authgate.CodeInvalidEmail, err)
	case strings.Contains(msg, "password must be") || strings.Contains(msg, "weak"):
		return authgate.WrapProvider(authgate.CodeWeakPassword, err)
	case strings.Contains(msg, "too many") || strings.Contains(msg, "quota"):
		return authgate.WrapProvider(authgate.CodeTooManyRequests, err)
	case strings.Contains(msg, "invalid credential") || strings.Contains(msg, "credential"):
		return authgate.WrapProvider(authgate.CodeInvalidCredential, err)
	}

	return authgate.WrapProvider(authgate.CodeUnknown, err)
}
