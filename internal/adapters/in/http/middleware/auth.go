// internal/adapters/in/http/middleware/auth.go
package middleware

import (
	fbauth "firebase.google.com/go/v4/auth"
)

// FirebaseAuthClient is an alias so router deps can take
// *middleware.FirebaseAuthClient without importing the SDK.
type FirebaseAuthClient = fbauth.Client

// context keys use a private type, not raw strings (SA1029).
type ctxKey struct{ name string }

var (
	ctxKeyUID      = ctxKey{name: "uid"}
	ctxKeyEmail    = ctxKey{name: "email"}
	ctxKeyFullName = ctxKey{name: "fullName"}
	ctxKeyPhotoURL = ctxKey{name: "photoUrl"}
	ctxKeyProvider = ctxKey{name: "provider"}
)
