// internal/adapters/in/http/middleware/user_auth.go
package middleware

import (
	"context"
	"log"
	"net/http"
	"strings"
)

// UserAuthMiddleware verifies the Firebase ID token (buyer side) and stores
// uid/email/name/photo/provider in context.
// Every /store/me/* endpoint sits behind this gate: an unauthenticated
// request is answered 401 here and never reaches a handler.
type UserAuthMiddleware struct {
	FirebaseAuth *FirebaseAuthClient
}

func (m *UserAuthMiddleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if m.FirebaseAuth == nil {
			http.Error(w, "user auth middleware not initialized", http.StatusServiceUnavailable)
			return
		}

		authHeader := r.Header.Get("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			http.Error(w, "unauthorized: missing bearer token", http.StatusUnauthorized)
			return
		}

		idToken := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		if idToken == "" {
			http.Error(w, "unauthorized: empty bearer token", http.StatusUnauthorized)
			return
		}

		token, err := m.FirebaseAuth.VerifyIDToken(r.Context(), idToken)
		if err != nil {
			log.Printf("[user_auth] token verification failed: %v", err)
			http.Error(w, "invalid token", http.StatusUnauthorized)
			return
		}

		uid := strings.TrimSpace(token.UID)
		if uid == "" {
			http.Error(w, "invalid uid in token", http.StatusUnauthorized)
			return
		}

		ctx := r.Context()
		ctx = context.WithValue(ctx, ctxKeyUID, uid)

		if email := claimString(token.Claims, "email"); email != "" {
			ctx = context.WithValue(ctx, ctxKeyEmail, email)
		}
		if name := claimString(token.Claims, "name"); name != "" {
			ctx = context.WithValue(ctx, ctxKeyFullName, name)
		}
		if pic := claimString(token.Claims, "picture"); pic != "" {
			ctx = context.WithValue(ctx, ctxKeyPhotoURL, pic)
		}
		if prov := signInProvider(token.Claims); prov != "" {
			ctx = context.WithValue(ctx, ctxKeyProvider, prov)
		}

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func claimString(claims map[string]any, key string) string {
	if claims == nil {
		return ""
	}
	if v, ok := claims[key]; ok {
		if s, ok2 := v.(string); ok2 {
			return strings.TrimSpace(s)
		}
	}
	return ""
}

// signInProvider digs firebase.sign_in_provider out of the token claims
// ("password", "google.com", ...). Federated logins carry their provider here.
func signInProvider(claims map[string]any) string {
	fb, ok := claims["firebase"].(map[string]any)
	if !ok {
		return ""
	}
	return claimString(fb, "sign_in_provider")
}

// CurrentUserUID returns the verified buyer uid.
func CurrentUserUID(r *http.Request) (string, bool) {
	v := r.Context().Value(ctxKeyUID)
	u, ok := v.(string)
	if !ok || strings.TrimSpace(u) == "" {
		return "", false
	}
	return strings.TrimSpace(u), true
}

// CurrentUserIdentity returns the full verified identity (fields may be empty
// except uid).
func CurrentUserIdentity(r *http.Request) (uid, name, email, photoURL, provider string, ok bool) {
	uid, ok = CurrentUserUID(r)
	if !ok {
		return "", "", "", "", "", false
	}
	name = ctxString(r, ctxKeyFullName)
	email = ctxString(r, ctxKeyEmail)
	photoURL = ctxString(r, ctxKeyPhotoURL)
	provider = ctxString(r, ctxKeyProvider)
	return uid, name, email, photoURL, provider, true
}

func ctxString(r *http.Request, key ctxKey) string {
	if v := r.Context().Value(key); v != nil {
		if s, ok := v.(string); ok {
			return strings.TrimSpace(s)
		}
	}
	return ""
}
