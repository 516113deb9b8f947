// internal/domain/authgate/codes.go
package authgate

import "strings"

// Code identifies a provider error condition.
// The set mirrors the identity provider's error codes that the storefront
// translates for buyers; anything outside it falls back to CodeUnknown.
type Code string

const (
	CodeInvalidEmail      Code = "auth/invalid-email"
	CodeUserNotFound      Code = "auth/user-not-found"
	CodeWrongPassword     Code = "auth/wrong-password"
	CodeEmailAlreadyInUse Code = "auth/email-already-in-use"
	CodeWeakPassword      Code = "auth/weak-password"
	CodePopupClosed       Code = "auth/popup-closed-by-user"
	CodeTooManyRequests   Code = "auth/too-many-requests"
	CodeInvalidCredential Code = "auth/invalid-credential"

	CodeUnknown Code = "auth/unknown"
)

// Normalize maps a raw provider code string onto a known Code.
func Normalize(raw string) Code {
	switch Code(strings.TrimSpace(raw)) {
	case CodeInvalidEmail,
		CodeUserNotFound,
		CodeWrongPassword,
		CodeEmailAlreadyInUse,
		CodeWeakPassword,
		CodePopupClosed,
		CodeTooManyRequests,
		CodeInvalidCredential:
		return Code(strings.TrimSpace(raw))
	}
	return CodeUnknown
}
