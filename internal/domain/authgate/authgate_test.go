// internal/domain/authgate/authgate_test.go
package authgate

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	assert.Equal(t, CodeInvalidEmail, Normalize("auth/invalid-email"))
	assert.Equal(t, CodeWrongPassword, Normalize(" auth/wrong-password "))
	assert.Equal(t, CodeUnknown, Normalize("auth/something-new"))
	assert.Equal(t, CodeUnknown, Normalize(""))
}

func TestFriendlyMessage(t *testing.T) {
	cases := map[Code]string{
		CodeInvalidEmail:      "Email non valida.",
		CodeUserNotFound:      "Nessun account trovato con questa email.",
		CodeWrongPassword:     "Password errata.",
		CodeEmailAlreadyInUse: "Questa email è già registrata.",
		CodeWeakPassword:      "La password deve avere almeno 6 caratteri.",
		CodePopupClosed:       "Finestra chiusa prima del completamento.",
		CodeTooManyRequests:   "Troppi tentativi. Riprova più tardi.",
		CodeInvalidCredential: "Credenziali non valide.",
	}
	for code, want := range cases {
		assert.Equal(t, want, FriendlyMessage(code), string(code))
	}
}

func TestFriendlyMessage_UnknownFallsBack(t *testing.T) {
	assert.Equal(t, "Si è verificato un errore. Riprova.", FriendlyMessage(CodeUnknown))
	assert.Equal(t, "Si è verificato un errore. Riprova.", FriendlyMessage(Code("auth/not-in-the-map")))
}

func TestCodeOf(t *testing.T) {
	raw := errors.New("provider said no")
	err := WrapProvider(CodeEmailAlreadyInUse, raw)

	assert.Equal(t, CodeEmailAlreadyInUse, CodeOf(err))
	assert.Equal(t, CodeEmailAlreadyInUse, CodeOf(fmt.Errorf("register: %w", err)))
	assert.ErrorIs(t, err, raw)
}

func TestCodeOf_PlainError(t *testing.T) {
	assert.Equal(t, CodeUnknown, CodeOf(errors.New("boom")))
	assert.Equal(t, CodeUnknown, CodeOf(nil))
}

func TestWrapProvider_NormalizesCode(t *testing.T) {
	err := WrapProvider(Code("auth/brand-new-code"), errors.New("x"))
	assert.Equal(t, CodeUnknown, CodeOf(err))
}
