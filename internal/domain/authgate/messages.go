// internal/domain/authgate/messages.go
package authgate

// Buyer-facing messages (Italian, matching the storefront copy).
// Keyed by provider code; unknown codes get the generic retry message.
var friendlyMessages = map[Code]string{
	CodeInvalidEmail:      "Email non valida.",
	CodeUserNotFound:      "Nessun account trovato con questa email.",
	CodeWrongPassword:     "Password errata.",
	CodeEmailAlreadyInUse: "Questa email è già registrata.",
	CodeWeakPassword:      "La password deve avere almeno 6 caratteri.",
	CodePopupClosed:       "Finestra chiusa prima del completamento.",
	CodeTooManyRequests:   "Troppi tentativi. Riprova più tardi.",
	CodeInvalidCredential: "Credenziali non valide.",
}

const genericMessage = "Si è verificato un errore. Riprova."

// FriendlyMessage returns the buyer-facing message for a provider code.
func FriendlyMessage(code Code) string {
	if msg, ok := friendlyMessages[code]; ok {
		return msg
	}
	return genericMessage
}
