// internal/adapters/in/http/store/handler/auth_handler.go
package storeHandler

import (
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"vergilius/internal/adapters/in/http/middleware"
	usecase "vergilius/internal/application/usecase"
	"vergilius/internal/domain/authgate"
	userdom "vergilius/internal/domain/user"
)

// AuthHandler serves buyer onboarding.
//
//	POST /store/sign-up   public; email/password registration
//	POST /store/sign-in   authed; ensures/refreshes the buyer document
//	POST /store/sign-out  authed; revokes refresh tokens
//
// Provider failures come back with a normalized code plus an Italian
// buyer-facing message; the raw provider error stays in logs only.
type AuthHandler struct {
	uc *usecase.AuthUsecase
}

func NewAuthHandler(uc *usecase.AuthUsecase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

type signUpReq struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"displayName"`
}

type userDTO struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayName"`
	Email       string `json:"email"`
	PhotoURL    string `json:"photoUrl,omitempty"`
	Provider    string `json:"provider"`
	CreatedAt   string `json:"createdAt"`
	UpdatedAt   string `json:"updatedAt"`
}

func (h *AuthHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	if h.uc == nil {
		log.Printf("[store_auth_handler] exit status=500 reason=auth usecase is nil")
		writeErr(w, http.StatusInternalServerError, "auth handler is not configured")
		return
	}
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}

	var req signUpReq
	if err := readJSON(r, &req); err != nil {
		log.Printf("[store_auth_handler] POST sign-up exit status=400 reason=invalid json err=%v", err)
		writeErr(w, http.StatusBadRequest, "invalid json body")
		return
	}
	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		writeErr(w, http.StatusBadRequest, "email and password are required")
		return
	}

	u, err := h.uc.Register(r.Context(), req.Email, req.Password, req.DisplayName)
	if err != nil {
		h.writeAuthErr(w, "sign-up", err, start)
		return
	}

	log.Printf("[store_auth_handler] POST sign-up ok elapsed=%s", time.Since(start))
	writeJSON(w, http.StatusCreated, map[string]any{"user": toUserDTO(u)})
}

func (h *AuthHandler) SignIn(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	if h.uc == nil {
		log.Printf("[store_auth_handler] exit status=500 reason=auth usecase is nil")
		writeErr(w, http.StatusInternalServerError, "auth handler is not configured")
		return
	}
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}

	uid, name, email, photoURL, provider, ok := middleware.CurrentUserIdentity(r)
	if !ok {
		writeErr(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	u, created, err := h.uc.SignIn(r.Context(), usecase.SignInInput{
		UID:         uid,
		DisplayName: name,
		Email:       email,
		PhotoURL:    photoURL,
		Provider:    provider,
	})
	if err != nil {
		h.writeAuthErr(w, "sign-in", err, start)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	log.Printf("[store_auth_handler] POST sign-in ok created=%t elapsed=%s", created, time.Since(start))
	writeJSON(w, status, map[string]any{"user": toUserDTO(u), "created": created})
}

func (h *AuthHandler) SignOut(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	if h.uc == nil {
		log.Printf("[store_auth_handler] exit status=500 reason=auth usecase is nil")
		writeErr(w, http.StatusInternalServerError, "auth handler is not configured")
		return
	}
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}

	uid, ok := middleware.CurrentUserUID(r)
	if !ok {
		writeErr(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	if err := h.uc.SignOut(r.Context(), uid); err != nil {
		h.writeAuthErr(w, "sign-out", err, start)
		return
	}

	log.Printf("[store_auth_handler] POST sign-out ok elapsed=%s", time.Since(start))
	writeJSON(w, http.StatusOK, map[string]string{"status": "signed_out"})
}

// writeAuthErr translates errors into buyer-facing responses. Provider errors
// carry their normalized code so the page can branch on it; the message is
// display-ready Italian copy.
func (h *AuthHandler) writeAuthErr(w http.ResponseWriter, op string, err error, start time.Time) {
	log.Printf("[store_auth_handler] POST %s error err=%v elapsed=%s", op, err, time.Since(start))

	if errors.Is(err, usecase.ErrAuthInvalidArgument) {
		writeErr(w, http.StatusBadRequest, err.Error())
		return
	}

	var pe *authgate.ProviderError
	if errors.As(err, &pe) {
		code := pe.Code
		writeJSON(w, authStatusFor(code), map[string]string{
			"code":  string(code),
			"error": authgate.FriendlyMessage(code),
		})
		return
	}

	writeJSON(w, http.StatusInternalServerError, map[string]string{
		"code":  string(authgate.CodeUnknown),
		"error": authgate.FriendlyMessage(authgate.CodeUnknown),
	})
}

func authStatusFor(code authgate.Code) int {
	switch code {
	case authgate.CodeInvalidEmail, authgate.CodeWeakPassword:
		return http.StatusBadRequest
	case authgate.CodeUserNotFound, authgate.CodeWrongPassword, authgate.CodeInvalidCredential:
		return http.StatusUnauthorized
	case authgate.CodeEmailAlreadyInUse:
		return http.StatusConflict
	case authgate.CodeTooManyRequests:
		return http.StatusTooManyRequests
	default:
		return http.StatusBadGateway
	}
}

func toUserDTO(u *userdom.User) userDTO {
	if u == nil {
		return userDTO{}
	}
	return userDTO{
		ID:          u.ID,
		DisplayName: u.DisplayName,
		Email:       u.Email,
		PhotoURL:    u.PhotoURL,
		Provider:    u.Provider,
		CreatedAt:   toRFC3339(u.CreatedAt),
		UpdatedAt:   toRFC3339(u.UpdatedAt),
	}
}
