// internal/domain/user/entity.go
package user

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrInvalidID = errors.New("user: invalid id")
	ErrNotFound  = errors.New("user: not found")
)

// User is the buyer identity document.
// ID is the identity provider uid (docId = uid).
type User struct {
	ID          string    `json:"id" firestore:"id"`
	DisplayName string    `json:"displayName" firestore:"displayName"`
	Email       string    `json:"email" firestore:"email"`
	PhotoURL    string    `json:"photoUrl" firestore:"photoUrl"`
	Provider    string    `json:"provider" firestore:"provider"`
	CreatedAt   time.Time `json:"createdAt" firestore:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt" firestore:"updatedAt"`
}

func New(id, displayName, email, photoURL, provider string, now time.Time) (*User, error) {
	uid := strings.TrimSpace(id)
	if uid == "" {
		return nil, ErrInvalidID
	}
	return &User{
		ID:          uid,
		DisplayName: strings.TrimSpace(displayName),
		Email:       strings.TrimSpace(email),
		PhotoURL:    strings.TrimSpace(photoURL),
		Provider:    strings.TrimSpace(provider),
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// Refresh updates the mutable profile fields from a fresh token.
// Empty incoming values never blank out stored ones.
func (u *User) Refresh(displayName, email, photoURL string, now time.Time) {
	if u == nil {
		return
	}
	if s := strings.TrimSpace(displayName); s != "" {
		u.DisplayName = s
	}
	if s := strings.TrimSpace(email); s != "" {
		u.Email = s
	}
	if s := strings.TrimSpace(photoURL); s != "" {
		u.PhotoURL = s
	}
	u.UpdatedAt = now
}
