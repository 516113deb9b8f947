// internal/domain/user/repository_port.go
package user

import "context"

// Repository is the persistence port for buyer identity documents.
type Repository interface {
	// GetByID returns ErrNotFound when no document exists for uid.
	GetByID(ctx context.Context, uid string) (*User, error)
	Upsert(ctx context.Context, u *User) error
}
