// internal/domain/cart/repository_port.go
package cart

import "context"

// Repository is the persistence port for carts.
//
// Nil policy: GetByUserID returns (nil, nil) when no cart is stored for uid.
// An unreadable stored value is treated the same as a missing one (fail-soft);
// adapters log the parse failure and never propagate it.
type Repository interface {
	GetByUserID(ctx context.Context, uid string) (*Cart, error)
	Upsert(ctx context.Context, c *Cart) error
	DeleteByUserID(ctx context.Context, uid string) error
}
