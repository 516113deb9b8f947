// internal/domain/order/repository_port.go
package order

import "context"

// Repository is the write-once persistence port for orders.
// The storefront never lists or reads orders back; Exists is kept as a
// dev/testing convenience only.
type Repository interface {
	// Create writes the order and returns it with the server-assigned
	// CreatedAt filled in.
	Create(ctx context.Context, o Order) (Order, error)

	Exists(ctx context.Context, id string) (bool, error)
}
