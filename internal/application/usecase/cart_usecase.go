// internal/application/usecase/cart_usecase.go
package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	cartdom "vergilius/internal/domain/cart"
)

var (
	ErrCartInvalidArgument = errors.New("cart_usecase: invalid argument")
	ErrCartNotFound        = errors.New("cart_usecase: not found")
)

// Clock provides current time (for testability).
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now().UTC() }

// CartUsecase coordinates cart operations.
// Every mutation persists the full cart via the repository before returning,
// so a crash loses at most the in-flight operation.
type CartUsecase struct {
	repo  cartdom.Repository
	clock Clock
}

func NewCartUsecase(repo cartdom.Repository) *CartUsecase {
	return &CartUsecase{
		repo:  repo,
		clock: systemClock{},
	}
}

// NewCartUsecaseWithClock is useful for tests.
func NewCartUsecaseWithClock(repo cartdom.Repository, clock Clock) *CartUsecase {
	if clock == nil {
		clock = systemClock{}
	}
	return &CartUsecase{repo: repo, clock: clock}
}

// Get returns the cart for uid. A missing or unreadable stored cart yields an
// empty cart, never an error (fail-soft startup contract).
func (uc *CartUsecase) Get(ctx context.Context, uid string) (*cartdom.Cart, error) {
	id := strings.TrimSpace(uid)
	if id == "" {
		return nil, ErrCartInvalidArgument
	}

	c, err := uc.repo.GetByUserID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return cartdom.NewCart(id, nil, uc.clock.Now())
	}
	return c, nil
}

// AddItem increments quantity for p.ID (or appends) and persists.
// qty must be >= 1; the store places no upper bound.
func (uc *CartUsecase) AddItem(ctx context.Context, uid string, p cartdom.Product, qty int) (*cartdom.Cart, error) {
	id := strings.TrimSpace(uid)
	if id == "" || strings.TrimSpace(p.ID) == "" || qty < 1 {
		return nil, ErrCartInvalidArgument
	}

	c, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := c.Add(p, qty, uc.clock.Now()); err != nil {
		return nil, err
	}
	if err := uc.repo.Upsert(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// SetItemQuantity sets the absolute quantity for productID and persists.
// qty <= 0 removes the entry; unknown productID is a no-op.
func (uc *CartUsecase) SetItemQuantity(ctx context.Context, uid, productID string, qty int) (*cartdom.Cart, error) {
	id := strings.TrimSpace(uid)
	pid := strings.TrimSpace(productID)
	if id == "" || pid == "" {
		return nil, ErrCartInvalidArgument
	}

	c, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := c.SetQuantity(pid, qty, uc.clock.Now()); err != nil {
		return nil, err
	}
	if err := uc.repo.Upsert(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// RemoveItem removes productID and persists. Absent id is a no-op.
func (uc *CartUsecase) RemoveItem(ctx context.Context, uid, productID string) (*cartdom.Cart, error) {
	return uc.SetItemQuantity(ctx, uid, productID, 0)
}

// Clear empties the cart unconditionally and persists.
func (uc *CartUsecase) Clear(ctx context.Context, uid string) (*cartdom.Cart, error) {
	id := strings.TrimSpace(uid)
	if id == "" {
		return nil, ErrCartInvalidArgument
	}

	c, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}

	c.Clear(uc.clock.Now())
	if err := uc.repo.Upsert(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// load returns the stored cart or a fresh empty one (absent -> create).
func (uc *CartUsecase) load(ctx context.Context, uid string) (*cartdom.Cart, error) {
	c, err := uc.repo.GetByUserID(ctx, uid)
	if err != nil {
		return nil, err
	}
	if c != nil {
		return c, nil
	}
	return cartdom.NewCart(uid, nil, uc.clock.Now())
}
