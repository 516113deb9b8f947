// internal/application/usecase/cart_usecase_test.go
package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cartdom "vergilius/internal/domain/cart"
)

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

var clk = fixedClock{t: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}

// fakeCartRepo is an in-memory cartdom.Repository that counts upserts.
type fakeCartRepo struct {
	carts   map[string]*cartdom.Cart
	upserts int

	getErr    error
	upsertErr error
}

func newFakeCartRepo() *fakeCartRepo {
	return &fakeCartRepo{carts: map[string]*cartdom.Cart{}}
}

func (r *fakeCartRepo) GetByUserID(ctx context.Context, uid string) (*cartdom.Cart, error) {
	if r.getErr != nil {
		return nil, r.getErr
	}
	c, ok := r.carts[uid]
	if !ok {
		return nil, nil
	}
	cp := *c
	cp.Items = append([]cartdom.LineItem(nil), c.Items...)
	return &cp, nil
}

func (r *fakeCartRepo) Upsert(ctx context.Context, c *cartdom.Cart) error {
	if r.upsertErr != nil {
		return r.upsertErr
	}
	r.upserts++
	cp := *c
	cp.Items = append([]cartdom.LineItem(nil), c.Items...)
	r.carts[c.ID] = &cp
	return nil
}

func (r *fakeCartRepo) DeleteByUserID(ctx context.Context, uid string) error {
	delete(r.carts, uid)
	return nil
}

func testProduct() cartdom.Product {
	return cartdom.Product{ID: "idromele-07l", Name: "Idromele Classico", Variant: "0.7l", Price: 25.00}
}

func TestCartGet_AbsentYieldsEmptyCart(t *testing.T) {
	repo := newFakeCartRepo()
	uc := NewCartUsecaseWithClock(repo, clk)

	c, err := uc.Get(context.Background(), "buyer-1")
	require.NoError(t, err)
	assert.True(t, c.IsEmpty())
	assert.Equal(t, "buyer-1", c.ID)
	assert.Equal(t, 0, repo.upserts, "read must not write")
}

func TestCartGet_EmptyUID(t *testing.T) {
	uc := NewCartUsecaseWithClock(newFakeCartRepo(), clk)
	_, err := uc.Get(context.Background(), "  ")
	assert.ErrorIs(t, err, ErrCartInvalidArgument)
}

func TestCartAddItem_PersistsEveryMutation(t *testing.T) {
	repo := newFakeCartRepo()
	uc := NewCartUsecaseWithClock(repo, clk)
	ctx := context.Background()

	_, err := uc.AddItem(ctx, "buyer-1", testProduct(), 2)
	require.NoError(t, err)
	assert.Equal(t, 1, repo.upserts)

	c, err := uc.AddItem(ctx, "buyer-1", testProduct(), 1)
	require.NoError(t, err)
	assert.Equal(t, 2, repo.upserts)

	// merged line survives the round-trip
	require.Len(t, c.Items, 1)
	assert.Equal(t, 3, c.Items[0].Quantity)

	stored, _ := repo.GetByUserID(ctx, "buyer-1")
	require.NotNil(t, stored)
	assert.Equal(t, 3, stored.Items[0].Quantity)
}

func TestCartAddItem_InvalidArgs(t *testing.T) {
	uc := NewCartUsecaseWithClock(newFakeCartRepo(), clk)
	ctx := context.Background()

	_, err := uc.AddItem(ctx, "", testProduct(), 1)
	assert.ErrorIs(t, err, ErrCartInvalidArgument)

	_, err = uc.AddItem(ctx, "buyer-1", cartdom.Product{}, 1)
	assert.ErrorIs(t, err, ErrCartInvalidArgument)

	_, err = uc.AddItem(ctx, "buyer-1", testProduct(), 0)
	assert.ErrorIs(t, err, ErrCartInvalidArgument)
}

func TestCartAddItem_UpsertFailurePropagates(t *testing.T) {
	repo := newFakeCartRepo()
	repo.upsertErr = errors.New("disk full")
	uc := NewCartUsecaseWithClock(repo, clk)

	_, err := uc.AddItem(context.Background(), "buyer-1", testProduct(), 1)
	assert.EqualError(t, err, "disk full")
}

func TestCartSetItemQuantity_RemovalAndNoop(t *testing.T) {
	repo := newFakeCartRepo()
	uc := NewCartUsecaseWithClock(repo, clk)
	ctx := context.Background()

	_, err := uc.AddItem(ctx, "buyer-1", testProduct(), 2)
	require.NoError(t, err)

	// qty <= 0 removes
	c, err := uc.SetItemQuantity(ctx, "buyer-1", "idromele-07l", 0)
	require.NoError(t, err)
	assert.True(t, c.IsEmpty())

	// unknown id: no-op, but still persisted (cart doc exists either way)
	c, err = uc.SetItemQuantity(ctx, "buyer-1", "no-such-product", 5)
	require.NoError(t, err)
	assert.True(t, c.IsEmpty())
}

func TestCartRemoveItem(t *testing.T) {
	repo := newFakeCartRepo()
	uc := NewCartUsecaseWithClock(repo, clk)
	ctx := context.Background()

	_, err := uc.AddItem(ctx, "buyer-1", testProduct(), 2)
	require.NoError(t, err)

	c, err := uc.RemoveItem(ctx, "buyer-1", "idromele-07l")
	require.NoError(t, err)
	assert.True(t, c.IsEmpty())

	stored, _ := repo.GetByUserID(ctx, "buyer-1")
	require.NotNil(t, stored)
	assert.True(t, stored.IsEmpty())
}

func TestCartClear(t *testing.T) {
	repo := newFakeCartRepo()
	uc := NewCartUsecaseWithClock(repo, clk)
	ctx := context.Background()

	_, err := uc.AddItem(ctx, "buyer-1", testProduct(), 2)
	require.NoError(t, err)

	c, err := uc.Clear(ctx, "buyer-1")
	require.NoError(t, err)
	assert.True(t, c.IsEmpty())
	assert.Equal(t, 2, repo.upserts)
}
