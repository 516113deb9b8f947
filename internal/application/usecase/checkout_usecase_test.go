// internal/application/usecase/checkout_usecase_test.go
package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cartdom "vergilius/internal/domain/cart"
	orderdom "vergilius/internal/domain/order"
)

// fakeOrderRepo records created orders; Create can be blocked or failed.
type fakeOrderRepo struct {
	mu      sync.Mutex
	created []orderdom.Order

	createErr error
	block     chan struct{} // when set, Create waits until closed
	entered   chan struct{} // when set, Create signals on entry
}

func (r *fakeOrderRepo) Create(ctx context.Context, o orderdom.Order) (orderdom.Order, error) {
	if r.entered != nil {
		r.entered <- struct{}{}
	}
	if r.block != nil {
		select {
		case <-r.block:
		case <-ctx.Done():
			return orderdom.Order{}, ctx.Err()
		}
	}
	if r.createErr != nil {
		return orderdom.Order{}, r.createErr
	}
	o.CreatedAt = time.Date(2026, 3, 1, 12, 0, 1, 0, time.UTC)
	r.mu.Lock()
	r.created = append(r.created, o)
	r.mu.Unlock()
	return o, nil
}

func (r *fakeOrderRepo) Exists(ctx context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, o := range r.created {
		if o.ID == id {
			return true, nil
		}
	}
	return false, nil
}

type fakeMailer struct {
	mu    sync.Mutex
	sent  []string
	fail  bool
	calls int
}

func (m *fakeMailer) SendOrderConfirmation(ctx context.Context, to string, o orderdom.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.fail {
		return errors.New("mail down")
	}
	m.sent = append(m.sent, to)
	return nil
}

func seedCart(t *testing.T, carts *CartUsecase, uid string) {
	t.Helper()
	_, err := carts.AddItem(context.Background(), uid, cartdom.Product{
		ID: "idromele-07l", Name: "Idromele Classico", Variant: "0.7l", Price: 25.00,
	}, 2)
	require.NoError(t, err)
}

func TestSubmit_SuccessClearsCart(t *testing.T) {
	cartRepo := newFakeCartRepo()
	carts := NewCartUsecaseWithClock(cartRepo, clk)
	orders := &fakeOrderRepo{}
	mailer := &fakeMailer{}
	uc := NewCheckoutUsecase(carts, orders, mailer)
	ctx := context.Background()

	seedCart(t, carts, "buyer-1")

	o, err := uc.Submit(ctx, SubmitInput{UserID: "buyer-1", UserName: "Laura", Email: "laura@example.com"})
	require.NoError(t, err)

	assert.NotEmpty(t, o.ID)
	assert.Equal(t, orderdom.StatusPending, o.Status)
	assert.Equal(t, 50.00, o.Total)
	assert.False(t, o.CreatedAt.IsZero(), "createdAt comes back from the store")

	// cart cleared only after the confirmed write
	c, err := carts.Get(ctx, "buyer-1")
	require.NoError(t, err)
	assert.True(t, c.IsEmpty())

	assert.Equal(t, []string{"laura@example.com"}, mailer.sent)
}

func TestSubmit_EmptyCart(t *testing.T) {
	carts := NewCartUsecaseWithClock(newFakeCartRepo(), clk)
	uc := NewCheckoutUsecase(carts, &fakeOrderRepo{}, nil)

	_, err := uc.Submit(context.Background(), SubmitInput{UserID: "buyer-1"})
	assert.ErrorIs(t, err, ErrCheckoutEmptyCart)
}

func TestSubmit_WriteFailurePreservesCart(t *testing.T) {
	cartRepo := newFakeCartRepo()
	carts := NewCartUsecaseWithClock(cartRepo, clk)
	orders := &fakeOrderRepo{createErr: errors.New("store down")}
	uc := NewCheckoutUsecase(carts, orders, nil)
	ctx := context.Background()

	seedCart(t, carts, "buyer-1")

	_, err := uc.Submit(ctx, SubmitInput{UserID: "buyer-1"})
	require.Error(t, err)

	// cart untouched: the buyer retries without re-entering anything
	c, err := carts.Get(ctx, "buyer-1")
	require.NoError(t, err)
	require.Len(t, c.Items, 1)
	assert.Equal(t, 2, c.Items[0].Quantity)
}

func TestSubmit_MailFailureDoesNotFailOrder(t *testing.T) {
	carts := NewCartUsecaseWithClock(newFakeCartRepo(), clk)
	orders := &fakeOrderRepo{}
	mailer := &fakeMailer{fail: true}
	uc := NewCheckoutUsecase(carts, orders, mailer)

	seedCart(t, carts, "buyer-1")

	_, err := uc.Submit(context.Background(), SubmitInput{UserID: "buyer-1", Email: "laura@example.com"})
	require.NoError(t, err)
	assert.Equal(t, 1, mailer.calls)
}

func TestSubmit_NoMailWithoutAddress(t *testing.T) {
	carts := NewCartUsecaseWithClock(newFakeCartRepo(), clk)
	mailer := &fakeMailer{}
	uc := NewCheckoutUsecase(carts, &fakeOrderRepo{}, mailer)

	seedCart(t, carts, "buyer-1")

	_, err := uc.Submit(context.Background(), SubmitInput{UserID: "buyer-1"})
	require.NoError(t, err)
	assert.Equal(t, 0, mailer.calls)
}

func TestSubmit_RejectsConcurrentSubmitSameUser(t *testing.T) {
	cartRepo := newFakeCartRepo()
	carts := NewCartUsecaseWithClock(cartRepo, clk)
	block := make(chan struct{})
	orders := &fakeOrderRepo{block: block, entered: make(chan struct{}, 1)}
	uc := NewCheckoutUsecase(carts, orders, nil)
	ctx := context.Background()

	seedCart(t, carts, "buyer-1")

	firstDone := make(chan error, 1)
	go func() {
		_, err := uc.Submit(ctx, SubmitInput{UserID: "buyer-1"})
		firstDone <- err
	}()

	// the first submit is inside the order write and holds the in-flight mark
	<-orders.entered

	_, err := uc.Submit(ctx, SubmitInput{UserID: "buyer-1"})
	assert.ErrorIs(t, err, ErrCheckoutInFlight)

	close(block)
	require.NoError(t, <-firstDone)

	// the mark is released after the attempt finishes; the cart is now empty
	_, err = uc.Submit(ctx, SubmitInput{UserID: "buyer-1"})
	assert.ErrorIs(t, err, ErrCheckoutEmptyCart)
}

func TestSubmit_OtherUsersUnaffectedByInFlight(t *testing.T) {
	carts := NewCartUsecaseWithClock(newFakeCartRepo(), clk)
	block := make(chan struct{})
	orders := &fakeOrderRepo{block: block, entered: make(chan struct{}, 2)}
	uc := NewCheckoutUsecase(carts, orders, nil)
	ctx := context.Background()

	seedCart(t, carts, "buyer-1")
	seedCart(t, carts, "buyer-2")

	firstDone := make(chan error, 1)
	go func() {
		_, err := uc.Submit(ctx, SubmitInput{UserID: "buyer-1"})
		firstDone <- err
	}()
	<-orders.entered

	_, err := uc.Submit(ctx, SubmitInput{UserID: "buyer-1"})
	require.ErrorIs(t, err, ErrCheckoutInFlight)

	// buyer-2 submits independently (blocked repo releases both)
	secondDone := make(chan error, 1)
	go func() {
		_, err := uc.Submit(ctx, SubmitInput{UserID: "buyer-2"})
		secondDone <- err
	}()
	<-orders.entered

	close(block)
	require.NoError(t, <-firstDone)
	require.NoError(t, <-secondDone)
}

func TestSubmit_OrderIsSnapshotOfCart(t *testing.T) {
	carts := NewCartUsecaseWithClock(newFakeCartRepo(), clk)
	orders := &fakeOrderRepo{}
	uc := NewCheckoutUsecase(carts, orders, nil)
	ctx := context.Background()

	seedCart(t, carts, "buyer-1")

	o, err := uc.Submit(ctx, SubmitInput{UserID: "buyer-1"})
	require.NoError(t, err)

	require.Len(t, o.Items, 1)
	assert.Equal(t, "idromele-07l", o.Items[0].ID)
	assert.Equal(t, 2, o.Items[0].Quantity)
	assert.Equal(t, "buyer-1", o.UserID)
}

func TestSubmit_MissingUser(t *testing.T) {
	carts := NewCartUsecaseWithClock(newFakeCartRepo(), clk)
	uc := NewCheckoutUsecase(carts, &fakeOrderRepo{}, nil)

	_, err := uc.Submit(context.Background(), SubmitInput{UserID: "  "})
	assert.ErrorIs(t, err, ErrCheckoutUserEmpty)
}
