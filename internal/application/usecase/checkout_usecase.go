// internal/application/usecase/checkout_usecase.go
package usecase

import (
	"context"
	"errors"
	"log"
	"strings"
	"sync"

	"github.com/google/uuid"

	cartdom "vergilius/internal/domain/cart"
	orderdom "vergilius/internal/domain/order"
)

// OrderMailer is an outbound port for the confirmation mail.
// Sending is best-effort; a mail failure never fails the submission.
type OrderMailer interface {
	SendOrderConfirmation(ctx context.Context, to string, o orderdom.Order) error
}

var (
	ErrCheckoutRepoMissing = errors.New("checkout: order repository is not configured")
	ErrCheckoutUserEmpty   = errors.New("checkout: user id is empty")
	ErrCheckoutEmptyCart   = errors.New("checkout: cart is empty")
	ErrCheckoutInFlight    = errors.New("checkout: submission already in flight")
)

// CheckoutUsecase turns the current cart into a submitted order.
//
// Per-submission state machine:
//   - a per-user in-flight mark is the Submitting state; re-entrant submits
//     are rejected with ErrCheckoutInFlight until the attempt finishes
//   - the cart is cleared if and only if the order write is confirmed;
//     a failed write leaves the cart untouched so the buyer can retry
type CheckoutUsecase struct {
	carts  *CartUsecase
	orders orderdom.Repository
	mailer OrderMailer // optional
	newID  func() string

	mu       sync.Mutex
	inFlight map[string]struct{}
}

func NewCheckoutUsecase(carts *CartUsecase, orders orderdom.Repository, mailer OrderMailer) *CheckoutUsecase {
	return &CheckoutUsecase{
		carts:    carts,
		orders:   orders,
		mailer:   mailer,
		newID:    func() string { return uuid.NewString() },
		inFlight: map[string]struct{}{},
	}
}

// SubmitInput carries the authenticated buyer's identity. The auth middleware
// is the gate: an unauthenticated request never reaches Submit.
type SubmitInput struct {
	UserID   string
	UserName string
	Email    string // confirmation mail target; may be empty
}

// Submit packages the buyer's cart into a pending order and writes it.
func (u *CheckoutUsecase) Submit(ctx context.Context, in SubmitInput) (orderdom.Order, error) {
	if u.carts == nil || u.orders == nil {
		return orderdom.Order{}, ErrCheckoutRepoMissing
	}

	uid := strings.TrimSpace(in.UserID)
	if uid == "" {
		return orderdom.Order{}, ErrCheckoutUserEmpty
	}

	if !u.begin(uid) {
		log.Printf("[checkout_uc] reject: submission in flight uid=%s", maskUID(uid))
		return orderdom.Order{}, ErrCheckoutInFlight
	}
	defer u.end(uid)

	c, err := u.carts.Get(ctx, uid)
	if err != nil {
		return orderdom.Order{}, err
	}
	if c.IsEmpty() {
		return orderdom.Order{}, ErrCheckoutEmptyCart
	}

	// Snapshot before the write: the order must equal the pre-submission
	// cart even if the cart mutates afterwards.
	snapshot := append([]cartdom.LineItem(nil), c.Items...)

	o, err := orderdom.New(u.newID(), uid, in.UserName, snapshot)
	if err != nil {
		return orderdom.Order{}, err
	}

	created, err := u.orders.Create(ctx, o)
	if err != nil {
		// cart untouched; buyer may retry without re-entering anything
		log.Printf("[checkout_uc] order write failed uid=%s orderId=%s err=%v", maskUID(uid), o.ID, err)
		return orderdom.Order{}, err
	}

	// Write confirmed: clear the cart. A clear failure must not turn the
	// confirmed order into an error; worst case the buyer clears manually.
	if _, cerr := u.carts.Clear(ctx, uid); cerr != nil {
		log.Printf("[checkout_uc] WARN: cart clear after confirmed order failed uid=%s orderId=%s err=%v",
			maskUID(uid), created.ID, cerr)
	}

	if u.mailer != nil && strings.TrimSpace(in.Email) != "" {
		if merr := u.mailer.SendOrderConfirmation(ctx, in.Email, created); merr != nil {
			log.Printf("[checkout_uc] WARN: confirmation mail failed orderId=%s err=%v", created.ID, merr)
		}
	}

	log.Printf("[checkout_uc] OK: order submitted uid=%s orderId=%s items=%d total=%.2f",
		maskUID(uid), created.ID, len(created.Items), created.Total)

	return created, nil
}

func (u *CheckoutUsecase) begin(uid string) bool {
	u.mu.Lock()
	defer u.mu.Unlock()
	if _, busy := u.inFlight[uid]; busy {
		return false
	}
	u.inFlight[uid] = struct{}{}
	return true
}

func (u *CheckoutUsecase) end(uid string) {
	u.mu.Lock()
	defer u.mu.Unlock()
	delete(u.inFlight, uid)
}
