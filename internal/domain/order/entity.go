// internal/domain/order/entity.go
package order

import (
	"errors"
	"strings"
	"time"

	cartdom "vergilius/internal/domain/cart"
)

// ========================================
// Entity
// ========================================

// Status values. Orders are written as pending; fulfillment happens elsewhere.
const StatusPending = "pending"

// Order is an immutable snapshot of cart contents submitted for fulfillment.
// Items are copied at submission time; later cart mutations must not alter a
// submitted order. This system writes orders and never reads them back.
type Order struct {
	ID       string
	UserID   string
	UserName string

	Items []cartdom.LineItem
	Total float64

	Status string

	// CreatedAt is server-assigned by the order store; zero until the
	// write is confirmed.
	CreatedAt time.Time
}

// ========================================
// Errors
// ========================================

var (
	ErrInvalidID     = errors.New("order: invalid id")
	ErrInvalidUserID = errors.New("order: invalid userId")
	ErrInvalidItems  = errors.New("order: invalid items")
	ErrInvalidItem   = errors.New("order: invalid line item")
	ErrNotFound      = errors.New("order: not found")
)

// ========================================
// Constructor
// ========================================

// New builds a pending order from a cart snapshot.
// Total is derived from items here and stored as the at-submission value.
func New(id, userID, userName string, items []cartdom.LineItem) (Order, error) {
	o := Order{
		ID:       strings.TrimSpace(id),
		UserID:   strings.TrimSpace(userID),
		UserName: strings.TrimSpace(userName),
		Items:    normalizeItems(items),
		Status:   StatusPending,
	}
	o.Total = sumItems(o.Items)

	if err := o.validate(); err != nil {
		return Order{}, err
	}
	return o, nil
}

// ========================================
// Validation
// ========================================

func (o Order) validate() error {
	if o.ID == "" {
		return ErrInvalidID
	}
	if o.UserID == "" {
		return ErrInvalidUserID
	}
	if len(o.Items) < 1 {
		return ErrInvalidItems
	}
	for _, it := range o.Items {
		if strings.TrimSpace(it.ID) == "" {
			return ErrInvalidItem
		}
		if it.Quantity <= 0 {
			return ErrInvalidItem
		}
		if it.Price < 0 {
			return ErrInvalidItem
		}
	}
	return nil
}

// ========================================
// Helpers
// ========================================

func normalizeItems(items []cartdom.LineItem) []cartdom.LineItem {
	out := make([]cartdom.LineItem, 0, len(items))
	for _, it := range items {
		it.ID = strings.TrimSpace(it.ID)
		it.Name = strings.TrimSpace(it.Name)
		it.Variant = strings.TrimSpace(it.Variant)
		it.Image = strings.TrimSpace(it.Image)
		out = append(out, it)
	}
	return out
}

func sumItems(items []cartdom.LineItem) float64 {
	total := 0.0
	for _, it := range items {
		total += it.Price * float64(it.Quantity)
	}
	return total
}
