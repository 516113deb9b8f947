// internal/domain/cart/entity.go
package cart

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrInvalidCart     = errors.New("cart: invalid")
	ErrInvalidProduct  = errors.New("cart: invalid product")
	ErrInvalidQuantity = errors.New("cart: quantity must be >= 1")
)

// Product is the add-time snapshot of a catalog entry.
// Name/variant/price/image are captured when the buyer adds the item and are
// never re-fetched afterwards (there is no catalog re-validation).
type Product struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Variant string  `json:"variant"`
	Price   float64 `json:"price"`
	Image   string  `json:"image"`
}

// LineItem is one product entry in a cart.
// Uniqueness is defined by ID; at most one LineItem per product ID exists.
type LineItem struct {
	ID       string  `json:"id" firestore:"id"`
	Name     string  `json:"name" firestore:"name"`
	Variant  string  `json:"variant" firestore:"variant"`
	Price    float64 `json:"price" firestore:"price"`
	Image    string  `json:"image" firestore:"image"`
	Quantity int     `json:"quantity" firestore:"quantity"`
}

// Cart represents "a cart document".
//   - docId = buyer uid
//   - Items keeps insertion order (display order); it is a slice, not a map.
//
// Total/Count are never stored; they are recomputed from Items on every read.
type Cart struct {
	// ID is the storage docId (= buyer uid).
	ID string `json:"id" firestore:"id"`

	Items []LineItem `json:"items" firestore:"items"`

	CreatedAt time.Time `json:"createdAt" firestore:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" firestore:"updatedAt"`
}

// NewCart creates a new cart doc. items can be nil (treated as empty).
func NewCart(id string, items []LineItem, now time.Time) (*Cart, error) {
	c := &Cart{
		ID:        strings.TrimSpace(id),
		Items:     cloneItems(items),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Add increases quantity for p.ID by qty, or appends a new line item.
// qty must be >= 1. The store itself places no upper bound on quantity;
// input clamping is the caller's responsibility.
func (c *Cart) Add(p Product, qty int, now time.Time) error {
	if c == nil {
		return ErrInvalidCart
	}

	pid := strings.TrimSpace(p.ID)
	if pid == "" || p.Price < 0 {
		return ErrInvalidProduct
	}
	if qty < 1 {
		return ErrInvalidQuantity
	}

	if idx := c.indexOf(pid); idx >= 0 {
		c.Items[idx].Quantity += qty
	} else {
		c.Items = append(c.Items, LineItem{
			ID:       pid,
			Name:     strings.TrimSpace(p.Name),
			Variant:  strings.TrimSpace(p.Variant),
			Price:    p.Price,
			Image:    strings.TrimSpace(p.Image),
			Quantity: qty,
		})
	}

	c.touch(now)
	return nil
}

// SetQuantity sets the absolute quantity for productID.
// qty <= 0 removes the entry (a zero-quantity line never exists).
// Unknown productID is a no-op, not an error.
func (c *Cart) SetQuantity(productID string, qty int, now time.Time) error {
	if c == nil {
		return ErrInvalidCart
	}

	pid := strings.TrimSpace(productID)
	if pid == "" {
		return ErrInvalidProduct
	}

	idx := c.indexOf(pid)
	if idx < 0 {
		return nil
	}

	if qty <= 0 {
		c.Items = append(c.Items[:idx], c.Items[idx+1:]...)
	} else {
		c.Items[idx].Quantity = qty
	}

	c.touch(now)
	return nil
}

// Remove removes productID from the cart. Absent id is a no-op.
func (c *Cart) Remove(productID string, now time.Time) error {
	return c.SetQuantity(productID, 0, now)
}

// Clear empties the cart unconditionally.
func (c *Cart) Clear(now time.Time) {
	if c == nil {
		return
	}
	c.Items = []LineItem{}
	c.touch(now)
}

// ConsumeAll clears items for order creation and returns a snapshot.
// The snapshot is a copy; later cart mutations must not alter it.
func (c *Cart) ConsumeAll(now time.Time) ([]LineItem, error) {
	if c == nil {
		return nil, ErrInvalidCart
	}

	snap := cloneItems(c.Items)
	c.Items = []LineItem{}
	c.touch(now)
	return snap, nil
}

// Total is the sum of price * quantity over all items.
func (c *Cart) Total() float64 {
	if c == nil {
		return 0
	}
	total := 0.0
	for _, it := range c.Items {
		total += it.Price * float64(it.Quantity)
	}
	return total
}

// Count is the sum of quantities over all items.
func (c *Cart) Count() int {
	if c == nil {
		return 0
	}
	n := 0
	for _, it := range c.Items {
		n += it.Quantity
	}
	return n
}

func (c *Cart) IsEmpty() bool {
	return c == nil || len(c.Items) == 0
}

func (c *Cart) touch(now time.Time) {
	c.UpdatedAt = now
}

func (c *Cart) validate() error {
	if c == nil {
		return ErrInvalidCart
	}
	if strings.TrimSpace(c.ID) == "" {
		return ErrInvalidCart
	}
	for _, it := range c.Items {
		if strings.TrimSpace(it.ID) == "" || it.Quantity < 1 || it.Price < 0 {
			return ErrInvalidCart
		}
	}
	return nil
}

func (c *Cart) indexOf(productID string) int {
	for i, it := range c.Items {
		if it.ID == productID {
			return i
		}
	}
	return -1
}

func cloneItems(items []LineItem) []LineItem {
	out := make([]LineItem, len(items))
	copy(out, items)
	return out
}
