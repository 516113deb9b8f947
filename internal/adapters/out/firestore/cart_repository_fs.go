// internal/adapters/out/firestore/cart_repository_fs.go
package firestore

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	cartdom "vergilius/internal/domain/cart"
)

// CartRepositoryFS implements cart.Repository using Firestore.
//
// Collection design:
// - collection: carts
// - docId: uid (docId is the source of truth)
// - fields: items(array), createdAt, updatedAt
type CartRepositoryFS struct {
	Client *firestore.Client
}

func NewCartRepositoryFS(client *firestore.Client) *CartRepositoryFS {
	return &CartRepositoryFS{Client: client}
}

func (r *CartRepositoryFS) col() *firestore.CollectionRef {
	return r.Client.Collection("carts")
}

// GetByUserID returns (nil, nil) if not found (nil policy).
// A doc that fails to decode is treated as missing: the buyer gets an empty
// cart instead of a 500, and the next mutation overwrites the bad doc.
func (r *CartRepositoryFS) GetByUserID(ctx context.Context, uid string) (*cartdom.Cart, error) {
	if r == nil || r.Client == nil {
		return nil, errors.New("cart_repository_fs: firestore client is nil")
	}

	id := strings.TrimSpace(uid)
	if id == "" {
		return nil, errors.New("cart_repository_fs: uid is empty")
	}

	snap, err := r.col().Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, nil
		}
		return nil, err
	}

	// Parse snap.Data() by hand instead of DataTo: a schema drift must not
	// surface as an error (fail-soft contract).
	c := cartFromSnapshot(snap)
	c.ID = id
	return c, nil
}

// Upsert overwrites the full doc (simple & predictable; last-write-wins).
func (r *CartRepositoryFS) Upsert(ctx context.Context, c *cartdom.Cart) error {
	if r == nil || r.Client == nil {
		return errors.New("cart_repository_fs: firestore client is nil")
	}
	if c == nil {
		return errors.New("cart_repository_fs: cart is nil")
	}

	id := strings.TrimSpace(c.ID)
	if id == "" {
		return errors.New("cart_repository_fs: Upsert requires cart.ID (= uid) as docId")
	}

	items := make([]map[string]any, 0, len(c.Items))
	for _, it := range c.Items {
		if strings.TrimSpace(it.ID) == "" || it.Quantity <= 0 {
			continue
		}
		items = append(items, map[string]any{
			"id":       it.ID,
			"name":     it.Name,
			"variant":  it.Variant,
			"price":    it.Price,
			"image":    it.Image,
			"quantity": it.Quantity,
		})
	}

	_, err := r.col().Doc(id).Set(ctx, map[string]any{
		"items":     items,
		"createdAt": c.CreatedAt,
		"updatedAt": c.UpdatedAt,
	})
	return err
}

func (r *CartRepositoryFS) DeleteByUserID(ctx context.Context, uid string) error {
	if r == nil || r.Client == nil {
		return errors.New("cart_repository_fs: firestore client is nil")
	}

	id := strings.TrimSpace(uid)
	if id == "" {
		return errors.New("cart_repository_fs: uid is empty")
	}

	_, err := r.col().Doc(id).Delete(ctx)
	return err
}

// -----------------------------------------
// tolerant decoding
// -----------------------------------------

func cartFromSnapshot(snap *firestore.DocumentSnapshot) *cartdom.Cart {
	out := &cartdom.Cart{Items: []cartdom.LineItem{}}

	raw := snap.Data()
	if raw == nil {
		return out
	}

	if t, ok := asTime(raw["createdAt"]); ok {
		out.CreatedAt = t
	}
	if t, ok := asTime(raw["updatedAt"]); ok {
		out.UpdatedAt = t
	}

	itemsAny, ok := raw["items"].([]any)
	if !ok {
		if raw["items"] != nil {
			log.Printf("[cart_repository_fs] WARN: unexpected items shape doc=%s type=%T (treating as empty)",
				snap.Ref.ID, raw["items"])
		}
		return out
	}

	for _, v := range itemsAny {
		m, ok := v.(map[string]any)
		if !ok {
			continue
		}

		id := strings.TrimSpace(asString(m["id"]))
		qty := asInt(m["quantity"])
		if id == "" || qty <= 0 {
			continue
		}

		price := asFloat(m["price"])
		if price < 0 {
			continue
		}

		out.Items = append(out.Items, cartdom.LineItem{
			ID:       id,
			Name:     strings.TrimSpace(asString(m["name"])),
			Variant:  strings.TrimSpace(asString(m["variant"])),
			Price:    price,
			Image:    strings.TrimSpace(asString(m["image"])),
			Quantity: qty,
		})
	}

	return out
}

func asString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case []byte:
		return string(t)
	}
	return ""
}

func asInt(v any) int {
	switch t := v.(type) {
	case int:
		return t
	case int64:
		return int(t)
	case float64:
		return int(t)
	}
	return 0
}

func asFloat(v any) float64 {
	switch t := v.(type) {
	case float64:
		return t
	case int64:
		return float64(t)
	case int:
		return float64(t)
	}
	return 0
}

func asTime(v any) (time.Time, bool) {
	if t, ok := v.(time.Time); ok {
		return t, true
	}
	return time.Time{}, false
}
