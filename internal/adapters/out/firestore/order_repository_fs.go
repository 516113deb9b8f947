// internal/adapters/out/firestore/order_repository_fs.go
package firestore

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	orderdom "vergilius/internal/domain/order"
)

// Firestore implementation of order.Repository (write-once).
// docId = order.ID; createdAt is server-assigned via ServerTimestamp.
type OrderRepositoryFS struct {
	Client *firestore.Client
}

func NewOrderRepositoryFS(client *firestore.Client) *OrderRepositoryFS {
	return &OrderRepositoryFS{Client: client}
}

func (r *OrderRepositoryFS) ordersCol() *firestore.CollectionRef {
	return r.Client.Collection("orders")
}

// orderDoc is the stored shape. The zero CreatedAt plus the serverTimestamp
// option makes Firestore assign createdAt at commit time, not at client time.
type orderDoc struct {
	UserID    string         `firestore:"userId"`
	UserName  string         `firestore:"userName"`
	Items     []orderItemDoc `firestore:"items"`
	Total     float64        `firestore:"total"`
	Status    string         `firestore:"status"`
	CreatedAt time.Time      `firestore:"createdAt,serverTimestamp"`
}

type orderItemDoc struct {
	ID       string  `firestore:"id"`
	Name     string  `firestore:"name"`
	Variant  string  `firestore:"variant"`
	Price    float64 `firestore:"price"`
	Image    string  `firestore:"image"`
	Quantity int     `firestore:"quantity"`
}

// Create writes the order doc. Create-only semantics: an existing docId is an
// error, never an overwrite (orders are write-once).
func (r *OrderRepositoryFS) Create(ctx context.Context, o orderdom.Order) (orderdom.Order, error) {
	if r == nil || r.Client == nil {
		return orderdom.Order{}, errors.New("order_repository_fs: firestore client is nil")
	}

	id := strings.TrimSpace(o.ID)
	if id == "" {
		return orderdom.Order{}, orderdom.ErrInvalidID
	}

	items := make([]orderItemDoc, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, orderItemDoc{
			ID:       it.ID,
			Name:     it.Name,
			Variant:  it.Variant,
			Price:    it.Price,
			Image:    it.Image,
			Quantity: it.Quantity,
		})
	}

	doc := orderDoc{
		UserID:   o.UserID,
		UserName: o.UserName,
		Items:    items,
		Total:    o.Total,
		Status:   o.Status,
	}

	wr, err := r.ordersCol().Doc(id).Create(ctx, doc)
	if err != nil {
		if status.Code(err) == codes.AlreadyExists {
			return orderdom.Order{}, fmt.Errorf("order_repository_fs: duplicate order id %s: %w", id, err)
		}
		return orderdom.Order{}, err
	}

	// UpdateTime of the create is the commit time = the server-assigned
	// createdAt; good enough without reading the doc back.
	o.CreatedAt = wr.UpdateTime
	return o, nil
}

// Exists is a dev/testing convenience.
func (r *OrderRepositoryFS) Exists(ctx context.Context, id string) (bool, error) {
	if r == nil || r.Client == nil {
		return false, errors.New("order_repository_fs: firestore client is nil")
	}

	id = strings.TrimSpace(id)
	if id == "" {
		return false, nil
	}

	_, err := r.ordersCol().Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
