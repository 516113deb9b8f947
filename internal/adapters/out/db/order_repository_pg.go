// internal/adapters/out/db/order_repository_pg.go
package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"
	"time"

	orderdom "vergilius/internal/domain/order"
)

// PostgreSQL implementation of order.Repository (write-once).
// Items are stored as JSONB; created_at is assigned by the database.
type OrderRepositoryPG struct {
	DB *sql.DB
}

func NewOrderRepositoryPG(db *sql.DB) *OrderRepositoryPG {
	return &OrderRepositoryPG{DB: db}
}

type pgItem struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Variant  string  `json:"variant"`
	Price    float64 `json:"price"`
	Image    string  `json:"image"`
	Quantity int     `json:"quantity"`
}

func (r *OrderRepositoryPG) Create(ctx context.Context, o orderdom.Order) (orderdom.Order, error) {
	if r == nil || r.DB == nil {
		return orderdom.Order{}, errors.New("order_repository_pg: db is nil")
	}

	id := strings.TrimSpace(o.ID)
	if id == "" {
		return orderdom.Order{}, orderdom.ErrInvalidID
	}

	items := make([]pgItem, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, pgItem{
			ID:       it.ID,
			Name:     it.Name,
			Variant:  it.Variant,
			Price:    it.Price,
			Image:    it.Image,
			Quantity: it.Quantity,
		})
	}

	itemsJSON, err := json.Marshal(items)
	if err != nil {
		return orderdom.Order{}, err
	}

	const q = `
INSERT INTO orders (id, user_id, user_name, items, total, status)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING created_at`

	var createdAt time.Time
	if err := r.DB.QueryRowContext(ctx, q,
		id, o.UserID, o.UserName, itemsJSON, o.Total, o.Status,
	).Scan(&createdAt); err != nil {
		return orderdom.Order{}, err
	}

	o.CreatedAt = createdAt.UTC()
	return o, nil
}

func (r *OrderRepositoryPG) Exists(ctx context.Context, id string) (bool, error) {
	if r == nil || r.DB == nil {
		return false, errors.New("order_repository_pg: db is nil")
	}

	id = strings.TrimSpace(id)
	if id == "" {
		return false, nil
	}

	var one int
	err := r.DB.QueryRowContext(ctx, `SELECT 1 FROM orders WHERE id = $1`, id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
