// internal/adapters/out/localstore/cart_repository_file.go
package localstore

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	cartdom "vergilius/internal/domain/cart"
)

// CartRepositoryFile implements cart.Repository on a local data directory:
// one durable JSON slot per cart (file name = uid + ".json"), overwritten in
// full after every mutation.
//
// Fail-soft contract: a missing file OR an unparseable one yields (nil, nil)
// from GetByUserID. Corruption is logged and never propagated; the caller
// starts from an empty cart.
type CartRepositoryFile struct {
	Dir string
}

func NewCartRepositoryFile(dir string) (*CartRepositoryFile, error) {
	d := strings.TrimSpace(dir)
	if d == "" {
		return nil, errors.New("cart_repository_file: dir is empty")
	}
	if err := os.MkdirAll(d, 0o755); err != nil {
		return nil, err
	}
	return &CartRepositoryFile{Dir: d}, nil
}

// cartDoc is the stored shape. Kept separate from the domain struct so the
// file format can evolve without touching the entity.
type cartDoc struct {
	ID        string             `json:"id"`
	Items     []cartdom.LineItem `json:"items"`
	CreatedAt time.Time          `json:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt"`
}

func (r *CartRepositoryFile) GetByUserID(ctx context.Context, uid string) (*cartdom.Cart, error) {
	if r == nil {
		return nil, errors.New("cart_repository_file: repository is nil")
	}

	id := strings.TrimSpace(uid)
	if id == "" {
		return nil, errors.New("cart_repository_file: uid is empty")
	}

	raw, err := os.ReadFile(r.path(id))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var doc cartDoc
	if err := json.Unmarshal(raw, &doc); err != nil {
		// unreadable slot: discard, not migrate
		log.Printf("[cart_repository_file] WARN: corrupt cart file uid=%s err=%v (treating as empty)", id, err)
		return nil, nil
	}

	items := make([]cartdom.LineItem, 0, len(doc.Items))
	for _, it := range doc.Items {
		if strings.TrimSpace(it.ID) == "" || it.Quantity <= 0 {
			continue
		}
		items = append(items, it)
	}

	return &cartdom.Cart{
		// file name is the source of truth for the id
		ID:        id,
		Items:     items,
		CreatedAt: doc.CreatedAt,
		UpdatedAt: doc.UpdatedAt,
	}, nil
}

func (r *CartRepositoryFile) Upsert(ctx context.Context, c *cartdom.Cart) error {
	if r == nil {
		return errors.New("cart_repository_file: repository is nil")
	}
	if c == nil {
		return errors.New("cart_repository_file: cart is nil")
	}

	id := strings.TrimSpace(c.ID)
	if id == "" {
		return errors.New("cart_repository_file: cart.ID is empty")
	}

	doc := cartDoc{
		ID:        id,
		Items:     c.Items,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
	if doc.Items == nil {
		doc.Items = []cartdom.LineItem{}
	}

	raw, err := json.Marshal(doc)
	if err != nil {
		return err
	}

	// write-then-rename so a crash mid-write never leaves a torn slot
	tmp := r.path(id) + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, r.path(id))
}

func (r *CartRepositoryFile) DeleteByUserID(ctx context.Context, uid string) error {
	if r == nil {
		return errors.New("cart_repository_file: repository is nil")
	}

	id := strings.TrimSpace(uid)
	if id == "" {
		return errors.New("cart_repository_file: uid is empty")
	}

	if err := os.Remove(r.path(id)); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func (r *CartRepositoryFile) path(uid string) string {
	// uid comes from the identity provider; sanitize anyway
	safe := strings.Map(func(ch rune) rune {
		switch {
		case ch >= 'a' && ch <= 'z', ch >= 'A' && ch <= 'Z', ch >= '0' && ch <= '9', ch == '-', ch == '_':
			return ch
		}
		return '_'
	}, uid)
	return filepath.Join(r.Dir, safe+".json")
}
