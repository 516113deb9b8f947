// internal/application/usecase/catalog_usecase.go
package usecase

import (
	"context"
	"log"

	productdom "vergilius/internal/domain/product"
)

// ImageURLResolver resolves a storage object path to a displayable URL.
type ImageURLResolver interface {
	Resolve(ctx context.Context, objectPath string) (string, error)
}

// CatalogEntry is the showcase read model.
type CatalogEntry struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Variant  string  `json:"variant"`
	Price    float64 `json:"price"`
	ImageURL string  `json:"imageUrl"`
	Notes    string  `json:"notes"`
}

// CatalogUsecase serves the seeded product lineup for the landing page.
// Display data only; the cart never re-validates prices against it.
type CatalogUsecase struct {
	products []productdom.Product
	images   ImageURLResolver // optional
}

func NewCatalogUsecase(products []productdom.Product, images ImageURLResolver) *CatalogUsecase {
	if products == nil {
		products = productdom.DefaultCatalog()
	}
	return &CatalogUsecase{products: products, images: images}
}

func (uc *CatalogUsecase) List(ctx context.Context) []CatalogEntry {
	out := make([]CatalogEntry, 0, len(uc.products))
	for _, p := range uc.products {
		url := p.ImagePath
		if uc.images != nil {
			resolved, err := uc.images.Resolve(ctx, p.ImagePath)
			if err != nil {
				// keep the raw path; the page falls back to bundled assets
				log.Printf("[catalog_uc] WARN: image resolve failed path=%s err=%v", p.ImagePath, err)
			} else if resolved != "" {
				url = resolved
			}
		}
		out = append(out, CatalogEntry{
			ID:       p.ID,
			Name:     p.Name,
			Variant:  p.Variant,
			Price:    p.Price,
			ImageURL: url,
			Notes:    p.Notes,
		})
	}
	return out
}
