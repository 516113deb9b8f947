// internal/domain/product/entity.go
package product

// Product is a showcase catalog entry.
// The catalog is display data only: the cart captures name/price at add time
// and never re-validates against it.
type Product struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Variant string  `json:"variant"`
	Price   float64 `json:"price"`

	// ImagePath is the storage object path for the bottle shot; resolved
	// to a public URL by the image resolver before display.
	ImagePath string `json:"imagePath"`

	Notes string `json:"notes"`
}

// DefaultCatalog is the seeded mead lineup shown on the landing page.
func DefaultCatalog() []Product {
	return []Product{
		{
			ID:        "idromele-07l",
			Name:      "Idromele Classico",
			Variant:   "0.7L",
			Price:     25.00,
			ImagePath: "products/idromele-07l.png",
			Notes:     "Miele millefiori, fermentazione lenta, note di albicocca.",
		},
		{
			ID:        "idromele-barrique-07l",
			Name:      "Idromele Barrique",
			Variant:   "0.7L",
			Price:     38.00,
			ImagePath: "products/idromele-barrique-07l.png",
			Notes:     "Affinato in rovere, vaniglia e fumo dolce.",
		},
		{
			ID:        "idromele-speziato-05l",
			Name:      "Idromele Speziato",
			Variant:   "0.5L",
			Price:     22.00,
			ImagePath: "products/idromele-speziato-05l.png",
			Notes:     "Cannella, chiodi di garofano, scorza d'arancia.",
		},
	}
}
