// internal/adapters/in/http/store/handler/catalog_handler.go
package storeHandler

import (
	"log"
	"net/http"
	"time"

	usecase "vergilius/internal/application/usecase"
)

// CatalogHandler serves the public product lineup.
//
//	GET /store/catalog
type CatalogHandler struct {
	uc *usecase.CatalogUsecase
}

func NewCatalogHandler(uc *usecase.CatalogUsecase) http.Handler {
	return &CatalogHandler{uc: uc}
}

func (h *CatalogHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	if h.uc == nil {
		log.Printf("[store_catalog_handler] exit status=500 reason=catalog usecase is nil")
		writeErr(w, http.StatusInternalServerError, "catalog handler is not configured")
		return
	}
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}

	entries := h.uc.List(r.Context())
	log.Printf("[store_catalog_handler] GET ok products=%d elapsed=%s", len(entries), time.Since(start))
	writeJSON(w, http.StatusOK, map[string]any{"products": entries})
}
