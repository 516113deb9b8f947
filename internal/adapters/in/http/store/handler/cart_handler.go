// internal/adapters/in/http/store/handler/cart_handler.go
package storeHandler

import (
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"vergilius/internal/adapters/in/http/middleware"
	usecase "vergilius/internal/application/usecase"
	cartdom "vergilius/internal/domain/cart"
)

// CartHandler serves the buyer cart endpoints.
//
//	GET    /store/me/cart        current cart (empty cart for new buyers)
//	DELETE /store/me/cart        clear
//	POST   /store/me/cart/items  add item (qty >= 1)
//	PUT    /store/me/cart/items  set absolute qty (<= 0 removes)
//	DELETE /store/me/cart/items  remove item
type CartHandler struct {
	uc *usecase.CartUsecase
}

func NewCartHandler(uc *usecase.CartUsecase) http.Handler {
	return &CartHandler{uc: uc}
}

func (h *CartHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	path := strings.TrimRight(r.URL.Path, "/")

	if h.uc == nil {
		log.Printf("[store_cart_handler] exit status=500 reason=cart usecase is nil")
		writeErr(w, http.StatusInternalServerError, "cart handler is not configured")
		return
	}

	uid, ok := middleware.CurrentUserUID(r)
	if !ok {
		writeErr(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	isItems := strings.HasSuffix(path, "/cart/items")
	isCart := strings.HasSuffix(path, "/cart")

	switch {
	case r.Method == http.MethodGet && isCart:
		h.handleGet(w, r, uid, start)
	case r.Method == http.MethodDelete && isCart:
		h.handleClear(w, r, uid, start)
	case r.Method == http.MethodPost && isItems:
		h.handleAddItem(w, r, uid, start)
	case r.Method == http.MethodPut && isItems:
		h.handleSetQuantity(w, r, uid, start)
	case r.Method == http.MethodDelete && isItems:
		h.handleRemoveItem(w, r, uid, start)
	case isCart || isItems:
		methodNotAllowed(w)
	default:
		notFound(w)
	}
}

func (h *CartHandler) handleGet(w http.ResponseWriter, r *http.Request, uid string, start time.Time) {
	c, err := h.uc.Get(r.Context(), uid)
	if err != nil {
		h.writeUcErr(w, err)
		return
	}
	log.Printf("[store_cart_handler] GET ok items=%d elapsed=%s", len(c.Items), time.Since(start))
	writeJSON(w, http.StatusOK, toCartDTO(c))
}

// addItemReq carries the add-time product snapshot from the page.
type addItemReq struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Variant  string  `json:"variant"`
	Price    float64 `json:"price"`
	Image    string  `json:"image"`
	Quantity int     `json:"quantity"`
}

func (h *CartHandler) handleAddItem(w http.ResponseWriter, r *http.Request, uid string, start time.Time) {
	var req addItemReq
	if err := readJSON(r, &req); err != nil {
		log.Printf("[store_cart_handler] POST add-item exit status=400 reason=invalid json err=%v", err)
		writeErr(w, http.StatusBadRequest, "invalid json body")
		return
	}

	if strings.TrimSpace(req.ID) == "" || req.Quantity < 1 {
		writeErr(w, http.StatusBadRequest, "id and quantity(>=1) are required")
		return
	}
	if req.Price < 0 {
		writeErr(w, http.StatusBadRequest, "price must be >= 0")
		return
	}

	c, err := h.uc.AddItem(r.Context(), uid, cartdom.Product{
		ID:      req.ID,
		Name:    req.Name,
		Variant: req.Variant,
		Price:   req.Price,
		Image:   req.Image,
	}, req.Quantity)
	if err != nil {
		h.writeUcErr(w, err)
		return
	}

	log.Printf("[store_cart_handler] POST add-item ok id=%s qty=%d elapsed=%s", req.ID, req.Quantity, time.Since(start))
	writeJSON(w, http.StatusOK, toCartDTO(c))
}

type setQuantityReq struct {
	ID       string `json:"id"`
	Quantity int    `json:"quantity"`
}

func (h *CartHandler) handleSetQuantity(w http.ResponseWriter, r *http.Request, uid string, start time.Time) {
	var req setQuantityReq
	if err := readJSON(r, &req); err != nil {
		log.Printf("[store_cart_handler] PUT set-qty exit status=400 reason=invalid json err=%v", err)
		writeErr(w, http.StatusBadRequest, "invalid json body")
		return
	}

	if strings.TrimSpace(req.ID) == "" {
		writeErr(w, http.StatusBadRequest, "id is required")
		return
	}

	c, err := h.uc.SetItemQuantity(r.Context(), uid, req.ID, req.Quantity)
	if err != nil {
		h.writeUcErr(w, err)
		return
	}

	log.Printf("[store_cart_handler] PUT set-qty ok id=%s qty=%d elapsed=%s", req.ID, req.Quantity, time.Since(start))
	writeJSON(w, http.StatusOK, toCartDTO(c))
}

type removeItemReq struct {
	ID string `json:"id"`
}

func (h *CartHandler) handleRemoveItem(w http.ResponseWriter, r *http.Request, uid string, start time.Time) {
	var req removeItemReq
	if err := readJSON(r, &req); err != nil {
		log.Printf("[store_cart_handler] DELETE remove-item exit status=400 reason=invalid json err=%v", err)
		writeErr(w, http.StatusBadRequest, "invalid json body")
		return
	}

	if strings.TrimSpace(req.ID) == "" {
		writeErr(w, http.StatusBadRequest, "id is required")
		return
	}

	c, err := h.uc.RemoveItem(r.Context(), uid, req.ID)
	if err != nil {
		h.writeUcErr(w, err)
		return
	}

	log.Printf("[store_cart_handler] DELETE remove-item ok id=%s elapsed=%s", req.ID, time.Since(start))
	writeJSON(w, http.StatusOK, toCartDTO(c))
}

func (h *CartHandler) handleClear(w http.ResponseWriter, r *http.Request, uid string, start time.Time) {
	c, err := h.uc.Clear(r.Context(), uid)
	if err != nil {
		h.writeUcErr(w, err)
		return
	}
	log.Printf("[store_cart_handler] DELETE clear ok elapsed=%s", time.Since(start))
	writeJSON(w, http.StatusOK, toCartDTO(c))
}

func (h *CartHandler) writeUcErr(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, usecase.ErrCartInvalidArgument),
		errors.Is(err, cartdom.ErrInvalidCart),
		errors.Is(err, cartdom.ErrInvalidProduct),
		errors.Is(err, cartdom.ErrInvalidQuantity):
		writeErr(w, http.StatusBadRequest, err.Error())
	default:
		writeErr(w, http.StatusInternalServerError, err.Error())
	}
}
