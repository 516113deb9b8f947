// internal/adapters/in/http/store/handler/order_handler.go
package storeHandler

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"vergilius/internal/adapters/in/http/middleware"
	usecase "vergilius/internal/application/usecase"
	cartdom "vergilius/internal/domain/cart"
	orderdom "vergilius/internal/domain/order"
)

// OrderHandler serves order submission.
//
//	POST /store/me/orders
//
// The submit runs under a bounded timeout so a hung order store cannot pin
// the buyer in a submitting state forever.
type OrderHandler struct {
	uc            *usecase.CheckoutUsecase
	submitTimeout time.Duration
}

const defaultSubmitTimeout = 15 * time.Second

func NewOrderHandler(uc *usecase.CheckoutUsecase, submitTimeout time.Duration) http.Handler {
	if submitTimeout <= 0 {
		submitTimeout = defaultSubmitTimeout
	}
	return &OrderHandler{uc: uc, submitTimeout: submitTimeout}
}

type orderDTO struct {
	ID        string             `json:"id"`
	UserID    string             `json:"userId"`
	UserName  string             `json:"userName"`
	Items     []cartdom.LineItem `json:"items"`
	Total     float64            `json:"total"`
	Status    string             `json:"status"`
	CreatedAt string             `json:"createdAt"`
}

func (h *OrderHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	path := strings.TrimRight(r.URL.Path, "/")

	if h.uc == nil {
		log.Printf("[store_order_handler] exit status=500 reason=checkout usecase is nil")
		writeErr(w, http.StatusInternalServerError, "order handler is not configured")
		return
	}

	if !strings.HasSuffix(path, "/orders") {
		notFound(w)
		return
	}
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}

	uid, name, email, _, _, ok := middleware.CurrentUserIdentity(r)
	if !ok {
		writeErr(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.submitTimeout)
	defer cancel()

	o, err := h.uc.Submit(ctx, usecase.SubmitInput{
		UserID:   uid,
		UserName: name,
		Email:    email,
	})
	if err != nil {
		h.writeSubmitErr(w, err, start)
		return
	}

	log.Printf("[store_order_handler] POST submit ok orderId=%s total=%.2f elapsed=%s", o.ID, o.Total, time.Since(start))
	writeJSON(w, http.StatusCreated, toOrderDTO(o))
}

func (h *OrderHandler) writeSubmitErr(w http.ResponseWriter, err error, start time.Time) {
	log.Printf("[store_order_handler] POST submit error err=%v elapsed=%s", err, time.Since(start))

	switch {
	case errors.Is(err, usecase.ErrCheckoutEmptyCart):
		writeErr(w, http.StatusBadRequest, "cart is empty")
	case errors.Is(err, usecase.ErrCheckoutInFlight):
		// the buyer's previous submit is still running; not retryable yet
		writeErr(w, http.StatusConflict, "submission already in progress")
	case errors.Is(err, context.DeadlineExceeded):
		writeErr(w, http.StatusGatewayTimeout, "order store did not respond; cart preserved, please retry")
	default:
		// cart preserved by the usecase invariant; buyer may retry as-is
		writeErr(w, http.StatusBadGateway, "order could not be recorded; please retry")
	}
}

func toOrderDTO(o orderdom.Order) orderDTO {
	items := o.Items
	if items == nil {
		items = []cartdom.LineItem{}
	}
	return orderDTO{
		ID:        o.ID,
		UserID:    o.UserID,
		UserName:  o.UserName,
		Items:     items,
		Total:     o.Total,
		Status:    o.Status,
		CreatedAt: toRFC3339(o.CreatedAt),
	}
}
