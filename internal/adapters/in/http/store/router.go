// internal/adapters/in/http/store/router.go
package store

import (
	"log"
	"net/http"
)

// Deps is the buyer-facing (store) handler set.
// Handlers arrive already wrapped with whatever auth they need; the router
// only maps paths.
type Deps struct {
	Catalog http.Handler

	Cart  http.Handler
	Order http.Handler

	SignUp  http.Handler // public
	SignIn  http.Handler
	SignOut http.Handler
}

// handleSafe registers pattern with h.
// If h is nil, it logs and registers NotFoundHandler instead (so Cloud Run won't crash).
func handleSafe(mux *http.ServeMux, pattern string, h http.Handler, name string) {
	if h == nil {
		log.Printf("[store.router] WARN: nil handler: %s pattern=%s (registering NotFoundHandler)", name, pattern)
		h = http.NotFoundHandler()
	}
	mux.Handle(pattern, h)
}

// Register registers buyer-facing routes onto mux (store only).
func Register(mux *http.ServeMux, deps Deps) {
	if mux == nil {
		return
	}

	// catalog (public showcase)
	handleSafe(mux, "/store/catalog", deps.Catalog, "Catalog")
	handleSafe(mux, "/store/catalog/", deps.Catalog, "Catalog")

	// cart
	handleSafe(mux, "/store/me/cart", deps.Cart, "Cart(me)")
	handleSafe(mux, "/store/me/cart/", deps.Cart, "Cart(me)")

	// orders
	handleSafe(mux, "/store/me/orders", deps.Order, "Order(me)")
	handleSafe(mux, "/store/me/orders/", deps.Order, "Order(me)")

	// onboarding
	handleSafe(mux, "/store/sign-up", deps.SignUp, "SignUp")
	handleSafe(mux, "/store/sign-up/", deps.SignUp, "SignUp")
	handleSafe(mux, "/store/sign-in", deps.SignIn, "SignIn")
	handleSafe(mux, "/store/sign-in/", deps.SignIn, "SignIn")
	handleSafe(mux, "/store/sign-out", deps.SignOut, "SignOut")
	handleSafe(mux, "/store/sign-out/", deps.SignOut, "SignOut")
}
