// internal/platform/di/store/container.go
package store

import (
	"context"
	"log"
	"net/http"
	"strings"

	"vergilius/internal/adapters/in/http/middleware"
	storerouter "vergilius/internal/adapters/in/http/store"
	storeHandler "vergilius/internal/adapters/in/http/store/handler"
	outdb "vergilius/internal/adapters/out/db"
	outfs "vergilius/internal/adapters/out/firestore"
	gcso "vergilius/internal/adapters/out/gcs"
	outid "vergilius/internal/adapters/out/identity"
	outls "vergilius/internal/adapters/out/localstore"
	outmail "vergilius/internal/adapters/out/mail"
	usecase "vergilius/internal/application/usecase"
	cartdom "vergilius/internal/domain/cart"
	orderdom "vergilius/internal/domain/order"

	shared "vergilius/internal/platform/di/shared"
)

// Container is the store DI container.
// Pure DI: build deps only. No routing branching, no reflection tricks.
type Container struct {
	Infra *shared.Infra

	CartUC     *usecase.CartUsecase
	CheckoutUC *usecase.CheckoutUsecase
	AuthUC     *usecase.AuthUsecase
	CatalogUC  *usecase.CatalogUsecase
}

// NewContainer wires repositories and usecases from shared infra.
func NewContainer(ctx context.Context, inf *shared.Infra) (*Container, error) {
	cont := &Container{Infra: inf}
	cfg := inf.Config

	// cart repository (backend switch)
	var cartRepo cartdom.Repository
	switch strings.ToLower(strings.TrimSpace(cfg.CartBackend)) {
	case "firestore":
		cartRepo = outfs.NewCartRepositoryFS(inf.Firestore)
		log.Printf("[di.store] cart backend=firestore")
	default:
		repo, err := outls.NewCartRepositoryFile(cfg.CartDataDir)
		if err != nil {
			return nil, err
		}
		cartRepo = repo
		log.Printf("[di.store] cart backend=file dir=%s", cfg.CartDataDir)
	}

	// order repository (backend switch)
	var orderRepo orderdom.Repository
	switch strings.ToLower(strings.TrimSpace(cfg.OrderBackend)) {
	case "postgres":
		orderRepo = outdb.NewOrderRepositoryPG(inf.OrderDB)
		log.Printf("[di.store] order backend=postgres")
	default:
		orderRepo = outfs.NewOrderRepositoryFS(inf.Firestore)
		log.Printf("[di.store] order backend=firestore")
	}

	// mailer (optional; disabled when no key is resolvable)
	var mailer usecase.OrderMailer
	if m := buildOrderMailer(ctx, inf); m != nil {
		mailer = m
	}

	// image resolver (optional)
	var images usecase.ImageURLResolver
	if inf.GCS != nil && strings.TrimSpace(cfg.ProductImageBucket) != "" {
		images = gcso.NewProductImageResolver(inf.GCS, cfg.ProductImageBucket)
	} else {
		log.Printf("[di.store] product image resolver disabled (no GCS client or bucket)")
	}

	cont.CartUC = usecase.NewCartUsecase(cartRepo)
	cont.CheckoutUC = usecase.NewCheckoutUsecase(cont.CartUC, orderRepo, mailer)
	cont.CatalogUC = usecase.NewCatalogUsecase(nil, images)

	// auth usecase needs both the identity provider and the user repo
	var provider usecase.IdentityProvider
	if inf.FirebaseAuth != nil {
		provider = outid.NewFirebaseIdentity(inf.FirebaseAuth)
	} else {
		log.Printf("[di.store] WARN: firebase auth missing; sign-up/sign-out disabled")
	}
	cont.AuthUC = usecase.NewAuthUsecase(provider, outfs.NewUserRepositoryFS(inf.Firestore))

	return cont, nil
}

// buildOrderMailer resolves the SendGrid key (env first, Secret Manager next)
// and returns nil when mail is not configured.
func buildOrderMailer(ctx context.Context, inf *shared.Infra) *outmail.OrderMailer {
	cfg := inf.Config

	key := strings.TrimSpace(cfg.SendGridAPIKey)
	if key == "" && inf.SecretManager != nil && strings.TrimSpace(cfg.SendGridSecretName) != "" {
		p := &sendGridKeyProviderSM{
			sm:        inf.SecretManager,
			projectID: inf.ProjectID,
			secretID:  cfg.SendGridSecretName,
			version:   "latest",
		}
		k, err := p.APIKey(ctx)
		if err != nil {
			log.Printf("[di.store] WARN: sendgrid key fetch failed: %v (order mail disabled)", err)
		} else {
			key = k
		}
	}
	if key == "" {
		log.Printf("[di.store] order mail disabled (no SendGrid key)")
		return nil
	}

	return outmail.NewOrderMailer(outmail.NewSendGridClient(key), cfg.OrderMailFrom)
}

// RegisterRoutes builds handlers from the container and registers store routes.
// Protected routes sit behind the user auth middleware; sign-up and catalog
// stay public.
func RegisterRoutes(mux *http.ServeMux, cont *Container) {
	if mux == nil || cont == nil {
		return
	}

	cartH := storeHandler.NewCartHandler(cont.CartUC)
	orderH := storeHandler.NewOrderHandler(cont.CheckoutUC, cont.Infra.Config.SubmitTimeout)
	catalogH := storeHandler.NewCatalogHandler(cont.CatalogUC)
	authH := storeHandler.NewAuthHandler(cont.AuthUC)

	signUpH := http.HandlerFunc(authH.SignUp)
	signInH := http.HandlerFunc(authH.SignIn)
	signOutH := http.HandlerFunc(authH.SignOut)

	deps := storerouter.Deps{
		Catalog: catalogH,
		Cart:    cartH,
		Order:   orderH,
		SignUp:  signUpH,
		SignIn:  signInH,
		SignOut: signOutH,
	}

	if cont.Infra.FirebaseAuth != nil {
		userAuth := &middleware.UserAuthMiddleware{FirebaseAuth: cont.Infra.FirebaseAuth}
		deps.Cart = userAuth.Handler(deps.Cart)
		deps.Order = userAuth.Handler(deps.Order)
		deps.SignIn = userAuth.Handler(deps.SignIn)
		deps.SignOut = userAuth.Handler(deps.SignOut)
	} else {
		log.Printf("[di.store] WARN: user_auth middleware is not available (firebase auth client missing). protected routes may 401.")
	}

	storerouter.Register(mux, deps)
}
