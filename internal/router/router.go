package router

import (
	"net/http"

	"storefront/internal/handler"
	"storefront/internal/middleware"

	"github.com/rs/zerolog"
)

// Handlers groups the HTTP handlers served by the router.
type Handlers struct {
	Product  *handler.ProductHandler
	Cart     *handler.CartHandler
	Checkout *handler.CheckoutHandler
	Account  *handler.AccountHandler
	Admin    *handler.AdminHandler
}

// Options configures route guards and static content.
type Options struct {
	Verifier    middleware.TokenVerifier
	LoginPath   string
	AdminAPIKey string
	// ImageDir is served under /images/ when set.
	ImageDir string
}

// New creates a new HTTP router with all routes and middleware configured.
func New(h Handlers, opts Options, logger zerolog.Logger) http.Handler {
	mux := http.NewServeMux()

	// Health check endpoint (no authentication required)
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy"}`))
	})

	// Public catalogue
	mux.HandleFunc("GET /api/products", h.Product.List)
	mux.HandleFunc("GET /api/products/{id}", h.Product.GetByID)

	if opts.ImageDir != "" {
		mux.Handle("GET /images/", http.StripPrefix("/images/", http.FileServer(http.Dir(opts.ImageDir))))
	}

	// Signed-in user routes
	user := middleware.Authenticate(opts.Verifier, opts.LoginPath, logger)
	userRoute := func(pattern string, fn http.HandlerFunc) {
		mux.Handle(pattern, user(fn))
	}

	userRoute("GET /api/cart", h.Cart.Get)
	userRoute("POST /api/cart", h.Cart.Add)
	userRoute("DELETE /api/cart", h.Cart.Clear)
	userRoute("PATCH /api/cart/{productId}", h.Cart.Update)
	userRoute("DELETE /api/cart/{productId}", h.Cart.Remove)

	userRoute("POST /api/checkout/quote", h.Checkout.Quote)
	userRoute("POST /api/checkout", h.Checkout.PlaceOrder)

	userRoute("GET /api/account/profile", h.Account.Profile)
	userRoute("PUT /api/account/profile", h.Account.UpdateProfile)
	userRoute("GET /api/account/orders", h.Account.ListOrders)
	userRoute("GET /api/account/orders/{id}", h.Account.GetOrder)
	userRoute("GET /api/account/addresses", h.Account.ListAddresses)
	userRoute("POST /api/account/addresses", h.Account.CreateAddress)
	userRoute("PUT /api/account/addresses/{id}", h.Account.UpdateAddress)
	userRoute("DELETE /api/account/addresses/{id}", h.Account.DeleteAddress)

	// Admin console routes
	admin := middleware.AdminKey(opts.AdminAPIKey, logger)
	mux.Handle("POST /api/admin/products", admin(http.HandlerFunc(h.Admin.CreateProduct)))
	mux.Handle("POST /api/admin/images", admin(http.HandlerFunc(h.Admin.UploadImage)))
	mux.Handle("GET /api/admin/users", admin(http.HandlerFunc(h.Admin.ListUsers)))

	// Apply middleware in order: Recovery -> RequestID -> Logging -> CORS
	var handler http.Handler = mux
	handler = middleware.CORS(handler)
	handler = middleware.Logging(logger)(handler)
	handler = middleware.RequestID(handler)
	handler = middleware.Recovery(logger)(handler)

	return handler
}
