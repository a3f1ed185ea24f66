package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"

	"github.com/glowcart/glowcart-api/internal/config"
	"github.com/glowcart/glowcart-api/internal/middleware"
	"github.com/glowcart/glowcart-api/internal/repository"
	"github.com/glowcart/glowcart-api/shared/auth"
)

// Handlers bundles the HTTP handlers mounted by NewRouter.
type Handlers struct {
	Auth     *AuthHandler
	User     *UserHandler
	Product  *ProductHandler
	Cart     *CartHandler
	Wishlist *WishlistHandler
	Review   *ReviewHandler
	Order    *OrderHandler
	Payment  *PaymentHandler
}

// NewRouter mounts the API surface. Routes marked admin-only require the
// admin flag on the session token; everything else under an auth group only
// requires a valid token.
func NewRouter(
	cfg *config.ServerConfig,
	logger *zerolog.Logger,
	jwtAuth auth.JWTAuthenticator,
	activityRepo repository.ActivityLogRepository,
	h Handlers,
) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.ActivityLog(jwtAuth, activityRepo, logger))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.AllowedOrigin},
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	requireAuth := middleware.RequireAuth(jwtAuth)
	requireAdmin := middleware.RequireAdmin(jwtAuth)

	r.Route("/api/user", func(r chi.Router) {
		r.Post("/create", h.Auth.Register)
		r.Post("/login", h.Auth.Login)
		r.Post("/verify_login_otp", h.Auth.VerifyLoginOTP)
		r.Post("/resend_login_otp", h.Auth.ResendLoginOTP)
		r.Post("/verify_register_otp", h.Auth.VerifyRegisterOTP)
		r.Post("/forgot_password", h.Auth.ForgotPassword)
		r.Post("/verify_otp", h.Auth.ResetPassword)

		r.Group(func(r chi.Router) {
			r.Use(requireAuth)
			r.Get("/current", h.User.Current)
			r.Put("/update", h.User.Update)
			r.Post("/profile_picture", h.User.UploadProfilePicture)
		})
	})

	r.Route("/api/product", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(requireAdmin)
			r.Post("/create", h.Product.Create)
			r.Put("/update_product/{id}", h.Product.Update)
			r.Delete("/delete_product/{id}", h.Product.Delete)
		})

		r.Group(func(r chi.Router) {
			r.Use(requireAuth)
			r.Get("/get_all_products", h.Product.List)
			r.Get("/get_single_product/{id}", h.Product.Get)
		})

		r.Get("/pagination", h.Product.Paginate)
		r.Get("/filter", h.Product.Filter)
		r.Get("/search", h.Product.Search)
	})

	r.Route("/api/cart", func(r chi.Router) {
		r.Use(requireAuth)
		r.Post("/add_to_cart", h.Cart.Add)
		r.Put("/remove_from_cart/{id}", h.Cart.Remove)
		r.Get("/get_cart", h.Cart.Get)
		r.Put("/update_quantity", h.Cart.UpdateQuantity)
		r.Put("/update_status", h.Cart.UpdateStatus)
	})

	r.Route("/api/wishlist", func(r chi.Router) {
		r.Use(requireAuth)
		r.Post("/add", h.Wishlist.Add)
		r.Post("/remove", h.Wishlist.Remove)
		r.Get("/get_wishlist", h.Wishlist.Get)
	})

	r.Route("/api/review", func(r chi.Router) {
		r.Get("/get_average_rating/{id}", h.Review.AverageRating)

		r.Group(func(r chi.Router) {
			r.Use(requireAuth)
			r.Post("/post_reviews", h.Review.Create)
			r.Get("/get_reviews/{id}", h.Review.ListByProduct)
			r.Get("/get_reviews_by_user_and_product/{id}", h.Review.GetOwn)
			r.Put("/update_reviews/{id}", h.Review.Update)
		})
	})

	r.Route("/api/order", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(requireAuth)
			r.Post("/place_order", h.Order.Place)
			r.Get("/get_orders_by_user", h.Order.ListByUser)
		})

		r.Group(func(r chi.Router) {
			r.Use(requireAdmin)
			r.Get("/get_all_orders", h.Order.ListAll)
			r.Post("/update_order_status/{orderId}", h.Order.UpdateStatus)
		})
	})

	r.Route("/api/khalti", func(r chi.Router) {
		r.Post("/initialize-khalti", h.Payment.Initialize)
		r.Get("/complete-khalti-payment", h.Payment.Complete)
	})

	uploads := http.StripPrefix("/uploads/", http.FileServer(http.Dir(cfg.UploadDir)))
	r.Get("/uploads/*", uploads.ServeHTTP)

	return r
}
