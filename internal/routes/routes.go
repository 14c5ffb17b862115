package routes

import (
	"net/http"

	"marketplace-be/internal/handlers"
	"marketplace-be/internal/metrics"
	"marketplace-be/internal/middleware"
	"marketplace-be/internal/utils"

	"github.com/gin-gonic/gin"
)

// SetupRouter wires every endpoint under /v1. Public reads stay open,
// everything that touches a user's own data sits behind Auth, and the
// store and admin surfaces add role checks on top.
func SetupRouter(h *handlers.Handlers, stats *metrics.RequestStats) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.Logging(stats))
	router.Use(middleware.RateLimit())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/v1")
	{
		// Auth endpoints get the tight limiter to slow brute force.
		v1.POST("/auth/register", middleware.StrictRateLimit(), h.Register)
		v1.POST("/auth/login", middleware.StrictRateLimit(), h.Login)

		// Public catalog reads.
		v1.GET("/categories", h.ListCategories)
		v1.GET("/categories/:id", h.GetCategory)
		v1.GET("/products", h.ListProducts)
		v1.GET("/products/:id", h.GetProduct)
		v1.GET("/products/:id/reviews", h.ListProductReviews)
		v1.GET("/products/:id/reviews/summary", h.ProductReviewSummary)
		v1.GET("/stores", h.ListStores)
		v1.GET("/stores/:id", h.GetStore)

		// Public service marketplace reads.
		v1.GET("/providers", h.ListProviders)
		v1.GET("/services", h.ListServices)
		v1.GET("/services/:id", h.GetService)

		auth := v1.Group("/")
		auth.Use(middleware.Auth())
		{
			auth.GET("/me", h.Me)

			// Cart.
			auth.GET("/cart", h.GetCart)
			auth.POST("/cart/items", h.AddCartItem)
			auth.PUT("/cart/items/:id", h.UpdateCartItem)
			auth.DELETE("/cart/items/:id", h.RemoveCartItem)
			auth.DELETE("/cart", h.ClearCart)

			// Orders.
			auth.POST("/orders/create-from-cart", h.Checkout)
			auth.GET("/orders", h.ListOrders)
			auth.GET("/orders/:id", h.GetOrder)
			auth.POST("/orders/:id/cancel", h.CancelOrder)
			auth.GET("/orders/:id/payment", h.GetOrderPayment)

			// Payments.
			auth.GET("/payments", h.ListPayments)

			// Addresses.
			auth.GET("/addresses", h.ListAddresses)
			auth.POST("/addresses", h.CreateAddress)
			auth.GET("/addresses/:id", h.GetAddress)
			auth.PUT("/addresses/:id", h.UpdateAddress)
			auth.DELETE("/addresses/:id", h.DeleteAddress)
			auth.POST("/addresses/:id/default", h.SetDefaultAddress)

			// Wishlist.
			auth.GET("/wishlist", h.ListWishlist)
			auth.POST("/wishlist", h.AddToWishlist)
			auth.GET("/wishlist/:productId", h.CheckWishlist)
			auth.DELETE("/wishlist/:productId", h.RemoveFromWishlist)
			auth.DELETE("/wishlist", h.ClearWishlist)

			// Reviews. Creation hangs off the product, edits off the review.
			auth.POST("/products/:id/reviews", h.CreateReview)
			auth.PUT("/reviews/:id", h.UpdateReview)
			auth.DELETE("/reviews/:id", h.DeleteReview)

			// Service bookings.
			auth.POST("/bookings", h.CreateBooking)
			auth.GET("/bookings", h.ListBookings)
			auth.GET("/bookings/:id", h.GetBooking)
			auth.PATCH("/bookings/:id/status", h.TransitionBooking)
		}

		// Store management. Registration is open to any logged-in user
		// with the store_owner role; the rest requires owning a store,
		// which the services enforce.
		storeOwner := v1.Group("/store")
		storeOwner.Use(middleware.Auth(), middleware.RequireRole(utils.RoleStoreOwner, utils.RoleAdmin))
		{
			storeOwner.POST("/", h.CreateStore)
			storeOwner.GET("/me", h.GetOwnStore)
			storeOwner.PUT("/:id", h.UpdateStore)
			storeOwner.GET("/statistics", h.StoreStatistics)

			storeOwner.POST("/products", h.CreateProduct)
			storeOwner.PUT("/products/:id", h.UpdateProduct)
			storeOwner.DELETE("/products/:id", h.DeleteProduct)

			storeOwner.GET("/orders", h.ListStoreOrders)
			storeOwner.PATCH("/orders/:id/status", h.UpdateOrderStatus)
		}

		// Service providers.
		provider := v1.Group("/provider")
		provider.Use(middleware.Auth(), middleware.RequireRole(utils.RoleServiceProvider, utils.RoleAdmin))
		{
			provider.POST("/register", h.RegisterProvider)
			provider.POST("/services", h.AddService)
		}

		// Admin.
		admin := v1.Group("/admin")
		admin.Use(middleware.Auth(), middleware.RequireRole(utils.RoleAdmin))
		{
			admin.POST("/categories", h.CreateCategory)
			admin.PUT("/categories/:id", h.UpdateCategory)
			admin.DELETE("/categories/:id", h.DeleteCategory)

			admin.POST("/payments/:id/paid", h.MarkPaymentPaid)
			admin.POST("/payments/:id/failed", h.MarkPaymentFailed)
		}
	}

	return router
}
