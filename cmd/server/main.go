package main

import (
	"marketplace-be/internal/address"
	"marketplace-be/internal/booking"
	"marketplace-be/internal/cart"
	"marketplace-be/internal/category"
	"marketplace-be/internal/config"
	"marketplace-be/internal/db"
	"marketplace-be/internal/handlers"
	"marketplace-be/internal/logger"
	"marketplace-be/internal/metrics"
	"marketplace-be/internal/order"
	"marketplace-be/internal/payment"
	"marketplace-be/internal/product"
	"marketplace-be/internal/review"
	"marketplace-be/internal/routes"
	"marketplace-be/internal/store"
	"marketplace-be/internal/user"
	"marketplace-be/internal/wishlist"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	cfg := config.LoadConfig()

	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	database := db.InitDB(cfg)
	defer database.Close()

	if cfg.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	userRepo := user.NewRepository(database)
	userSvc := user.NewService(userRepo)

	storeRepo := store.NewRepository(database)
	storeSvc := store.NewService(storeRepo)

	categoryRepo := category.NewRepository(database)
	categorySvc := category.NewService(categoryRepo)

	productRepo := product.NewRepository(database)
	productSvc := product.NewService(productRepo, storeRepo)

	cartRepo := cart.NewRepository(database)
	cartSvc := cart.NewService(cartRepo, productRepo)

	orderRepo := order.NewRepository(database)
	orderSvc := order.NewService(orderRepo, storeRepo)

	paymentRepo := payment.NewRepository(database)
	paymentSvc := payment.NewService(paymentRepo)

	addressRepo := address.NewRepository(database)
	addressSvc := address.NewService(addressRepo)

	wishlistRepo := wishlist.NewRepository(database)
	wishlistSvc := wishlist.NewService(wishlistRepo)

	bookingRepo := booking.NewRepository(database)
	bookingSvc := booking.NewService(bookingRepo)

	reviewRepo := review.NewRepository(database)
	reviewSvc := review.NewService(reviewRepo)

	h := &handlers.Handlers{
		Users:      userSvc,
		Stores:     storeSvc,
		Categories: categorySvc,
		Products:   productSvc,
		Carts:      cartSvc,
		Addresses:  addressSvc,
		Orders:     orderSvc,
		Payments:   paymentSvc,
		Wishlists:  wishlistSvc,
		Bookings:   bookingSvc,
		Reviews:    reviewSvc,
	}

	stats := &metrics.RequestStats{}
	router := routes.SetupRouter(h, stats)

	logger.L().Info("server starting", zap.String("port", cfg.AppPort), zap.String("env", cfg.AppEnv))
	if err := router.Run(":" + cfg.AppPort); err != nil {
		logger.L().Fatal("server stopped", zap.Error(err))
	}
}
