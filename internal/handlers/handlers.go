package handlers

import (
	"marketplace-be/internal/address"
	"marketplace-be/internal/booking"
	"marketplace-be/internal/cart"
	"marketplace-be/internal/category"
	"marketplace-be/internal/order"
	"marketplace-be/internal/payment"
	"marketplace-be/internal/product"
	"marketplace-be/internal/review"
	"marketplace-be/internal/store"
	"marketplace-be/internal/user"
	"marketplace-be/internal/wishlist"
)

// Handlers holds the service dependencies for all HTTP handlers.
type Handlers struct {
	Users     user.Service
	Stores    store.Service
	Categories category.Service
	Products  product.Service
	Carts     cart.Service
	Addresses address.Service
	Orders    order.Service
	Payments  payment.Service
	Wishlists wishlist.Service
	Bookings  booking.BookingService
	Reviews   review.Service
}
