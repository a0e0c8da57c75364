package wire

import (
	"wellness-booking/internal/adaptor"
	"wellness-booking/internal/data/repository"
	"wellness-booking/pkg/middleware"
	"wellness-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireBooking(
	r chi.Router,
	bookingHandler *adaptor.BookingHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	// POST /api/bookings - Create booking (customers book without an account)
	r.Post("/api/bookings", bookingHandler.CreateBooking)

	// ==================== ADMIN ROUTES ====================
	r.Route("/api/admin/bookings", func(r chi.Router) {
		// Require both authentication AND admin role
		r.Use(middleware.AuthSession(repo.Session, log))
		r.Use(middleware.Admin(repo.User, log))

		// GET /api/admin/bookings - List bookings with filters
		r.Get("/", bookingHandler.ListBookings)

		// GET /api/admin/bookings/{id} - View booking details
		r.Get("/{id}", bookingHandler.GetBookingByID)

		// PATCH /api/admin/bookings/{id}/status - Move the booking lifecycle
		r.Patch("/{id}/status", bookingHandler.UpdateBookingStatus)

		// PUT /api/admin/bookings/{id} - Full edit with repriced totals
		r.Put("/{id}", bookingHandler.UpdateBooking)

		// DELETE /api/admin/bookings/{id} - Remove booking
		r.Delete("/{id}", bookingHandler.DeleteBooking)
	})
}
