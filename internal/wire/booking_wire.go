package wire

import (
	"cinema-tickets/internal/adaptor"
	"cinema-tickets/internal/data/repository"
	"cinema-tickets/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireBooking(
	r chi.Router,
	bookingHandler *adaptor.BookingHandler,
	repo *repository.Repository,
	log *zap.Logger,
) {
	// ==================== PROTECTED ROUTES ====================
	r.With(middleware.AuthSession(repo, log)).Post("/api/bookings", bookingHandler.CreateBooking)
	r.With(middleware.AuthSession(repo, log)).Get("/api/user/bookings", bookingHandler.GetMyBookings)

	// ==================== ADMIN ROUTES ====================
	r.With(
		middleware.AuthSession(repo, log),
		middleware.Admin(log),
	).Get("/api/admin/bookings", bookingHandler.GetAllBookings)
}
