package wire

import (
	"cinema-tickets/internal/adaptor"
	"cinema-tickets/internal/data/repository"
	"cinema-tickets/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireTicket(
	r chi.Router,
	ticketHandler *adaptor.TicketHandler,
	repo *repository.Repository,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	// The reference itself is the lookup capability, tickets stay
	// retrievable without a session.
	r.Get("/api/tickets/{reference}", ticketHandler.GetTicket)
	r.Get("/api/tickets/{reference}/download", ticketHandler.DownloadTicket)
	r.Get("/api/tickets/{reference}/qr", ticketHandler.GetTicketQR)

	// ==================== PROTECTED ROUTES ====================
	r.With(middleware.AuthSession(repo, log)).Post("/api/tickets/{reference}/email", ticketHandler.EmailTicket)
}
