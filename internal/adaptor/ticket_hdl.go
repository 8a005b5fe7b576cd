package adaptor

import (
	"fmt"
	"net/http"

	"cinema-tickets/internal/usecase"
	"cinema-tickets/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type TicketHandler struct {
	service usecase.TicketService
	log     *zap.Logger
}

func NewTicketHandler(service usecase.TicketService, log *zap.Logger) *TicketHandler {
	return &TicketHandler{
		service: service,
		log:     log.With(zap.String("handler", "ticket")),
	}
}

// GetTicket handles GET /api/tickets/{reference} (public, the reference
// is the capability)
func (h *TicketHandler) GetTicket(w http.ResponseWriter, r *http.Request) {
	reference := chi.URLParam(r, "reference")

	ticket, err := h.service.GetTicket(r.Context(), reference)
	if err != nil {
		handleServiceError(w, h.log, err, "get ticket")
		return
	}

	utils.ResponseSuccess(w, "success", ticket)
}

// DownloadTicket handles GET /api/tickets/{reference}/download (public)
func (h *TicketHandler) DownloadTicket(w http.ResponseWriter, r *http.Request) {
	reference := chi.URLParam(r, "reference")

	body, err := h.service.RenderTicket(r.Context(), reference)
	if err != nil {
		handleServiceError(w, h.log, err, "download ticket")
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=ticket-%s.txt", reference))
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(body))
}

// GetTicketQR handles GET /api/tickets/{reference}/qr (public)
func (h *TicketHandler) GetTicketQR(w http.ResponseWriter, r *http.Request) {
	reference := chi.URLParam(r, "reference")

	png, err := h.service.TicketQR(r.Context(), reference)
	if err != nil {
		handleServiceError(w, h.log, err, "get ticket QR")
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}

// EmailTicket handles POST /api/tickets/{reference}/email (protected)
func (h *TicketHandler) EmailTicket(w http.ResponseWriter, r *http.Request) {
	reference := chi.URLParam(r, "reference")

	if err := h.service.EmailTicket(r.Context(), reference); err != nil {
		handleServiceError(w, h.log, err, "email ticket")
		return
	}

	utils.ResponseSuccess(w, "Ticket emailed", nil)
}
