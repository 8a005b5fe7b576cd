package adaptor

import (
	"net/http"
	"strings"

	"cinema-tickets/internal/usecase"
	"cinema-tickets/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type ShowtimeHandler struct {
	service usecase.ShowtimeService
	log     *zap.Logger
}

func NewShowtimeHandler(service usecase.ShowtimeService, log *zap.Logger) *ShowtimeHandler {
	return &ShowtimeHandler{
		service: service,
		log:     log.With(zap.String("handler", "showtime")),
	}
}

// GetShowtimes handles GET /api/movies/{id}/showtimes (public)
func (h *ShowtimeHandler) GetShowtimes(w http.ResponseWriter, r *http.Request) {
	movieID := chi.URLParam(r, "id")
	if movieID == "" {
		utils.ResponseBadRequest(w, "Movie ID is required", nil)
		return
	}

	showtimes, err := h.service.GetShowtimes(r.Context(), movieID)
	if err != nil {
		handleServiceError(w, h.log, err, "get showtimes")
		return
	}

	utils.ResponseSuccess(w, "success", showtimes)
}

// GetSeatMap handles GET /api/movies/{id}/seats?date=...&time=...&selected=A1,A2 (public)
func (h *ShowtimeHandler) GetSeatMap(w http.ResponseWriter, r *http.Request) {
	movieID := chi.URLParam(r, "id")
	if movieID == "" {
		utils.ResponseBadRequest(w, "Movie ID is required", nil)
		return
	}

	query := r.URL.Query()
	showDate := query.Get("date")
	showTime := query.Get("time")
	if showDate == "" || showTime == "" {
		utils.ResponseBadRequest(w, "date and time query parameters are required", nil)
		return
	}

	var selected []string
	if raw := query.Get("selected"); raw != "" {
		for _, label := range strings.Split(raw, ",") {
			if label = strings.TrimSpace(label); label != "" {
				selected = append(selected, label)
			}
		}
	}

	seatMap, err := h.service.GetSeatMap(r.Context(), movieID, showDate, showTime, selected)
	if err != nil {
		handleServiceError(w, h.log, err, "get seat map")
		return
	}

	utils.ResponseSuccess(w, "success", seatMap)
}
