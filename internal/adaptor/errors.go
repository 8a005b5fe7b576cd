package adaptor

import (
	"errors"
	"net/http"

	"cinema-tickets/internal/data/repository"
	"cinema-tickets/internal/usecase"
	"cinema-tickets/pkg/utils"

	"go.uber.org/zap"
)

// handleServiceError maps service errors onto the response envelope.
// Sentinels decide the status code, the outermost message is what the
// client sees.
func handleServiceError(w http.ResponseWriter, log *zap.Logger, err error, op string) {
	var conflict *repository.SeatConflictError
	if errors.As(err, &conflict) {
		utils.ResponseConflict(w, "Some seats were just booked by someone else", map[string]any{
			"seats": conflict.Seats,
		})
		return
	}

	switch {
	case errors.Is(err, usecase.ErrInvalidInput):
		utils.ResponseBadRequest(w, err.Error(), nil)
	case errors.Is(err, usecase.ErrUnauthorized):
		utils.ResponseUnauthorized(w, err.Error())
	case errors.Is(err, usecase.ErrForbidden):
		utils.ResponseForbidden(w, err.Error())
	case errors.Is(err, repository.ErrNotFound):
		utils.ResponseNotFound(w, err.Error())
	case errors.Is(err, repository.ErrDuplicate), errors.Is(err, repository.ErrConflict):
		utils.ResponseConflict(w, err.Error(), nil)
	default:
		log.Error("Unhandled service error", zap.Error(err), zap.String("op", op))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
