package usecase

import (
	"errors"

	"cinema-tickets/internal/data/repository"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
)

func isDuplicate(err error) bool {
	return errors.Is(err, repository.ErrDuplicate)
}
