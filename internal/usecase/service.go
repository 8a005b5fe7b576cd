package usecase

import (
	"cinema-tickets/internal/data/repository"
	"cinema-tickets/pkg/cache"
	"cinema-tickets/pkg/mailer"
	"cinema-tickets/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Auth     AuthService
	User     UserService
	Movie    MovieService
	Showtime ShowtimeService
	Booking  BookingService
	Ticket   TicketService
}

func NewService(repo *repository.Repository, config *utils.Config, cache *cache.Cache, mail *mailer.Mailer, log *zap.Logger) *Service {
	ticket := NewTicketService(repo, config, mail, log)

	return &Service{
		Auth:     NewAuthService(repo, config, log),
		User:     NewUserService(repo.User, log),
		Movie:    NewMovieService(repo.Movie, cache, log),
		Showtime: NewShowtimeService(repo, log),
		Booking:  NewBookingService(repo, ticket, log),
		Ticket:   ticket,
	}
}
