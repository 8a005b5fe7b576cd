package usecase

import (
	"context"
	"fmt"
	"time"

	"cinema-tickets/internal/data/entity"
	"cinema-tickets/internal/data/repository"
	"cinema-tickets/internal/dto/request"
	"cinema-tickets/internal/dto/response"
	"cinema-tickets/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// referenceRetries bounds the retry loop on a reference collision. The
// reference has millisecond entropy, two collisions in a row means
// something else is wrong.
const referenceRetries = 3

type BookingService interface {
	// CreateBooking validates the showtime and seats, prices the
	// selection, and atomically claims the seats. On a lost seat race
	// the returned error unwraps to *repository.SeatConflictError.
	CreateBooking(ctx context.Context, userID uuid.UUID, req *request.CreateBookingRequest) (*response.BookingResponse, error)

	GetMyBookings(ctx context.Context, userID uuid.UUID, page request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error)

	// Admin operation
	GetAllBookings(ctx context.Context, page request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error)
}

type bookingService struct {
	repo   *repository.Repository
	ticket TicketService
	log    *zap.Logger
}

func NewBookingService(repo *repository.Repository, ticket TicketService, log *zap.Logger) BookingService {
	return &bookingService{
		repo:   repo,
		ticket: ticket,
		log:    log.With(zap.String("service", "booking")),
	}
}

func (s *bookingService) CreateBooking(ctx context.Context, userID uuid.UUID, req *request.CreateBookingRequest) (*response.BookingResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Booking validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: %s", ErrInvalidInput, utils.FormatValidationErrors(errs))
	}

	movieID, err := uuid.Parse(req.MovieID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid movie ID %s", ErrInvalidInput, req.MovieID)
	}

	showDate, err := time.Parse("2006-01-02", req.ShowDate)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid show date %s", ErrInvalidInput, req.ShowDate)
	}

	seats, err := dedupeSeats(req.Seats)
	if err != nil {
		return nil, err
	}

	movie, err := s.repo.Movie.FindByID(ctx, movieID)
	if err != nil {
		return nil, fmt.Errorf("create booking: %w", err)
	}
	if movie == nil {
		return nil, fmt.Errorf("movie %s not found: %w", req.MovieID, repository.ErrNotFound)
	}

	if !HasShowtime(movie, time.Now(), showDate, req.ShowTime) {
		return nil, fmt.Errorf("showtime %s %s for movie %s not found: %w",
			req.ShowDate, req.ShowTime, req.MovieID, repository.ErrNotFound)
	}

	prices, err := SeatPrices(seatRowsOrDefault(movie), seats)
	if err != nil {
		return nil, err
	}

	total := 0.0
	for _, price := range prices {
		total += price
	}

	now := time.Now()
	booking := &entity.Booking{
		UserID:     userID,
		MovieID:    movieID,
		MovieTitle: movie.Title,
		ShowDate:   DateOnly(showDate),
		ShowTime:   req.ShowTime,
		TotalPrice: total,
	}
	booking.CreatedAt = now

	seatEntities := make([]*entity.BookingSeat, len(seats))
	for i, label := range seats {
		seatEntities[i] = &entity.BookingSeat{
			MovieID:   movieID,
			ShowDate:  booking.ShowDate,
			ShowTime:  req.ShowTime,
			SeatLabel: label,
			Price:     prices[label],
		}
		seatEntities[i].CreatedAt = now
	}

	// The reference is unique by constraint, not by construction, so a
	// collision means regenerate and try again.
	for attempt := 0; ; attempt++ {
		booking.ID = uuid.New()
		booking.Reference = utils.GenerateBookingReference()
		for _, seat := range seatEntities {
			seat.ID = uuid.New()
			seat.BookingID = booking.ID
		}

		err = s.repo.Booking.CreateWithSeats(ctx, booking, seatEntities)
		if err == nil {
			break
		}
		if isDuplicate(err) && attempt < referenceRetries {
			continue
		}
		return nil, fmt.Errorf("create booking: %w", err)
	}

	booking.Seats = seats

	s.log.Info("Booking created",
		zap.String("reference", booking.Reference),
		zap.String("user_id", userID.String()),
		zap.String("movie_id", req.MovieID),
		zap.Strings("seats", seats),
		zap.Float64("total", total),
	)

	s.ticket.SendConfirmation(booking)

	resp := response.BookingToResponse(booking)
	return &resp, nil
}

func (s *bookingService) GetMyBookings(ctx context.Context, userID uuid.UUID, page request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error) {
	bookings, err := s.repo.Booking.FindByUserID(ctx, userID, page.Limit(), page.Offset())
	if err != nil {
		return nil, fmt.Errorf("get my bookings: %w", err)
	}

	total, err := s.repo.Booking.CountByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get my bookings: %w", err)
	}

	return paginateBookings(bookings, page, total), nil
}

func (s *bookingService) GetAllBookings(ctx context.Context, page request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error) {
	bookings, err := s.repo.Booking.FindAll(ctx, page.Limit(), page.Offset())
	if err != nil {
		return nil, fmt.Errorf("get all bookings: %w", err)
	}

	total, err := s.repo.Booking.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("get all bookings: %w", err)
	}

	return paginateBookings(bookings, page, total), nil
}

func paginateBookings(bookings []*entity.Booking, page request.PaginatedRequest, total int64) *response.PaginatedResponse[response.BookingResponse] {
	data := make([]response.BookingResponse, len(bookings))
	for i, booking := range bookings {
		data[i] = response.BookingToResponse(booking)
	}

	pageNum := page.Page
	if pageNum < 1 {
		pageNum = 1
	}

	return response.NewPaginatedResponse(data, pageNum, page.Limit(), total)
}

// dedupeSeats rejects duplicate labels in one request while preserving
// selection order.
func dedupeSeats(seats []string) ([]string, error) {
	seen := make(map[string]bool, len(seats))
	out := make([]string, 0, len(seats))
	for _, label := range seats {
		if seen[label] {
			return nil, fmt.Errorf("%w: duplicate seat %s", ErrInvalidInput, label)
		}
		seen[label] = true
		out = append(out, label)
	}
	return out, nil
}
