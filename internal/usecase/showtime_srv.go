package usecase

import (
	"context"
	"fmt"
	"time"

	"cinema-tickets/internal/data/entity"
	"cinema-tickets/internal/data/repository"
	"cinema-tickets/internal/dto/response"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ShowtimeService interface {
	// GetShowtimes expands the movie's schedule into bookable instances
	// with live seat availability.
	GetShowtimes(ctx context.Context, movieID string) ([]response.ShowtimeResponse, error)

	// GetSeatMap derives the tri-state seat view for one showtime.
	// selected may be empty; when present, each selected seat is checked
	// against the booked set and priced.
	GetSeatMap(ctx context.Context, movieID, showDate, showTime string, selected []string) (*response.SeatMapResponse, error)
}

type showtimeService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewShowtimeService(repo *repository.Repository, log *zap.Logger) ShowtimeService {
	return &showtimeService{
		repo: repo,
		log:  log.With(zap.String("service", "showtime")),
	}
}

func (s *showtimeService) GetShowtimes(ctx context.Context, movieID string) ([]response.ShowtimeResponse, error) {
	id, err := uuid.Parse(movieID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid movie ID %s", ErrInvalidInput, movieID)
	}

	movie, err := s.repo.Movie.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get showtimes: %w", err)
	}
	if movie == nil {
		return nil, fmt.Errorf("movie %s not found: %w", movieID, repository.ErrNotFound)
	}

	bookedCounts, err := s.repo.Booking.CountSeatsByShowtime(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get showtimes: %w", err)
	}

	totalSeats := totalSeatsOrDefault(movie)
	instances := ExpandShowtimes(movie, time.Now())

	resp := make([]response.ShowtimeResponse, len(instances))
	for i, inst := range instances {
		available := totalSeats - bookedCounts[repository.ShowtimeKey(inst.Date, inst.Time)]
		if available < 0 {
			available = 0
		}
		resp[i] = response.ShowtimeResponse{
			MovieID:        movieID,
			Date:           inst.Date.Format("2006-01-02"),
			Time:           inst.Time,
			AvailableSeats: available,
		}
	}

	return resp, nil
}

func (s *showtimeService) GetSeatMap(ctx context.Context, movieID, showDate, showTime string, selected []string) (*response.SeatMapResponse, error) {
	id, err := uuid.Parse(movieID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid movie ID %s", ErrInvalidInput, movieID)
	}

	date, err := time.Parse("2006-01-02", showDate)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid show date %s", ErrInvalidInput, showDate)
	}
	if _, err := time.Parse("15:04", showTime); err != nil {
		return nil, fmt.Errorf("%w: invalid show time %s", ErrInvalidInput, showTime)
	}

	movie, err := s.repo.Movie.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get seat map: %w", err)
	}
	if movie == nil {
		return nil, fmt.Errorf("movie %s not found: %w", movieID, repository.ErrNotFound)
	}

	if !HasShowtime(movie, time.Now(), date, showTime) {
		return nil, fmt.Errorf("showtime %s %s for movie %s not found: %w",
			showDate, showTime, movieID, repository.ErrNotFound)
	}

	booked, err := s.repo.Booking.FindBookedSeatLabels(ctx, id, date, showTime)
	if err != nil {
		return nil, fmt.Errorf("get seat map: %w", err)
	}

	seatMap, err := BuildSeatMap(seatRowsOrDefault(movie), booked, selected)
	if err != nil {
		return nil, fmt.Errorf("get seat map: %w", err)
	}

	resp := &response.SeatMapResponse{
		MovieID:       movieID,
		Date:          showDate,
		Time:          showTime,
		TotalSeats:    seatMap.TotalSeats,
		SelectedTotal: seatMap.SelectedTotal,
		Rows:          make([]response.SeatMapRowResponse, len(seatMap.Rows)),
	}
	for i, row := range seatMap.Rows {
		out := response.SeatMapRowResponse{
			RowID: row.RowID,
			Label: row.Label,
			Price: row.Price,
			Seats: make([]response.SeatResponse, len(row.Seats)),
		}
		for j, seat := range row.Seats {
			out.Seats[j] = response.SeatResponse{
				Label:  seat.Label,
				Number: seat.Number,
				Price:  seat.Price,
				Status: string(seat.Status),
			}
		}
		resp.Rows[i] = out
	}

	return resp, nil
}

func totalSeatsOrDefault(movie *entity.Movie) int {
	total := 0
	for _, row := range seatRowsOrDefault(movie) {
		total += row.SeatCount
	}
	return total
}
