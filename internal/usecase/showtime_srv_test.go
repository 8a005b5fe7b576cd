package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"cinema-tickets/internal/data/entity"
	"cinema-tickets/internal/data/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newShowtimeFixture() (ShowtimeService, BookingService, *entity.Movie) {
	movies := newFakeMovieRepo()
	bookings := newFakeBookingRepo()

	today := DateOnly(time.Now())
	movie := &entity.Movie{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
		Title:       "Dune",
		Genre:       "Sci-Fi",
		ReleaseDate: today,
		SeatRows:    entity.DefaultSeatRows(),
		Showtimes:   entity.DefaultShowtimes(),
	}
	movies.movies[movie.ID] = movie

	repo := &repository.Repository{
		Movie:   movies,
		Booking: bookings,
	}

	showtimes := NewShowtimeService(repo, zap.NewNop())
	booking := NewBookingService(repo, &stubTicketService{}, zap.NewNop())
	return showtimes, booking, movie
}

func TestGetShowtimesAvailability(t *testing.T) {
	showtimes, booking, movie := newShowtimeFixture()

	_, err := booking.CreateBooking(context.Background(), uuid.New(), bookingReq(movie, "A1", "A2", "C3"))
	require.NoError(t, err)

	instances, err := showtimes.GetShowtimes(context.Background(), movie.ID.String())
	require.NoError(t, err)
	require.NotEmpty(t, instances)

	today := DateOnly(time.Now()).Format("2006-01-02")
	for _, inst := range instances {
		if inst.Date == today && inst.Time == "18:00" {
			// 40 seats minus the 3 just booked
			assert.Equal(t, 37, inst.AvailableSeats)
		} else {
			assert.Equal(t, 40, inst.AvailableSeats)
		}
	}
}

func TestGetShowtimesUnknownMovie(t *testing.T) {
	showtimes, _, _ := newShowtimeFixture()

	_, err := showtimes.GetShowtimes(context.Background(), uuid.New().String())
	require.Error(t, err)
	assert.True(t, errors.Is(err, repository.ErrNotFound))

	_, err = showtimes.GetShowtimes(context.Background(), "not-a-uuid")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidInput))
}

func TestGetSeatMap(t *testing.T) {
	showtimes, booking, movie := newShowtimeFixture()

	_, err := booking.CreateBooking(context.Background(), uuid.New(), bookingReq(movie, "A1"))
	require.NoError(t, err)

	today := DateOnly(time.Now()).Format("2006-01-02")
	seatMap, err := showtimes.GetSeatMap(context.Background(), movie.ID.String(), today, "18:00", []string{"A2"})
	require.NoError(t, err)

	assert.Equal(t, 40, seatMap.TotalSeats)
	assert.Equal(t, 15.0, seatMap.SelectedTotal)

	statuses := map[string]string{}
	for _, row := range seatMap.Rows {
		for _, seat := range row.Seats {
			statuses[seat.Label] = seat.Status
		}
	}
	assert.Equal(t, "booked", statuses["A1"])
	assert.Equal(t, "selected", statuses["A2"])
	assert.Equal(t, "available", statuses["C3"])
}

func TestGetSeatMapConflictOnBookedSelection(t *testing.T) {
	showtimes, booking, movie := newShowtimeFixture()

	_, err := booking.CreateBooking(context.Background(), uuid.New(), bookingReq(movie, "A1"))
	require.NoError(t, err)

	today := DateOnly(time.Now()).Format("2006-01-02")
	_, err = showtimes.GetSeatMap(context.Background(), movie.ID.String(), today, "18:00", []string{"A1"})
	require.Error(t, err)

	var conflict *repository.SeatConflictError
	require.True(t, errors.As(err, &conflict))
	assert.Equal(t, []string{"A1"}, conflict.Seats)
}

func TestGetSeatMapUnknownShowtime(t *testing.T) {
	showtimes, _, movie := newShowtimeFixture()

	today := DateOnly(time.Now()).Format("2006-01-02")
	_, err := showtimes.GetSeatMap(context.Background(), movie.ID.String(), today, "11:00", nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, repository.ErrNotFound))

	_, err = showtimes.GetSeatMap(context.Background(), movie.ID.String(), "not-a-date", "18:00", nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidInput))
}
