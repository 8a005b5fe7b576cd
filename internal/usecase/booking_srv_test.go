package usecase

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"cinema-tickets/internal/data/entity"
	"cinema-tickets/internal/data/repository"
	"cinema-tickets/internal/dto/request"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newBookingFixture() (BookingService, *fakeBookingRepo, *entity.Movie) {
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

	service := NewBookingService(repo, &stubTicketService{}, zap.NewNop())
	return service, bookings, movie
}

func bookingReq(movie *entity.Movie, seats ...string) *request.CreateBookingRequest {
	return &request.CreateBookingRequest{
		MovieID:  movie.ID.String(),
		ShowDate: DateOnly(time.Now()).Format("2006-01-02"),
		ShowTime: "18:00",
		Seats:    seats,
	}
}

func TestCreateBooking(t *testing.T) {
	service, bookings, movie := newBookingFixture()
	userID := uuid.New()

	booking, err := service.CreateBooking(context.Background(), userID, bookingReq(movie, "A1", "A2", "C3"))
	require.NoError(t, err)

	assert.Regexp(t, regexp.MustCompile(`^BK\d{6,9}$`), booking.Reference)
	assert.Equal(t, "Dune", booking.MovieTitle)
	assert.Equal(t, []string{"A1", "A2", "C3"}, booking.Seats)
	// two VIP at 15 plus one Regular at 12
	assert.Equal(t, 42.0, booking.TotalPrice)

	stored, err := bookings.FindByReference(context.Background(), booking.Reference)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, userID, stored.UserID)
}

func TestCreateBookingSeatConflict(t *testing.T) {
	service, _, movie := newBookingFixture()

	_, err := service.CreateBooking(context.Background(), uuid.New(), bookingReq(movie, "A1", "A2"))
	require.NoError(t, err)

	// overlapping selection loses and names only the contested seats
	_, err = service.CreateBooking(context.Background(), uuid.New(), bookingReq(movie, "A2", "B1"))
	require.Error(t, err)

	var conflict *repository.SeatConflictError
	require.True(t, errors.As(err, &conflict))
	assert.Equal(t, []string{"A2"}, conflict.Seats)
	assert.True(t, errors.Is(err, repository.ErrConflict))

	// the loser claimed nothing, B1 is still free
	_, err = service.CreateBooking(context.Background(), uuid.New(), bookingReq(movie, "B1"))
	assert.NoError(t, err)
}

func TestCreateBookingUnknownShowtime(t *testing.T) {
	service, _, movie := newBookingFixture()

	req := bookingReq(movie, "A1")
	req.ShowTime = "11:00"

	_, err := service.CreateBooking(context.Background(), uuid.New(), req)
	require.Error(t, err)
	assert.True(t, errors.Is(err, repository.ErrNotFound))
}

func TestCreateBookingPastDate(t *testing.T) {
	service, _, movie := newBookingFixture()

	req := bookingReq(movie, "A1")
	req.ShowDate = DateOnly(time.Now()).AddDate(0, 0, -1).Format("2006-01-02")

	_, err := service.CreateBooking(context.Background(), uuid.New(), req)
	require.Error(t, err)
	assert.True(t, errors.Is(err, repository.ErrNotFound))
}

func TestCreateBookingUnknownMovie(t *testing.T) {
	service, _, movie := newBookingFixture()

	req := bookingReq(movie, "A1")
	req.MovieID = uuid.New().String()

	_, err := service.CreateBooking(context.Background(), uuid.New(), req)
	require.Error(t, err)
	assert.True(t, errors.Is(err, repository.ErrNotFound))
}

func TestCreateBookingDuplicateSeatInRequest(t *testing.T) {
	service, _, movie := newBookingFixture()

	_, err := service.CreateBooking(context.Background(), uuid.New(), bookingReq(movie, "A1", "A1"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidInput))
}

func TestCreateBookingUnknownSeat(t *testing.T) {
	service, _, movie := newBookingFixture()

	_, err := service.CreateBooking(context.Background(), uuid.New(), bookingReq(movie, "Z9"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidInput))
}

func TestGetMyBookingsPagination(t *testing.T) {
	service, _, movie := newBookingFixture()
	userID := uuid.New()

	_, err := service.CreateBooking(context.Background(), userID, bookingReq(movie, "A1"))
	require.NoError(t, err)
	_, err = service.CreateBooking(context.Background(), userID, bookingReq(movie, "A2"))
	require.NoError(t, err)

	page, err := service.GetMyBookings(context.Background(), userID, request.PaginatedRequest{Page: 1, PerPage: 10})
	require.NoError(t, err)

	assert.Len(t, page.Data, 2)
	assert.Equal(t, int64(2), page.Pagination.Total)
	assert.Equal(t, 1, page.Pagination.TotalPages)
}
