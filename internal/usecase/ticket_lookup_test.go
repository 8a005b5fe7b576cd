package usecase

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"cinema-tickets/internal/data/entity"
	"cinema-tickets/internal/data/repository"
	"cinema-tickets/pkg/mailer"
	"cinema-tickets/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTicketFixture(t *testing.T) (TicketService, *entity.Booking) {
	t.Helper()

	bookings := newFakeBookingRepo()
	repo := &repository.Repository{
		User:    newFakeUserRepo(),
		Booking: bookings,
	}

	config := &utils.Config{
		Venue: utils.VenueConfig{
			CinemaName: "CTMS Cinemas",
			ScreenName: "Screen 1",
		},
	}

	booking := &entity.Booking{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		Reference:  "BK123456789",
		UserID:     uuid.New(),
		MovieID:    uuid.New(),
		MovieTitle: "Dune",
		ShowDate:   DateOnly(time.Now()),
		ShowTime:   "18:00",
		TotalPrice: 42,
	}
	seats := []*entity.BookingSeat{
		{SeatLabel: "A1", Price: 15},
		{SeatLabel: "A2", Price: 15},
		{SeatLabel: "C3", Price: 12},
	}
	require.NoError(t, bookings.CreateWithSeats(context.Background(), booking, seats))

	mail := mailer.NewMailer(utils.EmailConfig{}, zap.NewNop())
	return NewTicketService(repo, config, mail, zap.NewNop()), booking
}

func TestGetTicket(t *testing.T) {
	service, booking := newTicketFixture(t)

	ticket, err := service.GetTicket(context.Background(), booking.Reference)
	require.NoError(t, err)

	assert.Equal(t, "BK123456789", ticket.Reference)
	assert.Equal(t, "CTMS Cinemas", ticket.CinemaName)
	assert.Equal(t, "Screen 1", ticket.ScreenName)
	assert.Equal(t, "Dune", ticket.MovieTitle)
	assert.Equal(t, []string{"A1", "A2", "C3"}, ticket.Seats)
	assert.Equal(t, 42.0, ticket.TotalPrice)

	// lookup is case and whitespace tolerant
	again, err := service.GetTicket(context.Background(), "  bk123456789 ")
	require.NoError(t, err)
	assert.Equal(t, ticket.Reference, again.Reference)
}

func TestGetTicketNotFound(t *testing.T) {
	service, _ := newTicketFixture(t)

	_, err := service.GetTicket(context.Background(), "BK999999999")
	require.Error(t, err)
	assert.True(t, errors.Is(err, repository.ErrNotFound))
}

func TestGetTicketBadReference(t *testing.T) {
	service, _ := newTicketFixture(t)

	for _, ref := range []string{"", "DROP TABLE", "BK12", "XX123456"} {
		_, err := service.GetTicket(context.Background(), ref)
		require.Error(t, err, ref)
		assert.True(t, errors.Is(err, ErrInvalidInput), ref)
	}
}

func TestRenderTicket(t *testing.T) {
	service, booking := newTicketFixture(t)

	body, err := service.RenderTicket(context.Background(), booking.Reference)
	require.NoError(t, err)

	assert.Contains(t, body, "CTMS Cinemas")
	assert.Contains(t, body, "Screen 1")
	assert.Contains(t, body, "Dune")
	assert.Contains(t, body, "A1, A2, C3")
	assert.Contains(t, body, "$42.00")
	assert.Contains(t, body, "BK123456789")
}

func TestTicketQR(t *testing.T) {
	service, booking := newTicketFixture(t)

	png, err := service.TicketQR(context.Background(), booking.Reference)
	require.NoError(t, err)

	// PNG magic bytes
	assert.True(t, bytes.HasPrefix(png, []byte("\x89PNG")))
}

func TestEmailTicketWithoutSMTP(t *testing.T) {
	service, booking := newTicketFixture(t)

	err := service.EmailTicket(context.Background(), booking.Reference)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidInput))
}
