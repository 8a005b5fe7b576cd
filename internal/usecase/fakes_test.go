package usecase

import (
	"context"
	"fmt"
	"time"

	"cinema-tickets/internal/data/entity"
	"cinema-tickets/internal/data/repository"
	"cinema-tickets/internal/dto/response"

	"github.com/google/uuid"
)

// In-memory repositories mirroring the store's behavior closely enough
// to drive the services, including the unique-constraint semantics.

type fakeMovieRepo struct {
	movies map[uuid.UUID]*entity.Movie
}

func newFakeMovieRepo() *fakeMovieRepo {
	return &fakeMovieRepo{movies: make(map[uuid.UUID]*entity.Movie)}
}

func (f *fakeMovieRepo) Create(_ context.Context, movie *entity.Movie) error {
	f.movies[movie.ID] = movie
	return nil
}

func (f *fakeMovieRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Movie, error) {
	return f.movies[id], nil
}

func (f *fakeMovieRepo) FindAll(_ context.Context) ([]*entity.Movie, error) {
	var out []*entity.Movie
	for _, m := range f.movies {
		out = append(out, m)
	}
	return out, nil
}

func (f *fakeMovieRepo) Update(_ context.Context, movie *entity.Movie) error {
	if _, ok := f.movies[movie.ID]; !ok {
		return repository.ErrNotFound
	}
	f.movies[movie.ID] = movie
	return nil
}

func (f *fakeMovieRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := f.movies[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.movies, id)
	return nil
}

type seatClaim struct {
	movieID uuid.UUID
	key     string // repository.ShowtimeKey
	label   string
}

type fakeBookingRepo struct {
	bookings map[string]*entity.Booking // by reference
	claims   []seatClaim
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{bookings: make(map[string]*entity.Booking)}
}

func (f *fakeBookingRepo) claimed(movieID uuid.UUID, key, label string) bool {
	for _, c := range f.claims {
		if c.movieID == movieID && c.key == key && c.label == label {
			return true
		}
	}
	return false
}

func (f *fakeBookingRepo) CreateWithSeats(_ context.Context, booking *entity.Booking, seats []*entity.BookingSeat) error {
	if _, ok := f.bookings[booking.Reference]; ok {
		return fmt.Errorf("create booking %s: %w", booking.Reference, repository.ErrDuplicate)
	}

	key := repository.ShowtimeKey(booking.ShowDate, booking.ShowTime)

	var contested []string
	for _, seat := range seats {
		if f.claimed(booking.MovieID, key, seat.SeatLabel) {
			contested = append(contested, seat.SeatLabel)
		}
	}
	if len(contested) > 0 {
		return fmt.Errorf("create booking %s: %w", booking.Reference,
			&repository.SeatConflictError{Seats: contested})
	}

	labels := make([]string, len(seats))
	for i, seat := range seats {
		f.claims = append(f.claims, seatClaim{booking.MovieID, key, seat.SeatLabel})
		labels[i] = seat.SeatLabel
	}

	stored := *booking
	stored.Seats = labels
	f.bookings[booking.Reference] = &stored
	return nil
}

func (f *fakeBookingRepo) FindByReference(_ context.Context, reference string) (*entity.Booking, error) {
	return f.bookings[reference], nil
}

func (f *fakeBookingRepo) FindByUserID(_ context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Booking, error) {
	var out []*entity.Booking
	for _, b := range f.bookings {
		if b.UserID == userID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeBookingRepo) CountByUserID(_ context.Context, userID uuid.UUID) (int64, error) {
	var n int64
	for _, b := range f.bookings {
		if b.UserID == userID {
			n++
		}
	}
	return n, nil
}

func (f *fakeBookingRepo) FindAll(_ context.Context, limit, offset int) ([]*entity.Booking, error) {
	var out []*entity.Booking
	for _, b := range f.bookings {
		out = append(out, b)
	}
	return out, nil
}

func (f *fakeBookingRepo) Count(_ context.Context) (int64, error) {
	return int64(len(f.bookings)), nil
}

func (f *fakeBookingRepo) FindBookedSeatLabels(_ context.Context, movieID uuid.UUID, showDate time.Time, showTime string) ([]string, error) {
	key := repository.ShowtimeKey(showDate, showTime)
	var labels []string
	for _, c := range f.claims {
		if c.movieID == movieID && c.key == key {
			labels = append(labels, c.label)
		}
	}
	return labels, nil
}

func (f *fakeBookingRepo) CountSeatsByShowtime(_ context.Context, movieID uuid.UUID) (map[string]int, error) {
	counts := make(map[string]int)
	for _, c := range f.claims {
		if c.movieID == movieID {
			counts[c.key]++
		}
	}
	return counts, nil
}

type fakeUserRepo struct {
	users map[uuid.UUID]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*entity.User)}
}

func (f *fakeUserRepo) Create(_ context.Context, user *entity.User) error {
	for _, u := range f.users {
		if u.Email == user.Email {
			return fmt.Errorf("create user: %w", repository.ErrDuplicate)
		}
	}
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	return f.users[id], nil
}

func (f *fakeUserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) UpdateAvatar(_ context.Context, id uuid.UUID, avatarURL *string) error {
	u, ok := f.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	u.AvatarURL = avatarURL
	return nil
}

type fakeSessionRepo struct {
	sessions map[uuid.UUID]*entity.Session // by token
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: make(map[uuid.UUID]*entity.Session)}
}

func (f *fakeSessionRepo) Create(_ context.Context, session *entity.Session) error {
	f.sessions[session.Token] = session
	return nil
}

func (f *fakeSessionRepo) FindValidSession(_ context.Context, token string) (*entity.Session, error) {
	id, err := uuid.Parse(token)
	if err != nil {
		return nil, nil
	}
	s, ok := f.sessions[id]
	if !ok || s.RevokedAt != nil || !s.ExpiresAt.After(time.Now()) {
		return nil, nil
	}
	return s, nil
}

func (f *fakeSessionRepo) Revoke(_ context.Context, token string) error {
	id, err := uuid.Parse(token)
	if err != nil {
		return repository.ErrNotFound
	}
	s, ok := f.sessions[id]
	if !ok || s.RevokedAt != nil {
		return repository.ErrNotFound
	}
	now := time.Now()
	s.RevokedAt = &now
	return nil
}

// stubTicketService satisfies BookingService's confirmation hook.
type stubTicketService struct {
	confirmed []string
}

func (s *stubTicketService) GetTicket(context.Context, string) (*response.TicketResponse, error) {
	return nil, nil
}

func (s *stubTicketService) RenderTicket(context.Context, string) (string, error) {
	return "", nil
}

func (s *stubTicketService) TicketQR(context.Context, string) ([]byte, error) {
	return nil, nil
}

func (s *stubTicketService) EmailTicket(context.Context, string) error {
	return nil
}

func (s *stubTicketService) SendConfirmation(booking *entity.Booking) {
	s.confirmed = append(s.confirmed, booking.Reference)
}
