package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cinema-tickets/internal/data/entity"
	"cinema-tickets/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// ShowtimeKey builds the map key used for per-showtime seat counts.
func ShowtimeKey(showDate time.Time, showTime string) string {
	return showDate.Format("2006-01-02") + " " + showTime
}

type BookingRepository interface {
	// CreateWithSeats atomically records a booking and claims its seats.
	// Returns ErrDuplicate when the reference collides (caller retries
	// with a fresh reference) and *SeatConflictError when another booking
	// already claimed one or more of the seats.
	CreateWithSeats(ctx context.Context, booking *entity.Booking, seats []*entity.BookingSeat) error

	FindByReference(ctx context.Context, reference string) (*entity.Booking, error)
	FindByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Booking, error)
	CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error)
	FindAll(ctx context.Context, limit, offset int) ([]*entity.Booking, error)
	Count(ctx context.Context) (int64, error)

	// Business queries
	FindBookedSeatLabels(ctx context.Context, movieID uuid.UUID, showDate time.Time, showTime string) ([]string, error)
	CountSeatsByShowtime(ctx context.Context, movieID uuid.UUID) (map[string]int, error)
}

type bookingRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewBookingRepository(db database.PgxIface, log *zap.Logger) BookingRepository {
	return &bookingRepository{
		db:  db,
		log: log.With(zap.String("repository", "booking")),
	}
}

func (r *bookingRepository) CreateWithSeats(ctx context.Context, booking *entity.Booking, seats []*entity.BookingSeat) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin create booking: %w", err)
	}
	defer tx.Rollback(ctx)

	bookingQuery := `
		INSERT INTO bookings (id, reference, user_id, movie_id, movie_title, show_date, show_time, total_price, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err = tx.Exec(ctx, bookingQuery,
		booking.ID,
		booking.Reference,
		booking.UserID,
		booking.MovieID,
		booking.MovieTitle,
		booking.ShowDate,
		booking.ShowTime,
		booking.TotalPrice,
		booking.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err, "bookings_reference_key") {
			r.log.Warn("Booking reference collision", zap.String("reference", booking.Reference))
			return fmt.Errorf("create booking %s: %w", booking.Reference, ErrDuplicate)
		}
		r.log.Error("Failed to create booking",
			zap.Error(err),
			zap.String("reference", booking.Reference),
			zap.String("user_id", booking.UserID.String()),
		)
		return fmt.Errorf("create booking %s: %w", booking.Reference, err)
	}

	seatQuery := `
		INSERT INTO booking_seats (id, booking_id, movie_id, show_date, show_time, seat_label, price, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	for _, seat := range seats {
		_, err := tx.Exec(ctx, seatQuery,
			seat.ID,
			seat.BookingID,
			seat.MovieID,
			seat.ShowDate,
			seat.ShowTime,
			seat.SeatLabel,
			seat.Price,
			seat.CreatedAt,
		)
		if err != nil {
			if isUniqueViolation(err, "booking_seats_showtime_seat_key") {
				tx.Rollback(ctx)
				return r.seatConflict(ctx, booking, seats)
			}
			r.log.Error("Failed to claim seat",
				zap.Error(err),
				zap.String("reference", booking.Reference),
				zap.String("seat", seat.SeatLabel),
			)
			return fmt.Errorf("claim seat %s for booking %s: %w", seat.SeatLabel, booking.Reference, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit create booking: %w", err)
	}

	return nil
}

// seatConflict rebuilds the contested seat list after a lost race so the
// caller can tell the user exactly which seats to re-pick.
func (r *bookingRepository) seatConflict(ctx context.Context, booking *entity.Booking, seats []*entity.BookingSeat) error {
	booked, err := r.FindBookedSeatLabels(ctx, booking.MovieID, booking.ShowDate, booking.ShowTime)
	if err != nil {
		// Still a conflict, just without the seat detail
		return fmt.Errorf("create booking %s: %w", booking.Reference, ErrConflict)
	}

	bookedSet := make(map[string]bool, len(booked))
	for _, label := range booked {
		bookedSet[label] = true
	}

	var contested []string
	for _, seat := range seats {
		if bookedSet[seat.SeatLabel] {
			contested = append(contested, seat.SeatLabel)
		}
	}

	r.log.Warn("Seat conflict on booking",
		zap.String("reference", booking.Reference),
		zap.Strings("contested", contested),
	)

	return fmt.Errorf("create booking %s: %w", booking.Reference, &SeatConflictError{Seats: contested})
}

func (r *bookingRepository) FindByReference(ctx context.Context, reference string) (*entity.Booking, error) {
	query := `
		SELECT id, reference, user_id, movie_id, movie_title, show_date, show_time, total_price, created_at
		FROM bookings
		WHERE reference = $1
	`

	var booking entity.Booking
	err := r.db.QueryRow(ctx, query, reference).Scan(
		&booking.ID,
		&booking.Reference,
		&booking.UserID,
		&booking.MovieID,
		&booking.MovieTitle,
		&booking.ShowDate,
		&booking.ShowTime,
		&booking.TotalPrice,
		&booking.CreatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find booking by reference",
			zap.Error(err),
			zap.String("reference", reference),
		)
		return nil, fmt.Errorf("find booking by reference %s: %w", reference, err)
	}

	seats, err := r.findSeatLabels(ctx, booking.ID)
	if err != nil {
		return nil, err
	}
	booking.Seats = seats

	return &booking, nil
}

func (r *bookingRepository) FindByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Booking, error) {
	query := `
		SELECT id, reference, user_id, movie_id, movie_title, show_date, show_time, total_price, created_at
		FROM bookings
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(ctx, query, userID, limit, offset)
	if err != nil {
		r.log.Error("Failed to find bookings by user ID",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return nil, fmt.Errorf("find bookings by user ID %s: %w", userID.String(), err)
	}
	defer rows.Close()

	return r.scanBookings(ctx, rows)
}

func (r *bookingRepository) CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error) {
	query := `SELECT COUNT(*) FROM bookings WHERE user_id = $1`

	var count int64
	if err := r.db.QueryRow(ctx, query, userID).Scan(&count); err != nil {
		r.log.Error("Failed to count bookings by user ID",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return 0, fmt.Errorf("count bookings by user ID %s: %w", userID.String(), err)
	}

	return count, nil
}

func (r *bookingRepository) FindAll(ctx context.Context, limit, offset int) ([]*entity.Booking, error) {
	query := `
		SELECT id, reference, user_id, movie_id, movie_title, show_date, show_time, total_price, created_at
		FROM bookings
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		r.log.Error("Failed to list bookings", zap.Error(err))
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	defer rows.Close()

	return r.scanBookings(ctx, rows)
}

func (r *bookingRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM bookings`).Scan(&count); err != nil {
		r.log.Error("Failed to count bookings", zap.Error(err))
		return 0, fmt.Errorf("count bookings: %w", err)
	}

	return count, nil
}

func (r *bookingRepository) scanBookings(ctx context.Context, rows pgx.Rows) ([]*entity.Booking, error) {
	var bookings []*entity.Booking
	for rows.Next() {
		var booking entity.Booking
		err := rows.Scan(
			&booking.ID,
			&booking.Reference,
			&booking.UserID,
			&booking.MovieID,
			&booking.MovieTitle,
			&booking.ShowDate,
			&booking.ShowTime,
			&booking.TotalPrice,
			&booking.CreatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan booking row", zap.Error(err))
			return nil, fmt.Errorf("scan booking row: %w", err)
		}
		bookings = append(bookings, &booking)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate booking rows: %w", err)
	}

	for _, booking := range bookings {
		seats, err := r.findSeatLabels(ctx, booking.ID)
		if err != nil {
			return nil, err
		}
		booking.Seats = seats
	}

	return bookings, nil
}

func (r *bookingRepository) findSeatLabels(ctx context.Context, bookingID uuid.UUID) ([]string, error) {
	query := `
		SELECT seat_label
		FROM booking_seats
		WHERE booking_id = $1
		ORDER BY created_at, seat_label
	`

	rows, err := r.db.Query(ctx, query, bookingID)
	if err != nil {
		r.log.Error("Failed to find booking seats",
			zap.Error(err),
			zap.String("booking_id", bookingID.String()),
		)
		return nil, fmt.Errorf("find seats for booking %s: %w", bookingID.String(), err)
	}
	defer rows.Close()

	var labels []string
	for rows.Next() {
		var label string
		if err := rows.Scan(&label); err != nil {
			return nil, fmt.Errorf("scan seat label: %w", err)
		}
		labels = append(labels, label)
	}

	return labels, rows.Err()
}

func (r *bookingRepository) FindBookedSeatLabels(ctx context.Context, movieID uuid.UUID, showDate time.Time, showTime string) ([]string, error) {
	query := `
		SELECT seat_label
		FROM booking_seats
		WHERE movie_id = $1 AND show_date = $2 AND show_time = $3
		ORDER BY seat_label
	`

	rows, err := r.db.Query(ctx, query, movieID, showDate, showTime)
	if err != nil {
		r.log.Error("Failed to find booked seats",
			zap.Error(err),
			zap.String("movie_id", movieID.String()),
			zap.String("show_date", showDate.Format("2006-01-02")),
			zap.String("show_time", showTime),
		)
		return nil, fmt.Errorf("find booked seats for movie %s: %w", movieID.String(), err)
	}
	defer rows.Close()

	var labels []string
	for rows.Next() {
		var label string
		if err := rows.Scan(&label); err != nil {
			return nil, fmt.Errorf("scan booked seat label: %w", err)
		}
		labels = append(labels, label)
	}

	return labels, rows.Err()
}

// CountSeatsByShowtime returns booked seat counts per showtime instance,
// keyed by ShowtimeKey. Used to compute availability for expansions.
func (r *bookingRepository) CountSeatsByShowtime(ctx context.Context, movieID uuid.UUID) (map[string]int, error) {
	query := `
		SELECT show_date, show_time, COUNT(*)
		FROM booking_seats
		WHERE movie_id = $1
		GROUP BY show_date, show_time
	`

	rows, err := r.db.Query(ctx, query, movieID)
	if err != nil {
		r.log.Error("Failed to count seats by showtime",
			zap.Error(err),
			zap.String("movie_id", movieID.String()),
		)
		return nil, fmt.Errorf("count seats by showtime for movie %s: %w", movieID.String(), err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var showDate time.Time
		var showTime string
		var count int
		if err := rows.Scan(&showDate, &showTime, &count); err != nil {
			return nil, fmt.Errorf("scan showtime count: %w", err)
		}
		counts[ShowtimeKey(showDate, showTime)] = count
	}

	return counts, rows.Err()
}
