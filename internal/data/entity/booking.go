package entity

import (
	"time"

	"github.com/google/uuid"
)

// Booking is one confirmed purchase. Rows are created once and never
// mutated or deleted by normal flow.
type Booking struct {
	BaseSimple
	Reference  string    `db:"reference"`
	UserID     uuid.UUID `db:"user_id"`
	MovieID    uuid.UUID `db:"movie_id"`
	MovieTitle string    `db:"movie_title"`
	ShowDate   time.Time `db:"show_date"`
	ShowTime   string    `db:"show_time"` // "15:04"
	TotalPrice float64   `db:"total_price"`

	// Seat labels in selection order, loaded with the booking.
	Seats []string
}
