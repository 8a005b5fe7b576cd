package entity

import (
	"time"

	"github.com/google/uuid"
)

// BookingSeat claims one seat for one showtime. The store enforces
// UNIQUE (movie_id, show_date, show_time, seat_label), which is what
// makes two overlapping confirmations resolve to exactly one winner.
type BookingSeat struct {
	BaseSimple
	BookingID uuid.UUID `db:"booking_id"`
	MovieID   uuid.UUID `db:"movie_id"`
	ShowDate  time.Time `db:"show_date"`
	ShowTime  string    `db:"show_time"`
	SeatLabel string    `db:"seat_label"` // "A1", "C3", ...
	Price     float64   `db:"price"`
}
