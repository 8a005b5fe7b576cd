package entity

import (
	"time"

	"github.com/google/uuid"
)

type Movie struct {
	Base
	Title             string     `db:"title"`
	Description       *string    `db:"description"`
	Genre             string     `db:"genre"`
	DurationInMinutes int        `db:"duration_in_minutes"`
	Rating            float64    `db:"rating"` // 0-10
	PosterURL         *string    `db:"poster_url"`
	ReleaseDate       time.Time  `db:"release_date"`
	EndDate           *time.Time `db:"end_date"`
	Showtimes         []string   `db:"showtimes"` // daily wall-clock times, "15:04"

	// Ordered seat configuration, loaded with the movie.
	SeatRows []SeatRow
}

// SeatRow is a labeled group of same-priced seats ("VIP", "Regular").
type SeatRow struct {
	ID        uuid.UUID `db:"id"`
	MovieID   uuid.UUID `db:"movie_id"`
	RowID     string    `db:"row_id"` // "A", "B", ...
	Label     string    `db:"label"`
	Price     float64   `db:"price"`
	SeatCount int       `db:"seat_count"`
	Position  int       `db:"position"`
}

// TotalSeats is the sellable capacity per showtime.
func (m *Movie) TotalSeats() int {
	total := 0
	for _, row := range m.SeatRows {
		total += row.SeatCount
	}
	return total
}

// DefaultShowtimes is the daily schedule applied to movies that declare none.
func DefaultShowtimes() []string {
	return []string{"10:00", "14:00", "18:00", "22:00"}
}

// DefaultSeatRows is the seat configuration applied to movies that declare none.
func DefaultSeatRows() []SeatRow {
	return []SeatRow{
		{RowID: "A", Label: "VIP", Price: 15, SeatCount: 8, Position: 0},
		{RowID: "B", Label: "VIP", Price: 15, SeatCount: 8, Position: 1},
		{RowID: "C", Label: "Regular", Price: 12, SeatCount: 8, Position: 2},
		{RowID: "D", Label: "Regular", Price: 12, SeatCount: 8, Position: 3},
		{RowID: "E", Label: "Regular", Price: 12, SeatCount: 8, Position: 4},
	}
}
