package response

import (
	"time"

	"cinema-tickets/internal/data/entity"
)

type BookingResponse struct {
	ID         string    `json:"id"`
	Reference  string    `json:"reference"`
	UserID     string    `json:"user_id"`
	MovieID    string    `json:"movie_id"`
	MovieTitle string    `json:"movie_title"`
	ShowDate   string    `json:"show_date"`
	ShowTime   string    `json:"show_time"`
	Seats      []string  `json:"seats"`
	TotalPrice float64   `json:"total_price"`
	CreatedAt  time.Time `json:"created_at"`
}

func BookingToResponse(booking *entity.Booking) BookingResponse {
	return BookingResponse{
		ID:         booking.ID.String(),
		Reference:  booking.Reference,
		UserID:     booking.UserID.String(),
		MovieID:    booking.MovieID.String(),
		MovieTitle: booking.MovieTitle,
		ShowDate:   booking.ShowDate.Format("2006-01-02"),
		ShowTime:   booking.ShowTime,
		Seats:      booking.Seats,
		TotalPrice: booking.TotalPrice,
		CreatedAt:  booking.CreatedAt,
	}
}
