package response

import "time"

// TicketResponse is the read-only projection of a booking combined with
// the static venue fields, for display and download.
type TicketResponse struct {
	Reference  string    `json:"reference"`
	CinemaName string    `json:"cinema_name"`
	ScreenName string    `json:"screen"`
	MovieTitle string    `json:"movie_title"`
	ShowDate   string    `json:"show_date"`
	ShowTime   string    `json:"show_time"`
	Seats      []string  `json:"seats"`
	TotalPrice float64   `json:"total_price"`
	BookedAt   time.Time `json:"booked_at"`
}
