package response

// ShowtimeResponse is one bookable (movie, date, time) instance.
type ShowtimeResponse struct {
	MovieID        string `json:"movie_id"`
	Date           string `json:"date"` // "2006-01-02"
	Time           string `json:"time"` // "15:04"
	AvailableSeats int    `json:"available_seats"`
}
