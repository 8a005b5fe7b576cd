package response

type SeatResponse struct {
	Label  string  `json:"label"` // "A1"
	Number int     `json:"number"`
	Price  float64 `json:"price"`
	Status string  `json:"status"` // booked / selected / available
}

type SeatMapRowResponse struct {
	RowID string         `json:"row_id"`
	Label string         `json:"label"`
	Price float64        `json:"price"`
	Seats []SeatResponse `json:"seats"`
}

type SeatMapResponse struct {
	MovieID       string               `json:"movie_id"`
	Date          string               `json:"date"`
	Time          string               `json:"time"`
	Rows          []SeatMapRowResponse `json:"rows"`
	TotalSeats    int                  `json:"total_seats"`
	SelectedTotal float64              `json:"selected_total"`
}
