package request

type CreateBookingRequest struct {
	MovieID  string   `json:"movie_id" validate:"required,uuid"`
	ShowDate string   `json:"show_date" validate:"required,datetime=2006-01-02"`
	ShowTime string   `json:"show_time" validate:"required,datetime=15:04"`
	Seats    []string `json:"seats" validate:"required,min=1,dive,min=2,max=5"`
}
