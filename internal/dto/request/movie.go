package request

type SeatRowRequest struct {
	RowID     string  `json:"row_id" validate:"required,min=1,max=5"`
	Label     string  `json:"label" validate:"required,min=1,max=50"`
	Price     float64 `json:"price" validate:"min=0"`
	SeatCount int     `json:"seats" validate:"required,min=1"`
}

type MovieRequest struct {
	Title             string           `json:"title" validate:"required,max=200"`
	Description       *string          `json:"description,omitempty"`
	Genre             string           `json:"genre" validate:"required,min=1,max=50"`
	DurationInMinutes int              `json:"duration" validate:"required,min=1,max=600"`
	Rating            float64          `json:"rating" validate:"min=0,max=10"`
	PosterURL         *string          `json:"poster_url,omitempty" validate:"omitempty,url"`
	ReleaseDate       string           `json:"release_date" validate:"required,datetime=2006-01-02"`
	EndDate           *string          `json:"end_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Showtimes         []string         `json:"showtimes,omitempty" validate:"dive,datetime=15:04"`
	SeatRows          []SeatRowRequest `json:"seat_rows,omitempty" validate:"dive"`
}
