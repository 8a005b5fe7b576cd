package response

import (
	"time"

	"cinema-tickets/internal/data/entity"
)

type SeatRowResponse struct {
	RowID     string  `json:"row_id"`
	Label     string  `json:"label"`
	Price     float64 `json:"price"`
	SeatCount int     `json:"seats"`
}

type MovieResponse struct {
	ID                string            `json:"id"`
	Title             string            `json:"title"`
	Description       *string           `json:"description,omitempty"`
	Genre             string            `json:"genre"`
	DurationInMinutes int               `json:"duration"`
	Rating            float64           `json:"rating"`
	PosterURL         *string           `json:"poster_url,omitempty"`
	ReleaseDate       string            `json:"release_date"`
	EndDate           *string           `json:"end_date,omitempty"`
	Showtimes         []string          `json:"showtimes"`
	SeatRows          []SeatRowResponse `json:"seat_rows"`
	TotalSeats        int               `json:"total_seats"`
	CreatedAt         time.Time         `json:"created_at"`
}

func MovieToResponse(movie *entity.Movie) MovieResponse {
	resp := MovieResponse{
		ID:                movie.ID.String(),
		Title:             movie.Title,
		Description:       movie.Description,
		Genre:             movie.Genre,
		DurationInMinutes: movie.DurationInMinutes,
		Rating:            movie.Rating,
		PosterURL:         movie.PosterURL,
		ReleaseDate:       movie.ReleaseDate.Format("2006-01-02"),
		Showtimes:         movie.Showtimes,
		TotalSeats:        movie.TotalSeats(),
		CreatedAt:         movie.CreatedAt,
	}

	if movie.EndDate != nil {
		endDate := movie.EndDate.Format("2006-01-02")
		resp.EndDate = &endDate
	}

	resp.SeatRows = make([]SeatRowResponse, len(movie.SeatRows))
	for i, row := range movie.SeatRows {
		resp.SeatRows[i] = SeatRowResponse{
			RowID:     row.RowID,
			Label:     row.Label,
			Price:     row.Price,
			SeatCount: row.SeatCount,
		}
	}

	return resp
}
