package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"cinema-tickets/internal/data/entity"
	"cinema-tickets/internal/data/repository"
	"cinema-tickets/internal/dto/request"
	"cinema-tickets/internal/dto/response"
	"cinema-tickets/pkg/cache"
	"cinema-tickets/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	movieListCacheKey   = "movies:list"
	movieCacheKeyPrefix = "movies:"
)

type MovieService interface {
	ListMovies(ctx context.Context) ([]response.MovieResponse, error)
	GetMovie(ctx context.Context, movieID string) (*response.MovieResponse, error)

	// Admin operations
	CreateMovie(ctx context.Context, req *request.MovieRequest) (*response.MovieResponse, error)
	UpdateMovie(ctx context.Context, movieID string, req *request.MovieRequest) (*response.MovieResponse, error)
	DeleteMovie(ctx context.Context, movieID string) error
}

type movieService struct {
	movies repository.MovieRepository
	cache  *cache.Cache
	log    *zap.Logger
}

func NewMovieService(movies repository.MovieRepository, c *cache.Cache, log *zap.Logger) MovieService {
	return &movieService{
		movies: movies,
		cache:  c,
		log:    log.With(zap.String("service", "movie")),
	}
}

func (s *movieService) ListMovies(ctx context.Context) ([]response.MovieResponse, error) {
	var cached []response.MovieResponse
	if s.cache.Get(ctx, movieListCacheKey, &cached) {
		return cached, nil
	}

	movies, err := s.movies.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list movies: %w", err)
	}

	resp := make([]response.MovieResponse, len(movies))
	for i, movie := range movies {
		applyCatalogDefaults(movie)
		resp[i] = response.MovieToResponse(movie)
	}

	s.cache.Set(ctx, movieListCacheKey, resp)

	return resp, nil
}

func (s *movieService) GetMovie(ctx context.Context, movieID string) (*response.MovieResponse, error) {
	id, err := uuid.Parse(movieID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid movie ID %s", ErrInvalidInput, movieID)
	}

	cacheKey := movieCacheKeyPrefix + movieID
	var cached response.MovieResponse
	if s.cache.Get(ctx, cacheKey, &cached) {
		return &cached, nil
	}

	movie, err := s.movies.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get movie: %w", err)
	}
	if movie == nil {
		return nil, fmt.Errorf("movie %s not found: %w", movieID, repository.ErrNotFound)
	}

	applyCatalogDefaults(movie)
	resp := response.MovieToResponse(movie)
	s.cache.Set(ctx, cacheKey, resp)

	return &resp, nil
}

func (s *movieService) CreateMovie(ctx context.Context, req *request.MovieRequest) (*response.MovieResponse, error) {
	movie, err := s.movieFromRequest(req)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	movie.ID = uuid.New()
	movie.CreatedAt = now
	movie.UpdatedAt = now
	for i := range movie.SeatRows {
		movie.SeatRows[i].ID = uuid.New()
		movie.SeatRows[i].MovieID = movie.ID
	}

	if err := s.movies.Create(ctx, movie); err != nil {
		s.log.Error("Failed to create movie", zap.Error(err), zap.String("title", movie.Title))
		return nil, fmt.Errorf("create movie: %w", err)
	}

	s.invalidate(ctx, movie.ID.String())

	s.log.Info("Movie created",
		zap.String("movie_id", movie.ID.String()),
		zap.String("title", movie.Title))

	resp := response.MovieToResponse(movie)
	return &resp, nil
}

func (s *movieService) UpdateMovie(ctx context.Context, movieID string, req *request.MovieRequest) (*response.MovieResponse, error) {
	id, err := uuid.Parse(movieID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid movie ID %s", ErrInvalidInput, movieID)
	}

	existing, err := s.movies.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("update movie: %w", err)
	}
	if existing == nil {
		return nil, fmt.Errorf("movie %s not found: %w", movieID, repository.ErrNotFound)
	}

	movie, err := s.movieFromRequest(req)
	if err != nil {
		return nil, err
	}

	movie.ID = id
	movie.CreatedAt = existing.CreatedAt
	movie.UpdatedAt = time.Now()
	for i := range movie.SeatRows {
		movie.SeatRows[i].ID = uuid.New()
		movie.SeatRows[i].MovieID = id
	}

	if err := s.movies.Update(ctx, movie); err != nil {
		s.log.Error("Failed to update movie", zap.Error(err), zap.String("movie_id", movieID))
		return nil, fmt.Errorf("update movie: %w", err)
	}

	s.invalidate(ctx, movieID)

	s.log.Info("Movie updated", zap.String("movie_id", movieID))

	resp := response.MovieToResponse(movie)
	return &resp, nil
}

func (s *movieService) DeleteMovie(ctx context.Context, movieID string) error {
	id, err := uuid.Parse(movieID)
	if err != nil {
		return fmt.Errorf("%w: invalid movie ID %s", ErrInvalidInput, movieID)
	}

	if err := s.movies.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete movie: %w", err)
	}

	s.invalidate(ctx, movieID)

	return nil
}

// movieFromRequest validates the request and builds the entity, applying
// the default schedule and seat configuration when omitted.
func (s *movieService) movieFromRequest(req *request.MovieRequest) (*entity.Movie, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Movie validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: %s", ErrInvalidInput, utils.FormatValidationErrors(errs))
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, fmt.Errorf("%w: title must not be blank", ErrInvalidInput)
	}

	releaseDate, err := time.Parse("2006-01-02", req.ReleaseDate)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid release date %s", ErrInvalidInput, req.ReleaseDate)
	}

	var endDate *time.Time
	if req.EndDate != nil {
		parsed, err := time.Parse("2006-01-02", *req.EndDate)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid end date %s", ErrInvalidInput, *req.EndDate)
		}
		endDate = &parsed
	}

	showtimes := req.Showtimes
	if len(showtimes) == 0 {
		showtimes = entity.DefaultShowtimes()
	}

	seatRows := make([]entity.SeatRow, 0, len(req.SeatRows))
	seen := make(map[string]bool)
	for i, row := range req.SeatRows {
		rowID := strings.ToUpper(strings.TrimSpace(row.RowID))
		if rowID == "" {
			return nil, fmt.Errorf("%w: seat row ID must not be blank", ErrInvalidInput)
		}
		if seen[rowID] {
			return nil, fmt.Errorf("%w: duplicate seat row %s", ErrInvalidInput, rowID)
		}
		seen[rowID] = true

		seatRows = append(seatRows, entity.SeatRow{
			RowID:     rowID,
			Label:     strings.TrimSpace(row.Label),
			Price:     row.Price,
			SeatCount: row.SeatCount,
			Position:  i,
		})
	}
	if len(seatRows) == 0 {
		seatRows = entity.DefaultSeatRows()
	}

	return &entity.Movie{
		Title:             title,
		Description:       req.Description,
		Genre:             strings.TrimSpace(req.Genre),
		DurationInMinutes: req.DurationInMinutes,
		Rating:            req.Rating,
		PosterURL:         req.PosterURL,
		ReleaseDate:       releaseDate,
		EndDate:           endDate,
		Showtimes:         showtimes,
		SeatRows:          seatRows,
	}, nil
}

func (s *movieService) invalidate(ctx context.Context, movieID string) {
	s.cache.Delete(ctx, movieListCacheKey, movieCacheKeyPrefix+movieID)
}

// applyCatalogDefaults fills in the default schedule and seat rows for
// movies persisted without them.
func applyCatalogDefaults(movie *entity.Movie) {
	if len(movie.Showtimes) == 0 {
		movie.Showtimes = entity.DefaultShowtimes()
	}
	if len(movie.SeatRows) == 0 {
		movie.SeatRows = entity.DefaultSeatRows()
	}
}
