package repository

import (
	"context"
	"errors"
	"fmt"

	"cinema-tickets/internal/data/entity"
	"cinema-tickets/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type MovieRepository interface {
	Create(ctx context.Context, movie *entity.Movie) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Movie, error)
	FindAll(ctx context.Context) ([]*entity.Movie, error)
	Update(ctx context.Context, movie *entity.Movie) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type movieRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewMovieRepository(db database.PgxIface, log *zap.Logger) MovieRepository {
	return &movieRepository{
		db:  db,
		log: log.With(zap.String("repository", "movie")),
	}
}

// Create inserts the movie and its seat rows in a single transaction.
func (r *movieRepository) Create(ctx context.Context, movie *entity.Movie) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin create movie: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO movies (id, title, description, genre, duration_in_minutes, rating,
		                    poster_url, release_date, end_date, showtimes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	_, err = tx.Exec(ctx, query,
		movie.ID,
		movie.Title,
		movie.Description,
		movie.Genre,
		movie.DurationInMinutes,
		movie.Rating,
		movie.PosterURL,
		movie.ReleaseDate,
		movie.EndDate,
		movie.Showtimes,
		movie.CreatedAt,
		movie.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to create movie",
			zap.Error(err),
			zap.String("title", movie.Title),
		)
		return fmt.Errorf("create movie %s: %w", movie.Title, err)
	}

	if err := r.insertSeatRows(ctx, tx, movie); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit create movie: %w", err)
	}

	return nil
}

func (r *movieRepository) insertSeatRows(ctx context.Context, tx pgx.Tx, movie *entity.Movie) error {
	query := `
		INSERT INTO seat_rows (id, movie_id, row_id, label, price, seat_count, position)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	for _, row := range movie.SeatRows {
		_, err := tx.Exec(ctx, query,
			row.ID,
			movie.ID,
			row.RowID,
			row.Label,
			row.Price,
			row.SeatCount,
			row.Position,
		)
		if err != nil {
			r.log.Error("Failed to create seat row",
				zap.Error(err),
				zap.String("movie_id", movie.ID.String()),
				zap.String("row_id", row.RowID),
			)
			return fmt.Errorf("create seat row %s for movie %s: %w", row.RowID, movie.ID.String(), err)
		}
	}

	return nil
}

func (r *movieRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Movie, error) {
	query := `
		SELECT id, title, description, genre, duration_in_minutes, rating,
		       poster_url, release_date, end_date, showtimes, created_at, updated_at
		FROM movies
		WHERE id = $1
	`

	var movie entity.Movie
	err := r.db.QueryRow(ctx, query, id).Scan(
		&movie.ID,
		&movie.Title,
		&movie.Description,
		&movie.Genre,
		&movie.DurationInMinutes,
		&movie.Rating,
		&movie.PosterURL,
		&movie.ReleaseDate,
		&movie.EndDate,
		&movie.Showtimes,
		&movie.CreatedAt,
		&movie.UpdatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find movie by ID",
			zap.Error(err),
			zap.String("movie_id", id.String()),
		)
		return nil, fmt.Errorf("find movie by ID %s: %w", id.String(), err)
	}

	rows, err := r.findSeatRows(ctx, movie.ID)
	if err != nil {
		return nil, err
	}
	movie.SeatRows = rows

	return &movie, nil
}

func (r *movieRepository) FindAll(ctx context.Context) ([]*entity.Movie, error) {
	query := `
		SELECT id, title, description, genre, duration_in_minutes, rating,
		       poster_url, release_date, end_date, showtimes, created_at, updated_at
		FROM movies
		ORDER BY created_at DESC
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to list movies", zap.Error(err))
		return nil, fmt.Errorf("list movies: %w", err)
	}
	defer rows.Close()

	var movies []*entity.Movie
	for rows.Next() {
		var movie entity.Movie
		err := rows.Scan(
			&movie.ID,
			&movie.Title,
			&movie.Description,
			&movie.Genre,
			&movie.DurationInMinutes,
			&movie.Rating,
			&movie.PosterURL,
			&movie.ReleaseDate,
			&movie.EndDate,
			&movie.Showtimes,
			&movie.CreatedAt,
			&movie.UpdatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan movie row", zap.Error(err))
			return nil, fmt.Errorf("scan movie row: %w", err)
		}
		movies = append(movies, &movie)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate movie rows: %w", err)
	}

	for _, movie := range movies {
		seatRows, err := r.findSeatRows(ctx, movie.ID)
		if err != nil {
			return nil, err
		}
		movie.SeatRows = seatRows
	}

	return movies, nil
}

func (r *movieRepository) findSeatRows(ctx context.Context, movieID uuid.UUID) ([]entity.SeatRow, error) {
	query := `
		SELECT id, movie_id, row_id, label, price, seat_count, position
		FROM seat_rows
		WHERE movie_id = $1
		ORDER BY position
	`

	rows, err := r.db.Query(ctx, query, movieID)
	if err != nil {
		r.log.Error("Failed to find seat rows",
			zap.Error(err),
			zap.String("movie_id", movieID.String()),
		)
		return nil, fmt.Errorf("find seat rows for movie %s: %w", movieID.String(), err)
	}
	defer rows.Close()

	var seatRows []entity.SeatRow
	for rows.Next() {
		var sr entity.SeatRow
		err := rows.Scan(
			&sr.ID,
			&sr.MovieID,
			&sr.RowID,
			&sr.Label,
			&sr.Price,
			&sr.SeatCount,
			&sr.Position,
		)
		if err != nil {
			r.log.Error("Failed to scan seat row", zap.Error(err))
			return nil, fmt.Errorf("scan seat row: %w", err)
		}
		seatRows = append(seatRows, sr)
	}

	return seatRows, rows.Err()
}

// Update rewrites the movie and replaces its seat configuration.
func (r *movieRepository) Update(ctx context.Context, movie *entity.Movie) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin update movie: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		UPDATE movies
		SET title = $2, description = $3, genre = $4, duration_in_minutes = $5,
		    rating = $6, poster_url = $7, release_date = $8, end_date = $9,
		    showtimes = $10, updated_at = $11
		WHERE id = $1
	`

	result, err := tx.Exec(ctx, query,
		movie.ID,
		movie.Title,
		movie.Description,
		movie.Genre,
		movie.DurationInMinutes,
		movie.Rating,
		movie.PosterURL,
		movie.ReleaseDate,
		movie.EndDate,
		movie.Showtimes,
		movie.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to update movie",
			zap.Error(err),
			zap.String("movie_id", movie.ID.String()),
		)
		return fmt.Errorf("update movie %s: %w", movie.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("update movie %s: %w", movie.ID.String(), ErrNotFound)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM seat_rows WHERE movie_id = $1`, movie.ID); err != nil {
		return fmt.Errorf("replace seat rows for movie %s: %w", movie.ID.String(), err)
	}

	if err := r.insertSeatRows(ctx, tx, movie); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit update movie: %w", err)
	}

	return nil
}

func (r *movieRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM movies WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to delete movie",
			zap.Error(err),
			zap.String("movie_id", id.String()),
		)
		return fmt.Errorf("delete movie %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("delete movie %s: %w", id.String(), ErrNotFound)
	}

	r.log.Info("Movie deleted", zap.String("movie_id", id.String()))
	return nil
}
