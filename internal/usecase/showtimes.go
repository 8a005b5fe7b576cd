package usecase

import (
	"time"

	"cinema-tickets/internal/data/entity"
)

// ShowtimeInstance is one bookable (movie, date, time) combination,
// derived from the movie's recurring schedule. It has no lifecycle of
// its own.
type ShowtimeInstance struct {
	Date      time.Time
	Time      string // "15:04"
	Available int
}

// DateOnly truncates t to a calendar date in UTC so DATE columns and
// wall-clock "today" compare consistently.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// effectiveEndDate resolves the end of a movie's active range. A missing
// end, or one before the start, falls back to start + 1 month.
func effectiveEndDate(start time.Time, end *time.Time) time.Time {
	if end == nil {
		return start.AddDate(0, 1, 0)
	}
	e := DateOnly(*end)
	if e.Before(start) {
		return start.AddDate(0, 1, 0)
	}
	return e
}

// showtimeList returns the movie's daily schedule, falling back to the
// default four-slot schedule when none is declared.
func showtimeList(movie *entity.Movie) []string {
	if len(movie.Showtimes) > 0 {
		return movie.Showtimes
	}
	return entity.DefaultShowtimes()
}

// ExpandShowtimes derives every bookable showtime instance for the movie:
// one per (day, time) pair for each day in [release, effective end] that
// is not before today. Ordered by date, then by declared time order.
// Times already past on the current day are kept.
// Available is left zero, the caller fills it from booked-seat counts.
func ExpandShowtimes(movie *entity.Movie, today time.Time) []ShowtimeInstance {
	times := showtimeList(movie)
	todayDate := DateOnly(today)

	start := DateOnly(movie.ReleaseDate)
	if movie.ReleaseDate.IsZero() {
		start = todayDate
	}
	end := effectiveEndDate(start, movie.EndDate)

	var instances []ShowtimeInstance
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if d.Before(todayDate) {
			continue
		}
		for _, t := range times {
			instances = append(instances, ShowtimeInstance{
				Date: d,
				Time: t,
			})
		}
	}

	return instances
}

// HasShowtime reports whether (date, showTime) is a member of the
// movie's bookable set as of today.
func HasShowtime(movie *entity.Movie, today, date time.Time, showTime string) bool {
	d := DateOnly(date)
	todayDate := DateOnly(today)

	if d.Before(todayDate) {
		return false
	}

	start := DateOnly(movie.ReleaseDate)
	if movie.ReleaseDate.IsZero() {
		start = todayDate
	}
	end := effectiveEndDate(start, movie.EndDate)

	if d.Before(start) || d.After(end) {
		return false
	}

	for _, t := range showtimeList(movie) {
		if t == showTime {
			return true
		}
	}
	return false
}
